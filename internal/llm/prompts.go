package llm

import "fmt"

// Static prompt templates. Keeping these deterministic keeps judgments
// reproducible across runs of the same source.

const systemPrompt = "You are an expert in computational complexity theory " +
	"assisting a deterministic pseudocode analyzer."

const judgeTemplate = `Analyze the following pseudocode and determine its asymptotic complexities.

Instructions:
- Derive the worst-case upper bound (O), the best-case lower bound (Omega), and, when they coincide, the tight bound (Theta).
- Leave Theta empty when the bounds differ.
- Use formal notation, e.g. O(n log n), Omega(n), Theta(n^2).

Pseudocode:
%s

Return only a JSON object with this exact structure:
{
  "O": "",
  "Omega": "",
  "Theta": "",
  "explanation": ""
}`

const translateTemplate = `Translate the user's pseudocode or algorithm description into the following pseudocode dialect:

- Assignment: variable <- expression
- Loops: FOR i <- 1 TO n DO ... END FOR, WHILE cond DO ... END WHILE, REPEAT ... UNTIL cond
- Branches: IF cond THEN ... ELSEIF cond THEN ... ELSE ... END IF
- Routines: FUNCTION name(params) ... END FUNCTION, invoked with CALL name(args) or in expressions
- Operators: + - * / div mod and or not, comparisons = != < <= > >=
- Arrays use 1-based indexing: a[i]

Preserve the algorithm's logic and structure exactly. Return only the translated pseudocode, no commentary.

User input:
%s`

func judgePrompt(pseudocode string) string {
	return fmt.Sprintf(judgeTemplate, pseudocode)
}

func translatePrompt(input string) string {
	return fmt.Sprintf(translateTemplate, input)
}
