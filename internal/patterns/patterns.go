// Package patterns holds a local signature database of classic
// algorithms (sorting, searching, graphs, dynamic programming). It
// matches keyword signatures against normalized source text and
// reports the best-scoring known algorithm as advisory metadata
// alongside the deterministic analysis. It never influences the
// deterministic result.
package patterns

import (
	"strings"

	"github.com/coregx/coregex"
)

// Signature describes one known algorithm: its display name, design
// strategy, textbook complexity, and the keyword set whose presence
// suggests it.
type Signature struct {
	Name       string
	Strategy   string
	Complexity string
	Keywords   []string
}

// Match is the best-scoring signature for a piece of source.
type Match struct {
	Name       string  `json:"name"`
	Strategy   string  `json:"strategy"`
	Complexity string  `json:"complexity"`
	Score      int     `json:"score"`      // Number of keywords found
	Confidence float64 `json:"confidence"` // Score over the signature's keyword count
}

// minScore is the confidence threshold: fewer than two keyword hits is
// noise, not a recognized algorithm.
const minScore = 2

var knownAlgorithms = []Signature{
	// Sorting
	{
		Name:       "Bubble Sort",
		Strategy:   "brute force / iterative",
		Complexity: "O(n^2)",
		Keywords:   []string{"for", "if", "swap", "temp", ">"},
	},
	{
		Name:       "Insertion Sort",
		Strategy:   "incremental / iterative",
		Complexity: "O(n^2)",
		Keywords:   []string{"for", "while", "key", "j", ">"},
	},
	{
		Name:       "Selection Sort",
		Strategy:   "brute force / iterative",
		Complexity: "O(n^2)",
		Keywords:   []string{"min", "index", "for", "swap"},
	},
	{
		Name:       "Merge Sort",
		Strategy:   "divide and conquer",
		Complexity: "O(n log n)",
		Keywords:   []string{"merge", "mid", "call", "left", "right"},
	},
	{
		Name:       "Quick Sort",
		Strategy:   "divide and conquer",
		Complexity: "O(n log n) average / O(n^2) worst",
		Keywords:   []string{"pivot", "partition", "low", "high", "swap"},
	},

	// Searching
	{
		Name:       "Linear Search",
		Strategy:   "brute force",
		Complexity: "O(n)",
		Keywords:   []string{"for", "if", "found", "return"},
	},
	{
		Name:       "Binary Search",
		Strategy:   "divide and conquer",
		Complexity: "O(log n)",
		Keywords:   []string{"while", "mid", "div 2", "low", "high"},
	},

	// Graphs
	{
		Name:       "Dijkstra",
		Strategy:   "greedy",
		Complexity: "O(E log V)",
		Keywords:   []string{"dist", "min", "priority", "queue", "visit", "relax"},
	},
	{
		Name:       "Floyd-Warshall",
		Strategy:   "dynamic programming",
		Complexity: "O(V^3)",
		Keywords:   []string{"for", "dist", "min", "k", "j", "i"},
	},
	{
		Name:       "Bellman-Ford",
		Strategy:   "dynamic programming",
		Complexity: "O(VE)",
		Keywords:   []string{"edge", "weight", "relax", "distance", "cycle"},
	},
	{
		Name:       "Prim",
		Strategy:   "greedy",
		Complexity: "O(E log V)",
		Keywords:   []string{"mst", "key", "min", "adjacency", "visited"},
	},

	// Math and recursion
	{
		Name:       "Factorial (recursive)",
		Strategy:   "simple recursion",
		Complexity: "O(n)",
		Keywords:   []string{"fact", "n - 1", "if", "return 1"},
	},
	{
		Name:       "Fibonacci (naive recursive)",
		Strategy:   "multiple recursion",
		Complexity: "O(2^n)",
		Keywords:   []string{"fib", "n - 1", "n - 2", "return"},
	},
	{
		Name:       "Fibonacci (dynamic)",
		Strategy:   "dynamic programming",
		Complexity: "O(n)",
		Keywords:   []string{"fib", "table", "for", "i - 1", "i - 2"},
	},
	{
		Name:       "Euclid GCD",
		Strategy:   "number theory",
		Complexity: "O(log min(a, b))",
		Keywords:   []string{"gcd", "mod", "while", "temp"},
	},
	{
		Name:       "Towers of Hanoi",
		Strategy:   "multiple recursion",
		Complexity: "O(2^n)",
		Keywords:   []string{"hanoi", "disk", "source", "dest", "aux", "n - 1"},
	},

	// Dynamic programming
	{
		Name:       "Knapsack 0/1",
		Strategy:   "dynamic programming",
		Complexity: "O(nW)",
		Keywords:   []string{"weight", "val", "dp", "table", "max"},
	},
	{
		Name:       "Matrix Chain Multiplication",
		Strategy:   "dynamic programming",
		Complexity: "O(n^3)",
		Keywords:   []string{"matrix", "chain", "scalar", "min", "split"},
	},
	{
		Name:       "Longest Common Subsequence",
		Strategy:   "dynamic programming",
		Complexity: "O(nm)",
		Keywords:   []string{"subsequence", "common", "table", "match", "max"},
	},
}

// keywordRE caches one compiled matcher per distinct keyword.
var keywordRE = map[string]*coregex.Regexp{}

func init() {
	for _, sig := range knownAlgorithms {
		for _, kw := range sig.Keywords {
			if _, ok := keywordRE[kw]; ok {
				continue
			}
			re, err := coregex.Compile(keywordPattern(kw))
			if err != nil {
				panic("patterns: bad keyword pattern for " + kw + ": " + err.Error())
			}
			keywordRE[kw] = re
		}
	}
}

// keywordPattern builds a case-normalized pattern for one keyword:
// word-bounded for identifier-like keywords, whitespace-tolerant for
// operator shapes like "n - 1".
func keywordPattern(kw string) string {
	var sb strings.Builder
	wordy := true
	for _, r := range kw {
		if !isWord(r) && r != ' ' {
			wordy = false
		}
	}

	if wordy {
		parts := strings.Fields(kw)
		for i, part := range parts {
			if i > 0 {
				sb.WriteString(`\s+`)
			}
			sb.WriteString(`\b` + part + `\b`)
		}
		return sb.String()
	}

	// Operator-bearing keyword: escape each rune, let whitespace float.
	fields := strings.Fields(kw)
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(`\s*`)
		}
		for _, r := range f {
			if isWord(r) {
				sb.WriteRune(r)
			} else {
				sb.WriteString(`\` + string(r))
			}
		}
	}
	return sb.String()
}

func isWord(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Identify scores every known signature against the source and returns
// the best match, or false when nothing clears the threshold.
// Selection follows keyword-hit count, then hit density on ties.
func Identify(source string) (Match, bool) {
	normalized := strings.ToLower(source)

	var best Match
	found := false
	for _, sig := range knownAlgorithms {
		score := 0
		for _, kw := range sig.Keywords {
			if keywordRE[kw].MatchString(normalized) {
				score++
			}
		}
		if score < minScore {
			continue
		}
		confidence := float64(score) / float64(len(sig.Keywords))
		if !found || score > best.Score || (score == best.Score && confidence > best.Confidence) {
			best = Match{
				Name:       sig.Name,
				Strategy:   sig.Strategy,
				Complexity: sig.Complexity,
				Score:      score,
				Confidence: confidence,
			}
			found = true
		}
	}
	return best, found
}
