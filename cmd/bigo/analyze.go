package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolkov/bigo"
	"github.com/kolkov/bigo/internal/patterns"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		showAST      bool
		showPatterns bool
		asJSON       bool
		maxTokens    int
		maxDepth     int
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a pseudocode file (or stdin) and report its bounds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}

			prog, err := bigo.Compile(source, &bigo.Config{
				MaxTokens: maxTokens,
				MaxDepth:  maxDepth,
			})
			if err != nil {
				return err
			}
			result, err := prog.Analyze(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printBound(out, "program", result.Program)
			for name, bound := range result.Routines {
				printBound(out, name, bound)
			}
			for _, f := range result.Findings {
				fmt.Fprintf(out, "finding: %s\n", f)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if showPatterns {
				if m, ok := patterns.Identify(source); ok {
					fmt.Fprintf(out, "pattern: %s (%s, typically %s)\n", m.Name, m.Strategy, m.Complexity)
				}
			}
			if showAST {
				fmt.Fprintln(out)
				fmt.Fprint(out, prog.Format())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAST, "ast", false, "print the canonical pseudocode rendering")
	cmd.Flags().BoolVar(&showPatterns, "patterns", false, "report recognized classic algorithms")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "token budget (0 = default)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "nesting budget (0 = default)")
	return cmd
}

func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if len(data) == 0 {
			return "", errors.New("no input: pass a file or pipe pseudocode to stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printBound(w io.Writer, name string, b bigo.Bound) {
	if b.Tight {
		fmt.Fprintf(w, "%s: Θ(%s)\n", name, b.Theta)
		return
	}
	fmt.Fprintf(w, "%s: O(%s), Ω(%s)\n", name, b.O, b.Omega)
}
