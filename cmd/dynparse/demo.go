package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava12/dynparse/grammar"
	"github.com/ava12/dynparse/iterator"
	"github.com/ava12/dynparse/match"
)

func newDemoCmd() *cobra.Command {
	var grammarName string

	cmd := &cobra.Command{
		Use:   "demo [file]",
		Short: "Parse an input against a sample grammar and print the result",
		Long: `Builds one of the sample grammars (arith, parens) and recognizes
either the given file's contents or stdin against it.

arith evaluates a left-associative "+"/"-" chain over integers, e.g. "3+4-1".
parens matches a single letter optionally wrapped in balanced parentheses.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := demoGrammars[grammarName]
			if !ok {
				return fmt.Errorf("unknown grammar %q (want one of: arith, parens)", grammarName)
			}

			var content []byte
			var err error
			name := "<stdin>"
			if len(args) == 1 {
				name = args[0]
				content, err = os.ReadFile(name)
			} else {
				content, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			g := build()
			if err := g.Prepare(); err != nil {
				return fmt.Errorf("prepare grammar: %w", err)
			}

			it := iterator.New(name, strings.NewReader(strings.TrimRight(string(content), "\n")))
			m, err := grammar.Parse(g, it, nil)
			if err != nil {
				return fmt.Errorf("parse aborted: %w", err)
			}
			if m.IsFailure() {
				return fmt.Errorf("input did not match the %s grammar", grammarName)
			}

			slog.Info("parsed input", "grammar", grammarName, "bytes", m.Length)

			if grammarName == "arith" {
				result, err := match.Process(m)
				if err != nil {
					return fmt.Errorf("process: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			}

			printTree(cmd.OutOrStdout(), m, 0)
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarName, "grammar", "g", "arith", "sample grammar to use: arith or parens")
	return cmd
}

func printTree(w io.Writer, m *match.Match, depth int) {
	var walk func(n *match.Match, depth int)
	walk = func(n *match.Match, depth int) {
		for ; n != nil; n = n.Next {
			name := ""
			if n.Element != nil {
				name = n.Element.DebugName()
			}
			fmt.Fprintf(w, "%s[%d,%d) %s\n", strings.Repeat("  ", depth), n.Offset, n.End(), name)
			if n.Child != nil {
				walk(n.Child, depth+1)
			}
		}
	}
	walk(m, depth)
}
