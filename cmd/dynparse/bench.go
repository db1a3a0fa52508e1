package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava12/dynparse/grammar"
	"github.com/ava12/dynparse/iterator"
)

func newBenchCmd() *cobra.Command {
	var grammarName, input string
	var copies int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Parse many copies of an input concurrently and report timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := demoGrammars[grammarName]
			if !ok {
				return fmt.Errorf("unknown grammar %q (want one of: arith, parens)", grammarName)
			}
			if copies <= 0 {
				return fmt.Errorf("--copies must be positive, got %d", copies)
			}

			g := build()
			if err := g.Prepare(); err != nil {
				return fmt.Errorf("prepare grammar: %w", err)
			}

			runs := make([]grammar.Run, copies)
			for i := range runs {
				runs[i] = grammar.Run{
					Iter: iterator.New(fmt.Sprintf("run-%d", i), strings.NewReader(input)),
				}
			}

			start := time.Now()
			results, err := grammar.ParseAll(context.Background(), g, runs)
			elapsed := time.Since(start)
			if err != nil {
				return fmt.Errorf("parse batch aborted: %w", err)
			}

			failed := 0
			for _, m := range results {
				if m.IsFailure() {
					failed++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "parsed %d copies in %s (%d failed), %.0f parses/sec\n",
				copies, elapsed, failed, float64(copies)/elapsed.Seconds())
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarName, "grammar", "g", "arith", "sample grammar to use: arith or parens")
	cmd.Flags().StringVarP(&input, "input", "i", "3+4-1", "input text to parse repeatedly")
	cmd.Flags().IntVarP(&copies, "copies", "n", 1000, "number of concurrent parses to run")

	return cmd
}
