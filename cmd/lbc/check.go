package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/lbc/bytecode"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate bytecode chunks",
		Long: `Validate bytecode chunks. Each file is checked against the supported
version range and its instructions, captures and constant references are
verified. Every problem found is reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if !a.checkFile(path) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
			}
			return nil
		},
	}
}

func (a *app) checkFile(path string) bool {
	data, err := a.readInput(path)
	if err != nil {
		fmt.Fprintf(a.stdout, "%s: %s\n", path, color.RedString("%s", err.Error()))
		return false
	}
	chunk, err := bytecode.Load(data)
	if err != nil {
		var merr *multierror.Error
		problems := []error{err}
		if errors.As(err, &merr) {
			problems = merr.Errors
		}
		fmt.Fprintf(a.stdout, "%s: %s\n", path, color.RedString("%d problem(s)", len(problems)))
		for _, p := range problems {
			fmt.Fprintf(a.stdout, "  %s\n", p)
		}
		a.logger.Debug().Str("path", path).Int("problems", len(problems)).Msg("validation failed")
		return false
	}
	stats := chunk.Stats()
	fmt.Fprintf(a.stdout, "%s: %s (version %d, %d instructions, %d constants)\n",
		path, color.GreenString("ok"), chunk.Version(), stats.InstructionCount, stats.ConstantCount)
	return true
}
