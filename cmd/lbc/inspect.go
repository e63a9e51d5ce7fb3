package main

import (
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/lbc/bytecode"
	"github.com/deepnoodle-ai/lbc/dis"
)

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print a structured report of a bytecode chunk",
		Long: `Print a structured report of a validated bytecode chunk: header,
statistics, constants, instructions and capture lists. The report is JSON by
default; -o cbor writes canonical CBOR instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(a.v.GetString("inspect.output"), "json", "cbor")
			if err != nil {
				return err
			}
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			chunk, err := bytecode.Load(data)
			if err != nil {
				return err
			}
			report, err := dis.Inspect(chunk)
			if err != nil {
				return err
			}
			if format == "cbor" {
				out, err := report.MarshalCBOR()
				if err != nil {
					return err
				}
				_, err = a.stdout.Write(out)
				return err
			}
			return a.writeJSON(report)
		},
	}
	cmd.Flags().StringP("output", "o", "json", "Output format (json, cbor)")
	_ = a.v.BindPFlag("inspect.output", cmd.Flags().Lookup("output"))
	return cmd
}
