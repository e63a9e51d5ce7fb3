package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/lbc/internal/table"
	"github.com/deepnoodle-ai/lbc/op"
)

type opcodeInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
	Aux    bool   `json:"aux"`
}

func newOpcodesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opcodes",
		Short: "List the instruction set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(a.v.GetString("opcodes.output"), "text", "json")
			if err != nil {
				return err
			}
			var infos []opcodeInfo
			for _, info := range op.All() {
				infos = append(infos, opcodeInfo{
					ID:     int(info.Code),
					Name:   info.Name,
					Format: info.Format.String(),
					Aux:    info.Aux,
				})
			}
			if format == "json" {
				return a.writeJSON(infos)
			}
			var rows [][]string
			for _, info := range infos {
				rows = append(rows, []string{
					strconv.Itoa(info.ID),
					info.Name,
					info.Format,
					yesNo(info.Aux),
				})
			}
			return table.NewTable(a.stdout).
				WithHeader([]string{"ID", "NAME", "FORMAT", "AUX"}).
				WithColumnAlignment([]table.Alignment{
					table.AlignRight,
					table.AlignLeft,
					table.AlignLeft,
					table.AlignLeft,
				}).
				WithRows(rows).
				Render()
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	_ = a.v.BindPFlag("opcodes.output", cmd.Flags().Lookup("output"))
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
