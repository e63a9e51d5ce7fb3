package main

import (
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/lbc/dis"
)

func newDisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dis FILE",
		Short: "Disassemble a bytecode chunk",
		Long:  "Disassemble a bytecode chunk. Use - to read the chunk from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunk, err := a.readChunk(args[0])
			if err != nil {
				return err
			}
			instructions, err := dis.Disassemble(chunk)
			if err != nil {
				return err
			}
			return dis.Print(instructions, a.stdout)
		},
	}
}
