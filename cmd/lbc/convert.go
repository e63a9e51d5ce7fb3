package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/lbc/bytecode"
	"github.com/deepnoodle-ai/lbc/platform"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Rewrite a chunk in another byte order",
		Long: `Rewrite a validated chunk in the requested byte order. The order is one
of little, big or host. Use - as OUTPUT to write to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			chunk, err := bytecode.Load(data)
			if err != nil {
				return err
			}
			var opt bytecode.MarshalOption
			order := a.v.GetString("convert.byte-order")
			switch order {
			case "little":
				opt = bytecode.WithBigEndian(false)
			case "big":
				opt = bytecode.WithBigEndian(true)
			case "host":
				opt = bytecode.WithHostOrder()
			default:
				return fmt.Errorf("unknown byte order: %s (expected little, big, host)", order)
			}
			out, err := bytecode.Marshal(chunk, opt)
			if err != nil {
				return err
			}
			a.logger.Info().
				Str("input", args[0]).
				Str("output", args[1]).
				Str("order", order).
				Bool("host_little_endian", platform.HostIsLittleEndian()).
				Msg("converted chunk")
			if args[1] == "-" {
				_, err = a.stdout.Write(out)
				return err
			}
			return os.WriteFile(args[1], out, 0o644)
		},
	}
	cmd.Flags().String("byte-order", "little", "Byte order of the output (little, big, host)")
	_ = a.v.BindPFlag("convert.byte-order", cmd.Flags().Lookup("byte-order"))
	return cmd
}
