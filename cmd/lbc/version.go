package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/lbc/bytecode"
	"github.com/deepnoodle-ai/lbc/platform"
)

type versionInfo struct {
	Version         string               `json:"version"`
	Commit          string               `json:"commit"`
	Date            string               `json:"date"`
	BytecodeVersion [2]uint8             `json:"bytecode_version"`
	TypesVersion    [2]uint8             `json:"types_version"`
	Platform        platform.BuildConfig `json:"platform"`
}

func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(a.v.GetString("version.output"), "text", "json")
			if err != nil {
				return err
			}
			info := versionInfo{
				Version:         version,
				Commit:          commit,
				Date:            date,
				BytecodeVersion: [2]uint8{bytecode.VersionMin, bytecode.VersionMax},
				TypesVersion:    [2]uint8{bytecode.TypeVersionMin, bytecode.TypeVersionMax},
				Platform:        platform.Detect(),
			}
			if !info.Platform.ConsistentWithArch() {
				a.logger.Warn().Str("arch", info.Platform.Arch).Msg("probed byte order disagrees with target architecture")
			}
			if format == "json" {
				return a.writeJSON(info)
			}
			fmt.Fprintf(a.stdout, "lbc %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
			fmt.Fprintf(a.stdout, "bytecode versions %d-%d, type versions %d-%d\n",
				bytecode.VersionMin, bytecode.VersionMax, bytecode.TypeVersionMin, bytecode.TypeVersionMax)
			fmt.Fprintf(a.stdout, "platform %s\n", info.Platform)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
	_ = a.v.BindPFlag("version.output", cmd.Flags().Lookup("output"))
	return cmd
}
