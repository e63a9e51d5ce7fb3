package main

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/lbc/flags"
	"github.com/deepnoodle-ai/lbc/internal/table"
)

func newFlagsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Show feature flags and test overrides",
		Long: `Show the VM feature flags. Overrides may be given with --set NAME=BOOL
or loaded from a TOML file with a [flags] table. Static flags cannot be
overridden.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := checkFormat(a.v.GetString("flags.output"), "text", "json")
			if err != nil {
				return err
			}
			registry, err := a.flagRegistry()
			if err != nil {
				return err
			}
			snapshots := registry.Flags()
			if format == "json" {
				return a.writeJSON(snapshots)
			}
			var rows [][]string
			for _, s := range snapshots {
				rows = append(rows, []string{s.Name, s.Kind, yesNo(s.Default), yesNo(s.Value)})
			}
			return table.NewTable(a.stdout).
				WithHeader([]string{"NAME", "KIND", "DEFAULT", "VALUE"}).
				WithRows(rows).
				Render()
		},
	}
	f := cmd.Flags()
	f.StringArray("set", nil, "Override a flag (NAME=BOOL)")
	f.String("overrides", "", "TOML file of flag overrides")
	f.StringP("output", "o", "text", "Output format (text, json)")
	_ = a.v.BindPFlag("flags.set", f.Lookup("set"))
	_ = a.v.BindPFlag("flags.overrides", f.Lookup("overrides"))
	_ = a.v.BindPFlag("flags.output", f.Lookup("output"))
	return cmd
}

// flagRegistry builds the default registry and applies the overrides file
// and --set assignments, in that order.
func (a *app) flagRegistry() (*flags.Registry, error) {
	registry := flags.NewDefault(flags.WithLogger(a.logger))

	if path := a.v.GetString("flags.overrides"); path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(expanded)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := registry.LoadOverrides(f); err != nil {
			return nil, err
		}
	}

	var result *multierror.Error
	overrides := map[string]bool{}
	for _, assignment := range a.v.GetStringSlice("flags.set") {
		name, value, err := flags.ParseAssignment(assignment)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		overrides[name] = value
	}
	if err := registry.ApplyOverrides(overrides); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return registry, nil
}
