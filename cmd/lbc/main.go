package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// app holds the state shared by every command of one invocation.
type app struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		v:      viper.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zerolog.Nop(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lbc",
		Short:         "Inspect, validate and convert register VM bytecode",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.lbc.yaml)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("config", pf.Lookup("config"))
	_ = a.v.BindPFlag("no-color", pf.Lookup("no-color"))
	_ = a.v.BindPFlag("log-level", pf.Lookup("log-level"))

	cmd.AddCommand(
		newDisCmd(a),
		newCheckCmd(a),
		newOpcodesCmd(a),
		newFlagsCmd(a),
		newInspectCmd(a),
		newConvertCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp(stdin, stdout, stderr)
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("%s", err.Error()))
}
