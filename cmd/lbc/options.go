package main

import (
	"errors"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// setup loads the config file and environment, then configures colors and
// logging. It runs before every command.
func (a *app) setup() error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	noColor := a.v.GetBool("no-color") || !isTerminal(a.stdout)
	if noColor {
		color.NoColor = true
	}
	level, err := zerolog.ParseLevel(strings.ToLower(a.v.GetString("log-level")))
	if err != nil {
		return err
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     a.stderr,
		NoColor: noColor || !isTerminal(a.stderr),
	}).Level(level).With().Timestamp().Logger()
	if path := a.v.ConfigFileUsed(); path != "" {
		a.logger.Debug().Str("path", path).Msg("loaded config")
	}
	return nil
}

func (a *app) loadConfig() error {
	a.v.SetEnvPrefix("lbc")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return err
		}
		a.v.SetConfigFile(expanded)
		return a.v.ReadInConfig()
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	a.v.AddConfigPath(home)
	a.v.SetConfigName(".lbc")
	a.v.SetConfigType("yaml")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
