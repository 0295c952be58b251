// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relq/relq/internal/obslog"
)

var (
	Version    string
	Commit     string
	CommitDate string

	RootCmd = &cobra.Command{
		Use:   "relq",
		Short: "relq builds and runs typed relational queries",
		Long: "relq is a library and companion CLI for constructing SQL statements from a " +
			"typed relational algebra and executing them against a PostgreSQL database. " +
			"The CLI exists to exercise the library end to end: render a built-in query to " +
			"SQL text for a chosen dialect, or run it against a live connection and print " +
			"the decoded rows.",
	}
	cfgFile   string
	appConfig = NewConfig()
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				Commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				CommitDate = setting.Value
			}
		}
	}
	if Version != "" {
		RootCmd.Version = fmt.Sprintf("%s %s %s", Version, Commit, CommitDate)
	} else {
		RootCmd.Version = fmt.Sprintf("%s %s", Commit, CommitDate)
	}

	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().BoolP("help", "", false, "help for relq")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	RootCmd.PersistentFlags().StringP("log-format", "", obslog.FormatText, "logging format [text|json]")
	RootCmd.PersistentFlags().StringP("log-level", "", zerolog.LevelInfoValue,
		fmt.Sprintf(
			"logging level %s|%s|%s|%s",
			zerolog.LevelDebugValue,
			zerolog.LevelInfoValue,
			zerolog.LevelWarnValue,
			zerolog.LevelErrorValue,
		),
	)
	RootCmd.PersistentFlags().StringP("dialect", "", "ansi", "SQL dialect to render for [ansi|postgres]")
	RootCmd.PersistentFlags().StringP("dsn", "", "", "PostgreSQL connection string (required by run, not render)")
	RootCmd.PersistentFlags().StringP("timeout", "", "30s", "statement timeout, e.g. 30s, 5m, 1h")

	RootCmd.AddCommand(renderCmd)
	RootCmd.AddCommand(runCmd)

	for _, binding := range []struct{ key, flag string }{
		{"log.format", "log-format"},
		{"log.level", "log-level"},
		{"dialect", "dialect"},
		{"dsn", "dsn"},
		{"timeout", "timeout"},
	} {
		if err := viper.BindPFlag(binding.key, RootCmd.PersistentFlags().Lookup(binding.flag)); err != nil {
			log.Fatal().Err(err).Msg("")
		}
	}

	RootCmd.InitDefaultCompletionCmd()
	RootCmd.InitDefaultHelpCmd()
	RootCmd.InitDefaultVersionFlag()

	for _, c := range RootCmd.Commands() {
		if c.Name() == "completion" || c.Name() == "help" {
			c.DisableFlagParsing = true
			for _, subc := range c.Commands() {
				subc.DisableFlagParsing = true
			}
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal().Err(err).Msg("error reading from config file")
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(appConfig); err != nil {
		log.Fatal().Err(err).Msg("")
	}

	if err := obslog.SetLevel(appConfig.Log.Level, appConfig.Log.Format); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
