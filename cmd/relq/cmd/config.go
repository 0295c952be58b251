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
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/relq/relq/pkg/dialect"
	"github.com/relq/relq/pkg/dialect/ansi"
	"github.com/relq/relq/pkg/dialect/postgres"
)

// LogConfig is the log.format/log.level config subtree, bound through
// viper's "log.format"/"log.level" keys.
type LogConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// Config is this CLI's root configuration, unmarshaled by viper from
// flags, environment, and an optional config file.
type Config struct {
	Log     LogConfig `mapstructure:"log"`
	DSN     string    `mapstructure:"dsn"`
	Dialect string    `mapstructure:"dialect"`
	Timeout string    `mapstructure:"timeout"`
}

// NewConfig returns a Config with the same defaults its flags declare.
func NewConfig() *Config {
	return &Config{
		Log:     LogConfig{Format: "text", Level: "info"},
		Dialect: "ansi",
		Timeout: "30s",
	}
}

// ResolveDialect maps the --dialect flag's name to a concrete
// dialect.Dialect value.
func (c *Config) ResolveDialect() (dialect.Dialect, error) {
	switch c.Dialect {
	case "ansi":
		return ansi.Dialect(), nil
	case "postgres":
		return postgres.Dialect(), nil
	default:
		return dialect.Dialect{}, fmt.Errorf("unknown dialect %q (want ansi or postgres)", c.Dialect)
	}
}

// ResolveTimeout parses the --timeout flag's duration string,
// accepting go-str2duration's extended units (days, weeks) beyond
// time.ParseDuration's grammar.
func (c *Config) ResolveTimeout() (time.Duration, error) {
	return str2duration.ParseDuration(c.Timeout)
}
