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

// Package obslog configures the process-wide zerolog logger the CLI
// and the driver package log through: rendered SQL text at debug
// level and transaction rollback failures at warn level.
package obslog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// SetLevel configures log.Logger's level and output format. Debug
// level additionally attaches the caller file:line, matching the
// verbosity a query-construction bug needs to be tracked down.
func SetLevel(levelStr, format string) error {
	var level zerolog.Level
	switch levelStr {
	case zerolog.LevelDebugValue:
		level = zerolog.DebugLevel
	case zerolog.LevelInfoValue:
		level = zerolog.InfoLevel
	case zerolog.LevelWarnValue:
		level = zerolog.WarnLevel
	case zerolog.LevelErrorValue:
		level = zerolog.ErrorLevel
	default:
		return fmt.Errorf("unknown log level %s", levelStr)
	}

	var out io.Writer
	switch format {
	case FormatJSON:
		out = os.Stderr
	case FormatText:
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	default:
		return fmt.Errorf("unknown log format %s", format)
	}

	base := zerolog.New(out).Level(level).With().Timestamp()
	if levelStr == zerolog.LevelDebugValue {
		base = base.Caller()
	}
	log.Logger = base.Int("pid", os.Getpid()).Logger()
	return nil
}

// RenderedSQL logs the SQL text produced for one statement at debug
// level, tagged with the dialect that rendered it.
func RenderedSQL(dialect, sql string) {
	log.Debug().Str("dialect", dialect).Str("sql", sql).Msg("rendered statement")
}
