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
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/relq/relq/internal/demoschema"
	"github.com/relq/relq/internal/obslog"
	"github.com/relq/relq/pkg/relrender"
)

var renderCmd = &cobra.Command{
	Use:   "render [scenario]",
	Short: "Render a built-in demo query to SQL text without connecting to a database",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().Bool("list", false, "list available scenario names and exit")
	renderCmd.Flags().String("output", "text", "output format [text|yaml|json]")
}

// renderedStatement is the document the yaml/json output formats emit,
// pairing the statement text with the scenario and dialect that
// produced it.
type renderedStatement struct {
	Scenario string `yaml:"scenario" json:"scenario"`
	Dialect  string `yaml:"dialect" json:"dialect"`
	SQL      string `yaml:"sql" json:"sql"`
}

func runRender(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list {
		names := make([]string, 0, len(demoschema.Scenarios))
		for _, s := range demoschema.Scenarios {
			names = append(names, s.Name)
		}
		sort.Strings(names)
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
		return nil
	}

	name := "names"
	if len(args) == 1 {
		name = args[0]
	}

	scenario, err := findScenario(name)
	if err != nil {
		return err
	}

	d, err := appConfig.ResolveDialect()
	if err != nil {
		return err
	}

	read, err := scenario.Build()
	if err != nil {
		return fmt.Errorf("building %s: %w", name, err)
	}

	sql, err := relrender.Render(read, d)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}

	obslog.RenderedSQL(appConfig.Dialect, sql)

	format, _ := cmd.Flags().GetString("output")
	switch format {
	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), sql)
		return nil
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		if err := enc.Encode(renderedStatement{Scenario: name, Dialect: appConfig.Dialect, SQL: sql}); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(renderedStatement{Scenario: name, Dialect: appConfig.Dialect, SQL: sql})
	default:
		return fmt.Errorf("unknown output format %q (want text, yaml or json)", format)
	}
}

func findScenario(name string) (demoschema.Scenario, error) {
	for _, s := range demoschema.Scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return demoschema.Scenario{}, fmt.Errorf("unknown scenario %q (use --list to see available names)", name)
}
