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
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/relq/relq/internal/demoschema"
	"github.com/relq/relq/internal/obslog"
	"github.com/relq/relq/internal/pgxdriver"
	"github.com/relq/relq/pkg/dialect"
	"github.com/relq/relq/pkg/reldriver"
	"github.com/relq/relq/pkg/relexpr"
	"github.com/relq/relq/pkg/relquery"
	"github.com/relq/relq/pkg/relrender"
	"github.com/relq/relq/pkg/relrow"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Execute one or more built-in demo queries against a live PostgreSQL database",
	Args:  cobra.ArbitraryArgs,
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	if appConfig.DSN == "" {
		return fmt.Errorf("run requires --dsn")
	}

	timeout, err := appConfig.ResolveTimeout()
	if err != nil {
		return fmt.Errorf("parsing --timeout: %w", err)
	}

	d, err := appConfig.ResolveDialect()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		for _, s := range demoschema.Scenarios {
			names = append(names, s.Name)
		}
	}

	scenarios := make([]demoschema.Scenario, 0, len(names))
	for _, name := range names {
		s, err := findScenario(name)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, s)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := pgxdriver.Open(ctx, appConfig.DSN)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer pool.Close()

	// Each scenario acquires its own pooled connection and runs
	// concurrently; errgroup keeps them bound to one shared context so
	// a parent cancellation (or the --timeout deadline) unwinds all of
	// them together.
	group, gctx := errgroup.WithContext(ctx)
	results := make([]string, len(scenarios))
	for i, s := range scenarios {
		i, s := i, s
		group.Go(func() error {
			out, err := runScenario(gctx, pool, d, s)
			if err != nil {
				results[i] = fmt.Sprintf("-- %s --\nerror: %v", s.Name, err)
				return nil
			}
			results[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	return nil
}

func runScenario(ctx context.Context, pool *pgxdriver.Pool, d dialect.Dialect, s demoschema.Scenario) (string, error) {
	read, err := s.Build()
	if err != nil {
		return "", fmt.Errorf("building %s: %w", s.Name, err)
	}

	sql, err := relrender.Render(read, d)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", s.Name, err)
	}
	obslog.RenderedSQL(appConfig.Dialect, sql)

	shape := read.Selection().Tags()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(headerNames(read))

	err = pool.Acquire(ctx, func(ctx context.Context, conn reldriver.Conn) error {
		cursor, err := conn.Query(ctx, sql)
		if err != nil {
			return err
		}
		return relrow.Each(cursor, shape, func(row relrow.Row) error {
			cells := make([]string, row.Len())
			for i := 0; i < row.Len(); i++ {
				v := row.Get(i)
				if v.IsNull() {
					cells[i] = "NULL"
				} else {
					// decoded cells span every scalar kind plus the
					// fmt.Stringer temporal values; cast handles the
					// whole family.
					cells[i] = cast.ToString(v.V)
				}
			}
			table.Append(cells)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("executing %s: %w", s.Name, err)
	}

	table.Render()
	return fmt.Sprintf("-- %s --\n%s", s.Name, buf.String()), nil
}

// headerNames labels each projected column by its selection alias, or
// by its bare column name when unaliased; a computed expression with
// neither is labeled positionally.
func headerNames(r *relquery.Read) []string {
	exprs := r.Selection().Exprs
	names := make([]string, len(exprs))
	for i, e := range exprs {
		if label := columnLabel(e); label != "" {
			names[i] = label
			continue
		}
		names[i] = fmt.Sprintf("col_%d", i+1)
	}
	return names
}

func columnLabel(e relexpr.Expr) string {
	switch n := e.(type) {
	case relexpr.Aliased:
		return n.Label
	case relexpr.ColumnRef:
		return n.Column
	default:
		return ""
	}
}
