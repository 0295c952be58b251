// Package pgxdriver implements the reldriver collaborator interfaces
// (pkg/reldriver) against pgx/v5's connection pool: the physical
// connection lifecycle and transaction sequencing the core treats as
// external collaborators. Acquisition releases the pooled connection
// on every exit path; transactions roll back on error and log, rather
// than return, a rollback failure so the caller sees the original
// error.
package pgxdriver

import (
	"context"
	"errors"

	shopspringdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/relq/relq/pkg/reldriver"
)

// Pool owns a pgxpool.Pool and implements reldriver.ConnProvider.
type Pool struct {
	pool *pgxpool.Pool
}

// Open creates a Pool against dsn, a standard PostgreSQL connection
// string/URL. Every physical connection registers shopspring/decimal
// against pgx's type map, so NUMERIC columns decode to decimal.Decimal
// rather than a plain string (GetBigDecimal depends on this).
func Open(ctx context.Context, dsn string) (*Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, classifyError(err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		shopspringdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, classifyError(err)
	}
	return &Pool{pool: pool}, nil
}

// Close releases every idle connection and waits for in-use ones to be
// returned.
func (p *Pool) Close() { p.pool.Close() }

// Acquire implements reldriver.ConnProvider: fn receives a live Conn
// for its duration, and the pool connection is always released,
// including when fn panics (Acquire's own defer runs on the unwind).
func (p *Pool) Acquire(ctx context.Context, fn func(ctx context.Context, conn reldriver.Conn) error) error {
	pooled, err := p.pool.Acquire(ctx)
	if err != nil {
		return classifyError(err)
	}
	defer pooled.Release()
	return fn(ctx, &Conn{q: pooled})
}

// WithTx runs fn inside a single transaction, committing on success
// and rolling back otherwise. A rollback failure (the connection was
// already dropped, say) is logged rather than returned, since the
// original error from fn is the one the caller needs to see.
func (p *Pool) WithTx(ctx context.Context, fn func(ctx context.Context, conn reldriver.Conn) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return classifyError(err)
	}

	if err := fn(ctx, &Conn{q: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Warn().Err(rbErr).Msg("failed to rollback transaction after statement error")
		}
		return err
	}

	return classifyError(tx.Commit(ctx))
}

// pgxQuerier is the subset of pgxpool.Conn and pgx.Tx this package
// needs; satisfying it with either lets Conn wrap a bare pooled
// connection or one participating in a transaction.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Conn implements reldriver.Conn against a pooled connection or an
// open transaction.
type Conn struct {
	q pgxQuerier
}

func (c *Conn) Exec(ctx context.Context, sql string) (int64, error) {
	tag, err := c.q.Exec(ctx, sql)
	if err != nil {
		return 0, classifyError(err)
	}
	return tag.RowsAffected(), nil
}

func (c *Conn) Query(ctx context.Context, sql string) (reldriver.Cursor, error) {
	rows, err := c.q.Query(ctx, sql)
	if err != nil {
		return nil, classifyError(err)
	}
	return &Cursor{rows: rows}, nil
}
