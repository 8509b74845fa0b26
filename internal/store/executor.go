package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ErrStoreUnavailable is the reason reported when the real store was never
// configured.
var ErrStoreUnavailable = errors.New("real store not configured")

// Row is one record keyed by column name, exactly as the store returned it.
type Row map[string]any

// Statement is a SQL string with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Executor runs statements against the real store. Execute never returns an
// error: connectivity, statement and configuration problems all surface as a
// Failed result and are logged by the implementation.
type Executor interface {
	Execute(ctx context.Context, stmt Statement) Result[Row]
	// Available is fixed at construction from configuration.
	Available() bool
	Placeholder() sq.PlaceholderFormat
}

// Builder returns a squirrel builder using the executor's placeholder style.
func Builder(e Executor) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(e.Placeholder())
}

// Build renders a squirrel builder into a Statement.
func Build(b sq.Sqlizer) (Statement, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return Statement{}, fmt.Errorf("build statement: %w", err)
	}
	return Statement{SQL: sql, Args: args}, nil
}

// Probe runs a trivial query and reports why it failed, if it did.
func Probe(ctx context.Context, e Executor) error {
	if !e.Available() {
		return ErrStoreUnavailable
	}
	res := e.Execute(ctx, Statement{SQL: "SELECT 1 AS ok"})
	if res.Kind() == KindFailed {
		return res.Err()
	}
	return nil
}

// Unavailable is the executor used when configuration is incomplete.
type Unavailable struct{}

func (Unavailable) Execute(context.Context, Statement) Result[Row] {
	return Failed[Row](ErrStoreUnavailable)
}

func (Unavailable) Available() bool { return false }

func (Unavailable) Placeholder() sq.PlaceholderFormat { return sq.Question }
