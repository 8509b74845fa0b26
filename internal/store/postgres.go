package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Querier is satisfied by *pgxpool.Pool and by pgxmock pools.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresExecutor runs statements over a pgx connection pool.
type PostgresExecutor struct {
	db  Querier
	log *zap.Logger
}

func NewPostgresExecutor(db Querier, log *zap.Logger) *PostgresExecutor {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostgresExecutor{db: db, log: log.Named("postgres")}
}

func (e *PostgresExecutor) Available() bool { return e.db != nil }

func (e *PostgresExecutor) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (e *PostgresExecutor) Execute(ctx context.Context, stmt Statement) Result[Row] {
	if e.db == nil {
		return Failed[Row](ErrStoreUnavailable)
	}

	rows, err := e.db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		e.log.Warn("query failed", zap.String("sql", stmt.SQL), zap.Error(err))
		return Failed[Row](fmt.Errorf("postgres query: %w", err))
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []Row
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			e.log.Warn("scan failed", zap.String("sql", stmt.SQL), zap.Error(err))
			return Failed[Row](fmt.Errorf("postgres scan: %w", err))
		}
		row := make(Row, len(fields))
		for i, fd := range fields {
			if i < len(vals) {
				row[fd.Name] = vals[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		e.log.Warn("rows failed", zap.String("sql", stmt.SQL), zap.Error(err))
		return Failed[Row](fmt.Errorf("postgres rows: %w", err))
	}
	return Ok(out)
}
