// Package rdb implements the repositories on top of a store.Executor. Every
// row that comes back is checked by the entity's validator before it is
// handed out.
package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/repository"
	"github.com/protolab/prototype-portal/internal/store"
	"github.com/protolab/prototype-portal/internal/validator"
)

var errNoRowReturned = errors.New("statement returned no row")

// NewRepositories builds the real-store repository set over exec.
func NewRepositories(exec store.Executor) repository.Set {
	b := base{exec: exec}
	return repository.Set{
		Prototypes:  &PrototypeRepository{base: b},
		Feedback:    &FeedbackRepository{base: b},
		Users:       &UserRepository{base: b},
		Evaluations: &EvaluationRepository{base: b},
	}
}

type base struct {
	exec store.Executor
}

func (b base) sql() sq.StatementBuilderType {
	return store.Builder(b.exec)
}

func (b base) run(ctx context.Context, q sq.Sqlizer) store.Result[store.Row] {
	stmt, err := store.Build(q)
	if err != nil {
		return store.Failed[store.Row](err)
	}
	return b.exec.Execute(ctx, stmt)
}

// query runs a read and validates every returned row.
func query[T any](ctx context.Context, b base, v *validator.Validator[T], q sq.Sqlizer) store.Result[T] {
	return v.Rows(ctx, b.run(ctx, q))
}

// mutate runs a RETURNING statement and validates the first row. An empty
// answer means the targeted record does not exist.
func mutate[T any](ctx context.Context, b base, v *validator.Validator[T], q sq.Sqlizer, id string) (T, error) {
	var zero T
	res := b.run(ctx, q)
	switch res.Kind() {
	case store.KindFailed:
		return zero, fmt.Errorf("%s: %w", v.Entity(), res.Err())
	case store.KindEmpty:
		if id == "" {
			return zero, fmt.Errorf("%s: %w", v.Entity(), errNoRowReturned)
		}
		return zero, fmt.Errorf("%s %s: %w", v.Entity(), id, domain.ErrNotFound)
	}
	row, _ := res.First()
	return v.Validate(ctx, row)
}

// remove runs a DELETE ... RETURNING id and maps no row to ErrNotFound.
func remove(ctx context.Context, b base, table, entity, id string) error {
	res := b.run(ctx, b.sql().Delete(table).Where(sq.Eq{"id": id}).Suffix("RETURNING id"))
	switch res.Kind() {
	case store.KindFailed:
		return fmt.Errorf("%s: %w", entity, res.Err())
	case store.KindEmpty:
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func jsonText(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
