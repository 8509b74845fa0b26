// Package validator turns raw store rows into typed domain entities. Each
// entity declares its row shape as a JSON schema; rows that pass the schema
// are then coerced field by field. Any failure rejects the row with a
// *domain.ValidationError.
package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/qri-io/jsonschema"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/store"
)

// Validator checks and converts rows for one entity.
type Validator[T any] struct {
	entity string
	schema *jsonschema.Schema
	coerce func(raw []byte) (T, []domain.FieldError)
}

func newValidator[T any](entity, schema string, coerce func([]byte) (T, []domain.FieldError)) *Validator[T] {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(schema), rs); err != nil {
		panic(fmt.Sprintf("validator: compile %s schema: %v", entity, err))
	}
	return &Validator[T]{entity: entity, schema: rs, coerce: coerce}
}

// Entity names the entity this validator produces.
func (v *Validator[T]) Entity() string { return v.entity }

// Validate converts a single row.
func (v *Validator[T]) Validate(ctx context.Context, row store.Row) (T, error) {
	var zero T

	raw, err := json.Marshal(normalize(row))
	if err != nil {
		return zero, domain.NewValidationError(v.entity, "row", err.Error())
	}

	kerrs, err := v.schema.ValidateBytes(ctx, raw)
	if err != nil {
		return zero, fmt.Errorf("validate %s: %w", v.entity, err)
	}
	if len(kerrs) > 0 {
		verr := &domain.ValidationError{Entity: v.entity}
		for _, ke := range kerrs {
			verr.Errors = append(verr.Errors, domain.FieldError{Field: fieldFromPath(ke.PropertyPath), Message: ke.Message})
		}
		return zero, verr
	}

	out, ferrs := v.coerce(raw)
	if len(ferrs) > 0 {
		return zero, &domain.ValidationError{Entity: v.entity, Errors: ferrs}
	}
	return out, nil
}

// Rows validates every row of res. A single bad row fails the whole batch.
func (v *Validator[T]) Rows(ctx context.Context, res store.Result[store.Row]) store.Result[T] {
	return store.Map(res, func(r store.Row) (T, error) {
		return v.Validate(ctx, r)
	})
}

// normalize rewrites driver-specific values into JSON-friendly ones.
func normalize(row store.Row) map[string]any {
	out := make(map[string]any, len(row))
	for k, val := range row {
		switch x := val.(type) {
		case [16]byte:
			out[k] = uuid.UUID(x).String()
		default:
			out[k] = val
		}
	}
	return out
}

func fieldFromPath(p string) string {
	if len(p) > 1 && p[0] == '/' {
		return p[1:]
	}
	if p == "" || p == "/" {
		return "row"
	}
	return p
}

func decodeError(err error) domain.FieldError {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return domain.FieldError{Field: te.Field, Message: fmt.Sprintf("cannot use %s as %s", te.Value, te.Type)}
	}
	var fe fieldDecodeError
	if errors.As(err, &fe) {
		return domain.FieldError{Field: "row", Message: fe.Error()}
	}
	return domain.FieldError{Field: "row", Message: err.Error()}
}
