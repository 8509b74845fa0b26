package rdb

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/store"
	"github.com/protolab/prototype-portal/internal/validator"
)

const prototypesTable = "prototypes"

var prototypeColumns = []string{
	"id", "title", "description", "image_url", "tags", "rating", "author",
	"demo_url", "created_at", "author_id", "access_level", "allowed_users",
}

type PrototypeRepository struct{ base }

func (r *PrototypeRepository) List(ctx context.Context) store.Result[domain.Prototype] {
	q := r.sql().Select(prototypeColumns...).From(prototypesTable).OrderBy("created_at DESC")
	return query(ctx, r.base, validator.Prototype(), q)
}

func (r *PrototypeRepository) Get(ctx context.Context, id string) store.Result[domain.Prototype] {
	q := r.sql().Select(prototypeColumns...).From(prototypesTable).Where(sq.Eq{"id": id})
	return query(ctx, r.base, validator.Prototype(), q)
}

func prototypeValues(p domain.Prototype) map[string]any {
	var allowed any
	if len(p.AllowedUsers) > 0 {
		allowed = validator.JoinList(p.AllowedUsers)
	}
	return map[string]any{
		"title":         p.Title,
		"description":   p.Description,
		"image_url":     p.ImageURL,
		"tags":          validator.JoinList(p.Tags),
		"rating":        p.Rating,
		"author":        p.Author,
		"demo_url":      nullable(p.DemoURL),
		"author_id":     p.AuthorID,
		"access_level":  string(p.AccessLevel),
		"allowed_users": allowed,
	}
}

func (r *PrototypeRepository) Create(ctx context.Context, p domain.Prototype) (domain.Prototype, error) {
	q := r.sql().Insert(prototypesTable).SetMap(prototypeValues(p)).Suffix(returning(prototypeColumns))
	return mutate(ctx, r.base, validator.Prototype(), q, "")
}

func (r *PrototypeRepository) Update(ctx context.Context, id string, p domain.Prototype) (domain.Prototype, error) {
	q := r.sql().Update(prototypesTable).SetMap(prototypeValues(p)).
		Where(sq.Eq{"id": id}).Suffix(returning(prototypeColumns))
	return mutate(ctx, r.base, validator.Prototype(), q, id)
}

func (r *PrototypeRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.base, prototypesTable, "prototype", id)
}
