package rdb

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/store"
	"github.com/protolab/prototype-portal/internal/validator"
)

const feedbackTable = "feedback"

var feedbackColumns = []string{
	"id", "prototype_id", "user_id", "rating", "comment", "reaction", "categories", "created_at",
}

type FeedbackRepository struct{ base }

func (r *FeedbackRepository) List(ctx context.Context) store.Result[domain.Feedback] {
	q := r.sql().Select(feedbackColumns...).From(feedbackTable).OrderBy("created_at DESC")
	return query(ctx, r.base, validator.Feedback(), q)
}

func (r *FeedbackRepository) ListByPrototype(ctx context.Context, prototypeID string) store.Result[domain.Feedback] {
	q := r.sql().Select(feedbackColumns...).From(feedbackTable).
		Where(sq.Eq{"prototype_id": prototypeID}).OrderBy("created_at DESC")
	return query(ctx, r.base, validator.Feedback(), q)
}

func (r *FeedbackRepository) Get(ctx context.Context, id string) store.Result[domain.Feedback] {
	q := r.sql().Select(feedbackColumns...).From(feedbackTable).Where(sq.Eq{"id": id})
	return query(ctx, r.base, validator.Feedback(), q)
}

func feedbackValues(f domain.Feedback) (map[string]any, error) {
	var categories any
	if len(f.Categories) > 0 {
		var err error
		if categories, err = jsonText(f.Categories); err != nil {
			return nil, fmt.Errorf("encode categories: %w", err)
		}
	}
	return map[string]any{
		"prototype_id": f.PrototypeID,
		"user_id":      f.UserID,
		"rating":       f.Rating,
		"comment":      nullable(f.Comment),
		"reaction":     nullable(string(f.Reaction)),
		"categories":   categories,
	}, nil
}

func (r *FeedbackRepository) Create(ctx context.Context, f domain.Feedback) (domain.Feedback, error) {
	vals, err := feedbackValues(f)
	if err != nil {
		return domain.Feedback{}, err
	}
	q := r.sql().Insert(feedbackTable).SetMap(vals).Suffix(returning(feedbackColumns))
	return mutate(ctx, r.base, validator.Feedback(), q, "")
}

func (r *FeedbackRepository) Update(ctx context.Context, id string, f domain.Feedback) (domain.Feedback, error) {
	vals, err := feedbackValues(f)
	if err != nil {
		return domain.Feedback{}, err
	}
	q := r.sql().Update(feedbackTable).SetMap(vals).Where(sq.Eq{"id": id}).Suffix(returning(feedbackColumns))
	return mutate(ctx, r.base, validator.Feedback(), q, id)
}

func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.base, feedbackTable, "feedback", id)
}
