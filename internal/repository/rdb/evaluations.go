package rdb

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/store"
	"github.com/protolab/prototype-portal/internal/validator"
)

const evaluationsTable = "portal_evaluations"

var evaluationColumns = []string{
	"id", "user_id", "overall_rating", "likert_responses", "qualitative_response", "sentiment", "created_at",
}

type EvaluationRepository struct{ base }

func (r *EvaluationRepository) List(ctx context.Context) store.Result[domain.PortalEvaluation] {
	q := r.sql().Select(evaluationColumns...).From(evaluationsTable).OrderBy("created_at DESC")
	return query(ctx, r.base, validator.Evaluation(), q)
}

func (r *EvaluationRepository) Get(ctx context.Context, id string) store.Result[domain.PortalEvaluation] {
	q := r.sql().Select(evaluationColumns...).From(evaluationsTable).Where(sq.Eq{"id": id})
	return query(ctx, r.base, validator.Evaluation(), q)
}

func evaluationValues(e domain.PortalEvaluation) (map[string]any, error) {
	likert, err := jsonText(e.LikertResponses)
	if err != nil {
		return nil, fmt.Errorf("encode likert responses: %w", err)
	}
	return map[string]any{
		"user_id":              e.UserID,
		"overall_rating":       e.OverallRating,
		"likert_responses":     likert,
		"qualitative_response": e.QualitativeResponse,
		"sentiment":            nullable(string(e.Sentiment)),
	}, nil
}

func (r *EvaluationRepository) Create(ctx context.Context, e domain.PortalEvaluation) (domain.PortalEvaluation, error) {
	vals, err := evaluationValues(e)
	if err != nil {
		return domain.PortalEvaluation{}, err
	}
	q := r.sql().Insert(evaluationsTable).SetMap(vals).Suffix(returning(evaluationColumns))
	return mutate(ctx, r.base, validator.Evaluation(), q, "")
}

func (r *EvaluationRepository) Update(ctx context.Context, id string, e domain.PortalEvaluation) (domain.PortalEvaluation, error) {
	vals, err := evaluationValues(e)
	if err != nil {
		return domain.PortalEvaluation{}, err
	}
	q := r.sql().Update(evaluationsTable).SetMap(vals).Where(sq.Eq{"id": id}).Suffix(returning(evaluationColumns))
	return mutate(ctx, r.base, validator.Evaluation(), q, id)
}

func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.base, evaluationsTable, "evaluation", id)
}
