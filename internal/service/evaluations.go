package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/logging"
	"github.com/protolab/prototype-portal/internal/repository"
	"github.com/protolab/prototype-portal/internal/store"
)

type EvaluationService struct {
	rt   router
	mock repository.EvaluationRepository
	real repository.EvaluationRepository
	gen  generation.TextGenerationClient
	log  *zap.Logger
}

func NewEvaluationService(src Sources, gen generation.TextGenerationClient, log *zap.Logger) *EvaluationService {
	rt := newRouter(src, log)
	return &EvaluationService{rt: rt, mock: src.Mock.Evaluations, real: src.Real.Evaluations, gen: gen, log: rt.log}
}

func (s *EvaluationService) List(ctx context.Context, useMock bool) []domain.PortalEvaluation {
	return items(read(ctx, s.rt, "evaluations.list", useMock,
		func() store.Result[domain.PortalEvaluation] { return s.real.List(ctx) },
		func() store.Result[domain.PortalEvaluation] { return s.mock.List(ctx) },
	))
}

func (s *EvaluationService) Get(ctx context.Context, useMock bool, id string) (domain.PortalEvaluation, error) {
	e, ok := read(ctx, s.rt, "evaluations.get", useMock,
		func() store.Result[domain.PortalEvaluation] { return s.real.Get(ctx, id) },
		func() store.Result[domain.PortalEvaluation] { return s.mock.Get(ctx, id) },
	).First()
	if !ok {
		return domain.PortalEvaluation{}, fmt.Errorf("evaluation %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// Create stores e with a sentiment derived from its free-text answer.
func (s *EvaluationService) Create(ctx context.Context, useMock bool, e domain.PortalEvaluation) (domain.PortalEvaluation, error) {
	if err := checkEvaluation(e); err != nil {
		return domain.PortalEvaluation{}, err
	}
	e.Sentiment = s.Sentiment(ctx, e.QualitativeResponse)
	return write(ctx, s.rt, "evaluations.create", useMock,
		func() (domain.PortalEvaluation, error) { return s.real.Create(ctx, e) },
		func() (domain.PortalEvaluation, error) { return s.mock.Create(ctx, e) },
	)
}

func (s *EvaluationService) Update(ctx context.Context, useMock bool, id string, e domain.PortalEvaluation) (domain.PortalEvaluation, error) {
	if err := checkEvaluation(e); err != nil {
		return domain.PortalEvaluation{}, err
	}
	if !e.Sentiment.Valid() {
		e.Sentiment = s.Sentiment(ctx, e.QualitativeResponse)
	}
	return write(ctx, s.rt, "evaluations.update", useMock,
		func() (domain.PortalEvaluation, error) { return s.real.Update(ctx, id, e) },
		func() (domain.PortalEvaluation, error) { return s.mock.Update(ctx, id, e) },
	)
}

func (s *EvaluationService) Delete(ctx context.Context, useMock bool, id string) error {
	_, err := write(ctx, s.rt, "evaluations.delete", useMock,
		func() (struct{}, error) { return struct{}{}, s.real.Delete(ctx, id) },
		func() (struct{}, error) { return struct{}{}, s.mock.Delete(ctx, id) },
	)
	return err
}

// Sentiment classifies text. Any generation failure, including disabled
// generation, yields neutral.
func (s *EvaluationService) Sentiment(ctx context.Context, text string) domain.Sentiment {
	if s.gen == nil || strings.TrimSpace(text) == "" {
		return domain.SentimentNeutral
	}
	out, err := s.gen.Complete(ctx, sentimentPrompt(text))
	if err != nil {
		if !errors.Is(err, generation.ErrDisabled) {
			logging.FromContext(ctx, s.log).Warn("sentiment analysis failed, using neutral", zap.Error(err))
		}
		return domain.SentimentNeutral
	}
	return parseSentiment(out)
}

func parseSentiment(out string) domain.Sentiment {
	out = strings.ToLower(out)
	switch {
	case strings.Contains(out, "positive"):
		return domain.SentimentPositive
	case strings.Contains(out, "negative"):
		return domain.SentimentNegative
	}
	return domain.SentimentNeutral
}
