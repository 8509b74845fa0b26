package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/repository"
	"github.com/protolab/prototype-portal/internal/store"
)

type FeedbackService struct {
	rt   router
	mock repository.FeedbackRepository
	real repository.FeedbackRepository
}

func NewFeedbackService(src Sources, log *zap.Logger) *FeedbackService {
	return &FeedbackService{rt: newRouter(src, log), mock: src.Mock.Feedback, real: src.Real.Feedback}
}

func (s *FeedbackService) List(ctx context.Context, useMock bool) []domain.Feedback {
	return items(read(ctx, s.rt, "feedback.list", useMock,
		func() store.Result[domain.Feedback] { return s.real.List(ctx) },
		func() store.Result[domain.Feedback] { return s.mock.List(ctx) },
	))
}

func (s *FeedbackService) ListByPrototype(ctx context.Context, useMock bool, prototypeID string) []domain.Feedback {
	return items(read(ctx, s.rt, "feedback.list_by_prototype", useMock,
		func() store.Result[domain.Feedback] { return s.real.ListByPrototype(ctx, prototypeID) },
		func() store.Result[domain.Feedback] { return s.mock.ListByPrototype(ctx, prototypeID) },
	))
}

func (s *FeedbackService) Get(ctx context.Context, useMock bool, id string) (domain.Feedback, error) {
	f, ok := read(ctx, s.rt, "feedback.get", useMock,
		func() store.Result[domain.Feedback] { return s.real.Get(ctx, id) },
		func() store.Result[domain.Feedback] { return s.mock.Get(ctx, id) },
	).First()
	if !ok {
		return domain.Feedback{}, fmt.Errorf("feedback %s: %w", id, domain.ErrNotFound)
	}
	return f, nil
}

func (s *FeedbackService) Create(ctx context.Context, useMock bool, f domain.Feedback) (domain.Feedback, error) {
	if err := checkFeedback(f); err != nil {
		return domain.Feedback{}, err
	}
	return write(ctx, s.rt, "feedback.create", useMock,
		func() (domain.Feedback, error) { return s.real.Create(ctx, f) },
		func() (domain.Feedback, error) { return s.mock.Create(ctx, f) },
	)
}

func (s *FeedbackService) Update(ctx context.Context, useMock bool, id string, f domain.Feedback) (domain.Feedback, error) {
	if err := checkFeedback(f); err != nil {
		return domain.Feedback{}, err
	}
	return write(ctx, s.rt, "feedback.update", useMock,
		func() (domain.Feedback, error) { return s.real.Update(ctx, id, f) },
		func() (domain.Feedback, error) { return s.mock.Update(ctx, id, f) },
	)
}

func (s *FeedbackService) Delete(ctx context.Context, useMock bool, id string) error {
	_, err := write(ctx, s.rt, "feedback.delete", useMock,
		func() (struct{}, error) { return struct{}{}, s.real.Delete(ctx, id) },
		func() (struct{}, error) { return struct{}{}, s.mock.Delete(ctx, id) },
	)
	return err
}
