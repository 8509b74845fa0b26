// Package service implements the portal's entity services. Every operation
// takes a useMock flag; reads on the real path fall back to the mock store
// when the real store answers with nothing or fails, and that decision is
// logged and counted here.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/logging"
	"github.com/protolab/prototype-portal/internal/repository"
	"github.com/protolab/prototype-portal/internal/store"
)

// Sources is the pair of data sources every service routes between.
type Sources struct {
	Mock repository.Set
	Real repository.Set
	// RealAvailable is decided once at startup from configuration.
	RealAvailable bool
	Stats         *store.Stats
}

type router struct {
	realAvailable bool
	stats         *store.Stats
	log           *zap.Logger
}

func newRouter(src Sources, log *zap.Logger) router {
	if log == nil {
		log = zap.NewNop()
	}
	stats := src.Stats
	if stats == nil {
		stats = &store.Stats{}
	}
	return router{realAvailable: src.RealAvailable && src.Real.Prototypes != nil, stats: stats, log: log}
}

// useReal reports whether a call should go to the real store.
func (r router) useReal(useMock bool) bool {
	return !useMock && r.realAvailable
}

// read routes a read and applies the fallback policy: Ok results from the
// real store are returned as is, Empty and Failed results are replaced by
// the mock answer.
func read[T any](ctx context.Context, r router, op string, useMock bool, real, mock func() store.Result[T]) store.Result[T] {
	if !r.useReal(useMock) {
		return mock()
	}

	res := real()
	r.stats.RecordRead(res.Kind())

	log := logging.FromContext(ctx, r.log)
	switch res.Kind() {
	case store.KindOK:
		return res
	case store.KindEmpty:
		log.Info("real store returned no rows, serving mock data", zap.String("op", op))
	case store.KindFailed:
		log.Warn("real store read failed, serving mock data", zap.String("op", op), zap.Error(res.Err()))
	}
	return mock()
}

// write routes a mutation. Real mutations never fall back; a missing record
// is an answer, not a store failure.
// items returns the rows of r, never nil, so lists encode as [].
func items[T any](r store.Result[T]) []T {
	if out := r.Items(); out != nil {
		return out
	}
	return []T{}
}

func write[T any](ctx context.Context, r router, op string, useMock bool, real, mock func() (T, error)) (T, error) {
	if !r.useReal(useMock) {
		return mock()
	}
	out, err := real()
	if err != nil && !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrEmailInUse) {
		r.stats.RecordMutationFailure()
		logging.FromContext(ctx, r.log).Warn("real store mutation failed", zap.String("op", op), zap.Error(err))
	}
	return out, err
}
