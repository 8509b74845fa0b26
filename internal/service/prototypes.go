package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/logging"
	"github.com/protolab/prototype-portal/internal/repository"
	"github.com/protolab/prototype-portal/internal/store"
)

// PrototypeFilter narrows a prototype listing.
type PrototypeFilter struct {
	// Query matches title or description, ignoring case.
	Query string
	// Tags must all be present on a prototype.
	Tags []string
}

func (f PrototypeFilter) match(p domain.Prototype) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	for _, tag := range f.Tags {
		if !slices.Contains(p.Tags, tag) {
			return false
		}
	}
	return true
}

type PrototypeService struct {
	rt     router
	mock   repository.PrototypeRepository
	real   repository.PrototypeRepository
	images generation.ImageGenerator
	log    *zap.Logger
}

// NewPrototypeService creates a PrototypeService. images may be nil, in which
// case prototypes are created without generated artwork.
func NewPrototypeService(src Sources, images generation.ImageGenerator, log *zap.Logger) *PrototypeService {
	rt := newRouter(src, log)
	return &PrototypeService{
		rt:     rt,
		mock:   src.Mock.Prototypes,
		real:   src.Real.Prototypes,
		images: images,
		log:    rt.log,
	}
}

func (s *PrototypeService) all(ctx context.Context, useMock bool) []domain.Prototype {
	return read(ctx, s.rt, "prototypes.list", useMock,
		func() store.Result[domain.Prototype] { return s.real.List(ctx) },
		func() store.Result[domain.Prototype] { return s.mock.List(ctx) },
	).Items()
}

// List returns the prototypes viewer may see that match f.
func (s *PrototypeService) List(ctx context.Context, useMock bool, viewer *domain.User, f PrototypeFilter) []domain.Prototype {
	out := []domain.Prototype{}
	for _, p := range s.all(ctx, useMock) {
		if domain.CanView(viewer, p) && f.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Tags returns every distinct tag on the prototypes viewer may see, in
// first-seen order.
func (s *PrototypeService) Tags(ctx context.Context, useMock bool, viewer *domain.User) []string {
	out := []string{}
	for _, p := range s.List(ctx, useMock, viewer, PrototypeFilter{}) {
		for _, tag := range p.Tags {
			if !slices.Contains(out, tag) {
				out = append(out, tag)
			}
		}
	}
	return out
}

// Get returns the prototype with id. Prototypes the viewer may not see are
// reported as not found.
func (s *PrototypeService) Get(ctx context.Context, useMock bool, viewer *domain.User, id string) (domain.Prototype, error) {
	p, ok := read(ctx, s.rt, "prototypes.get", useMock,
		func() store.Result[domain.Prototype] { return s.real.Get(ctx, id) },
		func() store.Result[domain.Prototype] { return s.mock.Get(ctx, id) },
	).First()
	if !ok || !domain.CanView(viewer, p) {
		return domain.Prototype{}, fmt.Errorf("prototype %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// Create stores p. When p has no image and image generation is available, an
// image is generated from the description; a failed generation is logged and
// the prototype is stored without one.
func (s *PrototypeService) Create(ctx context.Context, useMock bool, p domain.Prototype) (domain.Prototype, error) {
	p = normalizePrototype(p)
	if err := checkPrototype(p); err != nil {
		return domain.Prototype{}, err
	}
	if p.ImageURL == "" {
		p.ImageURL = s.generateImage(ctx, p)
	}
	return write(ctx, s.rt, "prototypes.create", useMock,
		func() (domain.Prototype, error) { return s.real.Create(ctx, p) },
		func() (domain.Prototype, error) { return s.mock.Create(ctx, p) },
	)
}

func (s *PrototypeService) Update(ctx context.Context, useMock bool, id string, p domain.Prototype) (domain.Prototype, error) {
	p = normalizePrototype(p)
	if err := checkPrototype(p); err != nil {
		return domain.Prototype{}, err
	}
	return write(ctx, s.rt, "prototypes.update", useMock,
		func() (domain.Prototype, error) { return s.real.Update(ctx, id, p) },
		func() (domain.Prototype, error) { return s.mock.Update(ctx, id, p) },
	)
}

func (s *PrototypeService) Delete(ctx context.Context, useMock bool, id string) error {
	_, err := write(ctx, s.rt, "prototypes.delete", useMock,
		func() (struct{}, error) { return struct{}{}, s.real.Delete(ctx, id) },
		func() (struct{}, error) { return struct{}{}, s.mock.Delete(ctx, id) },
	)
	return err
}

func (s *PrototypeService) generateImage(ctx context.Context, p domain.Prototype) string {
	if s.images == nil {
		return ""
	}
	url, err := s.images.GenerateImage(ctx, imagePrompt(p.Description))
	if err != nil {
		if !errors.Is(err, generation.ErrDisabled) {
			logging.FromContext(ctx, s.log).Warn("image generation failed", zap.Error(err))
		}
		return ""
	}
	return url
}
