// Package datamode holds the process-wide mock/real switch. The value is
// advisory: handlers read it to decide the useMock flag they pass to
// services, and a request may override it.
package datamode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/domain"
)

// Key is the persisted key holding the mode.
const Key = "dataMode"

// Store persists the raw mode value.
type Store interface {
	// Load returns the stored value and whether one exists.
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, value string) error
}

type State struct {
	mu    sync.RWMutex
	mode  domain.DataMode
	store Store
	log   *zap.Logger
}

// Restore reads the persisted mode. Missing, unreadable and unknown values
// all start the process in mock mode.
func Restore(ctx context.Context, store Store, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{mode: domain.ModeMock, store: store, log: log.Named("datamode")}

	raw, ok, err := store.Load(ctx)
	switch {
	case err != nil:
		s.log.Warn("restore data mode failed, using mock", zap.Error(err))
	case !ok:
		s.log.Info("no persisted data mode, using mock")
	default:
		if m, valid := domain.ParseDataMode(raw); valid {
			s.mode = m
		} else {
			s.log.Warn("ignoring invalid persisted data mode", zap.String("value", raw))
		}
	}
	return s
}

func (s *State) Mode() domain.DataMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *State) UseMock() bool {
	return s.Mode() == domain.ModeMock
}

// Set persists m and then makes it current. A persistence failure leaves the
// current mode unchanged.
func (s *State) Set(ctx context.Context, m domain.DataMode) error {
	if !m.Valid() {
		return domain.NewValidationError("dataMode", "mode", fmt.Sprintf("must be mock or real, got %q", m))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, string(m)); err != nil {
		return fmt.Errorf("persist data mode: %w", err)
	}
	if s.mode != m {
		s.log.Info("data mode changed", zap.String("from", string(s.mode)), zap.String("to", string(m)))
	}
	s.mode = m
	return nil
}

// Toggle flips between mock and real.
func (s *State) Toggle(ctx context.Context) (domain.DataMode, error) {
	next := domain.ModeReal
	if s.Mode() == domain.ModeReal {
		next = domain.ModeMock
	}
	if err := s.Set(ctx, next); err != nil {
		return s.Mode(), err
	}
	return next, nil
}

// Resolve returns the mode for one request: a valid override wins, anything
// else falls back to the current state.
func (s *State) Resolve(override string) domain.DataMode {
	if m, ok := domain.ParseDataMode(strings.ToLower(strings.TrimSpace(override))); ok {
		return m
	}
	return s.Mode()
}
