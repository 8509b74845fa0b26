package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/repository"
	"github.com/protolab/prototype-portal/internal/store"
)

type UserService struct {
	rt   router
	mock repository.UserRepository
	real repository.UserRepository
}

func NewUserService(src Sources, log *zap.Logger) *UserService {
	return &UserService{rt: newRouter(src, log), mock: src.Mock.Users, real: src.Real.Users}
}

func (s *UserService) List(ctx context.Context, useMock bool) []domain.User {
	return items(read(ctx, s.rt, "users.list", useMock,
		func() store.Result[domain.User] { return s.real.List(ctx) },
		func() store.Result[domain.User] { return s.mock.List(ctx) },
	))
}

func (s *UserService) Get(ctx context.Context, useMock bool, id string) (domain.User, error) {
	u, ok := read(ctx, s.rt, "users.get", useMock,
		func() store.Result[domain.User] { return s.real.Get(ctx, id) },
		func() store.Result[domain.User] { return s.mock.Get(ctx, id) },
	).First()
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

// FindByEmail returns the user with exactly email, routed and falling back
// like every other read.
func (s *UserService) FindByEmail(ctx context.Context, useMock bool, email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	u, ok := read(ctx, s.rt, "users.find_by_email", useMock,
		func() store.Result[domain.User] { return s.real.FindByEmail(ctx, email) },
		func() store.Result[domain.User] { return s.mock.FindByEmail(ctx, email) },
	).First()
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return u, nil
}

// Create adds a user. Email addresses are unique.
func (s *UserService) Create(ctx context.Context, useMock bool, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if err := checkUser(u); err != nil {
		return domain.User{}, err
	}
	return write(ctx, s.rt, "users.create", useMock,
		func() (domain.User, error) {
			if err := s.emailFree(ctx, u.Email, ""); err != nil {
				return domain.User{}, err
			}
			return s.real.Create(ctx, u)
		},
		func() (domain.User, error) { return s.mock.Create(ctx, u) },
	)
}

func (s *UserService) Update(ctx context.Context, useMock bool, id string, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if err := checkUser(u); err != nil {
		return domain.User{}, err
	}
	return write(ctx, s.rt, "users.update", useMock,
		func() (domain.User, error) {
			if err := s.emailFree(ctx, u.Email, id); err != nil {
				return domain.User{}, err
			}
			return s.real.Update(ctx, id, u)
		},
		func() (domain.User, error) { return s.mock.Update(ctx, id, u) },
	)
}

// emailFree checks the real store for another user holding email. The mock
// repository enforces the same rule itself.
func (s *UserService) emailFree(ctx context.Context, email, self string) error {
	for _, other := range s.real.FindByEmail(ctx, email).Items() {
		if other.ID != self {
			return fmt.Errorf("user %s: %w", email, domain.ErrEmailInUse)
		}
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, useMock bool, id string) error {
	_, err := write(ctx, s.rt, "users.delete", useMock,
		func() (struct{}, error) { return struct{}{}, s.real.Delete(ctx, id) },
		func() (struct{}, error) { return struct{}{}, s.mock.Delete(ctx, id) },
	)
	return err
}
