// Package auth implements portal sign-in, signed sessions and the role checks
// applied to admin routes.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/logging"
	"github.com/protolab/prototype-portal/internal/repository"
	"github.com/protolab/prototype-portal/internal/validator"
)

// Provider signs users in and out.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (domain.User, error)
	SignUp(ctx context.Context, in SignUpInput) (domain.User, error)
	SignOut(ctx context.Context) error
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// MockProvider authenticates against the mock user fixtures. Every account
// shares one password, kept only as a bcrypt hash.
type MockProvider struct {
	users repository.UserRepository
	hash  []byte
	now   func() time.Time
	log   *zap.Logger
}

func NewMockProvider(users repository.UserRepository, password string, log *zap.Logger) (*MockProvider, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash mock password: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MockProvider{users: users, hash: hash, now: time.Now, log: log}, nil
}

// SignIn matches email exactly and records the login time.
func (p *MockProvider) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	u, ok := p.users.FindByEmail(ctx, email).First()
	if !ok || bcrypt.CompareHashAndPassword(p.hash, []byte(password)) != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	out, err := p.users.TouchLogin(ctx, u.ID, p.now())
	if err != nil {
		return domain.User{}, fmt.Errorf("record login for %s: %w", u.ID, err)
	}
	logging.FromContext(ctx, p.log).Info("user signed in", zap.String("user_id", out.ID), zap.String("role", string(out.Role)))
	return out, nil
}

// SignUp appends a new user. The password is not stored; mock accounts all
// sign in with the shared password.
func (p *MockProvider) SignUp(ctx context.Context, in SignUpInput) (domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = domain.RoleReader
	}
	if err := checkSignUp(in); err != nil {
		return domain.User{}, err
	}
	if _, ok := p.users.FindByEmail(ctx, in.Email).First(); ok {
		return domain.User{}, fmt.Errorf("sign up %s: %w", in.Email, domain.ErrEmailInUse)
	}

	created, err := p.users.Create(ctx, domain.User{Email: in.Email, Name: strings.TrimSpace(in.Name), Role: in.Role})
	if err != nil {
		return domain.User{}, fmt.Errorf("sign up %s: %w", in.Email, err)
	}
	return p.users.TouchLogin(ctx, created.ID, created.CreatedAt)
}

func (p *MockProvider) SignOut(context.Context) error { return nil }

func checkSignUp(in SignUpInput) error {
	v := &domain.ValidationError{Entity: "signup"}
	if !validator.ValidEmail(in.Email) {
		v.Errors = append(v.Errors, domain.FieldError{Field: "email", Message: "must be a valid address"})
	}
	if in.Password == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "password", Message: "is required"})
	}
	if strings.TrimSpace(in.Name) == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "name", Message: "is required"})
	}
	if !in.Role.Valid() {
		v.Errors = append(v.Errors, domain.FieldError{Field: "role", Message: "must be admin, member or reader"})
	}
	if len(v.Errors) > 0 {
		return v
	}
	return nil
}
