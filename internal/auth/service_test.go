package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/repository/memory"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newMockProvider(t *testing.T) (*MockProvider, *memory.Store) {
	t.Helper()
	ms := memory.NewStore(memory.WithClock(func() time.Time { return fixedNow }))
	p, err := NewMockProvider(ms.Repositories().Users, "admin123", nil)
	require.NoError(t, err)
	p.now = func() time.Time { return fixedNow }
	return p, ms
}

func TestSignInFixtures(t *testing.T) {
	p, _ := newMockProvider(t)
	ctx := context.Background()

	tests := []struct {
		email string
		role  domain.Role
	}{
		{"admin@itau.com.br", domain.RoleAdmin},
		{"member@itau.com.br", domain.RoleMember},
		{"reader@itau.com.br", domain.RoleReader},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			u, err := p.SignIn(ctx, tt.email, "admin123")
			require.NoError(t, err)
			assert.Equal(t, tt.role, u.Role)
			require.NotNil(t, u.LastLogin)
			assert.Equal(t, fixedNow, *u.LastLogin)
		})
	}
}

func TestSignInRejects(t *testing.T) {
	p, _ := newMockProvider(t)
	ctx := context.Background()

	_, err := p.SignIn(ctx, "admin@itau.com.br", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "nobody@itau.com.br", "admin123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "ADMIN@itau.com.br", "admin123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignUp(t *testing.T) {
	p, ms := newMockProvider(t)
	ctx := context.Background()

	u, err := p.SignUp(ctx, SignUpInput{Email: "novo@itau.com.br", Password: "segredo", Name: "Novo", Role: domain.RoleMember})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domain.RoleMember, u.Role)
	assert.Equal(t, fixedNow, u.CreatedAt)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, u.CreatedAt, *u.LastLogin)
	assert.Equal(t, 4, ms.Counts()["users"])

	signedIn, err := p.SignIn(ctx, "novo@itau.com.br", "admin123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, signedIn.ID)
}

func TestSignUpDuplicateAndInvalid(t *testing.T) {
	p, ms := newMockProvider(t)
	ctx := context.Background()

	_, err := p.SignUp(ctx, SignUpInput{Email: "admin@itau.com.br", Password: "x", Name: "Outro", Role: domain.RoleReader})
	assert.ErrorIs(t, err, domain.ErrEmailInUse)

	_, err = p.SignUp(ctx, SignUpInput{Email: "bad", Name: " ", Role: "owner"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 4)
	assert.Equal(t, 3, ms.Counts()["users"])
}

func TestSignUpDefaultsToReader(t *testing.T) {
	p, _ := newMockProvider(t)

	u, err := p.SignUp(context.Background(), SignUpInput{Email: "leitor2@itau.com.br", Password: "x", Name: "Leitor 2"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReader, u.Role)
	assert.NoError(t, p.SignOut(context.Background()))
}
