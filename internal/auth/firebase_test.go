package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protolab/prototype-portal/config"
	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/repository/memory"
	"github.com/protolab/prototype-portal/internal/repository/rdb"
	"github.com/protolab/prototype-portal/internal/service"
	"github.com/protolab/prototype-portal/internal/store"
)

type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, raw string) (*fbauth.Token, error) {
	tok, ok := f.tokens[raw]
	if !ok {
		return nil, errors.New("token signature invalid")
	}
	return tok, nil
}

// usersByEmail answers user lookups with the row keyed by any email argument.
type usersByEmail map[string]store.Row

func (u usersByEmail) Execute(_ context.Context, st store.Statement) store.Result[store.Row] {
	for _, arg := range st.Args {
		if email, ok := arg.(string); ok {
			if row, ok := u[email]; ok {
				return store.Ok([]store.Row{row})
			}
		}
	}
	return store.Empty[store.Row]()
}

func (usersByEmail) Available() bool { return true }

func (usersByEmail) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

func realUsers(rows usersByEmail) UserLookup {
	users := service.NewUserService(service.Sources{
		Mock:          memory.NewStore().Repositories(),
		Real:          rdb.NewRepositories(rows),
		RealAvailable: true,
		Stats:         &store.Stats{},
	}, nil)
	return func(ctx context.Context, email string) (domain.User, error) {
		return users.FindByEmail(ctx, false, email)
	}
}

func userRow(id, email string, role domain.Role) store.Row {
	return store.Row{
		"id": id, "email": email, "name": "Ana", "role": string(role),
		"created_at": "2024-05-01T00:00:00Z", "last_login": nil,
	}
}

func TestFirebaseProvider(t *testing.T) {
	p := NewFirebaseProvider(fakeVerifier{tokens: map[string]*fbauth.Token{
		"real":    {UID: "fb-1", Claims: map[string]any{"email": "ana@itau.com.br"}},
		"shadow":  {UID: "fb-2", Claims: map[string]any{"email": "admin@itau.com.br"}},
		"fixture": {UID: "fb-3", Claims: map[string]any{"email": "member@itau.com.br"}},
		"noemail": {UID: "fb-4", Claims: map[string]any{}},
		"unknown": {UID: "fb-5", Claims: map[string]any{"email": "ghost@itau.com.br"}},
	}}, realUsers(usersByEmail{
		"ana@itau.com.br":   userRow("42", "ana@itau.com.br", domain.RoleMember),
		"admin@itau.com.br": userRow("77", "admin@itau.com.br", domain.RoleReader),
	}))
	ctx := context.Background()

	u, err := p.Verify(ctx, "real")
	require.NoError(t, err)
	assert.Equal(t, "42", u.ID)
	assert.Equal(t, domain.RoleMember, u.Role)

	// the relational row wins over the fixture with the same address
	u, err = p.Verify(ctx, "shadow")
	require.NoError(t, err)
	assert.Equal(t, "77", u.ID)
	assert.Equal(t, domain.RoleReader, u.Role)

	// an empty real read falls back to the fixtures
	u, err = p.Verify(ctx, "fixture")
	require.NoError(t, err)
	assert.Equal(t, "2", u.ID)

	for _, raw := range []string{"noemail", "unknown", "forged"} {
		_, err := p.Verify(ctx, raw)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, raw)
	}

	_, err = p.SignIn(ctx, "admin@itau.com.br", "admin123")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = p.SignUp(ctx, SignUpInput{Email: "x@y.z"})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.NoError(t, p.SignOut(ctx))
}

func TestFirebaseDisabled(t *testing.T) {
	client, err := InitializeFirebase(context.Background(), config.FirebaseConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	_, err = NewFirebaseProvider(nil, nil).Verify(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
