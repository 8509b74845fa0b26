package auth

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/protolab/prototype-portal/config"
	"github.com/protolab/prototype-portal/internal/domain"
)

// IDTokenVerifier checks a Firebase ID token. *fbauth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth
// client. A missing credentials path disables Firebase and returns nil.
func InitializeFirebase(ctx context.Context, cfg config.FirebaseConfig) (*fbauth.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return client, nil
}

// UserLookup resolves a verified email to a portal user.
type UserLookup func(ctx context.Context, email string) (domain.User, error)

// FirebaseProvider is the real-mode provider. Password sign-in and sign-up
// happen in the Firebase client SDK, so the server only verifies ID tokens.
type FirebaseProvider struct {
	verifier IDTokenVerifier
	users    UserLookup
}

func NewFirebaseProvider(verifier IDTokenVerifier, users UserLookup) *FirebaseProvider {
	return &FirebaseProvider{verifier: verifier, users: users}
}

func (p *FirebaseProvider) SignIn(context.Context, string, string) (domain.User, error) {
	return domain.User{}, fmt.Errorf("firebase sign in: %w", domain.ErrNotImplemented)
}

func (p *FirebaseProvider) SignUp(context.Context, SignUpInput) (domain.User, error) {
	return domain.User{}, fmt.Errorf("firebase sign up: %w", domain.ErrNotImplemented)
}

func (p *FirebaseProvider) SignOut(context.Context) error { return nil }

// Verify resolves a Firebase ID token to the portal user with the token's
// email address.
func (p *FirebaseProvider) Verify(ctx context.Context, idToken string) (domain.User, error) {
	if p.verifier == nil {
		return domain.User{}, fmt.Errorf("firebase disabled: %w", domain.ErrUnauthorized)
	}
	tok, err := p.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	email, _ := tok.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, fmt.Errorf("token %s has no email: %w", tok.UID, domain.ErrUnauthorized)
	}
	u, err := p.users(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("no portal user for %s: %w", email, domain.ErrUnauthorized)
	}
	return u, nil
}
