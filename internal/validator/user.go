package validator

import (
	"encoding/json"
	"net/mail"

	"github.com/protolab/prototype-portal/internal/domain"
)

const userSchema = `{
  "type": "object",
  "required": ["id", "email", "name", "role", "created_at"],
  "properties": {
    "id": {"type": ["string", "integer"]},
    "email": {"type": "string"},
    "name": {"type": "string"},
    "role": {"type": "string", "enum": ["admin", "member", "reader"]},
    "created_at": {"type": "string"},
    "last_login": {"type": ["string", "null"]}
  }
}`

type userRow struct {
	ID        textID    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt timestamp `json:"created_at"`
	LastLogin timestamp `json:"last_login"`
}

func coerceUser(raw []byte) (domain.User, []domain.FieldError) {
	var r userRow
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.User{}, []domain.FieldError{decodeError(err)}
	}

	var fe fields
	fe.notEmpty("id", string(r.ID))
	if !ValidEmail(r.Email) {
		fe.add("email", "must be a valid address, got %q", r.Email)
	}
	if !r.CreatedAt.set {
		fe.add("created_at", "is required")
	}

	u := domain.User{
		ID:        string(r.ID),
		Email:     r.Email,
		Name:      r.Name,
		Role:      domain.Role(r.Role),
		CreatedAt: r.CreatedAt.Time,
	}
	if r.LastLogin.set {
		t := r.LastLogin.Time
		u.LastLogin = &t
	}
	return u, fe
}

// ValidEmail reports whether s is a bare address such as a@b.c.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

var userValidator = newValidator("user", userSchema, coerceUser)

// User validates rows of the users table.
func User() *Validator[domain.User] { return userValidator }
