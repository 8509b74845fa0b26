package rdb

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/store"
	"github.com/protolab/prototype-portal/internal/validator"
)

const usersTable = "users"

var userColumns = []string{"id", "email", "name", "role", "created_at", "last_login"}

type UserRepository struct{ base }

func (r *UserRepository) List(ctx context.Context) store.Result[domain.User] {
	q := r.sql().Select(userColumns...).From(usersTable).OrderBy("created_at DESC")
	return query(ctx, r.base, validator.User(), q)
}

func (r *UserRepository) Get(ctx context.Context, id string) store.Result[domain.User] {
	q := r.sql().Select(userColumns...).From(usersTable).Where(sq.Eq{"id": id})
	return query(ctx, r.base, validator.User(), q)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) store.Result[domain.User] {
	q := r.sql().Select(userColumns...).From(usersTable).Where(sq.Eq{"email": email})
	return query(ctx, r.base, validator.User(), q)
}

// Create relies on the unique index on email; a violation surfaces as a
// store failure.
func (r *UserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q := r.sql().Insert(usersTable).
		Columns("email", "name", "role").
		Values(u.Email, u.Name, string(u.Role)).
		Suffix(returning(userColumns))
	return mutate(ctx, r.base, validator.User(), q, "")
}

func (r *UserRepository) Update(ctx context.Context, id string, u domain.User) (domain.User, error) {
	q := r.sql().Update(usersTable).
		Set("email", u.Email).
		Set("name", u.Name).
		Set("role", string(u.Role)).
		Where(sq.Eq{"id": id}).
		Suffix(returning(userColumns))
	return mutate(ctx, r.base, validator.User(), q, id)
}

func (r *UserRepository) TouchLogin(ctx context.Context, id string, at time.Time) (domain.User, error) {
	q := r.sql().Update(usersTable).
		Set("last_login", at.UTC()).
		Where(sq.Eq{"id": id}).
		Suffix(returning(userColumns))
	return mutate(ctx, r.base, validator.User(), q, id)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.base, usersTable, "user", id)
}
