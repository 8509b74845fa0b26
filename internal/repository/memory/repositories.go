package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/store"
)

func one[T any](v T, ok bool) store.Result[T] {
	if !ok {
		return store.Empty[T]()
	}
	return store.Ok([]T{v})
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}

type PrototypeRepository struct{ s *Store }

func (r *PrototypeRepository) List(context.Context) store.Result[domain.Prototype] {
	return store.Ok(r.s.prototypes.All())
}

func (r *PrototypeRepository) Get(_ context.Context, id string) store.Result[domain.Prototype] {
	return one[domain.Prototype](r.s.prototypes.Find(id))
}

func (r *PrototypeRepository) Create(_ context.Context, p domain.Prototype) (domain.Prototype, error) {
	p.ID = r.s.newID()
	p.CreatedAt = r.s.now().UTC()
	r.s.prototypes.Insert(p)
	return clonePrototype(p), nil
}

func (r *PrototypeRepository) Update(_ context.Context, id string, p domain.Prototype) (domain.Prototype, error) {
	out, ok := r.s.prototypes.Modify(id, func(cur domain.Prototype) domain.Prototype {
		p.ID = cur.ID
		p.CreatedAt = cur.CreatedAt
		return p
	})
	if !ok {
		return domain.Prototype{}, notFound("prototype", id)
	}
	return out, nil
}

func (r *PrototypeRepository) Delete(_ context.Context, id string) error {
	if !r.s.prototypes.Remove(id) {
		return notFound("prototype", id)
	}
	return nil
}

type FeedbackRepository struct{ s *Store }

func (r *FeedbackRepository) List(context.Context) store.Result[domain.Feedback] {
	return store.Ok(r.s.feedback.All())
}

func (r *FeedbackRepository) ListByPrototype(_ context.Context, prototypeID string) store.Result[domain.Feedback] {
	return store.Ok(r.s.feedback.Where(func(f domain.Feedback) bool {
		return f.PrototypeID == prototypeID
	}))
}

func (r *FeedbackRepository) Get(_ context.Context, id string) store.Result[domain.Feedback] {
	return one[domain.Feedback](r.s.feedback.Find(id))
}

func (r *FeedbackRepository) Create(_ context.Context, f domain.Feedback) (domain.Feedback, error) {
	f.ID = r.s.newID()
	f.CreatedAt = r.s.now().UTC()
	r.s.feedback.Insert(f)
	return cloneFeedback(f), nil
}

func (r *FeedbackRepository) Update(_ context.Context, id string, f domain.Feedback) (domain.Feedback, error) {
	out, ok := r.s.feedback.Modify(id, func(cur domain.Feedback) domain.Feedback {
		f.ID = cur.ID
		f.CreatedAt = cur.CreatedAt
		return f
	})
	if !ok {
		return domain.Feedback{}, notFound("feedback", id)
	}
	return out, nil
}

func (r *FeedbackRepository) Delete(_ context.Context, id string) error {
	if !r.s.feedback.Remove(id) {
		return notFound("feedback", id)
	}
	return nil
}

type UserRepository struct{ s *Store }

func (r *UserRepository) List(context.Context) store.Result[domain.User] {
	return store.Ok(r.s.users.All())
}

func (r *UserRepository) Get(_ context.Context, id string) store.Result[domain.User] {
	return one[domain.User](r.s.users.Find(id))
}

// FindByEmail matches the address exactly.
func (r *UserRepository) FindByEmail(_ context.Context, email string) store.Result[domain.User] {
	return store.Ok(r.s.users.Where(func(u domain.User) bool {
		return u.Email == email
	}))
}

func emailInUse(email string) error {
	return fmt.Errorf("user %s: %w", email, domain.ErrEmailInUse)
}

func (r *UserRepository) Create(_ context.Context, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.ID = r.s.newID()
	u.CreatedAt = r.s.now().UTC()
	err := r.s.users.InsertUnique(u, func(cur domain.User) bool { return cur.Email == u.Email })
	if err != nil {
		return domain.User{}, emailInUse(u.Email)
	}
	return cloneUser(u), nil
}

// Update rejects an email that belongs to another user.
func (r *UserRepository) Update(_ context.Context, id string, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	out, err := r.s.users.ModifyUnique(id, func(cur domain.User) domain.User {
		u.ID = cur.ID
		u.CreatedAt = cur.CreatedAt
		if u.LastLogin == nil {
			u.LastLogin = cur.LastLogin
		}
		return u
	}, func(other, next domain.User) bool { return other.Email == next.Email })
	switch {
	case errors.Is(err, ErrMissing):
		return domain.User{}, notFound("user", id)
	case errors.Is(err, ErrConflict):
		return domain.User{}, emailInUse(u.Email)
	}
	return out, nil
}

func (r *UserRepository) TouchLogin(_ context.Context, id string, at time.Time) (domain.User, error) {
	out, ok := r.s.users.Modify(id, func(cur domain.User) domain.User {
		t := at.UTC()
		cur.LastLogin = &t
		return cur
	})
	if !ok {
		return domain.User{}, notFound("user", id)
	}
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	if !r.s.users.Remove(id) {
		return notFound("user", id)
	}
	return nil
}

type EvaluationRepository struct{ s *Store }

func (r *EvaluationRepository) List(context.Context) store.Result[domain.PortalEvaluation] {
	return store.Ok(r.s.evaluations.All())
}

func (r *EvaluationRepository) Get(_ context.Context, id string) store.Result[domain.PortalEvaluation] {
	return one[domain.PortalEvaluation](r.s.evaluations.Find(id))
}

func (r *EvaluationRepository) Create(_ context.Context, e domain.PortalEvaluation) (domain.PortalEvaluation, error) {
	e.ID = r.s.newID()
	e.CreatedAt = r.s.now().UTC()
	r.s.evaluations.Insert(e)
	return e, nil
}

func (r *EvaluationRepository) Update(_ context.Context, id string, e domain.PortalEvaluation) (domain.PortalEvaluation, error) {
	out, ok := r.s.evaluations.Modify(id, func(cur domain.PortalEvaluation) domain.PortalEvaluation {
		e.ID = cur.ID
		e.CreatedAt = cur.CreatedAt
		return e
	})
	if !ok {
		return domain.PortalEvaluation{}, notFound("evaluation", id)
	}
	return out, nil
}

func (r *EvaluationRepository) Delete(_ context.Context, id string) error {
	if !r.s.evaluations.Remove(id) {
		return notFound("evaluation", id)
	}
	return nil
}
