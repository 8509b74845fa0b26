// Package repository declares the storage contracts shared by the mock and
// real data sources. Reads return a store.Result so callers can tell rows,
// an empty answer and a failure apart.
package repository

import (
	"context"
	"time"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/store"
)

// Repository is the CRUD surface every entity supports.
type Repository[T any] interface {
	List(ctx context.Context) store.Result[T]
	Get(ctx context.Context, id string) store.Result[T]
	// Create assigns the id and creation time.
	Create(ctx context.Context, v T) (T, error)
	// Update replaces the mutable fields of the record with id, keeping its
	// id and creation time. Missing records yield domain.ErrNotFound.
	Update(ctx context.Context, id string, v T) (T, error)
	Delete(ctx context.Context, id string) error
}

type PrototypeRepository interface {
	Repository[domain.Prototype]
}

type FeedbackRepository interface {
	Repository[domain.Feedback]
	ListByPrototype(ctx context.Context, prototypeID string) store.Result[domain.Feedback]
}

type UserRepository interface {
	Repository[domain.User]
	FindByEmail(ctx context.Context, email string) store.Result[domain.User]
	// TouchLogin sets the last login time of the user with id.
	TouchLogin(ctx context.Context, id string, at time.Time) (domain.User, error)
}

type EvaluationRepository interface {
	Repository[domain.PortalEvaluation]
}

// Set bundles one repository per entity for a single data source.
type Set struct {
	Prototypes  PrototypeRepository
	Feedback    FeedbackRepository
	Users       UserRepository
	Evaluations EvaluationRepository
}
