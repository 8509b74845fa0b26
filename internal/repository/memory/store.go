package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/repository"
)

// Store holds every mock collection. It is shared by all requests for the
// life of the process.
type Store struct {
	prototypes  *Collection[domain.Prototype]
	feedback    *Collection[domain.Feedback]
	users       *Collection[domain.User]
	evaluations *Collection[domain.PortalEvaluation]

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source used for creation and login times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the id generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates a store seeded with the fixtures.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	protos := SeedPrototypes()
	s.prototypes = NewCollection(prototypeID, clonePrototype, protos...)
	s.feedback = NewCollection(feedbackID, cloneFeedback, SeedFeedback(protos)...)
	s.users = NewCollection(userID, cloneUser, SeedUsers(s.now().UTC())...)
	s.evaluations = NewCollection(evaluationID, cloneEvaluation)
	return s
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() repository.Set {
	return repository.Set{
		Prototypes:  &PrototypeRepository{s: s},
		Feedback:    &FeedbackRepository{s: s},
		Users:       &UserRepository{s: s},
		Evaluations: &EvaluationRepository{s: s},
	}
}

// Counts reports the number of records per entity.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"prototypes":  s.prototypes.Len(),
		"feedback":    s.feedback.Len(),
		"users":       s.users.Len(),
		"evaluations": s.evaluations.Len(),
	}
}
