package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/store"
)

func TestMockPrototypeListing(t *testing.T) {
	src, _ := mockOnly()
	svc := NewPrototypeService(src, nil, nil)
	ctx := context.Background()

	assert.Equal(t, []string{"1", "2", "3"}, ids(svc.List(ctx, true, admin, PrototypeFilter{}), protoID))
	assert.Equal(t, []string{"1", "2"}, ids(svc.List(ctx, true, admin, PrototypeFilter{Tags: []string{"IA"}}), protoID))
	assert.Equal(t, []string{"2"}, ids(svc.List(ctx, true, admin, PrototypeFilter{Query: "Biometria"}), protoID))
	assert.Equal(t, []string{"2"}, ids(svc.List(ctx, true, admin, PrototypeFilter{Query: "biometria", Tags: []string{"IA", "Segurança"}}), protoID))
	assert.Empty(t, svc.List(ctx, true, admin, PrototypeFilter{Tags: []string{"IA", "Investimentos"}}))
}

func TestPrototypeAccessFilter(t *testing.T) {
	src, _ := mockOnly()
	svc := NewPrototypeService(src, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		viewer *domain.User
		want   []string
	}{
		{"anonymous", nil, []string{"1"}},
		{"reader", reader, []string{"1"}},
		{"member author and allowed", member, []string{"1", "2"}},
		{"admin", admin, []string{"1", "2", "3"}},
		{"private author", &domain.User{ID: "1", Role: domain.RoleReader}, []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(svc.List(ctx, true, tt.viewer, PrototypeFilter{}), protoID))
		})
	}

	_, err := svc.Get(ctx, true, reader, "3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPrototypeTags(t *testing.T) {
	src, _ := mockOnly()
	svc := NewPrototypeService(src, nil, nil)

	assert.Equal(t, []string{"IA", "NLP", "Chatbot"}, svc.Tags(context.Background(), true, nil))
	assert.Equal(t,
		[]string{"IA", "NLP", "Chatbot", "Biometria", "Segurança", "Machine Learning", "Investimentos", "Análise de Dados"},
		svc.Tags(context.Background(), true, admin))
}

func TestRealEmptyFallsBackToMock(t *testing.T) {
	exec := &fakeExecutor{available: true, result: store.Empty[store.Row]()}
	src, _ := testSources(exec)
	svc := NewPrototypeService(src, nil, nil)

	got := svc.List(context.Background(), false, admin, PrototypeFilter{})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got, protoID))
	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, int64(1), src.Stats.Snapshot().EmptyFallbacks)
}

func TestRealFailureFallsBackToMock(t *testing.T) {
	exec := &fakeExecutor{available: true, result: store.Failed[store.Row](errors.New("connection refused"))}
	src, _ := testSources(exec)
	svc := NewPrototypeService(src, nil, nil)

	p, err := svc.Get(context.Background(), false, nil, "1")
	require.NoError(t, err)
	assert.Equal(t, "Assistente Virtual Inteligente", p.Title)
	assert.Equal(t, int64(1), src.Stats.Snapshot().FailedFallbacks)
}

func TestRealInvalidRowsFallBackToMock(t *testing.T) {
	exec := &fakeExecutor{available: true, result: store.Ok([]store.Row{{"id": "9"}})}
	src, _ := testSources(exec)
	svc := NewPrototypeService(src, nil, nil)

	got := svc.List(context.Background(), false, admin, PrototypeFilter{})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got, protoID))
	assert.Equal(t, int64(1), src.Stats.Snapshot().FailedFallbacks)
}

func TestRealRowsAreServed(t *testing.T) {
	exec := &fakeExecutor{available: true, result: store.Ok([]store.Row{{
		"id": "9", "title": "Open Finance Hub", "description": "APIs", "image_url": "",
		"tags": "API", "rating": 4.0, "author": "Lab", "demo_url": nil,
		"created_at": "2024-05-01T00:00:00Z", "author_id": "1",
		"access_level": "public", "allowed_users": nil,
	}})}
	src, _ := testSources(exec)
	svc := NewPrototypeService(src, nil, nil)

	got := svc.List(context.Background(), false, nil, PrototypeFilter{})
	assert.Equal(t, []string{"9"}, ids(got, protoID))
	assert.Equal(t, int64(1), src.Stats.Snapshot().RealHits)
}

func TestUnavailableRealNeverExecutes(t *testing.T) {
	exec := &fakeExecutor{available: false, result: store.Empty[store.Row]()}
	src, _ := testSources(exec)
	svc := NewPrototypeService(src, nil, nil)

	got := svc.List(context.Background(), false, admin, PrototypeFilter{})
	assert.Len(t, got, 3)
	assert.Zero(t, exec.calls)
	assert.Zero(t, src.Stats.Snapshot().Reads())
}

func newPrototype() domain.Prototype {
	return domain.Prototype{
		Title:       "Open Finance Hub",
		Description: "Agregador de contas",
		ImageURL:    "https://example.com/of.png",
		Tags:        []string{"API", " Open Finance "},
		Rating:      4,
		Author:      "Membro",
		AuthorID:    "2",
	}
}

func TestPrototypeCreateGetUpdateDelete(t *testing.T) {
	src, _ := mockOnly()
	svc := NewPrototypeService(src, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, true, newPrototype())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, domain.AccessPublic, created.AccessLevel)
	assert.Equal(t, []string{"API", "Open Finance"}, created.Tags)

	got, err := svc.Get(ctx, true, nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Len(t, svc.List(ctx, true, admin, PrototypeFilter{}), 4)

	upd := got
	upd.Title = "Open Finance Hub 2"
	out, err := svc.Update(ctx, true, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)
	assert.Equal(t, created.CreatedAt, out.CreatedAt)
	assert.Equal(t, "Open Finance Hub 2", out.Title)

	_, err = svc.Update(ctx, true, "missing", upd)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, true, created.ID))
	_, err = svc.Get(ctx, true, admin, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, true, created.ID), domain.ErrNotFound)
	assert.Len(t, svc.List(ctx, true, admin, PrototypeFilter{}), 3)
}

func TestPrototypeCreateValidates(t *testing.T) {
	src, _ := mockOnly()
	svc := NewPrototypeService(src, nil, nil)

	p := newPrototype()
	p.Title = " "
	p.Rating = 6
	p.AccessLevel = "secret"

	_, err := svc.Create(context.Background(), true, p)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 3)
}

func TestRealMutationFailureDoesNotFallBack(t *testing.T) {
	boom := errors.New("deadlock")
	exec := &fakeExecutor{available: true, result: store.Failed[store.Row](boom)}
	src, ms := testSources(exec)
	svc := NewPrototypeService(src, nil, nil)

	_, err := svc.Create(context.Background(), false, newPrototype())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, ms.Counts()["prototypes"])
	assert.Equal(t, int64(1), src.Stats.Snapshot().MutationFailures)

	exec.result = store.Empty[store.Row]()
	assert.ErrorIs(t, svc.Delete(context.Background(), false, "1"), domain.ErrNotFound)
	assert.Equal(t, int64(1), src.Stats.Snapshot().MutationFailures)
}

func TestPrototypeImageGeneration(t *testing.T) {
	src, _ := mockOnly()
	ctx := context.Background()

	gen := &fakeGen{image: "https://images.example.com/generated.png"}
	p := newPrototype()
	p.ImageURL = ""
	created, err := NewPrototypeService(src, gen, nil).Create(ctx, true, p)
	require.NoError(t, err)
	assert.Equal(t, gen.image, created.ImageURL)

	failing := &fakeGen{imageErr: &generation.GenerationError{Provider: "fake", Op: "image", Err: errors.New("quota")}}
	created, err = NewPrototypeService(src, failing, nil).Create(ctx, true, p)
	require.NoError(t, err)
	assert.Empty(t, created.ImageURL)

	created, err = NewPrototypeService(src, generation.Disabled(), nil).Create(ctx, true, p)
	require.NoError(t, err)
	assert.Empty(t, created.ImageURL)
}
