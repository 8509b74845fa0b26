package service

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/repository/memory"
	"github.com/protolab/prototype-portal/internal/repository/rdb"
	"github.com/protolab/prototype-portal/internal/store"
)

type fakeExecutor struct {
	result    store.Result[store.Row]
	available bool
	calls     int
}

func (f *fakeExecutor) Execute(context.Context, store.Statement) store.Result[store.Row] {
	f.calls++
	return f.result
}

func (f *fakeExecutor) Available() bool { return f.available }

func (f *fakeExecutor) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

type fakeGen struct {
	text     string
	err      error
	image    string
	imageErr error
	prompts  []string
}

func (f *fakeGen) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeGen) GenerateImage(context.Context, string) (string, error) {
	return f.image, f.imageErr
}

var (
	admin  = &domain.User{ID: "1", Role: domain.RoleAdmin}
	member = &domain.User{ID: "2", Role: domain.RoleMember}
	reader = &domain.User{ID: "3", Role: domain.RoleReader}
)

func testSources(exec *fakeExecutor) (Sources, *memory.Store) {
	ms := memory.NewStore()
	return Sources{
		Mock:          ms.Repositories(),
		Real:          rdb.NewRepositories(exec),
		RealAvailable: exec.Available(),
		Stats:         &store.Stats{},
	}, ms
}

func mockOnly() (Sources, *memory.Store) {
	return testSources(&fakeExecutor{result: store.Failed[store.Row](store.ErrStoreUnavailable)})
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func protoID(p domain.Prototype) string { return p.ID }
