package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protolab/prototype-portal/config"
	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/auth/middleware"
	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/repository/memory"
	"github.com/protolab/prototype-portal/internal/repository/rdb"
	"github.com/protolab/prototype-portal/internal/service"
	"github.com/protolab/prototype-portal/internal/store"
)

type emptyExecutor struct{}

func (emptyExecutor) Execute(context.Context, store.Statement) store.Result[store.Row] {
	return store.Empty[store.Row]()
}
func (emptyExecutor) Available() bool { return true }
func (emptyExecutor) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

type fakeGen struct {
	text string
	err  error
}

func (f *fakeGen) Complete(context.Context, string) (string, error) { return f.text, f.err }

func (f *fakeGen) GenerateImage(context.Context, string) (string, error) {
	return "", generation.ErrDisabled
}

type env struct {
	r      *gin.Engine
	tokens *auth.TokenManager
	gen    *fakeGen
	mode   *datamode.State
	svc    *service.Services
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	exec := emptyExecutor{}
	ms := memory.NewStore()
	gen := &fakeGen{text: "positive"}
	svc := service.New(service.Sources{
		Mock:          ms.Repositories(),
		Real:          rdb.NewRepositories(exec),
		RealAvailable: true,
		Stats:         &store.Stats{},
	}, gen, nil)
	mode := datamode.Restore(context.Background(), datamode.NewMemoryStore(), nil)
	tokens := auth.NewTokenManager(config.AuthConfig{
		JWTSecret:  "0123456789abcdef0123456789abcdef",
		JWTIssuer:  "portal-test",
		SessionTTL: time.Hour,
	})

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Session(tokens, nil, nil))
	New(svc, mode, nil).Register(api)
	return &env{r: r, tokens: tokens, gen: gen, mode: mode, svc: svc}
}

func (e *env) token(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	s, err := e.tokens.Issue(domain.User{ID: id, Name: "User " + id, Role: role})
	require.NoError(t, err)
	return s.Token
}

func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type prototypeList struct {
	Prototypes []domain.Prototype `json:"prototypes"`
	Count      int                `json:"count"`
}

func prototypeIDs(l prototypeList) []string {
	out := []string{}
	for _, p := range l.Prototypes {
		out = append(out, p.ID)
	}
	return out
}

func TestListPrototypes(t *testing.T) {
	e := setup(t)
	admin := e.token(t, "1", domain.RoleAdmin)

	tests := []struct {
		name  string
		path  string
		token string
		want  []string
	}{
		{"anonymous", "/prototypes", "", []string{"1"}},
		{"admin", "/prototypes", admin, []string{"1", "2", "3"}},
		{"tag", "/prototypes?tag=IA", admin, []string{"1", "2"}},
		{"search", "/prototypes?q=Biometria", admin, []string{"2"}},
		{"tags combined", "/prototypes?tag=IA,NLP", admin, []string{"1"}},
		{"member", "/prototypes", e.token(t, "2", domain.RoleMember), []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(http.MethodGet, tt.path, tt.token, nil)
			require.Equal(t, http.StatusOK, w.Code)
			l := decode[prototypeList](t, w)
			assert.Equal(t, tt.want, prototypeIDs(l))
			assert.Equal(t, len(tt.want), l.Count)
		})
	}
}

func TestGetPrototype(t *testing.T) {
	e := setup(t)

	w := e.do(http.MethodGet, "/prototypes/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Assistente Virtual Inteligente")

	w = e.do(http.MethodGet, "/prototypes/3", e.token(t, "3", domain.RoleReader), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "resource not found", body["error"])
	assert.NotEmpty(t, body["details"])

	w = e.do(http.MethodGet, "/prototypes/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tags":["IA","NLP","Chatbot"]}`, w.Body.String())
}

func TestRealModeFallsBackToMock(t *testing.T) {
	e := setup(t)
	admin := e.token(t, "1", domain.RoleAdmin)

	w := e.do(http.MethodGet, "/prototypes?mode=real", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"1", "2", "3"}, prototypeIDs(decode[prototypeList](t, w)))

	w = e.do(http.MethodGet, "/admin/datasource", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Mode  domain.DataMode     `json:"mode"`
		Stats store.StatsSnapshot `json:"stats"`
	}](t, w)
	assert.Equal(t, domain.ModeMock, body.Mode)
	assert.Equal(t, int64(1), body.Stats.EmptyFallbacks)
}

func TestFeedback(t *testing.T) {
	e := setup(t)

	w := e.do(http.MethodPost, "/feedback", "", gin.H{"prototypeId": "1", "rating": 4, "reaction": "like"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Feedback domain.Feedback `json:"feedback"`
	}](t, w).Feedback
	assert.Equal(t, "anonymous", created.UserID)

	w = e.do(http.MethodPost, "/feedback", e.token(t, "2", domain.RoleMember), gin.H{"prototypeId": "2", "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"2"`)

	w = e.do(http.MethodPost, "/feedback", "", gin.H{"prototypeId": "3", "rating": 4})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPost, "/feedback", "", gin.H{"prototypeId": "1", "rating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"rating"`)

	w = e.do(http.MethodGet, "/prototypes/1/feedback", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":11`)

	member := e.token(t, "2", domain.RoleMember)
	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/admin/feedback/"+created.ID, member, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/admin/feedback/"+created.ID, member, nil).Code)
}

func TestEvaluations(t *testing.T) {
	e := setup(t)
	body := gin.H{
		"overallRating":       5,
		"likertResponses":     gin.H{"usability": 5, "design": 4, "performance": 4, "features": 5, "reliability": 4},
		"qualitativeResponse": "Excelente portal",
	}

	w := e.do(http.MethodPost, "/evaluations", "", body)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"authentication required","redirect":"/login"}`, w.Body.String())

	w = e.do(http.MethodPost, "/evaluations", e.token(t, "3", domain.RoleReader), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"sentiment":"positive"`)
	assert.Contains(t, w.Body.String(), `"userId":"3"`)

	admin := e.token(t, "1", domain.RoleAdmin)
	w = e.do(http.MethodGet, "/admin/evaluations", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	e.gen.text = `{"summary":"Bem avaliado","recommendations":["Mais filtros"],"trends":[]}`
	w = e.do(http.MethodPost, "/admin/evaluations/analysis", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Bem avaliado")
}

func TestAdminRoles(t *testing.T) {
	e := setup(t)
	member := e.token(t, "2", domain.RoleMember)
	reader := e.token(t, "3", domain.RoleReader)
	admin := e.token(t, "1", domain.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/admin/users", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/admin/users", member, nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/admin/prototypes", reader, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/admin/prototypes", member, nil).Code)

	w := e.do(http.MethodGet, "/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)

	w = e.do(http.MethodPost, "/admin/users", admin, gin.H{"email": "admin@itau.com.br", "name": "Dup", "role": "reader"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(http.MethodGet, "/admin/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[service.Dashboard](t, w)
	assert.Len(t, dash.Prototypes, 3)
	assert.Equal(t, 3, dash.Users)
}

func TestPrototypeAdminLifecycle(t *testing.T) {
	e := setup(t)
	member := e.token(t, "2", domain.RoleMember)

	w := e.do(http.MethodPost, "/admin/prototypes", member, gin.H{
		"title":       "Open Finance Hub",
		"description": "Agregador de contas",
		"tags":        []string{"API"},
		"rating":      4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[struct {
		Prototype domain.Prototype `json:"prototype"`
	}](t, w).Prototype
	assert.Equal(t, "2", p.AuthorID)
	assert.Equal(t, "User 2", p.Author)
	assert.Equal(t, domain.AccessPublic, p.AccessLevel)

	w = e.do(http.MethodPut, "/admin/prototypes/"+p.ID, member, gin.H{
		"title": "Open Finance Hub 2", "description": "Agregador", "rating": 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Open Finance Hub 2")

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodPut, "/admin/prototypes/3", member, gin.H{"title": "x", "description": "y"}).Code)
	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/admin/prototypes/"+p.ID, member, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/admin/prototypes/"+p.ID, member, nil).Code)

	w = e.do(http.MethodPost, "/admin/prototypes", member, gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrototypeUpdateKeepsAuthor(t *testing.T) {
	e := setup(t)
	member := e.token(t, "2", domain.RoleMember)

	w := e.do(http.MethodPut, "/admin/prototypes/1", member, gin.H{
		"title": "Assistente Virtual", "description": "Chatbot", "tags": []string{"IA"}, "rating": 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p := decode[struct {
		Prototype domain.Prototype `json:"prototype"`
	}](t, w).Prototype
	assert.Equal(t, "1", p.AuthorID)
	assert.Equal(t, "Lab Digital Itaú", p.Author)

	w = e.do(http.MethodPut, "/admin/prototypes/1", member, gin.H{
		"title": "Assistente Virtual", "description": "Chatbot", "authorId": "2", "author": "Membro",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"authorId":"2"`)
}

func TestFeedbackAdminRespectsPrototypeVisibility(t *testing.T) {
	e := setup(t)
	member := e.token(t, "2", domain.RoleMember)
	admin := e.token(t, "1", domain.RoleAdmin)

	// prototype 3 is private to its author, user 1
	w := e.do(http.MethodPut, "/admin/feedback/3-feedback-0", member, gin.H{"rating": 1})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/admin/feedback/3-feedback-0", member, nil).Code)

	w = e.do(http.MethodPut, "/admin/feedback/1-feedback-0", member, gin.H{"prototypeId": "3", "rating": 2})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = e.do(http.MethodPut, "/admin/feedback/1-feedback-0", member, gin.H{"rating": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	f := decode[struct {
		Feedback domain.Feedback `json:"feedback"`
	}](t, w).Feedback
	assert.Equal(t, "user-0", f.UserID)
	assert.Equal(t, "1", f.PrototypeID)
	assert.Equal(t, 2, f.Rating)

	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/admin/feedback/3-feedback-0", admin, nil).Code)
}

func TestPMF(t *testing.T) {
	e := setup(t)
	member := e.token(t, "2", domain.RoleMember)

	e.gen.text = `{"score": 77, "analysis": "Bom encaixe", "recommendations": ["Expandir"]}`
	w := e.do(http.MethodGet, "/admin/pmf/1", member, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode[service.PMFReport](t, w)
	assert.Equal(t, 77, report.PMF.Score)
	assert.Equal(t, 10, report.FeedbackCount)

	e.gen.err = &generation.GenerationError{Provider: "fake", Op: "complete", Err: errors.New("quota exceeded")}
	w = e.do(http.MethodGet, "/admin/pmf/1", member, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "quota exceeded")

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/admin/pmf/3", member, nil).Code)
}

func TestDataMode(t *testing.T) {
	e := setup(t)
	admin := e.token(t, "1", domain.RoleAdmin)

	w := e.do(http.MethodGet, "/data-mode", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"mock"}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPut, "/data-mode", e.token(t, "3", domain.RoleReader), gin.H{"mode": "real"}).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPut, "/data-mode", admin, gin.H{"mode": "live"}).Code)

	w = e.do(http.MethodPut, "/data-mode", admin, gin.H{"mode": "real"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"real"}`, w.Body.String())
	assert.Equal(t, domain.ModeReal, e.mode.Mode())
}
