package school

import (
	"SchoolQL/entity"
	"SchoolQL/impl/core"
	repository "SchoolQL/internal/database"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
}

type brokenStore struct {
	*repository.Memory
}

func (brokenStore) Persist(context.Context, []entity.School) error {
	return errors.New("disk full")
}

func newRouter(t *testing.T, repo core.Repository) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := core.New(log)
	c.SetRepository(repo)

	r := chi.NewRouter()
	r.Get("/schools", ListSchools(log, c))
	r.Get("/schools/search", SearchSchools(log, c))
	r.Get("/schools/{id}", GetSchool(log, c))
	r.Post("/schools", AddSchool(log, c))
	r.Patch("/schools/{id}", UpdateSchool(log, c))
	r.Delete("/schools/{id}", DeleteSchool(log, c))
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) entity.MutationResult {
	t.Helper()
	var res entity.MutationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func decodeSchools(t *testing.T, rec *httptest.ResponseRecorder) []entity.School {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success, env.Message)
	var schools []entity.School
	require.NoError(t, json.Unmarshal(env.Data, &schools))
	return schools
}

const codavatar = `{
	"school_name": "Codavatar Academy",
	"school_population": 500,
	"address": {"street": "1 Main St", "city": "Kathmandu", "state": "BA", "postal_code": "44600"}
}`

func TestCreateUpdateDeactivateFlow(t *testing.T) {
	h := newRouter(t, repository.NewMemory())

	rec := do(t, h, http.MethodPost, "/schools", codavatar)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResult(t, rec)
	require.True(t, created.Success)
	assert.Equal(t, 1, created.School.ID)
	assert.Equal(t, entity.StatusActive, created.School.Status)

	rec = do(t, h, http.MethodPatch, "/schools/1", `{"school_population": 750, "school_name": null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeResult(t, rec)
	assert.Equal(t, "Codavatar Academy", updated.School.Name)
	assert.Equal(t, 750, updated.School.Population)
	assert.Equal(t, "Kathmandu", updated.School.Address.City)

	rec = do(t, h, http.MethodDelete, "/schools/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	deactivated := decodeResult(t, rec)
	assert.True(t, deactivated.Success)
	assert.Equal(t, entity.StatusInactive, deactivated.School.Status)

	rec = do(t, h, http.MethodGet, "/schools/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"INACTIVE"`)
}

func TestWriteNotFound(t *testing.T) {
	h := newRouter(t, repository.NewMemory())

	for _, tc := range []struct{ method, body string }{
		{http.MethodPatch, `{"school_name":"x"}`},
		{http.MethodDelete, ""},
	} {
		rec := do(t, h, tc.method, "/schools/9999", tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success": false, "school": null, "error": "School not found"}`, rec.Body.String())
	}
}

func TestGetNotFound(t *testing.T) {
	h := newRouter(t, repository.NewMemory())

	rec := do(t, h, http.MethodGet, "/schools/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "School not found")
}

func TestValidationFailures(t *testing.T) {
	h := newRouter(t, repository.NewMemory())

	tests := []struct {
		name, method, target, body string
	}{
		{"missing name", http.MethodPost, "/schools", `{"school_population": 1}`},
		{"bad status", http.MethodPost, "/schools", `{"school_name": "A", "status": "CLOSED"}`},
		{"bad json", http.MethodPost, "/schools", `{`},
		{"bad id", http.MethodPatch, "/schools/abc", `{}`},
		{"bad update status", http.MethodPatch, "/schools/1", `{"status": "GONE"}`},
		{"negative population", http.MethodPatch, "/schools/1", `{"school_population": -4}`},
		{"population above int32", http.MethodPatch, "/schools/1", `{"school_population": 2147483648}`},
		{"create population above int32", http.MethodPost, "/schools", `{"school_name": "A", "school_population": 2147483648}`},
		{"bad limit", http.MethodGet, "/schools?limit=x", ""},
		{"negative offset", http.MethodGet, "/schools?offset=-1", ""},
		{"search without name", http.MethodGet, "/schools/search", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestListAndSearch(t *testing.T) {
	h := newRouter(t, repository.NewMemory())
	for _, body := range []string{
		`{"school_name": "North High School", "school_population": 300}`,
		`{"school_name": "Codavatar Academy", "school_population": 900}`,
		`{"school_name": "West Middle", "school_population": 700}`,
		`{"school_name": "East Elementary", "school_population": 700}`,
		`{"school_name": "South Prep", "school_population": 100}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/schools", body).Code)
	}

	schools := decodeSchools(t, do(t, h, http.MethodGet, "/schools?limit=2&offset=1&sort_by=-school_population", ""))
	require.Len(t, schools, 2)
	assert.Equal(t, "West Middle", schools[0].Name)
	assert.Equal(t, "East Elementary", schools[1].Name)

	schools = decodeSchools(t, do(t, h, http.MethodGet, "/schools/search?name=vat", ""))
	require.Len(t, schools, 1)
	assert.Equal(t, "Codavatar Academy", schools[0].Name)

	schools = decodeSchools(t, do(t, h, http.MethodGet, "/schools?offset=10", ""))
	assert.Empty(t, schools)
}

func TestStorageFailureIsServerError(t *testing.T) {
	h := newRouter(t, brokenStore{repository.NewMemory()})

	rec := do(t, h, http.MethodPost, "/schools", codavatar)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	res := decodeResult(t, rec)
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Contains(t, *res.Err, "disk full")
}
