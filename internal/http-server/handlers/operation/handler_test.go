package operation

import (
	"SchoolQL/entity"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCore keeps schools in a slice and records what it was asked for.
type fakeCore struct {
	schools   []entity.School
	lastQuery entity.ListQuery
	lastUpd   entity.SchoolUpdate
	fail      error
}

func (f *fakeCore) ListSchools(_ context.Context, q entity.ListQuery) ([]entity.School, error) {
	f.lastQuery = q
	if f.fail != nil {
		return nil, f.fail
	}
	return f.schools, nil
}

func (f *fakeCore) GetSchool(_ context.Context, id int) (*entity.School, error) {
	for i := range f.schools {
		if f.schools[i].ID == id {
			return &f.schools[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCore) FindSchoolsByName(_ context.Context, name string) ([]entity.School, error) {
	var out []entity.School
	for _, s := range f.schools {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCore) CreateSchool(_ context.Context, in entity.SchoolInput) (entity.MutationResult, error) {
	if f.fail != nil {
		return entity.FailedResult(f.fail.Error()), f.fail
	}
	s := entity.School{ID: len(f.schools) + 1, Name: in.Name, Population: in.Population, Address: in.Address, Status: entity.StatusActive}
	f.schools = append(f.schools, s)
	return entity.SuccessResult(s), nil
}

func (f *fakeCore) UpdateSchool(_ context.Context, id int, upd entity.SchoolUpdate) (entity.MutationResult, error) {
	f.lastUpd = upd
	for i := range f.schools {
		if f.schools[i].ID == id {
			if v, ok := upd.Name.Get(); ok {
				f.schools[i].Name = v
			}
			return entity.SuccessResult(f.schools[i]), nil
		}
	}
	return entity.FailedResult(entity.NotFoundMessage), nil
}

func (f *fakeCore) DeactivateSchool(_ context.Context, id int) (entity.MutationResult, error) {
	for i := range f.schools {
		if f.schools[i].ID == id {
			f.schools[i].Status = entity.StatusInactive
			return entity.SuccessResult(f.schools[i]), nil
		}
	}
	return entity.FailedResult(entity.NotFoundMessage), nil
}

func post(t *testing.T, core Core, body string) *httptest.ResponseRecorder {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operation", strings.NewReader(body))
	Handler(log, core).ServeHTTP(rec, req)
	return rec
}

func seeded() *fakeCore {
	return &fakeCore{schools: []entity.School{
		{ID: 1, Name: "Codavatar Academy", Population: 500, Status: entity.StatusActive},
		{ID: 2, Name: "River High", Population: 300, Status: entity.StatusActive},
	}}
}

func TestListAllPassesQuery(t *testing.T) {
	core := seeded()
	rec := post(t, core, `{"operation": "listAll", "args": {"limit": 1, "offset": 0, "sortBy": "-id", "name": "a"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, core.lastQuery.Limit)
	assert.Equal(t, 1, *core.lastQuery.Limit)
	assert.Equal(t, "-id", *core.lastQuery.SortBy)
	assert.Equal(t, "a", *core.lastQuery.Name)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestListAllWithoutArgs(t *testing.T) {
	core := seeded()
	rec := post(t, core, `{"operation": "listAll"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, core.lastQuery.Limit)
	assert.Nil(t, core.lastQuery.Name)
}

func TestGetByID(t *testing.T) {
	rec := post(t, seeded(), `{"operation": "getById", "args": {"id": 2}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "River High")

	rec = post(t, seeded(), `{"operation": "getById", "args": {"id": 7}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), entity.NotFoundMessage)
}

func TestGetByName(t *testing.T) {
	rec := post(t, seeded(), `{"operation": "getByName", "args": {"name": "RIVER"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "River High")
	assert.NotContains(t, rec.Body.String(), "Codavatar")
}

func TestCreate(t *testing.T) {
	core := seeded()
	rec := post(t, core, `{"operation": "create", "args": {"school_name": "New School", "school_population": 10}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var res entity.MutationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.School.ID)
	assert.Nil(t, res.Err)
}

func TestUpdateKeepsPresence(t *testing.T) {
	core := seeded()
	rec := post(t, core, `{"operation": "update", "args": {"id": 1, "school_name": "Renamed", "address": null}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, core.lastUpd.Name.Set)
	assert.False(t, core.lastUpd.Address.Set)
	assert.False(t, core.lastUpd.Population.Set)
	assert.Contains(t, rec.Body.String(), "Renamed")
}

func TestDeactivateAndDeleteAlias(t *testing.T) {
	for _, op := range []string{Deactivate, Delete} {
		core := seeded()
		rec := post(t, core, fmt.Sprintf(`{"operation": %q, "args": {"id": 1}}`, op))

		require.Equal(t, http.StatusOK, rec.Code, op)
		assert.Len(t, core.schools, 2, "records are never removed")
		assert.Equal(t, entity.StatusInactive, core.schools[0].Status)
	}
}

func TestWriteNotFoundIsResult(t *testing.T) {
	rec := post(t, seeded(), `{"operation": "deactivate", "args": {"id": 42}}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success": false, "school": null, "error": "School not found"}`, rec.Body.String())
}

func TestStorageFailure(t *testing.T) {
	core := seeded()
	core.fail = fmt.Errorf("%w: persist: %w", entity.ErrStorage, errors.New("bucket gone"))

	rec := post(t, core, `{"operation": "create", "args": {"school_name": "X"}}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "bucket gone")

	rec = post(t, core, `{"operation": "listAll"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"unknown operation", `{"operation": "drop"}`},
		{"missing operation", `{"args": {}}`},
		{"getById without id", `{"operation": "getById", "args": {}}`},
		{"getByName without name", `{"operation": "getByName"}`},
		{"create without name", `{"operation": "create", "args": {"school_population": 3}}`},
		{"create negative population", `{"operation": "create", "args": {"school_name": "A", "school_population": -1}}`},
		{"update bad status", `{"operation": "update", "args": {"id": 1, "status": "CLOSED"}}`},
		{"update negative population", `{"operation": "update", "args": {"id": 1, "school_population": -5}}`},
		{"create population above int32", `{"operation": "create", "args": {"school_name": "A", "school_population": 2147483648}}`},
		{"update population above int32", `{"operation": "update", "args": {"id": 1, "school_population": 2147483648}}`},
		{"args wrong type", `{"operation": "getById", "args": {"id": "one"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, seeded(), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestOperations(t *testing.T) {
	rec := httptest.NewRecorder()
	Operations(rec, httptest.NewRequest(http.MethodGet, "/api/v1/operation", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	for _, name := range []string{ListAll, GetByID, GetByName, Create, Update, Deactivate, Delete} {
		assert.Contains(t, rec.Body.String(), `"`+name+`"`)
	}
}
