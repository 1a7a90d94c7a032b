package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandlerWithServices(t *testing.T, servicesCount int) (*repoMock, *mux.Router) {
	t.Helper()

	faker := gofakeit.New(42)
	repo := newRepoMock()
	// insert in reverse to make sure order sorting does the work
	for i := servicesCount - 1; i >= 0; i-- {
		service := &Service{
			Name:        fmt.Sprintf("service %d", i),
			Description: faker.Sentence(5),
			URL:         faker.URL(),
			Icon:        faker.Word(),
			Category:    faker.Word(),
			Order:       i,
			Active:      true,
		}
		require.NoError(t, repo.AddService(t.Context(), service))
	}

	r := mux.NewRouter()
	NewHandler(repo).SetupRoutes(r)
	return repo, r
}

func TestHandler_handleAll_sortedByOrder(t *testing.T) {
	_, r := newTestHandlerWithServices(t, 4)

	req, err := http.NewRequest("GET", "/services/all", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var services []*Service
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &services))
	require.Len(t, services, 4)
	for i, service := range services {
		assert.Equal(t, fmt.Sprintf("service %d", i), service.Name)
	}
}

func TestHandler_newUpdateDelete(t *testing.T) {
	repo, r := newTestHandlerWithServices(t, 0)

	// add
	reqBody := `{"name": "git mirror", "description": "code hosting", "url": "https://git.site.test", "order": 1, "active": true}`
	req, err := http.NewRequest("POST", "/services/new", strings.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	id := strings.TrimPrefix(rr.Body.String(), "added:")
	require.NotEmpty(t, id)

	// update
	reqBody = fmt.Sprintf(`{"id": %q, "name": "git mirror", "active": false, "order": 2}`, id)
	req, err = http.NewRequest("POST", "/services/update", strings.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	services, err := repo.All(t.Context())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.False(t, services[0].Active)
	assert.Equal(t, 2, services[0].Order)

	// delete
	req, err = http.NewRequest("DELETE", "/services/delete/"+id, nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	services, err = repo.All(t.Context())
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestHandler_notFoundAndValidation(t *testing.T) {
	_, r := newTestHandlerWithServices(t, 1)

	// unknown id on update
	reqBody := `{"id": "65f1c0ffee0ddba11ad0beef", "name": "x"}`
	req, err := http.NewRequest("POST", "/services/update", strings.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// unknown id on delete
	req, err = http.NewRequest("DELETE", "/services/delete/65f1c0ffee0ddba11ad0beef", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// empty name on add
	req, err = http.NewRequest("POST", "/services/new", strings.NewReader(`{"name": ""}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
