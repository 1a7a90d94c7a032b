package settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandler(t *testing.T) (*repoMock, *mux.Router) {
	t.Helper()
	repo := newRepoMock()
	r := mux.NewRouter()
	NewHandler(repo).SetupRoutes(r)
	return repo, r
}

func TestHandler_handleGet_empty(t *testing.T) {
	_, r := newTestHandler(t)

	req, err := http.NewRequest("GET", "/settings", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestHandler_updateThenGet(t *testing.T) {
	repo, r := newTestHandler(t)

	reqBody := `[
		{"key": "siteName", "value": "My Site", "description": "site name"},
		{"key": "contactEmail", "value": "hello@site.test", "description": "contact email"}
	]`
	req, err := http.NewRequest("PUT", "/settings", strings.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var settings []*Setting
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &settings))
	require.Len(t, settings, 2)
	// sorted by key
	assert.Equal(t, "contactEmail", settings[0].Key)
	assert.Equal(t, "siteName", settings[1].Key)
	assert.False(t, settings[0].UpdatedAt.IsZero())

	// upsert by key - same key updates in place
	reqBody = `[{"key": "siteName", "value": "Renamed Site"}]`
	req, err = http.NewRequest("PUT", "/settings", strings.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	all, err := repo.All(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Renamed Site", all[1].Value)
}

func TestHandler_update_validation(t *testing.T) {
	_, r := newTestHandler(t)

	// empty key
	req, err := http.NewRequest("PUT", "/settings", strings.NewReader(`[{"key": "", "value": "x"}]`))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// not a list
	req, err = http.NewRequest("PUT", "/settings", strings.NewReader(`{"key": "x"}`))
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
