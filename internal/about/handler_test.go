package about

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

func TestHandler_handleGet_defaultPage(t *testing.T) {
	_, r := newTestHandler(t)

	req, err := http.NewRequest("GET", "/about", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var page Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Empty(t, page.TeamMembers)
	assert.Empty(t, page.Timeline)
	assert.Empty(t, page.Mission.Title)
	// empty arrays, not nulls
	assert.Contains(t, rr.Body.String(), `"team_members":[]`)
}

func TestHandler_updateThenGet(t *testing.T) {
	repo, r := newTestHandler(t)

	reqBody := `{
		"team_members": [{"name": "Mika", "role": "maintainer", "skills": ["go", "linux"]}],
		"timeline": [{"year": "2024", "title": "founded", "description": "it begins"}],
		"mission": {"title": "our mission", "content": "keep the site running"},
		"contact": {"email": "hello@site.test"}
	}`
	req, err := http.NewRequest("PUT", "/about", strings.NewReader(reqBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	saved, err := repo.Get(t.Context())
	require.NoError(t, err)
	require.Len(t, saved.TeamMembers, 1)
	assert.Equal(t, "Mika", saved.TeamMembers[0].Name)
	assert.Equal(t, "our mission", saved.Mission.Title)
	assert.False(t, saved.UpdatedAt.IsZero())

	req, err = http.NewRequest("GET", "/about", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var page Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, "hello@site.test", page.Contact["email"])
}

func TestHandler_update_badJson(t *testing.T) {
	_, r := newTestHandler(t)

	req, err := http.NewRequest("PUT", "/about", strings.NewReader("not json at all"))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
