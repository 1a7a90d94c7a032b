package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkalens/sitehub/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlerAndRouter(t *testing.T) (*Service, *mux.Router) {
	t.Helper()

	service, _ := newTestService(t)
	handler := NewHandler(service, metrics.NewTestManager())

	r := mux.NewRouter()
	handler.SetupRoutes(r)
	return service, r
}

func TestNewHandler_routes(t *testing.T) {
	_, r := newTestHandlerAndRouter(t)

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"check-setup": {
			name:   "check-setup",
			path:   "/a/check-setup",
			method: "GET",
		},
		"setup": {
			name:   "setup",
			path:   "/a/setup",
			method: "POST",
		},
		"login": {
			name:   "login",
			path:   "/a/login",
			method: "POST",
		},
		"change-password": {
			name:   "change-password",
			path:   "/a/change-password",
			method: "POST",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			muxRoute := r.Get(route.name)
			require.NotNil(t, muxRoute)
			assert.True(t, muxRoute.Match(req, routeMatch), caseName)
		})
	}
}

func jsonReq(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_setupLoginChangePasswordScenario(t *testing.T) {
	service, r := newTestHandlerAndRouter(t)

	// fresh system - setup needed
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "GET", "/a/check-setup", ""))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"needsSetup": true}`, rr.Body.String())

	// create the first admin
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/setup",
		`{"username":"admin","email":"admin@site.test","password":"secret123"}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	var setupResp tokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &setupResp))
	require.NotEmpty(t, setupResp.Token)
	assert.Equal(t, "admin", setupResp.Admin.Username)
	assert.NotEmpty(t, setupResp.Admin.ID)

	// token carries the admin identity
	identity, err := service.tokens.Verify(setupResp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)

	// setup is a one-shot - second call fails regardless of input
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/setup",
		`{"username":"intruder","email":"x@site.test","password":"whatever1"}`))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "GET", "/a/check-setup", ""))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"needsSetup": false}`, rr.Body.String())

	// login with the same credentials
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/login",
		`{"username":"admin","password":"secret123"}`))
	require.Equal(t, http.StatusOK, rr.Code)
	var loginResp tokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	_, err = service.tokens.Verify(loginResp.Token)
	require.NoError(t, err)

	changePassword := func(current, newPass string) *httptest.ResponseRecorder {
		req := jsonReq(t, "POST", "/a/change-password",
			fmt.Sprintf(`{"current_password":%q,"new_password":%q}`, current, newPass))
		req = req.WithContext(ContextWithIdentity(req.Context(), identity))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	// wrong current password
	require.Equal(t, http.StatusBadRequest, changePassword("wrongpass", "abcdef").Code)
	// new password too short
	require.Equal(t, http.StatusBadRequest, changePassword("secret123", "ab").Code)
	// ok
	require.Equal(t, http.StatusOK, changePassword("secret123", "abcdef").Code)

	// old password no longer works, new one does
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/login",
		`{"username":"admin","password":"secret123"}`))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/login",
		`{"username":"admin","password":"abcdef"}`))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_login_uniformResponseBody(t *testing.T) {
	_, r := newTestHandlerAndRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/setup",
		`{"username":"admin","email":"admin@site.test","password":"secret123"}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	noUser := httptest.NewRecorder()
	r.ServeHTTP(noUser, jsonReq(t, "POST", "/a/login",
		`{"username":"nouser","password":"anything"}`))

	wrongPass := httptest.NewRecorder()
	r.ServeHTTP(wrongPass, jsonReq(t, "POST", "/a/login",
		`{"username":"admin","password":"wrongpass"}`))

	assert.Equal(t, http.StatusUnauthorized, noUser.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	// identical bodies - no hint whether the user exists
	assert.Equal(t, noUser.Body.String(), wrongPass.Body.String())
}

func TestHandler_changePassword_noIdentity(t *testing.T) {
	_, r := newTestHandlerAndRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/change-password",
		`{"current_password":"a","new_password":"abcdef"}`))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_setup_validation(t *testing.T) {
	_, r := newTestHandlerAndRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/setup", `{"username":"","password":"secret123"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, jsonReq(t, "POST", "/a/setup", `{"username":"admin","password":""}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
