package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionEndpoints(t *testing.T) {
	router := newTestRouter(t, "no")
	router.POST("/workspaces/:name/session/start", HandleSessionStart)
	router.POST("/workspaces/:name/session/stop", HandleSessionStop)

	req := httptest.NewRequest(http.MethodPost, "/workspaces",
		jsonBody(t, map[string]string{"preferred_name": "jeff", "default_owner": "jeff"}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/workspaces/ws-jeff/session/start", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/workspaces/ws-jeff/session/stop", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	// Unknown workspace surfaces as 404.
	req = httptest.NewRequest(http.MethodPost, "/workspaces/ws-nope/session/start", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistrationLogNotFound(t *testing.T) {
	router := newTestRouter(t, "no")
	router.GET("/workspaces/:name/register/logs", HandleWorkspaceRegistrationLog)

	req := httptest.NewRequest(http.MethodGet, "/workspaces/ws-nope/register/logs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
