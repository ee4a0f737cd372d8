package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slimyai/gatehouse/pkg/authsdk"
)

func TestHealthEndpoints(t *testing.T) {
	ts := startServer(t)

	t.Run("livez reports alive", func(t *testing.T) {
		var out authsdk.HealthResponse
		resp := doJSON(t, http.MethodGet, ts.URL+"/livez", nil, &out, requestOpts{})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "ok", out.Status)
		require.Equal(t, "e2e", out.Version)
		require.NotEmpty(t, out.Uptime)
	})

	t.Run("readyz checks the database", func(t *testing.T) {
		var out authsdk.HealthResponse
		resp := doJSON(t, http.MethodGet, ts.URL+"/readyz", nil, &out, requestOpts{})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "ok", out.Status)
		require.NotNil(t, out.Checks)
		require.Equal(t, "ok", out.Checks.Database)
	})

	t.Run("session without cookie is anonymous", func(t *testing.T) {
		var out authsdk.SessionResponse
		resp := doJSON(t, http.MethodGet, ts.URL+"/v1/auth/session", nil, &out, requestOpts{})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.False(t, out.Authenticated)
		require.Equal(t, "no_session", out.Error)
	})
}
