package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func runCORS(t *testing.T, allowlist []string, method, origin string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, "/api/v1/pages", nil)
	if origin != "" {
		c.Request.Header.Set("Origin", origin)
	}
	CORS(allowlist)(c)
	return recorder, c
}

func TestCORSAllowAllByDefault(t *testing.T) {
	recorder, _ := runCORS(t, nil, "GET", "https://app.example.com")
	require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowlistEchoesOnlyListedOrigins(t *testing.T) {
	allowlist := []string{"https://app.example.com"}

	recorder, _ := runCORS(t, allowlist, "GET", "https://app.example.com")
	require.Equal(t, "https://app.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", recorder.Header().Get("Vary"))

	recorder, _ = runCORS(t, allowlist, "GET", "https://evil.example.com")
	require.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	recorder, c := runCORS(t, nil, "OPTIONS", "https://app.example.com")
	require.True(t, c.IsAborted())
	require.Equal(t, 204, recorder.Code)
}
