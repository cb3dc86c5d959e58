package portfolio

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorLog_HashIP(t *testing.T) {
	t.Parallel()

	a, err := newVisitorLog(slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	b, err := newVisitorLog(slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	h := a.hashIP("203.0.113.9")

	assert.Len(t, h, 16)
	assert.Equal(t, h, a.hashIP("203.0.113.9"))
	assert.NotEqual(t, h, a.hashIP("203.0.113.10"))
	assert.NotEqual(t, h, b.hashIP("203.0.113.9"))
}

func TestVisitorLog_Middleware(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, path string, header http.Header) string {
		t.Helper()
		var buf bytes.Buffer
		v, err := newVisitorLog(slog.New(slog.NewTextHandler(&buf, nil)))
		require.NoError(t, err)

		r := gin.New()
		r.Use(v.Middleware())
		r.GET("/*path", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.9:41000"
		for k, vs := range header {
			req.Header[k] = vs
		}
		req.Header.Set("User-Agent", "test-agent")
		r.ServeHTTP(httptest.NewRecorder(), req)
		return buf.String()
	}

	t.Run("logs page views with a hashed address", func(t *testing.T) {
		t.Parallel()

		out := serve(t, "/resume", nil)

		assert.Contains(t, out, "msg=visit")
		assert.Contains(t, out, "path=/resume")
		assert.Contains(t, out, "status=200")
		assert.Contains(t, out, "user_agent=test-agent")
		assert.Contains(t, out, "visitor=")
		assert.NotContains(t, out, "203.0.113.9")
	})

	t.Run("honours do not track", func(t *testing.T) {
		t.Parallel()

		out := serve(t, "/resume", http.Header{"Dnt": {"1"}})

		assert.Empty(t, out)
	})

	t.Run("skips static files", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, serve(t, "/static/css/site.css", nil))
		assert.Empty(t, serve(t, "/assets/resume.pdf", nil))
		assert.Empty(t, serve(t, "/healthz", nil))
	})
}
