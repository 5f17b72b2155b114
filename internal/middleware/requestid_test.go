package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/investimentigrugno/fluxxo/internal/logger"
)

func TestRequestID(t *testing.T) {
	cases := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "generated", incoming: "", reuse: false},
		{name: "propagated", incoming: "abc-123", reuse: true},
		{name: "at limit propagated", incoming: strings.Repeat("x", maxRequestIDLen), reuse: true},
		{name: "over limit replaced", incoming: strings.Repeat("x", maxRequestIDLen+1), reuse: false},
		{name: "oversized replaced", incoming: strings.Repeat("x", 100), reuse: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID())
			var fromCtx, fromGin string
			r.GET("/", func(c *gin.Context) {
				fromGin = c.GetString(RequestIDKey)
				fromCtx = logger.RequestID(c.Request.Context())
				c.String(200, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get("X-Request-ID")
			if got == "" || got != fromGin || got != fromCtx {
				t.Fatalf("header=%q gin=%q ctx=%q", got, fromGin, fromCtx)
			}
			if (got == tc.incoming) != tc.reuse {
				t.Fatalf("reuse=%v for incoming %q, got %q", tc.reuse, tc.incoming, got)
			}
		})
	}
}
