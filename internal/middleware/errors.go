package middleware

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/investimentigrugno/fluxxo/internal/domain/dto"
)

var exposeDetails atomic.Bool

// ExposeErrorDetails controls whether raw internal error text is returned
// in the "details" field. Off by default; the text is always logged.
func ExposeErrorDetails(on bool) { exposeDetails.Store(on) }

// AbortWithError attaches err to the context for logging, then aborts with
// status and the standard error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	respond(c, status, message, err)
}

func respond(c *gin.Context, status int, message string, err error) {
	resp := dto.NewErrorResponse(message, err)
	if !exposeDetails.Load() {
		resp.ErrorDetails = ""
	}
	c.AbortWithStatusJSON(status, resp)
}

// ErrorHandler renders the last error attached with c.Error when the
// handler chain finished without writing a response.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
var ErrorHandler gin.HandlerFunc = func(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	respond(c, http.StatusInternalServerError, "internal server error", c.Errors.Last().Err)
}
