package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"workshop-booking/internal/handler/httperr"
	"workshop-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is what nginx reports when the client hangs up first.
const statusClientClosedRequest = 499

// ErrorHandler writes the public error recorded by a handler that aborted
// without a body, and logs private errors that never reached the client.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		// newest error wins
		for i := len(c.Errors) - 1; i >= 0; i-- {
			ginErr := c.Errors[i]
			if !ginErr.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := ginErr.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		last := c.Errors.Last().Err
		if errs.Is(last, context.Canceled) {
			c.Status(statusClientClosedRequest)
			return
		}

		logger.Error("Unhandled request error",
			"request_id", GetRequestID(c),
			"path", c.Request.URL.Path,
			"error", last.Error())

		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		resp := httperr.Response{Status: http.StatusInternalServerError}
		resp.Error.Message = "Internal server error"
		c.JSON(resp.Status, resp)
	}
}

// CustomRecovery must be the outermost middleware so it sees panics from all others.
func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			// net/http's own signal for aborting a response; let the server handle it
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			logger.Error("Recovered from panic",
				"request_id", GetRequestID(c),
				"path", c.Request.URL.Path,
				"panic", recovered)

			resp := httperr.Response{Status: http.StatusInternalServerError}
			resp.Error.Message = "Internal server error"
			c.AbortWithStatusJSON(resp.Status, resp)
		}()
		c.Next()
	}
}
