package middleware

import (
	"log/slog"
	"net/http"

	"slot-reservation/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes a response for handlers that recorded an error with
// c.Error but wrote nothing. Public errors carry their envelope in Meta;
// anything else is answered by its category.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		if resp, ok := last.Meta.(httperr.Response); ok && last.IsType(gin.ErrorTypePublic) {
			c.JSON(resp.Status, resp)
			return
		}
		status := httperr.StatusOf(last.Err)
		resp := httperr.Response{Status: status}
		resp.Error.Message = "Internal error"
		if status < http.StatusInternalServerError {
			resp.Error.Message = last.Err.Error()
		}
		c.JSON(status, resp)
	}
}

// CustomRecovery turns a panic into a 500 envelope. It runs outermost, so
// the request id set by the logging middleware is visible here.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					slog.Any("panic", rec),
					slog.String("path", c.Request.URL.Path),
					slog.String("request_id", GetRequestID(c)))

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal error"
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
