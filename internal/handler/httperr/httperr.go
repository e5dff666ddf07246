package httperr

import (
	"net/http"

	"slot-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps an error category to its HTTP status. Invariant violations
// and uncategorized errors are server faults.
func StatusOf(err error) int {
	switch errs.Category(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrConflict:
		return http.StatusConflict
	case errs.ErrPermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Abort answers with the status of err's category. Client errors expose the
// error text; server errors do not.
func Abort(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = "Internal error"
	}
	AbortWithError(c, status, err, msg, nil)
}
