package httperr

import (
	"net/http"

	"lendshare/internal/infra"
	"lendshare/internal/pkg/errs"

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

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortFromError maps the two public error kinds, plus the duplicate-key
// storage kind, to their HTTP statuses. Everything else is an internal error.
func AbortFromError(c *gin.Context, err error) {
	switch {
	case errs.IsNotFound(err):
		AbortWithError(c, http.StatusNotFound, err, err.Error(), nil)
	case errs.IsValidation(err):
		AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case infra.IsDuplicateKey(err):
		AbortWithError(c, http.StatusConflict, err, "already exists", nil)
	default:
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
