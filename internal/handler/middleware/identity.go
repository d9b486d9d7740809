package middleware

import (
	"net/http"

	"lendshare/internal/handler/httperr"
	"lendshare/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharerHeader carries the acting user's ID. There is no session layer; the
// gateway in front of this service is trusted to have authenticated the user.
const SharerHeader = "X-Sharer-User-Id"

const ctxUserIDKey = "sharer_user_id"

type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

func (m *IdentityMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest,
				errs.Validation("missing "+SharerHeader+" header"),
				"missing "+SharerHeader+" header", nil)
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err,
				"invalid "+SharerHeader+" header", nil)
			return
		}
		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
