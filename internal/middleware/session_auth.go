package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mindfulpath/backend/internal/dto"
)

// Session and context keys for the authenticated user id.
const (
	SessionUserKey = "user_id"
	contextUserKey = "currentUserID"
)

// RequireAuth rejects requests without an authenticated session before the
// handler runs.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := SessionUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}
		c.Set(contextUserKey, userID)
		c.Next()
	}
}

// SessionUserID reads the authenticated user id from the request's session,
// if any. Usable on routes where authentication is optional.
func SessionUserID(c *gin.Context) (uint, bool) {
	if id, exists := c.Get(contextUserKey); exists {
		if userID, ok := id.(uint); ok {
			return userID, true
		}
	}

	session := sessions.Default(c)
	raw := session.Get(SessionUserKey)
	if raw == nil {
		return 0, false
	}
	userID, ok := raw.(uint)
	if !ok {
		return 0, false
	}
	return userID, true
}
