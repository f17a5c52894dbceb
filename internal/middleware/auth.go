package middleware

import (
	"net/http"
	"strings"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key the verified user id is bound to.
const UserIDKey = "userId"

// Auth extracts a bearer token from the Authorization header, verifies it
// and binds the user id into the request context. Any failure aborts with
// 401 before the downstream handler runs. The gate itself never touches
// the database; handlers resolve the user row when they need it.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Error(c, http.StatusUnauthorized, "Please authenticate.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			util.Error(c, http.StatusUnauthorized, "Please authenticate.")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, parts[1])
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "Please authenticate.")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the user id bound by Auth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
