package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/modules/serializer"
	"github.com/vitrine-app/vitrine-api/internal/modules/service"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

const userContextKey = "user"

// RequireAuth authenticates the bearer token and sets the resolved
// user in the gin context. Requests without a valid token stop at 401;
// authorization decisions (403) belong to the layers behind it.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}

		u, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			// Only a bad credential is a 401. A store outage during
			// resolution is the store's fault, not the caller's, and
			// must keep its own status or an SPA will drop a valid
			// session.
			switch apperr.KindOf(err) {
			case apperr.KindUnauthenticated, apperr.KindInvalidCredentials:
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("invalid or expired token"))
			default:
				serializer.FromError(c, err)
				c.Abort()
			}
			return
		}

		c.Set(userContextKey, u)
		c.Next()
	}
}

// OptionalAuth resolves a bearer token when one is present but lets
// anonymous requests through. A missing credential is a normal absent
// session, not an error.
func OptionalAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			u, err := auth.Resolve(c.Request.Context(), token)
			switch {
			case err == nil:
				c.Set(userContextKey, u)
			case apperr.Is(err, apperr.KindUnauthenticated) || apperr.Is(err, apperr.KindInvalidCredentials):
				// a stale token on a public route is just an anonymous
				// request
			default:
				// never downgrade a store failure to an anonymous
				// session: the caller would see hidden content vanish
				serializer.FromError(c, err)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run behind RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				serializer.Err(http.StatusForbidden, "admin access required", nil))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}
