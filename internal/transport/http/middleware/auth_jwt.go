package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coursehub/internal/domain"
	resp "coursehub/internal/transport/http/response"
)

const KeyActor = "actor"

// UserResolver turns a bearer token into the stored user. A token whose
// identity no longer resolves is unauthorized, not just unverified.
type UserResolver interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

func AuthJWT(svc UserResolver, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		u, err := svc.Authenticate(c.Request.Context(), strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && u.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyActor, u)
		c.Set("userId", u.ID)
		c.Set("role", u.Role)
		c.Next()
	}
}

// Actor returns the authenticated user stashed by AuthJWT.
func Actor(c *gin.Context) *domain.User {
	if v, ok := c.Get(KeyActor); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
