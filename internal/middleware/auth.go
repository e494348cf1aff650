package middleware

import (
	"net/http"
	"strings"

	"github.com/drodber/results-service/internal/entity"
	"github.com/drodber/results-service/internal/lib/jwt"
	"github.com/gin-gonic/gin"
)

// PrincipalKey is where the verified principal lives in the gin context.
const PrincipalKey = "principal"

const unauthorizedMessage = "`Unauthorized`: Invalid credentials."

type AuthMiddleware struct {
	tokenSecret string
}

func NewAuthMiddleware(tokenSecret string) *AuthMiddleware {
	return &AuthMiddleware{tokenSecret: tokenSecret}
}

// Middleware verifies the Bearer token and injects the principal for the
// handlers downstream. Every failure is a terminal 401.
func (m *AuthMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := extractTokenFromHeader(c.GetHeader("Authorization"))
		if accessToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				entity.NewMessage(http.StatusUnauthorized, unauthorizedMessage))
			return
		}

		principal, err := jwt.ParseAccessToken(accessToken, m.tokenSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				entity.NewMessage(http.StatusUnauthorized, unauthorizedMessage))
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

func extractTokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
