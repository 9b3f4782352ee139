package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/fieldservice-availability/internal/httperr"
)

const (
	ContextAdminSubject = "adminSubject"
	ContextAdminRole    = "adminRole"

	RoleAdmin = "admin"
)

// AdminAuthMiddleware accepts HS256 bearer tokens signed with secret whose
// role claim is "admin".
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(
			parts[1],
			func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Invalid token claims.")
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		if role != RoleAdmin {
			httperr.Forbidden(c, "forbidden", "Admin role required.")
			c.Abort()
			return
		}

		sub, _ := claims.GetSubject()

		c.Set(ContextAdminSubject, sub)
		c.Set(ContextAdminRole, role)

		c.Next()
	}
}
