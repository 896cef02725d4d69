package middleware

import (
	"net/http"
	"strings"

	"mmry/internal/auth"

	"github.com/gin-gonic/gin"
	platformerrors "github.com/jmgilman/go/errors"
)

// bearerToken extracts the token from "Authorization: Bearer <token>".
// Browsers cannot set headers on a websocket upgrade, so the "token" query
// parameter is accepted as a fallback.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && scheme == "Bearer" && token != "" {
			return token
		}
	}
	return c.Query("token")
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": platformerrors.ToJSON(platformerrors.New(platformerrors.CodeUnauthorized, message)),
	})
}

// JWTAuthMiddleware rejects requests without a valid token and stores the
// caller's identity under "user_id" and "username".
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "authorization token is required")
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
