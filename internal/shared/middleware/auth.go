package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"portfolio-backend/internal/shared/response"
)

const (
	ctxIdentityKey      = "identity"
	ctxAuthenticatedKey = "authenticated"
)

// RequireAuth rejects requests without a bearer token. Token signatures
// are verified by the gateway in front of this service; here we only
// check presence and pull the caller identity out of the claims.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			return
		}

		c.Set(ctxAuthenticatedKey, true)
		c.Set(ctxIdentityKey, identityFromToken(token))
		c.Next()
	}
}

// OptionalAuth records whether the caller presented a token but never
// rejects the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			c.Set(ctxAuthenticatedKey, true)
			c.Set(ctxIdentityKey, identityFromToken(token))
		} else {
			c.Set(ctxAuthenticatedKey, false)
		}
		c.Next()
	}
}

// IsAuthenticated reports whether the current request carried a bearer token.
func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool(ctxAuthenticatedKey)
}

// Identity returns the caller identity extracted from the token claims,
// or "unknown" when none is available.
func Identity(c *gin.Context) string {
	if id := c.GetString(ctxIdentityKey); id != "" {
		return id
	}
	return "unknown"
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// identityFromToken decodes the claims without verifying the signature.
// Verification already happened upstream; a token that does not parse
// still authenticates but yields the "unknown" identity.
func identityFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "unknown"
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if username, ok := claims["cognito:username"].(string); ok && username != "" {
		return username
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	return "unknown"
}
