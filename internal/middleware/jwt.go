package middleware

import (
	"net/http"
	"strings"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/response"
	"github.com/careerbridge/careerbridge-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyPrincipal is the Gin context key for the verified principal.
	ContextKeyPrincipal = "principal"
	// ContextKeyToken is the Gin context key for the raw bearer token.
	ContextKeyToken = "access_token"
)

// RequireAuth verifies the bearer token and rejects the request without one.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		p, err := authService.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		setPrincipal(c, p, token)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid bearer token is present
// and lets anonymous requests through. Invalid tokens are still rejected.
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		p, err := authService.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		setPrincipal(c, p, token)
		c.Next()
	}
}

// setPrincipal stores p on the Gin context and on the request context, where
// the stores pick it up.
func setPrincipal(c *gin.Context, p *model.Principal, token string) {
	c.Set(ContextKeyPrincipal, p)
	c.Set(ContextKeyToken, token)
	c.Request = c.Request.WithContext(model.WithPrincipal(c.Request.Context(), p))
}

// GetPrincipal retrieves the verified principal from the Gin context, or nil.
func GetPrincipal(c *gin.Context) *model.Principal {
	val, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil
	}
	p, ok := val.(*model.Principal)
	if !ok {
		return nil
	}
	return p
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
