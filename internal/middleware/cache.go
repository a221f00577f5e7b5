package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CacheControl marks GET responses as cacheable for maxAgeSeconds.
// Authenticated responses are cached privately.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		scope := "public"
		if GetPrincipal(c) != nil {
			scope = "private"
		}
		c.Header("Cache-Control", fmt.Sprintf("%s, max-age=%d", scope, maxAgeSeconds))
		c.Next()
	}
}
