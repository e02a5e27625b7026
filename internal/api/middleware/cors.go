package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// CORS allows the front end to fetch page data and the key from another origin
// (the dev server, or a page served behind DEV_CORS_PROXY_URL).
// Only genuine preflights are short-circuited; a bare OPTIONS still reaches the handler.
// Routes listed in passthrough get the headers but never the short-circuit.
func CORS(allowedOrigins []string, passthrough ...string) gin.HandlerFunc {
	allowAll := slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case slices.Contains(allowedOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		default:
			c.Next()
			return
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")
		c.Header("Access-Control-Expose-Headers", requestIDHeader)

		if c.Request.Method == http.MethodOptions &&
			c.GetHeader("Access-Control-Request-Method") != "" &&
			!slices.Contains(passthrough, c.FullPath()) {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
