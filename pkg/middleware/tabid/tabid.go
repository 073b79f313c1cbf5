package tabid

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// Header carries the per-tab session identifier on every client request.
	Header     = "X-Tab-ID"
	contextKey = "tab_id"
)

// Middleware resolves the tab identity for the request: the X-Tab-ID header when
// present, otherwise the client address so anonymous requests still get scoped
// temporary storage.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Sanitize(c.GetHeader(Header))
		if id == "" {
			id = Sanitize(c.ClientIP())
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// Value returns the tab identity stored in the Gin context.
func Value(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// Sanitize strips characters that would let an identifier escape its
// per-tab directory.
func Sanitize(id string) string {
	id = strings.TrimSpace(id)
	id = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, id)
	return strings.Trim(id, ".")
}
