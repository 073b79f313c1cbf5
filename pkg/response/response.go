package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

// The viewer frontend expects bare payloads on success and {"error": msg}
// on failure, so no envelope is used.

// JSON sends a success payload as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Error sends the {"error": msg} shape with the status the error carries.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
