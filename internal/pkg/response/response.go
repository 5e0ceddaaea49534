package response

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Error writes {"error": message}.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// Issues writes a 400-style body whose error field is the issue list.
func Issues(c *gin.Context, statusCode int, issues any) {
	c.JSON(statusCode, gin.H{"error": issues})
}

// Internal answers with the route's generic message and records the cause on
// the gin context, where ErrorLogger picks it up.
func Internal(c *gin.Context, statusCode int, message string, err error) {
	_ = c.Error(errors.Wrap(err, message))
	c.JSON(statusCode, gin.H{"error": message})
}
