package util

import "github.com/gin-gonic/gin"

// Response carries the endpoint-specific fields merged into the success body.
type Response map[string]interface{}

// Success writes {"success":true, ...data} with the given HTTP status.
func Success(c *gin.Context, status int, data Response) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes {"success":false,"message":msg}.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": msg,
	})
}

// ValidationError writes {"success":false,"message":msg,"errors":fieldErrors}.
func ValidationError(c *gin.Context, status int, msg string, fieldErrors []gin.H) {
	c.JSON(status, gin.H{
		"success": false,
		"message": msg,
		"errors":  fieldErrors,
	})
}
