// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes a uniform error body
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// RespondWithFieldErrors writes a validation failure with per-field messages
func RespondWithFieldErrors(c *gin.Context, status int, message string, errors map[string]string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"errors":  errors,
	})
}
