package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes {"message": message} with the given status and
// aborts the handler chain.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// RespondWithFieldErrors writes {"message", "errors"} for validation failures.
func RespondWithFieldErrors(c *gin.Context, status int, message string, errs []string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message, "errors": errs})
}
