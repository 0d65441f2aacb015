package utils

import "github.com/gin-gonic/gin"

// DBMessageResponse is the envelope every mutation endpoint responds with.
type DBMessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse writes a mutation envelope.
func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, DBMessageResponse{Message: message, Data: data})
}

// ErrorResponse writes the uniform {message} error body.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
