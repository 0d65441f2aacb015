package middleware

import (
	"errors"
	"net/http"

	"cat-server/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders any error a handler attached with c.Error. Typed
// errors keep their status; everything else becomes 500 with the underlying
// message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var customErr *utils.CustomError
		if errors.As(err, &customErr) {
			utils.ErrorResponse(c, customErr.StatusCode, customErr.Message)
			return
		}

		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
