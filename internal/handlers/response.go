package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError writes the flat error body the API contract promises:
// {"error": "<message>"}.
func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
