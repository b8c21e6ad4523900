package utils

import (
	"github.com/gin-gonic/gin"

	models "github.com/phillip/venturelink/models"
)

// Respond writes a successful envelope.
func Respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, models.APIResponse{Success: true, Data: data, Message: message})
}

// Fail writes an error envelope.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, models.APIResponse{Success: false, Error: msg})
}

// AbortFail writes an error envelope and stops the handler chain.
func AbortFail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, models.APIResponse{Success: false, Error: msg})
}
