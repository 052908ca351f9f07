package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves liveness and echo endpoints.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HealthHandler reports that the server is up.
func (h *SystemHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Server is running",
	})
}

// TestHandler echoes the JSON body back to the caller.
func (h *SystemHandler) TestHandler(c *gin.Context) {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		if !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}
	if body == nil {
		body = gin.H{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Test endpoint working",
		"receivedData": body,
	})
}
