package http

import (
	"net/http"

	"flutter-scaffold/backend/internal/features/scaffold/application"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the architecture catalog.
type CatalogHandler struct {
	projectService application.ProjectService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(projectService application.ProjectService) *CatalogHandler {
	return &CatalogHandler{projectService: projectService}
}

// ListArchitecturesHandler handles fetching the registered architectures and their folders.
func (h *CatalogHandler) ListArchitecturesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"architectures": h.projectService.Architectures()})
}
