package server

import (
	"flutter-scaffold/backend/internal/features/scaffold/application"
	scaffold_http "flutter-scaffold/backend/internal/features/scaffold/presentation/http"
	system_http "flutter-scaffold/backend/internal/features/system/presentation/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the HTTP surface onto a fresh gin engine.
func NewRouter(projectService application.ProjectService, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger), cors.Default())

	systemHandler := system_http.NewSystemHandler()
	r.GET("/health", systemHandler.HealthHandler)
	r.POST("/test", systemHandler.TestHandler)

	projectHandler := scaffold_http.NewProjectHandler(projectService, logger)
	r.POST("/generate-project", projectHandler.GenerateProjectHandler)
	r.GET("/projects", projectHandler.ListProjectsHandler)
	r.GET("/architectures", scaffold_http.NewCatalogHandler(projectService).ListArchitecturesHandler)

	return r
}
