package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"flutter-scaffold/backend/internal/features/scaffold/application"
	"flutter-scaffold/backend/internal/features/scaffold/domain"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// ProjectHandler holds the project service.
type ProjectHandler struct {
	projectService application.ProjectService
	logger         *log.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService application.ProjectService, logger *log.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// generateProjectPayload accepts loosely typed JSON so type mismatches can be
// answered with the documented messages instead of a decoder error.
type generateProjectPayload struct {
	ProjectName   any `json:"projectName"`
	Architecture  any `json:"architecture"`
	CustomFolders any `json:"customFolders"`
	Description   any `json:"description"`
}

func (p *generateProjectPayload) toRequest() (*domain.ProjectRequest, error) {
	req := &domain.ProjectRequest{}

	if name, ok := p.ProjectName.(string); ok {
		req.ProjectName = name
	}
	if strings.TrimSpace(req.ProjectName) == "" {
		return nil, domain.NewError(domain.KindValidation, domain.MsgProjectNameRequired)
	}

	switch arch := p.Architecture.(type) {
	case nil:
	case string:
		req.Architecture = arch
	default:
		// Never a registered name, so the service rejects it.
		req.Architecture = fmt.Sprint(arch)
	}

	switch folders := p.CustomFolders.(type) {
	case nil:
	case []any:
		for _, item := range folders {
			switch folder := item.(type) {
			case nil:
			case string:
				req.CustomFolders = append(req.CustomFolders, folder)
			default:
				return nil, domain.NewError(domain.KindValidation, domain.MsgInvalidFolders)
			}
		}
	default:
		return nil, domain.NewError(domain.KindValidation, domain.MsgInvalidFolders)
	}

	if desc, ok := p.Description.(string); ok {
		req.Description = desc
	}
	return req, nil
}

// GenerateProjectHandler handles generating a project and streaming it back as a zip.
func (h *ProjectHandler) GenerateProjectHandler(c *gin.Context) {
	var payload generateProjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.logger.Info("Generate project request received", "projectName", payload.ProjectName, "architecture", payload.Architecture)

	req, err := payload.toRequest()
	if err != nil {
		h.respondError(c, err)
		return
	}

	project, err := h.projectService.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.sendArchive(c, project); err != nil {
		h.logger.Error("Error sending zip file", "id", project.ID, "err", err)
		return
	}
	h.logger.Info("Zip file sent successfully", "id", project.ID, "bytes", project.ArchiveSize)
	h.projectService.CleanupArchive(project)
}

func (h *ProjectHandler) sendArchive(c *gin.Context, project *application.GeneratedProject) error {
	f, err := os.Open(project.ArchivePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.MsgArchiveFailed})
		return domain.WrapError(domain.KindArchive, domain.MsgArchiveFailed, err)
	}
	defer f.Close()

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, project.ArchiveName()))
	c.Header("Content-Length", strconv.FormatInt(project.ArchiveSize, 10))
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, f); err != nil {
		// Headers are already out; the response cannot be changed anymore.
		return domain.WrapError(domain.KindTransmission, "failed to stream archive", err)
	}
	return nil
}

// respondError maps a pipeline error to its HTTP status and message.
func (h *ProjectHandler) respondError(c *gin.Context, err error) {
	msg := domain.MessageOf(err)
	status := http.StatusInternalServerError

	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindExternalTool:
		msg = "Failed to create Flutter project: " + msg
	case domain.KindStructureBuild:
		msg = "Failed to create project structure: " + msg
	case domain.KindArchive:
		msg = domain.MsgArchiveFailed
	default:
		h.logger.Error("Unexpected error in generate-project endpoint", "err", err)
		msg = "Unexpected error: " + msg
	}

	c.JSON(status, gin.H{"error": msg})
}

// ListProjectsHandler handles listing the generated project directories.
func (h *ProjectHandler) ListProjectsHandler(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.MsgListFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}
