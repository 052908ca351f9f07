package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"flutter-scaffold/backend/internal/features/scaffold/domain"

	"github.com/charmbracelet/log"
)

// Scaffolder lays down the baseline project the architecture is overlaid on.
type Scaffolder interface {
	Create(ctx context.Context, projectName, targetPath string) error
}

// Archiver packs a finished project directory into one file.
type Archiver interface {
	Archive(ctx context.Context, srcDir, dstZip string) (int64, error)
}

// ProjectDescriber writes free-text overview for a project's README.
type ProjectDescriber interface {
	Describe(ctx context.Context, summary domain.ProjectSummary) (string, error)
}

// GeneratedProject is the outcome of a successful Generate call.
type GeneratedProject struct {
	ID           string
	ProjectPath  string
	ArchivePath  string
	ArchiveSize  int64
	Architecture domain.Architecture
	Report       *BuildReport
}

// ArchiveName is the download file name of the archive.
func (p *GeneratedProject) ArchiveName() string {
	return p.ID + ".zip"
}

// ProjectService defines the interface for the project generation service.
type ProjectService interface {
	Generate(ctx context.Context, req *domain.ProjectRequest) (*GeneratedProject, error)
	CleanupArchive(project *GeneratedProject)
	ListProjects(ctx context.Context) ([]string, error)
	Architectures() []domain.ArchitectureInfo
}

// projectService is the implementation of ProjectService.
type projectService struct {
	projectsDir string
	scaffolder  Scaffolder
	builder     *ProjectBuilder
	archiver    Archiver
	describer   ProjectDescriber // optional
	logger      *log.Logger
}

// NewProjectService creates a new instance of projectService. describer may be nil.
func NewProjectService(projectsDir string, scaffolder Scaffolder, builder *ProjectBuilder, archiver Archiver, describer ProjectDescriber, logger *log.Logger) ProjectService {
	return &projectService{
		projectsDir: projectsDir,
		scaffolder:  scaffolder,
		builder:     builder,
		archiver:    archiver,
		describer:   describer,
		logger:      logger,
	}
}

// EnsureProjectsDir creates the projects root if needed.
func EnsureProjectsDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create projects directory %s: %w", dir, err)
	}
	return nil
}

// Generate validates req, runs the scaffolding tool, overlays the architecture
// and archives the result. The project directory is kept; the archive is the
// caller's to remove with CleanupArchive.
func (s *projectService) Generate(ctx context.Context, req *domain.ProjectRequest) (*GeneratedProject, error) {
	if strings.TrimSpace(req.ProjectName) == "" {
		return nil, domain.NewError(domain.KindValidation, domain.MsgProjectNameRequired)
	}

	id := domain.SanitizeProjectName(req.ProjectName)
	projectPath := filepath.Join(s.projectsDir, id)

	if _, err := os.Stat(projectPath); err == nil {
		return nil, domain.NewError(domain.KindConflict, domain.MsgProjectExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, domain.WrapError(domain.KindInternal, err.Error(), err)
	}

	if req.Architecture != "" && !domain.IsValidArchitecture(req.Architecture) {
		return nil, domain.NewError(domain.KindValidation, domain.MsgInvalidArchitecture)
	}
	arch := domain.Architecture(req.Architecture)
	if arch == "" {
		arch = domain.DefaultArchitecture
	}

	s.logger.Info("Creating Flutter project", "id", id, "architecture", arch)

	// Exclusive create: a concurrent request for the same id loses here.
	if err := os.Mkdir(projectPath, dirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, domain.NewError(domain.KindConflict, domain.MsgProjectExists)
		}
		return nil, domain.WrapError(domain.KindInternal, err.Error(), err)
	}

	if err := s.scaffolder.Create(ctx, id, projectPath); err != nil {
		if rmErr := os.RemoveAll(projectPath); rmErr != nil {
			s.logger.Error("Failed to clean up project directory", "path", projectPath, "err", rmErr)
		}
		return nil, err
	}

	report, err := s.builder.Build(ctx, BuildOptions{
		Root:          projectPath,
		Architecture:  arch,
		CustomFolders: req.CustomFolders,
		Overview:      s.overview(ctx, id, arch, req),
	})
	if err != nil {
		s.logger.Error("Error creating project structure", "id", id, "err", err)
		if domain.KindOf(err) == domain.KindInternal {
			err = domain.WrapError(domain.KindStructureBuild, err.Error(), err)
		}
		return nil, err
	}
	if failed := report.Failed(); len(failed) > 0 {
		s.logger.Warn("Project structure incomplete", "id", id, "failed", len(failed), "attempted", len(report.Folders))
	}

	archivePath := filepath.Join(s.projectsDir, id+".zip")
	size, err := s.archiver.Archive(ctx, projectPath, archivePath)
	if err != nil {
		return nil, err
	}

	return &GeneratedProject{
		ID:           id,
		ProjectPath:  projectPath,
		ArchivePath:  archivePath,
		ArchiveSize:  size,
		Architecture: arch,
		Report:       report,
	}, nil
}

// overview asks the describer for README text. Failures only cost the section.
func (s *projectService) overview(ctx context.Context, id string, arch domain.Architecture, req *domain.ProjectRequest) string {
	if s.describer == nil {
		return ""
	}
	text, err := s.describer.Describe(ctx, domain.ProjectSummary{
		Name:         id,
		Architecture: arch,
		Folders:      domain.ResolveFolders(arch, req.CustomFolders),
		Description:  req.Description,
	})
	if err != nil {
		s.logger.Warn("Skipping README overview", "id", id, "err", err)
		return ""
	}
	return text
}

// CleanupArchive removes the transient archive. Failures are logged only.
func (s *projectService) CleanupArchive(project *GeneratedProject) {
	if project == nil || project.ArchivePath == "" {
		return
	}
	if err := os.Remove(project.ArchivePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("Error cleaning up zip file", "path", project.ArchivePath, "err", err)
	}
}

// ListProjects returns the generated project directories, skipping dot entries.
func (s *projectService) ListProjects(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.projectsDir)
	if err != nil {
		s.logger.Error("Error listing projects", "dir", s.projectsDir, "err", err)
		return nil, domain.WrapError(domain.KindListing, domain.MsgListFailed, err)
	}

	projects := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, domain.WrapError(domain.KindListing, domain.MsgListFailed, err)
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		// Stat follows symlinks, so linked project directories are listed too.
		info, err := os.Stat(filepath.Join(s.projectsDir, name))
		if err != nil {
			s.logger.Warn("Skipping unreadable entry", "name", name, "err", err)
			continue
		}
		if info.IsDir() {
			projects = append(projects, name)
		}
	}
	return projects, nil
}

// Architectures returns the registered architecture catalog.
func (s *projectService) Architectures() []domain.ArchitectureInfo {
	return domain.Catalog()
}
