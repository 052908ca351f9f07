package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flutter-scaffold/backend/internal/features/scaffold/domain"

	"github.com/charmbracelet/log"
)

// PlaceholderContent is written when a folder matches a template filename that
// has no registered boilerplate.
const PlaceholderContent = "// TODO: Add implementation"

// ReadmeFile is the name of the generated documentation file.
const ReadmeFile = "README.md"

// errOutsideRoot marks folders that would resolve outside the project directory.
var errOutsideRoot = errors.New("folder escapes the project directory")

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// TemplateSource resolves boilerplate file names to their content.
type TemplateSource interface {
	Content(filename string) (string, bool)
}

// BuildOptions configures one Build call.
type BuildOptions struct {
	Root          string
	Architecture  domain.Architecture
	CustomFolders []string
	// Overview is passed through to the README.
	Overview string
}

// FolderResult records what happened for one folder.
type FolderResult struct {
	Folder string `json:"folder"`
	// File is the template file written, empty when none matched.
	File string `json:"file,omitempty"`
	Err  error  `json:"-"`
}

// OK reports whether the folder and its template were written.
func (r FolderResult) OK() bool {
	return r.Err == nil
}

// BuildReport summarizes a Build call. Folders lists every folder attempted,
// in creation order, regardless of outcome.
type BuildReport struct {
	Folders []string
	Results []FolderResult
	Readme  string
}

// Failed returns the results that did not complete.
func (r *BuildReport) Failed() []FolderResult {
	var failed []FolderResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// ProjectBuilder overlays an architecture's folder tree, boilerplate files and
// README onto a project directory.
type ProjectBuilder struct {
	templates TemplateSource
	now       func() time.Time
	logger    *log.Logger
}

// NewProjectBuilder creates a ProjectBuilder. A nil clock defaults to time.Now.
func NewProjectBuilder(templates TemplateSource, now func() time.Time, logger *log.Logger) *ProjectBuilder {
	if now == nil {
		now = time.Now
	}
	return &ProjectBuilder{templates: templates, now: now, logger: logger}
}

// Build creates every resolved folder under opts.Root and drops the matching
// boilerplate file into it. A failing folder is logged and recorded in the
// report; the remaining folders are still processed. Only a README write
// failure or cancellation is returned as an error.
func (b *ProjectBuilder) Build(ctx context.Context, opts BuildOptions) (*BuildReport, error) {
	arch := opts.Architecture
	if arch == "" {
		arch = domain.DefaultArchitecture
	}
	b.logger.Info("Creating project structure", "path", opts.Root, "architecture", arch)

	folders := domain.ResolveFolders(arch, opts.CustomFolders)
	report := &BuildReport{
		Folders: folders,
		Results: make([]FolderResult, 0, len(folders)),
	}

	// Rejected folders never exist on disk, so the README leaves them out.
	documented := make([]string, 0, len(folders))
	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res := b.buildFolder(opts.Root, folder)
		if res.Err != nil {
			b.logger.Error("Error creating folder", "folder", folder, "err", res.Err)
		}
		if !errors.Is(res.Err, errOutsideRoot) {
			documented = append(documented, folder)
		}
		report.Results = append(report.Results, res)
	}

	readme := domain.GenerateReadme(domain.ReadmeInput{
		ProjectName:  filepath.Base(opts.Root),
		Architecture: arch,
		Folders:      documented,
		Date:         b.now(),
		Overview:     opts.Overview,
	})
	readmePath := filepath.Join(opts.Root, ReadmeFile)
	if err := os.WriteFile(readmePath, []byte(readme), filePerm); err != nil {
		return report, domain.WrapError(domain.KindStructureBuild, err.Error(), err)
	}
	report.Readme = readmePath
	b.logger.Info("Created README.md", "path", readmePath)

	return report, nil
}

func (b *ProjectBuilder) buildFolder(root, folder string) FolderResult {
	res := FolderResult{Folder: folder}

	folderPath, err := resolveWithin(root, folder)
	if err != nil {
		res.Err = err
		return res
	}

	if err := os.MkdirAll(folderPath, dirPerm); err != nil {
		res.Err = err
		return res
	}
	b.logger.Debug("Created folder", "path", folderPath)

	filename, ok := domain.MatchTemplate(folder)
	if !ok {
		return res
	}

	content, ok := b.templates.Content(filename)
	if !ok {
		content = PlaceholderContent
	}

	filePath := filepath.Join(folderPath, filename)
	if err := os.WriteFile(filePath, []byte(content), filePerm); err != nil {
		res.Err = err
		return res
	}
	res.File = filename
	b.logger.Debug("Created file", "path", filePath)
	return res
}

// resolveWithin joins folder onto root and rejects results outside root.
func resolveWithin(root, folder string) (string, error) {
	joined := filepath.Join(root, filepath.FromSlash(folder))
	rel, err := filepath.Rel(root, joined)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", folder, errOutsideRoot)
	}
	return joined, nil
}
