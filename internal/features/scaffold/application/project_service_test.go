package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"flutter-scaffold/backend/internal/features/scaffold/domain"
	"flutter-scaffold/backend/internal/features/scaffold/infrastructure"
	"flutter-scaffold/backend/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScaffolder struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (f *fakeScaffolder) Create(_ context.Context, projectName, targetPath string) error {
	f.mu.Lock()
	f.calls = append(f.calls, projectName)
	f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err := os.MkdirAll(filepath.Join(targetPath, "lib"), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(targetPath, "pubspec.yaml"), []byte("name: "+projectName+"\n"), 0o644)
}

type failingArchiver struct{}

func (failingArchiver) Archive(context.Context, string, string) (int64, error) {
	return 0, domain.NewError(domain.KindArchive, domain.MsgArchiveFailed)
}

type fakeDescriber struct {
	text string
	err  error
	got  domain.ProjectSummary
}

func (f *fakeDescriber) Describe(_ context.Context, summary domain.ProjectSummary) (string, error) {
	f.got = summary
	return f.text, f.err
}

type serviceFixture struct {
	dir        string
	scaffolder *fakeScaffolder
	service    ProjectService
}

func newServiceFixture(t *testing.T, opts ...func(*serviceFixture, *Archiver, *ProjectDescriber)) *serviceFixture {
	t.Helper()
	f := &serviceFixture{dir: t.TempDir(), scaffolder: &fakeScaffolder{}}
	var archiver Archiver = infrastructure.NewZipArchiver(logging.Discard())
	var describer ProjectDescriber
	for _, opt := range opts {
		opt(f, &archiver, &describer)
	}
	f.service = NewProjectService(f.dir, f.scaffolder, newTestBuilder(), archiver, describer, logging.Discard())
	return f
}

func TestGenerate_Success(t *testing.T) {
	f := newServiceFixture(t)

	project, err := f.service.Generate(context.Background(), &domain.ProjectRequest{ProjectName: "My App!", Architecture: "MVC"})
	require.NoError(t, err)

	assert.Equal(t, "my_app_", project.ID)
	assert.Equal(t, "my_app_.zip", project.ArchiveName())
	assert.Equal(t, filepath.Join(f.dir, "my_app_"), project.ProjectPath)
	assert.Equal(t, filepath.Join(f.dir, "my_app_.zip"), project.ArchivePath)
	assert.Equal(t, domain.MVC, project.Architecture)
	assert.Equal(t, domain.Folders(domain.MVC), project.Report.Folders)
	assert.Equal(t, []string{"my_app_"}, f.scaffolder.calls)

	assert.FileExists(t, filepath.Join(project.ProjectPath, "pubspec.yaml"))
	assert.FileExists(t, filepath.Join(project.ProjectPath, "lib", "models", "user_model.dart"))
	st, err := os.Stat(project.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, st.Size(), project.ArchiveSize)

	f.service.CleanupArchive(project)
	assert.NoFileExists(t, project.ArchivePath)
	assert.DirExists(t, project.ProjectPath)
}

func TestGenerate_DefaultArchitecture(t *testing.T) {
	f := newServiceFixture(t)

	project, err := f.service.Generate(context.Background(), &domain.ProjectRequest{ProjectName: "dup"})
	require.NoError(t, err)
	assert.Equal(t, domain.MVC, project.Architecture)
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.ProjectRequest
		wantKind domain.Kind
		wantMsg  string
	}{
		{"empty name", domain.ProjectRequest{}, domain.KindValidation, domain.MsgProjectNameRequired},
		{"blank name", domain.ProjectRequest{ProjectName: " \t "}, domain.KindValidation, domain.MsgProjectNameRequired},
		{"unknown architecture", domain.ProjectRequest{ProjectName: "x", Architecture: "Bogus"}, domain.KindValidation, domain.MsgInvalidArchitecture},
		{"architecture is case sensitive", domain.ProjectRequest{ProjectName: "x", Architecture: "mvc"}, domain.KindValidation, domain.MsgInvalidArchitecture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)

			_, err := f.service.Generate(context.Background(), &tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			assert.Equal(t, tt.wantMsg, domain.MessageOf(err))

			entries, err := os.ReadDir(f.dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "validation must not touch the projects directory")
			assert.Empty(t, f.scaffolder.calls)
		})
	}
}

func TestGenerate_Conflict(t *testing.T) {
	f := newServiceFixture(t)

	first, err := f.service.Generate(context.Background(), &domain.ProjectRequest{ProjectName: "dup"})
	require.NoError(t, err)
	f.service.CleanupArchive(first)

	_, err = f.service.Generate(context.Background(), &domain.ProjectRequest{ProjectName: "DUP"})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, domain.MsgProjectExists, domain.MessageOf(err))
	assert.Len(t, f.scaffolder.calls, 1)
}

func TestGenerate_ConcurrentSameNameOnlyOneWins(t *testing.T) {
	f := newServiceFixture(t)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Generate(context.Background(), &domain.ProjectRequest{ProjectName: "race"})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case domain.KindOf(err) == domain.KindConflict:
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestGenerate_ScaffolderFailureRemovesDirectory(t *testing.T) {
	f := newServiceFixture(t)
	f.scaffolder.err = domain.NewError(domain.KindExternalTool, "flutter: command not found")

	_, err := f.service.Generate(context.Background(), &domain.ProjectRequest{ProjectName: "broken"})
	require.Error(t, err)
	assert.Equal(t, domain.KindExternalTool, domain.KindOf(err))
	assert.NoDirExists(t, filepath.Join(f.dir, "broken"))
}

func TestGenerate_ArchiveFailure(t *testing.T) {
	f := newServiceFixture(t, func(_ *serviceFixture, a *Archiver, _ *ProjectDescriber) {
		*a = failingArchiver{}
	})

	_, err := f.service.Generate(context.Background(), &domain.ProjectRequest{ProjectName: "noarchive"})
	require.Error(t, err)
	assert.Equal(t, domain.KindArchive, domain.KindOf(err))
	// The project tree itself is not rolled back.
	assert.DirExists(t, filepath.Join(f.dir, "noarchive", "lib", "models"))
}

func TestGenerate_WithDescriber(t *testing.T) {
	describer := &fakeDescriber{text: "A recipe browser."}
	f := newServiceFixture(t, func(_ *serviceFixture, _ *Archiver, d *ProjectDescriber) {
		*d = describer
	})

	project, err := f.service.Generate(context.Background(), &domain.ProjectRequest{
		ProjectName:   "recipes",
		Architecture:  "Provider",
		CustomFolders: []string{"lib/extra"},
		Description:   "browse recipes",
	})
	require.NoError(t, err)

	assert.Equal(t, "recipes", describer.got.Name)
	assert.Equal(t, domain.Provider, describer.got.Architecture)
	assert.Equal(t, "browse recipes", describer.got.Description)
	assert.Equal(t, project.Report.Folders, describer.got.Folders)

	readme, err := os.ReadFile(filepath.Join(project.ProjectPath, ReadmeFile))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "### Overview:\nA recipe browser.\n")
}

func TestGenerate_DescriberFailureIsNotFatal(t *testing.T) {
	f := newServiceFixture(t, func(_ *serviceFixture, _ *Archiver, d *ProjectDescriber) {
		*d = &fakeDescriber{err: errors.New("rate limited")}
	})

	project, err := f.service.Generate(context.Background(), &domain.ProjectRequest{ProjectName: "quiet"})
	require.NoError(t, err)

	readme, err := os.ReadFile(filepath.Join(project.ProjectPath, ReadmeFile))
	require.NoError(t, err)
	assert.NotContains(t, string(readme), "### Overview:")
}

func TestListProjects(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(f.dir, "alpha"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(f.dir, "beta"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(f.dir, ".cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "alpha.zip"), []byte("zip"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(f.dir, "beta"), filepath.Join(f.dir, "gamma")))

	projects, err := f.service.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, projects)
}

func TestListProjects_Empty(t *testing.T) {
	projects, err := newServiceFixture(t).service.ListProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestListProjects_MissingRoot(t *testing.T) {
	service := NewProjectService(filepath.Join(t.TempDir(), "missing"), &fakeScaffolder{}, newTestBuilder(),
		infrastructure.NewZipArchiver(logging.Discard()), nil, logging.Discard())

	_, err := service.ListProjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindListing, domain.KindOf(err))
}

func TestEnsureProjectsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureProjectsDir(dir))
	assert.DirExists(t, dir)
	require.NoError(t, EnsureProjectsDir(dir))
}
