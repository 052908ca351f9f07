package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flutter-scaffold/backend/internal/features/scaffold/application"
	"flutter-scaffold/backend/internal/features/scaffold/domain"
	"flutter-scaffold/backend/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjectService struct {
	generateErr error
	archivePath string
	gotReq      *domain.ProjectRequest
	cleaned     bool
	projects    []string
	listErr     error
}

func (f *fakeProjectService) Generate(_ context.Context, req *domain.ProjectRequest) (*application.GeneratedProject, error) {
	f.gotReq = req
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	st, err := os.Stat(f.archivePath)
	if err != nil {
		return nil, err
	}
	return &application.GeneratedProject{
		ID:           domain.SanitizeProjectName(req.ProjectName),
		ArchivePath:  f.archivePath,
		ArchiveSize:  st.Size(),
		Architecture: domain.MVC,
	}, nil
}

func (f *fakeProjectService) CleanupArchive(*application.GeneratedProject) { f.cleaned = true }

func (f *fakeProjectService) ListProjects(context.Context) ([]string, error) {
	return f.projects, f.listErr
}

func (f *fakeProjectService) Architectures() []domain.ArchitectureInfo { return domain.Catalog() }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(svc application.ProjectService) *gin.Engine {
	r := gin.New()
	h := NewProjectHandler(svc, logging.Discard())
	r.POST("/generate-project", h.GenerateProjectHandler)
	r.GET("/projects", h.ListProjectsHandler)
	r.GET("/architectures", NewCatalogHandler(svc).ListArchitecturesHandler)
	return r
}

func post(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate-project", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestGenerateProjectHandler_StreamsArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "my_app.zip")
	require.NoError(t, os.WriteFile(archive, []byte("PK-not-really"), 0o644))
	svc := &fakeProjectService{archivePath: archive}

	w := post(t, newTestEngine(svc), `{"projectName":"My App","architecture":"MVC","customFolders":["lib/extra",null],"description":"notes"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="my_app.zip"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "13", w.Header().Get("Content-Length"))
	assert.Equal(t, "PK-not-really", w.Body.String())
	assert.True(t, svc.cleaned)

	assert.Equal(t, &domain.ProjectRequest{
		ProjectName:   "My App",
		Architecture:  "MVC",
		CustomFolders: []string{"lib/extra"},
		Description:   "notes",
	}, svc.gotReq)
}

func TestGenerateProjectHandler_RequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"malformed json", `{"projectName":`, http.StatusBadRequest, "Invalid request body"},
		{"empty body", ``, http.StatusBadRequest, domain.MsgProjectNameRequired},
		{"missing name", `{}`, http.StatusBadRequest, domain.MsgProjectNameRequired},
		{"blank name", `{"projectName":"   "}`, http.StatusBadRequest, domain.MsgProjectNameRequired},
		{"numeric name", `{"projectName":42}`, http.StatusBadRequest, domain.MsgProjectNameRequired},
		{"folders not an array", `{"projectName":"x","customFolders":"lib/a"}`, http.StatusBadRequest, domain.MsgInvalidFolders},
		{"folders with a number", `{"projectName":"x","customFolders":["lib/a",1]}`, http.StatusBadRequest, domain.MsgInvalidFolders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeProjectService{}
			w := post(t, newTestEngine(svc), tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, errorBody(t, w))
			assert.Nil(t, svc.gotReq, "service must not be called")
		})
	}
}

func TestGenerateProjectHandler_NonStringArchitectureIsRejectedByService(t *testing.T) {
	svc := &fakeProjectService{generateErr: domain.NewError(domain.KindValidation, domain.MsgInvalidArchitecture)}

	w := post(t, newTestEngine(svc), `{"projectName":"x","architecture":7}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "7", svc.gotReq.Architecture)
}

func TestGenerateProjectHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"invalid architecture", domain.NewError(domain.KindValidation, domain.MsgInvalidArchitecture), http.StatusBadRequest, domain.MsgInvalidArchitecture},
		{"conflict", domain.NewError(domain.KindConflict, domain.MsgProjectExists), http.StatusConflict, domain.MsgProjectExists},
		{"flutter failure", domain.NewError(domain.KindExternalTool, "flutter: not found"), http.StatusInternalServerError, "Failed to create Flutter project: flutter: not found"},
		{"structure failure", domain.NewError(domain.KindStructureBuild, "disk full"), http.StatusInternalServerError, "Failed to create project structure: disk full"},
		{"archive failure", domain.NewError(domain.KindArchive, "zip broke"), http.StatusInternalServerError, domain.MsgArchiveFailed},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "Unexpected error: " + assert.AnError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeProjectService{generateErr: tt.err}
			w := post(t, newTestEngine(svc), `{"projectName":"x"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, errorBody(t, w))
			assert.False(t, svc.cleaned)
		})
	}
}

func TestListProjectsHandler(t *testing.T) {
	svc := &fakeProjectService{projects: []string{"alpha", "beta"}}
	w := httptest.NewRecorder()
	newTestEngine(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projects":["alpha","beta"]}`, w.Body.String())
}

func TestListProjectsHandler_Error(t *testing.T) {
	svc := &fakeProjectService{listErr: domain.NewError(domain.KindListing, domain.MsgListFailed)}
	w := httptest.NewRecorder()
	newTestEngine(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, domain.MsgListFailed, errorBody(t, w))
}

func TestListArchitecturesHandler(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine(&fakeProjectService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/architectures", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Architectures []struct {
			Name    string   `json:"name"`
			Folders []string `json:"folders"`
		} `json:"architectures"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Architectures, 6)
	assert.Equal(t, "MVC", body.Architectures[0].Name)
	assert.Equal(t, "Feature-First", body.Architectures[5].Name)
	assert.Contains(t, body.Architectures[3].Folders, "lib/bloc")
}
