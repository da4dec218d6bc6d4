package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthplan/diy-backend/internal/auth"
	"github.com/hearthplan/diy-backend/internal/generation/domain"
	"github.com/hearthplan/diy-backend/internal/generation/service"
	instances "github.com/hearthplan/diy-backend/internal/instances/domain"
	templates "github.com/hearthplan/diy-backend/internal/templates/domain"
)

type stubQuota struct {
	allowed bool
	err     error
}

func (s *stubQuota) Allow(context.Context, string) (bool, error) { return s.allowed, s.err }

type stubGenerator struct {
	candidate *domain.CandidateProject
	err       error
}

func (s *stubGenerator) Generate(context.Context, string) (*domain.CandidateProject, error) {
	return s.candidate, s.err
}

type stubSaver struct {
	result *service.SaveResult
	err    error
}

func (s *stubSaver) Save(context.Context, string, *domain.CandidateProject) (*service.SaveResult, error) {
	return s.result, s.err
}

type stubPreviews struct {
	stored map[string]*domain.CandidateProject
}

func (s *stubPreviews) Put(_ context.Context, _ string, c *domain.CandidateProject) (string, error) {
	s.stored["preview-1"] = c
	return "preview-1", nil
}

func (s *stubPreviews) Get(_ context.Context, _, id string) (*domain.CandidateProject, error) {
	c, ok := s.stored[id]
	if !ok {
		return nil, domain.ErrPreviewNotFound
	}
	return c, nil
}

func (s *stubPreviews) Delete(_ context.Context, _, id string) error {
	delete(s.stored, id)
	return nil
}

func goodCandidate() *domain.CandidateProject {
	return &domain.CandidateProject{
		Name:              "Fix the Leaky Faucet",
		Description:       "Replace the cartridge in the kitchen faucet.",
		ToolsAndMaterials: []string{"wrench", "cartridge"},
		Difficulty:        "beginner",
		EstimatedHours:    1,
		Category:          "plumbing",
		Tasks: []domain.GeneratedTask{
			{Title: "Shut off water", Description: "Close the supply valves", OrderIndex: 1},
			{Title: "Swap cartridge", Description: "Replace the worn cartridge", OrderIndex: 2},
		},
	}
}

func goodResult() *service.SaveResult {
	return &service.SaveResult{
		Template:    &templates.ProjectTemplate{ID: "tpl-1"},
		Instance:    &instances.ProjectInstance{ID: "inst-1"},
		FailedItems: []service.ItemFailure{},
	}
}

func newTestRouter(quota *stubQuota, gen *stubGenerator, saver *stubSaver, previews *stubPreviews) *gin.Engine {
	gin.SetMode(gin.TestMode)

	if previews == nil {
		previews = &stubPreviews{stored: map[string]*domain.CandidateProject{}}
	}
	svc := service.NewService(quota, gen, saver, previews, service.NewStdLogger())

	r := gin.New()
	r.Use(auth.WithUser())
	NewHandler(svc).Register(r.Group("/generate"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerate_Success(t *testing.T) {
	r := newTestRouter(&stubQuota{allowed: true}, &stubGenerator{candidate: goodCandidate()}, &stubSaver{result: goodResult()}, nil)

	w := doJSON(t, r, "/generate", gin.H{"prompt": "fix a faucet", "userId": "user-1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success     bool                  `json:"success"`
		Project     map[string]any        `json:"project"`
		FailedItems []service.ItemFailure `json:"failed_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "inst-1", resp.Project["id"])
	assert.Empty(t, resp.FailedItems)
}

func TestGenerate_UserIDFromHeader(t *testing.T) {
	r := newTestRouter(&stubQuota{allowed: true}, &stubGenerator{candidate: goodCandidate()}, &stubSaver{result: goodResult()}, nil)

	w := doJSON(t, r, "/generate", gin.H{"prompt": "fix a faucet"}, map[string]string{"X-User-Id": "user-1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerate_MissingUserID(t *testing.T) {
	r := newTestRouter(&stubQuota{allowed: true}, &stubGenerator{}, &stubSaver{}, nil)

	w := doJSON(t, r, "/generate", gin.H{"prompt": "fix a faucet"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "userId is required")
}

func TestGenerate_RateLimited(t *testing.T) {
	r := newTestRouter(&stubQuota{allowed: false}, &stubGenerator{}, &stubSaver{}, nil)

	w := doJSON(t, r, "/generate", gin.H{"userId": "user-1"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded. Please try again later.")
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	gen := &stubGenerator{err: &domain.UpstreamError{Msg: "upstream returned status 502"}}
	r := newTestRouter(&stubQuota{allowed: true}, gen, &stubSaver{}, nil)

	w := doJSON(t, r, "/generate", gin.H{"userId": "user-1"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGenerate_InvalidCandidate(t *testing.T) {
	bad := goodCandidate()
	bad.Tasks = nil
	r := newTestRouter(&stubQuota{allowed: true}, &stubGenerator{candidate: bad}, &stubSaver{}, nil)

	w := doJSON(t, r, "/generate", gin.H{"userId": "user-1"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed validation")
}

func TestGenerate_PersistFailure(t *testing.T) {
	saver := &stubSaver{err: &domain.PersistError{Step: "template", Err: errors.New("insert failed")}}
	r := newTestRouter(&stubQuota{allowed: true}, &stubGenerator{candidate: goodCandidate()}, saver, nil)

	w := doJSON(t, r, "/generate", gin.H{"userId": "user-1"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	gen := &stubGenerator{err: domain.ErrMissingAPIKey}
	r := newTestRouter(&stubQuota{allowed: true}, gen, &stubSaver{}, nil)

	w := doJSON(t, r, "/generate", gin.H{"userId": "user-1"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "OpenAI API key not configured")
}

func TestPreviewAndConfirm(t *testing.T) {
	previews := &stubPreviews{stored: map[string]*domain.CandidateProject{}}
	r := newTestRouter(&stubQuota{allowed: true}, &stubGenerator{candidate: goodCandidate()}, &stubSaver{result: goodResult()}, previews)

	w := doJSON(t, r, "/generate/preview", gin.H{"prompt": "fix a faucet", "userId": "user-1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var previewResp struct {
		PreviewID string         `json:"preview_id"`
		Project   map[string]any `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &previewResp))
	assert.NotEmpty(t, previewResp.PreviewID)
	assert.Equal(t, "Fix the Leaky Faucet", previewResp.Project["name"])

	w = doJSON(t, r, "/generate/confirm", gin.H{"previewId": previewResp.PreviewID, "userId": "user-1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "inst-1")
}

func TestConfirm_UnknownPreview(t *testing.T) {
	r := newTestRouter(&stubQuota{allowed: true}, &stubGenerator{}, &stubSaver{}, nil)

	w := doJSON(t, r, "/generate/confirm", gin.H{"previewId": "no-such-id", "userId": "user-1"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirm_MissingPreviewID(t *testing.T) {
	r := newTestRouter(&stubQuota{allowed: true}, &stubGenerator{}, &stubSaver{}, nil)

	w := doJSON(t, r, "/generate/confirm", gin.H{"userId": "user-1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
