package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hearthplan/diy-backend/internal/auth"
	"github.com/hearthplan/diy-backend/internal/generation/domain"
	"github.com/hearthplan/diy-backend/internal/generation/service"
)

type generateReq struct {
	Prompt string `json:"prompt"`
	UserID string `json:"userId"`
}

type confirmReq struct {
	PreviewID string `json:"previewId"`
	UserID    string `json:"userId"`
}

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// generate runs the pipeline end to end and saves the project directly.
func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	userID := resolveUserID(c, req.UserID)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	result, err := h.svc.GenerateAndSave(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"project":      result.Instance,
		"template":     result.Template,
		"failed_items": result.FailedItems,
	})
}

// preview generates and validates a project but parks it in the preview
// store instead of persisting.
func (h *Handler) preview(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	userID := resolveUserID(c, req.UserID)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	id, candidate, err := h.svc.Preview(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preview_id": id, "project": candidate})
}

// confirm persists a previously previewed project.
func (h *Handler) confirm(c *gin.Context) {
	var req confirmReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PreviewID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "previewId is required"})
		return
	}

	userID := resolveUserID(c, req.UserID)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	result, err := h.svc.ConfirmPreview(c.Request.Context(), userID, req.PreviewID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"project":      result.Instance,
		"template":     result.Template,
		"failed_items": result.FailedItems,
	})
}

func resolveUserID(c *gin.Context, bodyUserID string) string {
	if uid := strings.TrimSpace(bodyUserID); uid != "" {
		return uid
	}
	return auth.UserID(c)
}

func writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPreviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &vErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generated project failed validation: " + vErr.Msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
