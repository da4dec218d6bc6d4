package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hearthplan/diy-backend/internal/auth"
	"github.com/hearthplan/diy-backend/internal/inventory/repository"
	"github.com/hearthplan/diy-backend/internal/templates/domain"
	templaterepo "github.com/hearthplan/diy-backend/internal/templates/repository"
)

type Handler struct {
	repo      *templaterepo.TemplateRepository
	inventory *repository.InventoryRepository
}

func NewHandler(repo *templaterepo.TemplateRepository, inventory *repository.InventoryRepository) *Handler {
	return &Handler{repo: repo, inventory: inventory}
}

func (h *Handler) create(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req createTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if req.Visibility == "" {
		req.Visibility = domain.VisibilityPublic
	}
	if req.Status == "" {
		req.Status = domain.StatusDraft
	}

	t, err := h.repo.Create(c.Request.Context(), domain.CreateTemplateRequest{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Difficulty:     req.Difficulty,
		EstimatedHours: req.EstimatedHours,
		Category:       req.Category,
		Visibility:     req.Visibility,
		Status:         req.Status,
		CreatedBy:      userID,
	})
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create template"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": t})
}

func (h *Handler) list(c *gin.Context) {
	filter := domain.ListFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Query:      c.Query("q"),
	}

	items, err := h.repo.ListPublished(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": items})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	t, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get template"})
		return
	}

	tools, err := h.inventory.ListByTemplate(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load template tools"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": t, "tools": tools})
}

func (h *Handler) updateStatus(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	t, err := h.repo.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update template"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": t})
}

func isValidationErr(err error) bool {
	return errors.Is(err, domain.ErrInvalidDifficulty) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidHours)
}
