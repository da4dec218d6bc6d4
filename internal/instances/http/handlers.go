package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthplan/diy-backend/internal/auth"
	"github.com/hearthplan/diy-backend/internal/instances/domain"
	"github.com/hearthplan/diy-backend/internal/instances/service"
	templatedomain "github.com/hearthplan/diy-backend/internal/templates/domain"
)

type Handler struct {
	svc *service.InstanceService
}

func NewHandler(svc *service.InstanceService) *Handler {
	return &Handler{svc: svc}
}

type startReq struct {
	TemplateID string `json:"template_id"`
}

func (h *Handler) start(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil || req.TemplateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	inst, err := h.svc.StartFromTemplate(c.Request.Context(), userID, req.TemplateID)
	if err != nil {
		if errors.Is(err, templatedomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"instance": inst})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"instances": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	inst, tasks, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "instance not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get instance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"instance": inst, "tasks": tasks})
}

func (h *Handler) complete(c *gin.Context) {
	h.transition(c, h.svc.Complete)
}

func (h *Handler) reopen(c *gin.Context) {
	h.transition(c, h.svc.Reopen)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, userID, id string) (*domain.ProjectInstance, error)) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	inst, err := fn(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "instance not found"})
		case errors.Is(err, domain.ErrAlreadyCompleted), errors.Is(err, domain.ErrNotCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update instance"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"instance": inst})
}

func (h *Handler) toggleTask(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	task, err := h.svc.ToggleTask(c.Request.Context(), userID, c.Param("id"), c.Param("task_id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}
