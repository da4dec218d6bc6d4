package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthplan/diy-backend/internal/auth"
	"github.com/hearthplan/diy-backend/internal/inventory/repository"
)

type Handler struct {
	repo *repository.InventoryRepository
}

func NewHandler(repo *repository.InventoryRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	items, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tools"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tools": items})
}

// Register attaches inventory routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
}
