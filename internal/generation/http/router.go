package http

import "github.com/gin-gonic/gin"

// Register attaches generation routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.generate)
	rg.POST("/preview", h.preview)
	rg.POST("/confirm", h.confirm)
}
