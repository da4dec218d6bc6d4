package http

import "github.com/gin-gonic/gin"

// Register attaches instance routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.start)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("/:id/complete", h.complete)
	rg.POST("/:id/reopen", h.reopen)
	rg.POST("/:id/tasks/:task_id/toggle", h.toggleTask)
}
