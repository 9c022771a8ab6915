package httpt

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

func (h *StoreHandler) setupRoutes() {
	h.router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	h.router.GET("/lessons", h.listLessonsHandler)
	h.router.PUT("/lessons/:lesson_id", h.updateLessonHandler)
	h.router.POST("/orders", h.createOrderHandler)

	if h.staticDir != "" {
		h.router.Static("/static", h.staticDir)
		h.router.StaticFile("/", filepath.Join(h.staticDir, "index.html"))
	}
}
