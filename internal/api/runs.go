package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kamien29/converter-planu/internal/store"
)

// ListRuns 查询最近的转换历史
// GET /api/runs?limit=50
func (h *Handler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	runs, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []store.ConversionRun{}
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRunWarnings 查询一次运行的警告列表（按产生顺序）
// GET /api/runs/:id/warnings
func (h *Handler) GetRunWarnings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的运行 ID"})
		return
	}

	warnings, err := h.store.GetRunWarnings(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if warnings == nil {
		warnings = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"warnings": warnings})
}
