package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	RunCount    int    `json:"runCount"`    // 历史运行总数
	LastRunTime string `json:"lastRunTime"` // 最近一次运行时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	runCount, err := h.store.CountRuns()
	if err != nil {
		runCount = 0
	}

	lastRun, err := h.store.LastRunTime()
	if err != nil {
		lastRun = ""
	}

	c.JSON(http.StatusOK, StatusResponse{
		RunCount:    runCount,
		LastRunTime: lastRun,
	})
}

// GetConfig 获取当前生效配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg)
}
