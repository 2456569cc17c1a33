package api

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Kamien29/converter-planu/internal/config"
	"github.com/Kamien29/converter-planu/internal/store"
)

// Handler HTTP API 处理器
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	uploadDir string
	exportDir string
	downloads *downloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, cfg *config.AppConfig, dataDir string) *Handler {
	return &Handler{
		store:     st,
		cfg:       cfg,
		uploadDir: filepath.Join(dataDir, "uploads"),
		exportDir: filepath.Join(dataDir, "exports"),
		downloads: newDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	// 配置查询
	router.GET("/config", h.GetConfig)

	// 课表转换
	router.POST("/convert", h.Convert)
	router.GET("/convert/download/:token", h.DownloadSQL)

	// 运行历史
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id/warnings", h.GetRunWarnings)
}
