package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Kamien29/converter-planu/internal/converter"
	"github.com/Kamien29/converter-planu/internal/model"
)

// Convert 上传课表 Excel 并转换为 SQL 脚本 (SSE 流式响应)
// POST /api/convert
func (h *Handler) Convert(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploadedFile := files[0]

	// 上传文件落到 uploads 暂存，转换结束后清理
	scratchName := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(uploadedFile.Filename))
	inputPath := filepath.Join(h.uploadDir, scratchName)

	if err := c.SaveUploadedFile(uploadedFile, inputPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(inputPath)

	sqlName := sqlFilename(uploadedFile.Filename)
	outputPath := filepath.Join(h.exportDir, fmt.Sprintf("%d_%s", time.Now().Unix(), sqlName))

	// SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	coordinator := converter.NewCoordinator(h.store)
	progressChan := coordinator.Convert(converter.Options{
		InputPath:  inputPath,
		OutputPath: outputPath,
	})

	ttl := time.Duration(h.cfg.Output.DownloadTTLMinutes) * time.Minute

	for event := range progressChan {
		// 转换成功且有输出文件时，在 done 事件里附上下载令牌
		if event.Type == "done" {
			if report, ok := event.Data.(*model.Report); ok && report.OutputPath != "" {
				token := h.downloads.put(report.OutputPath, sqlName, ttl)
				event.Data = gin.H{
					"report":        report,
					"downloadToken": token,
				}
			}
		}

		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// DownloadSQL 下载生成的 SQL 脚本
// GET /api/convert/download/:token
func (h *Handler) DownloadSQL(c *gin.Context) {
	token := c.Param("token")

	dl, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}

	c.FileAttachment(dl.filePath, dl.filename)
}

// sqlFilename 按上传文件名推导 SQL 脚本名
func sqlFilename(uploaded string) string {
	base := filepath.Base(uploaded)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = "plan"
	}
	return base + ".sql"
}
