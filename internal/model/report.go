package model

import "time"

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/info/sheet_start/warning/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Report 单次转换报告
type Report struct {
	Filename      string        `json:"filename"`
	OutputPath    string        `json:"outputPath"` // 未产出条目时为空
	TotalSheets   int           `json:"totalSheets"`
	ParsedSheets  int           `json:"parsedSheets"`
	SkippedSheets int           `json:"skippedSheets"`
	EntryCount    int           `json:"entryCount"`
	Warnings      []string      `json:"warnings"`
	Duration      time.Duration `json:"duration"`
}
