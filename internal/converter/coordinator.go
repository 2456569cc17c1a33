package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Kamien29/converter-planu/internal/model"
	"github.com/Kamien29/converter-planu/internal/parser"
	"github.com/Kamien29/converter-planu/internal/sqlgen"
	"github.com/Kamien29/converter-planu/internal/store"
)

// Coordinator 转换协调器：打开工作簿、驱动网格解析、发射 SQL 脚本、
// 记录运行历史。一次只处理一个文件，工作表严格按顺序扫完一个再扫下一个。
type Coordinator struct {
	store *store.Store // 可为 nil，此时不记录历史
}

// NewCoordinator 创建转换协调器
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{store: st}
}

// Options 单次转换选项
type Options struct {
	InputPath  string // 课表 Excel 文件
	OutputPath string // SQL 脚本输出位置
}

// Convert 异步执行转换，进度事件经由返回的通道交付；
// 通道在 done/error 事件之后关闭。
func (c *Coordinator) Convert(opts Options) <-chan model.ProgressEvent {
	ch := make(chan model.ProgressEvent, 100)

	go func() {
		defer close(ch)
		_, _ = c.run(opts, func(ev model.ProgressEvent) {
			select {
			case ch <- ev:
			default:
				// 通道已满，丢弃事件
			}
		})
	}()

	return ch
}

// Run 同步执行转换。sink 逐行接收进度与警告（可为 nil），
// 报告里带有条目数与按序累积的全部警告，便于批处理调用方事后读取。
func (c *Coordinator) Run(opts Options, sink parser.LogFunc) (*model.Report, error) {
	return c.run(opts, func(ev model.ProgressEvent) {
		if sink != nil {
			sink(ev.Message)
		}
	})
}

func (c *Coordinator) run(opts Options, emit func(model.ProgressEvent)) (*model.Report, error) {
	startTime := time.Now()

	report := &model.Report{
		Filename:   filepath.Base(opts.InputPath),
		OutputPath: opts.OutputPath,
		Warnings:   []string{},
	}

	emit(model.ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("开始转换: %s", report.Filename),
		Data:      map[string]string{"filename": report.Filename},
		Timestamp: time.Now(),
	})

	var runID int64
	if c.store != nil {
		id, err := c.store.CreateRun(report.Filename)
		if err != nil {
			emit(model.ProgressEvent{
				Type:      "warning",
				Message:   fmt.Sprintf("创建运行记录失败: %v", err),
				Timestamp: time.Now(),
			})
		} else {
			runID = id
		}
	}

	// 文件打不开是唯一的致命错误，原始信息保留给调用方诊断
	file, err := excelize.OpenFile(opts.InputPath)
	if err != nil {
		err = fmt.Errorf("打开文件失败: %w", err)
		c.finishRun(runID, report, "error", err.Error())
		emit(model.ProgressEvent{
			Type:      "error",
			Message:   err.Error(),
			Timestamp: time.Now(),
		})
		return nil, err
	}
	defer file.Close()

	result := &parser.Result{}
	gridParser := parser.New(func(line string) {
		emit(model.ProgressEvent{
			Type:      "info",
			Message:   line,
			Timestamp: time.Now(),
		})
	})

	sheetList := file.GetSheetList()
	report.TotalSheets = len(sheetList)

	emit(model.ProgressEvent{
		Type:      "info",
		Message:   fmt.Sprintf("发现 %d 个工作表", len(sheetList)),
		Data:      map[string]int{"totalSheets": len(sheetList)},
		Timestamp: time.Now(),
	})

	for _, sheetName := range sheetList {
		emit(model.ProgressEvent{
			Type:      "sheet_start",
			Message:   fmt.Sprintf("正在解析工作表: %s", sheetName),
			Data:      map[string]string{"sheetName": sheetName},
			Timestamp: time.Now(),
		})

		// 单表读取失败只记警告，剩余工作表照常处理
		rows, err := file.GetRows(sheetName)
		if err != nil {
			line := fmt.Sprintf("无法读取工作表 %q: %v", sheetName, err)
			result.Warnings = append(result.Warnings, line)
			report.SkippedSheets++
			emit(model.ProgressEvent{
				Type:      "warning",
				Message:   line,
				Timestamp: time.Now(),
			})
			continue
		}

		gridParser.ParseSheet(sheetName, rows, result)
		report.ParsedSheets++
	}

	report.EntryCount = len(result.Entries)
	report.Warnings = result.Warnings

	if len(result.Entries) > 0 {
		if err := writeScript(opts.OutputPath, result.Entries); err != nil {
			err = fmt.Errorf("写入 SQL 失败: %w", err)
			c.finishRun(runID, report, "error", err.Error())
			emit(model.ProgressEvent{
				Type:      "error",
				Message:   err.Error(),
				Timestamp: time.Now(),
			})
			return nil, err
		}
		emit(model.ProgressEvent{
			Type:      "info",
			Message:   fmt.Sprintf("已写入 %d 条记录到 %s", len(result.Entries), opts.OutputPath),
			Timestamp: time.Now(),
		})
	} else {
		report.OutputPath = ""
		emit(model.ProgressEvent{
			Type:      "info",
			Message:   "没有解析出任何条目，跳过输出",
			Timestamp: time.Now(),
		})
	}

	report.Duration = time.Since(startTime)
	c.finishRun(runID, report, "done", "")

	emit(model.ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("转换完成: %d 条记录, %d 条警告", report.EntryCount, len(report.Warnings)),
		Data:      report,
		Timestamp: time.Now(),
	})

	return report, nil
}

// finishRun 收尾运行历史，失败不影响转换结果
func (c *Coordinator) finishRun(runID int64, report *model.Report, status, errorMessage string) {
	if c.store == nil || runID == 0 {
		return
	}
	_ = c.store.CompleteRun(runID, report, status, errorMessage)
	_ = c.store.AddRunWarnings(runID, report.Warnings)
}

// writeScript 把条目写成 SQL 脚本文件。
// 任何写入失败都删除半成品并上抛，保证不会留下残缺文件被当成完整输出。
func writeScript(path string, entries []model.ScheduleEntry) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	emitter := sqlgen.NewEmitter()
	if err := emitter.WriteScript(out, entries); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}

	if err := out.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
