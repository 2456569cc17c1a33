package sqlgen

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/Kamien29/converter-planu/internal/model"
)

// createTableSQL plan 表结构，列与 INSERT 语句一一对应
const createTableSQL = `CREATE TABLE IF NOT EXISTS plan (
  id INT AUTO_INCREMENT PRIMARY KEY,
  class VARCHAR(50),
  weekday VARCHAR(20),
  start_time TIME,
  end_time TIME,
  subject VARCHAR(500),
  sheet VARCHAR(100),
  sheet_row INT,
  sheet_col INT
);`

// Emitter SQL 脚本发射器
type Emitter struct {
	now func() time.Time
}

// NewEmitter 创建发射器
func NewEmitter() *Emitter {
	return &Emitter{now: time.Now}
}

// NewEmitterWithClock 创建使用指定时钟的发射器（测试用）
func NewEmitterWithClock(now func() time.Time) *Emitter {
	return &Emitter{now: now}
}

// WriteScript 把条目序列写成自包含 SQL 脚本：一行生成时间注释、
// 一条幂等建表语句、每条记录一行 INSERT。id 按条目顺序从 1 递增，
// 与字段内容无关，输入顺序固定则输出完全确定。
//
// class/weekday/sheet 在这里转义；subject 在解析阶段已转义过一次，
// 直接内插。因此 class/weekday/sheet 实际经过两次转义——这是沿袭
// 自既有数据的可观测行为，消费侧依赖它，不要擅自统一两条路径。
func (e *Emitter) WriteScript(w io.Writer, entries []model.ScheduleEntry) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "-- Generated: %s\n", e.now().Format(time.RFC3339))
	fmt.Fprintln(bw, createTableSQL)
	fmt.Fprintln(bw)

	for i, entry := range entries {
		fmt.Fprintf(bw,
			"INSERT INTO plan (id, class, weekday, start_time, end_time, subject, sheet, sheet_row, sheet_col) "+
				"VALUES (%d, '%s', '%s', '%s', '%s', '%s', '%s', %d, %d);\n",
			i+1,
			Escape(entry.Class),
			Escape(entry.Weekday),
			entry.StartTime,
			entry.EndTime,
			entry.Subject,
			Escape(entry.Sheet),
			entry.Row,
			entry.Col,
		)
	}

	return bw.Flush()
}
