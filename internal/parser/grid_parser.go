package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Kamien29/converter-planu/internal/model"
	"github.com/Kamien29/converter-planu/internal/sqlgen"
)

// UnknownClass 时间行出现在任何班级表头之前时使用的占位班级
const UnknownClass = "UNKNOWN"

// LogFunc 进度/诊断回调，每次一行。调用同步且保持发生顺序；
// 解析器不关心这些行如何展示，sink 为 nil 时仅静默累积警告。
type LogFunc func(line string)

// Result 扫描产物：按发现顺序排列的条目与非致命警告
type Result struct {
	Entries  []model.ScheduleEntry
	Warnings []string
}

// sheetState 单个工作表扫描期间的解析状态。
// 表扫描独占持有，扫完即弃，绝不跨表携带。
type sheetState struct {
	currentClass string         // 空串 = 尚未识别到班级表头
	weekdayCols  map[int]string // 空 = 当前班级块尚未建立星期映射
}

// GridParser 网格解析器：对每个工作表自上而下逐行扫描，
// 携带班级/星期列状态，从无标注的单元格网格中恢复课表结构。
type GridParser struct {
	log LogFunc
}

// New 创建解析器；sink 可为 nil
func New(sink LogFunc) *GridParser {
	return &GridParser{log: sink}
}

func (p *GridParser) logf(format string, args ...interface{}) {
	if p.log != nil {
		p.log(fmt.Sprintf(format, args...))
	}
}

// warnf 记录警告：追加到 res.Warnings 并同步送入 sink
func (p *GridParser) warnf(res *Result, format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	res.Warnings = append(res.Warnings, line)
	if p.log != nil {
		p.log(line)
	}
}

// ParseSheet 扫描一个工作表的全部行，条目与警告追加到 res。
//
// 每行按 班级表头 → 星期行 → 时间行 的优先级依次做分类判定，
// 三段的贯穿规则不对称，是既有数据定义的可观测行为：
//   - 表头命中只更新状态，不中断本行后续判定；
//   - 星期行命中消费整行，本行不再做时间判定；
//   - 星期判定仅在映射为空时进行，落选行静默落入时间判定。
func (p *GridParser) ParseSheet(sheetName string, rows [][]string, res *Result) {
	st := sheetState{}

	for i, row := range rows {
		// 1) 班级表头：行内首个命中生效，并使既有星期映射失效
		for _, cell := range row {
			if class, ok := MatchClassHeader(cell); ok {
				st.currentClass = class
				st.weekdayCols = nil
				p.logf("[%s] 第 %d 行识别到班级 %q", sheetName, i+1, class)
				break
			}
		}

		// 2) 星期行：仅在当前班级块尚未建立映射时尝试
		if len(st.weekdayCols) == 0 {
			if cand := FindWeekdayColumns(row); len(cand) > 0 {
				st.weekdayCols = cand
				p.logf("[%s] 第 %d 行识别到星期列: %s", sheetName, i+1, formatWeekdayCols(cand))
				continue
			}
		}

		// 3) 时间行：取行内第一个命中的时间段，行内其余时间值忽略
		var timeMatch []string
		for _, cell := range row {
			if m := timeRangeRe.FindStringSubmatch(cell); m != nil {
				timeMatch = m
				break
			}
		}
		if timeMatch == nil {
			continue
		}

		if st.currentClass == "" {
			st.currentClass = UnknownClass
			p.warnf(res, "[%s] 第 %d 行: 找到时间但尚无班级，使用 %s", sheetName, i+1, UnknownClass)
		}
		if len(st.weekdayCols) == 0 {
			p.warnf(res, "[%s] 第 %d 行: 找到时间但尚无星期列", sheetName, i+1)
			continue
		}

		start, okStart := NormalizeTime(timeMatch[1])
		end, okEnd := NormalizeTime(timeMatch[2])
		if !okStart || !okEnd {
			p.warnf(res, "[%s] 第 %d 行: 时间格式无效 %q", sheetName, i+1, timeMatch[0])
			continue
		}

		// 产出条目：映射列按列号升序遍历，保证发现顺序确定；
		// 整行要么全部合格列各产出一条，要么因前置条件整行跳过
		for _, colIdx := range sortedColumns(st.weekdayCols) {
			if colIdx >= len(row) {
				continue
			}
			subject := strings.TrimSpace(row[colIdx])
			if subject == "" {
				continue
			}
			res.Entries = append(res.Entries, model.ScheduleEntry{
				Class:     st.currentClass,
				Weekday:   st.weekdayCols[colIdx],
				StartTime: start,
				EndTime:   end,
				Subject:   sqlgen.Escape(subject),
				Sheet:     sheetName,
				Row:       i + 1,
				Col:       colIdx + 1,
			})
		}
	}
}

func sortedColumns(cols map[int]string) []int {
	out := make([]int, 0, len(cols))
	for idx := range cols {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// formatWeekdayCols 按列号升序渲染映射，保证日志行稳定
func formatWeekdayCols(cols map[int]string) string {
	parts := make([]string, 0, len(cols))
	for _, idx := range sortedColumns(cols) {
		parts = append(parts, fmt.Sprintf("%d:%s", idx+1, cols[idx]))
	}
	return strings.Join(parts, " ")
}
