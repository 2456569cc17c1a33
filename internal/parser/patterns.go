package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// weekdays 固定的五日星期词表，识别用小写形式，输出时首字母大写
var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

var (
	// classHeaderRe 班级表头单元格，如 "1AT - 1.09.2025"：
	// 非空白记号 + 连字符/短横线 + D.M.YY 或 D.M.YYYY 日期
	classHeaderRe = regexp.MustCompile(`^\s*([^\s–-]+)\s*[-–]\s*\d{1,2}\.\d{1,2}\.\d{2,4}`)

	// timeRangeRe 时间段，如 "7:10 - 7:55"，分隔符两侧允许空白
	timeRangeRe = regexp.MustCompile(`(\d{1,2}:\d{2})\s*[-–]\s*(\d{1,2}:\d{2})`)

	// timeValueRe 单个时间值的严格校验
	timeValueRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// MatchClassHeader 识别班级表头单元格，返回班级标识。
// 日期部分只参与判定，本身丢弃。
func MatchClassHeader(cell string) (string, bool) {
	m := classHeaderRe.FindStringSubmatch(cell)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NormalizeTime 把 H:MM / HH:MM 规范化为 HH:MM:00：
// 小时补零到两位，分钟原样保留，秒固定为 00。其余输入一律拒绝。
func NormalizeTime(raw string) (string, bool) {
	m := timeValueRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d:%s:00", hour, m[2]), true
}

// FindWeekdayColumns 在一行中定位星期列，返回 列索引 → 星期名 映射。
// 单元格去空白转小写后与词表做全等或 3 字符前缀匹配；
// 命中列不足 3 个时整行不算星期行，返回空映射。
func FindWeekdayColumns(row []string) map[int]string {
	mapping := make(map[int]string)
	for idx, cell := range row {
		cellClean := strings.ToLower(strings.TrimSpace(cell))
		if cellClean == "" {
			continue
		}
		for _, wd := range weekdays {
			if cellClean == wd || strings.HasPrefix(cellClean, wd[:3]) {
				mapping[idx] = capitalize(wd)
				break
			}
		}
	}
	if len(mapping) < 3 {
		return map[int]string{}
	}
	return mapping
}

// capitalize 首字母大写（词表均为 ASCII）
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
