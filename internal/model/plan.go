package model

// ScheduleEntry 课表记录 — 一条 (班级, 星期, 时间段, 科目) 事实。
// 解析阶段一次性构造，之后只读；Subject 在构造时已完成 SQL 转义，
// 其余文本字段保持原文，由发射层在写脚本时再转义。
type ScheduleEntry struct {
	Class     string `json:"class"`     // 班级标识；表头缺失时为 UNKNOWN
	Weekday   string `json:"weekday"`   // Monday..Friday，首字母大写
	StartTime string `json:"startTime"` // HH:MM:00
	EndTime   string `json:"endTime"`   // HH:MM:00（不保证早于 StartTime）
	Subject   string `json:"subject"`
	Sheet     string `json:"sheet"` // 来源工作表名
	Row       int    `json:"row"`   // 科目单元格行号，1-based
	Col       int    `json:"col"`   // 科目单元格列号，1-based
}
