package sqlgen

import (
	"strings"
	"testing"
	"time"

	"github.com/Kamien29/converter-planu/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC)
}

func TestWriteScript_Golden(t *testing.T) {
	t.Parallel()

	entries := []model.ScheduleEntry{
		{Class: "1AT", Weekday: "Monday", StartTime: "07:10:00", EndTime: "07:55:00",
			Subject: "Math", Sheet: "Plan", Row: 3, Col: 2},
		{Class: "1AT", Weekday: "Tuesday", StartTime: "07:10:00", EndTime: "07:55:00",
			Subject: "Physics", Sheet: "Plan", Row: 3, Col: 3},
	}

	var sb strings.Builder
	if err := NewEmitterWithClock(fixedClock).WriteScript(&sb, entries); err != nil {
		t.Fatalf("WriteScript failed: %v", err)
	}

	want := `-- Generated: 2025-09-01T08:30:00Z
CREATE TABLE IF NOT EXISTS plan (
  id INT AUTO_INCREMENT PRIMARY KEY,
  class VARCHAR(50),
  weekday VARCHAR(20),
  start_time TIME,
  end_time TIME,
  subject VARCHAR(500),
  sheet VARCHAR(100),
  sheet_row INT,
  sheet_col INT
);

INSERT INTO plan (id, class, weekday, start_time, end_time, subject, sheet, sheet_row, sheet_col) VALUES (1, '1AT', 'Monday', '07:10:00', '07:55:00', 'Math', 'Plan', 3, 2);
INSERT INTO plan (id, class, weekday, start_time, end_time, subject, sheet, sheet_row, sheet_col) VALUES (2, '1AT', 'Tuesday', '07:10:00', '07:55:00', 'Physics', 'Plan', 3, 3);
`
	if got := sb.String(); got != want {
		t.Fatalf("script mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestWriteScript_SequentialIDs(t *testing.T) {
	t.Parallel()

	entries := []model.ScheduleEntry{
		{Class: "zzz", Weekday: "Friday", StartTime: "10:00:00", EndTime: "10:45:00", Subject: "b", Sheet: "S", Row: 9, Col: 9},
		{Class: "aaa", Weekday: "Monday", StartTime: "07:00:00", EndTime: "07:45:00", Subject: "a", Sheet: "S", Row: 1, Col: 1},
	}

	var sb strings.Builder
	if err := NewEmitterWithClock(fixedClock).WriteScript(&sb, entries); err != nil {
		t.Fatalf("WriteScript failed: %v", err)
	}
	out := sb.String()

	// id 只跟条目顺序走，与字段内容无关
	if !strings.Contains(out, "VALUES (1, 'zzz'") {
		t.Fatalf("first entry should get id 1:\n%s", out)
	}
	if !strings.Contains(out, "VALUES (2, 'aaa'") {
		t.Fatalf("second entry should get id 2:\n%s", out)
	}
	if got := strings.Count(out, "CREATE TABLE IF NOT EXISTS"); got != 1 {
		t.Fatalf("CREATE TABLE count=%d, want 1", got)
	}
	if got := strings.Count(out, "INSERT INTO plan"); got != 2 {
		t.Fatalf("INSERT count=%d, want 2", got)
	}
}

func TestWriteScript_DoubleEscapeQuirk(t *testing.T) {
	t.Parallel()

	// subject 在解析阶段已转义，发射时原样内插；
	// class/weekday/sheet 则在发射时再转义一次
	entries := []model.ScheduleEntry{
		{Class: "1'AT", Weekday: "Monday", StartTime: "07:10:00", EndTime: "07:55:00",
			Subject: "O''Brien", Sheet: "Jan's", Row: 1, Col: 1},
	}

	var sb strings.Builder
	if err := NewEmitterWithClock(fixedClock).WriteScript(&sb, entries); err != nil {
		t.Fatalf("WriteScript failed: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "'1''AT'") {
		t.Fatalf("class should be escaped at emission:\n%s", out)
	}
	if !strings.Contains(out, "'Jan''s'") {
		t.Fatalf("sheet should be escaped at emission:\n%s", out)
	}
	if !strings.Contains(out, "'O''Brien'") || strings.Contains(out, "O''''Brien") {
		t.Fatalf("subject must not be re-escaped at emission:\n%s", out)
	}
}

func TestWriteScript_Empty(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := NewEmitterWithClock(fixedClock).WriteScript(&sb, nil); err != nil {
		t.Fatalf("WriteScript failed: %v", err)
	}
	out := sb.String()
	if strings.Contains(out, "INSERT") {
		t.Fatalf("no inserts expected:\n%s", out)
	}
	if !strings.Contains(out, "CREATE TABLE IF NOT EXISTS plan") {
		t.Fatalf("schema should still be emitted:\n%s", out)
	}
}
