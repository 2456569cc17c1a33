package parser

import "testing"

func TestMatchClassHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cell  string
		class string
		ok    bool
	}{
		{"1AT - 1.09.2025", "1AT", true},
		{"2bt – 12.9.25", "2bt", true},
		{"  3C - 07.10.2025 pierwszy semestr", "3C", true},
		{"1AT 1.09.2025", "", false},   // 没有连字符
		{"1AT - wrzesień", "", false},  // 没有日期
		{"- 1.09.2025", "", false},     // 没有班级记号
		{"", "", false},
	}

	for _, tc := range cases {
		class, ok := MatchClassHeader(tc.cell)
		if ok != tc.ok || class != tc.class {
			t.Fatalf("MatchClassHeader(%q) = (%q, %v), want (%q, %v)", tc.cell, class, ok, tc.class, tc.ok)
		}
	}
}

func TestNormalizeTime_Valid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"7:10", "07:10:00"},
		{"12:05", "12:05:00"},
		{" 9:00 ", "09:00:00"},
		{"0:00", "00:00:00"},
		{"23:59", "23:59:00"},
	}

	for _, tc := range cases {
		got, ok := NormalizeTime(tc.in)
		if !ok {
			t.Fatalf("NormalizeTime(%q) rejected, want %q", tc.in, tc.want)
		}
		if got != tc.want {
			t.Fatalf("NormalizeTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if len(got) != 8 {
			t.Fatalf("NormalizeTime(%q) = %q, len=%d, want 8", tc.in, got, len(got))
		}
	}
}

func TestNormalizeTime_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "7:5", "123:00", "7.10", "7:10:00", "abc", "7: 10"} {
		if got, ok := NormalizeTime(in); ok {
			t.Fatalf("NormalizeTime(%q) = %q, want rejection", in, got)
		}
	}
}

func TestNormalizeTime_Injective(t *testing.T) {
	t.Parallel()

	// 任意两个不同的 (时,分) 输入不会折叠成同一个输出
	seen := make(map[string]string)
	inputs := []string{"7:10", "07:10", "7:01", "17:10", "1:07", "10:17"}
	for _, in := range inputs {
		got, ok := NormalizeTime(in)
		if !ok {
			t.Fatalf("NormalizeTime(%q) rejected", in)
		}
		if prev, dup := seen[got]; dup && prev != in && !equivalentTime(prev, in) {
			t.Fatalf("NormalizeTime 折叠了 %q 与 %q → %q", prev, in, got)
		}
		seen[got] = in
	}
	// H:MM 与 HH:MM 的同一时刻归一到同一输出
	a, _ := NormalizeTime("7:10")
	b, _ := NormalizeTime("07:10")
	if a != b {
		t.Fatalf("7:10 与 07:10 归一结果不同: %q vs %q", a, b)
	}
}

func equivalentTime(a, b string) bool {
	na, _ := NormalizeTime(a)
	nb, _ := NormalizeTime(b)
	return na == nb
}

func TestFindWeekdayColumns_Qualifies(t *testing.T) {
	t.Parallel()

	row := []string{"", "Mon", "Tue", "Wed", "Thu", "Fri"}
	mapping := FindWeekdayColumns(row)
	if len(mapping) != 5 {
		t.Fatalf("mapping size=%d, want 5", len(mapping))
	}

	want := map[int]string{1: "Monday", 2: "Tuesday", 3: "Wednesday", 4: "Thursday", 5: "Friday"}
	for idx, wd := range want {
		if mapping[idx] != wd {
			t.Fatalf("mapping[%d]=%q, want %q", idx, mapping[idx], wd)
		}
	}
}

func TestFindWeekdayColumns_TooFew(t *testing.T) {
	t.Parallel()

	// 命中列不足 3 个 → 空映射
	for _, row := range [][]string{
		{},
		{"Mon"},
		{"Mon", "Tue"},
		{"Mon", "", "Tue", "随便", "7:10"},
	} {
		if mapping := FindWeekdayColumns(row); len(mapping) != 0 {
			t.Fatalf("FindWeekdayColumns(%v) = %v, want empty", row, mapping)
		}
	}
}

func TestFindWeekdayColumns_MatchForms(t *testing.T) {
	t.Parallel()

	// 全等、3 字符前缀、大小写与空白都可接受
	row := []string{"monday", " TUESDAY ", "wednesday rano", "x", "thu"}
	mapping := FindWeekdayColumns(row)
	if len(mapping) != 4 {
		t.Fatalf("mapping size=%d, want 4: %v", len(mapping), mapping)
	}
	if mapping[0] != "Monday" || mapping[1] != "Tuesday" || mapping[2] != "Wednesday" || mapping[4] != "Thursday" {
		t.Fatalf("unexpected mapping: %v", mapping)
	}
}

func TestFindWeekdayColumns_SizeEqualsMatchedCells(t *testing.T) {
	t.Parallel()

	// 重复星期各占一列，映射大小等于命中单元格数
	row := []string{"Mon", "Mon", "Tue", "Wed"}
	mapping := FindWeekdayColumns(row)
	if len(mapping) != 4 {
		t.Fatalf("mapping size=%d, want 4", len(mapping))
	}
}
