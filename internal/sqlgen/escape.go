package sqlgen

import (
	"regexp"
	"strings"
)

var spaceRunRe = regexp.MustCompile(`\s+`)

// Escape 把任意文本整理成可内插到 SQL 单引号字面量的形式：
// 换行/回车替换为空格、去首尾空白、连续空白压缩为单个空格、单引号成对加倍。
// 脚本不使用参数绑定，这里的引号加倍是唯一的注入防线。
// 加倍不是幂等的：对已转义文本再次调用会继续加倍其中的引号。
func Escape(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.ReplaceAll(s, "'", "''")
}
