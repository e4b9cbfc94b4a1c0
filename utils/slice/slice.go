package slice

import "strings"

// AppendUniqueString 向 string 切片追加元素，如果元素已存在则不追加。
func AppendUniqueString(list []string, v string) []string {
	for _, item := range list {
		if item == v {
			return list
		}
	}
	return append(list, v)
}

// SplitToStrings 将逗号分隔的字符串解析为字符串切片。
func SplitToStrings(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if len(part) > 0 {
			result = append(result, part)
		}
	}
	return result
}
