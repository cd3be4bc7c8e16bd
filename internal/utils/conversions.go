package utils

import "strings"

// SplitList splits a comma separated value, trimming whitespace and dropping empty entries.
func SplitList(value string) []string {
	list := make([]string, 0)
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}
