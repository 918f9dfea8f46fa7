package stringconcat

import "strings"

func concatInLoop(parts []string) string {
	out := ""
	for _, p := range parts {
		out += p // want `O\(n²\) string concatenation in loop - use strings.Builder`
	}
	return out
}

func buildInLoop(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p)
	}
	return b.String()
}
