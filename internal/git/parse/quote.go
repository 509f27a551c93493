package parse

import (
	"strconv"
	"strings"
)

// readQuoted reads a C-style quoted path from the start of s and returns the
// unquoted value and what follows the closing quote. git quotes paths holding
// control characters, double quotes or backslashes even with
// core.quotepath=false.
func readQuoted(s string) (string, string, bool) {
	if !strings.HasPrefix(s, `"`) {
		return "", s, false
	}
	escaped := false
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			value, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return "", s, false
			}
			return value, s[i+1:], true
		}
	}
	return "", s, false
}

// unquotePath returns p unquoted when it is a quoted path, p otherwise.
func unquotePath(p string) (string, bool) {
	if !strings.HasPrefix(p, `"`) {
		return p, true
	}
	value, rest, ok := readQuoted(p)
	if !ok || rest != "" {
		return "", false
	}
	return value, true
}
