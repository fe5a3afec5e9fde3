package form

import (
	"strconv"
	"strings"
	"unicode"
)

// Int reads the leading integer of numeric text input.
// Text with no leading digits yields 0 rather than an error, so
// "abc" and "" become 0, "12px" becomes 12, and "3.9" becomes 3.
func Int(text string) int {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Text renders an integer back into form input text.
func Text(n int) string {
	return strconv.Itoa(n)
}
