package slug

import (
	"regexp"
	"strings"
)

// Subjects are usually CJK, so letters and digits of any script survive.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonWord.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}
