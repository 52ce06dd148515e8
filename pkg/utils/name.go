package utils

import (
	"strings"
	"unicode"
)

// CapitalizeName trims a name and uppercases its first letter, so stored
// names render consistently regardless of how they were typed.
func CapitalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
