package report

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxSheetNameRunes is the spreadsheet limit on sheet name length.
	MaxSheetNameRunes = 31
	// PairNameRunes is how much of each factor name a pair sheet keeps.
	PairNameRunes = 12
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// truncateRunes keeps at most n runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// sanitizeSheetName replaces characters spreadsheet applications refuse in
// sheet names. A name may also not begin or end with an apostrophe.
func sanitizeSheetName(s string) string {
	s = sheetNameReplacer.Replace(strings.TrimSpace(s))
	if strings.HasPrefix(s, "'") {
		s = "_" + s[1:]
	}
	if strings.HasSuffix(s, "'") {
		s = s[:len(s)-1] + "_"
	}
	if s == "" {
		s = "Sheet"
	}
	return s
}

// PairSheetName is the undisambiguated name of the cross-tab for two factors.
func PairSheetName(first, second, separator string, keep int) string {
	return truncateRunes(first, keep) + separator + truncateRunes(second, keep)
}

// sheetNamer hands out unique sheet names. Uniqueness is case-insensitive,
// matching how spreadsheet applications compare sheet names.
type sheetNamer struct {
	used  map[string]bool
	limit int
}

func newSheetNamer(limit int) *sheetNamer {
	if limit <= 0 {
		limit = MaxSheetNameRunes
	}
	return &sheetNamer{used: make(map[string]bool), limit: limit}
}

// claim returns base (sanitized and cut to the limit) or, when taken, base
// with a " (n)" suffix, n counting up from 2.
func (n *sheetNamer) claim(base string) string {
	base = sanitizeSheetName(truncateRunes(sanitizeSheetName(base), n.limit))
	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, n.limit-utf8.RuneCountInString(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}
