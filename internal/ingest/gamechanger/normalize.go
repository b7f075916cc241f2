package gamechanger

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	jerseyRe     = regexp.MustCompile(`#\d+`)
)

// NormalizeText collapses whitespace runs to single spaces and trims the ends.
func NormalizeText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ToInt parses a stat cell into an int. Empty cells and the "-" placeholder
// mean zero; decimal text truncates; anything unparseable is zero. Never
// fails — a bad cell must not abort row extraction.
func ToInt(s string) int {
	v := strings.TrimSpace(s)
	if v == "" || v == "-" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

// CleanPlayerName strips the parenthetical position suffix and #NN jersey
// fragments from a grid name, then normalizes whitespace.
// "Raiden Sheets #12 (SS, P)" -> "Raiden Sheets".
func CleanPlayerName(s string) string {
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	s = jerseyRe.ReplaceAllString(s, "")
	return NormalizeText(s)
}
