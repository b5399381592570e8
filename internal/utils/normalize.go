package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var wsRe = regexp.MustCompile(`\s+`)

// Handle picks the @handle shown under a display name: the username when
// set, else the local part of the email, else "user".
func Handle(username, email string) string {
	if h := foldHandle(username); h != "" {
		return h
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		if h := foldHandle(email[:at]); h != "" {
			return h
		}
	}
	return "user"
}

// foldHandle normalizes to NFC and drops whitespace and control runes.
func foldHandle(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "@")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// CollapseSpace trims s and squeezes internal whitespace runs to one space.
func CollapseSpace(s string) string {
	return wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// TrimMax trims a string to at most max runes.
func TrimMax(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
