package gate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Style selects which pairs of a malformed text payload are trusted.
type Style int

const (
	// QuotedPairs accepts only `"key": "value"` pairs with a non-empty value.
	QuotedPairs Style = iota + 1
	// BarePairs accepts `key: value` pairs, quoted or not, with trimmed values.
	BarePairs
)

// Extraction configures the recovery of a text payload that is not JSON.
type Extraction struct {
	Style Style
	// Keys are the only keys recovered.
	Keys []string
}

// Extract recovers the first acceptable non-empty value of each of keys from
// text. Every key is searched on its own over the whole text, so a malformed
// part of the text only affects the values it overlaps. Keys it cannot find
// are absent from the result. It never fails.
//
// Keys match exactly: an occurrence preceded by a letter, digit or underscore
// is not the key, so owner_name never yields name.
//
// QuotedPairs wants `"key"`, optional spaces, `:`, optional spaces and a
// double-quoted value. The value ends at the next double quote; escapes are
// not supported.
//
// BarePairs wants `key` (optionally quoted), optional spaces and `:`. The
// value runs to the next comma, closing brace or line break, so it cannot
// contain any of them. It is trimmed and its surrounding quotes are dropped.
func Extract(text string, style Style, keys []string) map[string]string {
	res := make(map[string]string, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}

		var (
			v  string
			ok bool
		)
		switch style {
		case QuotedPairs:
			v, ok = findQuoted(text, k)
		case BarePairs:
			v, ok = findBare(text, k)
		}
		if ok {
			res[k] = v
		}
	}

	return res
}

func findQuoted(text, key string) (string, bool) {
	needle := `"` + key + `"`
	for from := 0; ; {
		i := strings.Index(text[from:], needle)
		if i < 0 {
			return "", false
		}
		from += i + len(needle)

		rest, ok := afterColon(text[from:])
		if !ok || !strings.HasPrefix(rest, `"`) {
			continue
		}
		end := strings.IndexByte(rest[1:], '"')
		if end <= 0 {
			// unterminated or empty value
			continue
		}

		return rest[1 : 1+end], true
	}
}

func findBare(text, key string) (string, bool) {
	for from := 0; ; {
		i := strings.Index(text[from:], key)
		if i < 0 {
			return "", false
		}
		start := from + i
		from = start + len(key)
		if start > 0 {
			if r, _ := utf8.DecodeLastRuneInString(text[:start]); isKeyRune(r) {
				continue
			}
		}

		rest := text[from:]
		if start > 0 && text[start-1] == '"' {
			rest = strings.TrimPrefix(rest, `"`)
		}
		rest, ok := afterColon(rest)
		if !ok {
			continue
		}
		if end := strings.IndexAny(rest, ",}\n\r"); end >= 0 {
			rest = rest[:end]
		}
		v := strings.TrimSpace(rest)
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(v, `"`), `"`))
		if v == "" {
			continue
		}

		return v, true
	}
}

// afterColon skips spaces, a colon and spaces at the start of s.
func afterColon(s string) (string, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(s, ":") {
		return "", false
	}

	return strings.TrimLeftFunc(s[1:], unicode.IsSpace), true
}

func isKeyRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
