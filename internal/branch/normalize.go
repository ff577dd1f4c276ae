package branch

import (
	"strings"
	"unicode"
)

// Normalize applies the field's keystroke filter to text, returning the
// rewritten text and the cursor position carried through the rewrite.
// Dropped characters before the cursor pull it left; the result is always
// clamped to the filtered text's length. Normalizing twice yields the same
// result as normalizing once.
func (r *Rules) Normalize(f Field, text string, cursor int) (string, int) {
	switch f {
	case FieldUsername:
		return normalizeUsername(text, cursor)
	case FieldType:
		return r.normalizeType(text, cursor)
	case FieldJira:
		return normalizeJira(text, cursor)
	case FieldDescription:
		return normalizeDescription(text, cursor)
	}
	return text, clampCursor(cursor, text)
}

// normalizeUsername keeps alphanumerics plus '.', '-', '_' and truncates
// to maxUsernameLen.
func normalizeUsername(text string, cursor int) (string, int) {
	filtered, cursor := filterMap(text, cursor, func(c rune) (rune, bool) {
		if isASCIIAlnum(c) || c == '.' || c == '-' || c == '_' {
			return c, true
		}
		return 0, false
	})
	runes := []rune(filtered)
	if len(runes) > maxUsernameLen {
		filtered = string(runes[:maxUsernameLen])
	}
	return filtered, clampCursor(cursor, filtered)
}

// normalizeType snaps any value outside the allowed tag set to the first
// allowed tag.
func (r *Rules) normalizeType(text string, cursor int) (string, int) {
	trimmed := strings.TrimSpace(text)
	if !r.IsType(trimmed) {
		trimmed = r.DefaultType()
	}
	return trimmed, clampCursor(cursor, trimmed)
}

// normalizeJira uppercases, keeps alphanumerics and '-', and inserts a
// dash between a leading letter run and a trailing digit run when no dash
// was typed ("ABC123" becomes "ABC-123").
func normalizeJira(text string, cursor int) (string, int) {
	filtered, cursor := filterMap(text, cursor, func(c rune) (rune, bool) {
		c = unicode.ToUpper(c)
		if isASCIIAlnum(c) || c == '-' {
			return c, true
		}
		return 0, false
	})

	if !strings.ContainsRune(filtered, '-') {
		if at, ok := letterDigitBoundary(filtered); ok {
			filtered = filtered[:at] + "-" + filtered[at:]
			if cursor >= at {
				cursor++
			}
		}
	}
	return filtered, clampCursor(cursor, filtered)
}

// normalizeDescription lowercases, maps spaces to '-', and keeps
// alphanumerics and '-'.
func normalizeDescription(text string, cursor int) (string, int) {
	filtered, cursor := filterMap(text, cursor, func(c rune) (rune, bool) {
		if c == ' ' {
			return '-', true
		}
		c = unicode.ToLower(c)
		if isASCIIAlnum(c) || c == '-' {
			return c, true
		}
		return 0, false
	})
	return filtered, clampCursor(cursor, filtered)
}

// filterMap runs each rune through fn, dropping rejected runes, and moves
// the cursor left by one for every rune dropped before it.
func filterMap(text string, cursor int, fn func(rune) (rune, bool)) (string, int) {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	var b strings.Builder
	newCursor := cursor
	for i, c := range runes {
		mapped, keep := fn(c)
		if !keep {
			if i < cursor {
				newCursor--
			}
			continue
		}
		b.WriteRune(mapped)
	}
	return b.String(), newCursor
}

// letterDigitBoundary returns the byte offset between a leading ASCII
// letter run and a trailing digit run, if text has exactly that shape.
func letterDigitBoundary(text string) (int, bool) {
	i := 0
	for i < len(text) && isASCIILetter(rune(text[i])) {
		i++
	}
	if i == 0 || i == len(text) {
		return 0, false
	}
	for j := i; j < len(text); j++ {
		if !isASCIIDigit(rune(text[j])) {
			return 0, false
		}
	}
	return i, true
}

// clampCursor bounds cursor to [0, len(text)] in runes.
// Re-verified after every rewrite so the cursor can never desynchronize
// from the field's contents.
func clampCursor(cursor int, text string) int {
	if cursor < 0 {
		return 0
	}
	if n := len([]rune(text)); cursor > n {
		return n
	}
	return cursor
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isASCIIAlnum(c rune) bool {
	return isASCIILetter(c) || isASCIIDigit(c)
}
