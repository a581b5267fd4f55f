// Package dateutil translates friendly date format strings (YYYY-MM-DD
// style tokens) into Go time layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadFormat indicates a format string that cannot be translated.
var ErrBadFormat = errors.New("invalid date format")

// DefaultFormat is the layout used when no explicit format is given.
const DefaultFormat = "YYYY-MM-DD"

// maxFormatLen bounds format strings; anything longer is a mistake.
const maxFormatLen = 50

// Presets name common formats so users do not have to spell out tokens.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokens in match order: longer tokens first so "YYYY" is consumed
// before "YY" and "MMMM" before "MM".
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Layout converts a friendly format string into a Go time layout.
// Recognized tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text inside
// square brackets is copied literally ("[Published] YYYY" keeps the word
// "Published"), and any other character passes through unchanged.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: empty format", ErrBadFormat)
	}
	if len(format) > maxFormatLen {
		return "", fmt.Errorf("%w: longer than %d characters", ErrBadFormat, maxFormatLen)
	}

	var out strings.Builder
	out.Grow(len(format))

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket in %q", ErrBadFormat, format)
			}
			out.WriteString(format[i+1 : i+end])
			i += end + 1
			continue
		}

		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(format[i:], t.token) {
				out.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		out.WriteByte(format[i])
		i++
	}

	return out.String(), nil
}
