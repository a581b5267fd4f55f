package web2pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-web2pdf/internal/dateutil"
)

// ResolveDate expands the "auto" syntax accepted by the date metadata
// override. "auto" formats t with the default YYYY-MM-DD layout;
// "auto:FORMAT" applies a custom token format or a named preset (iso,
// european, us, long). Any other value is returned unchanged, so literal
// dates need no escaping. The prefix match is case-insensitive.
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	if lower == "auto" {
		layout, err := dateutil.Layout(dateutil.DefaultFormat)
		if err != nil {
			return "", err
		}
		return t.Format(layout), nil
	}

	if !strings.HasPrefix(lower, "auto:") {
		return "", fmt.Errorf("%w: %q, use \"auto\" or \"auto:FORMAT\"", dateutil.ErrBadFormat, value)
	}

	// Keep the original case after the prefix: tokens are case-sensitive.
	format := value[len("auto:"):]
	if format == "" {
		return "", fmt.Errorf("%w: nothing after \"auto:\"", dateutil.ErrBadFormat)
	}
	if preset, ok := dateutil.Presets[strings.ToLower(format)]; ok {
		format = preset
	}

	layout, err := dateutil.Layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
