package country

import (
	"fmt"
	"strings"
)

// DisplayOptions controls FormatDisplay rendering.
type DisplayOptions struct {
	// MaxCount caps how many countries are spelled out before the list is
	// truncated to "and N more". Zero means no cap.
	MaxCount int
	// IncludeFlags prefixes each name with its flag emoji.
	IncludeFlags bool
	// Separator defaults to ", ".
	Separator string
}

// FormatDisplay renders a human-readable country list for profile pages and
// admin cards. Unrecognized codes render with the standard fallbacks rather
// than failing.
func FormatDisplay(codes []string, opts DisplayOptions) string {
	if len(codes) == 0 {
		return ""
	}

	sep := opts.Separator
	if sep == "" {
		sep = ", "
	}

	shown := codes
	overflow := 0
	if opts.MaxCount > 0 && len(codes) > opts.MaxCount {
		shown = codes[:opts.MaxCount]
		overflow = len(codes) - opts.MaxCount
	}

	parts := make([]string, 0, len(shown))
	for _, code := range shown {
		if opts.IncludeFlags {
			parts = append(parts, Flag(code)+" "+Name(code))
		} else {
			parts = append(parts, Name(code))
		}
	}

	out := strings.Join(parts, sep)
	if overflow > 0 {
		out = fmt.Sprintf("%s and %d more", out, overflow)
	}
	return out
}
