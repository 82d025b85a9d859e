// Package sanitize normalizes user-supplied names into identifiers safe
// for use as collection keys.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	separatorReplacer = strings.NewReplacer(
		"_", "-",
		" ", "-",
		".", "-",
		"/", "-",
	)

	nonKeyCharRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDashRegex  = regexp.MustCompile(`-+`)
)

// ForKey sanitizes a string for use as a collection key. Keys contain only
// lowercase letters, digits, and single dashes, with no leading or trailing
// dash.
func ForKey(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = separatorReplacer.Replace(s)
	s = nonKeyCharRegex.ReplaceAllString(s, "")
	s = multiDashRegex.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
