package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name.
// Supports Swedish characters by transliterating them to ASCII equivalents,
// matching how the upstream store slugs its Swedish category names.
//
// Examples:
//   - "Kurser & Workshops" → "kurser-workshops"
//   - "Skålar" → "skalar"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	// Transliterate Swedish characters to ASCII.
	replacer := strings.NewReplacer(
		"å", "a", "ä", "a", "ö", "o",
		"é", "e", "ü", "u",
	)
	s = replacer.Replace(s)

	// Replace any non-alphanumeric characters with hyphens.
	s = slugRegexp.ReplaceAllString(s, "-")

	// Trim leading and trailing hyphens.
	s = strings.Trim(s, "-")

	// Collapse consecutive hyphens into single hyphens.
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	return s
}
