package api

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\-]`)
	slugCollapse = regexp.MustCompile(`\-+`)
)

// SuggestSlug derives a URL-friendly family slug from a display name, for
// pre-filling the register form. The backend may still reject a taken slug.
func SuggestSlug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
