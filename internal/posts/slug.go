package posts

import (
	"regexp"
	"strings"
)

var nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe identifier for a title: lower-case, every
// run of characters outside [a-z0-9] collapsed to a single hyphen, leading
// and trailing hyphens trimmed. A title with no alphanumerics yields "".
// Slugs are not deduplicated; titles that normalize identically collide.
func Slugify(title string) string {
	slug := nonSlugRuns.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
