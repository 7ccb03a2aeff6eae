package publicmenu

import "strings"

const defaultShareBaseURL = "https://tastebuds.app"

// ShareURL builds a canonical absolute share link from a configured base URL
// and path segments. Bases without a scheme get https, trailing slashes
// collapse, and empty segments are skipped.
func ShareURL(base string, segments ...string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = defaultShareBaseURL
	}
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, base)
	for _, segment := range segments {
		segment = strings.Trim(strings.TrimSpace(segment), "/")
		if segment == "" {
			continue
		}
		parts = append(parts, segment)
	}
	return strings.Join(parts, "/")
}
