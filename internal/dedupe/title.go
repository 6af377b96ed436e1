package dedupe

import (
	"regexp"
	"strings"
)

var (
	trackPrefixPattern = regexp.MustCompile(`^\d+\s*-\s*`)
	extensionPattern   = regexp.MustCompile(`\.[^.]+$`)
)

// Normalize derives the canonical song-title key from a filename. It strips a
// leading track-number prefix ("01 - "), the final extension, surrounding
// quote characters, and surrounding whitespace. No case folding and no
// Unicode normalization: distinct songs that share a title will collide, and
// typos will not.
func Normalize(filename string) string {
	title := trackPrefixPattern.ReplaceAllString(filename, "")
	title = extensionPattern.ReplaceAllString(title, "")
	title = strings.Trim(title, `'"`)
	return strings.TrimSpace(title)
}
