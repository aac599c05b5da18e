package patches

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

var (
	// The DEP-3 header ends where the first diff marker appears.
	reHeaderEnd = regexp.MustCompile(`---|\+\+\+`)
	reDescKey   = regexp.MustCompile(`description:|subject:`)
)

// fields that terminate a multi-line description.
var headerFields = []string{
	"origin:", "forwarded:", "author:", "from:",
	"reviewed-by:", "acked-by:", "last-update:",
	"applied-upstream:", "index:", "diff", "change-id",
}

// Details extracts the description and Debian bug number from a patch.
// Patches without a Description or Subject header yield
// (domain.NoDescription, "").
func Details(patch string) (description, bug string) {
	lower := strings.ToLower(patch)
	if !strings.Contains(lower, "description:") && !strings.Contains(lower, "subject:") {
		return domain.NoDescription, ""
	}

	header := patch
	if loc := reHeaderEnd.FindStringIndex(patch); loc != nil {
		header = patch[:loc[0]]
	}

	description = domain.NoDescription
	inDescription := false
	for _, line := range strings.Split(header, "\n") {
		lowerLine := strings.ToLower(line)
		switch {
		case strings.Contains(lowerLine, "description:") || strings.Contains(lowerLine, "subject:"):
			parts := reDescKey.Split(lowerLine, 3)
			description = parts[1] + "\n"
			inDescription = true
		case strings.Contains(lowerLine, "bug: #"):
			_, bug, _ = strings.Cut(lowerLine, "bug: #")
			inDescription = false
		case containsAny(lowerLine, headerFields):
			inDescription = false
		case inDescription:
			description += line + "\n"
		}
	}
	return description, bug
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
