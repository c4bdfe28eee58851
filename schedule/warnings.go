package schedule

import (
	"fmt"
	"strings"
)

// Warning records a non-fatal condition met during extraction, such as a
// sparse header line or an unresolvable sibling field.
type Warning struct {
	// Page is the 1-based page number the condition occurred on
	Page int `json:"page"`

	// Message describes the condition
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(warnings))
	for _, w := range warnings {
		parts = append(parts, w.String())
	}
	return strings.Join(parts, "; ")
}
