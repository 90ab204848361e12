package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// HTML renders the Markdown body to an HTML fragment, used by the report
// preview page and the emailed copy.
// POST: returns a fragment without html/body wrapper tags
func (d Document) HTML() (string, error) {
	var buf strings.Builder
	if err := goldmark.Convert([]byte(d.Body), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
