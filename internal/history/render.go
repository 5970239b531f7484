package history

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultPreviewWidth is how many characters of each entry Render shows.
const DefaultPreviewWidth = 50

const ellipsis = "..."

var flatten = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Render formats the history for display: a header with the current size, one
// line per entry from newest to oldest, and a footer.
func (s *Store) Render(width int) []string {
	if width < 1 {
		width = DefaultPreviewWidth
	}
	header := fmt.Sprintf("=== Clipboard History (%d/%d) ===", s.size, len(s.ring))
	lines := make([]string, 0, s.size+2)
	lines = append(lines, header)
	if s.size == 0 {
		lines = append(lines, "(empty)")
	}
	for i := 0; i < s.size; i++ {
		e := s.ring[s.slot(i)]
		lines = append(lines, fmt.Sprintf("[%d] %s  %s", i+1, e.Timestamp(), Preview(e.Content, width)))
	}
	return append(lines, strings.Repeat("=", len(header)))
}

// Preview flattens text onto one line and cuts it to width characters,
// marking the cut with an ellipsis.
func Preview(text string, width int) string {
	text = flatten.Replace(text)
	if utf8.RuneCountInString(text) <= width {
		return text
	}
	i := 0
	for pos := range text {
		if i == width {
			return text[:pos] + ellipsis
		}
		i++
	}
	return text
}
