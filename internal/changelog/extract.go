// Package changelog scrapes change notes from public workshop item pages.
package changelog

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HistorySelector matches the update-history container of an item page.
const HistorySelector = "#updateHistoryContent"

const updateMarker = "update:"

var (
	reBreak        = regexp.MustCompile(`(?i)<br\s*/?>`)
	reTag          = regexp.MustCompile(`<[^>]*>`)
	reNewlineSpace = regexp.MustCompile(`\n\s+`)
)

// Extract pulls plain-text change notes out of an item page. The
// update-history container is preferred; otherwise every "Update:"
// segment of the page is joined with blank lines.
func Extract(page string) (string, bool) {
	if fragment, ok := historyContent(page); ok {
		return normalized(fragment)
	}
	if fragment, ok := updateSegments(page); ok {
		return normalized(fragment)
	}
	return "", false
}

func historyContent(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}

	sel := doc.Find(HistorySelector).First()
	if sel.Length() == 0 {
		return "", false
	}

	inner, err := sel.Html()
	if err != nil {
		return "", false
	}
	return inner, true
}

// updateSegments splits page at each case-insensitive "Update:" marker.
// Each segment runs up to the next marker or the end of the page.
func updateSegments(page string) (string, bool) {
	lower := strings.ToLower(page)

	var starts []int
	for i := 0; ; {
		j := strings.Index(lower[i:], updateMarker)
		if j < 0 {
			break
		}
		starts = append(starts, i+j)
		i += j + len(updateMarker)
	}
	if len(starts) == 0 {
		return "", false
	}

	segments := make([]string, 0, len(starts))
	for n, start := range starts {
		end := len(page)
		if n+1 < len(starts) {
			end = starts[n+1]
		}
		segments = append(segments, strings.TrimSpace(page[start:end]))
	}
	return strings.Join(segments, "\n\n"), true
}

func normalized(fragment string) (string, bool) {
	text := Normalize(fragment)
	return text, text != ""
}

// Normalize converts an HTML fragment to plain text: line breaks become
// newlines, tags are dropped, entities are decoded, indentation after
// newlines is removed and the result is trimmed.
func Normalize(fragment string) string {
	s := reBreak.ReplaceAllString(fragment, "\n")
	s = reTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	// The parser decodes &nbsp; to U+00A0 and re-escapes quotes as
	// numeric references.
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = html.UnescapeString(s)
	s = reNewlineSpace.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
