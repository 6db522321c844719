package markdown

import (
	"regexp"
	"strings"

	"github.com/papertrail/papertrail/internal/library"
)

// TocItem is one heading entry in a document's table of contents.
type TocItem struct {
	Text         string
	Level        int
	Index        int
	IsBookmarked bool
}

// headingRegex captures the marker run and text of a heading line.
var headingRegex = regexp.MustCompile(`(?m)^(#{1,3}) (.+)$`)

// BuildToc scans content for heading lines in document order and
// computes each heading's owning section index by accumulating the
// boundary points found between successive matches. The indices match
// what Split produces for the same content. Pure function; recompute it
// whenever content or bookmarks change.
func BuildToc(content string, bookmarks []library.Bookmark) []TocItem {
	matches := headingRegex.FindAllStringSubmatchIndex(content, -1)
	items := make([]TocItem, 0, len(matches))

	sectionIndex := 0
	lastStart := 0
	for i, m := range matches {
		start := m[0]
		level := m[3] - m[2]
		text := strings.TrimSpace(content[m[4]:m[5]])

		if i == 0 {
			// Text before the first heading forms its own section.
			if start > 0 {
				sectionIndex = 1
			}
		} else if start > lastStart {
			between := content[lastStart:start]
			sectionIndex += len(boundaryRegex.FindAllStringIndex(between, -1))
		}

		bookmarked := false
		for _, b := range bookmarks {
			if b.SectionIndex == sectionIndex {
				bookmarked = true
				break
			}
		}

		items = append(items, TocItem{
			Text:         text,
			Level:        level,
			Index:        sectionIndex,
			IsBookmarked: bookmarked,
		})
		lastStart = start
	}
	return items
}
