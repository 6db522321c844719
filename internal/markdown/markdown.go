// Package markdown derives pagination and table-of-contents data from
// raw markdown text. Sections are the unit of pagination: a new section
// starts at every level 1-3 heading line, and the 0-based section index
// is the stable key bookmarks and ToC entries reference.
package markdown

import (
	"regexp"
	"strings"
)

// FallbackTitle labels sections that contain no heading line.
const FallbackTitle = "Untitled Section"

// boundaryRegex matches a section boundary: a level 1-3 heading line.
var boundaryRegex = regexp.MustCompile(`(?m)^#{1,3} .+$`)

// titleRegex captures the text of a heading line.
var titleRegex = regexp.MustCompile(`(?m)^#{1,3} (.+)$`)

// Split cuts content into sections at heading boundaries. The heading
// line starts its section and is included in it; text before the first
// heading forms the leading section. Content with no headings at all is
// returned as a single section. Concatenating the result reproduces
// content exactly.
func Split(content string) []string {
	locs := boundaryRegex.FindAllStringIndex(content, -1)

	bounds := make([]int, 0, len(locs)+2)
	if len(locs) == 0 || locs[0][0] != 0 {
		bounds = append(bounds, 0)
	}
	for _, loc := range locs {
		bounds = append(bounds, loc[0])
	}
	bounds = append(bounds, len(content))

	sections := make([]string, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		sections = append(sections, content[bounds[i]:bounds[i+1]])
	}
	return sections
}

// TitleOf returns the trimmed text of the first heading line in a
// section, or FallbackTitle when the section has none. Each section is
// inspected on its own; the leading section of a document often has no
// heading.
func TitleOf(section string) string {
	if m := titleRegex.FindStringSubmatch(section); m != nil {
		return strings.TrimSpace(m[1])
	}
	return FallbackTitle
}
