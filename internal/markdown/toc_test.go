package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/papertrail/papertrail/internal/library"
)

func TestBuildToc(t *testing.T) {
	content := "# A\nhello\n## B\nworld\n## C\nend"

	items := BuildToc(content, nil)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	expected := []TocItem{
		{Text: "A", Level: 1, Index: 0},
		{Text: "B", Level: 2, Index: 1},
		{Text: "C", Level: 2, Index: 2},
	}
	for i, want := range expected {
		got := items[i]
		if got.Text != want.Text || got.Level != want.Level || got.Index != want.Index {
			t.Errorf("item %d: expected %+v, got %+v", i, want, got)
		}
		if got.IsBookmarked {
			t.Errorf("item %d: bookmarked without any bookmarks", i)
		}
	}
}

func TestBuildTocPreamble(t *testing.T) {
	content := "some intro text\n# First\nbody\n## Second\n"

	items := BuildToc(content, nil)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// The preamble occupies section 0, so the first heading owns
	// section 1.
	if items[0].Index != 1 || items[1].Index != 2 {
		t.Errorf("expected indices [1 2], got [%d %d]", items[0].Index, items[1].Index)
	}
}

func TestBuildTocBookmarks(t *testing.T) {
	content := "# A\nhello\n## B\nworld\n## C\nend"
	bookmarks := []library.Bookmark{
		{ID: "bm1", SectionIndex: 1, Title: "B", CreatedAt: time.Now()},
	}

	items := BuildToc(content, bookmarks)
	for _, item := range items {
		want := item.Index == 1
		if item.IsBookmarked != want {
			t.Errorf("item %q (index %d): IsBookmarked = %v, expected %v",
				item.Text, item.Index, item.IsBookmarked, want)
		}
	}
}

func TestBuildTocEmpty(t *testing.T) {
	if items := BuildToc("no headings here", nil); len(items) != 0 {
		t.Errorf("expected no items for heading-free content, got %d", len(items))
	}
}

// TestBuildTocAgreesWithSplit pins the agreement between the two
// independently written index computations: every ToC entry must point
// at the section whose first line is that heading.
func TestBuildTocAgreesWithSplit(t *testing.T) {
	inputs := []string{
		"# A\nhello\n## B\nworld\n## C\nend",
		"preamble text\n# one\nbody\n## two\n### three\nbody\n",
		"# a\n# b\n# c\n",
		"## consecutive\n### headings\n# here",
		"text\n\n### only deep heading\n",
		"# fence\n```\n# inside fence\n```\n# after\n",
		"# no trailing newline",
	}

	for _, content := range inputs {
		sections := Split(content)
		for _, item := range BuildToc(content, nil) {
			if item.Index < 0 || item.Index >= len(sections) {
				t.Errorf("input %q: item %q index %d out of range (%d sections)",
					content, item.Text, item.Index, len(sections))
				continue
			}
			section := sections[item.Index]
			firstLine := section
			if i := strings.IndexByte(section, '\n'); i >= 0 {
				firstLine = section[:i]
			}
			marker := strings.Repeat("#", item.Level) + " "
			if !strings.HasPrefix(firstLine, marker) {
				t.Errorf("input %q: item %q claims section %d but its first line is %q",
					content, item.Text, item.Index, firstLine)
				continue
			}
			if got := strings.TrimSpace(strings.TrimPrefix(firstLine, marker)); got != item.Text {
				t.Errorf("input %q: item text %q does not match section heading %q",
					content, item.Text, got)
			}
		}
	}
}
