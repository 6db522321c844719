// Package session drives page-by-page reading of one open document.
package session

import (
	"github.com/papertrail/papertrail/internal/library"
	"github.com/papertrail/papertrail/internal/markdown"
)

// Session composes the section splitter, title extractor and bookmark
// operations for a single document. Sections and titles are derived once
// at load; the table of contents is recomputed on demand because the
// bookmark list can change underneath it.
//
// Navigation is guarded by a flip flag: while a page transition is in
// progress every navigation request is refused rather than queued.
type Session struct {
	lib *library.Library
	doc library.Document

	sections []string
	titles   []string

	page       int
	flipping   bool
	readerMode bool
}

// New opens a reading session for the document with the given id.
// Unknown ids return library.ErrNotFound; callers navigate back to the
// library rather than treating it as fatal. A nil library is a wiring
// bug and panics.
func New(lib *library.Library, id string) (*Session, error) {
	if lib == nil {
		panic("session: nil library")
	}
	doc, ok := lib.GetDocument(id)
	if !ok {
		return nil, library.ErrNotFound
	}
	lib.SetActive(doc.ID)

	sections := markdown.Split(doc.Content)
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = markdown.TitleOf(s)
	}

	return &Session{
		lib:      lib,
		doc:      doc,
		sections: sections,
		titles:   titles,
	}, nil
}

// Document returns the open document as loaded.
func (s *Session) Document() library.Document { return s.doc }

// Sections returns the derived section sequence.
func (s *Session) Sections() []string { return s.sections }

// Titles returns the per-section titles.
func (s *Session) Titles() []string { return s.titles }

// PageCount returns the number of sections.
func (s *Session) PageCount() int { return len(s.sections) }

// Page returns the current page index.
func (s *Session) Page() int { return s.page }

// Section returns the current page's raw markdown.
func (s *Session) Section() string { return s.sections[s.page] }

// Title returns the current page's title.
func (s *Session) Title() string { return s.titles[s.page] }

// Next advances one page. Returns false at the last page or while a
// flip is in progress.
func (s *Session) Next() bool {
	if s.flipping || s.page >= len(s.sections)-1 {
		return false
	}
	s.page++
	return true
}

// Prev steps back one page. Returns false at the first page or while a
// flip is in progress.
func (s *Session) Prev() bool {
	if s.flipping || s.page <= 0 {
		return false
	}
	s.page--
	return true
}

// GoTo jumps to a page index. Out-of-range targets and requests during
// a flip are refused.
func (s *Session) GoTo(index int) bool {
	if s.flipping || index < 0 || index >= len(s.sections) {
		return false
	}
	s.page = index
	return true
}

// BeginFlip claims the transition guard. It returns false when a flip
// is already running.
func (s *Session) BeginFlip() bool {
	if s.flipping {
		return false
	}
	s.flipping = true
	return true
}

// EndFlip releases the transition guard.
func (s *Session) EndFlip() { s.flipping = false }

// Flipping reports whether a transition is in progress.
func (s *Session) Flipping() bool { return s.flipping }

// ToggleReaderMode flips the distraction-free display flag. Display
// only; it has no effect on stored state.
func (s *Session) ToggleReaderMode() { s.readerMode = !s.readerMode }

// ReaderMode reports the display flag.
func (s *Session) ReaderMode() bool { return s.readerMode }

// Toc rebuilds the table of contents from the document content and its
// current bookmarks.
func (s *Session) Toc() []markdown.TocItem {
	return markdown.BuildToc(s.doc.Content, s.lib.Bookmarks(s.doc.ID))
}

// Bookmarks returns the document's current bookmarks.
func (s *Session) Bookmarks() []library.Bookmark {
	return s.lib.Bookmarks(s.doc.ID)
}

// CurrentBookmark returns the bookmark on the current page, if any.
func (s *Session) CurrentBookmark() (library.Bookmark, bool) {
	for _, b := range s.lib.Bookmarks(s.doc.ID) {
		if b.SectionIndex == s.page {
			return b, true
		}
	}
	return library.Bookmark{}, false
}

// ToggleBookmark bookmarks the current page with its section title, or
// removes the existing bookmark. It reports whether the page is
// bookmarked afterwards.
func (s *Session) ToggleBookmark() (bool, error) {
	if mark, ok := s.CurrentBookmark(); ok {
		s.lib.RemoveBookmark(s.doc.ID, mark.ID)
		return false, nil
	}
	if _, err := s.lib.AddBookmark(s.doc.ID, s.page, s.titles[s.page]); err != nil {
		return false, err
	}
	return true, nil
}
