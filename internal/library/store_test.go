package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock is a controllable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLibrary(t *testing.T, opts ...Option) (*Library, string) {
	t.Helper()
	dir := t.TempDir()
	lib, err := Open(dir, zap.NewNop(), opts...)
	require.NoError(t, err)
	return lib, dir
}

func TestAddAndGetDocument(t *testing.T) {
	lib, _ := newTestLibrary(t)

	doc := lib.AddDocument("notes.md", "# Hello\nworld")
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "notes.md", doc.Name)
	assert.Empty(t, doc.Bookmarks)

	got, ok := lib.GetDocument(doc.ID)
	require.True(t, ok)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "# Hello\nworld", got.Content)

	_, ok = lib.GetDocument("no-such-id")
	assert.False(t, ok)
}

func TestGetDocumentThrottlesLastOpened(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)}
	lib, _ := newTestLibrary(t, WithClock(clock.Now))

	doc := lib.AddDocument("a.md", "content")
	added := doc.LastOpened

	// Inside the threshold: the stored timestamp is left alone.
	clock.Advance(30 * time.Second)
	got, ok := lib.GetDocument(doc.ID)
	require.True(t, ok)
	assert.True(t, got.LastOpened.Equal(added))

	// Past the threshold: refreshed once.
	clock.Advance(31 * time.Second)
	got, ok = lib.GetDocument(doc.ID)
	require.True(t, ok)
	refreshed := got.LastOpened
	assert.True(t, refreshed.After(added))

	// A second read right after does not refresh again.
	clock.Advance(10 * time.Second)
	got, ok = lib.GetDocument(doc.ID)
	require.True(t, ok)
	assert.True(t, got.LastOpened.Equal(refreshed))
}

func TestRecentDocumentsOrdering(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)}
	lib, _ := newTestLibrary(t, WithClock(clock.Now))

	d1 := lib.AddDocument("first.md", "1")
	clock.Advance(time.Minute)
	d2 := lib.AddDocument("second.md", "2")
	clock.Advance(time.Minute)
	d3 := lib.AddDocument("third.md", "3")

	recent := lib.RecentDocuments(2)
	require.Len(t, recent, 2)
	assert.Equal(t, d3.ID, recent[0].ID)
	assert.Equal(t, d2.ID, recent[1].ID)

	all := lib.RecentDocuments(10)
	require.Len(t, all, 3)
	assert.Equal(t, d1.ID, all[2].ID)
}

func TestAddBookmarkReplacesSameSection(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)}
	lib, _ := newTestLibrary(t, WithClock(clock.Now))
	doc := lib.AddDocument("a.md", "# A\n## B\n## C\n")

	first, err := lib.AddBookmark(doc.ID, 2, "C")
	require.NoError(t, err)
	_, err = lib.AddBookmark(doc.ID, 0, "A")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	replacement, err := lib.AddBookmark(doc.ID, 2, "C again")
	require.NoError(t, err)

	marks := lib.Bookmarks(doc.ID)
	require.Len(t, marks, 2)

	// The replacement keeps the original list position with a fresh
	// identity.
	assert.Equal(t, 2, marks[0].SectionIndex)
	assert.Equal(t, replacement.ID, marks[0].ID)
	assert.NotEqual(t, first.ID, marks[0].ID)
	assert.Equal(t, "C again", marks[0].Title)
	assert.True(t, marks[0].CreatedAt.After(first.CreatedAt))
	assert.Equal(t, 0, marks[1].SectionIndex)

	// Exactly one bookmark per section index, always.
	seen := map[int]int{}
	for _, m := range marks {
		seen[m.SectionIndex]++
	}
	for idx, n := range seen {
		assert.Equal(t, 1, n, "section %d has %d bookmarks", idx, n)
	}
}

func TestAddBookmarkUnknownDocument(t *testing.T) {
	lib, _ := newTestLibrary(t)
	_, err := lib.AddBookmark("nope", 0, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveBookmarkIdempotent(t *testing.T) {
	lib, _ := newTestLibrary(t)
	doc := lib.AddDocument("a.md", "# A\n")
	mark, err := lib.AddBookmark(doc.ID, 0, "A")
	require.NoError(t, err)

	lib.RemoveBookmark(doc.ID, mark.ID)
	after := lib.Bookmarks(doc.ID)
	assert.Empty(t, after)

	// Second removal is a no-op.
	lib.RemoveBookmark(doc.ID, mark.ID)
	assert.Equal(t, after, lib.Bookmarks(doc.ID))

	// Unknown document is a no-op too.
	lib.RemoveBookmark("nope", mark.ID)
}

func TestBookmarksUnknownDocument(t *testing.T) {
	lib, _ := newTestLibrary(t)
	assert.Empty(t, lib.Bookmarks("nope"))
}

func TestPersistenceRoundTrip(t *testing.T) {
	lib, dir := newTestLibrary(t)
	doc := lib.AddDocument("keep.md", "# Kept\nacross restarts\n")
	mark, err := lib.AddBookmark(doc.ID, 0, "Kept")
	require.NoError(t, err)

	reopened, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	got, ok := reopened.GetDocument(doc.ID)
	require.True(t, ok)
	assert.Equal(t, doc.Name, got.Name)
	assert.Equal(t, doc.Content, got.Content)
	assert.WithinDuration(t, doc.LastOpened, got.LastOpened, time.Second)

	marks := reopened.Bookmarks(doc.ID)
	require.Len(t, marks, 1)
	assert.Equal(t, mark.ID, marks[0].ID)
	assert.Equal(t, mark.SectionIndex, marks[0].SectionIndex)
	assert.Equal(t, mark.Title, marks[0].Title)
	assert.WithinDuration(t, mark.CreatedAt, marks[0].CreatedAt, time.Second)
}

func TestCorruptLibraryStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, libraryFileName), []byte("{not json"), 0644))

	lib, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, lib.Len())
	assert.Empty(t, lib.RecentDocuments(5))
}

func TestMissingBookmarksDefaultsEmpty(t *testing.T) {
	dir := t.TempDir()
	blob := `[{"id":"d1","name":"old.md","content":"# Old","lastOpened":"2026-01-02T12:00:00Z"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, libraryFileName), []byte(blob), 0644))

	lib, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	marks := lib.Bookmarks("d1")
	assert.NotNil(t, marks)
	assert.Empty(t, marks)
}

func TestActiveDocument(t *testing.T) {
	lib, _ := newTestLibrary(t)

	_, ok := lib.Active()
	assert.False(t, ok)

	doc := lib.AddDocument("a.md", "x")
	active, ok := lib.Active()
	require.True(t, ok)
	assert.Equal(t, doc.ID, active.ID)

	lib.SetActive("nope")
	active, ok = lib.Active()
	require.True(t, ok)
	assert.Equal(t, doc.ID, active.ID)
}
