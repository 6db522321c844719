package library

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	libraryFileName = "library.json"

	// DefaultRecentLimit caps the recent-documents view.
	DefaultRecentLimit = 5

	// DefaultLastOpenedThreshold is the minimum drift before a read
	// refreshes LastOpened on disk. Reads inside the window return the
	// stored timestamp unchanged to avoid write amplification.
	DefaultLastOpenedThreshold = 60 * time.Second
)

// ErrNotFound is returned when a document id is not in the library.
var ErrNotFound = errors.New("document not found")

// Library owns the document collection. All mutations replace whole
// slices rather than editing in place, so a reader holding a previously
// returned Document never observes a partial update. Persistence happens
// on every mutation; write failures are logged and skipped.
type Library struct {
	path      string
	threshold time.Duration
	log       *zap.Logger
	now       func() time.Time

	mu       sync.RWMutex
	docs     []Document
	activeID string
}

// Option configures a Library.
type Option func(*Library)

// WithThreshold overrides the LastOpened refresh threshold.
func WithThreshold(d time.Duration) Option {
	return func(l *Library) { l.threshold = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// Open loads the library from dir, creating the directory if needed.
// A missing, unreadable, or corrupt library file starts an empty
// collection; it never fails startup.
func Open(dir string, log *zap.Logger, opts ...Option) (*Library, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	l := &Library{
		path:      filepath.Join(dir, libraryFileName),
		threshold: DefaultLastOpenedThreshold,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	l.load()
	return l, nil
}

func (l *Library) load() {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		l.log.Warn("library unreadable, starting empty", zap.Error(err))
		return
	}
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		l.log.Warn("library corrupt, starting empty", zap.Error(err))
		return
	}
	for i := range docs {
		if docs[i].Bookmarks == nil {
			docs[i].Bookmarks = []Bookmark{}
		}
	}
	l.docs = docs
}

// save persists the collection. Callers hold l.mu.
func (l *Library) save() {
	data, err := json.MarshalIndent(l.docs, "", "  ")
	if err != nil {
		l.log.Warn("library encode failed, write skipped", zap.Error(err))
		return
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		l.log.Warn("library write skipped", zap.Error(err))
	}
}

// AddDocument ingests content under a fresh id, marks it active and
// persists the collection.
func (l *Library) AddDocument(name, content string) Document {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := Document{
		ID:         NewID(),
		Name:       name,
		Content:    content,
		LastOpened: l.now(),
		Bookmarks:  []Bookmark{},
	}
	next := make([]Document, len(l.docs), len(l.docs)+1)
	copy(next, l.docs)
	l.docs = append(next, doc)
	l.activeID = doc.ID
	l.save()
	return doc
}

// GetDocument looks up a document by id. When the stored LastOpened has
// drifted past the threshold it is refreshed and written back; reads
// inside the window leave the stored value alone.
func (l *Library) GetDocument(id string) (Document, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, doc := range l.docs {
		if doc.ID != id {
			continue
		}
		now := l.now()
		if now.Sub(doc.LastOpened) > l.threshold {
			updated := doc
			updated.LastOpened = now
			next := make([]Document, len(l.docs))
			copy(next, l.docs)
			next[i] = updated
			l.docs = next
			l.save()
			return updated, true
		}
		return doc, true
	}
	return Document{}, false
}

// SetActive records the active document id. Unknown ids are ignored.
func (l *Library) SetActive(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, doc := range l.docs {
		if doc.ID == id {
			l.activeID = id
			return
		}
	}
}

// Active returns the active document, if any.
func (l *Library) Active() (Document, bool) {
	l.mu.RLock()
	id := l.activeID
	l.mu.RUnlock()
	if id == "" {
		return Document{}, false
	}
	return l.GetDocument(id)
}

// RecentDocuments returns documents sorted by LastOpened descending,
// truncated to limit. A non-positive limit uses DefaultRecentLimit.
func (l *Library) RecentDocuments(limit int) []Document {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	recent := make([]Document, len(l.docs))
	copy(recent, l.docs)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].LastOpened.After(recent[j].LastOpened)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// Len returns the number of documents in the library.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.docs)
}

// AddBookmark creates a bookmark for a section. A section holds at most
// one bookmark: when one already exists for sectionIndex it is replaced
// at its list position with a fresh id and timestamp.
func (l *Library) AddBookmark(docID string, sectionIndex int, title string) (Bookmark, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, doc := range l.docs {
		if doc.ID != docID {
			continue
		}
		mark := Bookmark{
			ID:           NewID(),
			SectionIndex: sectionIndex,
			Title:        title,
			CreatedAt:    l.now(),
		}
		marks := make([]Bookmark, len(doc.Bookmarks))
		copy(marks, doc.Bookmarks)
		replaced := false
		for j := range marks {
			if marks[j].SectionIndex == sectionIndex {
				marks[j] = mark
				replaced = true
				break
			}
		}
		if !replaced {
			marks = append(marks, mark)
		}
		l.replaceDoc(i, func(d Document) Document {
			d.Bookmarks = marks
			return d
		})
		l.save()
		return mark, nil
	}
	return Bookmark{}, ErrNotFound
}

// RemoveBookmark deletes a bookmark by id. Removing an absent bookmark
// is a no-op.
func (l *Library) RemoveBookmark(docID, bookmarkID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, doc := range l.docs {
		if doc.ID != docID {
			continue
		}
		marks := make([]Bookmark, 0, len(doc.Bookmarks))
		removed := false
		for _, m := range doc.Bookmarks {
			if m.ID == bookmarkID {
				removed = true
				continue
			}
			marks = append(marks, m)
		}
		if !removed {
			return
		}
		l.replaceDoc(i, func(d Document) Document {
			d.Bookmarks = marks
			return d
		})
		l.save()
		return
	}
}

// Bookmarks returns the document's bookmark list, empty for unknown ids.
func (l *Library) Bookmarks(docID string) []Bookmark {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, doc := range l.docs {
		if doc.ID == docID {
			marks := make([]Bookmark, len(doc.Bookmarks))
			copy(marks, doc.Bookmarks)
			return marks
		}
	}
	return []Bookmark{}
}

// replaceDoc swaps one document through a whole-slice copy. Callers hold
// l.mu.
func (l *Library) replaceDoc(i int, mutate func(Document) Document) {
	next := make([]Document, len(l.docs))
	copy(next, l.docs)
	next[i] = mutate(next[i])
	l.docs = next
}
