// Package visit tracks the one-shot first-visit flags. The app flag is
// persisted across runs; the content flag lasts for one process, which
// stands in for the browsing session it mirrors.
package visit

import (
	"os"
	"path/filepath"
	"sync"
)

const visitedFileName = "visited"

// Tracker answers "is this the first time?" questions.
type Tracker struct {
	path string

	mu          sync.Mutex
	contentSeen bool
}

// NewTracker returns a tracker persisting the app flag under dir.
func NewTracker(dir string) *Tracker {
	return &Tracker{path: filepath.Join(dir, visitedFileName)}
}

// FirstAppVisit reports whether the app has never been opened before,
// and records the visit. Storage failures count as a prior visit so the
// first-run experience never blocks a returning user.
func (t *Tracker) FirstAppVisit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := os.Stat(t.path); err == nil {
		return false
	} else if !os.IsNotExist(err) {
		return false
	}
	if err := os.WriteFile(t.path, []byte("1\n"), 0644); err != nil {
		return false
	}
	return true
}

// FirstContentView reports whether content has been rendered before in
// this process, and records the view. Controls the one-time typing
// animation.
func (t *Tracker) FirstContentView() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.contentSeen {
		return false
	}
	t.contentSeen = true
	return true
}
