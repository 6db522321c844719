package visit

import (
	"testing"
)

func TestFirstAppVisitPersists(t *testing.T) {
	dir := t.TempDir()

	tracker := NewTracker(dir)
	if !tracker.FirstAppVisit() {
		t.Error("expected first visit on a fresh directory")
	}
	if tracker.FirstAppVisit() {
		t.Error("expected repeat visit on second call")
	}

	// A new tracker over the same directory sees the stored flag.
	if NewTracker(dir).FirstAppVisit() {
		t.Error("expected repeat visit after restart")
	}
}

func TestFirstContentViewIsPerProcess(t *testing.T) {
	dir := t.TempDir()

	tracker := NewTracker(dir)
	if !tracker.FirstContentView() {
		t.Error("expected first content view")
	}
	if tracker.FirstContentView() {
		t.Error("expected repeat content view on second call")
	}

	// The content flag is session-scoped: a fresh tracker starts over.
	if !NewTracker(dir).FirstContentView() {
		t.Error("expected a new tracker to report first content view again")
	}
}
