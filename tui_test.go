//go:build !gui

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/papertrail/papertrail/internal/library"
)

func TestDocItem(t *testing.T) {
	doc := library.Document{
		ID:         "abc",
		Name:       "guide.md",
		LastOpened: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Bookmarks: []library.Bookmark{
			{ID: "b1", SectionIndex: 0, Title: "Intro"},
		},
	}
	item := docItem{doc: doc}

	if item.Title() != "guide.md" {
		t.Errorf("expected title guide.md, got %q", item.Title())
	}
	if item.FilterValue() != "guide.md" {
		t.Errorf("expected filter value guide.md, got %q", item.FilterValue())
	}
	desc := item.Description()
	if !strings.Contains(desc, "1 bookmarks") {
		t.Errorf("expected bookmark count in description, got %q", desc)
	}
	if !strings.Contains(desc, "Mar 14") {
		t.Errorf("expected last-opened date in description, got %q", desc)
	}
}

func TestDefaultKeyMapHelp(t *testing.T) {
	keys := defaultKeyMap()

	if len(keys.ShortHelp()) == 0 {
		t.Error("short help is empty")
	}
	rows := keys.FullHelp()
	if len(rows) == 0 {
		t.Fatal("full help is empty")
	}
	for i, row := range rows {
		if len(row) == 0 {
			t.Errorf("full help row %d is empty", i)
		}
	}
}
