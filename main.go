//go:build !gui

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/papertrail/papertrail/internal/config"
	"github.com/papertrail/papertrail/internal/library"
	"github.com/papertrail/papertrail/internal/logging"
	"github.com/papertrail/papertrail/internal/session"
	"github.com/papertrail/papertrail/internal/settings"
	"github.com/papertrail/papertrail/internal/visit"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	openID := flag.String("open", "", "Open a previously added document by id")
	listDocs := flag.Bool("list", false, "List recent documents and exit")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Papertrail - Terminal Markdown Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  papertrail [options] [file.md]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  papertrail notes.md        Add notes.md to the library and read it\n")
		fmt.Fprintf(os.Stderr, "  papertrail                 Browse the library\n")
		fmt.Fprintf(os.Stderr, "  papertrail -open <id>      Reopen a document by id\n")
		fmt.Fprintf(os.Stderr, "  papertrail -list           Print recent documents\n")
		fmt.Fprintf(os.Stderr, "\nReader controls:\n")
		fmt.Fprintf(os.Stderr, "  ←/→      Previous/next page\n")
		fmt.Fprintf(os.Stderr, "  t        Table of contents\n")
		fmt.Fprintf(os.Stderr, "  b        Bookmarks    m  Toggle bookmark\n")
		fmt.Fprintf(os.Stderr, "  r        Reader mode  f  Font family  +/-  Font size\n")
		fmt.Fprintf(os.Stderr, "  esc      Back to library\n")
		fmt.Fprintf(os.Stderr, "  q        Quit\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("papertrail %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	stateDir := config.StateDir()
	log := logging.New(stateDir)
	defer log.Sync()

	cfg := config.Load(config.Dir(), log)

	lib, err := library.Open(stateDir, log, library.WithThreshold(cfg.LastOpenedThreshold()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open library: %v\n", err)
		os.Exit(1)
	}
	prefs, err := settings.OpenStore(stateDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open settings: %v\n", err)
		os.Exit(1)
	}
	visits := visit.NewTracker(stateDir)

	if *listDocs {
		recent := lib.RecentDocuments(cfg.RecentLimit)
		if len(recent) == 0 {
			fmt.Println("No documents yet. Add one with: papertrail file.md")
			return
		}
		for _, doc := range recent {
			fmt.Printf("%s  %-30s  %s\n", doc.ID, doc.Name, doc.LastOpened.Format("2006-01-02 15:04"))
		}
		return
	}

	app := newApp(cfg, log, lib, prefs, visits)

	switch {
	case flag.NArg() > 0:
		name, content, err := library.ReadSource(flag.Arg(0))
		if err != nil {
			// Unsupported or unreadable files show an inline notice on
			// the library view instead of aborting.
			app.notice = err.Error()
			log.Warn("ingest failed", zap.String("path", flag.Arg(0)), zap.Error(err))
			break
		}
		doc := lib.AddDocument(name, content)
		if err := app.openReader(doc.ID); err != nil {
			app.notice = "Document not found"
		}
	case *openID != "":
		if err := app.openReader(*openID); err != nil {
			if errors.Is(err, library.ErrNotFound) {
				app.notice = "Document not found - pick one below or add a file"
			} else {
				app.notice = err.Error()
			}
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openReader switches the model into the reader view for the document
// id, or reports why it could not.
func (m *appModel) openReader(id string) error {
	sess, err := session.New(m.lib, id)
	if err != nil {
		return err
	}
	m.sess = sess
	m.state = viewReader
	m.showToc = false
	m.showMarks = false
	m.typingTarget = ""
	if m.visits.FirstContentView() {
		m.typingTarget = sess.Title()
		m.typed = 0
	}
	m.refreshContent()
	return nil
}
