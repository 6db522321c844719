//go:build gui

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
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

// readerTheme scales the default text size to the stored font-size
// preference.
type readerTheme struct {
	fyne.Theme
	fontSize float32
}

func (t *readerTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return t.fontSize
	}
	return t.Theme.Size(name)
}

func main() {
	openID := flag.String("open", "", "Open a previously added document by id")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Papertrail - Markdown Reader (GUI)\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  papertrail [options] [file.md]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
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

	var docID string
	switch {
	case flag.NArg() > 0:
		name, content, err := library.ReadSource(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		docID = lib.AddDocument(name, content).ID
	case *openID != "":
		docID = *openID
	default:
		recent := lib.RecentDocuments(1)
		if len(recent) == 0 {
			fmt.Fprintln(os.Stderr, "Error: the library is empty. Add a file: papertrail file.md")
			os.Exit(1)
		}
		docID = recent[0].ID
	}

	sess, err := session.New(lib, docID)
	if err != nil {
		// Unknown id: fall back to the most recent document instead of
		// erroring out, mirroring the redirect behaviour.
		recent := lib.RecentDocuments(1)
		if len(recent) == 0 {
			fmt.Fprintln(os.Stderr, "Error: document not found and the library is empty.")
			os.Exit(1)
		}
		log.Warn("document not found, opening most recent", zap.String("id", docID))
		if sess, err = session.New(lib, recent[0].ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	a := app.New()
	a.Settings().SetTheme(&readerTheme{
		Theme:    theme.DefaultTheme(),
		fontSize: float32(prefs.Current().FontSize),
	})
	w := a.NewWindow("Papertrail - " + sess.Document().Name)

	titleLabel := widget.NewLabel("")
	titleLabel.TextStyle.Bold = true
	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter

	content := widget.NewRichTextFromMarkdown(sess.Section())
	content.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(content)

	var tocPanel *container.Split
	tocVisible := false

	var prevBtn, nextBtn, markBtn *widget.Button

	updateDisplay := func() {
		titleLabel.SetText(sess.Title())
		content.ParseMarkdown(sess.Section())
		scroll.ScrollToTop()

		mark := ""
		if _, ok := sess.CurrentBookmark(); ok {
			mark = " | bookmarked"
		}
		statusLabel.SetText(fmt.Sprintf("Page %d of %d%s", sess.Page()+1, sess.PageCount(), mark))

		prevBtn.Enable()
		nextBtn.Enable()
		if sess.Page() == 0 || sess.Flipping() {
			prevBtn.Disable()
		}
		if sess.Page() == sess.PageCount()-1 || sess.Flipping() {
			nextBtn.Disable()
		}
	}

	// flip claims the guard, waits out the transition window, then
	// applies the page change on the UI thread.
	flip := func(move func() bool) {
		if !sess.BeginFlip() {
			return
		}
		updateDisplay()
		time.AfterFunc(cfg.FlipDuration(), func() {
			sess.EndFlip()
			move()
			fyne.Do(updateDisplay)
		})
	}

	prevBtn = widget.NewButton("Previous", func() {
		if sess.Page() > 0 {
			flip(sess.Prev)
		}
	})
	nextBtn = widget.NewButton("Next", func() {
		if sess.Page() < sess.PageCount()-1 {
			flip(sess.Next)
		}
	})
	markBtn = widget.NewButton("Bookmark", func() {
		if _, err := sess.ToggleBookmark(); err != nil {
			log.Warn("bookmark toggle failed", zap.Error(err))
		}
		updateDisplay()
	})

	toc := sess.Toc()
	tocList := widget.NewList(
		func() int { return len(toc) },
		func() fyne.CanvasObject { return widget.NewLabel("Title") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			entry := toc[id]
			label := obj.(*widget.Label)
			indent := ""
			for i := 1; i < entry.Level; i++ {
				indent += "    "
			}
			text := indent + entry.Text
			if entry.IsBookmarked {
				text += " *"
			}
			label.SetText(text)
		},
	)
	tocList.OnSelected = func(id widget.ListItemID) {
		if id < len(toc) && toc[id].Index != sess.Page() {
			flip(func() bool { return sess.GoTo(toc[id].Index) })
		}
		tocVisible = false
		tocPanel.Leading.Hide()
		tocPanel.Refresh()
	}

	readingContent := container.NewBorder(
		titleLabel,
		container.NewVBox(statusLabel, container.NewHBox(prevBtn, markBtn, nextBtn)),
		nil, nil,
		scroll,
	)

	tocContainer := container.NewBorder(
		widget.NewLabel("Table of Contents"),
		widget.NewLabel("Click to jump - T to close"),
		nil, nil,
		tocList,
	)
	tocPanel = container.NewHSplit(tocContainer, readingContent)
	tocPanel.Offset = 0.3
	tocContainer.Hide()

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyLeft:
			if sess.Page() > 0 {
				flip(sess.Prev)
			}
		case fyne.KeyRight:
			if sess.Page() < sess.PageCount()-1 {
				flip(sess.Next)
			}
		case fyne.KeyQ, fyne.KeyEscape:
			a.Quit()
		}
	})

	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case 't', 'T':
			// Refresh ToC so bookmark markers stay current.
			toc = sess.Toc()
			tocList.Refresh()
			tocVisible = !tocVisible
			if tocVisible {
				tocPanel.Leading.Show()
			} else {
				tocPanel.Leading.Hide()
			}
			tocPanel.Refresh()
		case 'm', 'M':
			if _, err := sess.ToggleBookmark(); err != nil {
				log.Warn("bookmark toggle failed", zap.Error(err))
			}
			updateDisplay()
		case '+', '=':
			size := prefs.Current().FontSize + 2
			prefs.SetFontSize(size)
			a.Settings().SetTheme(&readerTheme{Theme: theme.DefaultTheme(), fontSize: float32(size)})
		case '-':
			if size := prefs.Current().FontSize; size > 10 {
				prefs.SetFontSize(size - 2)
				a.Settings().SetTheme(&readerTheme{Theme: theme.DefaultTheme(), fontSize: float32(size - 2)})
			}
		}
	})

	// Type the first title in on the first content view of the run.
	if visits.FirstContentView() {
		full := []rune(sess.Title())
		titleLabel.SetText("")
		go func() {
			for i := 1; i <= len(full); i++ {
				time.Sleep(cfg.TypingInterval())
				text := string(full[:i])
				fyne.Do(func() { titleLabel.SetText(text) })
			}
		}()
	}

	w.Resize(fyne.NewSize(900, 700))
	w.SetContent(tocPanel)
	updateDisplay()
	w.ShowAndRun()
}
