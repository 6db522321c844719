//go:build !gui

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/papertrail/papertrail/internal/config"
	"github.com/papertrail/papertrail/internal/library"
	"github.com/papertrail/papertrail/internal/render"
	"github.com/papertrail/papertrail/internal/session"
	"github.com/papertrail/papertrail/internal/settings"
	"github.com/papertrail/papertrail/internal/visit"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D7AF87"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	markStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF00"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D7AF87")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewState int

const (
	viewLibrary viewState = iota
	viewReader
)

// Flip targets beyond explicit page indices.
const (
	flipNext = -1
	flipPrev = -2
)

type flipDoneMsg struct {
	target int
}

type typeTickMsg time.Time

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Toc      key.Binding
	Marks    key.Binding
	Mark     key.Binding
	Reader   key.Binding
	FontFam  key.Binding
	FontUp   key.Binding
	FontDown key.Binding
	Reset    key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→", "next page")),
		Prev:     key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←", "prev page")),
		Toc:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "contents")),
		Marks:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmarks")),
		Mark:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle bookmark")),
		Reader:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reader mode")),
		FontFam:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "font family")),
		FontUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "font size")),
		FontDown: key.NewBinding(key.WithKeys("-")),
		Reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset type")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "library")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toc, k.Marks, k.Mark, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Toc, k.Marks},
		{k.Mark, k.Reader, k.Back, k.Quit},
		{k.FontFam, k.FontUp, k.Reset},
	}
}

// docItem adapts a library document to the bubbles list.
type docItem struct {
	doc library.Document
}

func (i docItem) Title() string { return i.doc.Name }
func (i docItem) Description() string {
	return fmt.Sprintf("opened %s · %d bookmarks", i.doc.LastOpened.Format("Jan 2 15:04"), len(i.doc.Bookmarks))
}
func (i docItem) FilterValue() string { return i.doc.Name }

type appModel struct {
	cfg    config.Config
	log    *zap.Logger
	lib    *library.Library
	prefs  *settings.Store
	visits *visit.Tracker

	state viewState
	keys  keyMap
	help  help.Model

	docs list.Model
	vp   viewport.Model
	rend *render.Renderer

	sess      *session.Session
	showToc   bool
	showMarks bool
	tocCursor int
	mkCursor  int

	notice  string
	welcome bool

	typingTarget string
	typed        int

	width  int
	height int
	ready  bool
}

func newApp(cfg config.Config, log *zap.Logger, lib *library.Library, prefs *settings.Store, visits *visit.Tracker) *appModel {
	docs := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	docs.Title = "Papertrail Library"
	docs.SetShowStatusBar(false)
	docs.SetFilteringEnabled(true)

	m := &appModel{
		cfg:     cfg,
		log:     log,
		lib:     lib,
		prefs:   prefs,
		visits:  visits,
		state:   viewLibrary,
		keys:    defaultKeyMap(),
		help:    help.New(),
		docs:    docs,
		vp:      viewport.New(80, 24),
		rend:    render.New(80, prefs.Current()),
		welcome: visits.FirstAppVisit(),
	}
	m.reloadLibraryList()
	return m
}

func (m *appModel) reloadLibraryList() {
	recent := m.lib.RecentDocuments(m.cfg.RecentLimit)
	items := make([]list.Item, len(recent))
	for i, doc := range recent {
		items[i] = docItem{doc: doc}
	}
	m.docs.SetItems(items)
}

// refreshContent re-renders the current section into the viewport.
func (m *appModel) refreshContent() {
	if m.sess == nil {
		return
	}
	m.rend.SetSettings(m.prefs.Current())
	m.vp.SetContent(m.rend.Render(m.sess.Section()))
	m.vp.GotoTop()
}

func (m *appModel) Init() tea.Cmd {
	if m.typingTarget != "" {
		return typeTick(m.cfg.TypingInterval())
	}
	return nil
}

func typeTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return typeTickMsg(t)
	})
}

// flip claims the transition guard and schedules the page change for
// the end of the flip window. Requests during a running flip are
// dropped, not queued.
func (m *appModel) flip(target int) tea.Cmd {
	if m.sess == nil || !m.sess.BeginFlip() {
		return nil
	}
	return tea.Tick(m.cfg.FlipDuration(), func(time.Time) tea.Msg {
		return flipDoneMsg{target: target}
	})
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.docs.SetSize(msg.Width-2, msg.Height-4)
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 5
		if m.vp.Height < 1 {
			m.vp.Height = 1
		}
		m.rend.SetWidth(msg.Width)
		m.refreshContent()
		return m, nil

	case flipDoneMsg:
		if m.sess == nil {
			return m, nil
		}
		m.sess.EndFlip()
		switch msg.target {
		case flipNext:
			m.sess.Next()
		case flipPrev:
			m.sess.Prev()
		default:
			m.sess.GoTo(msg.target)
		}
		m.refreshContent()
		return m, nil

	case typeTickMsg:
		if m.typingTarget == "" {
			return m, nil
		}
		m.typed++
		if m.typed >= len([]rune(m.typingTarget)) {
			m.typingTarget = ""
			return m, nil
		}
		return m, typeTick(m.cfg.TypingInterval())

	case tea.KeyMsg:
		if m.state == viewReader {
			return m.updateReader(msg)
		}
		return m.updateLibrary(msg)
	}

	if m.state == viewReader {
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.docs.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.docs, cmd = m.docs.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case msg.String() == "enter":
		item, ok := m.docs.SelectedItem().(docItem)
		if !ok {
			return m, nil
		}
		m.notice = ""
		if err := m.openReader(item.doc.ID); err != nil {
			m.notice = "Document not found"
			m.reloadLibraryList()
			return m, nil
		}
		if m.typingTarget != "" {
			return m, typeTick(m.cfg.TypingInterval())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.docs, cmd = m.docs.Update(msg)
	return m, cmd
}

func (m *appModel) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showToc {
		return m.updateToc(msg)
	}
	if m.showMarks {
		return m.updateMarks(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.state = viewLibrary
		m.sess = nil
		m.reloadLibraryList()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.sess.Page() < m.sess.PageCount()-1 {
			return m, m.flip(flipNext)
		}
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.sess.Page() > 0 {
			return m, m.flip(flipPrev)
		}
		return m, nil

	case key.Matches(msg, m.keys.Toc):
		m.showToc = true
		m.showMarks = false
		m.tocCursor = 0
		for i, item := range m.sess.Toc() {
			if item.Index == m.sess.Page() {
				m.tocCursor = i
				break
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Marks):
		m.showMarks = true
		m.showToc = false
		m.mkCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Mark):
		if _, err := m.sess.ToggleBookmark(); err != nil {
			m.log.Warn("bookmark toggle failed", zap.Error(err))
		}
		return m, nil

	case key.Matches(msg, m.keys.Reader):
		m.sess.ToggleReaderMode()
		return m, nil

	case key.Matches(msg, m.keys.FontFam):
		cur := m.prefs.Current()
		if cur.FontFamily == "serif" {
			m.prefs.SetFontFamily("sans")
		} else {
			m.prefs.SetFontFamily("serif")
		}
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.FontUp):
		m.prefs.SetFontSize(m.prefs.Current().FontSize + 2)
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.FontDown):
		if size := m.prefs.Current().FontSize; size > 10 {
			m.prefs.SetFontSize(size - 2)
			m.refreshContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.prefs.Reset()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *appModel) updateToc(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	toc := m.sess.Toc()
	switch msg.String() {
	case "esc", "t", "q":
		m.showToc = false
	case "j", "down":
		if m.tocCursor < len(toc)-1 {
			m.tocCursor++
		}
	case "k", "up":
		if m.tocCursor > 0 {
			m.tocCursor--
		}
	case "enter":
		m.showToc = false
		if m.tocCursor < len(toc) && toc[m.tocCursor].Index != m.sess.Page() {
			return m, m.flip(toc[m.tocCursor].Index)
		}
	}
	return m, nil
}

func (m *appModel) updateMarks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	marks := m.sess.Bookmarks()
	switch msg.String() {
	case "esc", "b", "q":
		m.showMarks = false
	case "j", "down":
		if m.mkCursor < len(marks)-1 {
			m.mkCursor++
		}
	case "k", "up":
		if m.mkCursor > 0 {
			m.mkCursor--
		}
	case "d", "x":
		if m.mkCursor < len(marks) {
			m.lib.RemoveBookmark(m.sess.Document().ID, marks[m.mkCursor].ID)
			if m.mkCursor > 0 && m.mkCursor >= len(marks)-1 {
				m.mkCursor--
			}
		}
	case "enter":
		if m.mkCursor < len(marks) {
			m.showMarks = false
			if marks[m.mkCursor].SectionIndex != m.sess.Page() {
				return m, m.flip(marks[m.mkCursor].SectionIndex)
			}
		}
	}
	return m, nil
}

func (m *appModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.state == viewLibrary {
		return m.viewLibrary()
	}
	return m.viewReader()
}

func (m *appModel) viewLibrary() string {
	var b strings.Builder
	if m.welcome {
		b.WriteString(titleStyle.Render("Welcome to Papertrail") + "\n")
		b.WriteString(dimStyle.Render("Add a markdown file with: papertrail file.md") + "\n\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	if len(m.docs.Items()) == 0 {
		b.WriteString("\n" + dimStyle.Render("The library is empty.") + "\n")
		b.WriteString(dimStyle.Render("Supported file format: Markdown (.md)") + "\n")
		b.WriteString("\n" + dimStyle.Render("q: quit"))
		return b.String()
	}
	b.WriteString(m.docs.View())
	return b.String()
}

func (m *appModel) viewReader() string {
	if m.showToc {
		return m.viewToc()
	}
	if m.showMarks {
		return m.viewMarks()
	}

	var b strings.Builder

	if !m.sess.ReaderMode() {
		title := m.sess.Title()
		if m.typingTarget != "" {
			runes := []rune(m.typingTarget)
			n := m.typed
			if n > len(runes) {
				n = len(runes)
			}
			title = string(runes[:n]) + "▌"
		}
		header := titleStyle.Render(m.sess.Document().Name) + statusStyle.Render(title)
		if _, ok := m.sess.CurrentBookmark(); ok {
			header += markStyle.Render(" ♥")
		}
		b.WriteString(header + "\n\n")
	}

	b.WriteString(m.vp.View())
	b.WriteString("\n")

	if !m.sess.ReaderMode() {
		status := statusStyle.Render(fmt.Sprintf("Page %d of %d", m.sess.Page()+1, m.sess.PageCount()))
		if m.sess.Flipping() {
			status += dimStyle.Render(" turning...")
		}
		b.WriteString(status + "\n")
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

func (m *appModel) viewToc() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Table of Contents") + "\n\n")

	toc := m.sess.Toc()
	if len(toc) == 0 {
		b.WriteString(dimStyle.Render("No headings found") + "\n")
	}
	for i, item := range toc {
		indent := strings.Repeat("  ", item.Level-1)
		line := indent + item.Text
		if item.IsBookmarked {
			line += markStyle.Render(" ♥")
		}
		switch {
		case i == m.tocCursor:
			b.WriteString(selectedStyle.Render("▸ "+line) + "\n")
		case item.Index == m.sess.Page():
			b.WriteString(statusStyle.Render("  "+line+" (current)") + "\n")
		default:
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("j/k navigate · enter go · esc close"))
	return b.String()
}

func (m *appModel) viewMarks() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bookmarks") + "\n\n")

	marks := m.sess.Bookmarks()
	if len(marks) == 0 {
		b.WriteString(dimStyle.Render("No bookmarks yet. Press m while reading to add one.") + "\n")
	}
	for i, mark := range marks {
		line := fmt.Sprintf("%s · page %d · %s",
			mark.Title, mark.SectionIndex+1, mark.CreatedAt.Format("Jan 2 15:04"))
		if i == m.mkCursor {
			b.WriteString(selectedStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("j/k navigate · enter go · d delete · esc close"))
	return b.String()
}
