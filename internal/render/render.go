// Package render is the markdown rendering boundary: it hands a
// section's raw markdown to glamour and returns terminal markup. The
// core never parses markdown beyond heading-line detection; everything
// else is the renderer's business.
package render

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/papertrail/papertrail/internal/settings"
)

const (
	minWrapWidth = 20
	margin       = 4
)

// Renderer renders sections at a wrap width derived from the terminal
// width and the typography settings.
type Renderer struct {
	termWidth int
	prefs     settings.Settings
}

// New returns a renderer for the given terminal width and settings.
func New(termWidth int, prefs settings.Settings) *Renderer {
	return &Renderer{termWidth: termWidth, prefs: prefs}
}

// SetWidth updates the terminal width.
func (r *Renderer) SetWidth(w int) { r.termWidth = w }

// SetSettings updates the typography settings.
func (r *Renderer) SetSettings(prefs settings.Settings) { r.prefs = prefs }

// Width returns the effective wrap width. Larger font sizes narrow the
// line, approximating bigger text on a fixed-width terminal.
func (r *Renderer) Width() int {
	base := r.termWidth - margin
	size := r.prefs.FontSize
	if size <= 0 {
		size = settings.DefaultFontSize
	}
	w := base * settings.DefaultFontSize / size
	if w > base {
		w = base
	}
	if w < minWrapWidth {
		w = minWrapWidth
	}
	return w
}

// Render converts a section's markdown to styled terminal text. When
// glamour fails the section falls back to word-wrapped plain text; a
// render problem must not hide the content.
func (r *Renderer) Render(section string) string {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.Width()),
	)
	if err != nil {
		return wordwrap.String(section, r.Width())
	}
	out, err := tr.Render(section)
	if err != nil {
		return wordwrap.String(section, r.Width())
	}
	return out
}
