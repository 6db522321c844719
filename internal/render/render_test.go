package render

import (
	"strings"
	"testing"

	"github.com/papertrail/papertrail/internal/settings"
)

func TestWidthScalesWithFontSize(t *testing.T) {
	base := settings.Defaults()

	r := New(100, base)
	defaultWidth := r.Width()
	if defaultWidth != 96 {
		t.Errorf("expected full width minus margin at default size, got %d", defaultWidth)
	}

	big := base
	big.FontSize = 36
	r.SetSettings(big)
	if w := r.Width(); w >= defaultWidth {
		t.Errorf("larger font should narrow the line, got %d (was %d)", w, defaultWidth)
	}

	small := base
	small.FontSize = 9
	r.SetSettings(small)
	if w := r.Width(); w != defaultWidth {
		t.Errorf("smaller font must not exceed the terminal, got %d", w)
	}
}

func TestWidthMinimum(t *testing.T) {
	r := New(10, settings.Defaults())
	if w := r.Width(); w < minWrapWidth {
		t.Errorf("width %d below minimum %d", w, minWrapWidth)
	}
}

func TestRenderKeepsContent(t *testing.T) {
	r := New(80, settings.Defaults())
	out := r.Render("# Title\n\nsome body text\n")
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output lost the heading: %q", out)
	}
	if !strings.Contains(out, "some body text") {
		t.Errorf("rendered output lost the body: %q", out)
	}
}
