package display

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/skiphire/internal/domain"
)

func TestPriceLine(t *testing.T) {
	got := PriceLine("Permit", 50, 32)
	if !strings.Contains(got, "Permit") || !strings.Contains(got, "£50.00") {
		t.Fatalf("price line missing parts: %q", got)
	}
	if !strings.Contains(PriceLine(strings.Repeat("x", 40), 1, 32), ". £1.00") {
		t.Fatal("long labels should still get a one-dot leader")
	}
}

func TestRenderBar(t *testing.T) {
	m := model{
		current: Status{Step: domain.StepSearching, Total: 498, Compare: 2},
		spin:    spinner.New(),
		width:   120,
	}
	bar := m.renderBar()
	for _, want := range []string{"step 7/12", "searching", "£498.00", "comparing 2/3"} {
		if !strings.Contains(bar, want) {
			t.Fatalf("bar %q missing %q", bar, want)
		}
	}

	m.current = Status{Step: domain.StepPostcode}
	bar = m.renderBar()
	if strings.Contains(bar, "total") {
		t.Fatalf("bar should hide a zero total: %q", bar)
	}
}

func TestTitle(t *testing.T) {
	if got := titleStr(Status{}); got != "SkipHire" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := titleStr(Status{Total: 12.5}); got != "SkipHire · £12.50" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestBannerIncludesTagline(t *testing.T) {
	for _, cols := range []int{20, 120} {
		if !strings.Contains(renderBanner(cols), tagline) {
			t.Fatalf("banner at %d cols missing tagline", cols)
		}
	}
}

func newTestModel() (model, chan string) {
	lines := make(chan string, 8)
	in := textinput.New()
	in.Focus()
	return model{input: in, lines: lines}, lines
}

func typeLine(t *testing.T, m model, text string) model {
	t.Helper()
	m.input.SetValue(text)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(model)
}

func TestSubmitSendsTrimmedLine(t *testing.T) {
	m, lines := newTestModel()
	m = typeLine(t, m, "  size 6  ")
	if got := <-lines; got != "size 6" {
		t.Fatalf("got %q", got)
	}
	if m.input.Value() != "" {
		t.Fatal("input should be cleared after enter")
	}

	m = typeLine(t, m, "   ")
	select {
	case got := <-lines:
		t.Fatalf("blank input should not be sent, got %q", got)
	default:
	}
}

func TestHistoryBrowse(t *testing.T) {
	m, _ := newTestModel()
	m = typeLine(t, m, "postcode SW1A 1AA")
	m = typeLine(t, m, "next")
	m = typeLine(t, m, "next")

	if len(m.history) != 2 {
		t.Fatalf("repeated lines should collapse, history=%v", m.history)
	}

	m = m.browse(-1)
	if m.input.Value() != "next" {
		t.Fatalf("first up = %q", m.input.Value())
	}
	m = m.browse(-1)
	m = m.browse(-1)
	if m.input.Value() != "postcode SW1A 1AA" {
		t.Fatalf("up past the oldest entry = %q", m.input.Value())
	}
	m = m.browse(1)
	m = m.browse(1)
	if m.input.Value() != "" {
		t.Fatalf("down past the newest entry should clear, got %q", m.input.Value())
	}
}

func TestRememberCapsHistory(t *testing.T) {
	var h []string
	for i := 0; i < historySize+10; i++ {
		h = remember(h, strings.Repeat("x", i+1))
	}
	if len(h) != historySize {
		t.Fatalf("history len %d", len(h))
	}
	if h[len(h)-1] != strings.Repeat("x", historySize+10) {
		t.Fatal("newest entry should be kept")
	}
}
