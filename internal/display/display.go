// Package display is the terminal front end of the booking wizard.
//
// A [UI] renders a one-line status bar (step, running total, compare
// count, a spinner while the journey is busy) above an input prompt.
// Everything else is scrollback: lines are handed to the Bubble Tea
// program, which prints them above the live area so writes from other
// goroutines never tear the prompt.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/pricing"
)

// Status is what the bar shows. The UI polls it, so it must be cheap.
type Status struct {
	Step    domain.Step
	Total   float64
	Compare int
}

// StatusFunc reports the current journey status.
type StatusFunc func() Status

// UI owns the terminal while Run is active. Emit and the Print helpers
// may be called from any goroutine once WaitReady has returned.
type UI struct {
	program *tea.Program
	status  StatusFunc
	inputCh chan string
	readyCh chan struct{}
	running atomic.Bool
}

// NewUI creates the display. Nothing is drawn until Run.
func NewUI(status StatusFunc) *UI {
	return &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
	}
}

// Emit writes one styled, indented line to the scrollback.
func (u *UI) Emit(kind Kind, text string) {
	if kind == KindEcho {
		u.Println(promptStyle.Render(promptText) + styleFor(kind).Render(text))
		return
	}
	u.Println(styleFor(kind).Render(indent + text))
}

// Println writes raw text to the scrollback, or to stdout when the
// program is not running.
func (u *UI) Println(a ...any) {
	if u.running.Load() {
		u.program.Println(a...)
		return
	}
	fmt.Println(a...)
}

func (u *UI) PrintChat(text string)        { u.Emit(KindChat, text) }
func (u *UI) PrintStep(text string)        { u.Emit(KindStep, text) }
func (u *UI) PrintInstruction(text string) { u.Emit(KindBody, text) }
func (u *UI) PrintHint(text string)        { u.Emit(KindHint, text) }
func (u *UI) PrintUrgent(text string)      { u.Emit(KindUrgent, text) }
func (u *UI) PrintUserInput(text string)   { u.Emit(KindEcho, text) }

// PrintPriceLine prints a label with a dot leader and the amount.
func (u *UI) PrintPriceLine(label string, amount float64) {
	u.Println(PriceLine(label, amount, priceColumns))
}

// PriceLine renders "label ....... £12.34" so the amount ends at width.
func PriceLine(label string, amount float64, width int) string {
	money := pricing.FormatGBP(amount)
	gap := max(width-len(label)-len(money), 1)
	return styleFor(KindBody).Render(indent+label) +
		dotLeader.Render(" "+strings.Repeat(".", gap)+" ") +
		moneyStyle.Render(money)
}

// InputChan delivers each line the user submits.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// WaitReady blocks until the event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit stops the event loop; Run then returns.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run takes over the terminal and blocks until Quit or ctrl+c.
func (u *UI) Run() error {
	u.program = tea.NewProgram(u.newModel())
	u.running.Store(true)
	_, err := u.program.Run()
	u.running.Store(false)
	return err
}

const (
	indent       = "  "
	promptText   = "skip> "
	priceColumns = 32
	inputLimit   = 200
)

func (u *UI) newModel() model {
	in := textinput.New()
	// Keep the prompt unstyled; ANSI bytes in it throw off the width math.
	in.Prompt = promptText
	in.PromptStyle = promptStyle
	in.TextStyle = styleFor(KindBody)
	in.Cursor.Style = promptStyle
	in.CharLimit = inputLimit
	in.Width = 60
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(barBusy))

	m := model{
		status:  u.status,
		input:   in,
		spin:    sp,
		lines:   u.inputCh,
		readyCh: u.readyCh,
		echo:    u.PrintUserInput,
	}
	m.current = m.poll()
	return m
}
