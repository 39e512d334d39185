package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/pricing"
)

const (
	pollEvery   = 250 * time.Millisecond
	historySize = 50
	defaultCols = 80
)

type pollMsg time.Time

type model struct {
	status  StatusFunc
	current Status
	input   textinput.Model
	spin    spinner.Model
	lines   chan<- string
	readyCh chan struct{}
	echo    func(string)
	width   int

	history []string
	recall  int // index into history while browsing with up/down; len(history) when not
}

func (m model) Init() tea.Cmd {
	ready := m.readyCh
	return tea.Batch(
		textinput.Blink,
		m.spin.Tick,
		pollAfter(),
		func() tea.Msg {
			close(ready)
			return nil
		},
	)
}

func pollAfter() tea.Cmd {
	return tea.Tick(pollEvery, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (m model) poll() Status {
	if m.status == nil {
		return Status{}
	}
	return m.status()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.input.Reset()
			m.recall = len(m.history)
			return m, nil
		case tea.KeyUp:
			m = m.browse(-1)
			return m, nil
		case tea.KeyDown:
			m = m.browse(1)
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(promptText) {
			m.input.Width = msg.Width - len(promptText)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case pollMsg:
		m.current = m.poll()
		return m, tea.Batch(pollAfter(), tea.SetWindowTitle(titleStr(m.current)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the typed line to the app and echoes it. The echo runs as a
// command because Println would deadlock inside Update.
func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}
	m.history = remember(m.history, line)
	m.recall = len(m.history)
	m.lines <- line

	echo := m.echo
	return m, func() tea.Msg {
		if echo != nil {
			echo(line)
		}
		return nil
	}
}

// browse steps through earlier input; stepping past the newest entry
// clears the prompt.
func (m model) browse(step int) model {
	if len(m.history) == 0 {
		return m
	}
	m.recall = min(max(m.recall+step, 0), len(m.history))
	if m.recall == len(m.history) {
		m.input.Reset()
		return m
	}
	m.input.SetValue(m.history[m.recall])
	m.input.CursorEnd()
	return m
}

func remember(history []string, line string) []string {
	if n := len(history); n > 0 && history[n-1] == line {
		return history
	}
	history = append(history, line)
	if len(history) > historySize {
		history = history[len(history)-historySize:]
	}
	return history
}

func (m model) View() string {
	return m.renderBar() + "\n\n" + m.input.View()
}

func (m model) renderBar() string {
	s := m.current
	fields := []string{
		barLabel.Render(fmt.Sprintf("step %d/%d ", int(s.Step)+1, len(domain.Steps))) + barValue.Render(s.Step.String()),
	}
	if s.Total > 0 {
		fields = append(fields, barLabel.Render("total ")+barMoney.Render(pricing.FormatGBP(s.Total)))
	}
	if s.Compare > 0 {
		fields = append(fields, barLabel.Render(fmt.Sprintf("comparing %d/%d", s.Compare, domain.MaxCompare)))
	}
	if s.Step.Transient() {
		fields = append(fields, m.spin.View()+barBusy.Render(" "+s.Step.String()+"…"))
	}

	width := m.width
	if width <= 0 {
		width = defaultCols
	}
	return barStyle.Width(width).Render(" " + strings.Join(fields, dotLeader.Render(" · ")) + " ")
}

func titleStr(s Status) string {
	if s.Total == 0 {
		return "SkipHire"
	}
	return "SkipHire · " + pricing.FormatGBP(s.Total)
}
