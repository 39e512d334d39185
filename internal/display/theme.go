package display

import "github.com/charmbracelet/lipgloss"

// Palette colours. Greens for the journey, amber for money, red for
// problems, slate for chrome.
const (
	colorLeaf   = lipgloss.Color("#4ade80")
	colorMint   = lipgloss.Color("#bbf7d0")
	colorSky    = lipgloss.Color("#7dd3fc")
	colorAmber  = lipgloss.Color("#fbbf24")
	colorRose   = lipgloss.Color("#fb7185")
	colorText   = lipgloss.Color("#e2e8f0")
	colorMuted  = lipgloss.Color("#64748b")
	colorDim    = lipgloss.Color("#475569")
	colorChrome = lipgloss.Color("#1e293b")
)

// Kind selects how a scrollback line is styled.
type Kind int

const (
	KindBody Kind = iota
	KindChat
	KindStep
	KindHint
	KindUrgent
	KindEcho
)

var kindStyles = map[Kind]lipgloss.Style{
	KindBody:   lipgloss.NewStyle().Foreground(colorText),
	KindChat:   lipgloss.NewStyle().Foreground(colorSky),
	KindStep:   lipgloss.NewStyle().Foreground(colorMint).Bold(true),
	KindHint:   lipgloss.NewStyle().Foreground(colorMuted),
	KindUrgent: lipgloss.NewStyle().Foreground(colorRose),
	KindEcho:   lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
}

func styleFor(k Kind) lipgloss.Style {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return kindStyles[KindBody]
}

var (
	// BannerStyle colours the startup banner.
	BannerStyle = lipgloss.NewStyle().Foreground(colorLeaf)

	barStyle    = lipgloss.NewStyle().Background(colorChrome).Foreground(colorMuted)
	barLabel    = lipgloss.NewStyle().Foreground(colorMuted)
	barValue    = lipgloss.NewStyle().Foreground(colorText)
	barMoney    = lipgloss.NewStyle().Foreground(colorAmber).Bold(true)
	barBusy     = lipgloss.NewStyle().Foreground(colorSky)
	dotLeader   = lipgloss.NewStyle().Foreground(colorDim)
	moneyStyle  = lipgloss.NewStyle().Foreground(colorAmber)
	promptStyle = lipgloss.NewStyle().Foreground(colorLeaf)
)
