package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

const tagline = "skip hire, compared and booked"

// RenderBanner centres the logo and tagline on the terminal.
func RenderBanner() string {
	return renderBanner(terminalCols())
}

func renderBanner(cols int) string {
	art := BannerStyle.Render(strings.TrimRight(bannerArt, "\n"))
	block := lipgloss.JoinVertical(lipgloss.Center, art, "", styleFor(KindHint).Render(tagline))
	if cols <= lipgloss.Width(block) {
		return block + "\n"
	}
	return lipgloss.PlaceHorizontal(cols, lipgloss.Center, block) + "\n"
}

func terminalCols() int {
	cols, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || cols <= 0 {
		return defaultCols
	}
	return cols
}
