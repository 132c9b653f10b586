package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// IntegrityBar shows the fraction of links still intact in the theme's
// link colour and the torn remainder in its torn colour.
func IntegrityBar(ratio float64, width int, t Theme) string {
	intact := int(ratio*float64(width) + 0.5)
	intact = max(0, min(width, intact))

	kept := lipgloss.NewStyle().Foreground(t.Link).Render(strings.Repeat("━", intact))
	lost := lipgloss.NewStyle().Foreground(t.Torn).Render(strings.Repeat("╌", width-intact))
	return kept + lost
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws the last width values scaled between their own minimum
// and maximum. A flat series sits on the bottom level.
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(color)
	if len(values) == 0 {
		return style.Render(strings.Repeat(" ", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	out := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if hi > lo {
			level = int((v - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		out[i] = sparkLevels[level]
	}
	return style.Render(string(out))
}
