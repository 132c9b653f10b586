package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the live view by what is on screen rather than by
// generic role.
type Theme struct {
	Name   string
	Link   lipgloss.Color // active constraints
	Anchor lipgloss.Color // cells holding a pinned particle
	Torn   lipgloss.Color // torn counter and the lost part of the integrity bar
	Canvas lipgloss.Color // canvas background

	Heading lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeLinen = Theme{
		Name:    "linen",
		Link:    lipgloss.Color("#e8dcc4"),
		Anchor:  lipgloss.Color("#c0392b"),
		Torn:    lipgloss.Color("#e67e22"),
		Canvas:  lipgloss.Color("#1c1a17"),
		Heading: lipgloss.Color("#f5efe0"),
		Text:    lipgloss.Color("#ddd5c4"),
		Muted:   lipgloss.Color("#7a7265"),
		Running: lipgloss.Color("#8fbf6a"),
		Paused:  lipgloss.Color("#e6b450"),
		Error:   lipgloss.Color("#ff5f56"),
	}

	ThemeDenim = Theme{
		Name:    "denim",
		Link:    lipgloss.Color("#6f8fbf"),
		Anchor:  lipgloss.Color("#f2c14e"),
		Torn:    lipgloss.Color("#f78154"),
		Canvas:  lipgloss.Color("#101826"),
		Heading: lipgloss.Color("#c9d6ea"),
		Text:    lipgloss.Color("#b8c4d6"),
		Muted:   lipgloss.Color("#4d5f7a"),
		Running: lipgloss.Color("#5fd0a0"),
		Paused:  lipgloss.Color("#f2c14e"),
		Error:   lipgloss.Color("#f25f5c"),
	}

	ThemeSilk = Theme{
		Name:    "silk",
		Link:    lipgloss.Color("#f4c2d7"),
		Anchor:  lipgloss.Color("#ffffff"),
		Torn:    lipgloss.Color("#b388eb"),
		Canvas:  lipgloss.Color("#24121c"),
		Heading: lipgloss.Color("#ffe3ee"),
		Text:    lipgloss.Color("#f0d5e0"),
		Muted:   lipgloss.Color("#8a6577"),
		Running: lipgloss.Color("#9be3c5"),
		Paused:  lipgloss.Color("#ffd38a"),
		Error:   lipgloss.Color("#ff6b81"),
	}

	ThemeBurlap = Theme{
		Name:    "burlap",
		Link:    lipgloss.Color("#b08d57"),
		Anchor:  lipgloss.Color("#5b8c5a"),
		Torn:    lipgloss.Color("#d1495b"),
		Canvas:  lipgloss.Color("#1e1810"),
		Heading: lipgloss.Color("#e3cfa6"),
		Text:    lipgloss.Color("#cdb994"),
		Muted:   lipgloss.Color("#6e5d40"),
		Running: lipgloss.Color("#8cb369"),
		Paused:  lipgloss.Color("#edae49"),
		Error:   lipgloss.Color("#d1495b"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Link:    lipgloss.Color("#ffffff"),
		Anchor:  lipgloss.Color("#888888"),
		Torn:    lipgloss.Color("#bbbbbb"),
		Canvas:  lipgloss.Color("#000000"),
		Heading: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#666666"),
		Running: lipgloss.Color("#ffffff"),
		Paused:  lipgloss.Color("#999999"),
		Error:   lipgloss.Color("#ffffff"),
	}

	// Themes is the cycle order for the t key; the first is the default.
	Themes = []Theme{ThemeLinen, ThemeDenim, ThemeSilk, ThemeBurlap, ThemeMono}
)

// GetTheme returns the named theme, or the first one if there is none.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) linkStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Link).Background(t.Canvas)
}

func (t Theme) anchorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Anchor).Background(t.Canvas).Bold(true)
}
