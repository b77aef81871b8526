package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the terminal colour scheme. Scenes always draw on paper;
// Adapt maps their ink into the theme.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	// Dark themes flip scene lightness so dark ink stays visible.
	Dark bool
	// Mono, when set, replaces every hue with Primary's.
	Mono bool
}

var (
	ThemePaper = Theme{
		Name:       "paper",
		Primary:    lipgloss.Color("#111111"),
		Secondary:  lipgloss.Color("#666666"),
		Accent:     lipgloss.Color("#c0392b"),
		Background: lipgloss.Color("#fafafa"),
		Text:       lipgloss.Color("#111111"),
		Muted:      lipgloss.Color("#999999"),
		Success:    lipgloss.Color("#27ae60"),
		Warning:    lipgloss.Color("#e67e22"),
		Error:      lipgloss.Color("#c0392b"),
	}

	ThemeInk = Theme{
		Name:       "ink",
		Primary:    lipgloss.Color("#eeeeee"),
		Secondary:  lipgloss.Color("#aaaaaa"),
		Accent:     lipgloss.Color("#ff6b5b"),
		Background: lipgloss.Color("#111111"),
		Text:       lipgloss.Color("#eeeeee"),
		Muted:      lipgloss.Color("#555555"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4444"),
		Dark:       true,
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Success:    lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
		Dark:       true,
		Mono:       true,
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#00a8cc"),
		Secondary:  lipgloss.Color("#0077be"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
		Dark:       true,
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
		Dark:       true,
	}

	Themes = []Theme{
		ThemePaper,
		ThemeInk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to paper.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePaper
}

// NextTheme returns the theme after name, wrapping.
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

// Adapt maps a scene colour drawn for a light page into this theme.
func (t Theme) Adapt(c color.NRGBA) lipgloss.Color {
	if c.A == 0 {
		return t.Text
	}
	cc := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cc.Hsl()
	if t.Mono {
		ph, ps, _ := t.primary().Hsl()
		h, s = ph, ps
	}
	if t.Dark {
		// keep mid-greys readable after the flip
		l = 0.25 + 0.7*(1-l)
	}
	return lipgloss.Color(colorful.Hsl(h, s, l).Clamped().Hex())
}

func (t Theme) primary() colorful.Color {
	c, err := colorful.Hex(string(t.Primary))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}
