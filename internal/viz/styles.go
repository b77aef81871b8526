package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the lipgloss styles for one theme.
type Styles struct {
	Panel           lipgloss.Style
	Title           lipgloss.Style
	Subtitle        lipgloss.Style
	Body            lipgloss.Style
	Selected        lipgloss.Style
	Subtle          lipgloss.Style
	Label           lipgloss.Style
	Value           lipgloss.Style
	KeyHint         lipgloss.Style
	Math            lipgloss.Style
	StatusRunning   lipgloss.Style
	StatusPaused    lipgloss.Style
	StatusRecording lipgloss.Style
	Header          lipgloss.Style
	SparkHigh       lipgloss.Style
	SparkMid        lipgloss.Style
	SparkLow        lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Subtitle: lipgloss.NewStyle().Italic(true).Foreground(t.Secondary),
		Body:     lipgloss.NewStyle().Foreground(t.Text),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Subtle:          lipgloss.NewStyle().Foreground(t.Muted),
		Label:           lipgloss.NewStyle().Foreground(t.Secondary).Width(8),
		Value:           lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		KeyHint:         lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Math:            lipgloss.NewStyle().Foreground(t.Accent),
		StatusRunning:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		StatusPaused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		StatusRecording: lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		SparkHigh: lipgloss.NewStyle().Foreground(t.Success),
		SparkMid:  lipgloss.NewStyle().Foreground(t.Warning),
		SparkLow:  lipgloss.NewStyle().Foreground(t.Error),
	}
}

// GradientText blends each rune's colour from start to end in Lab space.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}
	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
		out.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(r)))
	}
	return out.String()
}

func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	if frame < 0 {
		frame = -frame
	}
	return spinners[frame%len(spinners)]
}

// Slider draws a track of width cells with a knob at ratio in [0,1].
func Slider(ratio float64, width int, st Styles) string {
	if width < 2 {
		width = 2
	}
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	knob := int(math.Round(ratio * float64(width-1)))
	return st.Value.Render(strings.Repeat("━", knob)) +
		st.Selected.Render("●") +
		st.Subtle.Render(strings.Repeat("─", width-1-knob))
}

// SparklineChart renders the last width values as block heights.
func SparklineChart(values []float64, width int, st Styles) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var out strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			out.WriteString(st.SparkHigh.Render(c))
		case norm > 0.3:
			out.WriteString(st.SparkMid.Render(c))
		default:
			out.WriteString(st.SparkLow.Render(c))
		}
	}
	return out.String()
}

// BoxWithTitle renders content in a rounded panel with title on top.
func BoxWithTitle(title, content string, width int, st Styles) string {
	return st.Panel.Width(width).Render(st.Title.Render(title) + "\n" + content)
}

func Separator(width int, st Styles) string {
	if width < 8 {
		return st.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return st.Subtle.Render(left + " ◆ " + right)
}

// Dial draws a Braille clock face of size cells with a hand at phase
// radians, measured clockwise from twelve o'clock.
func Dial(phase float64, size int) string {
	if size < 2 {
		size = 2
	}
	c := NewCanvas(size, size/2)
	w, h := c.Dots()
	cx, cy := float64(w-1)/2, float64(h-1)/2
	r := math.Min(cx, cy)
	for i := 0; i < 48; i++ {
		a := 2 * math.Pi * float64(i) / 48
		c.Set(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy+r*math.Sin(a))))
	}
	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		phase = 0
	}
	hx := cx + 0.8*r*math.Sin(phase)
	hy := cy - 0.8*r*math.Cos(phase)
	c.DrawLine(int(math.Round(cx)), int(math.Round(cy)), int(math.Round(hx)), int(math.Round(hy)))
	return strings.TrimSuffix(c.String(), "\n")
}
