package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"

	"tableflip.dev/daybook/pkg/calendar"
)

// Mode picks a palette. System follows the terminal background.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// ParseMode reads a config value, defaulting to system when empty.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSystem, nil
	case ModeLight, ModeDark, ModeSystem:
		return m, nil
	default:
		return ModeSystem, fmt.Errorf("theme: unknown mode %q", s)
	}
}

// Palette is the set of named colors a theme is built from.
type Palette struct {
	Dark          bool
	Background    string
	Surface       string
	Primary       string
	Text          string
	TextSecondary string
	Border        string
	Accent        string
	Error         string
	Success       string
	Warning       string
}

var (
	Light = Palette{
		Background:    "#FFFFFF",
		Surface:       "#F8F9FA",
		Primary:       "#007AFF",
		Text:          "#1A1A1A",
		TextSecondary: "#666666",
		Border:        "#E5E5E5",
		Accent:        "#FF6B35",
		Error:         "#FF3B30",
		Success:       "#34C759",
		Warning:       "#FF9500",
	}
	Dark = Palette{
		Dark:          true,
		Background:    "#1A1A1A",
		Surface:       "#2C2C2E",
		Primary:       "#0A84FF",
		Text:          "#F2F2F7",
		TextSecondary: "#8E8E93",
		Border:        "#48484A",
		Accent:        "#FF6B35",
		Error:         "#FF453A",
		Success:       "#30D158",
		Warning:       "#FF9F0A",
	}
)

// Resolve returns the palette for mode. hasDark is consulted only for
// ModeSystem.
func Resolve(mode Mode, hasDark func() bool) Palette {
	switch mode {
	case ModeLight:
		return Light
	case ModeDark:
		return Dark
	}
	if hasDark != nil && hasDark() {
		return Dark
	}
	return Light
}

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Palette Palette
	Header  HeaderTheme
	Grid    GridTheme
	Footer  FooterTheme
	Modal   ModalTheme
}

// HeaderTheme styles the title row above the calendar.
type HeaderTheme struct {
	Title lipgloss.Style
	Mode  lipgloss.Style
}

// GridTheme styles day cells and timeline rows.
type GridTheme struct {
	Day       lipgloss.Style
	OutMonth  lipgloss.Style
	Today     lipgloss.Style
	Selected  lipgloss.Style
	Weekday   lipgloss.Style
	HourLabel lipgloss.Style
	More      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Alert  lipgloss.Style
}

// ModalTheme styles centered form overlays.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Body  lipgloss.Style
}

// Default resolves the system theme against the terminal background.
func Default() Theme {
	return New(Resolve(ModeSystem, termenv.HasDarkBackground))
}

// ForMode builds the theme for a configured mode.
func ForMode(mode Mode) Theme {
	return New(Resolve(mode, termenv.HasDarkBackground))
}

// New builds every style from p.
func New(p Palette) Theme {
	c := lipgloss.Color
	text := lipgloss.NewStyle().Foreground(c(p.Text))
	secondary := lipgloss.NewStyle().Foreground(c(p.TextSecondary))

	return Theme{
		Palette: p,
		Header: HeaderTheme{
			Title: text.Bold(true),
			Mode:  secondary,
		},
		Grid: GridTheme{
			Day:       text,
			OutMonth:  secondary.Faint(true),
			Today:     lipgloss.NewStyle().Foreground(c(p.Primary)).Bold(true),
			Selected:  lipgloss.NewStyle().Reverse(true),
			Weekday:   secondary.Bold(true),
			HourLabel: secondary,
			More:      secondary.Italic(true),
		},
		Footer: FooterTheme{
			Help:   secondary,
			Status: secondary,
			Alert:  lipgloss.NewStyle().Foreground(c(p.Error)).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(c(p.Border)).
				Padding(1, 2),
			Title: text.Bold(true),
			Label: secondary,
			Body:  text,
		},
	}
}

// Event styles an event chip in its calendar color.
func (t Theme) Event(color string) lipgloss.Style {
	if color == "" {
		color = calendar.FallbackColor
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(calendar.TextColorFor(color)))
}

// Swatch styles a calendar color marker.
func (t Theme) Swatch(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
