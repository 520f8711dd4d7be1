// Package theme defines the color palettes for the atlas dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps color roles to concrete colors.
type Theme struct {
	Name         string
	Background   lipgloss.Color // app background
	Surface      lipgloss.Color // card and panel fill
	SurfaceHover lipgloss.Color // selected row, active tab
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused card
	TextDim      lipgloss.Color // hints, axes
	TextMuted    lipgloss.Color // labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Income       lipgloss.Color
	Expense      lipgloss.Color
	Transfer     lipgloss.Color
	Warning      lipgloss.Color
	Caution      lipgloss.Color
}

// Active is the theme used for rendering.
var Active = FlexokiDark

// FlexokiDark is the default: warm ink on paper-black.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Income:       lipgloss.Color("#879A39"),
	Expense:      lipgloss.Color("#D14D41"),
	Transfer:     lipgloss.Color("#4385BE"),
	Warning:      lipgloss.Color("#DA702C"),
	Caution:      lipgloss.Color("#D0A215"),
}

// FlexokiLight is the paper-white variant.
var FlexokiLight = Theme{
	Name:         "flexoki-light",
	Background:   lipgloss.Color("#FFFCF0"),
	Surface:      lipgloss.Color("#F2F0E5"),
	SurfaceHover: lipgloss.Color("#E6E4D9"),
	Border:       lipgloss.Color("#CECDC3"),
	BorderAccent: lipgloss.Color("#24837B"),
	TextDim:      lipgloss.Color("#B7B5AC"),
	TextMuted:    lipgloss.Color("#6F6E69"),
	TextPrimary:  lipgloss.Color("#100F0F"),
	Accent:       lipgloss.Color("#24837B"),
	AccentBright: lipgloss.Color("#3AA99F"),
	Income:       lipgloss.Color("#66800B"),
	Expense:      lipgloss.Color("#AF3029"),
	Transfer:     lipgloss.Color("#205EA6"),
	Warning:      lipgloss.Color("#BC5215"),
	Caution:      lipgloss.Color("#AD8301"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Income:       lipgloss.Color("#A6E3A1"),
	Expense:      lipgloss.Color("#F38BA8"),
	Transfer:     lipgloss.Color("#74C7EC"),
	Warning:      lipgloss.Color("#FAB387"),
	Caution:      lipgloss.Color("#F9E2AF"),
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Income:       lipgloss.Color("2"),
	Expense:      lipgloss.Color("1"),
	Transfer:     lipgloss.Color("4"),
	Warning:      lipgloss.Color("3"),
	Caution:      lipgloss.Color("11"),
}

// All available themes.
var All = []Theme{FlexokiDark, FlexokiLight, CatppuccinMocha, Terminal}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by name, falling back to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
