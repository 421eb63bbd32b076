package styles

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/boughdev/bough/internal/config"
)

// Theme is the color palette the CLI renders with.
type Theme struct {
	Primary color.Color // headings and feature names
	Success color.Color
	Error   color.Color
	Warning color.Color
	Muted   color.Color // secondary detail
	Normal  color.Color
}

// family groups the light and dark variants of a theme. A nil variant
// falls back to the other one.
type family struct {
	light *Theme
	dark  *Theme
}

var (
	defaultTheme = Theme{
		Primary: lipgloss.Color("62"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Warning: lipgloss.Color("214"),
		Muted:   lipgloss.Color("240"),
		Normal:  lipgloss.Color("252"),
	}

	draculaTheme = Theme{
		Primary: lipgloss.Color("#bd93f9"),
		Success: lipgloss.Color("#50fa7b"),
		Error:   lipgloss.Color("#ff5555"),
		Warning: lipgloss.Color("#ffb86c"),
		Muted:   lipgloss.Color("#6272a4"),
		Normal:  lipgloss.Color("#f8f8f2"),
	}

	nordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"),
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Warning: lipgloss.Color("#ebcb8b"),
		Muted:   lipgloss.Color("#4c566a"),
		Normal:  lipgloss.Color("#eceff4"),
	}

	nordLightTheme = Theme{
		Primary: lipgloss.Color("#5e81ac"),
		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),
		Warning: lipgloss.Color("#d08770"),
		Muted:   lipgloss.Color("#9a9a9a"),
		Normal:  lipgloss.Color("#2e3440"),
	}

	gruvboxTheme = Theme{
		Primary: lipgloss.Color("#83a598"),
		Success: lipgloss.Color("#b8bb26"),
		Error:   lipgloss.Color("#fb4934"),
		Warning: lipgloss.Color("#fabd2f"),
		Muted:   lipgloss.Color("#665c54"),
		Normal:  lipgloss.Color("#ebdbb2"),
	}

	gruvboxLightTheme = Theme{
		Primary: lipgloss.Color("#076678"),
		Success: lipgloss.Color("#79740e"),
		Error:   lipgloss.Color("#9d0006"),
		Warning: lipgloss.Color("#b57614"),
		Muted:   lipgloss.Color("#928374"),
		Normal:  lipgloss.Color("#3c3836"),
	}

	catppuccinTheme = Theme{
		Primary: lipgloss.Color("#89b4fa"),
		Success: lipgloss.Color("#a6e3a1"),
		Error:   lipgloss.Color("#f38ba8"),
		Warning: lipgloss.Color("#fab387"),
		Muted:   lipgloss.Color("#6c7086"),
		Normal:  lipgloss.Color("#cdd6f4"),
	}

	catppuccinLightTheme = Theme{
		Primary: lipgloss.Color("#1e66f5"),
		Success: lipgloss.Color("#40a02b"),
		Error:   lipgloss.Color("#d20f39"),
		Warning: lipgloss.Color("#fe640b"),
		Muted:   lipgloss.Color("#9ca0b0"),
		Normal:  lipgloss.Color("#4c4f69"),
	}

	// noneTheme renders with terminal defaults, formatting only.
	noneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
	}
)

var families = map[string]family{
	"none":       {light: &noneTheme, dark: &noneTheme},
	"default":    {dark: &defaultTheme},
	"dracula":    {dark: &draculaTheme},
	"nord":       {light: &nordLightTheme, dark: &nordTheme},
	"gruvbox":    {light: &gruvboxLightTheme, dark: &gruvboxTheme},
	"catppuccin": {light: &catppuccinLightTheme, dark: &catppuccinTheme},
}

var current = defaultTheme

// Current returns the active theme.
func Current() Theme {
	return current
}

// Names returns the selectable theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Init activates the configured theme. Call once after loading config,
// before rendering any styled output.
func Init(cfg config.UIConfig) {
	current = selectTheme(cfg)
	apply(current)
}

// selectTheme resolves the configured name and mode to a palette.
// Unknown values warn to stderr and fall back rather than fail: a typo in
// the config must not break the CLI.
func selectTheme(cfg config.UIConfig) Theme {
	fam, ok := families[cfg.Theme]
	if !ok {
		if cfg.Theme != "" {
			fmt.Fprintf(os.Stderr, "warning: unknown theme %q, using default (available: %s)\n",
				cfg.Theme, strings.Join(Names(), ", "))
		}
		fam = families["default"]
	}

	var t *Theme
	switch cfg.Mode {
	case "light":
		t = fam.light
	case "dark":
		t = fam.dark
	case "", "auto":
		if lipgloss.HasDarkBackground(os.Stdin, os.Stderr) {
			t = fam.dark
		} else {
			t = fam.light
		}
	default:
		fmt.Fprintf(os.Stderr, "warning: unknown theme mode %q, using auto (available: auto, light, dark)\n", cfg.Mode)
		if lipgloss.HasDarkBackground(os.Stdin, os.Stderr) {
			t = fam.dark
		} else {
			t = fam.light
		}
	}

	if t == nil {
		if fam.dark != nil {
			t = fam.dark
		} else {
			t = fam.light
		}
	}
	return *t
}
