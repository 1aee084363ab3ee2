package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Warning:     "#ff00ff",
	}
}

func TestNewPalette_Fallbacks(t *testing.T) {
	base := darkTheme()

	palette := NewPalette(base)
	if palette.Today != lipgloss.Color(base.Accent) {
		t.Fatalf("Today = %q, want accent %q", palette.Today, base.Accent)
	}
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
	if palette.Modal.Backdrop != lipgloss.Color(base.BgSelection) {
		t.Fatalf("Modal.Backdrop = %q, want %q", palette.Modal.Backdrop, base.BgSelection)
	}
	if base.BaseBg != "" {
		t.Fatal("NewPalette must not modify the theme")
	}
}

func TestPalette_BlockText(t *testing.T) {
	palette := NewPalette(darkTheme())

	tests := []struct {
		name  string
		color string
		want  lipgloss.Color
	}{
		{name: "pastel_gets_dark_text", color: "#f8c8dc", want: "#101010"},
		{name: "dark_gets_light_text", color: "#2b1d5c", want: "#ffffff"},
		{name: "invalid_falls_back_to_fg", color: "pink", want: "#101010"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := palette.Block(tt.color, false, false).Fg; got != tt.want {
				t.Errorf("Block(%q).Fg = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func TestPalette_BlockShades(t *testing.T) {
	palette := NewPalette(darkTheme())
	const pink = "#f8c8dc"

	plain := palette.Block(pink, false, false)
	if plain.Bg != pink {
		t.Errorf("plain Bg = %q, want %q", plain.Bg, pink)
	}

	past := palette.Block(pink, true, false)
	if past.Bg != lipgloss.Color(darkenColor(pink)) {
		t.Errorf("past Bg = %q, want %q", past.Bg, darkenColor(pink))
	}

	selected := palette.Block(pink, false, true)
	if selected.Bg == plain.Bg {
		t.Error("selected block should use another shade")
	}
}

func TestDarkenColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#ffffff", "#7f7f7f"},
		{"#101010", "#282828"},
		{"#ff0000", "#7f2828"},
		{"invalid", "invalid"},
	}
	for _, tt := range tests {
		if got := darkenColor(tt.in); got != tt.want {
			t.Errorf("darkenColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBlendColors(t *testing.T) {
	if got := blendColors("#000000", "#ffffff", 0.5); got != "#7f7f7f" {
		t.Errorf("blend = %q", got)
	}
	if got := blendColors("#000000", "#ffffff", 2); got != "#ffffff" {
		t.Errorf("ratio must clamp, got %q", got)
	}
	if got := blendColors("bad", "#ffffff", 0.5); got != "bad" {
		t.Errorf("invalid input should pass through, got %q", got)
	}
}

func TestContrastRatio(t *testing.T) {
	if got := contrastRatio("#000000", "#ffffff"); got < 20.9 || got > 21.1 {
		t.Errorf("black on white = %f, want 21", got)
	}
	if got := contrastRatio("#777777", "#777777"); got != 1 {
		t.Errorf("same color = %f, want 1", got)
	}
}
