package ui

import (
	"strings"

	"github.com/idilsaglam/ohmyblood/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Warn string
	Sys, Dia                                   string
	CornerTL, CornerTR, CornerBL, CornerBR     string
	H, V                                       string
	BarFull, BarEmpty                          string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: "\033[92m", Error: "\033[91m", Warn: "\033[93m",
			Sys: "\033[91m", Dia: "\033[94m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			BarFull: "▰", BarEmpty: "▱",
		}
	case "mono":
		disableColor = true
		current = Theme{
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			BarFull: "#", BarEmpty: ".",
		}
	default: // classic
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Warn: fgYellow,
			Sys: fgRed, Dia: fgBlue,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			BarFull: "█", BarEmpty: "░",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }

// ClassColor picks the palette entry for a severity label.
func (t Theme) ClassColor(c model.Classification) string {
	switch c {
	case model.VeryHigh:
		return t.Error
	case model.High:
		return t.Warn
	default:
		return t.Success
	}
}
