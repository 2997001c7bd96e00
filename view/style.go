package view

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/super-spinner/spinner"
)

// Palette
var (
	RgbBackground = tcell.NewRGBColor(16, 12, 28)
	RgbFrame      = tcell.NewRGBColor(120, 90, 200)
	RgbSide       = tcell.NewRGBColor(110, 110, 130)
	RgbCenter     = tcell.NewRGBColor(255, 215, 64)
	RgbHint       = tcell.NewRGBColor(150, 150, 170)
	RgbError      = tcell.NewRGBColor(255, 80, 80)
	RgbLoading    = tcell.NewRGBColor(90, 200, 255)

	RgbTierSmall = tcell.NewRGBColor(120, 220, 120)
	RgbTierBig   = tcell.NewRGBColor(255, 160, 40)
	RgbTierMega  = tcell.NewRGBColor(255, 60, 200)
)

var (
	styleBase    = tcell.StyleDefault.Background(RgbBackground)
	styleFrame   = styleBase.Foreground(RgbFrame)
	styleSide    = styleBase.Foreground(RgbSide)
	styleCenter  = styleBase.Foreground(RgbCenter).Bold(true)
	styleHint    = styleBase.Foreground(RgbHint)
	styleError   = styleBase.Foreground(RgbError).Bold(true)
	styleLoading = styleBase.Foreground(RgbLoading)
	styleTitle   = styleBase.Foreground(RgbCenter).Bold(true)
)

func tierStyle(t spinner.WinTier) tcell.Style {
	switch t {
	case spinner.TierMega:
		return styleBase.Foreground(RgbTierMega).Bold(true).Blink(true)
	case spinner.TierBig:
		return styleBase.Foreground(RgbTierBig).Bold(true)
	default:
		return styleBase.Foreground(RgbTierSmall).Bold(true)
	}
}

func tierBanner(t spinner.WinTier) string {
	switch t {
	case spinner.TierMega:
		return "MEGA WIN"
	case spinner.TierBig:
		return "BIG WIN"
	default:
		return "WIN"
	}
}

var printer = message.NewPrinter(language.English)

// formatValue renders a prize with thousands separators
func formatValue(v int) string {
	return printer.Sprintf("%d", v)
}
