package view

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/super-spinner/reel"
	"github.com/lixenwraith/super-spinner/spinner"
)

// RowsPerItem is the terminal rows between consecutive reel items
const RowsPerItem = 2

const (
	boxWidth     = 26
	loadingDots  = 4
	framesPerDot = 8
)

// View renders the reel and banners to a tcell screen
// It implements spinner.Sink and spinner.LoadObserver; every method runs on the loop goroutine
type View struct {
	screen tcell.Screen
	strip  *reel.Strip
	window int

	offset     float64
	center     int
	spinning   bool
	tapEnabled bool
	loading    bool
	muted      bool

	resultShown bool
	resultValue int
	resultTier  spinner.WinTier
	errMsg      string

	frame int
}

// New creates a view of strip showing window items, even windows are widened by one
func New(screen tcell.Screen, strip *reel.Strip, window int) *View {
	if window < 1 {
		window = 1
	}
	if window%2 == 0 {
		window++
	}
	return &View{screen: screen, strip: strip, window: window}
}

var (
	_ spinner.Sink         = (*View)(nil)
	_ spinner.LoadObserver = (*View)(nil)
)

func (v *View) OnTravelUpdated(offset float64) { v.offset = offset }

func (v *View) OnCenterChanged(index int) { v.center = index }

func (v *View) OnSpinStarted() {
	v.spinning = true
	v.tapEnabled = false
	v.resultShown = false
	v.errMsg = ""
}

func (v *View) OnSpinSettled() { v.spinning = false }

func (v *View) OnResultShown(value int, tier spinner.WinTier) {
	v.resultShown = true
	v.resultValue = value
	v.resultTier = tier
}

func (v *View) OnResultDismissed() { v.resultShown = false }

func (v *View) OnTapEnabled() { v.tapEnabled = true }

func (v *View) OnError(message string) {
	v.errMsg = message
	v.spinning = false
}

func (v *View) OnLoadingChanged(loading bool) {
	v.loading = loading
	if loading {
		v.errMsg = ""
	}
}

// SetMuted updates the mute indicator
func (v *View) SetMuted(muted bool) { v.muted = muted }

// Resize resynchronizes the screen after a terminal size change
func (v *View) Resize() { v.screen.Sync() }

// Draw renders one frame and shows it
func (v *View) Draw() {
	v.frame++
	w, h := v.screen.Size()
	v.screen.SetStyle(styleBase)
	v.screen.Clear()

	rows := v.window*RowsPerItem - 1
	total := rows + 7
	top := max(0, (h-total)/2)
	bw := min(boxWidth, w)
	left := max(0, (w-bw)/2)

	v.drawCentered(top, w, "S U P E R   S P I N N E R", styleTitle)

	boxTop := top + 2
	v.drawFrame(left, boxTop, bw, rows+2)
	v.drawReel(left, boxTop+1, bw, rows)

	status := boxTop + rows + 3
	v.drawStatus(status, w)
	v.drawCentered(status+1, w, v.hint(), styleHint)

	v.screen.Show()
}

func (v *View) drawFrame(x, y, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	for i := x + 1; i < x+w-1; i++ {
		v.screen.SetContent(i, y, tcell.RuneHLine, nil, styleFrame)
		v.screen.SetContent(i, y+h-1, tcell.RuneHLine, nil, styleFrame)
	}
	for j := y + 1; j < y+h-1; j++ {
		v.screen.SetContent(x, j, tcell.RuneVLine, nil, styleFrame)
		v.screen.SetContent(x+w-1, j, tcell.RuneVLine, nil, styleFrame)
	}
	v.screen.SetContent(x, y, tcell.RuneULCorner, nil, styleFrame)
	v.screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, styleFrame)
	v.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, styleFrame)
	v.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, styleFrame)
}

// drawReel places items around the fractional reel position; item k sits
// RowsPerItem*(k-pos) rows below the center row
func (v *View) drawReel(x, y, w, rows int) {
	if v.strip == nil || !v.strip.Built() {
		return
	}
	spacing := v.strip.ItemSpacing()
	if spacing <= reel.Epsilon {
		return
	}
	styles := v.strip.Highlight(v.offset)
	if len(styles) == 0 {
		return
	}

	mid := y + rows/2
	pos := v.offset / spacing
	reach := rows/(2*RowsPerItem) + 1

	first := int(math.Floor(pos)) - reach
	last := int(math.Ceil(pos)) + reach
	for k := first; k <= last; k++ {
		row := mid + int(math.Round((float64(k)-pos)*RowsPerItem))
		if row < y || row >= y+rows {
			continue
		}
		st := styles[wrap(k, len(styles))]
		label := formatValue(st.Value)
		style := styleSide
		if st.Centered && row == mid {
			style = styleCenter
			label = "> " + label + " <"
		}
		v.drawText(x+(w-len(label))/2, row, label, style)
	}

	v.screen.SetContent(x+1, mid, '▶', nil, styleFrame)
	v.screen.SetContent(x+w-2, mid, '◀', nil, styleFrame)
}

func (v *View) drawStatus(y, w int) {
	switch {
	case v.loading:
		dots := (v.frame / framesPerDot) % loadingDots
		v.drawCentered(y, w, "Loading"+strings.Repeat(".", dots), styleLoading)
	case v.errMsg != "":
		v.drawCentered(y, w, v.errMsg, styleError)
	case v.resultShown:
		v.drawCentered(y, w, tierBanner(v.resultTier)+"  "+formatValue(v.resultValue), tierStyle(v.resultTier))
	case v.spinning:
		v.drawCentered(y, w, "Spinning...", styleHint)
	}
}

func (v *View) hint() string {
	var b strings.Builder
	switch {
	case v.resultShown:
		b.WriteString("[space] collect  ")
	case v.tapEnabled:
		b.WriteString("[space] spin  ")
	}
	if v.muted {
		b.WriteString("[m] unmute  ")
	} else {
		b.WriteString("[m] mute  ")
	}
	b.WriteString("[q] quit")
	return b.String()
}

func (v *View) drawCentered(y, w int, s string, style tcell.Style) {
	v.drawText((w-len([]rune(s)))/2, y, s, style)
}

func (v *View) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
