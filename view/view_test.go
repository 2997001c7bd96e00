package view

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/super-spinner/event"
	"github.com/lixenwraith/super-spinner/reel"
	"github.com/lixenwraith/super-spinner/spinner"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(60, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newStrip(t *testing.T, values ...int) *reel.Strip {
	t.Helper()
	layout := reel.DefaultLayout()
	layout.IdleIndex = 0
	strip := reel.NewStrip(layout)
	if err := strip.Build(values); err != nil {
		t.Fatal(err)
	}
	return strip
}

// screenText returns every row of the simulated screen as a string
func screenText(screen tcell.SimulationScreen) []string {
	cells, w, h := screen.GetContents()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			runes := cells[y*w+x].Runes
			if len(runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(runes[0])
		}
		lines[y] = b.String()
	}
	return lines
}

func findRow(lines []string, needle string) int {
	for i, l := range lines {
		if strings.Contains(l, needle) {
			return i
		}
	}
	return -1
}

func TestDrawCentersValue(t *testing.T) {
	screen := newScreen(t)
	strip := newStrip(t, 1000, 2000, 3000)
	v := New(screen, strip, 5)

	v.OnTravelUpdated(240)
	v.OnCenterChanged(2)
	v.Draw()

	lines := screenText(screen)
	center := findRow(lines, "> 3,000 <")
	if center < 0 {
		t.Fatalf("centered value not drawn:\n%s", strings.Join(lines, "\n"))
	}
	if !strings.Contains(lines[center], "▶") || !strings.Contains(lines[center], "◀") {
		t.Errorf("center markers missing on row %d: %q", center, lines[center])
	}
	above := findRow(lines, "2,000")
	if above != center-RowsPerItem {
		t.Errorf("previous item row = %d, want %d", above, center-RowsPerItem)
	}
	below := findRow(lines[center+1:], "1,000")
	if below < 0 || center+1+below != center+RowsPerItem {
		t.Errorf("next item should wrap to 1,000 one item below center")
	}
}

func TestDrawUnbuiltStrip(t *testing.T) {
	screen := newScreen(t)
	v := New(screen, reel.NewStrip(reel.DefaultLayout()), 5)
	v.OnLoadingChanged(true)
	v.Draw()

	lines := screenText(screen)
	if findRow(lines, "Loading") < 0 {
		t.Error("loading banner missing")
	}
	if findRow(lines, "[space] spin") >= 0 {
		t.Error("spin hint shown before tap is enabled")
	}
}

func TestBanners(t *testing.T) {
	tests := []struct {
		name  string
		apply func(v *View)
		want  []string
		never []string
	}{
		{
			name:  "ready",
			apply: func(v *View) { v.OnTapEnabled() },
			want:  []string{"[space] spin", "[m] mute"},
		},
		{
			name: "spinning",
			apply: func(v *View) {
				v.OnTapEnabled()
				v.OnSpinStarted()
			},
			want:  []string{"Spinning..."},
			never: []string{"[space] spin"},
		},
		{
			name: "mega result",
			apply: func(v *View) {
				v.OnSpinStarted()
				v.OnSpinSettled()
				v.OnResultShown(150000, spinner.TierMega)
			},
			want:  []string{"MEGA WIN  150,000", "[space] collect"},
			never: []string{"Spinning..."},
		},
		{
			name: "dismissed",
			apply: func(v *View) {
				v.OnResultShown(3000, spinner.TierSmall)
				v.OnResultDismissed()
				v.OnTapEnabled()
			},
			want:  []string{"[space] spin"},
			never: []string{"WIN  3,000"},
		},
		{
			name: "error",
			apply: func(v *View) {
				v.OnSpinStarted()
				v.OnError(spinner.SpinFailedMessage)
			},
			want:  []string{spinner.SpinFailedMessage},
			never: []string{"Spinning..."},
		},
		{
			name: "loading clears error",
			apply: func(v *View) {
				v.OnError("boom")
				v.OnLoadingChanged(true)
			},
			want:  []string{"Loading"},
			never: []string{"boom"},
		},
		{
			name:  "muted",
			apply: func(v *View) { v.SetMuted(true) },
			want:  []string{"[m] unmute"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newScreen(t)
			v := New(screen, newStrip(t, 1000, 2000, 3000), 3)
			tt.apply(v)
			v.Draw()

			lines := screenText(screen)
			for _, w := range tt.want {
				if findRow(lines, w) < 0 {
					t.Errorf("missing %q", w)
				}
			}
			for _, n := range tt.never {
				if findRow(lines, n) >= 0 {
					t.Errorf("unexpected %q", n)
				}
			}
		})
	}
}

func TestNewNormalizesWindow(t *testing.T) {
	screen := newScreen(t)
	if v := New(screen, nil, 4); v.window != 5 {
		t.Errorf("window = %d, want 5", v.window)
	}
	if v := New(screen, nil, 0); v.window != 1 {
		t.Errorf("window = %d, want 1", v.window)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want event.EventType
		ok   bool
	}{
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), event.EventTap, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), event.EventTap, true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), event.EventQuit, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), event.EventQuit, true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), event.EventQuit, true},
		{"mute", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), event.EventMuteToggle, true},
		{"click", tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone), event.EventTap, true},
		{"release", tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone), 0, false},
		{"resize", tcell.NewEventResize(80, 24), event.EventResize, true},
		{"other key", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.ev)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Translate = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInputPushesEvents(t *testing.T) {
	screen := newScreen(t)
	queue := event.NewQueue()
	in := NewInput(screen, queue, nil)
	in.Start()
	in.Start()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	var got []event.EventType
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < 2 && time.Now().Before(deadline) {
		for _, ev := range queue.Consume() {
			if ev.Type == event.EventResize {
				continue
			}
			got = append(got, ev.Type)
		}
		time.Sleep(5 * time.Millisecond)
	}
	in.Stop()
	in.Stop()

	if len(got) != 2 || got[0] != event.EventTap || got[1] != event.EventQuit {
		t.Fatalf("events = %v, want [tap quit]", got)
	}
}
