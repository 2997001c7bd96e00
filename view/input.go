package view

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/super-spinner/core"
	"github.com/lixenwraith/super-spinner/event"
)

// Translate maps a terminal event to a loop event
func Translate(ev tcell.Event) (event.EventType, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return event.EventQuit, true
		case tcell.KeyEnter:
			return event.EventTap, true
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				return event.EventTap, true
			case 'q', 'Q':
				return event.EventQuit, true
			case 'm', 'M':
				return event.EventMuteToggle, true
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			return event.EventTap, true
		}
	case *tcell.EventResize:
		return event.EventResize, true
	}
	return 0, false
}

// Input polls the screen on its own goroutine and pushes translated events to a queue
type Input struct {
	screen tcell.Screen
	queue  *event.Queue
	logger *zap.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewInput creates a reader for screen feeding queue
func NewInput(screen tcell.Screen, queue *event.Queue, logger *zap.Logger) *Input {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Input{screen: screen, queue: queue, logger: logger.Named("input")}
}

// Start launches the poll loop, a second call is a no-op
func (in *Input) Start() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.running {
		return
	}
	in.running = true
	in.stopCh = make(chan struct{})
	in.doneCh = make(chan struct{})
	core.Go(in.pollLoop)
}

func (in *Input) pollLoop() {
	defer close(in.doneCh)

	for {
		select {
		case <-in.stopCh:
			return
		default:
		}

		ev := in.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			continue
		}

		et, ok := Translate(ev)
		if !ok {
			continue
		}
		in.logger.Debug("input", zap.Int("event", int(et)))
		in.queue.Emit(et, nil)
	}
}

// Stop ends the poll loop and waits for it to exit
func (in *Input) Stop() {
	in.mu.Lock()
	if !in.running {
		in.mu.Unlock()
		return
	}
	in.running = false
	close(in.stopCh)
	in.mu.Unlock()

	// Synthetic interrupt unblocks PollEvent
	if err := in.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		in.logger.Debug("post interrupt", zap.Error(err))
	}
	<-in.doneCh
}
