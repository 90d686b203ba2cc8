package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TcellSource reads key events from a tcell screen.
type TcellSource struct {
	mu     sync.Mutex
	cmds   []Command
	closed bool
}

// Ensure TcellSource satisfies Source.
var _ Source = (*TcellSource)(nil)

// NewTcellSource spawns a goroutine that polls screen events until the
// screen is finalized.
func NewTcellSource(screen tcell.Screen) *TcellSource {
	s := &TcellSource{}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				s.mu.Lock()
				s.closed = true
				s.mu.Unlock()
				return
			}
			s.HandleEvent(ev)
		}
	}()
	return s
}

// HandleEvent queues the command for a key event. Other events are ignored;
// the frame loop picks up resizes from the screen size.
func (s *TcellSource) HandleEvent(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	cmd := CommandForKey(key.Key(), key.Rune())
	if cmd == CommandNone {
		return
	}
	s.mu.Lock()
	s.cmds = append(s.cmds, cmd)
	s.mu.Unlock()
}

// Poll returns queued commands. Once the screen is gone it returns CommandQuit.
func (s *TcellSource) Poll() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmds := s.cmds
	s.cmds = nil
	if s.closed {
		cmds = append(cmds, CommandQuit)
	}
	return cmds
}

// CommandForKey maps a tcell key to a command.
func CommandForKey(key tcell.Key, ch rune) Command {
	switch key {
	case tcell.KeyLeft:
		return CommandLeft
	case tcell.KeyRight:
		return CommandRight
	case tcell.KeyEnter:
		return CommandStart
	case tcell.KeyCtrlC:
		return CommandQuit
	case tcell.KeyRune:
		return CommandForRune(ch)
	default:
		return CommandNone
	}
}
