// Package input turns key presses into game commands.
package input

import (
	"bufio"
	"sync"
)

// Command is a single discrete game command produced by one key press.
type Command int

const (
	CommandNone Command = iota
	CommandLeft
	CommandRight
	CommandFire
	CommandStart
	CommandQuit
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandFire:
		return "fire"
	case CommandStart:
		return "start"
	case CommandQuit:
		return "quit"
	default:
		return "none"
	}
}

// Source delivers commands to the frame loop.
type Source interface {
	// Poll returns all commands received since the last call in arrival
	// order. It never blocks.
	Poll() []Command
}

// Stream delivers input bytes via a channel and parses them into commands.
type Stream struct {
	ch        chan byte
	done      chan struct{}
	closeOnce sync.Once
	pending   []byte // Incomplete escape sequence carried to the next poll
	closed    bool
}

// Ensure Stream satisfies Source.
var _ Source = (*Stream)(nil)

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r fails or, once Close is called, at its next send.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. A reader goroutine blocked on a full
// buffer is released. Safe to call more than once.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// Poll drains all available bytes from the stream (non-blocking) and
// returns the commands they encode. Once the reader fails, Poll returns
// CommandQuit on every call.
func (s *Stream) Poll() []Command {
	if s.closed {
		return []Command{CommandQuit}
	}

	buf := s.pending
	s.pending = nil

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	cmds, rest := ParseBytes(buf)
	if !s.closed {
		s.pending = rest
	}
	if s.closed {
		cmds = append(cmds, CommandQuit)
	}
	return cmds
}

// ParseBytes converts raw terminal bytes into commands in order.
// An escape sequence cut off at the end of buf is returned as rest so the
// caller can prepend it to the next read.
func ParseBytes(buf []byte) (cmds []Command, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			// Partial CSI at the end: keep it for the next read
			if i+1 == len(buf) || (buf[i+1] == '[' && i+2 == len(buf)) {
				return cmds, append([]byte(nil), buf[i:]...)
			}
			if buf[i+1] == '[' {
				// CSI sequence: ESC [ <code>
				switch buf[i+2] {
				case 'C': // Right arrow
					cmds = append(cmds, CommandRight)
				case 'D': // Left arrow
					cmds = append(cmds, CommandLeft)
				}
				i += 2
			}
			continue
		}

		if cmd := commandForByte(b); cmd != CommandNone {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

func commandForByte(b byte) Command {
	return CommandForRune(rune(b))
}

// CommandForRune maps a typed character to a command.
func CommandForRune(r rune) Command {
	switch r {
	case 'q', 'Q', '\x03': // Ctrl-C
		return CommandQuit
	case 'a', 'A', 'h', 'H':
		return CommandLeft
	case 'd', 'D', 'l', 'L':
		return CommandRight
	case ' ':
		return CommandFire
	case '\n', '\r':
		return CommandStart
	default:
		return CommandNone
	}
}
