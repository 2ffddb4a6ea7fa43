// Package interaction reads keys from a raw-mode terminal and maps them to
// player commands.
package interaction

import (
	"io"
	"os"

	"golang.org/x/term"
)

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	in       io.Reader
	fd       int
	oldState *term.State
	input    chan KeyEvent
	stop     chan struct{}
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// NewKeyboardReader puts stdin in raw mode and starts reading keys
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := newReader(os.Stdin)
	kr.fd = int(os.Stdin.Fd())

	// Set terminal to raw mode
	state, err := term.MakeRaw(kr.fd)
	if err != nil {
		return nil, err
	}
	kr.oldState = state

	go kr.readInput()

	return kr, nil
}

func newReader(in io.Reader) *KeyboardReader {
	return &KeyboardReader{
		in:    in,
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 4)

	for {
		select {
		case <-kr.stop:
			return
		default:
		}

		n, err := kr.in.Read(buf)
		if err == io.EOF {
			return
		}
		if err != nil || n == 0 {
			continue
		}

		event := kr.parseInput(buf[:n])
		if event == nil {
			continue
		}
		select {
		case kr.input <- *event:
		case <-kr.stop:
			return
		}
	}
}

// parseInput parses raw keyboard input
func (kr *KeyboardReader) parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	// Handle Ctrl+C
	if buf[0] == 3 {
		return &KeyEvent{Key: 3, Type: KeyChar}
	}

	if buf[0] != 27 {
		return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
	}

	if len(buf) == 1 {
		return &KeyEvent{Key: 27, Type: KeyEscape}
	}
	if len(buf) < 3 || buf[1] != '[' {
		return nil
	}

	// CSI sequences
	switch buf[2] {
	case 'A':
		return &KeyEvent{Type: KeyUp}
	case 'B':
		return &KeyEvent{Type: KeyDown}
	case 'H':
		return &KeyEvent{Type: KeyHome}
	case 'F':
		return &KeyEvent{Type: KeyEnd}
	case '5', '6':
		if len(buf) < 4 || buf[3] != '~' {
			return nil
		}
		if buf[2] == '5' {
			return &KeyEvent{Type: KeyPageUp}
		}
		return &KeyEvent{Type: KeyPageDown}
	}
	return nil
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores the terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	if kr.oldState == nil {
		return nil
	}
	return term.Restore(kr.fd, kr.oldState)
}
