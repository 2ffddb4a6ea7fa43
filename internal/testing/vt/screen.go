// Package vt is a minimal virtual terminal for tests that assert on what a
// sequence of ANSI writes leaves on screen.
package vt

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Screen is a fixed-size character grid. It implements io.Writer; wide runes
// take two cells, the second holding a zero rune.
type Screen struct {
	rows    int
	cols    int
	buffer  [][]rune
	cursorX int
	cursorY int
	pending []rune // incomplete escape sequence from the previous Write
}

// NewScreen creates a blank screen
func NewScreen(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols, buffer: make([][]rune, rows)}
	for i := range s.buffer {
		s.buffer[i] = blankLine(cols)
	}
	return s
}

func blankLine(cols int) []rune {
	line := make([]rune, cols)
	for j := range line {
		line[j] = ' '
	}
	return line
}

// Write interprets p as terminal output
func (s *Screen) Write(p []byte) (int, error) {
	runes := append(s.pending, []rune(string(p))...)
	s.pending = nil

	for i := 0; i < len(runes); {
		switch r := runes[i]; r {
		case '\x1b':
			next, ok := s.escape(runes, i)
			if !ok {
				s.pending = append([]rune(nil), runes[i:]...)
				return len(p), nil
			}
			i = next
		case '\r':
			s.cursorX = 0
			i++
		case '\n':
			s.lineFeed()
			i++
		default:
			s.put(r)
			i++
		}
	}
	return len(p), nil
}

// escape handles the CSI sequence at start and returns the index after it.
// ok is false when the sequence is cut off.
func (s *Screen) escape(runes []rune, start int) (next int, ok bool) {
	if start+1 >= len(runes) {
		return 0, false
	}
	if runes[start+1] != '[' {
		return start + 2, true
	}

	private := false
	var params []int
	current, has := 0, false
	for i := start + 2; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == '?':
			private = true
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
			has = true
		case r == ';':
			params = append(params, current)
			current, has = 0, false
		default:
			if has {
				params = append(params, current)
			}
			if !private {
				s.command(r, params)
			}
			return i + 1, true
		}
	}
	return 0, false
}

func param(params []int, i, def int) int {
	if i < len(params) && params[i] > 0 {
		return params[i]
	}
	return def
}

func (s *Screen) command(cmd rune, params []int) {
	switch cmd {
	case 'H', 'f':
		s.cursorY = min(s.rows, param(params, 0, 1)) - 1
		s.cursorX = min(s.cols, param(params, 1, 1)) - 1
	case 'J':
		mode := 0
		if len(params) > 0 {
			mode = params[0]
		}
		switch mode {
		case 0:
			s.clearRange(s.cursorY, s.cursorX, s.rows-1, s.cols-1)
		case 1:
			s.clearRange(0, 0, s.cursorY, s.cursorX)
		case 2, 3:
			s.clearRange(0, 0, s.rows-1, s.cols-1)
		}
	case 'K':
		mode := 0
		if len(params) > 0 {
			mode = params[0]
		}
		switch mode {
		case 0:
			s.clearRange(s.cursorY, s.cursorX, s.cursorY, s.cols-1)
		case 1:
			s.clearRange(s.cursorY, 0, s.cursorY, s.cursorX)
		case 2:
			s.clearRange(s.cursorY, 0, s.cursorY, s.cols-1)
		}
	case 'A':
		s.cursorY = max(0, s.cursorY-param(params, 0, 1))
	case 'B':
		s.cursorY = min(s.rows-1, s.cursorY+param(params, 0, 1))
	case 'C':
		s.cursorX = min(s.cols-1, s.cursorX+param(params, 0, 1))
	case 'D':
		s.cursorX = max(0, s.cursorX-param(params, 0, 1))
	}
	// m (colors) and everything else leave the grid alone
}

// clearRange blanks cells from (r0, c0) to (r1, c1) inclusive, in reading order
func (s *Screen) clearRange(r0, c0, r1, c1 int) {
	for i := r0; i <= r1 && i < s.rows; i++ {
		from, to := 0, s.cols-1
		if i == r0 {
			from = c0
		}
		if i == r1 {
			to = c1
		}
		for j := from; j <= to && j < s.cols; j++ {
			s.buffer[i][j] = ' '
		}
	}
}

func (s *Screen) put(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if s.cursorX+w > s.cols {
		s.cursorX = 0
		s.lineFeed()
	}
	s.buffer[s.cursorY][s.cursorX] = r
	if w == 2 {
		s.buffer[s.cursorY][s.cursorX+1] = 0
	}
	s.cursorX += w
}

func (s *Screen) lineFeed() {
	if s.cursorY < s.rows-1 {
		s.cursorY++
		return
	}
	copy(s.buffer, s.buffer[1:])
	s.buffer[s.rows-1] = blankLine(s.cols)
}

// Line returns one row without trailing blanks
func (s *Screen) Line(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, r := range s.buffer[row] {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row up to the last non-blank one
func (s *Screen) Lines() []string {
	lines := make([]string, s.rows)
	last := -1
	for i := range lines {
		lines[i] = s.Line(i)
		if lines[i] != "" {
			last = i
		}
	}
	return lines[:last+1]
}

// Render returns the screen content as a string
func (s *Screen) Render() string {
	return strings.Join(s.Lines(), "\n")
}

// ContainsText checks if the screen contains specific text
func (s *Screen) ContainsText(text string) bool {
	return strings.Contains(s.Render(), text)
}
