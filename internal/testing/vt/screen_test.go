package vt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "title", StripANSI("\x1b[1m\x1b[35mtitle\x1b[0m"))
	assert.Equal(t, "", StripANSI("\x1b[?1049h\x1b[2J"))
}

func TestScreen(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain_lines", "ab\r\ncd", []string{"ab", "cd"}},
		{"cursor_position", "\x1b[2;3Hx", []string{"", "  x"}},
		{"clear_line", "hello\x1b[1;1H\x1b[2Kbye", []string{"bye"}},
		{"clear_screen", "a\r\nb\x1b[2J\x1b[Hc", []string{"c"}},
		{"colors_are_ignored", "\x1b[36mcyan\x1b[0m", []string{"cyan"}},
		{"private_modes_are_ignored", "\x1b[?25lx\x1b[?25h", []string{"x"}},
		{"wide_runes_take_two_cells", "場景x\x1b[1;5Hy", []string{"場景y"}},
		{"wraps_at_width", "0123456789ab", []string{"0123456789", "ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(4, 10)
			_, _ = fmt.Fprint(s, tt.input)
			assert.Equal(t, tt.want, s.Lines())
		})
	}
}

func TestScreenScrollsAtBottom(t *testing.T) {
	s := NewScreen(2, 10)
	_, _ = fmt.Fprint(s, "1\r\n2\r\n3")
	assert.Equal(t, []string{"2", "3"}, s.Lines())
}

func TestScreenSplitEscape(t *testing.T) {
	s := NewScreen(2, 10)
	_, _ = s.Write([]byte("ab\x1b[2"))
	_, _ = s.Write([]byte(";1Hc"))
	assert.Equal(t, []string{"ab", "c"}, s.Lines())
	assert.True(t, s.ContainsText("ab\nc"))
}
