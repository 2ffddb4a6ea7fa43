package interaction

// Command is a player action bound to a key
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdScrollUp
	CmdScrollDown
	CmdPageUp
	CmdPageDown
	CmdTop
	CmdBottom
	CmdScene // animate to scene Arg (zero-based)
	CmdFocus
	CmdClearFocus
	CmdToggleSnap
	CmdToggleHelp
)

// Action is a resolved key binding
type Action struct {
	Cmd Command
	Arg int
}

// Resolve maps a key event to its action. Unbound keys resolve to CmdNone.
func Resolve(event KeyEvent) Action {
	switch event.Type {
	case KeyUp:
		return Action{Cmd: CmdScrollUp}
	case KeyDown:
		return Action{Cmd: CmdScrollDown}
	case KeyPageUp:
		return Action{Cmd: CmdPageUp}
	case KeyPageDown:
		return Action{Cmd: CmdPageDown}
	case KeyHome:
		return Action{Cmd: CmdTop}
	case KeyEnd:
		return Action{Cmd: CmdBottom}
	case KeyEscape:
		return Action{Cmd: CmdQuit}
	case KeyChar:
	default:
		return Action{}
	}

	switch r := event.Key; {
	case r == 'q' || r == 'Q' || r == 3:
		return Action{Cmd: CmdQuit}
	case r == 'k':
		return Action{Cmd: CmdScrollUp}
	case r == 'j':
		return Action{Cmd: CmdScrollDown}
	case r == ' ':
		return Action{Cmd: CmdPageDown}
	case r == 'b':
		return Action{Cmd: CmdPageUp}
	case r == 'g':
		return Action{Cmd: CmdTop}
	case r == 'G':
		return Action{Cmd: CmdBottom}
	case r >= '1' && r <= '9':
		return Action{Cmd: CmdScene, Arg: int(r - '1')}
	case r == 'f' || r == 'F':
		return Action{Cmd: CmdFocus}
	case r == 'u' || r == 'U':
		return Action{Cmd: CmdClearFocus}
	case r == 's' || r == 'S':
		return Action{Cmd: CmdToggleSnap}
	case r == 'h' || r == 'H' || r == '?':
		return Action{Cmd: CmdToggleHelp}
	}
	return Action{}
}

// HelpLines describes the key bindings
func HelpLines() []string {
	return []string{
		"↑/k ↓/j   scroll",
		"PgUp/b PgDn/space   page",
		"Home/g End/G   top / bottom",
		"1-9   animate to scene",
		"f   focus current scene",
		"u   clear focus",
		"s   toggle snapping",
		"h   toggle help",
		"q   quit",
	}
}
