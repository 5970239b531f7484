package monitor

import "unicode"

// Command is an interactive key binding.
type Command int

const (
	CmdNone Command = iota
	CmdDisplay
	CmdRestore
	CmdClear
	CmdQuit
)

// ParseKey maps a key press to a command. Letters are case-insensitive; the
// digits 1-9 restore that history position. Ctrl-C quits.
func ParseKey(r rune) (Command, int) {
	switch unicode.ToLower(r) {
	case 'd':
		return CmdDisplay, 0
	case 'c':
		return CmdClear, 0
	case 'q', '\x03':
		return CmdQuit, 0
	}
	if r >= '1' && r <= '9' {
		return CmdRestore, int(r - '0')
	}
	return CmdNone, 0
}
