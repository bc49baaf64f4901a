package daemon

import "github.com/edgelink/edgelinkd/internal/types"

// hotkeySet tracks which KeyCodes are currently held down.
type hotkeySet map[types.KeyCode]bool

func (s hotkeySet) update(code types.KeyCode, pressed bool) {
	if pressed {
		s[code] = true
	} else {
		delete(s, code)
	}
}

// isSubsetOf reports whether every code in want is currently held.
func (s hotkeySet) isSubsetOf(want []types.KeyCode) bool {
	if len(want) == 0 {
		return false
	}
	for _, code := range want {
		if !s[code] {
			return false
		}
	}
	return true
}
