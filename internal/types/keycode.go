package types

// KeyCode is a closed enumeration of common keys plus KeyUnknown, which
// carries the original raw scan code for round-trip fidelity. Re-implementers
// must expose a stable name table for parsing (used by the release hot-key
// matcher) and never depend on reflection.
type KeyCode struct {
	code ordinalKeyCode
	raw  uint32
}

type ordinalKeyCode uint16

const (
	keyUnknownOrdinal ordinalKeyCode = iota
	keyAOrdinal
	keyBOrdinal
	keyCOrdinal
	keyDOrdinal
	keyEOrdinal
	keyFOrdinal
	keyGOrdinal
	keyHOrdinal
	keyIOrdinal
	keyJOrdinal
	keyKOrdinal
	keyLOrdinal
	keyMOrdinal
	keyNOrdinal
	keyOOrdinal
	keyPOrdinal
	keyQOrdinal
	keyROrdinal
	keySOrdinal
	keyTOrdinal
	keyUOrdinal
	keyVOrdinal
	keyWOrdinal
	keyXOrdinal
	keyYOrdinal
	keyZOrdinal
	key0Ordinal
	key1Ordinal
	key2Ordinal
	key3Ordinal
	key4Ordinal
	key5Ordinal
	key6Ordinal
	key7Ordinal
	key8Ordinal
	key9Ordinal
	keyF1Ordinal
	keyF2Ordinal
	keyF3Ordinal
	keyF4Ordinal
	keyF5Ordinal
	keyF6Ordinal
	keyF7Ordinal
	keyF8Ordinal
	keyF9Ordinal
	keyF10Ordinal
	keyF11Ordinal
	keyF12Ordinal
	keyEscapeOrdinal
	keyTabOrdinal
	keyCapsLockOrdinal
	keyLeftShiftOrdinal
	keyRightShiftOrdinal
	keyLeftCtrlOrdinal
	keyRightCtrlOrdinal
	keyLeftAltOrdinal
	keyRightAltOrdinal
	keyLeftMetaOrdinal
	keyRightMetaOrdinal
	keySpaceOrdinal
	keyEnterOrdinal
	keyBackspaceOrdinal
	keyInsertOrdinal
	keyDeleteOrdinal
	keyHomeOrdinal
	keyEndOrdinal
	keyPageUpOrdinal
	keyPageDownOrdinal
	keyArrowUpOrdinal
	keyArrowDownOrdinal
	keyArrowLeftOrdinal
	keyArrowRightOrdinal
	keyMinusOrdinal
	keyEqualsOrdinal
	keyLeftBracketOrdinal
	keyRightBracketOrdinal
	keyBackslashOrdinal
	keySemicolonOrdinal
	keyQuoteOrdinal
	keyCommaOrdinal
	keyPeriodOrdinal
	keySlashOrdinal
	keyGraveOrdinal
)

var (
	KeyUnknown = KeyCode{code: keyUnknownOrdinal}
	KeyA       = KeyCode{code: keyAOrdinal}
	KeyB       = KeyCode{code: keyBOrdinal}
	KeyC       = KeyCode{code: keyCOrdinal}
	KeyD       = KeyCode{code: keyDOrdinal}
	KeyE       = KeyCode{code: keyEOrdinal}
	KeyF       = KeyCode{code: keyFOrdinal}
	KeyG       = KeyCode{code: keyGOrdinal}
	KeyH       = KeyCode{code: keyHOrdinal}
	KeyI       = KeyCode{code: keyIOrdinal}
	KeyJ       = KeyCode{code: keyJOrdinal}
	KeyK       = KeyCode{code: keyKOrdinal}
	KeyL       = KeyCode{code: keyLOrdinal}
	KeyM       = KeyCode{code: keyMOrdinal}
	KeyN       = KeyCode{code: keyNOrdinal}
	KeyO       = KeyCode{code: keyOOrdinal}
	KeyP       = KeyCode{code: keyPOrdinal}
	KeyQ       = KeyCode{code: keyQOrdinal}
	KeyR       = KeyCode{code: keyROrdinal}
	KeyS       = KeyCode{code: keySOrdinal}
	KeyT       = KeyCode{code: keyTOrdinal}
	KeyU       = KeyCode{code: keyUOrdinal}
	KeyV       = KeyCode{code: keyVOrdinal}
	KeyW       = KeyCode{code: keyWOrdinal}
	KeyX       = KeyCode{code: keyXOrdinal}
	KeyY       = KeyCode{code: keyYOrdinal}
	KeyZ       = KeyCode{code: keyZOrdinal}

	Key0 = KeyCode{code: key0Ordinal}
	Key1 = KeyCode{code: key1Ordinal}
	Key2 = KeyCode{code: key2Ordinal}
	Key3 = KeyCode{code: key3Ordinal}
	Key4 = KeyCode{code: key4Ordinal}
	Key5 = KeyCode{code: key5Ordinal}
	Key6 = KeyCode{code: key6Ordinal}
	Key7 = KeyCode{code: key7Ordinal}
	Key8 = KeyCode{code: key8Ordinal}
	Key9 = KeyCode{code: key9Ordinal}

	KeyF1  = KeyCode{code: keyF1Ordinal}
	KeyF2  = KeyCode{code: keyF2Ordinal}
	KeyF3  = KeyCode{code: keyF3Ordinal}
	KeyF4  = KeyCode{code: keyF4Ordinal}
	KeyF5  = KeyCode{code: keyF5Ordinal}
	KeyF6  = KeyCode{code: keyF6Ordinal}
	KeyF7  = KeyCode{code: keyF7Ordinal}
	KeyF8  = KeyCode{code: keyF8Ordinal}
	KeyF9  = KeyCode{code: keyF9Ordinal}
	KeyF10 = KeyCode{code: keyF10Ordinal}
	KeyF11 = KeyCode{code: keyF11Ordinal}
	KeyF12 = KeyCode{code: keyF12Ordinal}

	KeyEscape      = KeyCode{code: keyEscapeOrdinal}
	KeyTab         = KeyCode{code: keyTabOrdinal}
	KeyCapsLock    = KeyCode{code: keyCapsLockOrdinal}
	KeyLeftShift   = KeyCode{code: keyLeftShiftOrdinal}
	KeyRightShift  = KeyCode{code: keyRightShiftOrdinal}
	KeyLeftCtrl    = KeyCode{code: keyLeftCtrlOrdinal}
	KeyRightCtrl   = KeyCode{code: keyRightCtrlOrdinal}
	KeyLeftAlt     = KeyCode{code: keyLeftAltOrdinal}
	KeyRightAlt    = KeyCode{code: keyRightAltOrdinal}
	KeyLeftMeta    = KeyCode{code: keyLeftMetaOrdinal}
	KeyRightMeta   = KeyCode{code: keyRightMetaOrdinal}
	KeySpace       = KeyCode{code: keySpaceOrdinal}
	KeyEnter       = KeyCode{code: keyEnterOrdinal}
	KeyBackspace   = KeyCode{code: keyBackspaceOrdinal}
	KeyInsert      = KeyCode{code: keyInsertOrdinal}
	KeyDelete      = KeyCode{code: keyDeleteOrdinal}
	KeyHome        = KeyCode{code: keyHomeOrdinal}
	KeyEnd         = KeyCode{code: keyEndOrdinal}
	KeyPageUp      = KeyCode{code: keyPageUpOrdinal}
	KeyPageDown    = KeyCode{code: keyPageDownOrdinal}
	KeyArrowUp     = KeyCode{code: keyArrowUpOrdinal}
	KeyArrowDown   = KeyCode{code: keyArrowDownOrdinal}
	KeyArrowLeft   = KeyCode{code: keyArrowLeftOrdinal}
	KeyArrowRight  = KeyCode{code: keyArrowRightOrdinal}
	KeyMinus       = KeyCode{code: keyMinusOrdinal}
	KeyEquals      = KeyCode{code: keyEqualsOrdinal}
	KeyLeftBracket = KeyCode{code: keyLeftBracketOrdinal}
	KeyRightBracket = KeyCode{code: keyRightBracketOrdinal}
	KeyBackslash   = KeyCode{code: keyBackslashOrdinal}
	KeySemicolon   = KeyCode{code: keySemicolonOrdinal}
	KeyQuote       = KeyCode{code: keyQuoteOrdinal}
	KeyComma       = KeyCode{code: keyCommaOrdinal}
	KeyPeriod      = KeyCode{code: keyPeriodOrdinal}
	KeySlash       = KeyCode{code: keySlashOrdinal}
	KeyGrave       = KeyCode{code: keyGraveOrdinal}
)

var keyCodeNames = map[ordinalKeyCode]string{
	keyUnknownOrdinal: "Unknown",
	keyAOrdinal:       "A", keyBOrdinal: "B", keyCOrdinal: "C", keyDOrdinal: "D",
	keyEOrdinal: "E", keyFOrdinal: "F", keyGOrdinal: "G", keyHOrdinal: "H",
	keyIOrdinal: "I", keyJOrdinal: "J", keyKOrdinal: "K", keyLOrdinal: "L",
	keyMOrdinal: "M", keyNOrdinal: "N", keyOOrdinal: "O", keyPOrdinal: "P",
	keyQOrdinal: "Q", keyROrdinal: "R", keySOrdinal: "S", keyTOrdinal: "T",
	keyUOrdinal: "U", keyVOrdinal: "V", keyWOrdinal: "W", keyXOrdinal: "X",
	keyYOrdinal: "Y", keyZOrdinal: "Z",
	key0Ordinal: "0", key1Ordinal: "1", key2Ordinal: "2", key3Ordinal: "3",
	key4Ordinal: "4", key5Ordinal: "5", key6Ordinal: "6", key7Ordinal: "7",
	key8Ordinal: "8", key9Ordinal: "9",
	keyF1Ordinal: "F1", keyF2Ordinal: "F2", keyF3Ordinal: "F3", keyF4Ordinal: "F4",
	keyF5Ordinal: "F5", keyF6Ordinal: "F6", keyF7Ordinal: "F7", keyF8Ordinal: "F8",
	keyF9Ordinal: "F9", keyF10Ordinal: "F10", keyF11Ordinal: "F11", keyF12Ordinal: "F12",
	keyEscapeOrdinal: "Escape", keyTabOrdinal: "Tab", keyCapsLockOrdinal: "CapsLock",
	keyLeftShiftOrdinal: "LeftShift", keyRightShiftOrdinal: "RightShift",
	keyLeftCtrlOrdinal: "LeftCtrl", keyRightCtrlOrdinal: "RightCtrl",
	keyLeftAltOrdinal: "LeftAlt", keyRightAltOrdinal: "RightAlt",
	keyLeftMetaOrdinal: "LeftMeta", keyRightMetaOrdinal: "RightMeta",
	keySpaceOrdinal: "Space", keyEnterOrdinal: "Enter", keyBackspaceOrdinal: "Backspace",
	keyInsertOrdinal: "Insert", keyDeleteOrdinal: "Delete", keyHomeOrdinal: "Home",
	keyEndOrdinal: "End", keyPageUpOrdinal: "PageUp", keyPageDownOrdinal: "PageDown",
	keyArrowUpOrdinal: "ArrowUp", keyArrowDownOrdinal: "ArrowDown",
	keyArrowLeftOrdinal: "ArrowLeft", keyArrowRightOrdinal: "ArrowRight",
	keyMinusOrdinal: "Minus", keyEqualsOrdinal: "Equals",
	keyLeftBracketOrdinal: "LeftBracket", keyRightBracketOrdinal: "RightBracket",
	keyBackslashOrdinal: "Backslash", keySemicolonOrdinal: "Semicolon",
	keyQuoteOrdinal: "Quote", keyCommaOrdinal: "Comma", keyPeriodOrdinal: "Period",
	keySlashOrdinal: "Slash", keyGraveOrdinal: "Grave",
}

var keyCodeByName = func() map[string]ordinalKeyCode {
	m := make(map[string]ordinalKeyCode, len(keyCodeNames))
	for ord, name := range keyCodeNames {
		m[name] = ord
	}
	return m
}()

// String renders the stable debug-style spelling used both for hot-key
// config parsing and for log output (e.g. "LeftCtrl").
func (k KeyCode) String() string {
	if k.code == keyUnknownOrdinal && k.raw != 0 {
		return "Unknown"
	}
	if name, ok := keyCodeNames[k.code]; ok {
		return name
	}
	return "Unknown"
}

// Raw returns the original raw scan code carried by KeyUnknown values. Zero
// for named keys.
func (k KeyCode) Raw() uint32 {
	return k.raw
}

// IsUnknown reports whether k is an unrecognised raw key code.
func (k KeyCode) IsUnknown() bool {
	return k.code == keyUnknownOrdinal
}

// NewUnknownKeyCode wraps a raw scan code that doesn't match a named key.
func NewUnknownKeyCode(raw uint32) KeyCode {
	return KeyCode{code: keyUnknownOrdinal, raw: raw}
}

// ParseKeyCodeName parses the stable name table used by hot-key
// configuration (e.g. "LeftCtrl", "Escape"). Named lookup only — never use
// reflection to derive this from the Go constant names.
func ParseKeyCodeName(name string) (KeyCode, bool) {
	ord, ok := keyCodeByName[name]
	if !ok || ord == keyUnknownOrdinal {
		return KeyCode{}, false
	}
	return KeyCode{code: ord}, true
}

// Ordinal returns the stable wire ordinal for k, in source declaration
// order starting at 0 for KeyUnknown.
func (k KeyCode) Ordinal() uint16 { return uint16(k.code) }

// KeyCodeFromOrdinal reconstructs a KeyCode from its wire ordinal. raw is
// only meaningful when ord is the KeyUnknown ordinal (0).
func KeyCodeFromOrdinal(ord uint16, raw uint32) (KeyCode, bool) {
	if _, ok := keyCodeNames[ordinalKeyCode(ord)]; !ok {
		return KeyCode{}, false
	}
	return KeyCode{code: ordinalKeyCode(ord), raw: raw}, true
}

// MaxKeyCodeOrdinal is the highest assigned KeyCode ordinal.
const MaxKeyCodeOrdinal = uint16(keyGraveOrdinal)
