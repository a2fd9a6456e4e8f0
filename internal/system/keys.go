package system

import "encoding/binary"

// Key is a console key the kiosk reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyExit
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	codeEsc      = 1
	codeQ        = 16
	codeF4       = 62
	codeHome     = 102
	codeUp       = 103
	codePageUp   = 104
	codeDown     = 108
	codePageDown = 109

	keyReleased = 0
	keyRepeated = 2
)

var keyCodes = map[uint16]Key{
	codeEsc:      KeyExit,
	codeQ:        KeyExit,
	codeF4:       KeyExit,
	codeHome:     KeyHome,
	codeUp:       KeyUp,
	codePageUp:   KeyPageUp,
	codeDown:     KeyDown,
	codePageDown: KeyPageDown,
}

// decodeKeys parses a buffer of input_event records (timeval, u16 type,
// u16 code, s32 value) and returns the keys pressed. Auto-repeat counts as
// a press for every key except exit keys.
func decodeKeys(buf []byte, tvSize int) []Key {
	eventSize := tvSize + 2 + 2 + 4
	var keys []Key
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ != evKey || value == keyReleased {
			continue
		}
		key, ok := keyCodes[code]
		if !ok || (key == KeyExit && value == keyRepeated) {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
