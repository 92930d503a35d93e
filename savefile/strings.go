package savefile

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/section"
)

// Strings are packed four bytes per slot over capacity/4 consecutive slots of the field's
// run, one byte per character (the low byte of each UTF-16 code unit, the same bytes field
// names are hashed over). Unused bytes are zero; zero bytes are skipped when decoding rather
// than terminating the string, so a string fills its whole capacity without a terminator.
//
// Only characters U+0001 to U+00FF survive a round trip, so packString rejects the rest.

// slotsPerString returns the number of slots a string of the given capacity occupies.
func slotsPerString(capacity int) int {
	return (capacity + section.SlotPayloadSize - 1) / section.SlotPayloadSize
}

// unpackString decodes the string block starting at off.
//
// It returns false when the slot at off does not carry hash, which marks the end of a run of
// string blocks.
func (s *Savefile) unpackString(hash uint32, off int, capacity int) (string, bool) {
	if h, ok := s.hashAt(off); !ok || h != hash {
		return "", false
	}

	out := make([]byte, 0, capacity)
	for n := 0; n < capacity; n += section.SlotPayloadSize {
		if h, ok := s.hashAt(off); !ok || h != hash {
			break
		}
		for _, c := range s.payload(off) {
			if c != 0 {
				out = append(out, c)
			}
		}
		off += section.SlotSize
	}

	return decodeString(out), true
}

// encodeString converts value to one byte per character.
func encodeString(value string) ([]byte, error) {
	out := make([]byte, 0, len(value))
	for i, r := range value {
		switch {
		case r == 0:
			return nil, fmt.Errorf("%w: NUL character at byte %d", errs.ErrInvalidValue, i)
		case r > 0xFF:
			return nil, fmt.Errorf("%w: character %U at byte %d does not fit in one byte", errs.ErrInvalidValue, r, i)
		}
		out = append(out, byte(r))
	}

	return out, nil
}

// checkString encodes value and verifies it fits in capacity bytes.
func checkString(value string, capacity int) ([]byte, error) {
	encoded, err := encodeString(value)
	if err != nil {
		return nil, err
	}
	if len(encoded) > capacity {
		return nil, fmt.Errorf("%w: %d bytes, capacity %d", errs.ErrStringTooLong, len(encoded), capacity)
	}

	return encoded, nil
}

// decodeString maps each stored byte back to the character with that code point.
func decodeString(b []byte) string {
	if isASCII(b) {
		return string(b)
	}

	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}

	return string(runes)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

// packString plans the writes that store value in the string block starting at off and
// returns the offset of the slot following the block.
//
// Returns errs.ErrHashMismatch if the slot at off does not carry hash, errs.ErrInvalidValue
// if value holds a NUL or a character above U+00FF, errs.ErrStringTooLong if value does not
// fit in capacity bytes, and errs.ErrRunTooShort if the run ends before the block does.
// Nothing is planned on error.
func (s *Savefile) packString(p *writePlan, hash uint32, off int, value string, capacity int) (int, error) {
	if h, ok := s.hashAt(off); !ok || h != hash {
		return 0, fmt.Errorf("%w: offset %d, expected hash 0x%08x", errs.ErrHashMismatch, off, hash)
	}
	encoded, err := checkString(value, capacity)
	if err != nil {
		return 0, err
	}

	slots := slotsPerString(capacity)
	if n := s.runLength(hash, off); n < slots {
		return 0, fmt.Errorf("%w: %d slots at offset %d, need %d", errs.ErrRunTooShort, n, off, slots)
	}

	for i := range slots {
		var chunk [section.SlotPayloadSize]byte
		start := i * section.SlotPayloadSize
		if start < len(encoded) {
			copy(chunk[:], encoded[start:])
		}
		p.putBytes(off, chunk)
		off += section.SlotSize
	}

	return off, nil
}
