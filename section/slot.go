package section

import "github.com/arloliu/savkit/endian"

// Slot is the atomic 8-byte storage unit of a savefile: a field hash and a 4-byte payload
// holding either a numeric value or four packed characters.
type Slot struct {
	Hash    uint32
	Payload [SlotPayloadSize]byte
}

// SlotCount returns the number of complete slots in a buffer of the given size.
func SlotCount(size int) int {
	if size < SlotsOffset {
		return 0
	}

	return (size - SlotsOffset) / SlotSize
}

// SlotOffset returns the byte offset of the i-th slot.
func SlotOffset(i int) int {
	return SlotsOffset + i*SlotSize
}

// ParseSlot reads the slot starting at off. The payload bytes are copied verbatim.
func ParseSlot(buf []byte, off int, engine endian.EndianEngine) Slot {
	s := Slot{Hash: engine.Uint32(buf[off : off+SlotHashSize])}
	copy(s.Payload[:], buf[off+SlotHashSize:off+SlotSize])

	return s
}

// WriteToSlice writes the slot at off.
func (s Slot) WriteToSlice(buf []byte, off int, engine endian.EndianEngine) {
	engine.PutUint32(buf[off:], s.Hash)
	copy(buf[off+SlotHashSize:off+SlotSize], s.Payload[:])
}
