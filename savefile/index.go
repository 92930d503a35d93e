package savefile

import (
	"math"

	"github.com/arloliu/savkit/endian"
	"github.com/arloliu/savkit/section"
)

// buildIndex records the offset of the first slot of every hash in a single pass. Slots are
// visited in ascending offset order, so the first occurrence is always the lowest offset
// and duplicate runs later in the buffer are shadowed.
func buildIndex(buf []byte, engine endian.EndianEngine) map[uint32]int {
	offsets := make(map[uint32]int, section.SlotCount(len(buf))/4)
	for off := section.SlotsOffset; off+section.SlotSize <= len(buf); off += section.SlotSize {
		h := engine.Uint32(buf[off : off+section.SlotHashSize])
		if _, ok := offsets[h]; !ok {
			offsets[h] = off
		}
	}

	return offsets
}

// hashAt returns the hash of the slot at off, or false past the last complete slot.
func (s *Savefile) hashAt(off int) (uint32, bool) {
	if off < section.SlotsOffset || off+section.SlotSize > len(s.buf) {
		return 0, false
	}

	return s.engine.Uint32(s.buf[off : off+section.SlotHashSize]), true
}

// runLength counts the consecutive slots starting at off that carry hash.
func (s *Savefile) runLength(hash uint32, off int) int {
	n := 0
	for {
		h, ok := s.hashAt(off)
		if !ok || h != hash {
			return n
		}
		n++
		off += section.SlotSize
	}
}

// payload returns the 4 payload bytes of the slot at off.
func (s *Savefile) payload(off int) []byte {
	return s.buf[off+section.SlotHashSize : off+section.SlotSize]
}

func (s *Savefile) readU32(off int) uint32 {
	return s.engine.Uint32(s.payload(off))
}

func (s *Savefile) readS32(off int) int32 {
	return int32(s.readU32(off)) //nolint:gosec
}

func (s *Savefile) readF32(off int) float32 {
	return math.Float32frombits(s.readU32(off))
}

func (s *Savefile) readBool(off int) bool {
	return s.readU32(off) != 0
}
