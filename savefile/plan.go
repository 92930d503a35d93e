package savefile

import (
	"math"

	"github.com/arloliu/savkit/endian"
	"github.com/arloliu/savkit/internal/pool"
	"github.com/arloliu/savkit/section"
)

// slotWrite is a pending payload write to the slot at off.
type slotWrite struct {
	off     int
	payload [section.SlotPayloadSize]byte
}

// writePlan collects every payload write of a Set call. Validation happens while the plan
// is built and the buffer is only touched by commit, which cannot fail, so a rejected Set
// leaves the buffer byte-for-byte unchanged.
type writePlan struct {
	engine  endian.EndianEngine
	writes  []slotWrite
	release func([]slotWrite)
}

// Plans that grew past 4096 writes are not pooled.
var writePool = pool.NewSlicePool[slotWrite](64, 4096)

func (s *Savefile) newPlan() *writePlan {
	writes, release := writePool.Get()
	return &writePlan{engine: s.engine, writes: writes, release: release}
}

// done hands the plan's storage back to the pool. The plan must not be used afterwards.
func (p *writePlan) done() {
	p.release(p.writes)
	p.writes = nil
}

func (p *writePlan) putU32(off int, v uint32) {
	w := slotWrite{off: off}
	p.engine.PutUint32(w.payload[:], v)
	p.writes = append(p.writes, w)
}

func (p *writePlan) putF32(off int, v float32) {
	p.putU32(off, math.Float32bits(v))
}

func (p *writePlan) putBytes(off int, b [section.SlotPayloadSize]byte) {
	p.writes = append(p.writes, slotWrite{off: off, payload: b})
}

func (s *Savefile) commit(p *writePlan) {
	for _, w := range p.writes {
		copy(s.payload(w.off), w.payload[:])
	}
}
