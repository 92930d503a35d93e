package savefile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/savkit/endian"
	"github.com/arloliu/savkit/format"
	"github.com/arloliu/savkit/internal/hash"
	"github.com/arloliu/savkit/section"
	"github.com/arloliu/savkit/typetable"
)

const testVersion = 0x471E

// fixture builds synthetic savefile buffers slot by slot.
type fixture struct {
	engine  endian.EndianEngine
	version uint32
	slots   []section.Slot
	size    int
}

func newFixture(engine endian.EndianEngine) *fixture {
	return &fixture{engine: engine, version: testVersion}
}

func (f *fixture) word(name string, words ...uint32) *fixture {
	h := hash.Field(name)
	for _, w := range words {
		s := section.Slot{Hash: h}
		f.engine.PutUint32(s.Payload[:], w)
		f.slots = append(f.slots, s)
	}

	return f
}

func (f *fixture) bools(name string, values ...bool) *fixture {
	for _, v := range values {
		if v {
			f.word(name, 1)
		} else {
			f.word(name, 0)
		}
	}

	return f
}

func (f *fixture) s32(name string, values ...int32) *fixture {
	for _, v := range values {
		f.word(name, uint32(v)) //nolint:gosec
	}

	return f
}

func (f *fixture) f32(name string, values ...float32) *fixture {
	for _, v := range values {
		f.word(name, math.Float32bits(v))
	}

	return f
}

// str appends one string block of capacity/4 slots per value.
func (f *fixture) str(name string, capacity int, values ...string) *fixture {
	h := hash.Field(name)
	for _, v := range values {
		for i := 0; i < capacity; i += section.SlotPayloadSize {
			s := section.Slot{Hash: h}
			if i < len(v) {
				copy(s.Payload[:], v[i:])
			}
			f.slots = append(f.slots, s)
		}
	}

	return f
}

// pad grows the buffer to size bytes with zeroed slots.
func (f *fixture) pad(size int) *fixture {
	f.size = size
	return f
}

func (f *fixture) bytes() []byte {
	size := max(f.size, section.SlotOffset(len(f.slots)))
	buf := make([]byte, size)
	section.NewHeader(f.version).WriteToSlice(buf, f.engine)
	for i, s := range f.slots {
		s.WriteToSlice(buf, section.SlotOffset(i), f.engine)
	}

	return buf
}

var testKinds = map[string]format.Kind{
	"Flag":         format.KindBool,
	"CurrentRupee": format.KindS32,
	"Speed":        format.KindF32,
	"Pos2":         format.KindVector2f,
	"Pos":          format.KindVector3f,
	"Quat":         format.KindVector4f,
	"Name":         format.KindString,
	"Location":     format.KindString64,
	"Note":         format.KindString256,
	"Counts":       format.KindS32Array,
	"Weights":      format.KindF32Array,
	"Opened":       format.KindBoolArray,
	"Items":        format.KindStringArray,
	"Maps":         format.KindString64Array,
	"Points":       format.KindVector2fArray,
	"Field":        format.KindVector3fArray,
	"NotInFile":    format.KindS32,
}

// testTable returns a table for every fixture field. UnknownLayout is left out on purpose.
func testTable(tb testing.TB) *typetable.Table {
	tb.Helper()

	table, err := typetable.New(nil, typetable.WithKinds(testKinds))
	require.NoError(tb, err)

	return table
}

// fullFixture holds one field of every kind plus a slot whose hash is not in the table.
func fullFixture(engine endian.EndianEngine) *fixture {
	return newFixture(engine).
		bools("Flag", true).
		s32("CurrentRupee", 500).
		f32("Speed", 1.5).
		f32("Pos2", 1, 2).
		f32("Pos", 1, 2, 3).
		f32("Quat", 0, 0, 0, 1).
		str("Name", 32, "Link").
		str("Location", 64, "Location_Village").
		str("Note", 256, "hello").
		s32("Counts", 1, -2, 3).
		f32("Weights", 0.5, 1.5).
		bools("Opened", true, false, true, false).
		str("Items", 32, "Item_Apple", "", "Item_Sword").
		str("Maps", 64, "Field", "Dungeon").
		f32("Points", 1, 2, 3, 4).
		f32("Field", 1, 2, 3, 4, 5, 6).
		s32("UnknownLayout", 7)
}

func loadFixture(t *testing.T, f *fixture, opts ...Option) *Savefile {
	t.Helper()

	sav, err := New(testTable(t), opts...)
	require.NoError(t, err)
	require.NoError(t, sav.Read(f.bytes()))

	return sav
}

func engines() map[string]endian.EndianEngine {
	return map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}
}
