package savefile

import (
	"fmt"
	"math"

	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/format"
	"github.com/arloliu/savkit/section"
)

// Set encodes value into the field addressed by key.
//
// Accepted values mirror the types Get returns, except that numbers may be any Go integer
// or float type and sequences any slice or array type:
//   - scalars: bool for bool, an integral number in int32 range for s32, a finite number
//     representable as float32 for f32
//   - fixed vectors: a sequence of exactly Width numbers, or one number with Name[i]
//   - numeric and bool arrays: a sequence (shorter inputs are zero-padded, longer ones
//     truncated to the run length after every element is checked), or one element with Name[i]
//   - vector arrays: a sequence of Width-length sequences (padded or truncated like
//     arrays), one Width-length sequence with Name[i], or one number with Name[i][j]
//   - strings: a string of at most Capacity characters in U+0001..U+00FF, stored one byte each
//   - string arrays: a sequence of such strings (missing blocks are written empty, extra
//     inputs checked then dropped), or one string with Name[i]
//
// The call is atomic: on any error the buffer is left unchanged.
//
// Returns:
//   - *errs.LookupError if the field is missing from the buffer or the type table
//   - errs.ErrInvalidValue if value has the wrong type or shape for the field kind, or a
//     string holds a NUL or a character that does not fit in one byte
//   - errs.ErrIndexOutOfRange if an index is past the end of the field
//   - errs.ErrStringTooLong, errs.ErrHashMismatch or errs.ErrRunTooShort from string packing
func (s *Savefile) Set(key string, value any) error {
	f, err := s.lookup(key)
	if err != nil {
		return err
	}

	p := s.newPlan()
	defer p.done()

	if err := s.planSet(p, f, value); err != nil {
		return err
	}
	s.commit(p)

	return nil
}

func (s *Savefile) planSet(p *writePlan, f field, value any) error {
	switch f.kind {
	case format.KindBool, format.KindS32, format.KindF32:
		if f.key.HasIndex() {
			return indexError(f)
		}
		return s.planScalar(p, f, f.kind, f.off, value)

	case format.KindVector2f, format.KindVector3f, format.KindVector4f:
		return s.planVector(p, f, value)

	case format.KindS32Array, format.KindF32Array, format.KindBoolArray:
		return s.planArray(p, f, value)

	case format.KindVector2fArray, format.KindVector3fArray:
		return s.planVectorArray(p, f, value)

	case format.KindString, format.KindString64, format.KindString256:
		if f.key.HasIndex() {
			return indexError(f)
		}
		str, ok := asString(value)
		if !ok {
			return valueError(f, value)
		}
		_, err := s.packString(p, f.key.Hash, f.off, str, f.kind.Capacity())
		return err

	case format.KindStringArray, format.KindString64Array, format.KindString256Array:
		return s.planStringArray(p, f, value)

	default:
		return fmt.Errorf("%w: %s for key %q (hash 0x%08x, offset %d)",
			errs.ErrUnsupportedKind, f.kind, f.key.Raw, f.key.Hash, f.off)
	}
}

// planScalar plans a single bool, s32 or f32 write at off.
func (s *Savefile) planScalar(p *writePlan, f field, kind format.Kind, off int, value any) error {
	switch kind {
	case format.KindBool, format.KindS32, format.KindF32:
	default:
		return fmt.Errorf("%w: %s is not a scalar kind", errs.ErrUnsupportedKind, kind)
	}

	w, ok := scalarWord(kind, value)
	if !ok {
		return valueError(f, value)
	}
	p.putU32(off, w)

	return nil
}

// scalarWord converts value to the payload word of a bool, s32 or f32 slot.
func scalarWord(kind format.Kind, value any) (uint32, bool) {
	switch kind {
	case format.KindBool:
		b, ok := asBool(value)
		if !ok {
			return 0, false
		}
		if b {
			return 1, true
		}
		return 0, true
	case format.KindS32:
		i, ok := asInt32(value)
		return uint32(i), ok //nolint:gosec
	case format.KindF32:
		v, ok := asFloat32(value)
		return math.Float32bits(v), ok
	default:
		return 0, false
	}
}

func (s *Savefile) planVector(p *writePlan, f field, value any) error {
	n := s.runLength(f.key.Hash, f.off)

	switch len(f.key.Index) {
	case 0:
		m := f.kind.Width()
		vec, ok := asVector(value, m)
		if !ok {
			return valueError(f, value)
		}
		if n < m {
			return fmt.Errorf("%w: %q has %d slots, need %d", errs.ErrRunTooShort, f.key.Raw, n, m)
		}
		for i, v := range vec {
			p.putF32(f.off+i*section.SlotSize, v)
		}
		return nil
	case 1:
		i := f.key.Index[0]
		if i >= n {
			return rangeError(f, i, n)
		}
		return s.planScalar(p, f, format.KindF32, f.off+i*section.SlotSize, value)
	default:
		return indexError(f)
	}
}

func (s *Savefile) planArray(p *writePlan, f field, value any) error {
	n := s.runLength(f.key.Hash, f.off)
	elem := f.kind.Element()

	switch len(f.key.Index) {
	case 0:
		items, ok := asSlice(value)
		if !ok {
			return valueError(f, value)
		}
		// Every element is checked, including the ones truncation drops.
		words := make([]uint32, len(items))
		for i, item := range items {
			if words[i], ok = scalarWord(elem, item); !ok {
				return valueError(f, item)
			}
		}
		for i := range n {
			var w uint32
			if i < len(words) {
				w = words[i]
			}
			p.putU32(f.off+i*section.SlotSize, w)
		}
		return nil
	case 1:
		i := f.key.Index[0]
		if i >= n {
			return rangeError(f, i, n)
		}
		return s.planScalar(p, f, elem, f.off+i*section.SlotSize, value)
	default:
		return indexError(f)
	}
}

func (s *Savefile) planVectorArray(p *writePlan, f field, value any) error {
	m := f.kind.Width()
	n := s.runLength(f.key.Hash, f.off) / m
	stride := m * section.SlotSize

	switch len(f.key.Index) {
	case 0:
		items, ok := asSlice(value)
		if !ok {
			return valueError(f, value)
		}
		vectors := make([][]float32, len(items))
		for i, item := range items {
			if vectors[i], ok = asVector(item, m); !ok {
				return valueError(f, value)
			}
		}
		for i := range n {
			for j := range m {
				var v float32
				if i < len(vectors) {
					v = vectors[i][j]
				}
				p.putF32(f.off+i*stride+j*section.SlotSize, v)
			}
		}
		return nil
	case 1:
		i := f.key.Index[0]
		if i >= n {
			return rangeError(f, i, n)
		}
		vec, ok := asVector(value, m)
		if !ok {
			return valueError(f, value)
		}
		for j, v := range vec {
			p.putF32(f.off+i*stride+j*section.SlotSize, v)
		}
		return nil
	default:
		i, j := f.key.Index[0], f.key.Index[1]
		if i >= n {
			return rangeError(f, i, n)
		}
		if j >= m {
			return rangeError(f, j, m)
		}
		return s.planScalar(p, f, format.KindF32, f.off+i*stride+j*section.SlotSize, value)
	}
}

func (s *Savefile) planStringArray(p *writePlan, f field, value any) error {
	capacity := f.kind.Capacity()
	step := slotsPerString(capacity) * section.SlotSize
	count := s.runLength(f.key.Hash, f.off) / slotsPerString(capacity)

	switch len(f.key.Index) {
	case 0:
		items, ok := convertAll(value, asString)
		if !ok {
			return valueError(f, value)
		}
		for _, str := range items[min(count, len(items)):] {
			if _, err := checkString(str, capacity); err != nil {
				return err
			}
		}
		off := f.off
		for i := range count {
			var str string
			if i < len(items) {
				str = items[i]
			}
			next, err := s.packString(p, f.key.Hash, off, str, capacity)
			if err != nil {
				return err
			}
			off = next
		}
		return nil
	case 1:
		i := f.key.Index[0]
		if i >= count {
			return rangeError(f, i, count)
		}
		str, ok := asString(value)
		if !ok {
			return valueError(f, value)
		}
		_, err := s.packString(p, f.key.Hash, f.off+i*step, str, capacity)
		return err
	default:
		return indexError(f)
	}
}

func valueError(f field, value any) error {
	return fmt.Errorf("%w: %T %v for %s field %q", errs.ErrInvalidValue, value, value, f.kind, f.key.Raw)
}

// Add adds delta to the s32 or f32 value addressed by key. Indexed elements of numeric
// vectors and arrays are accepted; whole vectors, arrays, bools and strings are not.
//
// Returns errs.ErrKindMismatch for non-numeric targets and errs.ErrInvalidValue when delta
// is not numeric, not integral for an s32 target, or the sum overflows the field.
func (s *Savefile) Add(key string, delta any) error {
	if !s.loaded {
		return errs.ErrNotLoaded
	}

	kind, err := s.table.Resolve(key)
	if err != nil {
		return err
	}

	switch kind {
	case format.KindS32:
		d, ok := asInt64(delta)
		if !ok {
			return fmt.Errorf("%w: delta %T %v for s32 field %q", errs.ErrInvalidValue, delta, delta, key)
		}
		cur, err := s.GetS32(key)
		if err != nil {
			return err
		}
		sum := int64(cur) + d
		if sum < math.MinInt32 || sum > math.MaxInt32 {
			return fmt.Errorf("%w: %d + %d overflows s32 field %q", errs.ErrInvalidValue, cur, d, key)
		}
		return s.Set(key, sum)

	case format.KindF32:
		d, ok := asFloat64(delta)
		if !ok {
			return fmt.Errorf("%w: delta %T %v for f32 field %q", errs.ErrInvalidValue, delta, delta, key)
		}
		cur, err := s.GetF32(key)
		if err != nil {
			return err
		}
		return s.Set(key, float64(cur)+d)

	default:
		return fmt.Errorf("%w: cannot add to %s field %q", errs.ErrKindMismatch, kind, key)
	}
}
