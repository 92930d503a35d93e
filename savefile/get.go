package savefile

import (
	"fmt"

	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/format"
	"github.com/arloliu/savkit/section"
)

// Get decodes the field addressed by key.
//
// The dynamic type of the result depends on the field kind:
//
//	bool                                   bool
//	s32                                    int32
//	f32                                    float32
//	vector2f, vector3f, vector4f           []float32
//	f32_array / s32_array / bool_array     []float32 / []int32 / []bool
//	vector2f_array, vector3f_array         [][]float32
//	string, string64, string256            string
//	string_array, string64_array, ...      []string
//
// Name[i] returns element i of a vector or array (a []float32 for vector arrays) and
// Name[i][j] returns component j of element i of a vector array.
//
// Returns:
//   - *errs.LookupError if the field is missing from the buffer or the type table
//   - errs.ErrIndexOutOfRange if an index is past the end of the field
//   - errs.ErrUnsupportedKind if the field cannot be indexed the way key asks
func (s *Savefile) Get(key string) (any, error) {
	f, err := s.lookup(key)
	if err != nil {
		return nil, err
	}

	return s.get(f)
}

// GetHash decodes the whole field stored under hash. It is Get for fields whose name is
// unknown, such as when walking Keys.
func (s *Savefile) GetHash(hash uint32) (any, error) {
	if !s.loaded {
		return nil, errs.ErrNotLoaded
	}

	f, err := s.lookupKey(hashKey(hash))
	if err != nil {
		return nil, err
	}

	return s.get(f)
}

func (s *Savefile) get(f field) (any, error) {
	switch f.kind {
	case format.KindBool, format.KindS32, format.KindF32:
		if f.key.HasIndex() {
			return nil, indexError(f)
		}
		return s.readScalar(f.kind, f.off), nil

	case format.KindVector2f, format.KindVector3f, format.KindVector4f, format.KindF32Array:
		return pick(f, s.readF32Run(f))

	case format.KindS32Array:
		return pick(f, s.readS32Run(f))

	case format.KindBoolArray:
		return pick(f, s.readBoolRun(f))

	case format.KindVector2fArray, format.KindVector3fArray:
		return pickVector(f, s.readVectorRun(f))

	case format.KindString, format.KindString64, format.KindString256:
		if f.key.HasIndex() {
			return nil, indexError(f)
		}
		str, _ := s.unpackString(f.key.Hash, f.off, f.kind.Capacity())
		return str, nil

	case format.KindStringArray, format.KindString64Array, format.KindString256Array:
		return pick(f, s.readStringRun(f))

	default:
		return nil, fmt.Errorf("%w: %s for key %q (hash 0x%08x, offset %d)",
			errs.ErrUnsupportedKind, f.kind, f.key.Raw, f.key.Hash, f.off)
	}
}

func (s *Savefile) readScalar(kind format.Kind, off int) any {
	switch kind {
	case format.KindBool:
		return s.readBool(off)
	case format.KindS32:
		return s.readS32(off)
	default:
		return s.readF32(off)
	}
}

// readRun decodes one value per slot over the field's run.
func readRun[T any](s *Savefile, f field, read func(off int) T) []T {
	n := s.runLength(f.key.Hash, f.off)
	out := make([]T, n)
	for i := range out {
		out[i] = read(f.off + i*section.SlotSize)
	}

	return out
}

func (s *Savefile) readF32Run(f field) []float32 {
	return readRun(s, f, s.readF32)
}

func (s *Savefile) readS32Run(f field) []int32 {
	return readRun(s, f, s.readS32)
}

func (s *Savefile) readBoolRun(f field) []bool {
	return readRun(s, f, s.readBool)
}

// readVectorRun groups the run into whole elements of Width components each.
func (s *Savefile) readVectorRun(f field) [][]float32 {
	m := f.kind.Width()
	n := s.runLength(f.key.Hash, f.off) / m

	out := make([][]float32, n)
	off := f.off
	for i := range out {
		vec := make([]float32, m)
		for j := range vec {
			vec[j] = s.readF32(off)
			off += section.SlotSize
		}
		out[i] = vec
	}

	return out
}

// readStringRun decodes consecutive string blocks until a block does not start with the
// field hash.
func (s *Savefile) readStringRun(f field) []string {
	capacity := f.kind.Capacity()
	step := slotsPerString(capacity) * section.SlotSize

	var out []string
	for off := f.off; ; off += step {
		str, ok := s.unpackString(f.key.Hash, off, capacity)
		if !ok {
			return out
		}
		out = append(out, str)
	}
}

// pick applies a single index to a decoded run.
func pick[T any](f field, values []T) (any, error) {
	switch len(f.key.Index) {
	case 0:
		return values, nil
	case 1:
		i := f.key.Index[0]
		if i >= len(values) {
			return nil, rangeError(f, i, len(values))
		}
		return values[i], nil
	default:
		return nil, indexError(f)
	}
}

// pickVector applies up to two indices to a decoded vector array.
func pickVector(f field, vectors [][]float32) (any, error) {
	if len(f.key.Index) == 0 {
		return vectors, nil
	}

	i := f.key.Index[0]
	if i >= len(vectors) {
		return nil, rangeError(f, i, len(vectors))
	}
	if len(f.key.Index) == 1 {
		return vectors[i], nil
	}

	j := f.key.Index[1]
	if j >= len(vectors[i]) {
		return nil, rangeError(f, j, len(vectors[i]))
	}

	return vectors[i][j], nil
}

func rangeError(f field, i, n int) error {
	return fmt.Errorf("%w: %q index %d, length %d", errs.ErrIndexOutOfRange, f.key.Raw, i, n)
}

func indexError(f field) error {
	return fmt.Errorf("%w: %s cannot be indexed by %q", errs.ErrUnsupportedKind, f.kind, f.key.Raw)
}

// GetBool decodes a bool field or bool_array element.
func (s *Savefile) GetBool(key string) (bool, error) {
	return getAs[bool](s, key)
}

// GetS32 decodes an s32 field or s32_array element.
func (s *Savefile) GetS32(key string) (int32, error) {
	return getAs[int32](s, key)
}

// GetF32 decodes an f32 field or a single float of a vector or float array.
func (s *Savefile) GetF32(key string) (float32, error) {
	return getAs[float32](s, key)
}

// GetString decodes a string field or string array element.
func (s *Savefile) GetString(key string) (string, error) {
	return getAs[string](s, key)
}

// GetF32s decodes a vector, an f32_array, or one element of a vector array.
func (s *Savefile) GetF32s(key string) ([]float32, error) {
	return getAs[[]float32](s, key)
}

// GetS32s decodes an s32_array.
func (s *Savefile) GetS32s(key string) ([]int32, error) {
	return getAs[[]int32](s, key)
}

// GetBools decodes a bool_array.
func (s *Savefile) GetBools(key string) ([]bool, error) {
	return getAs[[]bool](s, key)
}

// GetStrings decodes a string array.
func (s *Savefile) GetStrings(key string) ([]string, error) {
	return getAs[[]string](s, key)
}

// GetVectors decodes a vector array.
func (s *Savefile) GetVectors(key string) ([][]float32, error) {
	return getAs[[][]float32](s, key)
}

func getAs[T any](s *Savefile, key string) (T, error) {
	var zero T

	v, err := s.Get(key)
	if err != nil {
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q decodes to %T, not %T", errs.ErrKindMismatch, key, v, zero)
	}

	return out, nil
}
