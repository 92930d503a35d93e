package typetable

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/internal/hash"
)

// MaxIndexDepth is the maximum number of bracketed indices a field key may carry.
const MaxIndexDepth = 2

// Key is a parsed field key of the form Name, Name[i] or Name[i][j].
type Key struct {
	Raw   string
	Name  string
	Hash  uint32
	Index []int
}

// ParseKey splits a field key into its bare name and bracketed indices and hashes the name.
//
// Returns errs.ErrInvalidKey for an empty name, malformed brackets, negative or non-decimal
// indices, or more than MaxIndexDepth indices.
func ParseKey(key string) (Key, error) {
	name, rest, found := strings.Cut(key, "[")
	if name == "" || strings.Contains(name, "]") {
		return Key{}, fmt.Errorf("%w: %q", errs.ErrInvalidKey, key)
	}

	k := Key{Raw: key, Name: name, Hash: hash.Field(name)}
	if !found {
		return k, nil
	}

	rest = "[" + rest
	for rest != "" {
		if rest[0] != '[' {
			return Key{}, fmt.Errorf("%w: %q", errs.ErrInvalidKey, key)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Key{}, fmt.Errorf("%w: unterminated index in %q", errs.ErrInvalidKey, key)
		}
		idx, err := parseIndex(rest[1:end])
		if err != nil {
			return Key{}, fmt.Errorf("%w: %q", errs.ErrInvalidKey, key)
		}
		k.Index = append(k.Index, idx)
		rest = rest[end+1:]
	}

	if len(k.Index) > MaxIndexDepth {
		return Key{}, fmt.Errorf("%w: too many indices in %q", errs.ErrInvalidKey, key)
	}

	return k, nil
}

// HasIndex reports whether the key carries at least one index.
func (k Key) HasIndex() bool {
	return len(k.Index) > 0
}

func (k Key) String() string {
	return k.Raw
}

func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, errs.ErrInvalidKey
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errs.ErrInvalidKey
		}
	}

	return strconv.Atoi(s)
}

// ParseHashKey converts a type table key into a field hash.
//
// Keys are decimal renderings of the hash as a signed 32-bit integer. Negative values keep
// their two's-complement bit pattern as unsigned, so "-1" maps to 0xFFFFFFFF. Unsigned
// renderings up to math.MaxUint32 are accepted unchanged.
func ParseHashKey(s string) (uint32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidHashKey, s)
	}
	if v < math.MinInt32 || v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %q out of 32-bit range", errs.ErrInvalidHashKey, s)
	}

	// The conversion keeps the low 32 bits, which is the two's-complement pattern for
	// negative keys.
	return uint32(v), nil //nolint:gosec
}
