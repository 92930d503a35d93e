// Package format defines the closed enumerations shared by the savkit packages: the field
// kinds a type table can assign to a hash, and the compression types used for snapshots.
package format

type (
	Kind            uint8
	CompressionType uint8
)

const (
	KindInvalid Kind = iota
	KindBool
	KindS32
	KindF32
	KindVector2f
	KindVector3f
	KindVector4f
	KindString
	KindString64
	KindString256
	KindS32Array
	KindF32Array
	KindBoolArray
	KindStringArray
	KindString64Array
	KindString256Array
	KindVector2fArray
	KindVector3fArray
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var kindNames = [...]string{
	KindInvalid:        "invalid",
	KindBool:           "bool",
	KindS32:            "s32",
	KindF32:            "f32",
	KindVector2f:       "vector2f",
	KindVector3f:       "vector3f",
	KindVector4f:       "vector4f",
	KindString:         "string",
	KindString64:       "string64",
	KindString256:      "string256",
	KindS32Array:       "s32_array",
	KindF32Array:       "f32_array",
	KindBoolArray:      "bool_array",
	KindStringArray:    "string_array",
	KindString64Array:  "string64_array",
	KindString256Array: "string256_array",
	KindVector2fArray:  "vector2f_array",
	KindVector3fArray:  "vector3f_array",
}

// ParseKind maps a type table kind string to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if k != int(KindInvalid) && name == s {
			return Kind(k), true
		}
	}

	return KindInvalid, false
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k > KindInvalid && k <= KindVector3fArray
}

// IsVector reports whether k is a fixed-width float vector.
func (k Kind) IsVector() bool {
	return k == KindVector2f || k == KindVector3f || k == KindVector4f
}

// IsString reports whether k is a single packed string.
func (k Kind) IsString() bool {
	return k == KindString || k == KindString64 || k == KindString256
}

// IsStringArray reports whether k is an array of packed strings.
func (k Kind) IsStringArray() bool {
	return k == KindStringArray || k == KindString64Array || k == KindString256Array
}

// IsVectorArray reports whether k is an array of float vectors.
func (k Kind) IsVectorArray() bool {
	return k == KindVector2fArray || k == KindVector3fArray
}

// Width returns the number of slots per logical element: the component count of vectors and
// vector arrays, and 1 for every other kind.
func (k Kind) Width() int {
	switch k {
	case KindVector2f, KindVector2fArray:
		return 2
	case KindVector3f, KindVector3fArray:
		return 3
	case KindVector4f:
		return 4
	default:
		return 1
	}
}

// Capacity returns the byte capacity of string kinds and string array elements, or 0.
func (k Kind) Capacity() int {
	switch k {
	case KindString, KindStringArray:
		return 32
	case KindString64, KindString64Array:
		return 64
	case KindString256, KindString256Array:
		return 256
	default:
		return 0
	}
}

// Element returns the kind of a single indexed element of k, or KindInvalid when k cannot be
// indexed. Vector arrays index into whole vectors.
func (k Kind) Element() Kind {
	switch k {
	case KindVector2f, KindVector3f, KindVector4f, KindF32Array:
		return KindF32
	case KindS32Array:
		return KindS32
	case KindBoolArray:
		return KindBool
	case KindStringArray, KindString64Array, KindString256Array:
		return KindString
	case KindVector2fArray:
		return KindVector2f
	case KindVector3fArray:
		return KindVector3f
	default:
		return KindInvalid
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
