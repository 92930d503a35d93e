// Package hash provides the field-name hash used as the savefile key and a fast
// fingerprint for whole buffers.
package hash

import (
	"hash/crc32"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Field computes the field hash of a name: the reflected CRC32 (polynomial 0xEDB88320,
// complemented at start and end) over the low byte of each UTF-16 code unit of name.
//
// For ASCII names this is the plain IEEE CRC32 of the name bytes.
func Field(name string) uint32 {
	if isASCII(name) {
		return crc32.ChecksumIEEE([]byte(name))
	}

	units := utf16.Encode([]rune(name))
	b := make([]byte, len(units))
	for i, u := range units {
		b[i] = byte(u)
	}

	return crc32.Checksum(b, crc32.IEEETable)
}

// Fingerprint computes the xxHash64 of a buffer.
func Fingerprint(buf []byte) uint64 {
	return xxhash.Sum64(buf)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
