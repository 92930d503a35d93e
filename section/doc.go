// Package section defines the low-level binary structures and constants of the savefile format.
//
// # File Structure
//
// A savefile is a fixed 12-byte header followed by 8-byte slots up to the end of the buffer:
//
//	┌─────────────────────────────────────────────┐
//	│ Header (12 bytes, fixed)                    │
//	│  - Version (4 bytes)                        │
//	│  - Marker (4 bytes, 0xFFFFFFFF)             │
//	│  - Order probe (4 bytes, 0x1)               │
//	├─────────────────────────────────────────────┤
//	│ Slot 0 (8 bytes)                            │
//	│  - Field hash (4 bytes, CRC32 of the name)  │
//	│  - Payload (4 bytes, value or 4 chars)      │
//	├─────────────────────────────────────────────┤
//	│ Slot 1 ... Slot N-1                         │
//	└─────────────────────────────────────────────┘
//
// There is no byte order flag. The probe word reads as 0x1 only in the file's own byte order,
// see endian.DetectOrder. Every multi-byte value, hashes included, uses that order; packed
// characters are stored byte by byte and are not affected by it.
//
// A field occupies a run of consecutive slots sharing its hash. Scalars use one slot, vectors
// one slot per component, arrays one slot per element (or per component for vector arrays) and
// strings capacity/4 slots per string.
//
// # Size Validation
//
// Each known release has an exact buffer size. Buffers larger than SizeCheckThreshold bytes
// must match it; smaller buffers are accepted so that trimmed fixtures can be parsed.
package section
