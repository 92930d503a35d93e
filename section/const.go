package section

// Marker is the required value of the header marker word.
const Marker = 0xFFFFFFFF

// offset and section sizes in the savefile
const (
	VersionOffset      = 0  // byte offset of the version word
	MarkerOffset       = 4  // byte offset of the marker word
	ProbeOffset        = 8  // byte offset of the order-probe word
	HeaderSize         = 12 // fixed header size in bytes
	SlotSize           = 8  // size of one hash/payload slot in bytes
	SlotHashSize       = 4  // size of the slot hash in bytes
	SlotPayloadSize    = 4  // size of the slot payload in bytes
	SlotsOffset        = HeaderSize
	SizeCheckThreshold = 3000 // buffers larger than this must match the release size exactly
)
