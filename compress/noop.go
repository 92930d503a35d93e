package compress

// NoOpCompressor stores snapshots uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns an independent copy of data.
//
// Snapshots must never alias the live savefile buffer, so unlike the other codecs a copy is
// always made.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

// Decompress returns an independent copy of data.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}
