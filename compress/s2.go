package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/savkit/internal/pool"
)

// S2Compressor provides S2 compression, a good default for savefile snapshots: most slots
// are zero or repeat their neighbour's hash, and S2 compresses that fast.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bound := s2.MaxEncodedLen(len(data))
	if bound < 0 {
		return nil, fmt.Errorf("s2: input of %d bytes is too large", len(data))
	}

	scratch := pool.GetScratch()
	defer pool.PutScratch(scratch)

	// the result must not alias the pooled scratch
	return bytes.Clone(s2.Encode(scratch.Sized(bound), data)), nil
}

// Decompress decompresses the input data using S2 decompression.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
