package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/savkit/internal/pool"
)

// Each LZ4 snapshot starts with a 5-byte prefix: the little-endian uncompressed size and a
// block mode byte.
const (
	lz4SizePrefix = 5
	lz4ModeStored = 0
	lz4ModeBlock  = 1
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression with an uncompressed size prefix, so
// restoring a snapshot allocates its buffer exactly once.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 compression.
//
// Returns:
//   - []byte: size prefix followed by the LZ4 block (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > maxSnapshotSize {
		return nil, fmt.Errorf("lz4: input of %d bytes exceeds %d", len(data), maxSnapshotSize)
	}

	scratch := pool.GetScratch()
	defer pool.PutScratch(scratch)
	block := scratch.Sized(lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, block)
	if err != nil {
		return nil, err
	}

	mode := byte(lz4ModeBlock)
	if n == 0 {
		// incompressible
		mode = lz4ModeStored
		block, n = data, len(data)
	}

	dst := make([]byte, lz4SizePrefix+n)
	binary.LittleEndian.PutUint32(dst, uint32(len(data))) //nolint:gosec
	dst[4] = mode
	copy(dst[lz4SizePrefix:], block[:n])

	return dst, nil
}

// Decompress decompresses data produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4SizePrefix {
		return nil, fmt.Errorf("lz4: truncated size prefix")
	}

	size := int(binary.LittleEndian.Uint32(data))
	if size > maxSnapshotSize {
		return nil, fmt.Errorf("lz4: declared size %d exceeds %d", size, maxSnapshotSize)
	}

	block := data[lz4SizePrefix:]
	switch data[4] {
	case lz4ModeStored:
		if len(block) != size {
			return nil, fmt.Errorf("lz4: stored block of %d bytes, expected %d", len(block), size)
		}

		return append([]byte(nil), block...), nil
	case lz4ModeBlock:
	default:
		return nil, fmt.Errorf("lz4: unknown block mode %d", data[4])
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(block, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4: decompressed %d bytes, expected %d", n, size)
	}

	return buf, nil
}
