package compress

// ZstdCompressor provides Zstandard compression, the best ratio for snapshots kept around
// for a long time (archived backups, diff baselines).
//
// With cgo the valyala/gozstd bindings are used; pure-Go builds fall back to
// klauspost/compress/zstd. Both produce standard zstd frames, so snapshots are portable
// between the two builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
