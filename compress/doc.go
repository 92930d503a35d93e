// Package compress provides the codecs used to store savefile snapshots.
//
// A snapshot is a full copy of a savefile buffer taken by Savefile.Backup. Savefiles are
// about 1 MiB and mostly repetitive (runs of identical hashes, zero payloads), so keeping
// snapshots compressed is cheap and cuts their memory footprint by an order of magnitude.
//
// Supported algorithms:
//   - None: an independent uncompressed copy
//   - Zstd: best ratio (gozstd with cgo, klauspost/compress/zstd without)
//   - S2: fast, good ratio (klauspost/compress/s2)
//   - LZ4: fastest restore (pierrec/lz4 block format with a size prefix)
//
// Codecs are stateless values and safe for concurrent use; encoders and decoders that hold
// internal state are pooled.
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	snapshot, err := codec.Compress(buf)
package compress
