package savefile

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/arloliu/savkit/compress"
	"github.com/arloliu/savkit/endian"
	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/format"
	"github.com/arloliu/savkit/internal/hash"
	"github.com/arloliu/savkit/internal/options"
	"github.com/arloliu/savkit/section"
	"github.com/arloliu/savkit/typetable"
)

// Savefile is an in-memory savefile: the raw buffer, its detected byte order, the offset
// index built from it and an optional backup snapshot.
//
// Note: a Savefile performs no internal synchronization. It must be owned by a single
// goroutine at a time. The Table it references is immutable and may be shared freely.
type Savefile struct {
	table   *typetable.Table
	buf     []byte
	engine  endian.EndianEngine
	header  section.Header
	offsets map[uint32]int
	loaded  bool

	backup      []byte
	hasBackup   bool
	codec       compress.Codec
	compression format.CompressionType

	logger *slog.Logger
}

// Option configures a Savefile at construction.
type Option = options.Option[*Savefile]

// WithLogger sets the logger used for load summaries and lookup misses.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(s *Savefile) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// WithBackupCompression sets the codec used to hold backup snapshots.
// The default keeps an uncompressed copy.
func WithBackupCompression(ct format.CompressionType) Option {
	return options.New(func(s *Savefile) error {
		codec, err := compress.CreateCodec(ct, "backup")
		if err != nil {
			return err
		}
		s.codec = codec
		s.compression = ct

		return nil
	})
}

// New creates an empty Savefile that resolves field kinds through table.
// Call Read to load a buffer before using any accessor.
func New(table *typetable.Table, opts ...Option) (*Savefile, error) {
	if table == nil {
		return nil, fmt.Errorf("savefile: nil type table")
	}

	s := &Savefile{
		table:       table,
		codec:       compress.NewNoOpCompressor(),
		compression: format.CompressionNone,
		logger:      slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Read parses buf and builds the offset index.
//
// The Savefile takes ownership of buf: it is mutated in place by Set and Add and returned
// by Raw. Any previous buffer and backup snapshot are dropped.
//
// Returns a format error (errs.ErrBufferTooShort, errs.ErrUnknownByteOrder,
// errs.ErrUnknownVersion, errs.ErrInvalidMarker or errs.ErrSizeMismatch). After a failed
// Read every accessor returns errs.ErrNotLoaded.
func (s *Savefile) Read(buf []byte) error {
	s.loaded = false
	s.buf = nil
	s.offsets = nil
	s.backup = nil
	s.hasBackup = false

	header, engine, err := section.ParseHeader(buf)
	if err != nil {
		return err
	}

	s.buf = buf
	s.header = header
	s.engine = engine
	s.offsets = buildIndex(buf, engine)
	s.loaded = true

	release, _ := header.Release()
	s.logger.Debug("savefile loaded",
		slog.String("release", release.Name),
		slog.String("version", fmt.Sprintf("0x%x", header.Version)),
		slog.Bool("big_endian", endian.IsBigEndian(engine)),
		slog.Int("size", len(buf)),
		slog.Int("fields", len(s.offsets)),
	)

	return nil
}

// Loaded reports whether a buffer was read successfully.
func (s *Savefile) Loaded() bool {
	return s.loaded
}

// Raw returns the live buffer. It stays valid until the next Read or Restore.
func (s *Savefile) Raw() []byte {
	return s.buf
}

// Size returns the buffer size in bytes.
func (s *Savefile) Size() int {
	return len(s.buf)
}

// Header returns the parsed header.
func (s *Savefile) Header() section.Header {
	return s.header
}

// Version returns the header version word.
func (s *Savefile) Version() uint32 {
	return s.header.Version
}

// Release returns the game release that wrote the loaded buffer.
func (s *Savefile) Release() (section.Release, bool) {
	if !s.loaded {
		return section.Release{}, false
	}

	return s.header.Release()
}

// ByteOrder returns the byte order detected by Read, or nil before a successful Read.
func (s *Savefile) ByteOrder() endian.EndianEngine {
	return s.engine
}

// Table returns the type table the savefile resolves kinds with.
func (s *Savefile) Table() *typetable.Table {
	return s.table
}

// Fingerprint returns the xxHash64 of the current buffer.
func (s *Savefile) Fingerprint() uint64 {
	return hash.Fingerprint(s.buf)
}

// IsKey reports whether the field addressed by key has a slot in the buffer. Indices are
// ignored, so IsKey("Items[3]") reports whether Items exists at all.
//
// Callers should check IsKey before Get or Set when a field may legitimately be missing,
// for instance across releases.
func (s *Savefile) IsKey(key string) bool {
	if !s.loaded {
		return false
	}

	k, err := typetable.ParseKey(key)
	if err != nil {
		return false
	}
	_, ok := s.offsets[k.Hash]

	return ok
}

// Keys returns the hash of every field in the buffer ordered by the offset of its first slot.
func (s *Savefile) Keys() []uint32 {
	keys := slices.Collect(maps.Keys(s.offsets))
	slices.SortFunc(keys, func(a, b uint32) int {
		return cmp.Compare(s.offsets[a], s.offsets[b])
	})

	return keys
}

// Offset returns the offset of the first slot of the field addressed by key.
func (s *Savefile) Offset(key string) (int, error) {
	f, err := s.lookup(key)
	if err != nil {
		return 0, err
	}

	return f.off, nil
}

// OffsetOf returns the offset of the first slot of the field stored under hash.
func (s *Savefile) OffsetOf(hash uint32) (int, bool) {
	off, ok := s.offsets[hash]
	return off, ok
}

// Kind returns the kind addressed by key; see typetable.Table.Resolve.
func (s *Savefile) Kind(key string) (format.Kind, error) {
	return s.table.Resolve(key)
}

// RunLength returns the number of consecutive slots the field addressed by key occupies.
func (s *Savefile) RunLength(key string) (int, error) {
	f, err := s.lookup(key)
	if err != nil {
		return 0, err
	}

	return s.runLength(f.key.Hash, f.off), nil
}

// field is a key resolved against the offset index and the type table.
type field struct {
	key  typetable.Key
	kind format.Kind
	off  int
}

func (s *Savefile) lookup(key string) (field, error) {
	if !s.loaded {
		return field{}, errs.ErrNotLoaded
	}

	k, err := typetable.ParseKey(key)
	if err != nil {
		return field{}, err
	}

	return s.lookupKey(k)
}

func (s *Savefile) lookupKey(k typetable.Key) (field, error) {
	off, ok := s.offsets[k.Hash]
	if !ok {
		s.logger.Debug("field offset not found", slog.String("key", k.Raw), slog.String("hash", fmt.Sprintf("0x%08x", k.Hash)))
		return field{}, &errs.LookupError{Key: k.Raw, Hash: k.Hash, Err: errs.ErrUnknownKey}
	}

	kind, ok := s.table.Kind(k.Hash)
	if !ok {
		s.logger.Debug("field kind not found", slog.String("key", k.Raw), slog.String("hash", fmt.Sprintf("0x%08x", k.Hash)), slog.Int("offset", off))
		return field{}, &errs.LookupError{Key: k.Raw, Hash: k.Hash, Err: errs.ErrUnknownKind}
	}

	return field{key: k, kind: kind, off: off}, nil
}

// hashKey addresses a whole field by hash, for callers that do not know its name.
func hashKey(h uint32) typetable.Key {
	return typetable.Key{Raw: fmt.Sprintf("0x%08x", h), Hash: h}
}
