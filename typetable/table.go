package typetable

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/format"
	"github.com/arloliu/savkit/internal/collision"
	"github.com/arloliu/savkit/internal/hash"
	"github.com/arloliu/savkit/internal/options"
)

// Table maps field hashes to their kinds. A Table is immutable once built and is safe to
// share between any number of savefiles and goroutines.
type Table struct {
	kinds map[uint32]format.Kind
	names *collision.Tracker
}

// Kind returns the kind registered for hash.
func (t *Table) Kind(hash uint32) (format.Kind, bool) {
	k, ok := t.kinds[hash]
	return k, ok
}

// KindOf returns the kind registered for a bare field name.
func (t *Table) KindOf(name string) (format.Kind, bool) {
	return t.Kind(hash.Field(name))
}

// Resolve returns the kind addressed by a field key.
//
// Without an index this is the field kind. With one index it is the element kind of a
// vector or array field (f32 for vectors and f32_array, s32, bool or string for the other
// arrays, and the matching vector kind for vector arrays). Two indices address a single
// component of a vector array and resolve to f32.
//
// Returns a *errs.LookupError wrapping errs.ErrUnknownKind when the field has no kind, and
// errs.ErrUnsupportedKind when the field cannot be indexed that deep.
func (t *Table) Resolve(key string) (format.Kind, error) {
	k, err := ParseKey(key)
	if err != nil {
		return format.KindInvalid, err
	}

	return t.ResolveKey(k)
}

// ResolveKey is Resolve for an already parsed key.
func (t *Table) ResolveKey(k Key) (format.Kind, error) {
	kind, ok := t.kinds[k.Hash]
	if !ok {
		return format.KindInvalid, &errs.LookupError{Key: k.Raw, Hash: k.Hash, Err: errs.ErrUnknownKind}
	}

	for range k.Index {
		elem := kind.Element()
		if elem == format.KindInvalid {
			return format.KindInvalid, fmt.Errorf("%w: %s cannot be indexed by %q", errs.ErrUnsupportedKind, kind, k.Raw)
		}
		kind = elem
	}

	return kind, nil
}

// Len returns the number of registered hashes.
func (t *Table) Len() int {
	return len(t.kinds)
}

// Hashes returns every registered hash in ascending order.
func (t *Table) Hashes() []uint32 {
	return slices.Sorted(maps.Keys(t.kinds))
}

// Name returns the field name registered for hash, if any.
func (t *Table) Name(hash uint32) (string, bool) {
	return t.names.Name(hash)
}

// Names returns the registered field names in registration order.
func (t *Table) Names() []string {
	return slices.Clone(t.names.Names())
}

// Collisions returns the registered names grouped by the hash they share. It is empty unless
// HasCollision reports true.
func (t *Table) Collisions() map[uint32][]string {
	return t.names.Collisions()
}

// HasCollision reports whether two registered names share a hash.
func (t *Table) HasCollision() bool {
	return t.names.HasCollision()
}

// Builder accumulates kinds and names for a Table.
type Builder struct {
	kinds map[uint32]format.Kind
	names []string
}

// Option configures a Builder before its entries are loaded.
type Option = options.Option[*Builder]

// WithNames registers human-readable field names with the table.
func WithNames(names ...string) Option {
	return options.NoError(func(b *Builder) {
		b.names = append(b.names, names...)
	})
}

// WithKinds registers kinds by field name, which is handy for fixtures and tools that know
// the names but not the hashes.
func WithKinds(kinds map[string]format.Kind) Option {
	return options.New(func(b *Builder) error {
		for _, name := range slices.Sorted(maps.Keys(kinds)) {
			if err := b.Add(hash.Field(name), kinds[name]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			b.names = append(b.names, name)
		}

		return nil
	})
}

// NewBuilder creates an empty builder and applies opts.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{kinds: make(map[uint32]format.Kind)}
	if err := options.Apply(b, opts...); err != nil {
		return nil, err
	}

	return b, nil
}

// Add registers kind for hash. A later registration for the same hash replaces the earlier one.
func (b *Builder) Add(hash uint32, kind format.Kind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidKind, kind)
	}
	b.kinds[hash] = kind

	return nil
}

// AddEntry registers an interchange entry: a signed decimal hash key and a kind string.
func (b *Builder) AddEntry(key, kind string) error {
	h, err := ParseHashKey(key)
	if err != nil {
		return err
	}
	k, ok := format.ParseKind(kind)
	if !ok {
		return fmt.Errorf("%w: %q for key %s", errs.ErrInvalidKind, kind, key)
	}

	return b.Add(h, k)
}

// AddName registers a human-readable field name.
func (b *Builder) AddName(name string) {
	b.names = append(b.names, name)
}

// Build returns an immutable Table holding a copy of the builder's entries.
func (b *Builder) Build() (*Table, error) {
	tracker := collision.NewTracker()
	for _, name := range b.names {
		if err := tracker.Track(name, hash.Field(name)); err != nil {
			return nil, fmt.Errorf("field name %q: %w", name, err)
		}
	}

	return &Table{kinds: maps.Clone(b.kinds), names: tracker}, nil
}

// New builds a Table directly from a hash → kind map.
func New(kinds map[uint32]format.Kind, opts ...Option) (*Table, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}
	for h, k := range kinds {
		if err := b.Add(h, k); err != nil {
			return nil, fmt.Errorf("hash 0x%08x: %w", h, err)
		}
	}

	return b.Build()
}
