package savefile

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/section"
)

// Backup stores a snapshot of the current buffer, replacing any previous one. The snapshot
// is held through the codec chosen with WithBackupCompression.
func (s *Savefile) Backup() error {
	if !s.loaded {
		return errs.ErrNotLoaded
	}

	data, err := s.codec.Compress(s.buf)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	s.backup = data
	s.hasBackup = true

	s.logger.Debug("savefile backup stored",
		slog.String("compression", s.compression.String()),
		slog.Int("size", len(s.buf)),
		slog.Int("stored", len(data)),
	)

	return nil
}

// Restore copies the last snapshot back into the buffer. Slot offsets never move, so the
// offset index stays valid. The snapshot is kept and Restore may be called again.
//
// Returns errs.ErrNoBackup if Backup was never called since the last Read.
func (s *Savefile) Restore() error {
	if !s.loaded {
		return errs.ErrNotLoaded
	}
	if !s.hasBackup {
		return errs.ErrNoBackup
	}

	data, err := s.codec.Decompress(s.backup)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if len(data) != len(s.buf) {
		return fmt.Errorf("%w: snapshot is %d bytes, buffer is %d", errs.ErrSizeMismatch, len(data), len(s.buf))
	}
	copy(s.buf, data)

	s.logger.Debug("savefile restored from backup", slog.Int("size", len(s.buf)))

	return nil
}

// HasBackup reports whether a snapshot is available to Restore.
func (s *Savefile) HasBackup() bool {
	return s.hasBackup
}

// Clone returns an independent Savefile over a copy of the buffer, indexed afresh and
// sharing the type table, logger and backup codec. The backup snapshot is not copied.
func (s *Savefile) Clone() (*Savefile, error) {
	if !s.loaded {
		return nil, errs.ErrNotLoaded
	}

	c := &Savefile{
		table:       s.table,
		codec:       s.codec,
		compression: s.compression,
		logger:      s.logger,
	}
	if err := c.Read(bytes.Clone(s.buf)); err != nil {
		return nil, err
	}

	return c, nil
}

// Diff returns the byte offset of every 4-byte word that differs between the buffers of a
// and b, in ascending order. Words past the end of the shorter buffer count as different.
func Diff(a, b *Savefile) []int {
	if len(a.buf) == len(b.buf) && a.Fingerprint() == b.Fingerprint() {
		return nil
	}

	size := max(len(a.buf), len(b.buf))
	var out []int
	for off := 0; off < size; off += 4 {
		if !bytes.Equal(word(a.buf, off), word(b.buf, off)) {
			out = append(out, off)
		}
	}

	return out
}

// ChangedFields returns the hash of every field with at least one slot that differs between
// a and b, ordered by offset. Header words and slots whose hash itself changed are skipped.
func ChangedFields(a, b *Savefile) []uint32 {
	seen := make(map[uint32]struct{})
	var out []uint32
	for _, off := range Diff(a, b) {
		if off < section.SlotsOffset {
			continue
		}
		slot := off - (off-section.SlotsOffset)%section.SlotSize
		ha, okA := a.hashAt(slot)
		hb, okB := b.hashAt(slot)
		if !okA || !okB || ha != hb {
			continue
		}
		if _, ok := seen[ha]; ok {
			continue
		}
		seen[ha] = struct{}{}
		out = append(out, ha)
	}

	return out
}

// word returns the 4 bytes at off, or fewer when off is near the end of buf.
func word(buf []byte, off int) []byte {
	if off >= len(buf) {
		return nil
	}

	return buf[off:min(off+4, len(buf))]
}
