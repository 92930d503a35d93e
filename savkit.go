// Package savkit reads and edits game savefiles: flat buffers of 8-byte slots keyed by the
// CRC32 hash of a field name.
//
// # Core Features
//
//   - Byte order detection from the header probe word, no external metadata needed
//   - Header validation against every known release and its exact file size
//   - Typed access to scalars, vectors, arrays, packed strings and arrays of vectors or strings
//   - Name[i] and Name[i][j] element access
//   - All-or-nothing writes: a rejected Set leaves the buffer byte-for-byte unchanged
//   - Backup snapshots, optionally compressed (Zstd, S2, LZ4)
//   - Patch documents in JSON or YAML
//
// # Basic Usage
//
//	table, err := savkit.LoadTypes("gamedata.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sav, err := savkit.Open("progress.sav", table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rupees, _ := sav.GetS32("CurrentRupee")
//	_ = sav.Add("CurrentRupee", 100)
//	_ = os.WriteFile("progress.sav", sav.Raw(), 0o644)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The savefile package holds the
// engine, typetable the field kinds, patch the document support and gametime the clock
// conversions.
package savkit

import (
	"fmt"
	"os"

	"github.com/arloliu/savkit/internal/hash"
	"github.com/arloliu/savkit/patch"
	"github.com/arloliu/savkit/savefile"
	"github.com/arloliu/savkit/typetable"
)

// LoadTypes reads a type table file (JSON, or YAML for .yaml/.yml).
//
// Parameters:
//   - path: type table file, an object mapping signed decimal hashes to kind names
//   - opts: builder options, for example typetable.WithNames to register field names
//
// Returns:
//   - *typetable.Table: the immutable table, safe to share between savefiles
//   - error: a read or parse error, or errs.ErrInvalidHashKey / errs.ErrInvalidKind
func LoadTypes(path string, opts ...typetable.Option) (*typetable.Table, error) {
	return typetable.Load(path, opts...)
}

// Open reads the savefile at path and parses it with table.
//
// Returns:
//   - *savefile.Savefile: the loaded savefile; it owns the file contents
//   - error: a read error or any format error returned by Savefile.Read
//
// Example:
//
//	sav, err := savkit.Open("progress.sav", table,
//	    savefile.WithBackupCompression(format.CompressionS2),
//	)
func Open(path string, table *typetable.Table, opts ...savefile.Option) (*savefile.Savefile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read savefile: %w", err)
	}

	sav, err := Parse(buf, table, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sav, nil
}

// Parse creates a Savefile over buf. The savefile takes ownership of buf and edits it in place.
func Parse(buf []byte, table *typetable.Table, opts ...savefile.Option) (*savefile.Savefile, error) {
	sav, err := savefile.New(table, opts...)
	if err != nil {
		return nil, err
	}
	if err := sav.Read(buf); err != nil {
		return nil, err
	}

	return sav, nil
}

// ApplyPatch loads the patch document at path and applies it to sav with the default
// aliases and converters.
//
// Returns the keys written and rejected; the error joins every rejected field.
func ApplyPatch(sav *savefile.Savefile, path string, opts ...patch.Option) (patch.Result, error) {
	doc, err := patch.Load(path)
	if err != nil {
		return patch.Result{}, err
	}

	p, err := patch.New(opts...)
	if err != nil {
		return patch.Result{}, err
	}

	return p.Apply(sav, doc)
}

// FieldHash returns the hash a field name is stored under.
func FieldHash(name string) uint32 {
	return hash.Field(name)
}
