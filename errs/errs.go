// Package errs defines the sentinel errors shared by every savkit package.
//
// Call sites wrap these values with fmt.Errorf("%w: ...") to attach the offending value, so
// callers should always match with errors.Is rather than comparing error strings.
package errs

import (
	"errors"
	"fmt"
)

// Format errors. These are only returned by Savefile.Read and leave the instance unusable.
var (
	ErrBufferTooShort   = errors.New("buffer too short for savefile header")
	ErrUnknownByteOrder = errors.New("unrecognized byte order probe")
	ErrUnknownVersion   = errors.New("unknown savefile version")
	ErrInvalidMarker    = errors.New("header marker is not 0xffffffff")
	ErrSizeMismatch     = errors.New("savefile size does not match version")
	ErrNotLoaded        = errors.New("savefile is not loaded")
)

// Lookup errors.
var (
	ErrUnknownKey  = errors.New("field offset not found")
	ErrUnknownKind = errors.New("field kind not found")
)

// Validation errors. A write that fails with one of these leaves the buffer untouched.
var (
	ErrInvalidKey      = errors.New("invalid field key")
	ErrInvalidValue    = errors.New("invalid value for field kind")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrKindMismatch    = errors.New("field kind mismatch")
	ErrUnsupportedKind = errors.New("operation not supported for field kind")
)

// String packing errors.
var (
	ErrHashMismatch  = errors.New("slot hash mismatch at write start")
	ErrStringTooLong = errors.New("string exceeds field capacity")
	ErrRunTooShort   = errors.New("field run shorter than capacity")
)

// Type table errors.
var (
	ErrInvalidHashKey = errors.New("invalid type table hash key")
	ErrInvalidKind    = errors.New("invalid type table kind")
)

// Snapshot errors.
var (
	ErrNoBackup           = errors.New("no backup snapshot")
	ErrInvalidCompression = errors.New("invalid compression type")
)

// Patch and clock text errors.
var (
	ErrInvalidTime     = errors.New("invalid clock text")
	ErrInvalidDocument = errors.New("invalid patch document")
)

// LookupError reports a field that is missing from the offset index or the type table.
type LookupError struct {
	Key  string
	Hash uint32
	Err  error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("%v: key %q (hash 0x%08x)", e.Err, e.Key, e.Hash)
}

// Unwrap returns the underlying sentinel (ErrUnknownKey or ErrUnknownKind).
func (e *LookupError) Unwrap() error {
	return e.Err
}
