package section

import (
	"fmt"

	"github.com/arloliu/savkit/endian"
	"github.com/arloliu/savkit/errs"
)

// Header represents the fixed 12-byte header at the start of a savefile.
type Header struct {
	// Version identifies the savefile layout revision.
	Version uint32 // byte offset 0-3
	// Marker must equal 0xFFFFFFFF.
	Marker uint32 // byte offset 4-7
	// Probe reads as 0x1 under the file's byte order.
	Probe uint32 // byte offset 8-11
}

// NewHeader creates a header for the given version with a valid marker and probe.
func NewHeader(version uint32) Header {
	return Header{
		Version: version,
		Marker:  Marker,
		Probe:   endian.ProbeValue,
	}
}

// ParseHeader detects the byte order of buf and parses and validates its header.
//
// Validation order follows the header layout: byte order probe, version, marker and, for
// buffers larger than SizeCheckThreshold, the exact size expected for the version.
//
// Parameters:
//   - buf: the complete savefile buffer (its length is checked against the release size)
//
// Returns:
//   - Header: parsed header
//   - endian.EndianEngine: the detected byte order
//   - error: ErrBufferTooShort, ErrUnknownByteOrder, ErrUnknownVersion, ErrInvalidMarker or
//     ErrSizeMismatch, each wrapped with the offending value
func ParseHeader(buf []byte) (Header, endian.EndianEngine, error) {
	if len(buf) < HeaderSize {
		return Header{}, nil, fmt.Errorf("%w: %d bytes", errs.ErrBufferTooShort, len(buf))
	}

	engine, err := endian.DetectOrder(buf, ProbeOffset)
	if err != nil {
		return Header{}, nil, err
	}

	h := Header{
		Version: engine.Uint32(buf[VersionOffset : VersionOffset+4]),
		Marker:  engine.Uint32(buf[MarkerOffset : MarkerOffset+4]),
		Probe:   engine.Uint32(buf[ProbeOffset : ProbeOffset+4]),
	}

	release, ok := LookupRelease(h.Version)
	if !ok {
		return h, engine, fmt.Errorf("%w: 0x%x", errs.ErrUnknownVersion, h.Version)
	}
	if h.Marker != Marker {
		return h, engine, fmt.Errorf("%w: 0x%08x", errs.ErrInvalidMarker, h.Marker)
	}
	if len(buf) > SizeCheckThreshold && len(buf) != release.Size {
		return h, engine, fmt.Errorf("%w: %d bytes, release %s expects %d",
			errs.ErrSizeMismatch, len(buf), release.Name, release.Size)
	}

	return h, engine, nil
}

// Release returns the release matching the header version.
func (h Header) Release() (Release, bool) {
	return LookupRelease(h.Version)
}

// WriteToSlice serializes the header into the first HeaderSize bytes of buf.
func (h Header) WriteToSlice(buf []byte, engine endian.EndianEngine) {
	engine.PutUint32(buf[VersionOffset:], h.Version)
	engine.PutUint32(buf[MarkerOffset:], h.Marker)
	engine.PutUint32(buf[ProbeOffset:], h.Probe)
}

// Bytes serializes the header into a new byte slice.
func (h Header) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, HeaderSize)
	h.WriteToSlice(b, engine)

	return b
}
