// Package endian provides byte order utilities for savefile decoding and encoding.
//
// Savefiles carry no explicit byte order flag. Instead the header holds an order-probe word
// that reads as 0x1 only under the file's true byte order, so the order is detected once at
// load time and then applied uniformly to every slot access:
//
//	engine, err := endian.DetectOrder(buf, section.ProbeOffset)
//	if err != nil {
//	    return err
//	}
//	version := engine.Uint32(buf[0:4])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/savkit/errs"
)

// ProbeValue is the value of the order-probe word when read in the file's byte order.
const ProbeValue = 0x1

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine is the big-endian engine.
func IsBigEndian(engine EndianEngine) bool {
	return engine == GetBigEndianEngine()
}

// DetectOrder resolves the byte order of buf from the 32-bit probe word at probeOffset.
//
// The probe is tried little-endian first, then big-endian.
//
// Returns:
//   - EndianEngine: the engine under which the probe reads as ProbeValue
//   - error: errs.ErrBufferTooShort if the probe is out of bounds, errs.ErrUnknownByteOrder
//     if the probe matches neither order
func DetectOrder(buf []byte, probeOffset int) (EndianEngine, error) {
	if probeOffset < 0 || len(buf) < probeOffset+4 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrBufferTooShort, len(buf))
	}

	word := buf[probeOffset : probeOffset+4]
	if binary.LittleEndian.Uint32(word) == ProbeValue {
		return GetLittleEndianEngine(), nil
	}
	if binary.BigEndian.Uint32(word) == ProbeValue {
		return GetBigEndianEngine(), nil
	}

	return nil, fmt.Errorf("%w: probe word 0x%08x", errs.ErrUnknownByteOrder, binary.LittleEndian.Uint32(word))
}
