package header

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

const (
	// Magic identifies a MEOW steganographic container.
	Magic = "MEOW"
	// Version is the current container format version.
	Version = 1
	// Size is the encoded size of one header copy in bytes.
	Size = 14
	// RedundantSize is the encoded size of both header copies.
	RedundantSize = 2 * Size
)

var (
	// ErrInvalidMagic indicates the header magic bytes don't match.
	ErrInvalidMagic = errors.New("invalid header magic")
	// ErrUnsupportedVersion indicates an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported format version")
	// ErrInvalidFlag indicates a capability flag outside {0, 1}.
	ErrInvalidFlag = errors.New("invalid capability flag")
	// ErrHeaderTooShort indicates input shorter than a header copy.
	ErrHeaderTooShort = errors.New("header too short")
	// ErrHeaderUnrecoverable indicates both header copies failed
	// validation; no payload recovery is attempted past this point.
	ErrHeaderUnrecoverable = errors.New("header unrecoverable: both copies invalid")
)

// Header is the container metadata stored twice at the front of the
// embedded bitstream.
//
// Byte layout per copy:
//
//	[Magic(4)][Version(1)][ECC(1)][PayloadLength(4, BE)][Checksum(4, BE)]
type Header struct {
	Version       uint8
	ECC           bool   // whether the payload was Reed-Solomon encoded
	PayloadLength uint32 // original, unpadded payload length in bytes
	Checksum      uint32 // CRC32-IEEE of the original payload
}

// New builds a header for a payload about to be embedded.
func New(payload []byte, ecc bool) Header {
	return Header{
		Version:       Version,
		ECC:           ecc,
		PayloadLength: uint32(len(payload)),
		Checksum:      Checksum(payload),
	}
}

// Checksum computes the payload integrity checksum recorded in the header.
func Checksum(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload)
}

// Marshal serializes one header copy.
func (h Header) Marshal() []byte {
	buf := make([]byte, Size)
	copy(buf[0:4], Magic)
	buf[4] = h.Version
	if h.ECC {
		buf[5] = 1
	}
	binary.BigEndian.PutUint32(buf[6:10], h.PayloadLength)
	binary.BigEndian.PutUint32(buf[10:14], h.Checksum)
	return buf
}

// MarshalRedundant serializes the primary copy followed by an identical
// secondary copy. Both copies come from the same in-memory value; they
// can diverge only through post-encode corruption.
func (h Header) MarshalRedundant() []byte {
	one := h.Marshal()
	buf := make([]byte, RedundantSize)
	copy(buf[:Size], one)
	copy(buf[Size:], one)
	return buf
}

// Unmarshal parses and validates a single header copy.
func Unmarshal(data []byte) (Header, error) {
	if len(data) < Size {
		return Header{}, fmt.Errorf("%w: got %d bytes, want %d", ErrHeaderTooShort, len(data), Size)
	}
	if !bytes.Equal(data[0:4], []byte(Magic)) {
		return Header{}, ErrInvalidMagic
	}
	h := Header{
		Version:       data[4],
		PayloadLength: binary.BigEndian.Uint32(data[6:10]),
		Checksum:      binary.BigEndian.Uint32(data[10:14]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	switch data[5] {
	case 0:
	case 1:
		h.ECC = true
	default:
		return Header{}, fmt.Errorf("%w: %#x", ErrInvalidFlag, data[5])
	}
	return h, nil
}

// Candidate is one usable parse of the redundant header region.
type Candidate struct {
	Header        Header
	FromSecondary bool
}

// ResolveRedundant parses the two stored copies independently and
// returns the usable ones in preference order, primary first. With only
// two copies there is no vote: the structural validity check stands in
// for one, but corruption confined to the length or checksum bytes
// leaves a copy parseable with wrong fields, so diverged copies are
// both returned and the caller falls back to the secondary when a
// decode under the primary does not pan out. Identical valid copies
// collapse into the single primary candidate.
func ResolveRedundant(data []byte) ([]Candidate, error) {
	if len(data) < RedundantSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrHeaderTooShort, len(data), RedundantSize)
	}

	var out []Candidate
	primary, errP := Unmarshal(data[:Size])
	if errP == nil {
		out = append(out, Candidate{Header: primary})
	}
	secondary, errS := Unmarshal(data[Size:RedundantSize])
	if errS == nil && (errP != nil || secondary != primary) {
		out = append(out, Candidate{Header: secondary, FromSecondary: true})
	}

	if len(out) == 0 {
		return nil, ErrHeaderUnrecoverable
	}
	return out, nil
}
