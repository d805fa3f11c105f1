package ecc

import (
	"errors"
	"fmt"

	"github.com/vivint/infectious"
)

const (
	// DataSize is the number of data symbols per codeword.
	DataSize = 223
	// BlockSize is the total number of symbols per codeword.
	BlockSize = 255
	// ParitySize is the number of parity symbols per codeword.
	ParitySize = BlockSize - DataSize
	// MaxCorrectable is the per-block correction ceiling: the maximum
	// number of corrupted symbols that decoding is guaranteed to fix.
	MaxCorrectable = ParitySize / 2
)

var (
	// ErrUncorrectableBlock indicates a codeword with more corrupted
	// symbols than the codec can correct or verify.
	ErrUncorrectableBlock = errors.New("uncorrectable block: corruption exceeds correction capacity")
	// ErrBlockSize indicates input of the wrong length for the codec.
	ErrBlockSize = errors.New("invalid block size")
)

// Codec encodes 223-byte data chunks into 255-byte codewords and back.
type Codec interface {
	// EncodeBlock encodes exactly DataSize bytes into a BlockSize-byte codeword.
	EncodeBlock(data []byte) ([]byte, error)

	// DecodeBlock recovers the original DataSize bytes from a possibly
	// corrupted BlockSize-byte codeword. It reports how many symbols were
	// corrected, or ErrUncorrectableBlock when correction is impossible
	// or cannot be verified.
	DecodeBlock(codeword []byte) ([]byte, int, error)

	// Available reports whether a real error-correcting backend is present.
	Available() bool
}

// RS is the Reed-Solomon codec over GF(256), configured as RS(255, 223).
type RS struct {
	fec *infectious.FEC
}

// NewRS initializes the Reed-Solomon backend.
func NewRS() (*RS, error) {
	fec, err := infectious.NewFEC(DataSize, BlockSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize RS(%d,%d) codec: %w", BlockSize, DataSize, err)
	}
	return &RS{fec: fec}, nil
}

// Probe resolves the codec capability once at startup. It returns the
// Reed-Solomon codec when the backend initializes, and the Nop
// pass-through otherwise. The result is safe for concurrent use.
func Probe() Codec {
	if rs, err := NewRS(); err == nil {
		return rs
	}
	return Nop{}
}

// EncodeBlock encodes data into a systematic codeword: the data bytes
// followed by ParitySize parity bytes.
func (r *RS) EncodeBlock(data []byte) ([]byte, error) {
	if len(data) != DataSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBlockSize, len(data), DataSize)
	}
	codeword := make([]byte, BlockSize)
	if err := r.fec.Encode(data, func(s infectious.Share) {
		codeword[s.Number] = s.Data[0]
	}); err != nil {
		// Cannot happen with a correctly sized input.
		return nil, fmt.Errorf("rs encode: %w", err)
	}
	return codeword, nil
}

// DecodeBlock decodes a codeword, correcting up to MaxCorrectable
// corrupted symbols. The corrected count is measured by re-encoding the
// recovered data and diffing against the received codeword, which also
// catches the rare case where the decoder lands on the wrong codeword.
func (r *RS) DecodeBlock(codeword []byte) ([]byte, int, error) {
	if len(codeword) != BlockSize {
		return nil, 0, fmt.Errorf("%w: got %d bytes, want %d", ErrBlockSize, len(codeword), BlockSize)
	}

	shares := make([]infectious.Share, BlockSize)
	for i := range shares {
		shares[i].Number = i
		shares[i].Data = []byte{codeword[i]}
	}

	data, err := r.fec.Decode(nil, shares)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUncorrectableBlock, err)
	}

	reencoded, err := r.EncodeBlock(data)
	if err != nil {
		return nil, 0, err
	}
	corrected := 0
	for i := range reencoded {
		if reencoded[i] != codeword[i] {
			corrected++
		}
	}
	if corrected > MaxCorrectable {
		return nil, corrected, ErrUncorrectableBlock
	}
	return data, corrected, nil
}

// Available reports true: RS is the real backend.
func (r *RS) Available() bool {
	return true
}

// Nop is the pass-through codec used when no error-correcting backend is
// present. Encoding is the identity; decoding returns the systematic data
// portion of a codeword uncorrected, so files written with ECC remain
// readable (integrity is then established by the payload checksum alone).
type Nop struct{}

// EncodeBlock returns a copy of data unchanged.
func (Nop) EncodeBlock(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// DecodeBlock returns the first DataSize bytes of the codeword with no
// correction applied.
func (Nop) DecodeBlock(codeword []byte) ([]byte, int, error) {
	if len(codeword) != BlockSize {
		return nil, 0, fmt.Errorf("%w: got %d bytes, want %d", ErrBlockSize, len(codeword), BlockSize)
	}
	data := make([]byte, DataSize)
	copy(data, codeword[:DataSize])
	return data, 0, nil
}

// Available reports false: no correction capability.
func (Nop) Available() bool {
	return false
}
