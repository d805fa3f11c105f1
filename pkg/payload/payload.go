// Package payload chunks user payloads into Reed-Solomon codewords and
// reassembles them, tracking per-block outcomes so callers can tell
// which regions of a recovered payload are trustworthy.
package payload

import (
	"errors"
	"fmt"

	"github.com/Kuberwastaken/meow/pkg/ecc"
)

// ErrLengthMismatch indicates an encoded payload whose size disagrees
// with the length and mode recorded in the header.
var ErrLengthMismatch = errors.New("encoded payload length mismatch")

// BlockResult is the outcome of decoding one codeword.
type BlockResult struct {
	Index     int   // block position within the payload
	Corrected int   // symbols corrected in this block
	Err       error // nil, or ErrUncorrectableBlock for lost blocks
}

// Codec transforms whole payloads through the block codec. It is pure:
// no partial output is ever produced, and the same input always yields
// the same bytes.
type Codec struct {
	ecc ecc.Codec
}

// NewCodec wraps the given block codec. The codec's availability decides
// between ECC and raw pass-through at encode time.
func NewCodec(c ecc.Codec) *Codec {
	return &Codec{ecc: c}
}

// Available reports whether encoding will apply error correction.
func (c *Codec) Available() bool {
	return c.ecc.Available()
}

// EncodedSize returns the embedded size in bytes of a payload of
// payloadLen bytes under the given mode.
func EncodedSize(payloadLen int, eccMode bool) int {
	if !eccMode {
		return payloadLen
	}
	blocks := (payloadLen + ecc.DataSize - 1) / ecc.DataSize
	return blocks * ecc.BlockSize
}

// Encode transforms the payload into its embedded form. With the codec
// available the payload is zero-padded to a multiple of 223 bytes,
// split into chunks and encoded block by block; the padding is excluded
// on decode using the exact length recorded in the header. Without the
// codec the payload passes through unchanged.
//
// The returned flag records which path ran and belongs in the header.
func (c *Codec) Encode(data []byte) ([]byte, bool, error) {
	if !c.ecc.Available() {
		out := make([]byte, len(data))
		copy(out, data)
		return out, false, nil
	}

	blocks := (len(data) + ecc.DataSize - 1) / ecc.DataSize
	padded := make([]byte, blocks*ecc.DataSize)
	copy(padded, data)

	out := make([]byte, 0, blocks*ecc.BlockSize)
	for i := 0; i < blocks; i++ {
		chunk := padded[i*ecc.DataSize : (i+1)*ecc.DataSize]
		codeword, err := c.ecc.EncodeBlock(chunk)
		if err != nil {
			return nil, false, fmt.Errorf("encoding block %d: %w", i, err)
		}
		out = append(out, codeword...)
	}
	return out, true, nil
}

// Decode inverts Encode. length is the original unpadded payload size
// from the header and eccMode its capability flag.
//
// In ECC mode every 255-byte codeword is decoded independently: a single
// uncorrectable block does not abort the payload. Lost blocks contribute
// zero-filled placeholders in their original position and are reported
// in the returned results, so callers can decide whether a partial
// payload is acceptable.
func (c *Codec) Decode(encoded []byte, length uint32, eccMode bool) ([]byte, []BlockResult, error) {
	if !eccMode {
		if len(encoded) < int(length) {
			return nil, nil, fmt.Errorf("%w: got %d bytes, header says %d", ErrLengthMismatch, len(encoded), length)
		}
		out := make([]byte, length)
		copy(out, encoded)
		return out, nil, nil
	}

	want := EncodedSize(int(length), true)
	if len(encoded) != want {
		return nil, nil, fmt.Errorf("%w: got %d bytes, want %d for %d-byte payload", ErrLengthMismatch, len(encoded), want, length)
	}

	blocks := len(encoded) / ecc.BlockSize
	out := make([]byte, 0, blocks*ecc.DataSize)
	results := make([]BlockResult, 0, blocks)
	for i := 0; i < blocks; i++ {
		codeword := encoded[i*ecc.BlockSize : (i+1)*ecc.BlockSize]
		data, corrected, err := c.ecc.DecodeBlock(codeword)
		if err != nil {
			// Placeholder keeps later blocks at their original offsets.
			data = make([]byte, ecc.DataSize)
		}
		out = append(out, data...)
		results = append(results, BlockResult{Index: i, Corrected: corrected, Err: err})
	}
	return out[:length], results, nil
}

// FailedBlocks filters results down to the indexes of unrecoverable blocks.
func FailedBlocks(results []BlockResult) []int {
	var failed []int
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Index)
		}
	}
	return failed
}
