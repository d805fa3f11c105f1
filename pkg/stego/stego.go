package stego

import (
	"errors"
	"fmt"

	"github.com/Kuberwastaken/meow/pkg/bitplane"
	"github.com/Kuberwastaken/meow/pkg/ecc"
	"github.com/Kuberwastaken/meow/pkg/header"
	"github.com/Kuberwastaken/meow/pkg/payload"
)

// ErrInsufficientCapacity mirrors the bitplane sentinel at this level so
// callers can match it without importing the mapper.
var ErrInsufficientCapacity = bitplane.ErrInsufficientCapacity

// ErrHeaderUnrecoverable mirrors the header sentinel.
var ErrHeaderUnrecoverable = header.ErrHeaderUnrecoverable

// ErrChecksumMismatch indicates the recovered payload disagrees with the
// checksum recorded in the header.
var ErrChecksumMismatch = errors.New("payload checksum mismatch")

// Status is the terminal state of an extraction.
type Status int

const (
	// StatusSuccess: every block recovered and the checksum matches.
	StatusSuccess Status = iota
	// StatusPartialSuccess: a best-effort payload with failed blocks
	// and/or a checksum mismatch.
	StatusPartialSuccess
	// StatusFailed: no usable payload.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartialSuccess:
		return "partial_success"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of an extraction. A payload is never returned
// without its accompanying status.
type Result struct {
	Status  Status
	Payload []byte

	Header              header.Header
	HeaderFromSecondary bool // header was rebuilt from the secondary copy

	Blocks       []payload.BlockResult
	FailedBlocks []int
	ChecksumOK   bool
}

// RequiredBits returns the total bitstream length for a payload of the
// given size under the codec's capability.
func RequiredBits(payloadLen int, c ecc.Codec) int {
	return (header.RedundantSize + payload.EncodedSize(payloadLen, c.Available())) * 8
}

// MaxPayload returns the largest payload, in bytes, that a carrier with
// sampleCount sample bytes can hold under the codec's capability.
func MaxPayload(sampleCount int, c ecc.Codec) int {
	budget := bitplane.Capacity(sampleCount)/8 - header.RedundantSize
	if budget <= 0 {
		return 0
	}
	if !c.Available() {
		return budget
	}
	// Every started chunk costs a whole codeword; partial codeword space
	// is unusable.
	return (budget / ecc.BlockSize) * ecc.DataSize
}

// Embed hides data in the LSBs of samples. Encoding is all-or-nothing:
// the capacity check runs against the complete bitstream before a
// single sample is modified, and a failure leaves samples untouched.
func Embed(samples, data []byte, c ecc.Codec) error {
	codec := payload.NewCodec(c)
	encoded, eccApplied, err := codec.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	h := header.New(data, eccApplied)
	stream := append(h.MarshalRedundant(), encoded...)

	if len(stream)*8 > bitplane.Capacity(len(samples)) {
		return fmt.Errorf("%w: need %d bits, carrier has %d", ErrInsufficientCapacity, len(stream)*8, bitplane.Capacity(len(samples)))
	}
	return bitplane.Embed(samples, stream)
}

// Extract recovers a payload from the LSBs of samples. The returned
// Result always carries a status; err is non-nil only for the FAILED
// terminal state.
func Extract(samples []byte, c ecc.Codec) (*Result, error) {
	// START -> HEADER_RESOLVED
	headerBytes, err := bitplane.Extract(samples, header.RedundantSize)
	if err != nil {
		return &Result{Status: StatusFailed}, fmt.Errorf("%w: carrier smaller than header region", ErrHeaderUnrecoverable)
	}
	candidates, err := header.ResolveRedundant(headerBytes)
	if err != nil {
		return &Result{Status: StatusFailed}, err
	}

	// HEADER_RESOLVED -> PAYLOAD_DECODED -> terminal. A primary copy
	// with corrupted length or checksum bytes still parses, so when the
	// copies diverge the decode is retried under the secondary before
	// settling for less than SUCCESS. Status values order best-first.
	var best *Result
	var bestErr error
	for _, cand := range candidates {
		res, err := extractUnder(samples, cand, c)
		if res.Status == StatusSuccess {
			return res, nil
		}
		if best == nil || res.Status < best.Status {
			best, bestErr = res, err
		}
	}
	return best, bestErr
}

// extractUnder runs the payload decode stage with one resolved header
// candidate and classifies the terminal state.
func extractUnder(samples []byte, cand header.Candidate, c ecc.Codec) (*Result, error) {
	h := cand.Header
	res := &Result{
		Header:              h,
		HeaderFromSecondary: cand.FromSecondary,
	}

	encodedLen := payload.EncodedSize(int(h.PayloadLength), h.ECC)
	encoded, err := bitplane.ExtractAt(samples, header.RedundantSize*8, encodedLen)
	if err != nil {
		res.Status = StatusFailed
		return res, fmt.Errorf("declared payload exceeds carrier: %w", err)
	}

	codec := payload.NewCodec(c)
	data, blocks, err := codec.Decode(encoded, h.PayloadLength, h.ECC)
	if err != nil {
		res.Status = StatusFailed
		return res, fmt.Errorf("decoding payload: %w", err)
	}

	res.Payload = data
	res.Blocks = blocks
	res.FailedBlocks = payload.FailedBlocks(blocks)
	res.ChecksumOK = header.Checksum(data) == h.Checksum

	if len(res.FailedBlocks) == 0 && res.ChecksumOK {
		res.Status = StatusSuccess
		return res, nil
	}
	res.Status = StatusPartialSuccess
	return res, nil
}
