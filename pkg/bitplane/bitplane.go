// Package bitplane maps flat byte sequences onto the least-significant
// bits of carrier sample bytes. It is purely positional: one bit per
// sample, most-significant bit of each data byte first, and knows
// nothing about the carrier's image format.
package bitplane

import (
	"errors"
	"fmt"
)

// ErrInsufficientCapacity indicates the carrier has fewer LSB slots than
// the bitstream requires. The carrier is never touched when this is
// returned.
var ErrInsufficientCapacity = errors.New("insufficient carrier capacity")

// Capacity returns the number of bits a carrier with sampleCount sample
// bytes can hold.
func Capacity(sampleCount int) int {
	return sampleCount
}

// Embed writes every bit of data into the LSBs of samples, one bit per
// sample byte. The check runs before any write: on capacity failure the
// samples are left untouched.
func Embed(samples, data []byte) error {
	bits := len(data) * 8
	if bits > Capacity(len(samples)) {
		return fmt.Errorf("%w: need %d bits, have %d", ErrInsufficientCapacity, bits, len(samples))
	}
	for i := 0; i < bits; i++ {
		bit := (data[i/8] >> (7 - uint(i%8))) & 1
		samples[i] = samples[i]&0xFE | bit
	}
	return nil
}

// Extract reads n bytes back out of the sample LSBs.
func Extract(samples []byte, n int) ([]byte, error) {
	bits := n * 8
	if bits > Capacity(len(samples)) {
		return nil, fmt.Errorf("%w: need %d bits, have %d", ErrInsufficientCapacity, bits, len(samples))
	}
	data := make([]byte, n)
	for i := 0; i < bits; i++ {
		data[i/8] |= (samples[i] & 1) << (7 - uint(i%8))
	}
	return data, nil
}

// ExtractAt reads n bytes starting at the given bit offset, so callers
// can address the header and payload regions independently.
func ExtractAt(samples []byte, offset, n int) ([]byte, error) {
	if offset < 0 || offset > len(samples) {
		return nil, fmt.Errorf("%w: offset %d out of range", ErrInsufficientCapacity, offset)
	}
	return Extract(samples[offset:], n)
}
