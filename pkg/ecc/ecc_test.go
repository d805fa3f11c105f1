package ecc

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func testChunk(seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	data := make([]byte, DataSize)
	rng.Read(data)
	return data
}

func TestRS_EncodeDecodeRoundTrip(t *testing.T) {
	rs, err := NewRS()
	if err != nil {
		t.Fatalf("NewRS failed: %v", err)
	}

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "all zeros", data: make([]byte, DataSize)},
		{name: "all ones", data: bytes.Repeat([]byte{0xFF}, DataSize)},
		{name: "random", data: testChunk(1)},
		{name: "ascending", data: func() []byte {
			d := make([]byte, DataSize)
			for i := range d {
				d[i] = byte(i)
			}
			return d
		}()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			codeword, err := rs.EncodeBlock(tc.data)
			if err != nil {
				t.Fatalf("EncodeBlock failed: %v", err)
			}
			if len(codeword) != BlockSize {
				t.Fatalf("codeword length: got %d, want %d", len(codeword), BlockSize)
			}

			// Systematic: data symbols come through unchanged.
			if !bytes.Equal(codeword[:DataSize], tc.data) {
				t.Error("codeword data portion does not match input")
			}

			decoded, corrected, err := rs.DecodeBlock(codeword)
			if err != nil {
				t.Fatalf("DecodeBlock failed: %v", err)
			}
			if corrected != 0 {
				t.Errorf("corrected count for clean codeword: got %d, want 0", corrected)
			}
			if !bytes.Equal(decoded, tc.data) {
				t.Error("decoded data does not match original")
			}
		})
	}
}

func TestRS_EncodeDeterministic(t *testing.T) {
	rs, err := NewRS()
	if err != nil {
		t.Fatalf("NewRS failed: %v", err)
	}

	data := testChunk(2)
	first, err := rs.EncodeBlock(data)
	if err != nil {
		t.Fatalf("EncodeBlock failed: %v", err)
	}
	second, err := rs.EncodeBlock(data)
	if err != nil {
		t.Fatalf("EncodeBlock failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("encoding is not deterministic")
	}
}

func TestRS_CorrectsUpToCeiling(t *testing.T) {
	rs, err := NewRS()
	if err != nil {
		t.Fatalf("NewRS failed: %v", err)
	}

	data := testChunk(3)
	codeword, err := rs.EncodeBlock(data)
	if err != nil {
		t.Fatalf("EncodeBlock failed: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for _, flips := range []int{1, 4, 8, 16} {
		t.Run(fmt.Sprintf("%d_flips", flips), func(t *testing.T) {
			corrupted := make([]byte, BlockSize)
			copy(corrupted, codeword)
			for _, pos := range rng.Perm(BlockSize)[:flips] {
				corrupted[pos] ^= byte(1 + rng.Intn(255))
			}

			decoded, corrected, err := rs.DecodeBlock(corrupted)
			if err != nil {
				t.Fatalf("DecodeBlock failed with %d flips: %v", flips, err)
			}
			if corrected != flips {
				t.Errorf("corrected count: got %d, want %d", corrected, flips)
			}
			if !bytes.Equal(decoded, data) {
				t.Errorf("decoded data does not match original with %d flips", flips)
			}
		})
	}
}

func TestRS_FailsBeyondCeiling(t *testing.T) {
	rs, err := NewRS()
	if err != nil {
		t.Fatalf("NewRS failed: %v", err)
	}

	data := testChunk(4)
	codeword, err := rs.EncodeBlock(data)
	if err != nil {
		t.Fatalf("EncodeBlock failed: %v", err)
	}

	// Corrupt well past the 16-symbol ceiling. Decoding must report
	// failure, never a silently wrong chunk.
	corrupted := make([]byte, BlockSize)
	copy(corrupted, codeword)
	rng := rand.New(rand.NewSource(7))
	for _, pos := range rng.Perm(BlockSize)[:40] {
		corrupted[pos] ^= byte(1 + rng.Intn(255))
	}

	decoded, _, err := rs.DecodeBlock(corrupted)
	if err == nil {
		if bytes.Equal(decoded, data) {
			t.Fatal("decode unexpectedly recovered data beyond the correction ceiling")
		}
		t.Fatal("expected DecodeBlock to fail beyond the correction ceiling, got wrong data with no error")
	}
	if !errors.Is(err, ErrUncorrectableBlock) {
		t.Errorf("expected ErrUncorrectableBlock, got %v", err)
	}
}

func TestRS_InvalidSizes(t *testing.T) {
	rs, err := NewRS()
	if err != nil {
		t.Fatalf("NewRS failed: %v", err)
	}

	if _, err := rs.EncodeBlock(make([]byte, DataSize-1)); !errors.Is(err, ErrBlockSize) {
		t.Errorf("EncodeBlock short input: expected ErrBlockSize, got %v", err)
	}
	if _, _, err := rs.DecodeBlock(make([]byte, BlockSize+1)); !errors.Is(err, ErrBlockSize) {
		t.Errorf("DecodeBlock long input: expected ErrBlockSize, got %v", err)
	}
}

func TestNop_PassThrough(t *testing.T) {
	nop := Nop{}

	if nop.Available() {
		t.Error("Nop must report Available() == false")
	}

	data := testChunk(5)
	out, err := nop.EncodeBlock(data)
	if err != nil {
		t.Fatalf("Nop EncodeBlock failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("Nop EncodeBlock must be the identity")
	}

	// Decoding a real codeword without the backend strips parity and
	// returns the systematic portion untouched.
	rs, err := NewRS()
	if err != nil {
		t.Fatalf("NewRS failed: %v", err)
	}
	codeword, err := rs.EncodeBlock(data)
	if err != nil {
		t.Fatalf("EncodeBlock failed: %v", err)
	}
	decoded, corrected, err := nop.DecodeBlock(codeword)
	if err != nil {
		t.Fatalf("Nop DecodeBlock failed: %v", err)
	}
	if corrected != 0 {
		t.Errorf("Nop corrected count: got %d, want 0", corrected)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("Nop DecodeBlock must return the systematic data portion")
	}
}

func TestProbe_ReturnsAvailableCodec(t *testing.T) {
	codec := Probe()
	if !codec.Available() {
		t.Fatal("Probe returned an unavailable codec on a build with the RS backend present")
	}
}
