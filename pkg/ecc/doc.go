// Package ecc provides the Reed-Solomon block codec used to protect
// embedded MEOW payloads against LSB-plane corruption.
//
// # Block Format
//
// The codec operates on fixed-size blocks of GF(256) symbols (one byte
// per symbol):
//
//	[Data(223)][Parity(32)] = 255-byte codeword
//
// The code is systematic: the first 223 bytes of every codeword are the
// original data bytes, unchanged. Decoding recovers the original 223-byte
// chunk from any codeword with at most 16 corrupted symbols. Beyond 16
// corrupted symbols decoding fails with ErrUncorrectableBlock; it never
// substitutes zeros or guesses.
//
// # Verification
//
// Reed-Solomon decoders can, very rarely, land on a different valid
// codeword when corruption exceeds the correction capacity. To surface
// that case instead of hiding it, DecodeBlock re-encodes the recovered
// data and counts symbol differences against the received codeword. A
// difference count above 16 is reported as ErrUncorrectableBlock.
//
// # Capability
//
// The codec backend is an optional capability. Probe resolves it once at
// startup and returns either the real Reed-Solomon codec or a Nop
// pass-through; callers carry the resulting Codec as an explicit
// parameter rather than consulting global state.
package ecc
