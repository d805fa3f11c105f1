// Package stego embeds payloads into the LSB plane of carrier sample
// buffers and recovers them, coordinating header redundancy, the block
// codec, and the layered fallback policy.
//
// # Bitstream
//
// The embedded bitstream is, in order:
//
//	[primary header(14B)][secondary header(14B)][encoded or raw payload]
//
// one bit per carrier sample byte. Headers carry the payload length,
// the ECC capability flag, and a CRC32 of the original payload; see
// package header for the exact layout.
//
// # Recovery
//
// Extraction walks a fixed state machine:
//
//	START -> HEADER_RESOLVED -> PAYLOAD_DECODED -> {SUCCESS, PARTIAL_SUCCESS, FAILED}
//
// A header that resolves from neither copy fails immediately with
// ErrHeaderUnrecoverable and no payload attempt. When the two copies
// parse but disagree, the decode runs under the primary first and is
// retried under the secondary if the primary-led decode falls short of
// SUCCESS, so corruption confined to one copy's length or checksum
// bytes never costs the payload. Decoded payloads are
// classified by per-block outcomes and the header checksum: everything
// recovered and checksum matching is SUCCESS; anything less is
// PARTIAL_SUCCESS with the best-effort payload, the failed-block list
// and the checksum verdict attached, never silently upgraded. FAILED is
// reserved for headers that are unusable or declare a payload extending
// past the carrier. No retries happen internally.
package stego
