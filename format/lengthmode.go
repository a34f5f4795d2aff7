package format

// Length-mode bit patterns shared by every VARLEN type (ARRAY, DICTN,
// BYTES, STRNG). All three modes share the first frame byte with the
// 3-bit tag: the mode lives in bits 3-4, and Mode 1's length (or Mode
// 3's num_bytes-1) lives in the remaining high bits.
const (
	// Mode1Threshold is the exclusive upper bound on lengths the decoder
	// accepts in Mode 1 (4-bit length, 1-byte frame).
	Mode1Threshold = 16
	// Mode2Threshold is the exclusive upper bound on lengths the encoder
	// chooses Mode 2 for (11-bit length, 2-byte frame).
	Mode2Threshold = 2048

	// mode2Bits marks bits 3-4 as 0b01: Mode 2.
	mode2Bits byte = 0b01000
	// mode3Bits marks bits 3-4 as 0b11: Mode 3.
	mode3Bits byte = 0b11000
	// modeBitsMask isolates bits 3-4 of the first frame byte.
	modeBitsMask byte = 0b11000

	// MaxFrame is the largest possible VARLEN/INTGR head: 1 tag byte plus
	// up to 8 little-endian length/count bytes. Every capacity hook must
	// reserve at least this many bytes before writing such a head; a
	// UTYPE head adds a width byte and so needs one byte more.
	MaxFrame = 9

	// streamHeaderSize is the fixed width of a forced Mode-3/8 streaming
	// container header: 1 tag byte + 8 little-endian count bytes.
	streamHeaderSize = 1 + 8
)

// StreamHeaderSize is the fixed width of a streaming-compatible outer
// container header (tag byte plus 8-byte little-endian item count).
func StreamHeaderSize() int { return streamHeaderSize }

// StreamHeaderByte returns the first byte of a forced Mode-3/8 outer
// container header for tag (ARRAY or DICTN).
func StreamHeaderByte(tag byte) byte {
	return tag | mode3Bits | 7<<5
}

// IsStreamHeader reports whether b is a forced Mode-3/8 streaming
// container header byte: Mode 3 with num_bytes == 8.
func IsStreamHeader(b byte) bool {
	return ModeOf(b) == 3 && (b>>5&0b111) == 7
}

// modeBits returns bits 3-4 of b.
func modeBits(b byte) byte {
	return b & modeBitsMask
}

// ModeOf classifies the length-mode encoded in a VARLEN frame's first
// byte. It implements the decoder-symmetry rule: bits 3-4
// of 0b00 and 0b10 both mean Mode 1, because bit 4 is then just the
// length's low bit.
func ModeOf(b byte) int {
	switch modeBits(b) {
	case mode2Bits:
		return 2
	case mode3Bits:
		return 3
	default: // 0b00000 or 0b10000
		return 1
	}
}

// ChooseMode returns the minimal length mode for length, ignoring any
// streaming-forced override.
func ChooseMode(length int) int {
	switch {
	case length < Mode1Threshold:
		return 1
	case length < Mode2Threshold:
		return 2
	default:
		return 3
	}
}

// Mode3NumBytes returns the minimal little-endian byte width needed to
// represent length, clamped to 1..8 (a length of 0 still needs 1 byte).
func Mode3NumBytes(length uint64) int {
	n := 0
	for v := length; v != 0; v >>= 8 {
		n++
	}
	if n == 0 {
		n = 1
	}
	if n > 8 {
		n = 8
	}

	return n
}
