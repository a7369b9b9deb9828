package physfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScalar(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		expected uint32
		next     int
	}{
		{
			name:     "ASCII",
			src:      []byte("a"),
			expected: 'a',
			next:     1,
		},
		{
			name:     "2-byte sequence",
			src:      []byte{0xC3, 0xB1}, // ñ
			expected: 0xF1,
			next:     2,
		},
		{
			name:     "3-byte sequence",
			src:      []byte{0xE6, 0xBC, 0xA2}, // 漢
			expected: 0x6F22,
			next:     3,
		},
		{
			name:     "4-byte sequence",
			src:      []byte{0xF0, 0x9F, 0x98, 0x80}, // 😀
			expected: 0x1F600,
			next:     4,
		},
		{
			name:     "Empty input",
			src:      []byte{},
			expected: 0,
			next:     0,
		},
		{
			name:     "Zero terminator",
			src:      []byte{0x00, 'a'},
			expected: 0,
			next:     0,
		},
		{
			name:     "Continuation byte as lead",
			src:      []byte{0x80, 'a'},
			expected: scalarBogus,
			next:     1,
		},
		{
			name:     "Overlong NUL",
			src:      []byte{0xC0, 0x80},
			expected: scalarBogus,
			next:     2,
		},
		{
			name:     "Lone lead byte at end",
			src:      []byte{0xE2},
			expected: scalarBogus,
			next:     1,
		},
		{
			name:     "Truncated 3-byte sequence",
			src:      []byte{0xE2, 0x82},
			expected: scalarBogus,
			next:     1,
		},
		{
			name:     "Bad continuation byte",
			src:      []byte{0xC3, 0x28},
			expected: scalarBogus,
			next:     1,
		},
		{
			name:     "Encoded surrogate D800",
			src:      []byte{0xED, 0xA0, 0x80},
			expected: scalarBogus,
			next:     3,
		},
		{
			name:     "Non-character FFFE",
			src:      []byte{0xEF, 0xBF, 0xBE},
			expected: scalarBogus,
			next:     3,
		},
		{
			name:     "Non-character FFFF",
			src:      []byte{0xEF, 0xBF, 0xBF},
			expected: scalarBogus,
			next:     3,
		},
		{
			name:     "Top of 3-byte range FFFD",
			src:      []byte{0xEF, 0xBF, 0xBD},
			expected: 0xFFFD,
			next:     3,
		},
		{
			name:     "Above 0x10FFFF",
			src:      []byte{0xF4, 0x90, 0x80, 0x80}, // 0x110000
			expected: scalarBogus,
			next:     4,
		},
		{
			name:     "Highest valid codepoint",
			src:      []byte{0xF4, 0x8F, 0xBF, 0xBF}, // 0x10FFFF
			expected: 0x10FFFF,
			next:     4,
		},
		{
			name:     "Legacy 5-byte sequence",
			src:      []byte{0xF8, 0x88, 0x80, 0x80, 0x80},
			expected: scalarBogus,
			next:     5,
		},
		{
			name:     "Legacy 6-byte sequence",
			src:      []byte{0xFC, 0x84, 0x80, 0x80, 0x80, 0x80},
			expected: scalarBogus,
			next:     6,
		},
		{
			name:     "Truncated legacy 5-byte sequence",
			src:      []byte{0xF8, 0x88, 0x80},
			expected: scalarBogus,
			next:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, next := decodeScalar(tt.src, 0)
			assert.Equal(t, tt.expected, cp)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestDecodeScalarProgress(t *testing.T) {
	// Every malformed prefix must still make forward progress so a
	// conversion loop can never spin in place.
	inputs := [][]byte{
		{0x80},
		{0xC3},
		{0xE2, 0x82},
		{0xF0, 0x9F, 0x98},
		{0xF8, 0x88},
		{0xFC, 0x84, 0x80},
		{0xC0, 0x80, 0xC0, 0x80},
	}
	for _, src := range inputs {
		pos := 0
		for {
			cp, next := decodeScalar(src, pos)
			if cp == 0 {
				break
			}
			require.Greater(t, next, pos, "no progress on % X at %d", src, pos)
			require.LessOrEqual(t, next, len(src))
			pos = next
		}
	}
}

func TestEncodeScalar(t *testing.T) {
	tests := []struct {
		name     string
		cp       uint32
		room     int
		expected []byte
	}{
		{
			name:     "ASCII",
			cp:       'a',
			room:     4,
			expected: []byte{'a'},
		},
		{
			name:     "2-byte scalar",
			cp:       0xF1,
			room:     4,
			expected: []byte{0xC3, 0xB1},
		},
		{
			name:     "3-byte scalar",
			cp:       0x800,
			room:     4,
			expected: []byte{0xE0, 0xA0, 0x80},
		},
		{
			name:     "4-byte scalar",
			cp:       0x1F600,
			room:     4,
			expected: []byte{0xF0, 0x9F, 0x98, 0x80},
		},
		{
			name:     "Surrogate sanitized",
			cp:       0xD800,
			room:     4,
			expected: []byte{'?'},
		},
		{
			name:     "Non-character sanitized",
			cp:       0xFFFE,
			room:     4,
			expected: []byte{'?'},
		},
		{
			name:     "Above Unicode sanitized",
			cp:       0x110000,
			room:     4,
			expected: []byte{'?'},
		},
		{
			name:     "No room writes nothing",
			cp:       'a',
			room:     0,
			expected: []byte{},
		},
		{
			name:     "Partial room writes nothing",
			cp:       0x800,
			room:     2,
			expected: []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst [8]byte
			pos, room := encodeScalar(tt.cp, dst[:], 0, tt.room)
			assert.Equal(t, tt.expected, dst[:pos])
			if len(tt.expected) == 0 {
				assert.Equal(t, 0, room, "insufficient room must collapse to 0")
			} else {
				assert.Equal(t, tt.room-len(tt.expected), room)
			}
		})
	}
}

func TestUTF8ToUCS4(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		dstLen   int
		expected []uint32
	}{
		{
			name:     "Mixed widths",
			src:      []byte("hé漢😀"),
			dstLen:   8,
			expected: []uint32{'h', 0xE9, 0x6F22, 0x1F600},
		},
		{
			name:     "Stops at zero byte",
			src:      []byte("ab\x00cd"),
			dstLen:   8,
			expected: []uint32{'a', 'b'},
		},
		{
			name:     "Bad bytes become replacements",
			src:      []byte{0xC0, 0x80, 0x80, 'x'},
			dstLen:   8,
			expected: []uint32{'?', '?', 'x'},
		},
		{
			name:     "Truncates to capacity",
			src:      []byte("abcdef"),
			dstLen:   3,
			expected: []uint32{'a', 'b'},
		},
		{
			name:     "Terminator only",
			src:      []byte("abc"),
			dstLen:   1,
			expected: []uint32{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]uint32, tt.dstLen)
			for i := range dst {
				dst[i] = 0xAAAA // canary
			}
			n := UTF8ToUCS4(tt.src, dst)
			require.Equal(t, len(tt.expected), n)
			assert.Equal(t, tt.expected, dst[:n])
			assert.Equal(t, uint32(0), dst[n], "missing terminator")
		})
	}

	t.Run("Empty destination", func(t *testing.T) {
		assert.Equal(t, 0, UTF8ToUCS4([]byte("abc"), nil))
	})
}

func TestUTF8ToUCS2(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		expected []uint16
	}{
		{
			name:     "BMP text survives",
			src:      []byte("hé漢"),
			expected: []uint16{'h', 0xE9, 0x6F22},
		},
		{
			name:     "Astral codepoint replaced",
			src:      []byte("a😀b"),
			expected: []uint16{'a', '?', 'b'},
		},
		{
			// The truncated lead reports one bogus char, then the
			// continuation byte is re-read as a stray lead: two
			// replacements, no resync.
			name:     "Bad bytes replaced",
			src:      []byte{0xE2, 0x82},
			expected: []uint16{'?', '?'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst [8]uint16
			n := UTF8ToUCS2(tt.src, dst[:])
			require.Equal(t, len(tt.expected), n)
			assert.Equal(t, tt.expected, dst[:n])
			assert.Equal(t, uint16(0), dst[n])
		})
	}
}

func TestUTF8ToUTF16(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		dstLen   int
		expected []uint16
	}{
		{
			name:     "BMP text",
			src:      []byte("hé"),
			dstLen:   8,
			expected: []uint16{'h', 0xE9},
		},
		{
			name:     "Astral becomes surrogate pair",
			src:      []byte("a😀"),
			dstLen:   8,
			expected: []uint16{'a', 0xD83D, 0xDE00},
		},
		{
			name:     "No room for pair stops early",
			src:      []byte("😀"),
			dstLen:   2, // one content slot + terminator: pair cannot fit
			expected: []uint16{},
		},
		{
			name:     "Pair exactly fits",
			src:      []byte("😀"),
			dstLen:   3,
			expected: []uint16{0xD83D, 0xDE00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]uint16, tt.dstLen)
			n := UTF8ToUTF16(tt.src, dst)
			require.Equal(t, len(tt.expected), n)
			assert.Equal(t, tt.expected, dst[:n])
			assert.Equal(t, uint16(0), dst[n], "missing terminator")

			// Truncation must never leave an unpaired surrogate.
			if n > 0 {
				last := dst[n-1]
				assert.False(t, last >= 0xD800 && last <= 0xDBFF,
					"unpaired high surrogate at end of output")
			}
		})
	}
}

func TestUTF8FromUTF16(t *testing.T) {
	tests := []struct {
		name     string
		src      []uint16
		expected string
	}{
		{
			name:     "BMP units",
			src:      []uint16{'h', 0xE9, 0x6F22},
			expected: "hé漢",
		},
		{
			name:     "Valid surrogate pair",
			src:      []uint16{0xD83D, 0xDE00},
			expected: "😀",
		},
		{
			name:     "Orphaned low surrogate",
			src:      []uint16{0xDE00, 'a'},
			expected: "?a",
		},
		{
			name:     "High surrogate without low",
			src:      []uint16{0xD83D, 'a'},
			expected: "?a",
		},
		{
			name:     "High surrogate at end",
			src:      []uint16{0xD83D},
			expected: "?",
		},
		{
			name:     "Stops at zero unit",
			src:      []uint16{'a', 0, 'b'},
			expected: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst [16]byte
			n := UTF8FromUTF16(tt.src, dst[:])
			require.Equal(t, len(tt.expected), n)
			assert.Equal(t, tt.expected, string(dst[:n]))
			assert.Equal(t, byte(0), dst[n])
		})
	}
}

func TestSurrogatePairRoundTrip(t *testing.T) {
	pair := []uint16{0xD83D, 0xDE00} // 0x1F600

	var utf8Buf [8]byte
	n := UTF8FromUTF16(pair, utf8Buf[:])
	require.Equal(t, 4, n)

	var back [4]uint16
	m := UTF8ToUTF16(utf8Buf[:n], back[:])
	require.Equal(t, 2, m)
	assert.Equal(t, pair, back[:m])
}

func TestUTF8FromUCS4(t *testing.T) {
	tests := []struct {
		name     string
		src      []uint32
		dstLen   int
		expected string
	}{
		{
			name:     "Mixed widths",
			src:      []uint32{'h', 0xE9, 0x6F22, 0x1F600},
			dstLen:   16,
			expected: "hé漢😀",
		},
		{
			name:     "Stops at zero element",
			src:      []uint32{'a', 0, 'b'},
			dstLen:   16,
			expected: "a",
		},
		{
			name:     "Invalid scalars replaced",
			src:      []uint32{0xD800, 0xFFFE, 0x110000},
			dstLen:   16,
			expected: "???",
		},
		{
			name:     "Truncation is atomic",
			src:      []uint32{0x800},
			dstLen:   3, // needs 3 content bytes + terminator
			expected: "",
		},
		{
			name:     "Truncation stops later output",
			src:      []uint32{0x800, 'a'},
			dstLen:   3, // 'a' would fit, but truncation is final
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, tt.dstLen)
			n := UTF8FromUCS4(tt.src, dst)
			require.Equal(t, len(tt.expected), n)
			assert.Equal(t, tt.expected, string(dst[:n]))
			assert.Equal(t, byte(0), dst[n])
		})
	}
}

func TestUTF8FromUCS2(t *testing.T) {
	var dst [16]byte
	n := UTF8FromUCS2([]uint16{'h', 0xE9, 0x6F22}, dst[:])
	assert.Equal(t, "hé漢", string(dst[:n]))
	assert.Equal(t, byte(0), dst[n])
}

func TestUTF8FromLatin1(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		expected string
	}{
		{
			name:     "ASCII passes through",
			src:      []byte("hello"),
			expected: "hello",
		},
		{
			name:     "High Latin-1 bytes become 2-byte sequences",
			src:      []byte{'H', 0xE9, 0xFF},
			expected: "Héÿ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst [16]byte
			n := UTF8FromLatin1(tt.src, dst[:])
			require.Equal(t, len(tt.expected), n)
			assert.Equal(t, tt.expected, string(dst[:n]))
			assert.Equal(t, byte(0), dst[n])
		})
	}
}

func TestRoundTripIdempotent(t *testing.T) {
	// After one pass through the lossy boundary, converting again
	// must be a fixed point.
	sources := [][]uint32{
		{'h', 'e', 'l', 'l', 'o'},
		{0xE9, 0x6F22, 0x1F600},
		{0xD800, 0x110000, 'x'}, // sanitized on the first pass
	}

	for _, src := range sources {
		var utf8A [64]byte
		var ucs4 [64]uint32
		var utf8B [64]byte

		n1 := UTF8FromUCS4(src, utf8A[:])
		m := UTF8ToUCS4(utf8A[:n1], ucs4[:])
		n2 := UTF8FromUCS4(ucs4[:m], utf8B[:])

		require.Equal(t, n1, n2)
		assert.Equal(t, utf8A[:n1], utf8B[:n2])
	}
}

func TestUTF8Valid(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		expected bool
	}{
		{
			name:     "ASCII",
			s:        "hello",
			expected: true,
		},
		{
			name:     "Well-formed multi-byte",
			s:        "hé漢😀",
			expected: true,
		},
		{
			name:     "Empty",
			s:        "",
			expected: true,
		},
		{
			name:     "Overlong",
			s:        "\xC0\x80",
			expected: false,
		},
		{
			name:     "Lone lead byte",
			s:        "\xE2",
			expected: false,
		},
		{
			name:     "Stray continuation byte",
			s:        "ab\x80cd",
			expected: false,
		},
		{
			name:     "Encoded surrogate",
			s:        "\xED\xA0\x80",
			expected: false,
		},
		{
			name:     "Zero byte stops the scan",
			s:        "ab\x00\xFF",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UTF8Valid(tt.s))
		})
	}
}
