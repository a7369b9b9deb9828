package physfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseFold(t *testing.T) {
	tests := []struct {
		name string
		cp   uint32
		to   [3]uint32
	}{
		{
			name: "ASCII uppercase",
			cp:   'A',
			to:   [3]uint32{'a', 0, 0},
		},
		{
			name: "ASCII lowercase is identity",
			cp:   'a',
			to:   [3]uint32{'a', 0, 0},
		},
		{
			name: "Unmapped codepoint is identity",
			cp:   0x6F22, // 漢
			to:   [3]uint32{0x6F22, 0, 0},
		},
		{
			name: "Sharp s expands to two scalars",
			cp:   0xDF, // ß
			to:   [3]uint32{0x73, 0x73, 0},
		},
		{
			name: "Dotted capital I expands to two scalars",
			cp:   0x130,
			to:   [3]uint32{0x69, 0x307, 0},
		},
		{
			name: "Iota with diacritics expands to three scalars",
			cp:   0x390,
			to:   [3]uint32{0x3B9, 0x308, 0x301},
		},
		{
			name: "Astral-plane mapping",
			cp:   0x10404, // Deseret capital
			to:   [3]uint32{0x1042C, 0, 0},
		},
		{
			name: "Bogus sentinel is identity",
			cp:   scalarBogus,
			to:   [3]uint32{scalarBogus, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t0, t1, t2 := caseFold(tt.cp)
			assert.Equal(t, tt.to, [3]uint32{t0, t1, t2})
		})
	}
}

func TestCaseFoldTableShape(t *testing.T) {
	entries := 0
	for h, bucket := range caseFoldHash {
		for i, m := range bucket {
			entries++
			require.Equal(t, uint8(h), foldHash(m.from),
				"entry %04X hashed into wrong bucket %02X", m.from, h)
			require.NotZero(t, m.to0, "entry %04X has empty expansion", m.from)
			if m.to1 == 0 {
				require.Zero(t, m.to2, "entry %04X has a gap in its expansion", m.from)
			}
			if i > 0 {
				require.Less(t, bucket[i-1].from, m.from,
					"bucket %02X not sorted at %04X", h, m.from)
			}
		}
	}
	// The full C+F fold data is in the thousands of entries; a tiny
	// count means a truncated regeneration.
	assert.Greater(t, entries, 1000)
}

func TestCaseFoldIdempotent(t *testing.T) {
	// Every scalar a table entry folds to must itself fold to
	// itself, so folding twice equals folding once.
	for _, bucket := range caseFoldHash {
		for _, m := range bucket {
			for _, to := range [3]uint32{m.to0, m.to1, m.to2} {
				if to == 0 {
					continue
				}
				f0, f1, f2 := caseFold(to)
				require.Equal(t, [3]uint32{to, 0, 0}, [3]uint32{f0, f1, f2},
					"fold target %04X of %04X is not fully folded", to, m.from)
			}
		}
	}
}

func TestUTF8Stricmp(t *testing.T) {
	tests := []struct {
		name     string
		str1     string
		str2     string
		expected int
	}{
		{
			name:     "Equal ASCII ignoring case",
			str1:     "ABC",
			str2:     "abc",
			expected: 0,
		},
		{
			name:     "Identical strings",
			str1:     "hé漢😀",
			str2:     "hé漢😀",
			expected: 0,
		},
		{
			name:     "Less than",
			str1:     "abc",
			str2:     "abd",
			expected: -1,
		},
		{
			name:     "Greater than",
			str1:     "abd",
			str2:     "abc",
			expected: 1,
		},
		{
			name:     "Prefix orders before longer string",
			str1:     "ab",
			str2:     "abc",
			expected: -1,
		},
		{
			name:     "Sharp s equals its expansion",
			str1:     "straße",
			str2:     "STRASSE",
			expected: 0,
		},
		{
			name:     "Expansion equals sharp s",
			str1:     "strasse",
			str2:     "STRAßE",
			expected: 0,
		},
		{
			name:     "Ligature equals its spelled-out form",
			str1:     "ﬁle", // U+FB01 LATIN SMALL LIGATURE FI
			str2:     "FILE",
			expected: 0,
		},
		{
			name:     "Non-ASCII case pair",
			str1:     "ΑΒΓ",
			str2:     "αβγ",
			expected: 0,
		},
		{
			name:     "Byte-identical malformed input is equal",
			str1:     "\xC0\x80",
			str2:     "\xC0\x80",
			expected: 0,
		},
		{
			name:     "Malformed orders after any codepoint",
			str1:     "\x80",
			str2:     "z",
			expected: 1,
		},
		{
			name:     "Empty strings",
			str1:     "",
			str2:     "",
			expected: 0,
		},
		{
			name:     "Empty orders first",
			str1:     "",
			str2:     "a",
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UTF8Stricmp(tt.str1, tt.str2))
			assert.Equal(t, -tt.expected, UTF8Stricmp(tt.str2, tt.str1))
		})
	}
}

func TestUTF8Strnicmp(t *testing.T) {
	tests := []struct {
		name     string
		str1     string
		str2     string
		n        uint32
		expected int
	}{
		{
			name:     "Equal within limit",
			str1:     "abcdef",
			str2:     "ABCxyz",
			n:        3,
			expected: 0,
		},
		{
			name:     "Difference inside limit",
			str1:     "abcdef",
			str2:     "abcxyz",
			n:        4,
			expected: -1,
		},
		{
			name:     "Limit past both ends",
			str1:     "ABC",
			str2:     "abc",
			n:        100,
			expected: 0,
		},
		{
			name:     "Shorter string ends inside limit",
			str1:     "ab",
			str2:     "abc",
			n:        5,
			expected: -1,
		},
		{
			name:     "Zero limit always matches",
			str1:     "abc",
			str2:     "xyz",
			n:        0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UTF8Strnicmp(tt.str1, tt.str2, tt.n))
		})
	}
}

func TestASCIIStricmp(t *testing.T) {
	tests := []struct {
		name     string
		str1     string
		str2     string
		expected int
	}{
		{
			name:     "Equal ignoring case",
			str1:     "ABC",
			str2:     "abc",
			expected: 0,
		},
		{
			name:     "Less than",
			str1:     "Hello",
			str2:     "hellp",
			expected: -1,
		},
		{
			name:     "Prefix orders first",
			str1:     "read",
			str2:     "readme",
			expected: -1,
		},
		{
			name:     "Empty strings",
			str1:     "",
			str2:     "",
			expected: 0,
		},
		{
			name:     "Only A-Z folds",
			str1:     "a[", // '[' is 'Z'+1, outside the fold range
			str2:     "a{", // '{' is 'z'+1
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ASCIIStricmp(tt.str1, tt.str2))
			assert.Equal(t, -tt.expected, ASCIIStricmp(tt.str2, tt.str1))
		})
	}
}

func TestASCIIStrnicmp(t *testing.T) {
	tests := []struct {
		name     string
		str1     string
		str2     string
		n        uint32
		expected int
	}{
		{
			name:     "Equal within limit",
			str1:     "README.TXT",
			str2:     "readme.md",
			n:        7,
			expected: 0,
		},
		{
			name:     "Difference inside limit",
			str1:     "README.TXT",
			str2:     "readme.md",
			n:        9,
			expected: 1, // 't' > 'm'
		},
		{
			name:     "Zero limit always matches",
			str1:     "abc",
			str2:     "xyz",
			n:        0,
			expected: 0,
		},
		{
			name:     "Limit past both ends",
			str1:     "ZIP",
			str2:     "zip",
			n:        64,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ASCIIStrnicmp(tt.str1, tt.str2, tt.n))
		})
	}
}

func BenchmarkUTF8Stricmp(b *testing.B) {
	s1 := "Resources/Maps/WEST_coast/Terrain.mélange"
	s2 := "resources/maps/west_COAST/terrain.MÉLANGE"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if UTF8Stricmp(s1, s2) != 0 {
			b.Fatal("expected equal")
		}
	}
}

func BenchmarkASCIIStricmp(b *testing.B) {
	s1 := "Resources/Maps/WEST_coast/Terrain.dds"
	s2 := "resources/maps/west_COAST/terrain.DDS"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if ASCIIStricmp(s1, s2) != 0 {
			b.Fatal("expected equal")
		}
	}
}
