package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCaseFolding = `# CaseFolding-15.0.0.txt
# <code>; <status>; <mapping>; # <name>

0041; C; 0061; # LATIN CAPITAL LETTER A
0049; C; 0069; # LATIN CAPITAL LETTER I
0049; T; 0131; # LATIN CAPITAL LETTER I
00DF; F; 0073 0073; # LATIN SMALL LETTER SHARP S
00DF; S; 00DF; # LATIN SMALL LETTER SHARP S
0390; F; 03B9 0308 0301; # GREEK SMALL LETTER IOTA WITH DIALYTIKA AND TONOS
10404; C; 1042C; # DESERET CAPITAL LETTER LONG O
`

func TestParseCaseFolding(t *testing.T) {
	mappings, err := parseCaseFolding(strings.NewReader(sampleCaseFolding))
	require.NoError(t, err)

	// T and S alternatives are skipped, comments and blanks ignored.
	expected := []mapping{
		{from: 0x0041, to: [3]uint32{0x0061, 0, 0}},
		{from: 0x0049, to: [3]uint32{0x0069, 0, 0}},
		{from: 0x00DF, to: [3]uint32{0x0073, 0x0073, 0}},
		{from: 0x0390, to: [3]uint32{0x03B9, 0x0308, 0x0301}},
		{from: 0x10404, to: [3]uint32{0x1042C, 0, 0}},
	}
	assert.Equal(t, expected, mappings)
}

func TestParseCaseFoldingErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "Too few fields",
			input: "0041; C\n",
		},
		{
			name:  "Bad code point",
			input: "XYZZY; C; 0061;\n",
		},
		{
			name:  "Bad mapping element",
			input: "0041; C; zz;\n",
		},
		{
			name:  "Too many mapping elements",
			input: "0041; F; 0061 0062 0063 0064;\n",
		},
		{
			name:  "Empty mapping",
			input: "0041; C; ;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCaseFolding(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestBucketize(t *testing.T) {
	mappings := []mapping{
		{from: 0x10404, to: [3]uint32{0x1042C, 0, 0}},
		{from: 0x0041, to: [3]uint32{0x0061, 0, 0}},
	}
	buckets := bucketize(mappings)

	// 0x41 hashes to 0x41, 0x10404 to (0x04 ^ 0x04) = 0x00.
	assert.Equal(t, []mapping{mappings[1]}, buckets[0x41])
	assert.Equal(t, []mapping{mappings[0]}, buckets[0x00])

	for h, bucket := range buckets {
		for i := 1; i < len(bucket); i++ {
			assert.Less(t, bucket[i-1].from, bucket[i].from, "bucket %02X not sorted", h)
		}
	}
}

func TestRender(t *testing.T) {
	mappings, err := parseCaseFolding(strings.NewReader(sampleCaseFolding))
	require.NoError(t, err)

	out := string(render("physfs", bucketize(mappings)))

	assert.Contains(t, out, "Code generated by mkcasefold; DO NOT EDIT.")
	assert.Contains(t, out, "package physfs\n")
	assert.Contains(t, out, "var caseFoldHash = [256][]caseFoldMapping{")
	assert.Contains(t, out, "{0x00DF, 0x0073, 0x0073, 0x0000},")
	assert.Contains(t, out, "{0x0390, 0x03B9, 0x0308, 0x0301},")
	assert.Contains(t, out, "{0x10404, 0x1042C, 0x0000, 0x0000},")
}
