package physfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsafeStringToBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
	}{
		{
			name:     "Empty string",
			input:    "",
			expected: []byte{},
		},
		{
			name:     "ASCII string",
			input:    "hello",
			expected: []byte{'h', 'e', 'l', 'l', 'o'},
		},
		{
			name:     "Raw malformed bytes survive",
			input:    "\xC0\x80",
			expected: []byte{0xC0, 0x80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := unsafeStringToBytes(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUnsafeBytesToString(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "Empty byte slice",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "Non-empty byte slice",
			input:    []byte{'h', 'e', 'l', 'l', 'o'},
			expected: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := unsafeBytesToString(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMemEqual(t *testing.T) {
	tests := []struct {
		name     string
		a        []byte
		b        []byte
		length   int
		expected bool
	}{
		{
			name:     "Equal slices",
			a:        []byte("Maps/east_coast"),
			b:        []byte("Maps/east_coast"),
			length:   15,
			expected: true,
		},
		{
			name:     "Difference inside a word",
			a:        []byte("Maps/east_coast"),
			b:        []byte("Maps/west_coast"),
			length:   15,
			expected: false,
		},
		{
			name:     "Difference in the byte tail",
			a:        []byte("Maps/east_coasT"),
			b:        []byte("Maps/east_coast"),
			length:   15,
			expected: false,
		},
		{
			name:     "Partial match",
			a:        []byte("Maps/east"),
			b:        []byte("Maps/west"),
			length:   5,
			expected: true,
		},
		{
			name:     "Zero length",
			a:        []byte{},
			b:        []byte{},
			length:   0,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := memEqual(tt.a, tt.b, tt.length)
			assert.Equal(t, tt.expected, result)
		})
	}
}
