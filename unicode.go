// Package physfs implements locale-independent text encoding and
// comparison over caller-supplied, fixed-capacity buffers.
//
// The package converts between UTF-8 and the fixed-width encodings
// UCS-2, UCS-4 and UTF-16 (surrogate-pair aware) plus Latin-1, and
// provides case-folding-aware string comparison. Malformed input is
// never fatal: bad bytes become replacement characters ('?') and
// output is always a well-formed, terminated sequence. No routine
// allocates or retains caller memory past its return.
package physfs

// From rfc3629, the UTF-8 spec:
//  https://www.ietf.org/rfc/rfc3629.txt
//
//   Char. number range  |        UTF-8 octet sequence
//      (hexadecimal)    |              (binary)
//   --------------------+---------------------------------------------
//   0000 0000-0000 007F | 0xxxxxxx
//   0000 0080-0000 07FF | 110xxxxx 10xxxxxx
//   0000 0800-0000 FFFF | 1110xxxx 10xxxxxx 10xxxxxx
//   0001 0000-0010 FFFF | 11110xxx 10xxxxxx 10xxxxxx 10xxxxxx

const (
	// scalarBogus is not representable in Unicode (0x10FFFF is the
	// largest codepoint), so the decoder uses it to report bad bits
	// in a stream. It never escapes the package: public entry points
	// substitute scalarReplacement before writing output.
	scalarBogus = 0xFFFFFFFF

	// scalarReplacement is the codepoint written in place of bogus
	// bits in the source.
	scalarReplacement = '?'
)

// contByte reads src[i] as a UTF-8 continuation byte. ok is false at
// the end of the slice or when the byte is not of the form 10xxxxxx.
func contByte(src []byte, i int) (uint32, bool) {
	if i >= len(src) {
		return 0, false
	}
	b := src[i]
	if b&0xC0 != 0x80 {
		return 0, false
	}
	return uint32(b & 0x3F), true
}

// isSurrogateScalar reports whether cp is one of the seven UTF-16
// surrogate values that are illegal in UTF-8.
func isSurrogateScalar(cp uint32) bool {
	switch cp {
	case 0xD800, 0xDB7F, 0xDB80, 0xDBFF, 0xDC00, 0xDF80, 0xDFFF:
		return true
	}
	return false
}

// decodeScalar decodes the scalar value starting at src[pos] and
// returns it with the position of the next sequence. It returns 0
// only at the end of the input (a zero byte or the end of the slice).
//
// Malformed input yields scalarBogus, with the cursor advanced so
// decoding always makes forward progress: a stray continuation byte
// is skipped one byte at a time (each one reported individually, no
// resync), while a sequence whose continuation bytes fail validation
// advances past the lead byte only. Obsolete 5- and 6-byte sequences
// are parsed so the cursor moves the right number of bytes, but their
// value is always rejected.
func decodeScalar(src []byte, pos int) (uint32, int) {
	if pos >= len(src) || src[pos] == 0 {
		return 0, pos
	}

	octet := uint32(src[pos])

	if octet < 0x80 { // one octet: 0 to 127
		return octet, pos + 1
	}

	if octet < 0xC0 { // bad: starts with 10xxxxxx
		return scalarBogus, pos + 1
	}

	if octet < 0xE0 { // two octets
		o2, ok := contByte(src, pos+1)
		if !ok {
			return scalarBogus, pos + 1
		}
		cp := (octet-0xC0)<<6 | o2
		if cp >= 0x80 && cp <= 0x7FF {
			return cp, pos + 2
		}
		return scalarBogus, pos + 2 // overlong
	}

	if octet < 0xF0 { // three octets
		o2, ok := contByte(src, pos+1)
		if !ok {
			return scalarBogus, pos + 1
		}
		o3, ok := contByte(src, pos+2)
		if !ok {
			return scalarBogus, pos + 1
		}
		cp := (octet-0xE0)<<12 | o2<<6 | o3
		if isSurrogateScalar(cp) {
			return scalarBogus, pos + 3
		}
		// 0xFFFE and 0xFFFF are illegal too, so check them at the edge.
		if cp >= 0x800 && cp <= 0xFFFD {
			return cp, pos + 3
		}
		return scalarBogus, pos + 3
	}

	if octet < 0xF8 { // four octets
		o2, ok := contByte(src, pos+1)
		if !ok {
			return scalarBogus, pos + 1
		}
		o3, ok := contByte(src, pos+2)
		if !ok {
			return scalarBogus, pos + 1
		}
		o4, ok := contByte(src, pos+3)
		if !ok {
			return scalarBogus, pos + 1
		}
		cp := (octet-0xF0)<<18 | o2<<12 | o3<<6 | o4
		if cp >= 0x10000 && cp <= 0x10FFFF {
			return cp, pos + 4
		}
		return scalarBogus, pos + 4
	}

	// Five and six octet sequences became illegal in rfc3629. The
	// value is thrown away, but the continuation bytes are still
	// parsed so the cursor moves ahead the right number of bytes.

	if octet < 0xFC { // five octets
		for i := 1; i <= 4; i++ {
			if _, ok := contByte(src, pos+i); !ok {
				return scalarBogus, pos + 1
			}
		}
		return scalarBogus, pos + 5
	}

	// six octets
	for i := 1; i <= 5; i++ {
		if _, ok := contByte(src, pos+i); !ok {
			return scalarBogus, pos + 1
		}
	}
	return scalarBogus, pos + 6
}

// encodeScalar writes the UTF-8 encoding of cp at dst[pos] and
// returns the new position and remaining room. room is the writable
// budget in bytes, excluding any terminator the caller reserved.
//
// Values that are not legal in UTF-8 (above 0x10FFFF, the 0xFFFE and
// 0xFFFF non-characters, surrogates) are encoded as the replacement
// character instead. If room cannot hold the whole sequence, nothing
// is written and room collapses to 0, so a truncated buffer never
// ends in a partial sequence and callers stop on the next iteration.
func encodeScalar(cp uint32, dst []byte, pos, room int) (int, int) {
	if room == 0 {
		return pos, 0
	}

	if cp > 0x10FFFF || cp == 0xFFFE || cp == 0xFFFF || isSurrogateScalar(cp) {
		cp = scalarReplacement
	}

	switch {
	case cp < 0x80:
		dst[pos] = byte(cp)
		return pos + 1, room - 1

	case cp < 0x800:
		if room < 2 {
			return pos, 0
		}
		dst[pos] = byte(0xC0 | cp>>6)
		dst[pos+1] = byte(0x80 | cp&0x3F)
		return pos + 2, room - 2

	case cp < 0x10000:
		if room < 3 {
			return pos, 0
		}
		dst[pos] = byte(0xE0 | cp>>12)
		dst[pos+1] = byte(0x80 | (cp>>6)&0x3F)
		dst[pos+2] = byte(0x80 | cp&0x3F)
		return pos + 3, room - 3

	default:
		if room < 4 {
			return pos, 0
		}
		dst[pos] = byte(0xF0 | cp>>18)
		dst[pos+1] = byte(0x80 | (cp>>12)&0x3F)
		dst[pos+2] = byte(0x80 | (cp>>6)&0x3F)
		dst[pos+3] = byte(0x80 | cp&0x3F)
		return pos + 4, room - 4
	}
}

// UTF8ToUCS4 converts UTF-8 bytes to a zero-terminated UCS-4 sequence
// in dst, stopping at a zero byte or the end of src, or when dst is
// full. Bad source bytes become replacement characters. It returns
// the number of elements written, not counting the terminator. The
// terminator is always written when len(dst) > 0.
func UTF8ToUCS4(src []byte, dst []uint32) int {
	if len(dst) == 0 {
		return 0
	}
	n, pos := 0, 0
	for n < len(dst)-1 { // save room for the terminator
		cp, next := decodeScalar(src, pos)
		pos = next
		if cp == 0 {
			break
		}
		if cp == scalarBogus {
			cp = scalarReplacement
		}
		dst[n] = cp
		n++
	}
	dst[n] = 0
	return n
}

// UTF8ToUCS2 converts UTF-8 bytes to a zero-terminated UCS-2 sequence
// in dst. UCS-2 has no surrogate-pair mechanism, so codepoints above
// 0xFFFF also become replacement characters. Returns the element
// count, terminator excluded.
func UTF8ToUCS2(src []byte, dst []uint16) int {
	if len(dst) == 0 {
		return 0
	}
	n, pos := 0, 0
	for n < len(dst)-1 {
		cp, next := decodeScalar(src, pos)
		pos = next
		if cp == 0 {
			break
		}
		if cp == scalarBogus || cp > 0xFFFF {
			cp = scalarReplacement
		}
		dst[n] = uint16(cp)
		n++
	}
	dst[n] = 0
	return n
}

// UTF8ToUTF16 converts UTF-8 bytes to a zero-terminated UTF-16
// sequence in dst. Codepoints above 0xFFFF are written as a
// surrogate pair; if dst cannot hold both halves, conversion stops
// before the pair, so truncation never leaves an unpaired surrogate.
// Returns the element count, terminator excluded.
func UTF8ToUTF16(src []byte, dst []uint16) int {
	if len(dst) == 0 {
		return 0
	}
	n, pos := 0, 0
	for n < len(dst)-1 {
		cp, next := decodeScalar(src, pos)
		pos = next
		if cp == 0 {
			break
		}
		if cp == scalarBogus {
			cp = scalarReplacement
		}
		if cp > 0xFFFF { // encode as surrogate pair
			if len(dst)-1-n < 2 {
				break // not enough room for the pair, stop now
			}
			cp -= 0x10000 // make this a 20-bit value
			dst[n] = uint16(0xD800 + (cp>>10)&0x3FF)
			n++
			cp = 0xDC00 + cp&0x3FF
		}
		dst[n] = uint16(cp)
		n++
	}
	dst[n] = 0
	return n
}

// utf8From is the shared shape of the fixed-width-to-UTF-8
// conversions: each source element is itself a scalar value.
func utf8From[E uint8 | uint16 | uint32](src []E, dst []byte) int {
	if len(dst) == 0 {
		return 0
	}
	pos, room := 0, len(dst)-1 // save room for the terminator
	for i := 0; i < len(src) && room > 0; i++ {
		cp := uint32(src[i])
		if cp == 0 {
			break
		}
		pos, room = encodeScalar(cp, dst, pos, room)
	}
	dst[pos] = 0
	return pos
}

// UTF8FromUCS4 converts a zero-terminated UCS-4 sequence to
// zero-terminated UTF-8 in dst. Returns the byte count, terminator
// excluded. Truncation never splits a multi-byte sequence.
func UTF8FromUCS4(src []uint32, dst []byte) int {
	return utf8From(src, dst)
}

// UTF8FromUCS2 converts a zero-terminated UCS-2 sequence to
// zero-terminated UTF-8 in dst. Returns the byte count, terminator
// excluded.
func UTF8FromUCS2(src []uint16, dst []byte) int {
	return utf8From(src, dst)
}

// UTF8FromLatin1 converts a zero-terminated Latin-1 byte sequence to
// zero-terminated UTF-8 in dst. Latin-1 maps to Unicode codepoints
// directly, so the bytes are just UTF-8 encoded. Returns the byte
// count, terminator excluded.
func UTF8FromLatin1(src []byte, dst []byte) int {
	return utf8From(src, dst)
}

// UTF8FromUTF16 converts a zero-terminated UTF-16 sequence to
// zero-terminated UTF-8 in dst. A valid high/low surrogate pair
// combines into one codepoint; an orphaned or mismatched surrogate
// unit becomes a replacement character and is not reinterpreted as
// the start of a new pair. Returns the byte count, terminator
// excluded.
func UTF8FromUTF16(src []uint16, dst []byte) int {
	if len(dst) == 0 {
		return 0
	}
	pos, room := 0, len(dst)-1
	for i := 0; i < len(src) && room > 0; i++ {
		cp := uint32(src[i])
		if cp == 0 {
			break
		}

		if cp >= 0xDC00 && cp <= 0xDFFF {
			// Orphaned second half of a surrogate pair.
			cp = scalarReplacement
		} else if cp >= 0xD800 && cp <= 0xDBFF { // start surrogate pair
			if i+1 < len(src) && src[i+1] >= 0xDC00 && src[i+1] <= 0xDFFF {
				i++ // eat the other surrogate
				cp = 0x10000 + ((cp-0xD800)<<10 | (uint32(src[i]) - 0xDC00))
			} else {
				cp = scalarReplacement
			}
		}

		pos, room = encodeScalar(cp, dst, pos, room)
	}
	dst[pos] = 0
	return pos
}

// UTF8Valid reports whether s is well-formed UTF-8 under the same
// rules the decoder applies: no overlong forms, no surrogates, no
// 0xFFFE/0xFFFF, no obsolete 5- or 6-byte sequences. A zero byte
// terminates the scan early and everything before it must be valid.
func UTF8Valid(s string) bool {
	src := unsafeStringToBytes(s)
	pos := 0
	for {
		cp, next := decodeScalar(src, pos)
		if cp == scalarBogus {
			return false
		}
		if cp == 0 {
			return true
		}
		pos = next
	}
}
