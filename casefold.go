package physfs

// caseFoldMapping maps one scalar value to its case-folded expansion
// of up to three scalar values. Trailing zeros mean the expansion is
// shorter than three. The table in casefold_table.go is keyed by
// foldHash and generated by cmd/mkcasefold; most codepoints are not
// in it because they do not change under folding.
type caseFoldMapping struct {
	from, to0, to1, to2 uint32
}

// foldHash selects the caseFoldHash bucket for a scalar value.
func foldHash(cp uint32) uint8 {
	return uint8((cp ^ (cp >> 8)) & 0xFF)
}

// caseFold returns the case-folded expansion of cp. Codepoints with
// no mapping fold to themselves.
func caseFold(cp uint32) (to0, to1, to2 uint32) {
	bucket := caseFoldHash[foldHash(cp)]
	for i := range bucket {
		if bucket[i].from == cp {
			return bucket[i].to0, bucket[i].to1, bucket[i].to2
		}
	}

	// Not found... there's no remapping for this codepoint.
	return cp, 0, 0
}

// foldStream yields the case-folded scalar stream of a UTF-8 byte
// sequence: each decoded codepoint expands to its one-to-three
// folded scalars before the next codepoint is read. Comparing two
// streams scalar by scalar makes a ligature equal to its spelled-out
// expansion, which per-codepoint comparison cannot do.
type foldStream struct {
	src  []byte
	pos  int
	q    [3]uint32 // folded scalars not yet consumed
	head int
	tail int
}

func (s *foldStream) hasPending() bool {
	return s.head < s.tail
}

// nextRaw decodes and consumes the next raw scalar, 0 at the end of
// the input. Malformed bytes come back as the bogus sentinel so they
// order like any other value.
func (s *foldStream) nextRaw() uint32 {
	cp, pos := decodeScalar(s.src, s.pos)
	s.pos = pos
	return cp
}

// foldRaw queues the folded expansion of cp and consumes its first
// scalar. cp 0 passes through untouched.
func (s *foldStream) foldRaw(cp uint32) uint32 {
	if cp == 0 {
		return 0
	}
	s.q[0], s.q[1], s.q[2] = caseFold(cp)
	s.tail = 1
	if s.q[1] != 0 {
		s.tail = 2
		if s.q[2] != 0 {
			s.tail = 3
		}
	}
	s.head = 1
	return s.q[0]
}

// next returns the next folded scalar, 0 at the end of the input.
func (s *foldStream) next() uint32 {
	if s.head < s.tail {
		cp := s.q[s.head]
		s.head++
		return cp
	}
	return s.foldRaw(s.nextRaw())
}

// compareFold orders two UTF-8 byte sequences by their case-folded
// scalar streams. A negative limit means unbounded; otherwise the
// comparison stops after limit compared scalar pairs and reports 0,
// "equal so far".
func compareFold(b1, b2 []byte, limit int) int {
	var s1, s2 foldStream
	s1.src, s2.src = b1, b2

	for limit != 0 {
		var cp1, cp2 uint32
		if !s1.hasPending() && !s2.hasPending() {
			// Both cursors sit on a codepoint boundary, so
			// identical raw scalars match without consulting the
			// fold table. That is the common case: most
			// codepoints fold to themselves.
			cp1, cp2 = s1.nextRaw(), s2.nextRaw()
			if cp1 == cp2 {
				if cp1 == 0 {
					return 0 // complete match
				}
				if limit > 0 {
					limit--
				}
				continue
			}
			cp1, cp2 = s1.foldRaw(cp1), s2.foldRaw(cp2)
		} else {
			cp1, cp2 = s1.next(), s2.next()
		}

		if cp1 < cp2 {
			return -1
		}
		if cp1 > cp2 {
			return 1
		}
		if cp1 == 0 {
			return 0
		}
		if limit > 0 {
			limit--
		}
	}

	return 0 // matched through the limit
}

// UTF8Stricmp compares two UTF-8 strings case-insensitively using
// full Unicode case folding, returning -1, 0 or 1. A codepoint that
// folds to a multi-codepoint expansion compares equal to its
// spelled-out form ("straße" equals "STRASSE"). Malformed sequences
// order like any other scalar, so byte-identical strings are always
// equal.
func UTF8Stricmp(str1, str2 string) int {
	b1 := unsafeStringToBytes(str1)
	b2 := unsafeStringToBytes(str2)

	if len(b1) == len(b2) && memEqual(b1, b2, len(b1)) {
		return 0
	}

	return compareFold(b1, b2, -1)
}

// UTF8Strnicmp is UTF8Stricmp limited to the first n compared scalar
// pairs. Strings that match through the limit compare equal
// regardless of what follows.
func UTF8Strnicmp(str1, str2 string, n uint32) int {
	return compareFold(unsafeStringToBytes(str1), unsafeStringToBytes(str2), int(n))
}

// asciiLower returns the ASCII lowercase version of c.
func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// ASCIIStricmp compares two strings case-insensitively, folding only
// the bytes 'A' through 'Z'. It never decodes UTF-8, so it is only
// correct for input known to be pure ASCII (protocol tokens, archive
// signatures); multi-byte sequences compare by raw byte value.
func ASCIIStricmp(str1, str2 string) int {
	for i := 0; ; i++ {
		var ch1, ch2 byte
		if i < len(str1) {
			ch1 = str1[i]
		}
		if i < len(str2) {
			ch2 = str2[i]
		}
		cp1 := asciiLower(ch1)
		cp2 := asciiLower(ch2)
		switch {
		case cp1 < cp2:
			return -1
		case cp1 > cp2:
			return 1
		case cp1 == 0: // both at the end
			return 0
		}
	}
}

// ASCIIStrnicmp is ASCIIStricmp limited to the first n bytes.
func ASCIIStrnicmp(str1, str2 string, n uint32) int {
	for i := 0; uint32(i) < n; i++ {
		var ch1, ch2 byte
		if i < len(str1) {
			ch1 = str1[i]
		}
		if i < len(str2) {
			ch2 = str2[i]
		}
		cp1 := asciiLower(ch1)
		cp2 := asciiLower(ch2)
		switch {
		case cp1 < cp2:
			return -1
		case cp1 > cp2:
			return 1
		case cp1 == 0:
			return 0
		}
	}

	return 0 // matched to n bytes
}
