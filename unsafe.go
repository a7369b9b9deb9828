package physfs

import "unsafe"

// unsafeStringToBytes converts string to []byte without allocation.
// SAFE to use here because the view is read-only and never outlives
// the comparison or validation call it feeds.
func unsafeStringToBytes(s string) []byte {
	if s == "" {
		return []byte{}
	}
	return *(*[]byte)(unsafe.Pointer(&struct {
		string
		int
	}{s, len(s)}))
}

// unsafeBytesToString converts []byte to string without allocation.
// SAFE to use here because the result is only used while the backing
// buffer is stable (a Context view or a caller-owned buffer).
func unsafeBytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return *(*string)(unsafe.Pointer(&b))
}

// memEqual compares two byte slices for equality up to length. It
// reads word-at-a-time through unsafe pointers, so both slices must
// be at least length bytes long. The comparators use it as a fast
// path: byte-identical strings always compare equal, even when they
// contain malformed sequences, because both sides decode identically.
func memEqual(a, b []byte, length int) bool {
	if length == 0 {
		return true
	}

	// Word-size comparison when possible (8 bytes at a time on 64-bit)
	const wordSize = int(unsafe.Sizeof(uintptr(0)))

	wordsToCompare := length / wordSize
	for i := 0; i < wordsToCompare; i++ {
		aWord := *(*uintptr)(unsafe.Pointer(&a[i*wordSize]))
		bWord := *(*uintptr)(unsafe.Pointer(&b[i*wordSize]))
		if aWord != bWord {
			return false
		}
	}

	// Handle remaining bytes
	remaining := length % wordSize
	offset := wordsToCompare * wordSize
	for i := 0; i < remaining; i++ {
		if a[offset+i] != b[offset+i] {
			return false
		}
	}

	return true
}
