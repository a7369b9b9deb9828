package physfs

import "sync"

// Buffer capacities, in elements. Sized for filesystem paths: 1024
// codepoints of path comfortably exceeds every platform limit, and
// the UTF-8 buffer holds the worst-case 4-byte expansion.
const (
	contextScalars = 1024
	contextBytes   = contextScalars * 4
)

// Context holds pre-sized conversion buffers so path-resolution
// callers can convert between encodings without allocating per call.
//
// The slices and strings returned by its methods are views into the
// Context's own storage: they stay valid until the next conversion
// through the same Context or until the Context is released, and a
// Context must not be used from more than one goroutine at a time.
type Context struct {
	utf8  [contextBytes]byte
	utf16 [contextScalars]uint16
	ucs2  [contextScalars]uint16
	ucs4  [contextScalars]uint32
}

// Context pool to reuse instances without allocating.
var contextPool = sync.Pool{
	New: func() interface{} {
		return &Context{}
	},
}

// AcquireContext returns a Context from the pool.
func AcquireContext() *Context {
	return contextPool.Get().(*Context)
}

// ReleaseContext returns ctx to the pool. Views previously returned
// by ctx's methods must no longer be in use.
func ReleaseContext(ctx *Context) {
	contextPool.Put(ctx)
}

// UTF16 converts UTF-8 bytes to a UTF-16 view, truncating at the
// Context's capacity. The backing buffer carries a zero terminator
// just past the view.
func (c *Context) UTF16(src []byte) []uint16 {
	n := UTF8ToUTF16(src, c.utf16[:])
	return c.utf16[:n]
}

// UCS2 converts UTF-8 bytes to a UCS-2 view, truncating at the
// Context's capacity.
func (c *Context) UCS2(src []byte) []uint16 {
	n := UTF8ToUCS2(src, c.ucs2[:])
	return c.ucs2[:n]
}

// UCS4 converts UTF-8 bytes to a UCS-4 view, truncating at the
// Context's capacity.
func (c *Context) UCS4(src []byte) []uint32 {
	n := UTF8ToUCS4(src, c.ucs4[:])
	return c.ucs4[:n]
}

// UTF8FromUTF16 converts a zero-terminated UTF-16 sequence to a
// UTF-8 string view, truncating at the Context's capacity. The
// string aliases the Context's buffer; copy it if it must outlive
// the Context.
func (c *Context) UTF8FromUTF16(src []uint16) string {
	n := UTF8FromUTF16(src, c.utf8[:])
	return unsafeBytesToString(c.utf8[:n])
}

// UTF8FromLatin1 converts a zero-terminated Latin-1 sequence to a
// UTF-8 string view, truncating at the Context's capacity. Same
// aliasing rule as UTF8FromUTF16.
func (c *Context) UTF8FromLatin1(src []byte) string {
	n := UTF8FromLatin1(src, c.utf8[:])
	return unsafeBytesToString(c.utf8[:n])
}
