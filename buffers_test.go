package physfs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextConversions(t *testing.T) {
	ctx := AcquireContext()
	defer ReleaseContext(ctx)

	src := []byte("hé漢😀")

	utf16 := ctx.UTF16(src)
	assert.Equal(t, []uint16{'h', 0xE9, 0x6F22, 0xD83D, 0xDE00}, utf16)

	// Round-trip back through the same context's UTF-8 buffer.
	assert.Equal(t, "hé漢😀", ctx.UTF8FromUTF16(utf16))

	ucs2 := ctx.UCS2(src)
	assert.Equal(t, []uint16{'h', 0xE9, 0x6F22, '?'}, ucs2)

	ucs4 := ctx.UCS4(src)
	assert.Equal(t, []uint32{'h', 0xE9, 0x6F22, 0x1F600}, ucs4)

	assert.Equal(t, "Héÿ", ctx.UTF8FromLatin1([]byte{'H', 0xE9, 0xFF}))
}

func TestContextViewsMatchPlainConverters(t *testing.T) {
	ctx := AcquireContext()
	defer ReleaseContext(ctx)

	src := []byte("Resources/Maps/ünïcödé")

	var dst [contextScalars]uint16
	n := UTF8ToUTF16(src, dst[:])
	assert.Equal(t, dst[:n], ctx.UTF16(src))
}

func TestContextViewStableUntilReuse(t *testing.T) {
	ctx := AcquireContext()
	defer ReleaseContext(ctx)

	first := ctx.UTF16([]byte("alpha"))
	copied := make([]uint16, len(first))
	copy(copied, first)

	// The next UTF16 conversion overwrites the backing buffer; the
	// earlier view must have been copied out by then.
	second := ctx.UTF16([]byte("beta!"))
	assert.NotEqual(t, copied, first)
	assert.Equal(t, []uint16{'b', 'e', 't', 'a', '!'}, second)
}

func TestContextTruncatesAtCapacity(t *testing.T) {
	ctx := AcquireContext()
	defer ReleaseContext(ctx)

	long := make([]byte, 2*contextScalars)
	for i := range long {
		long[i] = 'x'
	}
	out := ctx.UCS4(long)
	assert.Len(t, out, contextScalars-1) // one element reserved for the terminator
}

func TestContextPool(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := AcquireContext()
			_ = ctx.UCS4([]byte("concurrent"))
			ReleaseContext(ctx)
		}()
	}
	wg.Wait()

	// If we reach here without a race or panic the pool hands out
	// independent contexts correctly.
	ctx := AcquireContext()
	defer ReleaseContext(ctx)
	if len(ctx.utf8) != contextBytes {
		t.Errorf("Context UTF-8 buffer has capacity %d, expected %d", len(ctx.utf8), contextBytes)
	}
}
