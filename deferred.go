package ecs

import "github.com/kelthara/ecs/internal/assert"

// maxDeferredFrees is the compile-time cap on pending deferred frees. It
// exists to give buffer overflow a concrete, testable trigger, not because
// Go's garbage collector needs the bookkeeping to stay memory-safe: a retired
// backing array stays alive on its own as long as any interior pointer taken
// from it (via unsafe.Pointer, e.g. a *T returned from Pool.get) is still
// reachable. The buffer's job is purely to preserve the deferred-commit
// contract views rely on — new writes must land in the new buffer while
// readers who grabbed a pointer before growth keep observing the old one,
// until the outermost view closes.
const maxDeferredFrees = 64

// deferredFreeBuffer retains retired backing slices while at least one view
// is open, so growth mid-iteration never appears to "lose" the storage a
// caller is still reading through.
type deferredFreeBuffer struct {
	entries [maxDeferredFrees]any
	count   int
}

// push retains a retired backing slice. It panics if the buffer is full,
// since letting it silently drop entries would make no promise about
// anything.
func (b *deferredFreeBuffer) push(retired any) {
	assert.That(b.count < maxDeferredFrees, "ecs: deferred free buffer full (max %d)", maxDeferredFrees)
	b.entries[b.count] = retired
	b.count++
}

// commit drops every retained reference, letting the garbage collector
// reclaim whatever nothing else still points into.
func (b *deferredFreeBuffer) commit() {
	for i := 0; i < b.count; i++ {
		b.entries[i] = nil
	}
	b.count = 0
}
