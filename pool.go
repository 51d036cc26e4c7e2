package ecs

import "unsafe"

// pool is a sparse-set store for one component type: sparse maps an entity
// slot to a packed index (or -1 if absent), dense holds the owning handles
// in the same packed order, and data holds the raw payload bytes. Growth of
// dense/data doubles from an initial capacity of 8; sparse grows to exactly
// slot+1 on demand, never doubled, since it is indexed by slot rather than
// packed.
type pool struct {
	world       *World
	onCreate    func(*World, Entity)
	onDestroy   func(*World, Entity)
	sparse      []int32
	dense       []Handle
	data        []byte
	id          ComponentID
	elementSize uintptr
	n           int
	capacity    int
}

func newPool(w *World, id ComponentID, elementSize uintptr) *pool {
	return &pool{world: w, id: id, elementSize: elementSize}
}

// dataLen returns the byte length to allocate for n elements of the given
// size, rounding a zero-sized component (an empty tag struct) up to 1 byte
// so indexing its single always-zero offset never runs off a zero-length
// slice.
func dataLen(n int, elementSize uintptr) uintptr {
	l := uintptr(n) * elementSize
	if l == 0 {
		return 1
	}
	return l
}

// has is the O(1) membership test: P5 in the data model.
func (p *pool) has(h Handle) bool {
	slot := slotOf(h)
	return int(slot) < len(p.sparse) && p.sparse[slot] != -1
}

// growSparse extends sparse to cover slot, initializing new entries to -1.
// The old sparse array is not retired through the deferred-free buffer:
// sparse grows one slot at a time, no pointer into it is ever handed out,
// and views re-read p.sparse on every membership test. Only data/dense
// growth (below) goes through the buffer.
func (p *pool) growSparse(slot uint32) {
	if int(slot) < len(p.sparse) {
		return
	}
	newSparse := make([]int32, int(slot)+1)
	copy(newSparse, p.sparse)
	for i := len(p.sparse); i < len(newSparse); i++ {
		newSparse[i] = -1
	}
	p.sparse = newSparse
}

// grow doubles dense/data capacity (starting from 8), copying the live
// prefix into the new buffers and retiring the old ones through the
// deferred-free buffer if a view is currently open.
func (p *pool) grow() {
	newCap := 8
	if p.capacity >= 8 {
		newCap = p.capacity * 2
	}
	newDense := make([]Handle, newCap)
	newData := make([]byte, dataLen(newCap, p.elementSize))
	copy(newDense, p.dense[:p.n])
	copy(newData, p.data[:uintptr(p.n)*p.elementSize])
	if p.capacity > 0 && p.world.iterationDepth > 0 {
		p.world.deferred.push(p.dense)
		p.world.deferred.push(p.data)
	}
	p.dense = newDense
	p.data = newData
	p.capacity = newCap
}

// add grows storage as needed and returns a pointer to the uninitialized
// payload slot for h; the caller is responsible for writing the value.
func (p *pool) add(h Handle) unsafe.Pointer {
	slot := slotOf(h)
	p.growSparse(slot)
	if p.n >= p.capacity {
		p.grow()
	}
	idx := p.n
	p.sparse[slot] = int32(idx)
	p.dense[idx] = h
	p.n++
	return unsafe.Pointer(&p.data[uintptr(idx)*p.elementSize])
}

// get returns a pointer to h's payload. Callers must have already confirmed
// has(h).
func (p *pool) get(h Handle) unsafe.Pointer {
	idx := p.sparse[slotOf(h)]
	return unsafe.Pointer(&p.data[uintptr(idx)*p.elementSize])
}

// remove performs the swap-and-pop: the payload at the removed slot is
// overwritten with the last live payload, and the last slot's sparse entry
// is retargeted. When the removed entry is already last, the copy is
// skipped entirely — `_examples/original_source/ecs.hpp` does the copy
// unconditionally there too (a self-memmove, safe but wasted work).
func (p *pool) remove(h Handle) {
	if p.onDestroy != nil {
		p.onDestroy(p.world, Entity{handle: h, world: p.world})
	}
	slot := slotOf(h)
	pos := p.sparse[slot]
	lastIdx := p.n - 1
	if int(pos) != lastIdx {
		last := p.dense[lastIdx]
		p.sparse[slotOf(last)] = pos
		p.dense[pos] = last
		dst := uintptr(pos) * p.elementSize
		src := uintptr(lastIdx) * p.elementSize
		copy(p.data[dst:dst+p.elementSize], p.data[src:src+p.elementSize])
	}
	p.sparse[slot] = -1
	p.n--
}

// teardown fires on_destroy for every entity still in the pool, in dense
// order, ahead of the World discarding it. It does not free anything
// explicitly — once the pool itself becomes unreachable, so do its slices.
func (p *pool) teardown() {
	if p.onDestroy != nil {
		for i := 0; i < p.n; i++ {
			p.onDestroy(p.world, Entity{handle: p.dense[i], world: p.world})
		}
	}
}

// shrinkToFit reallocates dense/data down to ceil(n, 8) elements when the
// pool is sparsely populated relative to its capacity. It copies exactly the
// live prefix (n elements) into the smaller buffers — copying the new,
// already-shrunk capacity instead would silently truncate the payload, a
// defect `_examples/original_source/ecs.hpp` actually carries.
func (p *pool) shrinkToFit() {
	if p.n <= 8 || p.capacity <= 2*p.n {
		return
	}
	newCap := ((p.n + 7) / 8) * 8
	newDense := make([]Handle, newCap)
	newData := make([]byte, dataLen(newCap, p.elementSize))
	copy(newDense, p.dense[:p.n])
	copy(newData, p.data[:uintptr(p.n)*p.elementSize])
	p.dense = newDense
	p.data = newData
	p.capacity = newCap
}
