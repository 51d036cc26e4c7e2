package ecs

import (
	"github.com/kelthara/ecs/internal/assert"
	"github.com/rs/zerolog"
)

// World owns the entity identity table and every component pool. It is not
// safe for concurrent use — callers that need concurrency serialize their
// own access, the same discipline the source model assumes.
type World struct {
	logger         zerolog.Logger
	table          []Handle
	pools          []*pool
	deferred       deferredFreeBuffer
	aliveCount     uint64
	availSlot      uint32
	iterationDepth int
}

// NewWorld returns an empty World with no entities and no component pools.
func NewWorld() *World {
	return &World{
		availSlot: NullSlot,
		logger:    zerolog.Nop(),
	}
}

// NewEntity allocates a fresh entity, either by recycling the most recently
// released slot (LIFO) with its version bumped, or by appending a new slot
// at version 0 when the free list is empty.
func (w *World) NewEntity() Entity {
	if w.availSlot != NullSlot {
		slot := w.availSlot
		h := w.table[slot]
		w.availSlot = slotOf(h)
		newHandle := makeHandle(slot, versionOf(h))
		w.table[slot] = newHandle
		w.aliveCount++
		return Entity{handle: newHandle, world: w}
	}
	slot := uint32(len(w.table))
	h := makeHandle(slot, 0)
	w.table = append(w.table, h)
	w.aliveCount++
	return Entity{handle: h, world: w}
}

// destroy removes every component the entity holds and returns its slot to
// the free list with a bumped version, invalidating h and every other
// outstanding copy of it.
func (w *World) destroy(h Handle) {
	slot := slotOf(h)
	for _, p := range w.pools {
		if p.has(h) {
			p.remove(h)
		}
	}
	nextVersion := versionOf(h) + 1
	w.table[slot] = makeHandle(w.availSlot, nextVersion)
	w.availSlot = slot
	w.aliveCount--
}

// Count returns the number of currently live entities.
func (w *World) Count() uint64 {
	return w.aliveCount
}

// IsValid reports whether h still identifies a live entity: its slot is in
// bounds and the table holds exactly this handle (same version) there.
func (w *World) IsValid(h Handle) bool {
	slot := slotOf(h)
	return int(slot) < len(w.table) && w.table[slot] == h
}

// At returns the handle stored at identity-table index i. The result may be
// a free-list node rather than a live entity — At performs no validity
// check, so callers must confirm liveness themselves (via IsValid or
// Entity.Valid) before trusting what comes back.
func (w *World) At(i uint32) Entity {
	return Entity{handle: w.table[i], world: w}
}

// ResetEntities discards every entity and every component, leaving the
// pools allocated but empty. Component type registration is untouched. It
// panics if called while a view is open, for the same reason CollectGarbage
// does: replacing a pool's backing buffers while a View still holds that
// pool's *pool reference would corrupt the open iteration instead of
// failing loudly.
func (w *World) ResetEntities() {
	assert.That(w.iterationDepth == 0, "ecs: ResetEntities called while a view is open")
	for _, p := range w.pools {
		p.teardown()
		p.sparse = nil
		p.dense = nil
		p.data = nil
		p.n = 0
		p.capacity = 0
	}
	w.table = nil
	w.availSlot = NullSlot
	w.aliveCount = 0
}

// CollectGarbage commits pending deferred frees, then shrinks the backing
// storage of each pool holding more than 8 entities whose capacity exceeds
// twice its live count, down to that count rounded up to a multiple of 8;
// other pools are left as they are. It panics if called while a view is
// open — shrinking storage mid-iteration is exactly the hazard the deferred-free discipline exists
// to avoid, so it is refused outright rather than routed through it.
func (w *World) CollectGarbage() {
	assert.That(w.iterationDepth == 0, "ecs: CollectGarbage called while a view is open")
	w.deferred.commit()
	for _, p := range w.pools {
		before := p.capacity
		p.shrinkToFit()
		if p.capacity != before {
			w.logPoolShrunk(p.id, before, p.capacity)
		}
	}
}

// findPool returns the pool for id without creating one.
func (w *World) findPool(id ComponentID) (*pool, bool) {
	for _, p := range w.pools {
		if p.id == id {
			return p, true
		}
	}
	return nil, false
}

// getOrCreatePool returns T's pool, lazily creating it on first reference.
// Appending to w.pools never invalidates an already-returned *pool — only
// the slice header moves, not the pointees — so this needs no deferred-free
// treatment even though it can reallocate w.pools itself.
func getOrCreatePool[T any](w *World) *pool {
	id := ComponentTypeOf[T]()
	if p, ok := w.findPool(id); ok {
		return p
	}
	p := newPool(w, id, componentSizes[id])
	w.pools = append(w.pools, p)
	w.logPoolCreated(id)
	return p
}

// SetCreateFunc installs the on-create hook fired whenever a T component is
// added, replacing any previously installed hook.
func SetCreateFunc[T any](w *World, f func(*World, Entity)) {
	getOrCreatePool[T](w).onCreate = f
}

// SetDestroyFunc installs the on-destroy hook fired whenever a T component
// is removed, either explicitly or as part of destroying its owning entity.
func SetDestroyFunc[T any](w *World, f func(*World, Entity)) {
	getOrCreatePool[T](w).onDestroy = f
}

// PoolLen returns the number of entities currently holding a T component,
// or 0 if T has never been referenced against this World.
func PoolLen[T any](w *World) int {
	id, ok := TryComponentTypeOf[T]()
	if !ok {
		return 0
	}
	p, ok := w.findPool(id)
	if !ok {
		return 0
	}
	return p.n
}

// HasPool reports whether a T pool has been created on this World, without
// creating one.
func HasPool[T any](w *World) bool {
	id, ok := TryComponentTypeOf[T]()
	if !ok {
		return false
	}
	_, ok = w.findPool(id)
	return ok
}
