package ecs

import "github.com/kelthara/ecs/internal/assert"

// maxViewComponents bounds how many component types a single View may
// filter on.
const maxViewComponents = 16

// View iterates the entities that hold every one of a fixed set of
// component types. It walks its driver pool — the smallest of the selected
// pools, chosen once at construction — from the highest dense index down to
// zero, testing each candidate against the remaining pools before yielding
// it.
//
// Opening a View bumps its World's iteration depth; closing it (reaching
// exhaustion) drops the depth back down and, once it returns to zero,
// commits the deferred-free buffer. Any pool may still grow while a View is
// open — growth just retires its old backing array into that buffer instead
// of discarding it outright, so a *T handed out before the growth stays
// valid until the View closes.
type View struct {
	world     *World
	pools     [maxViewComponents]*pool
	ids       [maxViewComponents]ComponentID
	n         int
	driverIdx int
	cursor    int
	current   Handle
	closed    bool
}

// NewViewIDs opens a View over the given component IDs. It panics if given
// zero or more than 16 IDs.
func NewViewIDs(w *World, ids ...ComponentID) *View {
	assert.That(len(ids) >= 1 && len(ids) <= maxViewComponents, "ecs: view must filter on 1-%d components, got %d", maxViewComponents, len(ids))

	v := &View{world: w, n: len(ids)}
	copy(v.ids[:], ids)

	// Depth increments unconditionally, even when a selected pool doesn't
	// exist yet: a degenerate View that yields nothing still opens and
	// closes exactly once, so Valid()'s single decrement always balances it.
	w.iterationDepth++

	missing := false
	for i, id := range ids {
		p, ok := w.findPool(id)
		if !ok {
			missing = true
			continue
		}
		v.pools[i] = p
	}
	if missing {
		v.cursor = -1
		v.current = NullHandle
		return v
	}

	v.driverIdx = 0
	for i := 1; i < v.n; i++ {
		if v.pools[i].n < v.pools[v.driverIdx].n {
			v.driverIdx = i
		}
	}
	v.cursor = v.pools[v.driverIdx].n - 1
	v.advance()
	return v
}

// containsAll reports whether h is present in every selected pool other
// than the driver.
func (v *View) containsAll(h Handle) bool {
	for i := 0; i < v.n; i++ {
		if i == v.driverIdx {
			continue
		}
		if !v.pools[i].has(h) {
			return false
		}
	}
	return true
}

// advance walks the cursor down through the driver pool's dense array until
// it lands on a candidate present in every other selected pool, or runs off
// the front.
func (v *View) advance() {
	driver := v.pools[v.driverIdx]
	for v.cursor >= 0 {
		h := driver.dense[v.cursor]
		if v.containsAll(h) {
			v.current = h
			return
		}
		v.cursor--
	}
	v.current = NullHandle
}

// Valid reports whether the View currently sits on an entity. On the
// transition to exhausted it decrements its World's iteration depth exactly
// once and, if that brings the depth to zero, commits the deferred-free
// buffer — callers must not call Valid again afterward expecting further
// decrements.
func (v *View) Valid() bool {
	if v.cursor < 0 && v.current == NullHandle {
		if !v.closed {
			v.closed = true
			v.world.iterationDepth--
			if v.world.iterationDepth == 0 {
				v.world.deferred.commit()
			}
		}
		return false
	}
	return true
}

// Next advances the View to the next matching entity.
func (v *View) Next() {
	v.cursor--
	v.advance()
}

// GetEntity returns the entity the View currently sits on. Callers must
// check Valid first.
func (v *View) GetEntity() Entity {
	return Entity{handle: v.current, world: v.world}
}

// ViewGet returns a pointer to the current entity's T payload. It panics if
// T was not one of the component types the View was opened with.
func ViewGet[T any](v *View) *T {
	id, ok := TryComponentTypeOf[T]()
	assert.That(ok, "ecs: component type never referenced")
	for i := 0; i < v.n; i++ {
		if v.ids[i] == id {
			return (*T)(v.pools[i].get(v.current))
		}
	}
	assert.That(false, "ecs: view was not opened with component %s", componentTypeName(id))
	return nil
}

// NewView1 opens a View filtering on a single component type.
func NewView1[T1 any](w *World) *View {
	return NewViewIDs(w, ComponentTypeOf[T1]())
}

// NewView2 opens a View filtering on two component types.
func NewView2[T1, T2 any](w *World) *View {
	return NewViewIDs(w, ComponentTypeOf[T1](), ComponentTypeOf[T2]())
}

// NewView3 opens a View filtering on three component types.
func NewView3[T1, T2, T3 any](w *World) *View {
	return NewViewIDs(w, ComponentTypeOf[T1](), ComponentTypeOf[T2](), ComponentTypeOf[T3]())
}

// NewView4 opens a View filtering on four component types.
func NewView4[T1, T2, T3, T4 any](w *World) *View {
	return NewViewIDs(w, ComponentTypeOf[T1](), ComponentTypeOf[T2](), ComponentTypeOf[T3](), ComponentTypeOf[T4]())
}
