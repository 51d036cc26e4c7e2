package ecs

import "testing"

func TestNewEntityFreshVersionZero(t *testing.T) {
	w := setupWorld(t)
	e := w.NewEntity()
	if e.Version() != 0 {
		t.Errorf("fresh entity version = %d, want 0", e.Version())
	}
	if w.Count() != 1 {
		t.Errorf("Count() = %d, want 1", w.Count())
	}
}

func TestDestroyRecyclesSlotWithBumpedVersion(t *testing.T) {
	w := setupWorld(t)
	a := w.NewEntity()
	b := w.NewEntity()
	c := w.NewEntity()
	d := w.NewEntity()
	_, _ = a, b

	cSlot := slotOf(c.Handle())
	c.Destroy()
	e := w.NewEntity()

	if e.ID() != cSlot {
		t.Fatalf("expected slot reuse: new entity slot = %d, want %d", e.ID(), cSlot)
	}
	if e.Version() != 1 {
		t.Errorf("recycled entity version = %d, want 1", e.Version())
	}
	if c.Valid() {
		t.Errorf("destroyed entity should be invalid")
	}
	if !d.Valid() {
		t.Errorf("untouched entity should remain valid")
	}
}

func TestDestroyIsLIFO(t *testing.T) {
	w := setupWorld(t)
	a := w.NewEntity()
	b := w.NewEntity()
	c := w.NewEntity()

	aSlot, bSlot, cSlot := slotOf(a.Handle()), slotOf(b.Handle()), slotOf(c.Handle())
	a.Destroy()
	b.Destroy()
	c.Destroy()

	// free list is LIFO: c's slot comes back first, then b's, then a's.
	e1 := w.NewEntity()
	e2 := w.NewEntity()
	e3 := w.NewEntity()

	if e1.ID() != cSlot {
		t.Errorf("first recycled slot = %d, want c's slot %d", e1.ID(), cSlot)
	}
	if e2.ID() != bSlot {
		t.Errorf("second recycled slot = %d, want b's slot %d", e2.ID(), bSlot)
	}
	if e3.ID() != aSlot {
		t.Errorf("third recycled slot = %d, want a's slot %d", e3.ID(), aSlot)
	}
}

func TestDestroyRemovesComponents(t *testing.T) {
	w := setupWorld(t)
	e := w.NewEntity()
	AddComponent(e, transform{X: 1})
	e.Destroy()

	fresh := w.NewEntity()
	if HasComponent[transform](fresh) {
		t.Errorf("recycled entity should not inherit the destroyed one's components")
	}
}

func TestAtReturnsTableEntryRegardlessOfLiveness(t *testing.T) {
	w := setupWorld(t)
	e := w.NewEntity()

	if got := w.At(e.ID()); got.Handle() != e.Handle() {
		t.Errorf("At(%d) = %v, want %v", e.ID(), got.Handle(), e.Handle())
	}

	slot := e.ID()
	e.Destroy()

	// the slot is now a free-list node, not a live entity: At still returns
	// whatever is stored there, but the result must not report itself Valid.
	stale := w.At(slot)
	if stale.Valid() {
		t.Errorf("At() on a freed slot should not be Valid, got %v", stale)
	}
}

func TestResetEntitiesPanicsDuringIteration(t *testing.T) {
	w := setupWorld(t)
	e := w.NewEntity()
	AddComponent(e, transform{})
	v := NewView1[transform](w)
	_ = v.Valid()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected ResetEntities to panic while a view is open")
		}
	}()
	w.ResetEntities()
}

func TestResetEntitiesClearsWorldButKeepsPools(t *testing.T) {
	w := setupWorld(t)
	e := w.NewEntity()
	AddComponent(e, transform{X: 1})

	w.ResetEntities()
	if w.Count() != 0 {
		t.Errorf("Count() after ResetEntities = %d, want 0", w.Count())
	}
	if !HasPool[transform](w) {
		t.Errorf("ResetEntities should leave pools registered, just empty")
	}
	if got := PoolLen[transform](w); got != 0 {
		t.Errorf("PoolLen after ResetEntities = %d, want 0", got)
	}
}

func TestCollectGarbageShrinksPools(t *testing.T) {
	w := setupWorld(t)
	entities := make([]Entity, 1000)
	for i := range entities {
		e := w.NewEntity()
		entities[i] = e
		AddComponent(e, transform{X: float64(i)})
	}
	for _, e := range entities[10:] {
		e.Destroy()
	}
	w.CollectGarbage()
	if got := PoolLen[transform](w); got != 10 {
		t.Fatalf("PoolLen after GC = %d, want 10", got)
	}
	p, ok := w.findPool(ComponentTypeOf[transform]())
	if !ok {
		t.Fatalf("pool missing after GC")
	}
	if p.capacity > 16 {
		t.Errorf("pool capacity after GC = %d, want <= 16", p.capacity)
	}
}

func TestCollectGarbagePanicsDuringIteration(t *testing.T) {
	w := setupWorld(t)
	e := w.NewEntity()
	AddComponent(e, transform{})
	v := NewView1[transform](w)
	_ = v.Valid()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected CollectGarbage to panic while a view is open")
		}
	}()
	w.CollectGarbage()
}
