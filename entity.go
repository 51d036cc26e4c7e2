package ecs

import (
	"fmt"

	"github.com/kelthara/ecs/internal/assert"
)

// Entity is a façade pairing an entity Handle with a non-owning reference to
// the World that owns it. Destroy, ID, Version and the component functions
// delegate to that World and assert the entity is still valid first (Valid,
// Handle, World, Equal and String do not) — an Entity value stays a legitimate
// argument to hold onto (in a slice, say) after the underlying slot has been
// recycled, but calling anything on it once stale panics rather than
// silently operating on someone else's entity.
type Entity struct {
	handle Handle
	world  *World
}

// NullEntity returns the sentinel "no entity" façade.
func NullEntity() Entity {
	return Entity{handle: NullHandle, world: nil}
}

// Valid reports whether the entity is still live: its World is set, its slot
// is in bounds, and the table still holds exactly this handle at that slot.
func (e Entity) Valid() bool {
	return e.world != nil && e.world.IsValid(e.handle)
}

// Handle returns the underlying 64-bit identity.
func (e Entity) Handle() Handle {
	return e.handle
}

// ID returns the entity's slot index.
func (e Entity) ID() uint32 {
	assert.That(e.Valid(), "ecs: ID() on invalid entity")
	return slotOf(e.handle)
}

// Version returns the entity's generation counter.
func (e Entity) Version() uint32 {
	assert.That(e.Valid(), "ecs: Version() on invalid entity")
	return versionOf(e.handle)
}

// World returns the World this entity belongs to.
func (e Entity) World() *World {
	return e.world
}

// Equal compares both the handle and the owning World, so entities from two
// different Worlds never compare equal even if their handles happen to
// match.
func (e Entity) Equal(o Entity) bool {
	return e.handle == o.handle && e.world == o.world
}

// Destroy removes every component from the entity and recycles its slot
// with a bumped version, invalidating this and every other outstanding
// handle to the same entity.
func (e Entity) Destroy() {
	assert.That(e.Valid(), "ecs: Destroy on invalid entity")
	e.world.destroy(e.handle)
}

// String renders the entity as "Entity(id=.., ver=..)" for logs and test
// failure messages.
func (e Entity) String() string {
	return fmt.Sprintf("Entity(id=%d, ver=%d)", slotOf(e.handle), versionOf(e.handle))
}

// HasComponent reports whether e currently has a component of type T.
func HasComponent[T any](e Entity) bool {
	assert.That(e.Valid(), "ecs: HasComponent on invalid entity")
	id, ok := TryComponentTypeOf[T]()
	if !ok {
		return false
	}
	p, ok := e.world.findPool(id)
	return ok && p.has(e.handle)
}

// AddComponent attaches a component of type T holding v to e and returns a
// pointer to the stored payload. It panics if e already has a T (no implicit
// replace — use SetComponent for that).
func AddComponent[T any](e Entity, v T) *T {
	assert.That(e.Valid(), "ecs: AddComponent on invalid entity")
	p := getOrCreatePool[T](e.world)
	assert.That(!p.has(e.handle), "ecs: entity already has component %s", componentTypeName(p.id))
	ptr := (*T)(p.add(e.handle))
	*ptr = v
	if p.onCreate != nil {
		p.onCreate(e.world, e)
	}
	return ptr
}

// SetComponent writes v into e's existing T component, or adds one if it
// doesn't have one yet.
func SetComponent[T any](e Entity, v T) *T {
	if HasComponent[T](e) {
		ptr := GetComponent[T](e)
		*ptr = v
		return ptr
	}
	return AddComponent[T](e, v)
}

// GetComponent returns a pointer to e's T payload. It panics if e lacks the
// component.
func GetComponent[T any](e Entity) *T {
	assert.That(e.Valid(), "ecs: GetComponent on invalid entity")
	id, ok := TryComponentTypeOf[T]()
	assert.That(ok, "ecs: component type never referenced")
	p, ok := e.world.findPool(id)
	assert.That(ok && p.has(e.handle), "ecs: entity missing component %s", componentTypeName(id))
	return (*T)(p.get(e.handle))
}

// RemoveComponent detaches e's T component, firing its on_destroy hook if
// one is registered. It panics if e lacks the component.
func RemoveComponent[T any](e Entity) {
	assert.That(e.Valid(), "ecs: RemoveComponent on invalid entity")
	id, ok := TryComponentTypeOf[T]()
	assert.That(ok, "ecs: component type never referenced")
	p, ok := e.world.findPool(id)
	assert.That(ok && p.has(e.handle), "ecs: entity missing component %s", componentTypeName(id))
	p.remove(e.handle)
}
