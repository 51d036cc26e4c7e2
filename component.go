package ecs

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/kelthara/ecs/internal/assert"
)

// ComponentID is a globally unique, process-lifetime-stable identifier for a
// component type. IDs are dense small integers assigned in first-use order;
// the mapping is rebuilt on every process start and is not meant to be
// stable across runs.
type ComponentID uint32

// maxComponentTypes bounds how many distinct component types a process may
// reference. It exists to keep the registry sane, not because sparse-set
// pools need a bitmask width the way archetype masks would.
const maxComponentTypes = 1 << 20

var (
	nextComponentID ComponentID
	typeToID        = make(map[reflect.Type]ComponentID, 64)
	idToType        = make(map[ComponentID]reflect.Type, 64)
	componentSizes  = make(map[ComponentID]uintptr, 64)
)

// ResetGlobalRegistry resets the global component registry. Production code
// has no reason to call this — component identity is stable for the life of
// the process — but tests that construct many independent Worlds in sequence
// use it to start each case with a clean type-ID space.
func ResetGlobalRegistry() {
	nextComponentID = 0
	typeToID = make(map[reflect.Type]ComponentID, 64)
	idToType = make(map[ComponentID]reflect.Type, 64)
	componentSizes = make(map[ComponentID]uintptr, 64)
}

// typeID resolves T's ComponentID, assigning one on first reference.
func typeID[T any]() ComponentID {
	var zero T
	t := reflect.TypeOf(zero)
	if id, ok := typeToID[t]; ok {
		return id
	}
	assert.That(int(nextComponentID) < maxComponentTypes, "ecs: too many component types (max %d)", maxComponentTypes)
	id := nextComponentID
	typeToID[t] = id
	idToType[id] = t
	componentSizes[id] = unsafe.Sizeof(zero)
	nextComponentID++
	return id
}

// RegisterComponent assigns (or returns the existing) ComponentID for T. It
// is never required — every operation that needs a component's ID resolves
// it lazily on first reference — but callers that want to pin down ID
// assignment order up front (for reproducible diagnostics, say) can call it
// explicitly.
func RegisterComponent[T any]() ComponentID {
	return typeID[T]()
}

// ComponentTypeOf returns T's ComponentID, registering it if this is the
// first reference.
func ComponentTypeOf[T any]() ComponentID {
	return typeID[T]()
}

// TryComponentTypeOf returns T's ComponentID without registering it, and
// whether T has been referenced yet.
func TryComponentTypeOf[T any]() (ComponentID, bool) {
	var zero T
	id, ok := typeToID[reflect.TypeOf(zero)]
	return id, ok
}

func componentTypeName(id ComponentID) string {
	if t, ok := idToType[id]; ok {
		return t.String()
	}
	return fmt.Sprintf("component#%d", id)
}
