package ecs

import "testing"

type tag struct{}
type transform struct{ X, Y float64 }
type tagName struct{ Name string }

func TestComponentTypeOfIsStableAndLazy(t *testing.T) {
	ResetGlobalRegistry()
	if _, ok := TryComponentTypeOf[tag](); ok {
		t.Fatalf("tag should be unregistered before first reference")
	}
	id1 := ComponentTypeOf[tag]()
	id2 := ComponentTypeOf[tag]()
	if id1 != id2 {
		t.Errorf("ComponentTypeOf[tag]() not stable: %d != %d", id1, id2)
	}
	if _, ok := TryComponentTypeOf[tag](); !ok {
		t.Errorf("tag should be registered after first reference")
	}
}

func TestComponentTypeOfDistinctPerType(t *testing.T) {
	ResetGlobalRegistry()
	tagID := ComponentTypeOf[tag]()
	transformID := ComponentTypeOf[transform]()
	if tagID == transformID {
		t.Errorf("distinct types got the same ComponentID: %d", tagID)
	}
}

func TestResetGlobalRegistryClearsAssignments(t *testing.T) {
	ResetGlobalRegistry()
	first := ComponentTypeOf[tag]()
	ResetGlobalRegistry()
	second := ComponentTypeOf[tag]()
	if first != 0 || second != 0 {
		t.Errorf("expected both registrations to start at ID 0, got %d and %d", first, second)
	}
}
