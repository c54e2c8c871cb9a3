package ecs

import (
	"fmt"

	"github.com/milk9111/starfolio/ecs/component"
)

// Add attaches (or replaces) the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("%w: add %s to %s", component.ErrEntityNotAlive, kind, e)
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, kind)
	}
	w.store(kind.ID(), true).Set(int(e.id()), value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(int(e.id()))
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Has(int(e.id()))
}

// Get returns the stored pointer so callers can mutate in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	value := w.store(kind.ID(), false).Get(int(e.id()))
	if value == nil {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// First returns any live entity carrying the component kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, id := range w.store(kind.ID(), false).Entities() {
		if e, ok := w.entities.current(entityID(id)); ok {
			return e, true
		}
	}
	return 0, false
}
