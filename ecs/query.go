package ecs

import "github.com/milk9111/starfolio/ecs/component"

// ForEach visits every live entity that has kind a.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(a.ID(), false)
	if sa == nil {
		return
	}
	ids := append([]int(nil), sa.Entities()...)
	for _, id := range ids {
		e, ok := w.entities.current(entityID(id))
		if !ok {
			continue
		}
		va, ok := sa.Get(id).(*A)
		if !ok {
			continue
		}
		fn(e, va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sb := w.store(b.ID(), false)
	if sb == nil {
		return
	}
	ForEach(w, a, func(e Entity, va *A) {
		vb, ok := sb.Get(int(e.id())).(*B)
		if !ok {
			return
		}
		fn(e, va, vb)
	})
}

func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	sc := w.store(c.ID(), false)
	if sc == nil {
		return
	}
	ForEach2(w, a, b, func(e Entity, va *A, vb *B) {
		vc, ok := sc.Get(int(e.id())).(*C)
		if !ok {
			return
		}
		fn(e, va, vb, vc)
	})
}
