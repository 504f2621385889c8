package ecs

import "github.com/milk9111/fpcontroller/ecs/component"

// Query returns live entities that have every kind, iterating the smallest store.
func Query(w *World, kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	var out []Entity
outer:
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first live entity carrying kind.
func First(w *World, kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, e := range w.store(kind.ID(), false).Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits entities with handle a. The entity list is snapshotted, so fn
// may add or remove components.
func ForEach[A any](w *World, a component.ComponentHandle[A], fn func(Entity, *A)) {
	for _, e := range Query(w, a) {
		va, _ := Get(w, e, a)
		fn(e, va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentHandle[A], b component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	for _, e := range Query(w, a, b) {
		va, _ := Get(w, e, a)
		vb, _ := Get(w, e, b)
		fn(e, va, vb)
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentHandle[A], b component.ComponentHandle[B], c component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range Query(w, a, b, c) {
		va, _ := Get(w, e, a)
		vb, _ := Get(w, e, b)
		vc, _ := Get(w, e, c)
		fn(e, va, vb, vc)
	}
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentHandle[A], b component.ComponentHandle[B], c component.ComponentHandle[C], d component.ComponentHandle[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range Query(w, a, b, c, d) {
		va, _ := Get(w, e, a)
		vb, _ := Get(w, e, b)
		vc, _ := Get(w, e, c)
		vd, _ := Get(w, e, d)
		fn(e, va, vb, vc, vd)
	}
}
