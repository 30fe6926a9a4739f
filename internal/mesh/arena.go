package mesh

// slot wraps an element with its liveness state and generation counter.
type slot[T any] struct {
	val  T
	gen  uint32
	live bool
}

// arena is an append-only slot store. Allocation always appends; deletion
// tombstones the slot and bumps its generation so stale handles fail to
// resolve. Slots are reclaimed only by Mesh.Compact, which rebuilds the
// arena with gen raised past every generation the old arena issued.
type arena[T any] struct {
	slots []slot[T]
	count int
	gen   uint32 // generation given to fresh slots
}

// alloc appends a live slot and returns its index and generation.
func (a *arena[T]) alloc(v T) (int32, uint32) {
	a.slots = append(a.slots, slot[T]{val: v, gen: a.gen, live: true})
	a.count++
	return int32(len(a.slots) - 1), a.gen
}

// maxGen returns the highest generation the arena has issued, counting
// tombstoned slots and the base generation for fresh ones.
func (a *arena[T]) maxGen() uint32 {
	g := a.gen
	for i := range a.slots {
		if a.slots[i].gen > g {
			g = a.slots[i].gen
		}
	}
	return g
}

// get resolves (index, gen) to the element, or nil if the slot is out of
// range, dead, or from a different generation.
func (a *arena[T]) get(idx int32, gen uint32) *T {
	if idx < 0 || int(idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if !s.live || s.gen != gen {
		return nil
	}
	return &s.val
}

// kill tombstones the slot. It reports whether the handle was live.
func (a *arena[T]) kill(idx int32, gen uint32) bool {
	if a.get(idx, gen) == nil {
		return false
	}
	s := &a.slots[idx]
	s.live = false
	s.gen++
	var zero T
	s.val = zero
	a.count--
	return true
}

// each calls fn for every live slot in index order.
func (a *arena[T]) each(fn func(idx int32, gen uint32, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			fn(int32(i), s.gen, &s.val)
		}
	}
}
