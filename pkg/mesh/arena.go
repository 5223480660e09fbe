package mesh

// vertexSlot, halfEdgeSlot and faceSlot are the arena-resident payloads.
// alive tracks whether the slot currently holds a live entity; free-listed
// slots keep their last generation so the next AddX bumps it again.

type vertexSlot struct {
	alive    bool
	gen      uint32
	position Vec3
	halfedge HalfEdgeHandle
}

type halfEdgeSlot struct {
	alive  bool
	gen    uint32
	vertex VertexHandle
	twin   HalfEdgeHandle
	next   HalfEdgeHandle
	face   FaceHandle
}

type faceSlot struct {
	alive    bool
	gen      uint32
	halfedge HalfEdgeHandle
}

// vertexArena, halfEdgeArena and faceArena are generation-tagged free-list
// arenas, grounded on tri-mesh's connectivity_info.rs IDMap<K,V> (values
// Vec<V> + free Vec<K>) with a generation counter added per slot — the
// staleness-detection enrichment spec.md's Data Model section requires and
// IDMap does not provide.

type vertexArena struct {
	slots []vertexSlot
	free  []uint32
}

func (a *vertexArena) alloc(v vertexSlot) VertexHandle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		slot := &a.slots[idx-1]
		slot.alive = true
		slot.gen++
		slot.position = v.position
		slot.halfedge = v.halfedge
		return VertexHandle{index: idx, gen: slot.gen}
	}
	v.alive = true
	v.gen = 1
	a.slots = append(a.slots, v)
	return VertexHandle{index: uint32(len(a.slots)), gen: v.gen}
}

func (a *vertexArena) get(h VertexHandle) (*vertexSlot, bool) {
	if h.index == 0 || int(h.index) > len(a.slots) {
		return nil, false
	}
	slot := &a.slots[h.index-1]
	if !slot.alive || slot.gen != h.gen {
		return nil, false
	}
	return slot, true
}

func (a *vertexArena) free_(h VertexHandle) {
	slot, ok := a.get(h)
	if !ok {
		return
	}
	slot.alive = false
	a.free = append(a.free, h.index)
}

func (a *vertexArena) count() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].alive {
			n++
		}
	}
	return n
}

type halfEdgeArena struct {
	slots []halfEdgeSlot
	free  []uint32
}

func (a *halfEdgeArena) alloc(h halfEdgeSlot) HalfEdgeHandle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		slot := &a.slots[idx-1]
		slot.alive = true
		slot.gen++
		slot.vertex = h.vertex
		slot.twin = h.twin
		slot.next = h.next
		slot.face = h.face
		return HalfEdgeHandle{index: idx, gen: slot.gen}
	}
	h.alive = true
	h.gen = 1
	a.slots = append(a.slots, h)
	return HalfEdgeHandle{index: uint32(len(a.slots)), gen: h.gen}
}

func (a *halfEdgeArena) get(h HalfEdgeHandle) (*halfEdgeSlot, bool) {
	if h.index == 0 || int(h.index) > len(a.slots) {
		return nil, false
	}
	slot := &a.slots[h.index-1]
	if !slot.alive || slot.gen != h.gen {
		return nil, false
	}
	return slot, true
}

func (a *halfEdgeArena) free_(h HalfEdgeHandle) {
	slot, ok := a.get(h)
	if !ok {
		return
	}
	slot.alive = false
	a.free = append(a.free, h.index)
}

func (a *halfEdgeArena) count() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].alive {
			n++
		}
	}
	return n
}

type faceArena struct {
	slots []faceSlot
	free  []uint32
}

func (a *faceArena) alloc(f faceSlot) FaceHandle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		slot := &a.slots[idx-1]
		slot.alive = true
		slot.gen++
		slot.halfedge = f.halfedge
		return FaceHandle{index: idx, gen: slot.gen}
	}
	f.alive = true
	f.gen = 1
	a.slots = append(a.slots, f)
	return FaceHandle{index: uint32(len(a.slots)), gen: f.gen}
}

func (a *faceArena) get(h FaceHandle) (*faceSlot, bool) {
	if h.index == 0 || int(h.index) > len(a.slots) {
		return nil, false
	}
	slot := &a.slots[h.index-1]
	if !slot.alive || slot.gen != h.gen {
		return nil, false
	}
	return slot, true
}

func (a *faceArena) free_(h FaceHandle) {
	slot, ok := a.get(h)
	if !ok {
		return
	}
	slot.alive = false
	a.free = append(a.free, h.index)
}

func (a *faceArena) count() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].alive {
			n++
		}
	}
	return n
}
