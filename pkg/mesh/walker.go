package mesh

// Walker is a cursor over half-edges: a small value type borrowing the
// mesh read-only, grounded on tri-mesh's traversal.rs Walker. As* moves
// mutate the receiver and also return it, so callers can chain
// (w.AsNext().AsTwin()) the way the Rust &mut Self moves do; Go has no
// aliasing-vs-mutability rule to enforce so there is no analogue of
// RefCell here, just a plain struct passed by value at call sites and by
// pointer for the chaining receiver.
type Walker struct {
	mesh    *Mesh
	current HalfEdgeHandle
}

// WalkerFromHalfEdge returns a walker positioned at h.
func (m *Mesh) WalkerFromHalfEdge(h HalfEdgeHandle) Walker {
	return Walker{mesh: m, current: h}
}

// WalkerFromVertex returns a walker positioned at v's stored outgoing
// half-edge.
func (m *Mesh) WalkerFromVertex(v VertexHandle) Walker {
	slot, ok := m.vertices.get(v)
	if !ok {
		return Walker{mesh: m}
	}
	return Walker{mesh: m, current: slot.halfedge}
}

// WalkerFromFace returns a walker positioned at f's stored half-edge.
func (m *Mesh) WalkerFromFace(f FaceHandle) Walker {
	slot, ok := m.faces.get(f)
	if !ok {
		return Walker{mesh: m}
	}
	return Walker{mesh: m, current: slot.halfedge}
}

func (w *Walker) slot() (*halfEdgeSlot, bool) {
	if w.mesh == nil {
		return nil, false
	}
	return w.mesh.halfedges.get(w.current)
}

// AsNext moves to the next half-edge around the current face.
func (w *Walker) AsNext() *Walker {
	slot, ok := w.slot()
	if !ok {
		w.current = HalfEdgeHandle{}
		return w
	}
	w.current = slot.next
	return w
}

// AsTwin moves to the opposite half-edge.
func (w *Walker) AsTwin() *Walker {
	slot, ok := w.slot()
	if !ok {
		w.current = HalfEdgeHandle{}
		return w
	}
	w.current = slot.twin
	return w
}

// AsPrevious moves to the previous half-edge around the current face,
// exploiting the triangular-loop invariant (previous == next.next).
func (w *Walker) AsPrevious() *Walker {
	return w.AsNext().AsNext()
}

// HalfEdgeID returns the walker's current position, or the nil handle if
// the walker has moved off the mesh.
func (w Walker) HalfEdgeID() HalfEdgeHandle { return w.current }

// VertexID returns the vertex the current half-edge points to.
func (w Walker) VertexID() VertexHandle {
	slot, ok := w.slot()
	if !ok {
		return VertexHandle{}
	}
	return slot.vertex
}

// FaceID returns the face on the current half-edge's left, or the nil
// handle if it is a boundary half-edge.
func (w Walker) FaceID() FaceHandle {
	slot, ok := w.slot()
	if !ok {
		return FaceHandle{}
	}
	return slot.face
}

// TwinID returns the opposite half-edge without moving the walker.
func (w Walker) TwinID() HalfEdgeHandle {
	slot, ok := w.slot()
	if !ok {
		return HalfEdgeHandle{}
	}
	return slot.twin
}

// NextID returns the next half-edge without moving the walker.
func (w Walker) NextID() HalfEdgeHandle {
	slot, ok := w.slot()
	if !ok {
		return HalfEdgeHandle{}
	}
	return slot.next
}

// PreviousID returns the previous half-edge without moving the walker, via
// a throwaway lookahead copy (mirrors tri-mesh's previous_id()).
func (w Walker) PreviousID() HalfEdgeHandle {
	tmp := w
	return tmp.AsPrevious().HalfEdgeID()
}

// FromVertexID returns the vertex the current half-edge originates from,
// i.e. its previous half-edge's destination.
func (w Walker) FromVertexID() VertexHandle {
	tmp := w
	return tmp.AsPrevious().VertexID()
}

// Valid reports whether the walker currently rests on a live half-edge.
func (w Walker) Valid() bool {
	_, ok := w.slot()
	return ok
}
