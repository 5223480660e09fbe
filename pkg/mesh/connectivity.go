package mesh

// AddVertex inserts a new, currently-isolated vertex at pos. Its outgoing
// half-edge is unset until a face incident to it is created.
func (m *Mesh) AddVertex(pos Vec3) VertexHandle {
	m.touch()
	return m.vertices.alloc(vertexSlot{position: pos})
}

// AddFace allocates three half-edges for the triangle (v0, v1, v2) in that
// winding order, links next around the new loop, and pairs each new
// half-edge with any existing half-edge running the opposite direction
// between the same two vertices (HalfEdgeBetween), exactly as
// create_face/create_face_with_existing_halfedge does in
// connectivity_info.rs. If a prospective twin already has a non-boundary
// twin of its own, pairing would give one undirected edge three incident
// half-edges (non-manifold) and AddFace fails leaving the mesh unchanged.
func (m *Mesh) AddFace(v0, v1, v2 VertexHandle) (FaceHandle, error) {
	for _, v := range [3]VertexHandle{v0, v1, v2} {
		if _, ok := m.vertices.get(v); !ok {
			return FaceHandle{}, &InvalidHandleError{Kind: "vertex", Handle: v}
		}
	}

	pairs := [3][2]VertexHandle{{v0, v1}, {v1, v2}, {v2, v0}}
	for _, p := range pairs {
		if existing, ok := m.HalfEdgeBetween(p[0], p[1]); ok {
			if slot, _ := m.halfedges.get(existing); !slot.face.IsNil() {
				return FaceHandle{}, &BuildError{Reason: "index triple would create a non-manifold edge"}
			}
		}
	}

	face, he0, he1, he2 := m.allocateFace(v0, v1, v2)

	halfedgesOf := [3]HalfEdgeHandle{he0, he1, he2}
	for i, p := range pairs {
		if twin, ok := m.HalfEdgeBetween(p[1], p[0]); ok {
			m.setTwin(halfedgesOf[i], twin)
		}
	}

	m.touch()
	return face, nil
}

// allocateFace allocates a face and its three half-edges in winding order
// (v0, v1, v2), wiring next and face-membership and filling in any of the
// three vertices' outgoing half-edge if still unset, but attempting no
// twin pairing at all — the caller wires twins explicitly. AddFace layers
// HalfEdgeBetween-based pairing on top for ordinary face construction;
// split_face and split_one_face call this directly since they already know
// exactly which existing half-edges the new ones must pair with.
func (m *Mesh) allocateFace(v0, v1, v2 VertexHandle) (FaceHandle, HalfEdgeHandle, HalfEdgeHandle, HalfEdgeHandle) {
	he0 := m.halfedges.alloc(halfEdgeSlot{vertex: v1})
	he1 := m.halfedges.alloc(halfEdgeSlot{vertex: v2})
	he2 := m.halfedges.alloc(halfEdgeSlot{vertex: v0})

	m.setNext(he0, he1)
	m.setNext(he1, he2)
	m.setNext(he2, he0)

	face := m.faces.alloc(faceSlot{halfedge: he0})
	m.setFace(he0, face)
	m.setFace(he1, face)
	m.setFace(he2, face)

	vs0, _ := m.vertices.get(v0)
	vs1, _ := m.vertices.get(v1)
	vs2, _ := m.vertices.get(v2)
	if vs0 != nil && vs0.halfedge.IsNil() {
		vs0.halfedge = he0
	}
	if vs1 != nil && vs1.halfedge.IsNil() {
		vs1.halfedge = he1
	}
	if vs2 != nil && vs2.halfedge.IsNil() {
		vs2.halfedge = he2
	}

	return face, he0, he1, he2
}

// HalfEdgeBetween returns the half-edge that starts at a and points to b,
// if one exists, via a's outgoing fan — equivalent to connecting_edge in
// operations/connectivity.rs.
func (m *Mesh) HalfEdgeBetween(a, b VertexHandle) (HalfEdgeHandle, bool) {
	av, ok := m.vertices.get(a)
	if !ok || av.halfedge.IsNil() {
		return HalfEdgeHandle{}, false
	}
	start := av.halfedge
	cur := start
	for {
		slot, ok := m.halfedges.get(cur)
		if !ok {
			return HalfEdgeHandle{}, false
		}
		if slot.vertex == b {
			return cur, true
		}
		twin, ok := m.halfedges.get(slot.twin)
		if !ok {
			break
		}
		cur = twin.next
		if cur == start || cur.IsNil() {
			return HalfEdgeHandle{}, false
		}
	}
	// The fan is open (a twin is not yet assigned, as while New is still
	// adding faces), so a's faces may form several wedges that rotation
	// cannot cross: scan the face half-edges instead.
	for i := range m.halfedges.slots {
		s := &m.halfedges.slots[i]
		h := HalfEdgeHandle{index: uint32(i + 1), gen: s.gen}
		if s.alive && !s.face.IsNil() && s.vertex == b && m.WalkerFromHalfEdge(h).FromVertexID() == a {
			return h, true
		}
	}
	return HalfEdgeHandle{}, false
}

// RemoveVertex deletes v, which must already be isolated (no incident
// half-edge). Cascading removal that isolates v as a side effect is the
// editor layer's job (RemoveFace, CollapseEdge); this is the bare
// connectivity-store primitive, equivalent to remove_vertex in
// connectivity_info.rs, which likewise only ever pops a vertex with no
// remaining half-edge reference.
func (m *Mesh) RemoveVertex(v VertexHandle) error {
	slot, ok := m.vertices.get(v)
	if !ok {
		return &InvalidHandleError{Kind: "vertex", Handle: v}
	}
	if !slot.halfedge.IsNil() {
		return &BuildError{Reason: "remove_vertex: vertex is not isolated"}
	}
	m.vertices.free_(v)
	m.touch()
	return nil
}

// removeFaceUnsafe deletes a face unconditionally, leaving its three
// half-edges alive with face set to nil rather than freeing them, so any
// neighboring face's twin pointer stays valid. finalizeBoundary then
// rebuilds the boundary next-chain and removeLonelyEdges frees any edge
// that is now faceless on both sides — the same two-step cleanup
// remove_face_unsafe's callers (remove_one_face, merge) perform in edit.rs.
func (m *Mesh) removeFaceUnsafe(f FaceHandle) {
	fs, ok := m.faces.get(f)
	if !ok {
		return
	}
	start := fs.halfedge
	cur := start
	for i := 0; i < 3; i++ {
		slot, ok := m.halfedges.get(cur)
		if !ok {
			break
		}
		next := slot.next
		slot.face = FaceHandle{}
		cur = next
		if cur == start {
			break
		}
	}
	m.faces.free_(f)
	m.removeLonelyEdges()
	m.finalizeBoundary()
	m.touch()
}

func (m *Mesh) setNext(h, next HalfEdgeHandle) {
	if slot, ok := m.halfedges.get(h); ok {
		slot.next = next
	}
}

func (m *Mesh) setTwin(a, b HalfEdgeHandle) {
	if slot, ok := m.halfedges.get(a); ok {
		slot.twin = b
	}
	if slot, ok := m.halfedges.get(b); ok {
		slot.twin = a
	}
}

func (m *Mesh) setFace(h HalfEdgeHandle, f FaceHandle) {
	if slot, ok := m.halfedges.get(h); ok {
		slot.face = f
	}
}

func (m *Mesh) setVertex(h HalfEdgeHandle, v VertexHandle) {
	if slot, ok := m.halfedges.get(h); ok {
		slot.vertex = v
	}
}

func (m *Mesh) setVertexHalfedge(v VertexHandle, h HalfEdgeHandle) {
	if slot, ok := m.vertices.get(v); ok {
		slot.halfedge = h
	}
}

func (m *Mesh) setFaceHalfedge(f FaceHandle, h HalfEdgeHandle) {
	if slot, ok := m.faces.get(f); ok {
		slot.halfedge = h
	}
}

// IsVertexOnBoundary reports whether any half-edge in v's fan (or its
// twin) has no incident face.
func (m *Mesh) IsVertexOnBoundary(v VertexHandle) bool {
	for it := m.VertexHalfEdges(v); it.Next(); {
		w := m.WalkerFromHalfEdge(it.Handle())
		if w.FaceID().IsNil() || w.AsTwin().FaceID().IsNil() {
			return true
		}
	}
	return false
}

// IsEdgeOnBoundary reports whether h or its twin lacks an incident face.
func (m *Mesh) IsEdgeOnBoundary(h HalfEdgeHandle) bool {
	w := m.WalkerFromHalfEdge(h)
	return w.FaceID().IsNil() || w.AsTwin().FaceID().IsNil()
}

// IsClosed reports whether the mesh has no boundary edges at all.
func (m *Mesh) IsClosed() bool {
	for it := m.Edges(); it.Next(); {
		if m.IsEdgeOnBoundary(it.Handle()) {
			return false
		}
	}
	return true
}
