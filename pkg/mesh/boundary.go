package mesh

// Boundary half-edges are first-class, persistent arena entries: alive,
// with face left nil, but always carrying a real twin and a next pointer
// that continues the boundary loop. validity.rs treats a missing twin as an
// error on any alive half-edge ("does not point to a twin halfedge"), and
// merge.rs's create_boundary_edges allocates exactly this kind of phantom
// half-edge for any unpaired real edge — though it leaves next unset.
// finalizeBoundary goes one step further and chains next too, since a
// freshly built open mesh must expose a walkable boundary loop.

// finalizeBoundary gives every twin-less real half-edge a boundary phantom
// twin, then rechains every boundary half-edge's next pointer so each
// boundary loop is walkable. Called once after New()'s face-construction
// loop and again by every structural editor once its own rewiring is done.
func (m *Mesh) finalizeBoundary() {
	n := len(m.halfedges.slots)
	for i := 0; i < n; i++ {
		slot := &m.halfedges.slots[i]
		if !slot.alive || slot.face.IsNil() {
			continue
		}
		if _, ok := m.halfedges.get(slot.twin); ok {
			continue
		}
		h := HalfEdgeHandle{index: uint32(i + 1), gen: slot.gen}
		origin := m.realEdgeOrigin(h)
		phantom := m.halfedges.alloc(halfEdgeSlot{vertex: origin, twin: h})
		if s, ok := m.halfedges.get(h); ok {
			s.twin = phantom
		}
	}

	origins := make(map[VertexHandle]HalfEdgeHandle)
	for i := range m.halfedges.slots {
		slot := &m.halfedges.slots[i]
		if !slot.alive || !slot.face.IsNil() {
			continue
		}
		h := HalfEdgeHandle{index: uint32(i + 1), gen: slot.gen}
		origins[m.boundaryOrigin(slot)] = h
	}
	for i := range m.halfedges.slots {
		slot := &m.halfedges.slots[i]
		if !slot.alive || !slot.face.IsNil() {
			continue
		}
		slot.next = origins[slot.vertex]
	}
}

// realEdgeOrigin returns the origin vertex of a real (face-bearing)
// half-edge by exploiting the triangular loop invariant, before its twin
// has been assigned — AsPrevious is only valid while h still sits in a
// 3-cycle, i.e. before it has been demoted to a boundary edge.
func (m *Mesh) realEdgeOrigin(h HalfEdgeHandle) VertexHandle {
	w := m.WalkerFromHalfEdge(h)
	return w.AsPrevious().VertexID()
}

// boundaryOrigin returns the origin vertex of a boundary half-edge: its
// twin's destination, since the twin is the real edge running the opposite
// direction along the same undirected edge.
func (m *Mesh) boundaryOrigin(slot *halfEdgeSlot) VertexHandle {
	twinSlot, ok := m.halfedges.get(slot.twin)
	if !ok {
		return VertexHandle{}
	}
	return twinSlot.vertex
}

// removeLonelyEdges frees any half-edge pair that is now faceless on both
// sides — an undirected edge no face references any more — mirroring
// remove_edge_if_lonely in edit.rs. Any vertex whose stored outgoing
// half-edge was part of a freed pair is repointed to a surviving edge, or
// left isolated if none remains.
func (m *Mesh) removeLonelyEdges() {
	for i := 0; i < len(m.halfedges.slots); i++ {
		slot := &m.halfedges.slots[i]
		if !slot.alive || !slot.face.IsNil() {
			continue
		}
		h := HalfEdgeHandle{index: uint32(i + 1), gen: slot.gen}
		twin := slot.twin
		twinSlot, ok := m.halfedges.get(twin)
		if !ok || !twinSlot.face.IsNil() {
			continue
		}
		dest := slot.vertex
		origin := twinSlot.vertex
		m.halfedges.free_(h)
		m.halfedges.free_(twin)
		m.repointVertexHalfedge(dest, h, twin)
		m.repointVertexHalfedge(origin, h, twin)
	}
}

// repointVertexHalfedge updates v's stored outgoing half-edge if it was one
// of the just-freed pair, scanning for a surviving half-edge that
// originates at v. If none remains, v is fully isolated and is freed too,
// mirroring remove_vertex_if_lonely in edit.rs.
func (m *Mesh) repointVertexHalfedge(v VertexHandle, freed ...HalfEdgeHandle) {
	vs, ok := m.vertices.get(v)
	if !ok {
		return
	}
	stale := false
	for _, f := range freed {
		if vs.halfedge == f {
			stale = true
		}
	}
	if !stale {
		return
	}
	vs.halfedge = HalfEdgeHandle{}
	for i := range m.halfedges.slots {
		s := &m.halfedges.slots[i]
		if !s.alive {
			continue
		}
		twinSlot, ok := m.halfedges.get(s.twin)
		if !ok || twinSlot.vertex != v {
			continue
		}
		vs.halfedge = HalfEdgeHandle{index: uint32(i + 1), gen: s.gen}
		break
	}
	if vs.halfedge.IsNil() {
		m.vertices.free_(v)
	}
}
