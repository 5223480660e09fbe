package mesh

// Global iterators expose pull-style iteration over live arena slots, in
// the style of gogpu's path.EdgeIter (Next() returning a zero value / ok
// bool to signal exhaustion) rather than a materialized slice, so callers
// don't pay for a full-mesh allocation just to walk it once.

type VertexIter struct {
	m   *Mesh
	idx uint32
	cur VertexHandle
}

func (m *Mesh) Vertices() *VertexIter { return &VertexIter{m: m} }

func (it *VertexIter) Next() bool {
	for {
		it.idx++
		if int(it.idx) > len(it.m.vertices.slots) {
			return false
		}
		slot := &it.m.vertices.slots[it.idx-1]
		if slot.alive {
			it.cur = VertexHandle{index: it.idx, gen: slot.gen}
			return true
		}
	}
}

func (it *VertexIter) Handle() VertexHandle { return it.cur }

type HalfEdgeIter struct {
	m   *Mesh
	idx uint32
	cur HalfEdgeHandle
}

func (m *Mesh) HalfEdges() *HalfEdgeIter { return &HalfEdgeIter{m: m} }

func (it *HalfEdgeIter) Next() bool {
	for {
		it.idx++
		if int(it.idx) > len(it.m.halfedges.slots) {
			return false
		}
		slot := &it.m.halfedges.slots[it.idx-1]
		if slot.alive {
			it.cur = HalfEdgeHandle{index: it.idx, gen: slot.gen}
			return true
		}
	}
}

func (it *HalfEdgeIter) Handle() HalfEdgeHandle { return it.cur }

type FaceIter struct {
	m   *Mesh
	idx uint32
	cur FaceHandle
}

func (m *Mesh) Faces() *FaceIter { return &FaceIter{m: m} }

func (it *FaceIter) Next() bool {
	for {
		it.idx++
		if int(it.idx) > len(it.m.faces.slots) {
			return false
		}
		slot := &it.m.faces.slots[it.idx-1]
		if slot.alive {
			it.cur = FaceHandle{index: it.idx, gen: slot.gen}
			return true
		}
	}
}

func (it *FaceIter) Handle() FaceHandle { return it.cur }

// EdgeIter walks the canonical side of every undirected edge: the raw
// half-edge iterator, skipping any half-edge whose twin handle sorts
// before its own (so only one of {h, h.twin} ever surfaces), matching
// iterators.rs's EdgeIter.
type EdgeIter struct {
	inner *HalfEdgeIter
}

func (m *Mesh) Edges() *EdgeIter { return &EdgeIter{inner: m.HalfEdges()} }

func less(a, b HalfEdgeHandle) bool {
	if a.index != b.index {
		return a.index < b.index
	}
	return a.gen < b.gen
}

func (it *EdgeIter) Next() bool {
	for it.inner.Next() {
		h := it.inner.Handle()
		slot, ok := it.inner.m.halfedges.get(h)
		if !ok {
			continue
		}
		if slot.twin.IsNil() || less(h, slot.twin) {
			return true
		}
	}
	return false
}

func (it *EdgeIter) Handle() HalfEdgeHandle { return it.inner.Handle() }

// FaceHalfEdgeIter walks the 3 half-edges bounding a face.
type FaceHalfEdgeIter struct {
	w     Walker
	start HalfEdgeHandle
	done  bool
	first bool
}

func (m *Mesh) FaceHalfEdges(f FaceHandle) *FaceHalfEdgeIter {
	w := m.WalkerFromFace(f)
	return &FaceHalfEdgeIter{w: w, start: w.HalfEdgeID(), first: true}
}

func (it *FaceHalfEdgeIter) Next() bool {
	if it.done || it.start.IsNil() {
		return false
	}
	if it.first {
		it.first = false
		return true
	}
	it.w.AsNext()
	if it.w.HalfEdgeID() == it.start {
		it.done = true
		return false
	}
	return true
}

func (it *FaceHalfEdgeIter) Handle() HalfEdgeHandle { return it.w.HalfEdgeID() }

// VertexHalfEdgeIter walks the outgoing half-edges in v's one-ring by
// repeated twin.next stepping (the standard half-edge vertex circulator),
// the same rotation HalfEdgeBetween uses. Because boundary half-edges are
// persistent, always-twinned entries with a valid next pointer, this single
// direction visits the whole fan — faces and any boundary gap alike — and
// terminates by cycling back to the start, with no separate boundary branch
// needed, unlike iterators.rs's VertexHalfedgeIter which has to special-case
// the open end since the original leaves boundary next pointers unset.
type VertexHalfEdgeIter struct {
	m       *Mesh
	start   HalfEdgeHandle
	current HalfEdgeHandle
	first   bool
	done    bool
}

func (m *Mesh) VertexHalfEdges(v VertexHandle) *VertexHalfEdgeIter {
	slot, ok := m.vertices.get(v)
	if !ok || slot.halfedge.IsNil() {
		return &VertexHalfEdgeIter{done: true}
	}
	return &VertexHalfEdgeIter{m: m, start: slot.halfedge, current: slot.halfedge, first: true}
}

func (it *VertexHalfEdgeIter) Next() bool {
	if it.done {
		return false
	}
	if it.first {
		it.first = false
		return true
	}
	slot, ok := it.m.halfedges.get(it.current)
	if !ok {
		it.done = true
		return false
	}
	twinSlot, ok := it.m.halfedges.get(slot.twin)
	if !ok {
		it.done = true
		return false
	}
	it.current = twinSlot.next
	if it.current.IsNil() || it.current == it.start {
		it.done = true
		return false
	}
	return true
}

func (it *VertexHalfEdgeIter) Handle() HalfEdgeHandle { return it.current }

// FaceVertices returns the three vertex handles of f in winding order.
func (m *Mesh) FaceVertices(f FaceHandle) (VertexHandle, VertexHandle, VertexHandle, bool) {
	it := m.FaceHalfEdges(f)
	var vs [3]VertexHandle
	i := 0
	for it.Next() {
		if i >= 3 {
			break
		}
		w := m.WalkerFromHalfEdge(it.Handle())
		vs[i] = w.VertexID()
		i++
	}
	if i != 3 {
		return VertexHandle{}, VertexHandle{}, VertexHandle{}, false
	}
	return vs[0], vs[1], vs[2], true
}

// EdgeVertices returns the two endpoints of the undirected edge
// represented by half-edge h: (from, to).
func (m *Mesh) EdgeVertices(h HalfEdgeHandle) (VertexHandle, VertexHandle) {
	w := m.WalkerFromHalfEdge(h)
	to := w.VertexID()
	from := w.AsTwin().VertexID()
	return from, to
}
