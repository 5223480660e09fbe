package mesh

// Local topological editors. Each leaves the mesh in a fully-finalized
// state (boundary phantoms rebuilt, lonely edges swept) before returning,
// grounded throughout on edit.rs's flip_edge / split_edge / split_face /
// collapse_edge / remove_face and their private helpers.

// FlipEdge rotates h's undirected edge ninety degrees within the
// quadrilateral formed by its two incident faces, swapping the diagonal.
// Fails on a boundary edge (either side has no face) or if the new
// diagonal would duplicate an edge already connecting the quad's opposite
// corners. Equivalent to flip_edge in edit.rs.
func (m *Mesh) FlipEdge(h HalfEdgeHandle) error {
	w := m.WalkerFromHalfEdge(h)
	face := w.FaceID()
	if face.IsNil() {
		return &BoundaryOperationNotPermittedError{Edge: h, Op: "flip_edge"}
	}
	v0 := w.VertexID() // h's destination
	w.AsNext()
	v3 := w.VertexID() // third vertex of h's face
	nextID := w.HalfEdgeID()
	w.AsNext()
	previousID := w.HalfEdgeID()

	twin := m.WalkerFromHalfEdge(h).TwinID()
	wt := m.WalkerFromHalfEdge(twin)
	twinFace := wt.FaceID()
	if twinFace.IsNil() {
		return &BoundaryOperationNotPermittedError{Edge: h, Op: "flip_edge"}
	}
	v1 := wt.VertexID() // twin's destination (h's origin)
	wt.AsNext()
	v2 := wt.VertexID() // third vertex of twin's face
	twinNextID := wt.HalfEdgeID()
	wt.AsNext()
	twinPreviousID := wt.HalfEdgeID()

	if _, ok := m.HalfEdgeBetween(v2, v3); ok {
		return &EdgeAlreadyExistsError{From: v2, To: v3}
	}

	m.setFaceHalfedge(face, previousID)
	m.setFaceHalfedge(twinFace, twinPreviousID)
	m.setVertexHalfedge(v0, nextID)
	m.setVertexHalfedge(v1, twinNextID)

	// Triangle (v3, v1, v2), kept as face: previousID -> twinNextID -> h.
	m.setNext(previousID, twinNextID)
	m.setNext(twinNextID, h)
	m.setNext(h, previousID)
	// Triangle (v3, v2, v0), kept as twinFace: twin -> twinPreviousID -> nextID.
	m.setNext(twin, twinPreviousID)
	m.setNext(twinPreviousID, nextID)
	m.setNext(nextID, twin)

	m.setVertex(h, v3)
	m.setVertex(twin, v2)

	m.setFace(nextID, twinFace)
	m.setFace(twinNextID, face)

	m.touch()
	return nil
}

// SplitEdge inserts a new vertex at pos partway along h's undirected edge,
// subdividing each incident face into two new triangles. Works on both
// interior and boundary edges. Equivalent to split_edge in edit.rs.
func (m *Mesh) SplitEdge(h HalfEdgeHandle, pos Vec3) VertexHandle {
	w := m.WalkerFromHalfEdge(h)
	splitHalf := h
	if w.FaceID().IsNil() {
		w.AsTwin()
		splitHalf = w.HalfEdgeID()
	}
	w = m.WalkerFromHalfEdge(splitHalf)
	w.AsTwin()
	twinHalf := w.HalfEdgeID()
	isBoundary := w.FaceID().IsNil()

	newVertex := m.AddVertex(pos)

	if isBoundary {
		m.halfedges.free_(twinHalf)
		m.splitOneFace(splitHalf, HalfEdgeHandle{}, newVertex)
	} else {
		m.splitOneFace(splitHalf, twinHalf, newVertex)
		m.splitOneFace(twinHalf, splitHalf, newVertex)
	}

	m.finalizeBoundary()
	m.touch()
	return newVertex
}

// splitOneFace splits the face incident to h into two triangles by
// inserting newVertex partway along h: h is renamed to end at newVertex
// and keeps its face, a new face (h's old destination, the face's third
// vertex, newVertex) is allocated, and the face's other two original
// edges are re-twinned onto whichever of the two triangles now borders
// them externally. twinOfH, if not nil, becomes the twin of the new
// face's edge running from newVertex back to h's old destination — the
// far side of the same call made for the other incident face, or nil on a
// boundary split where finalizeBoundary grows a fresh phantom instead.
//
// edit.rs's split_one_face computes the analogous new internal edge (from
// the face's third vertex to newVertex) but never pairs it with its twin
// on the reused face, leaving that diagonal's twin unset; this port adds
// the missing setTwin, which split_face's own twin-pairing loop already
// does correctly for the sibling operation.
func (m *Mesh) splitOneFace(h, twinOfH HalfEdgeHandle, newVertex VertexHandle) {
	w := m.WalkerFromHalfEdge(h)
	v1 := w.VertexID()
	w.AsNext()
	v2 := w.VertexID()
	edgeToUpdate1 := w.TwinID()
	edgeToUpdate2 := w.HalfEdgeID()

	m.setVertex(h, newVertex)

	_, heBC, heCM, heMB := m.allocateFace(v1, v2, newVertex)

	if !twinOfH.IsNil() {
		m.setTwin(twinOfH, heMB)
	}
	if !edgeToUpdate1.IsNil() {
		m.setTwin(edgeToUpdate1, heBC)
	}
	m.setTwin(edgeToUpdate2, heCM)
	m.setVertexHalfedge(v1, heBC)
}

// SplitFace inserts a new vertex at pos inside f, replacing it with three
// triangles fanning out from the new vertex to each of f's original
// vertices. Equivalent to split_face in edit.rs.
func (m *Mesh) SplitFace(f FaceHandle, pos Vec3) VertexHandle {
	newVertex := m.AddVertex(pos)

	w := m.WalkerFromFace(f)
	v1 := w.VertexID()
	w.AsNext()
	heB := w.HalfEdgeID()
	twinB := w.TwinID()
	v2 := w.VertexID()
	w.AsNext()
	heC := w.HalfEdgeID()
	twinC := w.TwinID()
	v3 := w.VertexID()

	_, f1he0, f1he1, f1he2 := m.allocateFace(v1, v2, newVertex)
	_, f2he0, f2he1, f2he2 := m.allocateFace(v2, v3, newVertex)

	m.setVertex(heB, newVertex)

	m.setTwin(heB, f1he2)
	if !twinB.IsNil() {
		m.setTwin(twinB, f1he0)
	}
	m.setTwin(f1he1, f2he2)
	if !twinC.IsNil() {
		m.setTwin(twinC, f2he0)
	}
	m.setTwin(heC, f2he1)
	m.setVertexHalfedge(v2, f2he0)

	m.touch()
	return newVertex
}

// CollapseEdge merges h's two endpoints into a single vertex at their
// midpoint, removing any face(s) incident to h in the process. Does not
// itself check the link condition (see LinkConditionHolds); callers
// operating on meshes with invariants to preserve should check first.
// Equivalent to collapse_edge in edit.rs.
func (m *Mesh) CollapseEdge(h HalfEdgeHandle) VertexHandle {
	w := m.WalkerFromHalfEdge(h)
	surviving := w.VertexID()
	twin := w.TwinID()

	wt := m.WalkerFromHalfEdge(twin)
	dying := wt.VertexID()

	sp, _ := m.VertexPosition(surviving)
	dp, _ := m.VertexPosition(dying)
	m.SetVertexPosition(surviving, sp.Midpoint(dp))

	for it := m.VertexHalfEdges(dying); it.Next(); {
		incoming := m.WalkerFromHalfEdge(it.Handle())
		incoming.AsTwin()
		m.setVertex(incoming.HalfEdgeID(), surviving)
	}

	m.collapseOneSide(twin, surviving)
	m.collapseOneSide(h, surviving)

	m.vertices.free_(dying)
	m.removeLonelyEdges()
	m.finalizeBoundary()
	m.touch()
	return surviving
}

// collapseOneSide removes he's incident face as part of an edge collapse,
// repointing surviving's stored outgoing half-edge to a side edge of that
// face first, or simply frees he if it was already a boundary half-edge
// with no face to remove.
func (m *Mesh) collapseOneSide(he HalfEdgeHandle, surviving VertexHandle) {
	w := m.WalkerFromHalfEdge(he)
	if w.FaceID().IsNil() {
		m.halfedges.free_(he)
		return
	}
	previous := w
	previous.AsPrevious()
	m.setVertexHalfedge(surviving, previous.TwinID())
	m.removeOneFace(he)
}

// removeOneFace deletes the face on h's left along with h and its other
// two half-edges, directly re-twinning the two neighboring half-edges
// across the deleted triangle so its removal leaves no gap. Used only by
// CollapseEdge, where the collapsing triangle disappears entirely rather
// than leaving a boundary hole (contrast removeFaceUnsafe, which keeps a
// removed face's edges alive as boundary phantoms). Equivalent to
// remove_one_face in edit.rs.
func (m *Mesh) removeOneFace(h HalfEdgeHandle) {
	w := m.WalkerFromHalfEdge(h)
	face := w.FaceID()

	w.AsNext()
	h1 := w.HalfEdgeID()
	twin1 := w.TwinID()
	vertex := w.VertexID()

	w.AsNext()
	h2 := w.HalfEdgeID()
	twin2 := w.TwinID()

	m.faces.free_(face)
	m.halfedges.free_(h)
	m.halfedges.free_(h1)
	m.halfedges.free_(h2)
	m.setTwin(twin1, twin2)
	m.setVertexHalfedge(vertex, twin1)
}

// RemoveFace deletes f. Any of its edges still bordering a surviving
// neighbor becomes a boundary half-edge; any edge left bordering nothing
// at all is freed, along with any vertex that edge removal isolates.
// Equivalent to remove_face in edit.rs.
func (m *Mesh) RemoveFace(f FaceHandle) error {
	if _, ok := m.faces.get(f); !ok {
		return &InvalidHandleError{Kind: "face", Handle: f}
	}
	m.removeFaceUnsafe(f)
	return nil
}

// LinkConditionHolds reports whether collapsing h would preserve manifold
// topology: the two endpoints' vertex one-rings must share exactly the
// vertices of the face(s) incident to h itself, never an extra one, or
// the collapse would weld two unrelated parts of the surface together
// into a non-manifold vertex. Exposed for callers (such as
// CollapseSmallFaces) that need to skip an unsafe collapse rather than
// let it corrupt the mesh, since CollapseEdge itself does not check this.
func (m *Mesh) LinkConditionHolds(h HalfEdgeHandle) bool {
	w := m.WalkerFromHalfEdge(h)
	a := w.VertexID()
	wt := m.WalkerFromHalfEdge(h)
	wt.AsTwin()
	b := wt.VertexID()

	var expected []VertexHandle
	if f := w.FaceID(); !f.IsNil() {
		wn := w
		wn.AsNext()
		expected = append(expected, wn.VertexID())
	}
	if f := wt.FaceID(); !f.IsNil() {
		wn := wt
		wn.AsNext()
		expected = append(expected, wn.VertexID())
	}

	aNeighbors := map[VertexHandle]bool{}
	for it := m.VertexHalfEdges(a); it.Next(); {
		w2 := m.WalkerFromHalfEdge(it.Handle())
		aNeighbors[w2.VertexID()] = true
	}
	shared := map[VertexHandle]bool{}
	for it := m.VertexHalfEdges(b); it.Next(); {
		w2 := m.WalkerFromHalfEdge(it.Handle())
		if v := w2.VertexID(); aNeighbors[v] {
			shared[v] = true
		}
	}

	if len(shared) != len(expected) {
		return false
	}
	for _, v := range expected {
		if !shared[v] {
			return false
		}
	}
	return true
}
