package mesh

import "math"

// Merge and clone-subset, grounded on merge.rs's append / merge_with /
// merge_overlapping_primitives / merge_vertices / merge_halfedges, and on
// the connected-component cloning implied (but not named as a standalone
// function) by split_primitives_at_intersection.rs's per-component output
// step.

// DefaultMergeEpsilonFactor is the default tolerance factor (relative to
// the receiving mesh's bounding-box diagonal) MergeWith uses to decide
// whether two vertices from the two meshes coincide, matching merge.rs's
// hardcoded 0.00001 literal generalized into a bbox-relative factor per
// spec.md's tolerance design note.
const DefaultMergeEpsilonFactor = 1e-5

// Append copies every vertex and face of other into m under freshly
// allocated handles and returns the vertex-handle mapping (other's handle
// to m's), grounded on merge.rs's append. Unlike the original, this does
// not attempt any twin pairing across the seam between m's prior content
// and the appended copy — that stitching is MergeWith's job, since a bare
// append (e.g. the splitter collecting independent components side by
// side) should not silently weld unrelated geometry.
func (m *Mesh) Append(other *Mesh) map[VertexHandle]VertexHandle {
	vmap := make(map[VertexHandle]VertexHandle, other.NoVertices())
	for it := other.Vertices(); it.Next(); {
		ov := it.Handle()
		pos, _ := other.VertexPosition(ov)
		vmap[ov] = m.AddVertex(pos)
	}
	for it := other.Faces(); it.Next(); {
		v0, v1, v2, ok := other.FaceVertices(it.Handle())
		if !ok {
			continue
		}
		m.AddFace(vmap[v0], vmap[v1], vmap[v2])
	}
	m.finalizeBoundary()
	m.touch()
	return vmap
}

// MergeWith copies other into m (via Append) and then stitches the two
// boundaries together: any pair of boundary half-edges whose endpoints
// coincide within epsilonFactor*bboxDiagonal are paired as each other's
// twins, exactly as spec.md §4.6 describes ("h1.vertex ≈ h2.from and
// h1.from ≈ h2.vertex"), welding any now-fully-interior vertex pair left
// duplicated by the position match. The whole operation runs against a
// scratch copy first; if the result fails IsValid, m is left completely
// unchanged and MergeIncompatibleError is returned, matching merge.rs's
// documented "final invariants are re-verified; on failure the whole merge
// is rolled back" contract.
func (m *Mesh) MergeWith(other *Mesh, epsilonFactor float64) error {
	epsilonFactor = clamp01(epsilonFactor)
	scratch := m.clone()
	scratch.Append(other)
	scratch.stitchBoundaries(epsilonFactor)
	scratch.weldCoincidentVertices(epsilonFactor)
	scratch.removeLonelyEdges()
	scratch.finalizeBoundary()
	if err := scratch.IsValid(); err != nil {
		return &MergeIncompatibleError{Reason: err.Error()}
	}
	*m = *scratch
	return nil
}

// MergeOverlappingPrimitives re-runs the boundary-stitch and vertex-weld
// passes MergeWith performs after Append, for callers that already hold an
// appended mesh (e.g. built via repeated Append calls) and want the overlap
// resolution pass on its own, matching merge.rs's merge_overlapping_primitives
// being a separate public entry point from merge_with/append.
func (m *Mesh) MergeOverlappingPrimitives(epsilonFactor float64) error {
	epsilonFactor = clamp01(epsilonFactor)
	scratch := m.clone()
	scratch.stitchBoundaries(epsilonFactor)
	scratch.weldCoincidentVertices(epsilonFactor)
	scratch.removeLonelyEdges()
	scratch.finalizeBoundary()
	if err := scratch.IsValid(); err != nil {
		return &MergeIncompatibleError{Reason: err.Error()}
	}
	*m = *scratch
	return nil
}

// stitchBoundaries re-twins coincident boundary half-edge pairs, freeing
// the phantom twins each side was given by finalizeBoundary. Grounded on
// merge_halfedges's boundary case, collapsed here into a single symmetric
// match rather than the original's alone/interior/boundary three-way
// case split, since after Append every candidate is already known to be a
// phantom boundary half-edge.
func (m *Mesh) stitchBoundaries(epsilonFactor float64) {
	eps := epsilonFactor * m.BoundingBoxDiagonal()
	boundary := m.BoundaryHalfEdges()

	paired := make(map[HalfEdgeHandle]bool)
	for i, h1 := range boundary {
		if paired[h1] {
			continue
		}
		w1 := m.WalkerFromHalfEdge(h1)
		h1Dest := w1.VertexID()
		h1From := w1.AsTwin().VertexID()
		h1DestPos, _ := m.VertexPosition(h1Dest)
		h1FromPos, _ := m.VertexPosition(h1From)

		for _, h2 := range boundary[i+1:] {
			if paired[h2] {
				continue
			}
			w2 := m.WalkerFromHalfEdge(h2)
			h2Dest := w2.VertexID()
			h2From := w2.AsTwin().VertexID()
			h2DestPos, _ := m.VertexPosition(h2Dest)
			h2FromPos, _ := m.VertexPosition(h2From)

			if h1DestPos.Sub(h2FromPos).Length() <= eps && h1FromPos.Sub(h2DestPos).Length() <= eps {
				oldTwin1 := m.WalkerFromHalfEdge(h1).TwinID()
				oldTwin2 := m.WalkerFromHalfEdge(h2).TwinID()
				m.setTwin(oldTwin1, oldTwin2)
				m.halfedges.free_(h1)
				m.halfedges.free_(h2)
				paired[h1] = true
				paired[h2] = true
				break
			}
		}
	}
}

// weldCoincidentVertices identifies vertex pairs left duplicated after
// stitchBoundaries (the two meshes' coincident-but-distinct endpoints of a
// freshly-stitched edge) and merges each pair into one, rerouting every
// half-edge that referenced the dying vertex, mirroring merge_vertices.
func (m *Mesh) weldCoincidentVertices(epsilonFactor float64) {
	eps := epsilonFactor * m.BoundingBoxDiagonal()
	var verts []VertexHandle
	for it := m.Vertices(); it.Next(); {
		verts = append(verts, it.Handle())
	}
	dead := make(map[VertexHandle]bool)
	for i, a := range verts {
		if dead[a] {
			continue
		}
		pa, _ := m.VertexPosition(a)
		for _, b := range verts[i+1:] {
			if dead[b] {
				continue
			}
			pb, _ := m.VertexPosition(b)
			if pa.Sub(pb).Length() > eps {
				continue
			}
			if _, already := m.HalfEdgeBetween(a, b); already {
				continue
			}
			m.weldVertex(a, b)
			dead[b] = true
		}
	}
}

// weldVertex rewrites every half-edge pointing at dying to point at
// surviving instead, then frees dying. Equivalent to merge_vertices.
func (m *Mesh) weldVertex(surviving, dying VertexHandle) {
	for it := m.HalfEdges(); it.Next(); {
		h := it.Handle()
		slot, ok := m.halfedges.get(h)
		if ok && slot.vertex == dying {
			slot.vertex = surviving
		}
	}
	if slot, ok := m.vertices.get(dying); ok {
		if sv, ok2 := m.vertices.get(surviving); ok2 && sv.halfedge.IsNil() {
			sv.halfedge = slot.halfedge
		}
	}
	m.vertices.free_(dying)
}

// CloneSubset builds a new, independent mesh containing exactly the given
// faces, with fresh vertex and half-edge handles and its own boundary
// reclassified from scratch. Grounded on the per-component clone step
// split_primitives_at_intersection.rs performs at the end of its splitting
// loop (the original inlines this rather than naming it, per SPEC_FULL.md
// §4.6).
func (m *Mesh) CloneSubset(faces []FaceHandle) (*Mesh, error) {
	out := &Mesh{}
	vmap := make(map[VertexHandle]VertexHandle)
	get := func(v VertexHandle) VertexHandle {
		if nv, ok := vmap[v]; ok {
			return nv
		}
		pos, _ := m.VertexPosition(v)
		nv := out.AddVertex(pos)
		vmap[v] = nv
		return nv
	}
	for _, f := range faces {
		v0, v1, v2, ok := m.FaceVertices(f)
		if !ok {
			return nil, &InvalidHandleError{Kind: "face", Handle: f}
		}
		if _, err := out.AddFace(get(v0), get(v1), get(v2)); err != nil {
			return nil, err
		}
	}
	out.finalizeBoundary()
	return out, nil
}

// clone returns a deep copy of m's three arenas, used by MergeWith /
// MergeOverlappingPrimitives to stage a merge that can be discarded
// wholesale if the result fails IsValid.
func (m *Mesh) clone() *Mesh {
	out := &Mesh{mutationCount: m.mutationCount}
	out.vertices.slots = append([]vertexSlot(nil), m.vertices.slots...)
	out.vertices.free = append([]uint32(nil), m.vertices.free...)
	out.halfedges.slots = append([]halfEdgeSlot(nil), m.halfedges.slots...)
	out.halfedges.free = append([]uint32(nil), m.halfedges.free...)
	out.faces.slots = append([]faceSlot(nil), m.faces.slots...)
	out.faces.free = append([]uint32(nil), m.faces.free...)
	return out
}

// clamp01 guards epsilon factors supplied by callers outside (0, 1] from
// producing a negative or nonsensical tolerance.
func clamp01(f float64) float64 {
	if math.IsNaN(f) || f <= 0 {
		return DefaultMergeEpsilonFactor
	}
	return f
}
