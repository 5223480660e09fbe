package mesh

import "fmt"

// Whole-mesh debug consistency check, grounded on validity.rs's is_valid().
// Not a precondition guard any editor calls automatically — it is an O(V^2)
// diagnostic for tests and callers who want to assert invariants (1)-(6)
// hold after a sequence of edits, not a per-operation cost every editor
// would otherwise have to pay.

// MinEdgeLength is the absolute floor below which an edge or face is
// considered degenerate by IsValid, matching validity.rs's hardcoded
// 0.00001 threshold.
const MinEdgeLength = 0.00001

// IsValid walks every live vertex, half-edge and face and reports the first
// invariant violation found, or nil if none. Intended for tests and debug
// tooling, not hot paths — the final pass is O(V^2) on live vertices.
func (m *Mesh) IsValid() error {
	for it := m.Vertices(); it.Next(); {
		v := it.Handle()
		slot, _ := m.vertices.get(v)
		if slot.halfedge.IsNil() {
			return fmt.Errorf("vertex %s has no outgoing half-edge", v)
		}
		w := m.WalkerFromHalfEdge(slot.halfedge)
		if !w.Valid() {
			return fmt.Errorf("vertex %s's outgoing half-edge %s does not exist", v, slot.halfedge)
		}
		if w.AsTwin().VertexID() != v {
			return fmt.Errorf("vertex %s's outgoing half-edge's twin does not point back to it", v)
		}
	}

	for it := m.HalfEdges(); it.Next(); {
		h := it.Handle()
		w := m.WalkerFromHalfEdge(h)
		twin := w.TwinID()
		if twin.IsNil() {
			return fmt.Errorf("half-edge %s does not point to a twin half-edge", h)
		}
		wt := m.WalkerFromHalfEdge(twin)
		if !wt.Valid() {
			return fmt.Errorf("half-edge %s's twin %s does not exist", h, twin)
		}
		if wt.TwinID() != h {
			return fmt.Errorf("half-edge %s and its twin %s are not symmetric", h, twin)
		}
		if wt.VertexID() == w.VertexID() {
			return fmt.Errorf("half-edge %s and its twin %s share a destination vertex", h, twin)
		}
		if w.VertexID().IsNil() {
			return fmt.Errorf("half-edge %s has no destination vertex", h)
		}
		face := w.FaceID()
		next := w.NextID()
		if next.IsNil() {
			return fmt.Errorf("half-edge %s does not point to a next half-edge", h)
		}
		if !face.IsNil() {
			wn := m.WalkerFromHalfEdge(next)
			if wn.PreviousID() != h {
				return fmt.Errorf("half-edge %s's next %s does not point back via previous", h, next)
			}
		}
		if m.EdgeLength(h) < MinEdgeLength {
			return fmt.Errorf("half-edge %s has degenerate (near-zero) length", h)
		}
	}

	for it := m.Faces(); it.Next(); {
		f := it.Handle()
		w := m.WalkerFromFace(f)
		if !w.Valid() {
			return fmt.Errorf("face %s's stored half-edge does not exist", f)
		}
		if w.FaceID() != f {
			return fmt.Errorf("face %s's stored half-edge does not point back to it", f)
		}
		if m.FaceArea(f) < MinEdgeLength {
			return fmt.Errorf("face %s has degenerate (near-zero) area", f)
		}
	}

	var verts []VertexHandle
	for it := m.Vertices(); it.Next(); {
		verts = append(verts, it.Handle())
	}
	for i, a := range verts {
		for _, b := range verts[i+1:] {
			_, aToB := m.HalfEdgeBetween(a, b)
			_, bToA := m.HalfEdgeBetween(b, a)
			if aToB != bToA {
				return fmt.Errorf("connection between %s and %s is one-directional", a, b)
			}
			if aToB {
				if m.multiEdgeCount(a, b) > 1 {
					return fmt.Errorf("more than one half-edge connects %s to %s", a, b)
				}
			}
		}
	}

	return nil
}

// multiEdgeCount counts how many of a's outgoing half-edges point at b,
// used by IsValid's final no-multi-edge check.
func (m *Mesh) multiEdgeCount(a, b VertexHandle) int {
	n := 0
	for it := m.VertexHalfEdges(a); it.Next(); {
		w := m.WalkerFromHalfEdge(it.Handle())
		if w.VertexID() == b {
			n++
		}
	}
	return n
}
