package mesh

import "github.com/samber/lo"

// Iterator-to-slice helpers. The pull-style iterators in iterators.go exist
// so a single walk over a mesh never pays for a full materialization; these
// helpers are for the minority of callers (merge, quality, the splitter)
// that do need a concrete slice to filter, map or re-scan, and lean on
// samber/lo for the filter/map step rather than hand-rolling it, matching
// the functional-collection idiom the teacher's dependency tree already
// carries transitively.

// VertexHandles materializes every live vertex handle.
func (m *Mesh) VertexHandles() []VertexHandle {
	var out []VertexHandle
	for it := m.Vertices(); it.Next(); {
		out = append(out, it.Handle())
	}
	return out
}

// FaceHandles materializes every live face handle.
func (m *Mesh) FaceHandles() []FaceHandle {
	var out []FaceHandle
	for it := m.Faces(); it.Next(); {
		out = append(out, it.Handle())
	}
	return out
}

// HalfEdgeHandles materializes every live half-edge handle.
func (m *Mesh) HalfEdgeHandles() []HalfEdgeHandle {
	var out []HalfEdgeHandle
	for it := m.HalfEdges(); it.Next(); {
		out = append(out, it.Handle())
	}
	return out
}

// BoundaryHalfEdges returns every half-edge with no incident face.
func (m *Mesh) BoundaryHalfEdges() []HalfEdgeHandle {
	return lo.Filter(m.HalfEdgeHandles(), func(h HalfEdgeHandle, _ int) bool {
		return m.WalkerFromHalfEdge(h).FaceID().IsNil()
	})
}

// FacesBelowArea returns every face whose FaceArea is less than threshold,
// used by CollapseSmallFaces's candidate rescans.
func (m *Mesh) FacesBelowArea(threshold float64) []FaceHandle {
	return lo.Filter(m.FaceHandles(), func(f FaceHandle, _ int) bool {
		return m.FaceArea(f) < threshold
	})
}

// VertexPositions maps a slice of vertex handles to their positions.
func (m *Mesh) VertexPositions(vs []VertexHandle) []Vec3 {
	return lo.Map(vs, func(v VertexHandle, _ int) Vec3 {
		p, _ := m.VertexPosition(v)
		return p
	})
}
