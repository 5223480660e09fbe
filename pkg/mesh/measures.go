package mesh

import "math"

// EdgeLength returns the Euclidean length of the undirected edge
// represented by h.
func (m *Mesh) EdgeLength(h HalfEdgeHandle) float64 {
	from, to := m.EdgeVertices(h)
	pf, _ := m.VertexPosition(from)
	pt, _ := m.VertexPosition(to)
	return pt.Sub(pf).Length()
}

// FaceArea returns the area of triangle f via half the magnitude of the
// cross product of two of its edge vectors.
func (m *Mesh) FaceArea(f FaceHandle) float64 {
	v0, v1, v2, ok := m.FaceVertices(f)
	if !ok {
		return 0
	}
	p0, _ := m.VertexPosition(v0)
	p1, _ := m.VertexPosition(v1)
	p2, _ := m.VertexPosition(v2)
	return p1.Sub(p0).Cross(p2.Sub(p0)).Length() * 0.5
}

// FaceNormal returns the unnormalized-then-normalized normal of f
// following its winding order (right-hand rule over v0->v1->v2).
func (m *Mesh) FaceNormal(f FaceHandle) Vec3 {
	v0, v1, v2, ok := m.FaceVertices(f)
	if !ok {
		return Vec3{}
	}
	p0, _ := m.VertexPosition(v0)
	p1, _ := m.VertexPosition(v1)
	p2, _ := m.VertexPosition(v2)
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// VertexNormal returns the area-weighted average of the normals of faces
// incident to v, matching the contract for NormalsBuffer.
func (m *Mesh) VertexNormal(v VertexHandle) Vec3 {
	var sum Vec3
	for it := m.VertexHalfEdges(v); it.Next(); {
		w := m.WalkerFromHalfEdge(it.Handle())
		f := w.FaceID()
		if f.IsNil() {
			continue
		}
		area := m.FaceArea(f)
		sum = sum.Add(m.FaceNormal(f).Scale(area))
	}
	return sum.Normalize()
}

// BoundingBox returns the axis-aligned bounding box (min, max) over all
// live vertices. The second return is false for an empty mesh.
func (m *Mesh) BoundingBox() (Vec3, Vec3, bool) {
	min := Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	any := false
	for it := m.Vertices(); it.Next(); {
		p, _ := m.VertexPosition(it.Handle())
		any = true
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max, any
}

// BoundingBoxDiagonal returns the length of the mesh's bounding box
// diagonal, the quantity all geometric tolerances in this module are
// scaled against (see intersect.Epsilon).
func (m *Mesh) BoundingBoxDiagonal() float64 {
	min, max, ok := m.BoundingBox()
	if !ok {
		return 0
	}
	return max.Sub(min).Length()
}

// Translate rewrites every vertex position by adding v. A batch rewrite,
// not a stored transform — matches spec.md's "affine transforms exposed
// as batch vertex rewrites" external-collaborator note.
func (m *Mesh) Translate(v Vec3) {
	for it := m.Vertices(); it.Next(); {
		p, _ := m.VertexPosition(it.Handle())
		m.SetVertexPosition(it.Handle(), p.Add(v))
	}
}

// Scale rewrites every vertex position by scaling about the origin.
func (m *Mesh) Scale(s float64) {
	for it := m.Vertices(); it.Next(); {
		p, _ := m.VertexPosition(it.Handle())
		m.SetVertexPosition(it.Handle(), p.Scale(s))
	}
}

// PositionsBuffer returns a flat [x0,y0,z0,x1,...] array in vertex-handle
// (arena slot) order.
func (m *Mesh) PositionsBuffer() []float64 {
	buf := make([]float64, 0, m.NoVertices()*3)
	for it := m.Vertices(); it.Next(); {
		p, _ := m.VertexPosition(it.Handle())
		buf = append(buf, p.X, p.Y, p.Z)
	}
	return buf
}

// IndicesBuffer returns a flat [i0,i1,i2,...] array in face-discovery
// order, with each index being the 0-based position of that vertex in the
// order VertexIter would produce it.
func (m *Mesh) IndicesBuffer() []uint32 {
	order := make(map[VertexHandle]uint32)
	i := uint32(0)
	for it := m.Vertices(); it.Next(); {
		order[it.Handle()] = i
		i++
	}
	buf := make([]uint32, 0, m.NoFaces()*3)
	for it := m.Faces(); it.Next(); {
		v0, v1, v2, ok := m.FaceVertices(it.Handle())
		if !ok {
			continue
		}
		buf = append(buf, order[v0], order[v1], order[v2])
	}
	return buf
}

// NormalsBuffer returns a flat [x0,y0,z0,...] array of per-vertex
// area-weighted normals, in the same vertex order as PositionsBuffer.
func (m *Mesh) NormalsBuffer() []float64 {
	buf := make([]float64, 0, m.NoVertices()*3)
	for it := m.Vertices(); it.Next(); {
		n := m.VertexNormal(it.Handle())
		buf = append(buf, n.X, n.Y, n.Z)
	}
	return buf
}
