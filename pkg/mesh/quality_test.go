package mesh

import "testing"

func TestSmoothVerticesMovesTowardCentroid(t *testing.T) {
	m := threeConnectedFaces()
	before, _ := m.VertexPosition(vertexHandleAt(m, 1))

	m.SmoothVertices(0.5)

	after, _ := m.VertexPosition(vertexHandleAt(m, 1))
	if before == after {
		t.Fatal("expected the shared vertex to move")
	}
	if err := m.IsValid(); err != nil {
		t.Fatalf("mesh invalid after smoothing: %v", err)
	}
}

func TestSmoothVerticesFactorZeroIsNoOp(t *testing.T) {
	m := threeConnectedFaces()
	var before []Vec3
	for it := m.Vertices(); it.Next(); {
		p, _ := m.VertexPosition(it.Handle())
		before = append(before, p)
	}

	m.SmoothVertices(0)

	i := 0
	for it := m.Vertices(); it.Next(); i++ {
		p, _ := m.VertexPosition(it.Handle())
		if p != before[i] {
			t.Fatalf("vertex %d moved with factor 0", i)
		}
	}
}

func TestCollapseSmallFaces(t *testing.T) {
	m, err := New(
		[]uint32{0, 2, 3, 0, 3, 1, 0, 1, 2},
		[]Vec3{
			Vector3(0, 0, 0), Vector3(0, 0, 0.1), Vector3(0.1, 0, -0.1), Vector3(-1, 0, -0.5),
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	m.CollapseSmallFaces(0.2)

	if err := m.IsValid(); err != nil {
		t.Fatalf("mesh invalid after collapsing small faces: %v", err)
	}
}

func TestFlipEdgesForQualityPreservesValidity(t *testing.T) {
	m := twoConnectedFaces()
	noEdges := m.NoHalfEdges()

	flips := m.FlipEdgesForQuality(DefaultQualityOptions())
	if flips < 0 {
		t.Fatalf("got negative flip count %d", flips)
	}
	if m.NoHalfEdges() != noEdges {
		t.Fatalf("half-edge count changed: got %d, want %d", m.NoHalfEdges(), noEdges)
	}
	if err := m.IsValid(); err != nil {
		t.Fatalf("mesh invalid after quality flips: %v", err)
	}
}

func TestRemoveLonelyPrimitivesPrunesIsolatedVertex(t *testing.T) {
	m := threeConnectedFaces()
	before := m.NoVertices()
	m.AddVertex(Vector3(5, 5, 5))

	removed := m.RemoveLonelyPrimitives()

	if removed != 1 {
		t.Fatalf("got %d vertices removed, want 1", removed)
	}
	if m.NoVertices() != before {
		t.Fatalf("got %d vertices, want %d", m.NoVertices(), before)
	}
	if err := m.IsValid(); err != nil {
		t.Fatalf("mesh invalid after pruning: %v", err)
	}
}

// vertexHandleAt returns the i-th vertex handle in arena iteration order.
func vertexHandleAt(m *Mesh, i int) VertexHandle {
	n := 0
	for it := m.Vertices(); it.Next(); n++ {
		if n == i {
			return it.Handle()
		}
	}
	return VertexHandle{}
}
