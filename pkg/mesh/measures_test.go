package mesh

import (
	"math"
	"testing"
)

func TestEdgeLength(t *testing.T) {
	m := singleFace()
	it := m.HalfEdges()
	it.Next()
	h := it.Handle()
	from, to := m.EdgeVertices(h)
	pf, _ := m.VertexPosition(from)
	pt, _ := m.VertexPosition(to)
	want := pt.Sub(pf).Length()

	if got := m.EdgeLength(h); math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFaceAreaOfUnitRightTriangle(t *testing.T) {
	m, err := New(nil, []Vec3{Vector3(0, 0, 0), Vector3(1, 0, 0), Vector3(0, 1, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddFace(vertexHandleAt(m, 0), vertexHandleAt(m, 1), vertexHandleAt(m, 2)); err != nil {
		t.Fatal(err)
	}
	m.finalizeBoundary()

	it := m.Faces()
	it.Next()
	area := m.FaceArea(it.Handle())
	if math.Abs(area-0.5) > 1e-12 {
		t.Fatalf("got area %v, want 0.5", area)
	}
}

func TestFaceNormalPointsAlongWinding(t *testing.T) {
	m, err := New(nil, []Vec3{Vector3(0, 0, 0), Vector3(1, 0, 0), Vector3(0, 1, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddFace(vertexHandleAt(m, 0), vertexHandleAt(m, 1), vertexHandleAt(m, 2)); err != nil {
		t.Fatal(err)
	}
	m.finalizeBoundary()

	it := m.Faces()
	it.Next()
	n := m.FaceNormal(it.Handle())
	want := Vector3(0, 0, 1)
	if math.Abs(n.Sub(want).Length()) > 1e-9 {
		t.Fatalf("got normal %v, want %v", n, want)
	}
}

func TestBoundingBoxAndDiagonal(t *testing.T) {
	m := twoConnectedFaces()
	min, max, ok := m.BoundingBox()
	if !ok {
		t.Fatal("expected a non-empty bounding box")
	}
	if min.X != -1 || min.Z != -0.5 {
		t.Fatalf("unexpected min %v", min)
	}
	if max.X != 1 || max.Z != 1 {
		t.Fatalf("unexpected max %v", max)
	}

	want := max.Sub(min).Length()
	if got := m.BoundingBoxDiagonal(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("got diagonal %v, want %v", got, want)
	}
}

func TestBoundingBoxEmptyMesh(t *testing.T) {
	m := &Mesh{}
	if _, _, ok := m.BoundingBox(); ok {
		t.Fatal("expected an empty mesh to report no bounding box")
	}
	if d := m.BoundingBoxDiagonal(); d != 0 {
		t.Fatalf("got diagonal %v, want 0", d)
	}
}

func TestTranslateAndScale(t *testing.T) {
	m := singleFace()
	offset := Vector3(1, 2, 3)
	m.Translate(offset)

	for _, v := range m.VertexHandles() {
		p, _ := m.VertexPosition(v)
		if p.X < 1 || p.Y < 2 {
			t.Fatalf("vertex %v was not translated", p)
		}
	}

	before := m.VertexPositions(m.VertexHandles())
	m.Scale(2)
	after := m.VertexPositions(m.VertexHandles())
	for i := range before {
		want := before[i].Scale(2)
		if after[i] != want {
			t.Fatalf("got %v, want %v", after[i], want)
		}
	}
}

func TestPositionsAndIndicesBuffersRoundTrip(t *testing.T) {
	m := twoConnectedFaces()
	positions := m.PositionsBuffer()
	indices := m.IndicesBuffer()

	if len(positions) != m.NoVertices()*3 {
		t.Fatalf("got %d position floats, want %d", len(positions), m.NoVertices()*3)
	}
	if len(indices) != m.NoFaces()*3 {
		t.Fatalf("got %d indices, want %d", len(indices), m.NoFaces()*3)
	}
	for _, idx := range indices {
		if int(idx) >= m.NoVertices() {
			t.Fatalf("index %d out of range for %d vertices", idx, m.NoVertices())
		}
	}

	rebuilt := make([]Vec3, m.NoVertices())
	for i := 0; i < m.NoVertices(); i++ {
		rebuilt[i] = Vector3(positions[3*i], positions[3*i+1], positions[3*i+2])
	}
	if _, err := New(indices, rebuilt); err != nil {
		t.Fatalf("buffers did not round-trip through New: %v", err)
	}
}

func TestNormalsBufferLength(t *testing.T) {
	m := twoConnectedFaces()
	normals := m.NormalsBuffer()
	if len(normals) != m.NoVertices()*3 {
		t.Fatalf("got %d normal floats, want %d", len(normals), m.NoVertices()*3)
	}
}
