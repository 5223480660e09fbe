package intersect

import (
	"testing"

	"github.com/chazu/trimesh/pkg/mesh"
)

func planeXZ(offsetY float64) *mesh.Mesh {
	positions := []mesh.Vec3{
		mesh.Vector3(-1, offsetY, -1),
		mesh.Vector3(1, offsetY, -1),
		mesh.Vector3(1, offsetY, 1),
		mesh.Vector3(-1, offsetY, 1),
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	m, err := mesh.New(indices, positions)
	if err != nil {
		panic(err)
	}
	return m
}

func planeYZ(offsetX float64) *mesh.Mesh {
	positions := []mesh.Vec3{
		mesh.Vector3(offsetX, -1, -1),
		mesh.Vector3(offsetX, 1, -1),
		mesh.Vector3(offsetX, 1, 1),
		mesh.Vector3(offsetX, -1, 1),
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	m, err := mesh.New(indices, positions)
	if err != nil {
		panic(err)
	}
	return m
}

func TestSplitAtIntersectionNoOverlapReturnsWholeClones(t *testing.T) {
	a := planeXZ(0)
	b := planeXZ(100)

	res, err := SplitAtIntersection(a, b, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error for non-intersecting meshes: %v", err)
	}

	if len(res.A) != 1 || len(res.B) != 1 {
		t.Fatalf("expected one whole component per side, got %d and %d", len(res.A), len(res.B))
	}
	if res.A[0].NoFaces() != a.NoFaces() {
		t.Fatalf("got %d faces cloned from A, want %d", res.A[0].NoFaces(), a.NoFaces())
	}
	if res.B[0].NoFaces() != b.NoFaces() {
		t.Fatalf("got %d faces cloned from B, want %d", res.B[0].NoFaces(), b.NoFaces())
	}
	if err := res.A[0].IsValid(); err != nil {
		t.Fatalf("expected a valid cloned component for A, got: %v", err)
	}
	if err := res.B[0].IsValid(); err != nil {
		t.Fatalf("expected a valid cloned component for B, got: %v", err)
	}
}

func TestSplitAtIntersectionCrossingPlanes(t *testing.T) {
	a := planeXZ(0)
	b := planeYZ(0)

	res, err := SplitAtIntersection(a, b, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error splitting crossing planes: %v", err)
	}

	if len(res.A) == 0 || len(res.B) == 0 {
		t.Fatal("expected at least one component on each side")
	}

	var facesA, facesB int
	for _, c := range res.A {
		if err := c.IsValid(); err != nil {
			t.Fatalf("component of A failed validity check: %v", err)
		}
		facesA += c.NoFaces()
	}
	for _, c := range res.B {
		if err := c.IsValid(); err != nil {
			t.Fatalf("component of B failed validity check: %v", err)
		}
		facesB += c.NoFaces()
	}

	if facesA < a.NoFaces() {
		t.Fatalf("splitting should only add faces, got %d from an original %d", facesA, a.NoFaces())
	}
	if facesB < b.NoFaces() {
		t.Fatalf("splitting should only add faces, got %d from an original %d", facesB, b.NoFaces())
	}
}

func TestSplitAtIntersectionUsesDefaultOptionsForNonPositiveFactor(t *testing.T) {
	a := planeXZ(0)
	b := planeXZ(100)

	res, err := SplitAtIntersection(a, b, Options{EpsilonFactor: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.A) != 1 || len(res.B) != 1 {
		t.Fatal("expected default options to be substituted and produce whole clones")
	}
}
