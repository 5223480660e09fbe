package builder

import (
	"testing"

	"github.com/google/uuid"
)

func TestBuildRejectsMissingPositions(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected an error when no positions were supplied")
	}
}

func TestBuildRejectsMisalignedPositions(t *testing.T) {
	if _, err := New().WithPositions([]float64{0, 0}).Build(); err == nil {
		t.Fatal("expected an error for a positions length not a multiple of 3")
	}
}

func TestBuildRejectsMismatchedNormals(t *testing.T) {
	b := New().
		WithPositions([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}).
		WithNormals([]float64{0, 0, 1})
	if _, err := b.Build(); err == nil {
		t.Fatal("expected an error when normals length does not match positions length")
	}
}

func TestBuildWithoutIndicesTreatsPositionsAsFaces(t *testing.T) {
	res, err := New().WithPositions([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoFaces() != 1 || res.Mesh.NoVertices() != 3 {
		t.Fatalf("got %d faces, %d vertices, want 1 and 3", res.Mesh.NoFaces(), res.Mesh.NoVertices())
	}
}

func TestBuildStampsRandomSourceIDWhenUnset(t *testing.T) {
	res, err := New().WithPositions([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SourceID == uuid.Nil {
		t.Fatal("expected a non-nil generated source id")
	}
}

func TestBuildHonorsExplicitSourceID(t *testing.T) {
	want := uuid.New()
	res, err := New().
		WithPositions([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}).
		WithSourceID(want).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SourceID != want {
		t.Fatalf("got source id %v, want %v", res.SourceID, want)
	}
}

func TestCubeTemplate(t *testing.T) {
	res, err := Cube().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoVertices() != 8 || res.Mesh.NoFaces() != 12 {
		t.Fatalf("got %d vertices, %d faces, want 8 and 12", res.Mesh.NoVertices(), res.Mesh.NoFaces())
	}
	if err := res.Mesh.IsValid(); err != nil {
		t.Fatalf("expected the cube template to be valid, got: %v", err)
	}
}

func TestTriangleTemplate(t *testing.T) {
	res, err := Triangle().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoFaces() != 1 || res.Mesh.NoVertices() != 3 {
		t.Fatalf("got %d faces, %d vertices, want 1 and 3", res.Mesh.NoFaces(), res.Mesh.NoVertices())
	}
}

func TestSquareTemplate(t *testing.T) {
	res, err := Square().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoFaces() != 2 || res.Mesh.NoVertices() != 4 {
		t.Fatalf("got %d faces, %d vertices, want 2 and 4", res.Mesh.NoFaces(), res.Mesh.NoVertices())
	}
	if err := res.Mesh.IsValid(); err != nil {
		t.Fatalf("expected the square template to be valid, got: %v", err)
	}
}

func TestPlaneTemplate(t *testing.T) {
	res, err := Plane().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoFaces() != 2 || res.Mesh.NoVertices() != 4 {
		t.Fatalf("got %d faces, %d vertices, want 2 and 4", res.Mesh.NoFaces(), res.Mesh.NoVertices())
	}
}

func TestIcosahedronTemplate(t *testing.T) {
	res, err := Icosahedron().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoVertices() != 12 || res.Mesh.NoFaces() != 20 {
		t.Fatalf("got %d vertices, %d faces, want 12 and 20", res.Mesh.NoVertices(), res.Mesh.NoFaces())
	}
	if err := res.Mesh.IsValid(); err != nil {
		t.Fatalf("expected the icosahedron template to be valid, got: %v", err)
	}
}

func TestCylinderTemplate(t *testing.T) {
	res, err := Cylinder(8, 1, 1).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFaces := 8 * 4
	if res.Mesh.NoFaces() != wantFaces {
		t.Fatalf("got %d faces, want %d", res.Mesh.NoFaces(), wantFaces)
	}
	if err := res.Mesh.IsValid(); err != nil {
		t.Fatalf("expected the cylinder template to be valid, got: %v", err)
	}
}

func TestCylinderClampsSegmentsToMinimumThree(t *testing.T) {
	res, err := Cylinder(1, 1, 1).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoFaces() != 3*4 {
		t.Fatalf("got %d faces, want the 3-segment minimum's 12", res.Mesh.NoFaces())
	}
}

func TestSphereDepthZeroIsBareIcosahedron(t *testing.T) {
	res, err := Sphere(0).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoVertices() != 12 || res.Mesh.NoFaces() != 20 {
		t.Fatalf("got %d vertices, %d faces, want 12 and 20", res.Mesh.NoVertices(), res.Mesh.NoFaces())
	}
}

func TestSphereSubdivisionQuadruplesFaces(t *testing.T) {
	res, err := Sphere(1).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mesh.NoFaces() != 80 {
		t.Fatalf("got %d faces, want 80", res.Mesh.NoFaces())
	}
	if err := res.Mesh.IsValid(); err != nil {
		t.Fatalf("expected the subdivided icosphere to be valid, got: %v", err)
	}
}
