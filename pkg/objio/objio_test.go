package objio

import (
	"strings"
	"testing"

	"github.com/chazu/trimesh/pkg/mesh"
)

func triangleMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(
		[]uint32{0, 1, 2},
		[]mesh.Vec3{mesh.Vector3(0, 0, 0), mesh.Vector3(1, 0, 0), mesh.Vector3(0, 1, 0)},
	)
	if err != nil {
		t.Fatalf("unexpected error building fixture: %v", err)
	}
	return m
}

func TestExportWritesVerticesThenFaces(t *testing.T) {
	m := triangleMesh(t)
	var sb strings.Builder
	if err := Export(&sb, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (3 vertices + 1 face)", len(lines))
	}
	for _, l := range lines[:3] {
		if !strings.HasPrefix(l, "v ") {
			t.Fatalf("expected a vertex line, got %q", l)
		}
	}
	if !strings.HasPrefix(lines[3], "f ") {
		t.Fatalf("expected a face line, got %q", lines[3])
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	m := triangleMesh(t)
	var sb strings.Builder
	if err := Export(&sb, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Import(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.NoVertices() != m.NoVertices() || got.NoFaces() != m.NoFaces() {
		t.Fatalf("got %d vertices/%d faces, want %d/%d", got.NoVertices(), got.NoFaces(), m.NoVertices(), m.NoFaces())
	}
}

func TestImportIgnoresCommentsAndBlankLines(t *testing.T) {
	src := "# a comment\n\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	m, err := Import(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.NoVertices() != 3 || m.NoFaces() != 1 {
		t.Fatalf("got %d vertices, %d faces, want 3 and 1", m.NoVertices(), m.NoFaces())
	}
}

func TestImportAcceptsCompositeFaceIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1 2/2/1 3/3/1\n"
	m, err := Import(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.NoFaces() != 1 {
		t.Fatalf("got %d faces, want 1", m.NoFaces())
	}
}

func TestImportTriangulatesPolygonFaceAsFan(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	m, err := Import(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.NoFaces() != 2 {
		t.Fatalf("got %d faces for a quad fan-triangulated, want 2", m.NoFaces())
	}
}

func TestImportRejectsMalformedVertexCoordinate(t *testing.T) {
	src := "v 0 oops 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if _, err := Import(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a non-numeric vertex coordinate")
	}
}

func TestImportRejectsShortVertexRecord(t *testing.T) {
	src := "v 0 0\n"
	if _, err := Import(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a vertex record missing a coordinate")
	}
}

func TestImportRejectsShortFaceRecord(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nf 1 2\n"
	if _, err := Import(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a face record with fewer than 3 vertices")
	}
}

func TestImportRejectsNonPositiveFaceIndex(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"
	if _, err := Import(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a zero or negative face index")
	}
}

func TestImportRejectsMalformedFaceIndex(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a b c\n"
	if _, err := Import(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a non-numeric face index")
	}
}
