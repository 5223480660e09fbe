package mesh

import "testing"

// Fixtures here mirror test_utility.rs's create_single_face /
// create_two_connected_faces / create_three_connected_faces, reused via the
// edit_test.go helpers of the same shape.

func TestIsValidAcceptsWellFormedMeshes(t *testing.T) {
	for name, build := range map[string]func() *Mesh{
		"single": singleFace,
		"two":    twoConnectedFaces,
		"three":  threeConnectedFaces,
		"square": func() *Mesh { return square(0) },
	} {
		t.Run(name, func(t *testing.T) {
			if err := build().IsValid(); err != nil {
				t.Fatalf("expected a valid mesh, got: %v", err)
			}
		})
	}
}

func TestIsValidRejectsDegenerateFace(t *testing.T) {
	m, err := New(nil, []Vec3{
		Vector3(0, 0, 0), Vector3(1, 0, 0), Vector3(2, 0, 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddFace(vertexHandleAt(m, 0), vertexHandleAt(m, 1), vertexHandleAt(m, 2)); err != nil {
		t.Fatal(err)
	}
	m.finalizeBoundary()

	if err := m.IsValid(); err == nil {
		t.Fatal("expected a degenerate (collinear, zero-area) face to be rejected")
	}
}

func TestIsValidRejectsDegenerateEdge(t *testing.T) {
	m, err := New(nil, []Vec3{
		Vector3(0, 0, 0), Vector3(0, 0, 0), Vector3(1, 0, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddFace(vertexHandleAt(m, 0), vertexHandleAt(m, 1), vertexHandleAt(m, 2)); err != nil {
		t.Fatal(err)
	}
	m.finalizeBoundary()

	if err := m.IsValid(); err == nil {
		t.Fatal("expected a zero-length edge to be rejected")
	}
}

func TestIsValidRejectsOrphanedVertex(t *testing.T) {
	m := singleFace()
	m.AddVertex(Vector3(9, 9, 9))

	if err := m.IsValid(); err == nil {
		t.Fatal("expected a vertex with no outgoing half-edge to be rejected")
	}
}

func TestMinEdgeLengthMatchesThreshold(t *testing.T) {
	if MinEdgeLength != 0.00001 {
		t.Fatalf("got %v, want 0.00001", MinEdgeLength)
	}
}
