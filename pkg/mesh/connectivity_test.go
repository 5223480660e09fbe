package mesh

import "testing"

func TestRemoveVertexRejectsNonIsolated(t *testing.T) {
	m := singleFace()
	it := m.Vertices()
	it.Next()
	v := it.Handle()

	if err := m.RemoveVertex(v); err == nil {
		t.Fatal("expected an error removing a vertex that still has an outgoing half-edge")
	}
}

func TestRemoveVertexFreesIsolatedVertex(t *testing.T) {
	m := singleFace()
	before := m.NoVertices()
	v := m.AddVertex(Vector3(9, 9, 9))

	if m.NoVertices() != before+1 {
		t.Fatalf("got %d vertices after add, want %d", m.NoVertices(), before+1)
	}

	if err := m.RemoveVertex(v); err != nil {
		t.Fatalf("unexpected error removing isolated vertex: %v", err)
	}
	if m.NoVertices() != before {
		t.Fatalf("got %d vertices after remove, want %d", m.NoVertices(), before)
	}
	if err := m.IsValid(); err != nil {
		t.Fatalf("mesh invalid after removing isolated vertex: %v", err)
	}
}

func TestRemoveVertexRejectsUnknownHandle(t *testing.T) {
	m := singleFace()
	bogus := VertexHandle{index: 9999, gen: 1}
	if err := m.RemoveVertex(bogus); err == nil {
		t.Fatal("expected an error removing an unknown vertex handle")
	}
}

func TestIsVertexOnBoundary(t *testing.T) {
	m := singleFace()
	for it := m.Vertices(); it.Next(); {
		if !m.IsVertexOnBoundary(it.Handle()) {
			t.Fatalf("vertex %s of a single triangle should be on the boundary", it.Handle())
		}
	}
}

func TestIsClosed(t *testing.T) {
	open := singleFace()
	if open.IsClosed() {
		t.Fatal("a single triangle has a boundary and should not be closed")
	}

	closed, err := New(
		[]uint32{0, 1, 2, 0, 2, 1},
		[]Vec3{Vector3(0, 0, 0), Vector3(1, 0, 0), Vector3(0, 1, 0)},
	)
	if err != nil {
		t.Fatal(err)
	}
	if !closed.IsClosed() {
		t.Fatal("two opposite-wound faces sharing every edge should be closed")
	}
}
