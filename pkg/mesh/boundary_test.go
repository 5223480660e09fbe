package mesh

import "testing"

func TestBoundaryLoopIsWalkable(t *testing.T) {
	m := singleFace()
	boundary := m.BoundaryHalfEdges()
	if len(boundary) != 3 {
		t.Fatalf("got %d boundary half-edges for a single triangle, want 3", len(boundary))
	}

	start := boundary[0]
	w := m.WalkerFromHalfEdge(start)
	count := 0
	for {
		w.AsNext()
		count++
		if w.HalfEdgeID() == start {
			break
		}
		if count > 3 {
			t.Fatal("boundary loop did not close after 3 steps")
		}
	}
	if count != 3 {
		t.Fatalf("got %d steps around the boundary loop, want 3", count)
	}
}

func TestIsEdgeOnBoundaryMatchesFaceID(t *testing.T) {
	m := twoConnectedFaces()
	for it := m.HalfEdges(); it.Next(); {
		h := it.Handle()
		w := m.WalkerFromHalfEdge(h)
		want := w.FaceID().IsNil() || m.WalkerFromHalfEdge(w.TwinID()).FaceID().IsNil()
		if got := m.IsEdgeOnBoundary(h); got != want {
			t.Fatalf("half-edge %s: IsEdgeOnBoundary=%v, h or twin faceless=%v", h, got, want)
		}
	}
}
