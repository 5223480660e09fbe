package mesh

import "testing"

func square(offsetX float64) *Mesh {
	m, err := New(
		[]uint32{0, 1, 2, 2, 1, 3},
		[]Vec3{
			Vector3(offsetX-1, -1, 0), Vector3(offsetX+1, -1, 0),
			Vector3(offsetX-1, 1, 0), Vector3(offsetX+1, 1, 0),
		},
	)
	if err != nil {
		panic(err)
	}
	return m
}

func TestAppend(t *testing.T) {
	m := square(0)
	other := square(2)
	vmap := m.Append(other)

	if len(vmap) != 4 {
		t.Fatalf("got %d mapped vertices, want 4", len(vmap))
	}
	if m.NoVertices() != 8 {
		t.Fatalf("got %d vertices, want 8", m.NoVertices())
	}
	if m.NoFaces() != 4 {
		t.Fatalf("got %d faces, want 4", m.NoFaces())
	}
	if err := m.IsValid(); err != nil {
		t.Fatalf("mesh invalid after append: %v", err)
	}
}

func TestMergeWithStitchesSharedEdge(t *testing.T) {
	m := square(0)
	other := square(2)

	if err := m.MergeWith(other, DefaultMergeEpsilonFactor); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if m.NoVertices() != 6 {
		t.Fatalf("got %d vertices after weld, want 6", m.NoVertices())
	}
	if m.NoFaces() != 4 {
		t.Fatalf("got %d faces, want 4", m.NoFaces())
	}
	if err := m.IsValid(); err != nil {
		t.Fatalf("mesh invalid after merge: %v", err)
	}
}

func TestMergeOverlappingPrimitives(t *testing.T) {
	m := square(0)
	other := square(2)
	m.Append(other)

	if err := m.MergeOverlappingPrimitives(DefaultMergeEpsilonFactor); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if m.NoVertices() != 6 {
		t.Fatalf("got %d vertices after weld, want 6", m.NoVertices())
	}
	if err := m.IsValid(); err != nil {
		t.Fatalf("mesh invalid after merge: %v", err)
	}
}

func TestCloneSubset(t *testing.T) {
	m := threeConnectedFaces()
	var faces []FaceHandle
	n := 0
	for it := m.Faces(); it.Next() && n < 2; n++ {
		faces = append(faces, it.Handle())
	}

	sub, err := m.CloneSubset(faces)
	if err != nil {
		t.Fatalf("clone subset failed: %v", err)
	}
	if sub.NoFaces() != 2 {
		t.Fatalf("got %d faces in subset, want 2", sub.NoFaces())
	}
	if err := sub.IsValid(); err != nil {
		t.Fatalf("subset mesh invalid: %v", err)
	}
	if sub == m {
		t.Fatal("subset must be an independent mesh")
	}
}

func TestCloneSubsetRejectsUnknownFace(t *testing.T) {
	m := threeConnectedFaces()
	bogus := FaceHandle{index: 9999, gen: 1}

	if _, err := m.CloneSubset([]FaceHandle{bogus}); err == nil {
		t.Fatal("expected an error cloning an unknown face handle")
	}
}
