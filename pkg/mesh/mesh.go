// Package mesh implements a triangle mesh on top of a half-edge
// connectivity representation: arena-backed storage with generation-safe
// handles, a walker/iterator traversal layer, local topological editors
// (split_edge, split_face, collapse_edge, flip_edge, remove_face), and
// measures, merge and quality operators built on top of those primitives.
//
// Grounded on the tri-mesh Rust crate (asny/tri-mesh), adapted to Go's
// arena-of-structs idiom in the style of this module's sibling arena type
// (pkg/graph.DesignGraph's map[NodeID]*Node storage, generalized here to a
// generation-tagged free-list arena since handles must survive deletion).
package mesh

// Mesh exclusively owns its three arenas. It is not safe for concurrent
// use: all mutating operators require exclusive access and all reads
// (walkers, iterators, measures) require only that no mutation is
// in flight, matching the single-threaded, non-shared resource model.
type Mesh struct {
	vertices  vertexArena
	halfedges halfEdgeArena
	faces     faceArena

	// mutationCount counts mutations for debug-mode iterator-staleness
	// detection, per the design note on lingering iterators.
	mutationCount uint64
}

// New builds a Mesh directly from a flat index/position buffer: index
// triple (indices[3*x], indices[3*x+1], indices[3*x+2]) names face x's
// three vertices, and position triple (positions[3*x], positions[3*x+1],
// positions[3*x+2]) is vertex x's position. This is the same contract as
// tri-mesh's Mesh::new / MeshBuilder::build, kept here as the primitive
// the builder package's fluent API terminates into.
func New(indices []uint32, positions []Vec3) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, &BuildError{Reason: "indices length must be a multiple of 3"}
	}
	m := &Mesh{}
	vertexHandles := make([]VertexHandle, len(positions))
	for i, p := range positions {
		vertexHandles[i] = m.AddVertex(p)
	}
	for f := 0; f < len(indices); f += 3 {
		i0, i1, i2 := indices[f], indices[f+1], indices[f+2]
		if int(i0) >= len(vertexHandles) || int(i1) >= len(vertexHandles) || int(i2) >= len(vertexHandles) {
			return nil, &BuildError{Reason: "index references a position that was not supplied"}
		}
		if i0 == i1 || i1 == i2 || i0 == i2 {
			return nil, &BuildError{Reason: "face has two equal vertex references"}
		}
		if _, err := m.AddFace(vertexHandles[i0], vertexHandles[i1], vertexHandles[i2]); err != nil {
			return nil, err
		}
	}
	m.finalizeBoundary()
	return m, nil
}

func (m *Mesh) touch() { m.mutationCount++ }

// MutationCount returns the number of structural mutations applied so far.
// Iterators do not self-check against it (that would cost a check per
// step); it exists so tests and callers in debug builds can assert that no
// mutation happened between an iterator's creation and its exhaustion.
func (m *Mesh) MutationCount() uint64 { return m.mutationCount }

func (m *Mesh) NoVertices() int   { return m.vertices.count() }
func (m *Mesh) NoHalfEdges() int  { return m.halfedges.count() }
func (m *Mesh) NoFaces() int      { return m.faces.count() }

// VertexPosition returns the position of v, or the zero Vec3 and false if
// the handle is stale.
func (m *Mesh) VertexPosition(v VertexHandle) (Vec3, bool) {
	slot, ok := m.vertices.get(v)
	if !ok {
		return Vec3{}, false
	}
	return slot.position, true
}

// SetVertexPosition overwrites v's position in place. Used by collapse_edge
// (move the surviving vertex to the midpoint) and by affine-transform batch
// rewrites.
func (m *Mesh) SetVertexPosition(v VertexHandle, p Vec3) bool {
	slot, ok := m.vertices.get(v)
	if !ok {
		return false
	}
	slot.position = p
	return true
}
