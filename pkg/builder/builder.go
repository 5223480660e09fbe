// Package builder provides a fluent construction API over pkg/mesh,
// grounded on mesh_builder.rs's MeshBuilder (with_indices/with_positions/
// build chain), generalized with a provenance SourceID in the style of
// the teacher's fluent With* builders.
package builder

import (
	"github.com/chazu/trimesh/pkg/mesh"
	"github.com/google/uuid"
)

// Builder accumulates a mesh definition from raw buffers or a primitive
// template before Build terminates the chain.
type Builder struct {
	positions []float64
	indices   []uint32
	normals   []float64
	sourceID  uuid.UUID
	hasSource bool
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// WithPositions sets the flat [x0,y0,z0,x1,...] vertex position buffer.
// Required before Build.
func (b *Builder) WithPositions(positions []float64) *Builder {
	b.positions = positions
	return b
}

// WithIndices sets the flat [i0,i1,i2,...] face index buffer. If never
// called, Build assumes the positions already enumerate faces directly
// (vertex 3*x, 3*x+1, 3*x+2 form face x), matching with_indices's absence
// in mesh_builder.rs's build().
func (b *Builder) WithIndices(indices []uint32) *Builder {
	b.indices = indices
	return b
}

// WithNormals records an optional flat normal buffer for validation and
// provenance only: Mesh never stores custom per-vertex normals, it always
// derives them geometrically as an area-weighted average of incident face
// normals (Mesh.NormalsBuffer) — matching spec's own normals_buffer
// contract, which computes rather than replays a stored value. A caller
// supplying normals here is asserting "these are consistent with the
// geometry", not requesting they be used verbatim.
func (b *Builder) WithNormals(normals []float64) *Builder {
	b.normals = normals
	return b
}

// WithSourceID stamps the mesh's build provenance id explicitly, instead
// of Build generating a random one.
func (b *Builder) WithSourceID(id uuid.UUID) *Builder {
	b.sourceID = id
	b.hasSource = true
	return b
}

// Result is a built mesh plus the provenance id Build stamped or accepted
// for it.
type Result struct {
	Mesh     *mesh.Mesh
	SourceID uuid.UUID
}

// Build constructs the mesh. Returns *mesh.BuildError if no positions were
// specified, or if the specified buffers are internally inconsistent.
func (b *Builder) Build() (*Result, error) {
	if b.positions == nil {
		return nil, &mesh.BuildError{Reason: "the positions haven't been specified before calling build"}
	}
	if len(b.positions)%3 != 0 {
		return nil, &mesh.BuildError{Reason: "positions length must be a multiple of 3"}
	}
	if b.normals != nil && len(b.normals) != len(b.positions) {
		return nil, &mesh.BuildError{Reason: "normals length must match positions length"}
	}

	positions := make([]mesh.Vec3, len(b.positions)/3)
	for i := range positions {
		positions[i] = mesh.Vector3(b.positions[3*i], b.positions[3*i+1], b.positions[3*i+2])
	}

	indices := b.indices
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	m, err := mesh.New(indices, positions)
	if err != nil {
		return nil, err
	}

	id := b.sourceID
	if !b.hasSource {
		id = uuid.New()
	}
	return &Result{Mesh: m, SourceID: id}, nil
}
