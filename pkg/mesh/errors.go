package mesh

import "fmt"

// Error kinds the core distinguishes, grounded on the teacher's idiom of
// small structs implementing error (pkg/engine's EvalError, pkg/graph's
// ValidationError) rather than sentinel strings, so callers can recover
// the offending handle(s) via a type assertion.

// BuildError reports a problem assembling a mesh from raw indices and
// positions.
type BuildError struct {
	Reason string
}

func (e *BuildError) Error() string { return fmt.Sprintf("build mesh: %s", e.Reason) }

// InvalidHandleError reports a handle that addresses a deleted or
// never-allocated slot, or a slot since reused under a newer generation.
type InvalidHandleError struct {
	Kind   string
	Handle fmt.Stringer
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("invalid %s handle: %s", e.Kind, e.Handle)
}

// LinkConditionViolatedError reports that collapse_edge would merge two
// previously distinct vertex fans into a non-manifold bowtie.
type LinkConditionViolatedError struct {
	Edge HalfEdgeHandle
}

func (e *LinkConditionViolatedError) Error() string {
	return fmt.Sprintf("collapse of edge %s violates the link condition", e.Edge)
}

// EdgeAlreadyExistsError reports that flip_edge would create a duplicate
// edge between the quad's opposite vertices.
type EdgeAlreadyExistsError struct {
	From, To VertexHandle
}

func (e *EdgeAlreadyExistsError) Error() string {
	return fmt.Sprintf("edge between %s and %s already exists", e.From, e.To)
}

// BoundaryOperationNotPermittedError reports an operator invoked on a
// boundary half-edge that requires an interior one.
type BoundaryOperationNotPermittedError struct {
	Edge HalfEdgeHandle
	Op   string
}

func (e *BoundaryOperationNotPermittedError) Error() string {
	return fmt.Sprintf("%s not permitted on boundary edge %s", e.Op, e.Edge)
}

// DegenerateGeometryError reports a zero-area face or zero-length edge
// where the operation requires non-degenerate geometry.
type DegenerateGeometryError struct {
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry: %s", e.Reason)
}

// CannotRealizeIntersectionError reports that the mesh-mesh splitter could
// not embed an intersection segment as a sequence of edges: its bounded
// flip search failed to connect the segment's endpoints. There is no
// split-based fallback after the flip search.
type CannotRealizeIntersectionError struct {
	Reason string
}

func (e *CannotRealizeIntersectionError) Error() string {
	return fmt.Sprintf("cannot realize intersection: %s", e.Reason)
}

// MergeIncompatibleError reports that merging two meshes would violate
// connectivity invariants after overlap resolution.
type MergeIncompatibleError struct {
	Reason string
}

func (e *MergeIncompatibleError) Error() string {
	return fmt.Sprintf("merge incompatible: %s", e.Reason)
}
