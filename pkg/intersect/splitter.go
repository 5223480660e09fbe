package intersect

import (
	"math"

	"github.com/chazu/trimesh/pkg/mesh"
	"github.com/chazu/trimesh/pkg/spatial"
	"github.com/samber/lo"
)

// SplitAtIntersection is the mesh-mesh splitter, grounded on
// split_primitives_at_intersection.rs for the narrow-phase/vertex
// introduction/edge-realization steps, with the broad phase (step 1)
// built fresh against pkg/spatial since the original has none.
//
// maxFlipDepth bounds the flip-search retry step 4 describes ("retries
// with successively relaxed flip search depth"); exceeding it without
// realizing a segment's edge returns CannotRealizeIntersectionError.
const maxFlipDepth = 4

// Result bundles the component meshes produced for each side, per
// spec.md §4.5's "produces two lists of meshes" contract.
type Result struct {
	A []*mesh.Mesh
	B []*mesh.Mesh
}

type hit struct {
	point  mesh.Vec3
	fa, fb mesh.FaceHandle
}

// SplitAtIntersection computes every cross-mesh intersection between a
// and b and splits both along the resulting curve, returning the
// connected components of each.
func SplitAtIntersection(a, b *mesh.Mesh, opts Options) (*Result, error) {
	if opts.EpsilonFactor <= 0 {
		opts = DefaultOptions()
	}
	diag := math.Max(a.BoundingBoxDiagonal(), b.BoundingBoxDiagonal())
	eps := Epsilon(diag, opts.EpsilonFactor)

	idxA, err := spatial.Build(a, opts.EpsilonFactor)
	if err != nil {
		return nil, err
	}
	idxB, err := spatial.Build(b, opts.EpsilonFactor)
	if err != nil {
		return nil, err
	}
	pairs := lo.UniqBy(idxA.CandidatePairs(idxB), func(p spatial.Pair) [2]mesh.FaceHandle {
		return [2]mesh.FaceHandle{p.A, p.B}
	})

	var hits []hit
	for _, pair := range pairs {
		hits = append(hits, facePairIntersections(a, b, pair.A, pair.B, eps)...)
	}
	if len(hits) == 0 {
		return &Result{A: []*mesh.Mesh{cloneWhole(a)}, B: []*mesh.Mesh{cloneWhole(b)}}, nil
	}

	cacheA := newVertexCache(a, eps)
	cacheB := newVertexCache(b, eps)

	type introduced struct{ va, vb mesh.VertexHandle }
	segments := make([]introduced, 0, len(hits))
	for _, h := range hits {
		va, err := cacheA.introduce(h.point)
		if err != nil {
			return nil, err
		}
		vb, err := cacheB.introduce(h.point)
		if err != nil {
			return nil, err
		}
		segments = append(segments, introduced{va, vb})
	}

	cutEdgesA := make(map[mesh.HalfEdgeHandle]bool)
	cutEdgesB := make(map[mesh.HalfEdgeHandle]bool)
	for i := 0; i+1 < len(segments); i++ {
		s0, s1 := segments[i], segments[i+1]
		if s0.va == s1.va && s0.vb == s1.vb {
			continue
		}
		if s0.va != s1.va {
			if err := realizeEdge(a, s0.va, s1.va); err != nil {
				return nil, err
			}
			markCutEdge(a, cutEdgesA, s0.va, s1.va)
		}
		if s0.vb != s1.vb {
			if err := realizeEdge(b, s0.vb, s1.vb); err != nil {
				return nil, err
			}
			markCutEdge(b, cutEdgesB, s0.vb, s1.vb)
		}
	}

	aComponents, err := splitIntoComponents(a, cutEdgesA)
	if err != nil {
		return nil, err
	}
	bComponents, err := splitIntoComponents(b, cutEdgesB)
	if err != nil {
		return nil, err
	}
	return &Result{A: aComponents, B: bComponents}, nil
}

func markCutEdge(m *mesh.Mesh, set map[mesh.HalfEdgeHandle]bool, p, q mesh.VertexHandle) {
	if h, ok := m.HalfEdgeBetween(p, q); ok {
		set[h] = true
	}
	if h, ok := m.HalfEdgeBetween(q, p); ok {
		set[h] = true
	}
}

// facePairIntersections tests every edge of fa against face fb and every
// edge of fb against face fa, collecting crossing points — the narrow
// phase, equivalent to find_intersections_between_edge_face applied both
// directions for a single candidate pair.
func facePairIntersections(a, b *mesh.Mesh, fa, fb mesh.FaceHandle, eps float64) []hit {
	av0, av1, av2, ok := a.FaceVertices(fa)
	if !ok {
		return nil
	}
	bv0, bv1, bv2, ok := b.FaceVertices(fb)
	if !ok {
		return nil
	}
	pa0, _ := a.VertexPosition(av0)
	pa1, _ := a.VertexPosition(av1)
	pa2, _ := a.VertexPosition(av2)
	pb0, _ := b.VertexPosition(bv0)
	pb1, _ := b.VertexPosition(bv1)
	pb2, _ := b.VertexPosition(bv2)

	var out []hit
	for _, e := range [3][2]mesh.Vec3{{pa0, pa1}, {pa1, pa2}, {pa2, pa0}} {
		if res := FaceEdge(pb0, pb1, pb2, e[0], e[1], eps); res.Hit && !res.Coplanar {
			out = append(out, hit{point: res.Point, fa: fa, fb: fb})
		}
	}
	for _, e := range [3][2]mesh.Vec3{{pb0, pb1}, {pb1, pb2}, {pb2, pb0}} {
		if res := FaceEdge(pa0, pa1, pa2, e[0], e[1], eps); res.Hit && !res.Coplanar {
			out = append(out, hit{point: res.Point, fa: fa, fb: fb})
		}
	}
	return out
}

// vertexCache records, per quantized world position, the vertex handle
// already introduced on one mesh for that intersection point — so two
// candidate pairs that both produce (approximately) the same point reuse
// one vertex instead of stacking near-duplicates, the "classification
// tags... snap near-coincident results to existing vertices" requirement
// design note §9 calls out.
type vertexCache struct {
	m     *mesh.Mesh
	eps   float64
	byKey map[[3]int64]mesh.VertexHandle
}

func newVertexCache(m *mesh.Mesh, eps float64) *vertexCache {
	return &vertexCache{m: m, eps: eps, byKey: make(map[[3]int64]mesh.VertexHandle)}
}

func quantize(p mesh.Vec3, eps float64) [3]int64 {
	scale := 1e8
	if eps > 0 {
		scale = 1 / eps
	}
	return [3]int64{
		int64(math.Round(p.X * scale)),
		int64(math.Round(p.Y * scale)),
		int64(math.Round(p.Z * scale)),
	}
}

// introduce returns the vertex handle standing for p on c's mesh,
// reusing an existing vertex at p (AtVertex), inserting p into the edge it
// lies on (OnEdge, via SplitEdge) or into the face it lies inside (Inside,
// via SplitFace) — step 3's vertex-introduction dispatch.
func (c *vertexCache) introduce(p mesh.Vec3) (mesh.VertexHandle, error) {
	key := quantize(p, c.eps)
	if v, ok := c.byKey[key]; ok {
		return v, nil
	}
	f, res, ok := findOwningFace(c.m, p, c.eps)
	if !ok {
		return mesh.VertexHandle{}, &mesh.CannotRealizeIntersectionError{Reason: "intersection point does not lie on any live face"}
	}

	var v mesh.VertexHandle
	switch res.Class {
	case AtVertex:
		v0, v1, v2, _ := c.m.FaceVertices(f)
		verts := [3]mesh.VertexHandle{v0, v1, v2}
		v = verts[res.VertexIndex]
	case OnEdge:
		v = c.m.SplitEdge(faceEdgeHalfEdge(c.m, f, res.EdgeIndex), p)
	default:
		v = c.m.SplitFace(f, p)
	}
	c.byKey[key] = v
	return v, nil
}

// findOwningFace linearly scans m's live faces for one whose plane and
// barycentric extent contains p within eps. A linear scan is acceptable
// here: it runs once per distinct intersection point, not once per
// candidate face pair (that cost is already paid by pkg/spatial).
func findOwningFace(m *mesh.Mesh, p mesh.Vec3, eps float64) (mesh.FaceHandle, FacePointResult, bool) {
	for it := m.Faces(); it.Next(); {
		f := it.Handle()
		v0, v1, v2, ok := m.FaceVertices(f)
		if !ok {
			continue
		}
		p0, _ := m.VertexPosition(v0)
		p1, _ := m.VertexPosition(v1)
		p2, _ := m.VertexPosition(v2)
		if res := FacePoint(p0, p1, p2, p, eps); res.Hit {
			return f, res, true
		}
	}
	return mesh.FaceHandle{}, FacePointResult{}, false
}

// faceEdgeHalfEdge returns f's edgeIndex'th boundary half-edge, in the
// same order FacePoint numbers edges (0: v0->v1, 1: v1->v2, 2: v2->v0).
func faceEdgeHalfEdge(m *mesh.Mesh, f mesh.FaceHandle, edgeIndex int) mesh.HalfEdgeHandle {
	i := 0
	var result mesh.HalfEdgeHandle
	for it := m.FaceHalfEdges(f); it.Next(); i++ {
		if i == edgeIndex {
			result = it.Handle()
		}
	}
	return result
}

// realizeEdge ensures p and q are connected by an edge on m: step 4's edge
// insertion. It tries increasing flip-search depths first (cheap, adds no
// vertices) and only returns CannotRealizeIntersectionError once every
// depth up to maxFlipDepth has failed to connect them.
func realizeEdge(m *mesh.Mesh, p, q mesh.VertexHandle) error {
	if edgeExists(m, p, q) {
		return nil
	}
	for depth := 1; depth <= maxFlipDepth; depth++ {
		if tryFlipSearch(m, p, q, depth) {
			return nil
		}
	}
	return &mesh.CannotRealizeIntersectionError{
		Reason: "no flip sequence connects the intersection segment's endpoints within the search depth",
	}
}

func edgeExists(m *mesh.Mesh, p, q mesh.VertexHandle) bool {
	if _, ok := m.HalfEdgeBetween(p, q); ok {
		return true
	}
	_, ok := m.HalfEdgeBetween(q, p)
	return ok
}

// tryFlipSearch greedily flips, for up to depth rounds, any edge incident
// to p whose flip would extend p's fan to include q, matching the
// "successively relaxed... depth" retry as a depth-bounded expansion
// rather than exhaustive backtracking (backtracking would violate §5's
// synchronous, no-internal-timer resource model on anything but tiny
// meshes).
func tryFlipSearch(m *mesh.Mesh, p, q mesh.VertexHandle, depth int) bool {
	for i := 0; i < depth; i++ {
		progressed := false
		for it := m.VertexHalfEdges(p); it.Next(); {
			h := m.WalkerFromHalfEdge(it.Handle()).NextID()
			if !wouldConnect(m, h, q) {
				continue
			}
			if err := m.FlipEdge(h); err == nil {
				progressed = true
				if edgeExists(m, p, q) {
					return true
				}
			}
		}
		if !progressed {
			break
		}
	}
	return edgeExists(m, p, q)
}

// wouldConnect reports whether h's two opposite vertices (the third
// vertex of each of its incident faces) include q, i.e. flipping h would
// make q adjacent to h's fan.
func wouldConnect(m *mesh.Mesh, h mesh.HalfEdgeHandle, q mesh.VertexHandle) bool {
	w := m.WalkerFromHalfEdge(h)
	if w.FaceID().IsNil() {
		return false
	}
	wn := w
	wn.AsNext()
	v3 := wn.VertexID()
	if v3 == q {
		return true
	}
	wt := m.WalkerFromHalfEdge(h)
	wt.AsTwin()
	if wt.FaceID().IsNil() {
		return false
	}
	wtn := wt
	wtn.AsNext()
	return wtn.VertexID() == q
}

// splitIntoComponents flood-fills m's faces across every edge not marked
// as part of the intersection curve, cloning each resulting component —
// step 5.
func splitIntoComponents(m *mesh.Mesh, cutEdges map[mesh.HalfEdgeHandle]bool) ([]*mesh.Mesh, error) {
	visited := make(map[mesh.FaceHandle]bool)
	var components []*mesh.Mesh
	for it := m.Faces(); it.Next(); {
		start := it.Handle()
		if visited[start] {
			continue
		}
		var faces []mesh.FaceHandle
		queue := []mesh.FaceHandle{start}
		visited[start] = true
		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			faces = append(faces, f)
			for fit := m.FaceHalfEdges(f); fit.Next(); {
				h := fit.Handle()
				if cutEdges[h] {
					continue
				}
				w := m.WalkerFromHalfEdge(h)
				twin := w.TwinID()
				if cutEdges[twin] {
					continue
				}
				wt := m.WalkerFromHalfEdge(twin)
				nf := wt.FaceID()
				if nf.IsNil() || visited[nf] {
					continue
				}
				visited[nf] = true
				queue = append(queue, nf)
			}
		}
		comp, err := m.CloneSubset(faces)
		if err != nil {
			return nil, err
		}
		components = append(components, comp)
	}
	return components, nil
}

func cloneWhole(m *mesh.Mesh) *mesh.Mesh {
	var faces []mesh.FaceHandle
	for it := m.Faces(); it.Next(); {
		faces = append(faces, it.Handle())
	}
	comp, _ := m.CloneSubset(faces)
	return comp
}
