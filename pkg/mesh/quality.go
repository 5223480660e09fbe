package mesh

import "math"

// Quality and repair operators, composed entirely out of the local editors
// in edit.go, grounded on quality.rs's smooth_vertices / collapse_small_faces
// / flip_edges / remove_lonely_primitives.

// QualityOptions bounds the iterative operators below, constructed via
// DefaultQualityOptions and the With* chain in the teacher's builder-chain
// idiom (mesh_builder.rs's with_indices/with_positions,
// pkg/kernel/sdfx's fluent With* methods).
type QualityOptions struct {
	MaxPasses int
}

// DefaultQualityOptions bounds FlipEdgesForQuality at 64 passes
// (CollapseSmallFaces takes no options), the resolution SPEC_FULL.md §9 records for the open
// question of whether quality passes should run to a fixpoint: bounded by
// an explicit count rather than wall-clock or an unguarded loop.
func DefaultQualityOptions() QualityOptions {
	return QualityOptions{MaxPasses: 64}
}

func (o QualityOptions) WithMaxPasses(n int) QualityOptions {
	o.MaxPasses = n
	return o
}

// SmoothVertices moves every vertex toward the centroid of its one-ring
// neighbors by factor (0 leaves the mesh unchanged, 1 snaps directly to
// the centroid), computing every new position from the pre-smoothing mesh
// so the pass is order-independent, matching smooth_vertices.
func (m *Mesh) SmoothVertices(factor float64) {
	type move struct {
		v   VertexHandle
		pos Vec3
	}
	moves := make([]move, 0, m.NoVertices())
	for it := m.Vertices(); it.Next(); {
		v := it.Handle()
		var sum Vec3
		n := 0
		for vit := m.VertexHalfEdges(v); vit.Next(); {
			w := m.WalkerFromHalfEdge(vit.Handle())
			p, _ := m.VertexPosition(w.VertexID())
			sum = sum.Add(p)
			n++
		}
		if n == 0 {
			continue
		}
		centroid := sum.Scale(1 / float64(n))
		cur, _ := m.VertexPosition(v)
		moves = append(moves, move{v, cur.Add(centroid.Sub(cur).Scale(factor))})
	}
	for _, mv := range moves {
		m.SetVertexPosition(mv.v, mv.pos)
	}
	m.touch()
}

// CollapseSmallFaces repeatedly collapses the shortest edge of any face
// whose area is below threshold, skipping (never retrying) a face whose
// collapse would violate the link condition, matching collapse_small_faces.
// Returns the number of collapses performed.
func (m *Mesh) CollapseSmallFaces(threshold float64) int {
	collapsed := 0
	skip := make(map[FaceHandle]bool)
	for {
		progressed := false
		for _, f := range m.FacesBelowArea(threshold) {
			if skip[f] {
				continue
			}
			h := m.shortestEdgeOf(f)
			if h.IsNil() || !m.LinkConditionHolds(h) {
				skip[f] = true
				continue
			}
			m.CollapseEdge(h)
			collapsed++
			progressed = true
			break
		}
		if !progressed {
			break
		}
	}
	return collapsed
}

// shortestEdgeOf returns the half-edge of f's three boundary edges with
// the smallest EdgeLength.
func (m *Mesh) shortestEdgeOf(f FaceHandle) HalfEdgeHandle {
	var best HalfEdgeHandle
	bestLen := math.Inf(1)
	for it := m.FaceHalfEdges(f); it.Next(); {
		h := it.Handle()
		if l := m.EdgeLength(h); l < bestLen {
			bestLen = l
			best = h
		}
	}
	return best
}

// FlipEdgesForQuality iterates interior edges, flipping any whose two
// opposite angles sum to more than π (the standard Delaunay in-circle
// surrogate) and whose flip would not duplicate an existing edge, stopping
// once a pass produces no flips or opts.MaxPasses elapses — the bounded
// alternative to flip_edges' fixpoint loop that SPEC_FULL.md §9 resolves
// the original's open question with. Returns the total number of flips.
func (m *Mesh) FlipEdgesForQuality(opts QualityOptions) int {
	if opts.MaxPasses <= 0 {
		opts = DefaultQualityOptions()
	}
	flips := 0
	for pass := 0; pass < opts.MaxPasses; pass++ {
		progressed := false
		var candidates []HalfEdgeHandle
		for it := m.Edges(); it.Next(); {
			candidates = append(candidates, it.Handle())
		}
		for _, h := range candidates {
			if !m.shouldFlip(h) {
				continue
			}
			if err := m.FlipEdge(h); err == nil {
				flips++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return flips
}

// shouldFlip reports whether h is an interior edge whose quad's opposite
// angles sum to more than π, following flip_edges' should_flip /
// flatness heuristic.
func (m *Mesh) shouldFlip(h HalfEdgeHandle) bool {
	w := m.WalkerFromHalfEdge(h)
	face := w.FaceID()
	if face.IsNil() {
		return false
	}
	v0 := w.VertexID()
	wn := w
	wn.AsNext()
	v3 := wn.VertexID()

	wt := m.WalkerFromHalfEdge(h)
	wt.AsTwin()
	twinFace := wt.FaceID()
	if twinFace.IsNil() {
		return false
	}
	v1 := wt.VertexID()
	wtn := wt
	wtn.AsNext()
	v2 := wtn.VertexID()

	p0, _ := m.VertexPosition(v0)
	p1, _ := m.VertexPosition(v1)
	p2, _ := m.VertexPosition(v2)
	p3, _ := m.VertexPosition(v3)

	return angleAt(p3, p0, p1)+angleAt(p2, p1, p0) > math.Pi
}

// angleAt returns the angle at vertex p subtended by a and b.
func angleAt(p, a, b Vec3) float64 {
	v1 := a.Sub(p)
	v2 := b.Sub(p)
	l1, l2 := v1.Length(), v2.Length()
	if l1 == 0 || l2 == 0 {
		return 0
	}
	cosT := v1.Dot(v2) / (l1 * l2)
	if cosT > 1 {
		cosT = 1
	} else if cosT < -1 {
		cosT = -1
	}
	return math.Acos(cosT)
}

// RemoveLonelyPrimitives frees any vertex with no outgoing half-edge and
// any half-edge pair left faceless on both sides, matching
// remove_lonely_primitives. Returns the number of vertices removed.
func (m *Mesh) RemoveLonelyPrimitives() int {
	var lonely []VertexHandle
	for it := m.Vertices(); it.Next(); {
		v := it.Handle()
		if slot, ok := m.vertices.get(v); ok && slot.halfedge.IsNil() {
			lonely = append(lonely, v)
		}
	}
	for _, v := range lonely {
		m.RemoveVertex(v)
	}
	m.removeLonelyEdges()
	m.touch()
	return len(lonely)
}
