package builder

import "math"

// Primitive templates. Cube/Triangle/Square/Plane port mesh_builder.rs's
// hardcoded coordinate/index tables verbatim (the original constructs
// these as literal Vec<f64>/Vec<u32> tables, not a parametric formula, so
// this port keeps the same literal tables). Icosahedron/Cylinder/Sphere
// are new: the original only mentions them in with_indices's doc comment
// ("box, icosahedron, cylinder, ..") without ever defining them.

// Cube creates a cube centered on the origin with side length 2.
// Equivalent to mesh_builder.rs's cube(): 8 vertices, 12 faces.
func Cube() *Builder {
	return New().
		WithPositions([]float64{
			1.0, -1.0, -1.0, 1.0, -1.0, 1.0, -1.0, -1.0, 1.0, -1.0, -1.0, -1.0,
			1.0, 1.0, -1.0, 1.0, 1.0, 1.0, -1.0, 1.0, 1.0, -1.0, 1.0, -1.0,
		}).
		WithIndices([]uint32{
			0, 1, 2, 0, 2, 3, 4, 7, 6, 4, 6, 5, 0, 4, 5, 0, 5, 1,
			1, 5, 6, 1, 6, 2, 2, 6, 7, 2, 7, 3, 4, 0, 3, 4, 3, 7,
		})
}

// Triangle creates a single triangle in x=[-3,3], y=[-1,2], z=0, covering
// a square in x=[-1,1], y=[-1,1], z=0. Equivalent to mesh_builder.rs's
// triangle().
func Triangle() *Builder {
	return New().WithPositions([]float64{-3.0, -1.0, 0.0, 3.0, -1.0, 0.0, 0.0, 2.0, 0.0})
}

// Square creates a square in x=[-1,1], y=[-1,1], z=0 from two triangles.
// Equivalent to mesh_builder.rs's square().
func Square() *Builder {
	return New().
		WithIndices([]uint32{0, 1, 2, 2, 1, 3}).
		WithPositions([]float64{
			-1.0, -1.0, 0.0, 1.0, -1.0, 0.0, -1.0, 1.0, 0.0, 1.0, 1.0, 0.0,
		})
}

// Plane creates a square in x=[-1,1], z=[-1,1], y=0. Equivalent to
// mesh_builder.rs's plane().
func Plane() *Builder {
	return New().
		WithIndices([]uint32{0, 2, 1, 0, 3, 2}).
		WithPositions([]float64{
			-1.0, 0.0, -1.0, 1.0, 0.0, -1.0, 1.0, 0.0, 1.0, -1.0, 0.0, 1.0,
		})
}

// Icosahedron creates a regular icosahedron inscribed in the unit sphere:
// 12 vertices, 20 faces, every vertex of degree 5 — new code, since the
// original never implements the shape its own doc comment names.
func Icosahedron() *Builder {
	positions, indices := icosahedronData()
	return New().WithPositions(positions).WithIndices(indices)
}

// icosahedronData returns the canonical golden-ratio icosahedron
// construction (12 vertices at the cyclic permutations of
// (0, +-1, +-phi)), normalized to the unit sphere.
func icosahedronData() ([]float64, []uint32) {
	t := (1.0 + math.Sqrt(5.0)) / 2.0
	raw := [][3]float64{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	positions := make([]float64, 0, 36)
	for _, v := range raw {
		l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		positions = append(positions, v[0]/l, v[1]/l, v[2]/l)
	}
	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return positions, indices
}

// Cylinder creates a capped cylinder of the given radius and half-height
// (spanning y=[-halfHeight,halfHeight]) with segments sides, each
// rectangular side face split into two triangles and each end closed with
// a triangle fan to a center vertex. segments is clamped to a minimum of
// 3. New code: the original never implements this primitive either.
func Cylinder(segments int, radius, halfHeight float64) *Builder {
	if segments < 3 {
		segments = 3
	}
	var positions []float64
	var indices []uint32

	top := make([]uint32, segments)
	bottom := make([]uint32, segments)
	idx := uint32(0)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		x := radius * math.Cos(angle)
		z := radius * math.Sin(angle)
		positions = append(positions, x, halfHeight, z)
		top[i] = idx
		idx++
	}
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		x := radius * math.Cos(angle)
		z := radius * math.Sin(angle)
		positions = append(positions, x, -halfHeight, z)
		bottom[i] = idx
		idx++
	}
	topCenter := idx
	positions = append(positions, 0, halfHeight, 0)
	idx++
	bottomCenter := idx
	positions = append(positions, 0, -halfHeight, 0)

	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		indices = append(indices, top[i], bottom[j], bottom[i])
		indices = append(indices, top[i], top[j], bottom[j])
		indices = append(indices, topCenter, top[j], top[i])
		indices = append(indices, bottomCenter, bottom[i], bottom[j])
	}
	return New().WithPositions(positions).WithIndices(indices)
}

// Sphere subdivides an icosahedron depth times (each pass replaces every
// triangle with four by splitting at edge midpoints, re-projected onto
// the unit sphere), producing an icosphere. depth <= 0 returns the bare
// icosahedron. New code, same reasoning as Icosahedron/Cylinder.
func Sphere(depth int) *Builder {
	positions, indices := icosahedronData()
	for pass := 0; pass < depth; pass++ {
		positions, indices = subdivide(positions, indices)
	}
	return New().WithPositions(positions).WithIndices(indices)
}

func subdivide(positions []float64, indices []uint32) ([]float64, []uint32) {
	midpoints := make(map[[2]uint32]uint32)
	vertexAt := func(i uint32) [3]float64 {
		return [3]float64{positions[3*i], positions[3*i+1], positions[3*i+2]}
	}
	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{a, b}
		if a > b {
			key = [2]uint32{b, a}
		}
		if v, ok := midpoints[key]; ok {
			return v
		}
		pa, pb := vertexAt(a), vertexAt(b)
		mx, my, mz := (pa[0]+pb[0])/2, (pa[1]+pb[1])/2, (pa[2]+pb[2])/2
		l := math.Sqrt(mx*mx + my*my + mz*mz)
		positions = append(positions, mx/l, my/l, mz/l)
		v := uint32(len(positions)/3 - 1)
		midpoints[key] = v
		return v
	}

	var out []uint32
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		ab := midpoint(a, b)
		bc := midpoint(b, c)
		ca := midpoint(c, a)
		out = append(out,
			a, ab, ca,
			b, bc, ab,
			c, ca, bc,
			ab, bc, ca,
		)
	}
	return positions, out
}
