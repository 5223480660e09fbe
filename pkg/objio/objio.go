// Package objio is the textual OBJ external-collaborator format, grounded
// on export.rs's vertex-handle-ordered positions_buffer/indices_buffer and
// io.rs's Mesh::new index/position contract, run through a minimal Wavefront
// OBJ encoder/decoder since the original crate has no file-format layer at
// all (it only exposes flat buffers for a caller's own renderer to consume).
package objio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/trimesh/pkg/mesh"
	"github.com/pkg/errors"
)

// Export writes m to w as a Wavefront OBJ: one "v x y z" line per vertex
// in vertex-handle (arena-slot) order, then one "f i j k" line per face in
// face-handle order with 1-based indices into that vertex ordering —
// exactly the ordering PositionsBuffer/IndicesBuffer already establish.
func Export(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	order := make(map[mesh.VertexHandle]int, m.NoVertices())
	i := 1
	for it := m.Vertices(); it.Next(); {
		v := it.Handle()
		p, _ := m.VertexPosition(v)
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
		order[v] = i
		i++
	}
	for it := m.Faces(); it.Next(); {
		v0, v1, v2, ok := m.FaceVertices(it.Handle())
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", order[v0], order[v1], order[v2]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Import reads a Wavefront OBJ from r, keeping only "v" and "f" records
// (texture/normal indices on a face line, if present, are discarded) and
// builds a Mesh from the resulting flat buffers via mesh.New. Malformed
// numeric fields are reported with the offending line number via
// errors.Wrap, since this is the one place in this module that parses
// untrusted external input rather than programmatically constructed data.
func Import(r io.Reader) (*mesh.Mesh, error) {
	var positions []mesh.Vec3
	var indices []uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVertex(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "objio: line %d", lineNo)
			}
			positions = append(positions, p)
		case "f":
			face, err := parseFace(fields[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "objio: line %d", lineNo)
			}
			indices = append(indices, face...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "objio: reading input")
	}
	return mesh.New(indices, positions)
}

func parseVertex(fields []string) (mesh.Vec3, error) {
	if len(fields) < 3 {
		return mesh.Vec3{}, errors.New("v record needs 3 coordinates")
	}
	coords := make([]float64, 3)
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return mesh.Vec3{}, errors.Wrapf(err, "parsing coordinate %d", i)
		}
		coords[i] = f
	}
	return mesh.Vector3(coords[0], coords[1], coords[2]), nil
}

// parseFace accepts the plain "i" form as well as OBJ's composite
// "i/t", "i/t/n" and "i//n" forms, using only the vertex-index component,
// and triangulates an n-gon face record as a fan from its first vertex —
// OBJ allows arbitrary polygon faces even though this module's Mesh only
// ever stores triangles.
func parseFace(fields []string) ([]uint32, error) {
	if len(fields) < 3 {
		return nil, errors.New("f record needs at least 3 vertices")
	}
	verts := make([]uint32, len(fields))
	for i, field := range fields {
		idxField := strings.SplitN(field, "/", 2)[0]
		n, err := strconv.Atoi(idxField)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing face vertex %d", i)
		}
		if n <= 0 {
			return nil, errors.Errorf("face vertex index %d must be 1-based and positive", n)
		}
		verts[i] = uint32(n - 1)
	}
	var out []uint32
	for i := 1; i+1 < len(verts); i++ {
		out = append(out, verts[0], verts[i], verts[i+1])
	}
	return out, nil
}
