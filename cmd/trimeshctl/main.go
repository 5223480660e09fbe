// Command trimeshctl is a batch driver that loads or builds a mesh, runs
// a sequence of quality/repair pipeline stages against it, and writes the
// result back out as OBJ. Adapted from pkg/engine.Engine's fresh-state-
// per-call contract and mu+generation guard, generalized from "evaluate
// Lisp source into a DesignGraph" to "sequence mesh pipeline stages",
// and from stdlib flag/log since nothing in the teacher's dependency tree
// is a CLI flags or logging library (§6.2 of the design notes).
package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/trimesh/pkg/builder"
	"github.com/chazu/trimesh/pkg/mesh"
	"github.com/chazu/trimesh/pkg/objio"
)

func main() {
	in := flag.String("in", "", "input OBJ path")
	template := flag.String("template", "", "build a primitive instead of reading -in: cube, triangle, square, plane, icosahedron, sphere[:depth], cylinder[:segments]")
	out := flag.String("out", "", "output OBJ path (required)")
	ops := flag.String("ops", "", "comma-separated pipeline stages: smooth[:factor], collapse-small[:threshold], flip-quality[:maxPasses], remove-lonely")
	flag.Parse()

	if *out == "" {
		log.Fatal("trimeshctl: -out is required")
	}
	if (*in == "") == (*template == "") {
		log.Fatal("trimeshctl: exactly one of -in or -template is required")
	}

	m, err := loadMesh(*in, *template)
	if err != nil {
		log.Fatalf("trimeshctl: %v", err)
	}

	stages, err := ParseStages(*ops)
	if err != nil {
		log.Fatalf("trimeshctl: %v", err)
	}

	runner := NewRunner()
	if err := runner.Run(m, stages); err != nil {
		log.Fatalf("trimeshctl: pipeline failed: %v", err)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("trimeshctl: creating output: %v", err)
	}
	defer outFile.Close()
	if err := objio.Export(outFile, m); err != nil {
		log.Fatalf("trimeshctl: exporting mesh: %v", err)
	}
	log.Printf("trimeshctl: wrote %s (%d vertices, %d faces)", *out, m.NoVertices(), m.NoFaces())
}

func loadMesh(in, template string) (*mesh.Mesh, error) {
	if template != "" {
		return buildTemplate(template)
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return objio.Import(f)
}

func buildTemplate(spec string) (*mesh.Mesh, error) {
	name, param, _ := strings.Cut(spec, ":")
	var b *builder.Builder
	switch name {
	case "cube":
		b = builder.Cube()
	case "triangle":
		b = builder.Triangle()
	case "square":
		b = builder.Square()
	case "plane":
		b = builder.Plane()
	case "icosahedron":
		b = builder.Icosahedron()
	case "sphere":
		depth := 1
		if param != "" {
			n, err := strconv.Atoi(param)
			if err != nil {
				return nil, err
			}
			depth = n
		}
		b = builder.Sphere(depth)
	case "cylinder":
		segments := 12
		if param != "" {
			n, err := strconv.Atoi(param)
			if err != nil {
				return nil, err
			}
			segments = n
		}
		b = builder.Cylinder(segments, 1, 1)
	default:
		return nil, &mesh.BuildError{Reason: "unknown template: " + name}
	}
	result, err := b.Build()
	if err != nil {
		return nil, err
	}
	return result.Mesh, nil
}
