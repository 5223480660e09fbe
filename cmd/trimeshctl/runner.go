package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/trimesh/pkg/mesh"
)

// Stage is one pipeline operation to run against a mesh in sequence,
// following a uniform "name[:param]" grammar.
type Stage struct {
	Name      string
	Factor    float64
	MaxPasses int
}

// ParseStages parses a comma-separated -ops flag value into an ordered
// Stage list.
func ParseStages(spec string) ([]Stage, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var stages []Stage
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		name, param, hasParam := strings.Cut(token, ":")
		s := Stage{Name: name}
		if hasParam {
			switch name {
			case "smooth", "collapse-small":
				f, err := strconv.ParseFloat(param, 64)
				if err != nil {
					return nil, fmt.Errorf("stage %q: %w", token, err)
				}
				s.Factor = f
			case "flip-quality":
				n, err := strconv.Atoi(param)
				if err != nil {
					return nil, fmt.Errorf("stage %q: %w", token, err)
				}
				s.MaxPasses = n
			default:
				return nil, fmt.Errorf("stage %q does not take a parameter", token)
			}
		}
		stages = append(stages, s)
	}
	return stages, nil
}

// Runner sequences pipeline stages against a mesh. Adapted from
// pkg/engine.Engine's mu+generation guard: each Run call claims the next
// generation under lock before running its stages, so two overlapping Run
// calls against the same Runner can never interleave their stage
// sequencing — the same "fresh, serialized evaluation" contract Evaluate
// gave each zygomys sandbox run, generalized from "one Lisp eval" to "one
// pipeline run".
type Runner struct {
	mu         sync.Mutex
	generation uint64
}

// NewRunner returns a ready Runner.
func NewRunner() *Runner { return &Runner{} }

// Run applies every stage to m in order, mutating it in place, and returns
// the first stage error encountered, wrapped with its position and name.
func (r *Runner) Run(m *mesh.Mesh, stages []Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++

	for i, s := range stages {
		if err := r.runStage(m, s); err != nil {
			return fmt.Errorf("stage %d (%s): %w", i, s.Name, err)
		}
	}
	return nil
}

func (r *Runner) runStage(m *mesh.Mesh, s Stage) error {
	switch s.Name {
	case "smooth":
		factor := s.Factor
		if factor == 0 {
			factor = 0.5
		}
		m.SmoothVertices(factor)
	case "collapse-small":
		m.CollapseSmallFaces(s.Factor)
	case "flip-quality":
		opts := mesh.DefaultQualityOptions()
		if s.MaxPasses > 0 {
			opts = opts.WithMaxPasses(s.MaxPasses)
		}
		m.FlipEdgesForQuality(opts)
	case "remove-lonely":
		m.RemoveLonelyPrimitives()
	default:
		return fmt.Errorf("unknown stage %q", s.Name)
	}
	return nil
}
