package step

import (
	"errors"
	"fmt"
)

// Errors for Graph operations.
var (
	ErrDuplicateStep    = errors.New("step with this ID already exists")
	ErrCyclicDependency = errors.New("cyclic dependency detected")
	ErrMissingDep       = errors.New("step depends on nonexistent step")
)

// Graph represents a directed acyclic graph of steps. It tracks dependencies
// and provides a stable topological sort: independent steps keep their
// declaration order, so later manifest entries may assume earlier ones ran.
type Graph struct {
	steps     map[string]Step
	order     []string            // insertion order of step IDs
	dependsOn map[string][]string // step ID -> list of dependency IDs
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		steps:     make(map[string]Step),
		order:     make([]string, 0),
		dependsOn: make(map[string][]string),
	}
}

// Len returns the number of steps in the graph.
func (g *Graph) Len() int {
	return len(g.steps)
}

// Add adds a step to the graph.
// Returns ErrDuplicateStep if a step with the same ID already exists.
func (g *Graph) Add(s Step) error {
	id := s.ID().String()

	if _, exists := g.steps[id]; exists {
		return ErrDuplicateStep
	}

	g.steps[id] = s
	g.order = append(g.order, id)

	deps := s.DependsOn()
	depIDs := make([]string, len(deps))
	for i, dep := range deps {
		depIDs[i] = dep.String()
	}
	g.dependsOn[id] = depIDs

	return nil
}

// Get retrieves a step by ID.
func (g *Graph) Get(id ID) (Step, bool) {
	s, ok := g.steps[id.String()]
	return s, ok
}

// Validate checks that all dependencies exist.
func (g *Graph) Validate() error {
	for _, id := range g.order {
		for _, depID := range g.dependsOn[id] {
			if _, exists := g.steps[depID]; !exists {
				return fmt.Errorf("%w: step %q depends on %q", ErrMissingDep, id, depID)
			}
		}
	}
	return nil
}

// Sorted returns steps in dependency order. Ties are broken by declaration
// order, so the result is deterministic and matches the manifest sequence
// wherever dependencies allow.
// Returns ErrCyclicDependency if the graph contains a cycle.
func (g *Graph) Sorted() ([]Step, error) {
	// Kahn's algorithm, scanning candidates in insertion order.
	inDegree := make(map[string]int, len(g.steps))
	for _, id := range g.order {
		inDegree[id] = len(g.dependsOn[id])
	}

	dependedBy := make(map[string][]string, len(g.steps))
	for _, id := range g.order {
		for _, depID := range g.dependsOn[id] {
			dependedBy[depID] = append(dependedBy[depID], id)
		}
	}

	sorted := make([]Step, 0, len(g.steps))
	done := make(map[string]bool, len(g.steps))

	for len(sorted) < len(g.steps) {
		picked := ""
		for _, id := range g.order {
			if !done[id] && inDegree[id] == 0 {
				picked = id
				break
			}
		}
		if picked == "" {
			remaining := make([]string, 0)
			for _, id := range g.order {
				if !done[id] {
					remaining = append(remaining, id)
				}
			}
			return nil, fmt.Errorf("%w: involving %v", ErrCyclicDependency, remaining)
		}

		done[picked] = true
		sorted = append(sorted, g.steps[picked])
		for _, dependent := range dependedBy[picked] {
			inDegree[dependent]--
		}
	}

	return sorted, nil
}
