package workflow

import (
	"fmt"
	"slices"
	"strings"
)

// Validate re-checks the structural invariants of the graph: single
// producers, inputs registered before their consumer, unique output names
// and an acyclic adjacency. AddJob already enforces these, so a failure
// points at a bug in whatever built the graph.
func (g *Graph) Validate() error {
	var errs []string

	position := make(map[string]int, len(g.jobs))
	for i, j := range g.jobs {
		position[j.ID] = i
	}

	producedBy := make(map[string][]string)
	for i, j := range g.jobs {
		for _, h := range j.Inputs {
			a := g.artifacts.Get(h)
			if !a.Raw() {
				if p, ok := position[a.Producer]; !ok || p >= i {
					errs = append(errs, fmt.Sprintf("job '%s' consumes '%s' before its producer '%s'", j.ID, a.Name, a.Producer))
				}
			}
			if !slices.Contains(a.Consumers, j.ID) {
				errs = append(errs, fmt.Sprintf("job '%s' is not recorded as a consumer of '%s'", j.ID, a.Name))
			}
		}
		for _, h := range j.Outputs {
			a := g.artifacts.Get(h)
			producedBy[a.Name] = append(producedBy[a.Name], j.ID)
			if a.Producer != j.ID {
				errs = append(errs, fmt.Sprintf("job '%s' lists output '%s' owned by '%s'", j.ID, a.Name, a.Producer))
			}
		}
	}

	seen := make(map[string]bool)
	for _, a := range g.artifacts.All() {
		if seen[a.Name] {
			errs = append(errs, fmt.Sprintf("artifact name '%s' registered twice", a.Name))
		}
		seen[a.Name] = true

		producers := producedBy[a.Name]
		switch {
		case len(producers) > 1:
			errs = append(errs, fmt.Sprintf("artifact '%s' produced by %d jobs: %s", a.Name, len(producers), strings.Join(producers, ", ")))
		case a.Raw() && len(producers) > 0:
			errs = append(errs, fmt.Sprintf("raw input '%s' is produced by '%s'", a.Name, producers[0]))
		case !a.Raw() && len(producers) == 0:
			errs = append(errs, fmt.Sprintf("artifact '%s' names producer '%s' that does not write it", a.Name, a.Producer))
		}
	}

	if err := g.adj.DetectCycles(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrInvariantViolation, strings.Join(errs, "\n- "))
	}
	return nil
}
