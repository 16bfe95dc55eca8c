package workflow

import (
	"fmt"

	"github.com/specialistvlad/magflow/internal/artifact"
)

// Remap translates handles of a merged graph into handles of the graph it
// was merged into.
type Remap []artifact.Handle

// Handle returns the handle h maps to.
func (r Remap) Handle(h artifact.Handle) artifact.Handle {
	return r[h]
}

// Handles maps a slice of handles.
func (r Remap) Handles(hs []artifact.Handle) []artifact.Handle {
	out := make([]artifact.Handle, len(hs))
	for i, h := range hs {
		out[i] = r[h]
	}
	return out
}

// Merge replays other into g: its raw inputs first, then its jobs in
// construction order, through the same checks as AddRaw and AddJob. On error
// g may hold part of other and must be discarded.
func (g *Graph) Merge(other *Graph) (Remap, error) {
	remap := make(Remap, other.artifacts.Len())
	for i := range remap {
		remap[i] = -1
	}

	for i, a := range other.artifacts.All() {
		if !a.Raw() {
			continue
		}
		h, err := g.AddRaw(a.Name)
		if err != nil {
			return nil, fmt.Errorf("merging raw input: %w", err)
		}
		remap[i] = h
	}

	for _, j := range other.jobs {
		spec := JobSpec{
			ID:             j.ID,
			Stage:          j.Stage,
			Transformation: j.Transformation,
			SampleID:       j.SampleID,
			Args:           j.Args,
			Inputs:         remap.Handles(j.Inputs),
			Resources:      j.Resources,
		}
		for _, h := range j.Outputs {
			a := other.artifacts.Get(h)
			spec.Outputs = append(spec.Outputs, Output{Name: a.Name, StageOut: a.StageOut})
		}

		added, err := g.AddJob(spec)
		if err != nil {
			return nil, fmt.Errorf("merging job: %w", err)
		}
		for k, h := range j.Outputs {
			remap[h] = added.Outputs[k]
		}
	}

	return remap, nil
}
