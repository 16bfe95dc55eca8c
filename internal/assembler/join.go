package assembler

import (
	"github.com/specialistvlad/magflow/internal/artifact"
	"github.com/specialistvlad/magflow/internal/catalog"
	"github.com/specialistvlad/magflow/internal/workflow"
)

// join attaches the single run-wide report job reading every QC artifact,
// in the order given.
func join(g *workflow.Graph, c *catalog.Catalog, qc []artifact.Handle) (*workflow.Job, error) {
	if len(qc) == 0 {
		return nil, ErrEmptyAggregation
	}

	inst, err := c.Instance(catalog.StageMultiQC, "")
	if err != nil {
		return nil, err
	}
	rendered, err := inst.Render(catalog.Binding{})
	if err != nil {
		return nil, err
	}

	spec := workflow.JobSpec{
		ID:             workflow.JobID(inst.Stage, ""),
		Stage:          inst.Stage,
		Transformation: inst.Transformation,
		Args:           rendered.Args,
		Inputs:         qc,
		Resources:      inst.Resources,
	}
	for _, o := range rendered.Outputs {
		spec.Outputs = append(spec.Outputs, workflow.Output{Name: o.Name, StageOut: o.StageOut})
	}
	return g.AddJob(spec)
}
