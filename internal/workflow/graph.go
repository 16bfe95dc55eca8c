package workflow

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/magflow/internal/artifact"
	"github.com/specialistvlad/magflow/internal/dag"
)

// Graph is a job graph under construction. It is not safe for concurrent
// mutation.
type Graph struct {
	artifacts *artifact.Registry
	jobs      []*Job
	byID      map[string]*Job
	adj       *dag.Graph
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		artifacts: artifact.NewRegistry(),
		byID:      make(map[string]*Job),
		adj:       dag.New(),
	}
}

// AddRaw registers a pre-existing input file.
func (g *Graph) AddRaw(name string) (artifact.Handle, error) {
	return g.artifacts.Raw(name)
}

// AddJob appends a job. Every input must already be registered and no
// output may reuse an existing name. All checks run before the graph is
// modified, so a rejected job leaves the graph untouched.
func (g *Graph) AddJob(spec JobSpec) (*Job, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("job for stage %q has no id", spec.Stage)
	}
	if _, exists := g.byID[spec.ID]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateJob, spec.ID)
	}

	for _, h := range spec.Inputs {
		if !g.artifacts.Valid(h) {
			return nil, fmt.Errorf("job %q: %w: handle %d", spec.ID, artifact.ErrMissingInput, h)
		}
	}
	pending := make(map[string]struct{}, len(spec.Outputs))
	for _, out := range spec.Outputs {
		if out.Name == "" {
			return nil, fmt.Errorf("job %q declares an output without a name", spec.ID)
		}
		_, exists := g.artifacts.Lookup(out.Name)
		_, repeated := pending[out.Name]
		if exists || repeated {
			return nil, fmt.Errorf("job %q: %w: %q", spec.ID, artifact.ErrNameCollision, out.Name)
		}
		pending[out.Name] = struct{}{}
	}

	job := &Job{
		ID:             spec.ID,
		Stage:          spec.Stage,
		Transformation: spec.Transformation,
		SampleID:       spec.SampleID,
		Args:           slices.Clone(spec.Args),
		Inputs:         slices.Clone(spec.Inputs),
		Outputs:        make([]artifact.Handle, 0, len(spec.Outputs)),
		Resources:      spec.Resources,
	}

	// Nothing below can fail once the checks above have passed.
	g.adj.AddNode(job.ID)
	for _, h := range job.Inputs {
		mustApply(g.artifacts.Consume(h, job.ID))
		if producer := g.artifacts.Get(h).Producer; producer != "" {
			mustApply(g.adj.AddEdge(producer, job.ID))
		}
	}
	for _, out := range spec.Outputs {
		h, err := g.artifacts.Produce(out.Name, job.ID, out.StageOut)
		mustApply(err)
		job.Outputs = append(job.Outputs, h)
	}

	g.jobs = append(g.jobs, job)
	g.byID[job.ID] = job
	return job, nil
}

// mustApply panics on an error that the checks in AddJob rule out.
func mustApply(err error) {
	if err != nil {
		panic(fmt.Sprintf("workflow: graph changed after validation: %v", err))
	}
}

// Jobs returns all jobs in construction order. Callers must not modify them.
func (g *Graph) Jobs() []*Job {
	return slices.Clone(g.jobs)
}

// Job finds a job by ID.
func (g *Graph) Job(id string) (*Job, bool) {
	j, ok := g.byID[id]
	return j, ok
}

// Len returns the number of jobs.
func (g *Graph) Len() int {
	return len(g.jobs)
}

// Artifact returns the artifact behind h.
func (g *Graph) Artifact(h artifact.Handle) artifact.Artifact {
	return g.artifacts.Get(h)
}

// Artifacts returns every artifact in registration order.
func (g *Graph) Artifacts() []artifact.Artifact {
	return g.artifacts.All()
}

// Lookup finds an artifact handle by name.
func (g *Graph) Lookup(name string) (artifact.Handle, bool) {
	return g.artifacts.Lookup(name)
}

// Names resolves handles to artifact names.
func (g *Graph) Names(hs []artifact.Handle) []string {
	names := make([]string, len(hs))
	for i, h := range hs {
		names[i] = g.artifacts.Name(h)
	}
	return names
}

// Parents returns the IDs of the jobs the given job depends on, in the order
// their outputs appear among its inputs.
func (g *Graph) Parents(id string) []string {
	deps, err := g.adj.Dependencies(id)
	if err != nil {
		return nil
	}
	return deps
}

// Children returns the IDs of the jobs depending on the given job.
func (g *Graph) Children(id string) []string {
	dents, err := g.adj.Dependents(id)
	if err != nil {
		return nil
	}
	return dents
}

// EdgeCount returns the number of job-to-job edges.
func (g *Graph) EdgeCount() int {
	return g.adj.EdgeCount()
}

// Order returns job IDs in an order where every job follows its parents.
func (g *Graph) Order() ([]string, error) {
	return g.adj.TopologicalOrder()
}
