package workflow

import (
	"fmt"
	"io"

	"github.com/specialistvlad/magflow/internal/catalog"
	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a Graph handed to an execution engine.
type Document struct {
	Name         string          `yaml:"name"`
	RunID        string          `yaml:"run_id"`
	Jobs         []JobDoc        `yaml:"jobs"`
	Dependencies []DependencyDoc `yaml:"dependencies"`
}

// JobDoc is one serialized job.
type JobDoc struct {
	ID             string            `yaml:"id"`
	Stage          string            `yaml:"stage"`
	Transformation string            `yaml:"transformation"`
	Sample         string            `yaml:"sample,omitempty"`
	Arguments      []string          `yaml:"arguments"`
	Inputs         []string          `yaml:"inputs"`
	Outputs        []OutputDoc       `yaml:"outputs"`
	Resources      catalog.Resources `yaml:"resources"`
}

// OutputDoc is one serialized job output.
type OutputDoc struct {
	Name     string `yaml:"name"`
	StageOut bool   `yaml:"stage_out"`
}

// DependencyDoc lists the parents of a job.
type DependencyDoc struct {
	Job     string   `yaml:"job"`
	Parents []string `yaml:"parents"`
}

// Document serializes the graph. Jobs keep construction order; jobs without
// parents get no dependency entry.
func (g *Graph) Document(name, runID string) Document {
	doc := Document{Name: name, RunID: runID}
	for _, j := range g.jobs {
		jd := JobDoc{
			ID:             j.ID,
			Stage:          j.Stage,
			Transformation: j.Transformation,
			Sample:         j.SampleID,
			Arguments:      append([]string{}, j.Args...),
			Inputs:         g.Names(j.Inputs),
			Resources:      j.Resources,
		}
		for _, h := range j.Outputs {
			a := g.artifacts.Get(h)
			jd.Outputs = append(jd.Outputs, OutputDoc{Name: a.Name, StageOut: a.StageOut})
		}
		doc.Jobs = append(doc.Jobs, jd)

		if parents := g.Parents(j.ID); len(parents) > 0 {
			doc.Dependencies = append(doc.Dependencies, DependencyDoc{Job: j.ID, Parents: parents})
		}
	}
	return doc
}

// WriteYAML encodes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
