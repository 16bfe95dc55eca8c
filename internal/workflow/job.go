package workflow

import (
	"fmt"

	"github.com/specialistvlad/magflow/internal/artifact"
	"github.com/specialistvlad/magflow/internal/catalog"
)

// Job is one concrete, parameterized invocation of a stage.
type Job struct {
	ID string
	// Stage is the stage label, e.g. "megahit" for the assembly slot.
	Stage          string
	Transformation string
	// SampleID is empty for run-wide jobs.
	SampleID  string
	Args      []string
	Inputs    []artifact.Handle
	Outputs   []artifact.Handle
	Resources catalog.Resources
}

// JobID names the job running stage for a sample. Run-wide jobs are named
// after their stage.
func JobID(stage, sampleID string) string {
	if sampleID == "" {
		return stage
	}
	return fmt.Sprintf("%s_%s", stage, sampleID)
}

// Output declares one file written by a job.
type Output struct {
	Name     string
	StageOut bool
}

// JobSpec is the request to add a job to a Graph.
type JobSpec struct {
	ID             string
	Stage          string
	Transformation string
	SampleID       string
	Args           []string
	Inputs         []artifact.Handle
	Outputs        []Output
	Resources      catalog.Resources
}
