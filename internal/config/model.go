package config

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/magflow/internal/sample"
)

// AssemblerKind selects the tool filling the assembly slot.
type AssemblerKind int

const (
	Megahit AssemblerKind = iota
	Spades
)

// ParseAssemblerKind maps a user supplied name to an AssemblerKind. Only
// "megahit" and "spades" are accepted, in any case. Callers wanting the
// default leave the value unset instead of passing an empty string.
func ParseAssemblerKind(s string) (AssemblerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "megahit":
		return Megahit, nil
	case "spades":
		return Spades, nil
	default:
		return Megahit, fmt.Errorf("unknown assembler %q: must be 'megahit' or 'spades'", s)
	}
}

// String returns the stage name of the assembler.
func (k AssemblerKind) String() string {
	switch k {
	case Megahit:
		return "megahit"
	case Spades:
		return "spades"
	default:
		return fmt.Sprintf("AssemblerKind(%d)", int(k))
	}
}

// Pipeline is the set of switches that shape the job graph. Nothing else
// affects which jobs exist or how they are wired.
type Pipeline struct {
	Assembler      AssemblerKind
	SkipFastQC     bool
	SkipBinning    bool
	SkipTaxonomy   bool
	SkipAnnotation bool

	// Optional reference database locations. They only ever become job
	// arguments, never graph inputs.
	CheckM2DB string
	GTDBTkDB  string
}

// DefaultPipeline runs every stage with MEGAHIT.
func DefaultPipeline() Pipeline {
	return Pipeline{Assembler: Megahit}
}

// RunsTaxonomy reports whether the taxonomy stage is part of the graph.
// Taxonomy depends on bins, so skipping binning also skips it.
func (p Pipeline) RunsTaxonomy() bool {
	return !p.SkipBinning && !p.SkipTaxonomy
}

// RunsAnnotation reports whether the annotation stage is part of the graph.
func (p Pipeline) RunsAnnotation() bool {
	return !p.SkipBinning && !p.SkipAnnotation
}

// Model is everything a Loader extracts from configuration files.
type Model struct {
	Pipeline Pipeline
	// PipelineSet is true when a file declared a pipeline block.
	PipelineSet bool
	Samples     []sample.RawRecord
}
