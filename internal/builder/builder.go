package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/magflow/internal/artifact"
	"github.com/specialistvlad/magflow/internal/catalog"
	"github.com/specialistvlad/magflow/internal/config"
	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/sample"
	"github.com/specialistvlad/magflow/internal/workflow"
)

// NoBins marks a fragment built without binning.
const NoBins artifact.Handle = -1

// Fragment is the sample-local result of a build. Handles refer to Graph.
type Fragment struct {
	SampleID string
	Graph    *workflow.Graph
	// QC lists report artifacts in stage order.
	QC   []artifact.Handle
	Bins artifact.Handle
}

// Builder expands samples for one pipeline configuration.
type Builder struct {
	catalog  *catalog.Catalog
	pipeline config.Pipeline
}

// New creates a Builder.
func New(c *catalog.Catalog, p config.Pipeline) *Builder {
	return &Builder{catalog: c, pipeline: p}
}

// build is the state of one sample build.
type build struct {
	*Builder
	sample sample.Sample
	frag   *Fragment
}

// roles maps role names to artifacts.
type roles map[string]artifact.Handle

// Build produces the jobs of one sample.
func (b *Builder) Build(ctx context.Context, s sample.Sample) (*Fragment, error) {
	logger := ctxlog.FromContext(ctx).With("sample", s.ID)

	bb := &build{
		Builder: b,
		sample:  s,
		frag:    &Fragment{SampleID: s.ID, Graph: workflow.New(), Bins: NoBins},
	}
	if err := bb.run(); err != nil {
		return nil, err
	}

	logger.Debug("Sample build complete.", "layout", s.Layout, "jobs", bb.frag.Graph.Len(), "qc_artifacts", len(bb.frag.QC))
	return bb.frag, nil
}

func (bb *build) run() error {
	p := bb.pipeline
	g := bb.frag.Graph

	reads := roles{}
	r1, err := g.AddRaw(catalog.RawReadName(bb.sample.ID, 1))
	if err != nil {
		return err
	}
	reads[catalog.RoleReads1] = r1
	if bb.sample.IsPaired() {
		r2, err := g.AddRaw(catalog.RawReadName(bb.sample.ID, 2))
		if err != nil {
			return err
		}
		reads[catalog.RoleReads2] = r2
	}

	if !p.SkipFastQC {
		if _, err := bb.stage(catalog.StageFastQC, "", reads, ""); err != nil {
			return err
		}
	}

	// Trimming always reads the raw files, whether or not QC ran.
	trimmed, err := bb.stage(catalog.StageFastp, "", reads, "")
	if err != nil {
		return err
	}

	variant, err := assemblyVariant(p.Assembler)
	if err != nil {
		return err
	}
	assembly, err := bb.stage(catalog.StageAssembly, variant, trimmed, "")
	if err != nil {
		return err
	}

	if _, err := bb.stage(catalog.StageQuast, "", assembly, ""); err != nil {
		return err
	}
	if _, err := bb.stage(catalog.StageProdigal, "", assembly, ""); err != nil {
		return err
	}

	if p.SkipBinning {
		return nil
	}

	depth, err := bb.stage(catalog.StageDepth, "", assembly, "")
	if err != nil {
		return err
	}
	bins, err := bb.stage(catalog.StageBin, "", roles{
		catalog.RoleContigs: assembly[catalog.RoleContigs],
		catalog.RoleDepth:   depth[catalog.RoleDepth],
	}, "")
	if err != nil {
		return err
	}
	bb.frag.Bins = bins[catalog.RoleBins]

	quality, err := bb.stage(catalog.StageCheckM2, "", bins, p.CheckM2DB)
	if err != nil {
		return err
	}

	if p.RunsTaxonomy() {
		// The quality report is an input only to order taxonomy after it.
		if _, err := bb.stage(catalog.StageGTDBTk, "", roles{
			catalog.RoleBins:    bins[catalog.RoleBins],
			catalog.RoleQuality: quality[catalog.RoleQuality],
		}, p.GTDBTkDB); err != nil {
			return err
		}
	}

	if p.RunsAnnotation() {
		if _, err := bb.stage(catalog.StageProkka, "", bins, ""); err != nil {
			return err
		}
	}

	return nil
}

// stage instantiates one catalog stage. Only the roles the stage declares
// for the sample's layout are taken from available. It returns the job's
// outputs by role.
func (bb *build) stage(name, variant string, available roles, database string) (roles, error) {
	inst, err := bb.catalog.Instance(name, variant)
	if err != nil {
		return nil, err
	}
	g := bb.frag.Graph
	paired := bb.sample.IsPaired()

	binding := catalog.Binding{
		SampleID: bb.sample.ID,
		Paired:   paired,
		Inputs:   make(map[string]string),
		Database: database,
	}
	var inputs []artifact.Handle
	for _, role := range inst.InputRoles(paired) {
		h, ok := available[role.Name]
		if !ok {
			return nil, fmt.Errorf("stage %q: %w for role %q", inst.Stage, artifact.ErrMissingInput, role.Name)
		}
		inputs = append(inputs, h)
		binding.Inputs[role.Name] = g.Artifact(h).Name
	}

	rendered, err := inst.Render(binding)
	if err != nil {
		return nil, err
	}

	spec := workflow.JobSpec{
		ID:             workflow.JobID(inst.Stage, bb.sample.ID),
		Stage:          inst.Stage,
		Transformation: inst.Transformation,
		SampleID:       bb.sample.ID,
		Args:           rendered.Args,
		Inputs:         inputs,
		// Resources come from the instance so the chosen variant's profile
		// travels with the job.
		Resources: inst.Resources,
	}
	for _, o := range rendered.Outputs {
		spec.Outputs = append(spec.Outputs, workflow.Output{Name: o.Name, StageOut: o.StageOut})
	}

	job, err := g.AddJob(spec)
	if err != nil {
		return nil, err
	}

	outputs := make(roles, len(rendered.Outputs))
	for i, o := range rendered.Outputs {
		outputs[o.Role] = job.Outputs[i]
		if o.QC {
			bb.frag.QC = append(bb.frag.QC, job.Outputs[i])
		}
	}
	return outputs, nil
}

func assemblyVariant(k config.AssemblerKind) (string, error) {
	switch k {
	case config.Megahit:
		return catalog.VariantMegahit, nil
	case config.Spades:
		return catalog.VariantSpades, nil
	default:
		return "", fmt.Errorf("%w: no assembly variant for %s", catalog.ErrUnknownStage, k)
	}
}
