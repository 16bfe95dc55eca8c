package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/magflow/internal/config"
	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/fsutil"
	"github.com/specialistvlad/magflow/internal/hclutil"
	"github.com/specialistvlad/magflow/internal/sample"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	environ func() []string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a loader exposing the process environment as `env`.
func NewLoader() *Loader {
	return &Loader{environ: defaultEnviron}
}

// NewLoaderWithEnv creates a loader exposing only the given KEY=VALUE pairs.
func NewLoaderWithEnv(environ []string) *Loader {
	return &Loader{environ: func() []string { return environ }}
}

// Load parses every .hcl file under the given paths. At most one pipeline
// block may exist across all files; sample blocks are collected in file
// order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{Pipeline: config.DefaultPipeline()}
	evalCtx := evalContext(l.environ())
	parser := hclparse.NewParser()
	var pipelineRange *hcl.Range

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(rootSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		block, diags := hclutil.FindUniqueBlock(content.Blocks, "pipeline")
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		if block != nil {
			if pipelineRange != nil {
				return nil, fmt.Errorf("duplicate pipeline block at %s: already defined at %s", block.DefRange, pipelineRange)
			}
			pipelineRange = block.DefRange.Ptr()
			if err := decodePipeline(block, evalCtx, &model.Pipeline); err != nil {
				return nil, fmt.Errorf("failed to decode pipeline block in %s: %w", file, err)
			}
			model.PipelineSet = true
		}

		for _, b := range hclutil.BlocksOfType(content.Blocks, "sample") {
			var sb sampleBlock
			if diags := gohcl.DecodeBody(b.Body, evalCtx, &sb); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode sample %q in %s: %w", b.Labels[0], file, diags)
			}
			model.Samples = append(model.Samples, sample.RawRecord{
				ID:        b.Labels[0],
				Forward:   sb.Forward,
				Reverse:   sb.Reverse,
				Group:     sb.Group,
				SingleEnd: sb.SingleEnd,
			})
		}
	}

	logger.Debug("HCL loading complete.", "files", len(files), "pipeline_block", model.PipelineSet, "samples", len(model.Samples))
	return model, nil
}

// decodePipeline overlays the attributes present in block onto p.
func decodePipeline(block *hcl.Block, evalCtx *hcl.EvalContext, p *config.Pipeline) error {
	var pb pipelineBlock
	if diags := gohcl.DecodeBody(block.Body, evalCtx, &pb); diags.HasErrors() {
		return diags
	}

	var all hcl.Diagnostics
	var assembler string
	set, diags := hclutil.DecodeOptional(pb.Assembler, evalCtx, &assembler)
	all = append(all, diags...)
	if set {
		kind, err := config.ParseAssemblerKind(assembler)
		if err != nil {
			all = append(all, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid assembler",
				Detail:   err.Error(),
				Subject:  pb.Assembler.Range().Ptr(),
			})
		}
		p.Assembler = kind
	}

	for _, f := range []struct {
		expr   hcl.Expression
		target any
	}{
		{pb.SkipFastQC, &p.SkipFastQC},
		{pb.SkipBinning, &p.SkipBinning},
		{pb.SkipTaxonomy, &p.SkipTaxonomy},
		{pb.SkipAnnotation, &p.SkipAnnotation},
		{pb.CheckM2DB, &p.CheckM2DB},
		{pb.GTDBTkDB, &p.GTDBTkDB},
	} {
		_, diags := hclutil.DecodeOptional(f.expr, evalCtx, f.target)
		all = append(all, diags...)
	}

	if all.HasErrors() {
		return all
	}
	return nil
}
