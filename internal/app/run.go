package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/magflow/internal/assembler"
	"github.com/specialistvlad/magflow/internal/catalog"
	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/workflow"
)

// Output file names written next to the workflow.
const (
	SitesFile           = "sites.yml"
	TransformationsFile = "transformations.yml"
	ReplicasFile        = "replicas.yml"
)

// Result lists what a Run produced.
type Result struct {
	RunID  string
	Report *assembler.Report
	// Paths of the files written.
	Workflow        string
	Sites           string
	Transformations string
	Replicas        string
}

// Run generates the workflow and its catalogs into the output directory and
// prints a summary.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	outDir, err := filepath.Abs(a.config.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	in, err := a.loadInputs(ctx)
	if err != nil {
		return nil, err
	}
	g, report, err := a.assemble(ctx, in)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:           a.runID(),
		Report:          report,
		Workflow:        a.config.WorkflowFile,
		Sites:           filepath.Join(outDir, SitesFile),
		Transformations: filepath.Join(outDir, TransformationsFile),
		Replicas:        filepath.Join(outDir, ReplicasFile),
	}
	if !filepath.IsAbs(res.Workflow) {
		res.Workflow = filepath.Join(outDir, res.Workflow)
	}

	replicas, err := workflow.NewReplicaCatalog(ctx, g, workflow.RawLocations(in.samples))
	if err != nil {
		return nil, err
	}
	files := []struct {
		path string
		doc  any
	}{
		{res.Sites, workflow.NewSiteCatalog(a.config.ExecutionSite, outDir)},
		{res.Transformations, workflow.NewTransformationCatalog(catalog.Default(), a.config.ContainerImage)},
		{res.Replicas, replicas},
		{res.Workflow, g.Document(a.config.WorkflowName, res.RunID)},
	}
	for _, f := range files {
		if err := writeYAMLFile(f.path, f.doc); err != nil {
			return nil, err
		}
		logger.Debug("File written.", "path", f.path)
	}

	logger.Info("Workflow generated.", "run_id", res.RunID, "jobs", report.Jobs, "path", res.Workflow)
	printSummary(a.outW, in, report, res, a.config.ExecutionSite)
	return res, nil
}

// Describe assembles the graph and prints its jobs without writing files.
func (a *App) Describe(ctx context.Context) error {
	ctx = a.context(ctx)

	in, err := a.loadInputs(ctx)
	if err != nil {
		return err
	}
	g, report, err := a.assemble(ctx, in)
	if err != nil {
		return err
	}
	return printJobs(a.outW, g, report)
}

func (a *App) assemble(ctx context.Context, in *inputs) (*workflow.Graph, *assembler.Report, error) {
	asm := assembler.New(assembler.Options{
		Workers: a.config.Workers,
		Tracer:  a.tracing.Tracer(),
	})
	g, report, err := asm.Assemble(ctx, in.samples, in.pipeline)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to assemble workflow graph: %w", err)
	}
	return g, report, nil
}

func writeYAMLFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := workflow.WriteYAML(f, v); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
