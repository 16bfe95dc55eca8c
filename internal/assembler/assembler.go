package assembler

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/specialistvlad/magflow/internal/artifact"
	"github.com/specialistvlad/magflow/internal/builder"
	"github.com/specialistvlad/magflow/internal/catalog"
	"github.com/specialistvlad/magflow/internal/config"
	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/sample"
	"github.com/specialistvlad/magflow/internal/tracing"
	"github.com/specialistvlad/magflow/internal/workflow"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Options tune an Assembler. The zero value is usable.
type Options struct {
	// Workers bounds concurrent sample builds. Zero means GOMAXPROCS.
	Workers int
	// Catalog defaults to catalog.Default().
	Catalog *catalog.Catalog
	// Tracer defaults to a no-op tracer.
	Tracer trace.Tracer
}

// Assembler builds workflow graphs.
type Assembler struct {
	workers int
	catalog *catalog.Catalog
	tracer  trace.Tracer
}

// New creates an Assembler.
func New(opts Options) *Assembler {
	a := &Assembler{workers: opts.Workers, catalog: opts.Catalog, tracer: opts.Tracer}
	if a.workers <= 0 {
		a.workers = runtime.GOMAXPROCS(0)
	}
	if a.catalog == nil {
		a.catalog = catalog.Default()
	}
	if a.tracer == nil {
		a.tracer = tracing.Noop()
	}
	return a
}

// Assemble builds a graph with default options.
func Assemble(ctx context.Context, samples []sample.Sample, cfg config.Pipeline) (*workflow.Graph, *Report, error) {
	return New(Options{}).Assemble(ctx, samples, cfg)
}

// Assemble builds the graph of every sample, in input order, plus the
// aggregation job. The returned graph must be treated as read-only.
func (a *Assembler) Assemble(ctx context.Context, samples []sample.Sample, cfg config.Pipeline) (*workflow.Graph, *Report, error) {
	logger := ctxlog.FromContext(ctx)
	ctx, span := a.tracer.Start(ctx, "assemble", trace.WithAttributes(
		attribute.Int(tracing.AttrSampleCount, len(samples)),
		attribute.Int(tracing.AttrWorkers, a.workers),
	))
	defer span.End()

	if len(samples) == 0 {
		return nil, nil, ErrEmptySampleSet
	}
	checked := make([]sample.Sample, len(samples))
	for i, s := range samples {
		c, err := sample.Check(s)
		if err != nil {
			span.RecordError(err)
			return nil, nil, &SampleError{SampleID: s.ID, Err: err}
		}
		checked[i] = c
	}
	samples = checked

	seen := make(map[string]struct{}, len(samples))
	for _, s := range samples {
		if _, dup := seen[s.ID]; dup {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateSampleID, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	logger.Debug("Assembling workflow graph.", "samples", len(samples), "assembler", cfg.Assembler, "workers", a.workers)

	frags, err := a.buildAll(ctx, samples, cfg)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	report := &Report{Samples: len(samples)}
	g := workflow.New()
	var qc []artifact.Handle

	for i, s := range samples {
		frag := frags[i]
		remap, err := g.Merge(frag.Graph)
		if err != nil {
			return nil, nil, &SampleError{SampleID: s.ID, Err: err}
		}
		qc = append(qc, remap.Handles(frag.QC)...)
		if frag.Bins != builder.NoBins {
			report.Bins = append(report.Bins, g.Artifact(remap.Handle(frag.Bins)).Name)
		}

		if s.IsPaired() {
			report.PairedSamples++
		} else {
			report.SingleEndSamples++
		}
		if s.LayoutInferred {
			report.warn(WarnLayoutInferred, s.ID, "no reverse read given, treated as single-end")
			logger.Warn("Sample has no reverse read, treating it as single-end.", "sample", s.ID)
		}
	}

	_, joinSpan := a.tracer.Start(ctx, "assemble.join", trace.WithAttributes(attribute.Int(tracing.AttrQCCount, len(qc))))
	_, err = join(g, a.catalog, qc)
	joinSpan.End()
	switch {
	case errors.Is(err, ErrEmptyAggregation):
		report.warn(WarnEmptyAggregation, "", err.Error())
		logger.Warn("No QC artifacts produced, the report job was not added.")
	case err != nil:
		return nil, nil, fmt.Errorf("attaching aggregation job: %w", err)
	default:
		report.Aggregated = true
	}

	if err := g.Validate(); err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	report.Jobs = g.Len()
	report.Artifacts = len(g.Artifacts())
	report.Edges = g.EdgeCount()
	report.QCArtifacts = len(qc)
	span.SetAttributes(attribute.Int(tracing.AttrJobCount, report.Jobs))

	logger.Info("Workflow graph assembled.", "jobs", report.Jobs, "artifacts", report.Artifacts, "edges", report.Edges, "warnings", len(report.Warnings))
	return g, report, nil
}

// buildAll runs the per-sample builds. Each build writes only its own slot.
// A failing build does not stop the others, so that when several fail the
// error of the earliest sample is the one returned.
func (a *Assembler) buildAll(ctx context.Context, samples []sample.Sample, cfg config.Pipeline) ([]*builder.Fragment, error) {
	b := builder.New(a.catalog, cfg)
	frags := make([]*builder.Fragment, len(samples))
	errs := make([]error, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, s := range samples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			sctx, span := a.tracer.Start(gctx, "assemble.sample", trace.WithAttributes(attribute.String(tracing.AttrSampleID, s.ID)))
			defer span.End()

			frag, err := b.Build(sctx, s)
			if err != nil {
				span.RecordError(err)
				errs[i] = &SampleError{SampleID: s.ID, Err: err}
				return errs[i]
			}
			frags[i] = frag
			return nil
		})
	}
	waitErr := g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	return frags, nil
}
