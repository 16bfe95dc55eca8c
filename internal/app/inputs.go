package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/magflow/internal/config"
	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/manifest"
	"github.com/specialistvlad/magflow/internal/sample"
)

// ErrNoSamples is returned when the sources yield no usable record.
var ErrNoSamples = errors.New("no valid samples found")

// inputs are the resolved samples and switches of one run.
type inputs struct {
	samples    []sample.Sample
	pipeline   config.Pipeline
	sheet      string
	skippedRow int
}

// loadInputs gathers records from every configured source, then applies the
// command line overrides and normalizes the records.
func (a *App) loadInputs(ctx context.Context) (*inputs, error) {
	logger := ctxlog.FromContext(ctx)
	in := &inputs{pipeline: config.DefaultPipeline()}
	var records []sample.RawRecord

	switch {
	case a.config.Test:
		res, err := a.fetcher.Fetch(ctx, a.config.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("fetching test data: %w", err)
		}
		records = append(records, res.Records...)
		in.sheet = res.Samplesheet
	case a.config.Samplesheet != "":
		res, err := manifest.ReadFile(ctx, a.config.Samplesheet)
		if err != nil {
			return nil, err
		}
		records = append(records, res.Records...)
		in.sheet = a.config.Samplesheet
		in.skippedRow = len(res.Skipped)
	}

	if len(a.config.PipelinePaths) > 0 {
		model, err := a.loader.Load(ctx, a.config.PipelinePaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load pipeline file: %w", err)
		}
		if model.PipelineSet {
			in.pipeline = model.Pipeline
		}
		records = append(records, model.Samples...)
	}

	if err := a.config.Overrides.Apply(&in.pipeline); err != nil {
		return nil, err
	}

	var errs []error
	for _, r := range records {
		s, err := sample.Normalize(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		in.samples = append(in.samples, s)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("sample validation failed:\n%w", errors.Join(errs...))
	}
	if len(in.samples) == 0 {
		return nil, ErrNoSamples
	}

	logger.Debug("Inputs resolved.", "samples", len(in.samples), "assembler", in.pipeline.Assembler, "samplesheet", in.sheet)
	return in, nil
}
