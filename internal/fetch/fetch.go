// Package fetch downloads the nf-core/mag minigut test reads and writes a
// samplesheet describing them.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/magflow/internal/catalog"
	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/manifest"
	"github.com/specialistvlad/magflow/internal/sample"
)

const (
	// DefaultBaseURL hosts the test reads.
	DefaultBaseURL = "https://github.com/nf-core/test-datasets/raw/mag/test_data"
	// DataDir is the directory, under the output directory, holding the reads.
	DataDir = "test_data"
	// SamplesheetName is written next to DataDir.
	SamplesheetName = "test_samplesheet.csv"
)

// ErrNoSamples is returned when no test sample could be downloaded.
var ErrNoSamples = errors.New("no test samples were downloaded")

// TestSample is one downloadable paired-end sample.
type TestSample struct {
	ID    string
	Group string
}

// TestSamples are the samples of the nf-core/mag test profile.
var TestSamples = []TestSample{
	{ID: "test_minigut", Group: "minigut"},
	{ID: "test_minigut_sample2", Group: "minigut"},
}

// Fetcher downloads test data. The zero value uses http.DefaultClient and
// DefaultBaseURL.
type Fetcher struct {
	Client  *http.Client
	BaseURL string
	Samples []TestSample
}

// Result describes the fetched data.
type Result struct {
	Records     []sample.RawRecord
	Samplesheet string
	// Downloaded counts files fetched; files already present are not.
	Downloaded int
}

// Fetch makes every test sample available under outputDir/test_data and
// writes outputDir/test_samplesheet.csv. A sample whose download fails is
// left out with a warning; Fetch fails only if none remain.
func (f *Fetcher) Fetch(ctx context.Context, outputDir string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	dataDir, err := filepath.Abs(filepath.Join(outputDir, DataDir))
	if err != nil {
		return nil, fmt.Errorf("resolving test data directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating test data directory: %w", err)
	}
	logger.Info("Fetching test data.", "dir", dataDir, "samples", len(f.samples()))

	res := &Result{}
	for _, ts := range f.samples() {
		rec := sample.RawRecord{ID: ts.ID, Group: ts.Group}
		var failed error
		for mate := 1; mate <= 2; mate++ {
			name := catalog.RawReadName(ts.ID, mate)
			path := filepath.Join(dataDir, name)

			fetched, err := f.download(ctx, f.baseURL()+"/"+name, path)
			if err != nil {
				failed = err
				break
			}
			if fetched {
				res.Downloaded++
				logger.Debug("Downloaded test file.", "file", name)
			} else {
				logger.Debug("Test file already present, skipping.", "file", name)
			}
			if mate == 1 {
				rec.Forward = path
			} else {
				rec.Reverse = path
			}
		}
		if failed != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("Skipping test sample after download failure.", "sample", ts.ID, "error", failed)
			continue
		}
		res.Records = append(res.Records, rec)
	}
	if len(res.Records) == 0 {
		return nil, ErrNoSamples
	}

	res.Samplesheet = filepath.Join(filepath.Dir(dataDir), SamplesheetName)
	if err := writeSamplesheet(res.Samplesheet, res.Records); err != nil {
		return nil, err
	}
	logger.Info("Test samplesheet written.", "path", res.Samplesheet, "samples", len(res.Records))
	return res, nil
}

// download fetches url into path unless path exists. It reports whether a
// download happened. Partial files never appear at path.
func (f *Fetcher) download(ctx context.Context, url, path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return false, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return false, fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("moving download into place: %w", err)
	}
	return true, nil
}

func writeSamplesheet(path string, records []sample.RawRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating samplesheet: %w", err)
	}
	if err := manifest.WriteCSV(out, records); err != nil {
		out.Close()
		return fmt.Errorf("writing samplesheet: %w", err)
	}
	return out.Close()
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) baseURL() string {
	if f.BaseURL != "" {
		return strings.TrimRight(f.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (f *Fetcher) samples() []TestSample {
	if f.Samples != nil {
		return f.Samples
	}
	return TestSamples
}
