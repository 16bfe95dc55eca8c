package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/magflow/internal/catalog"
	"github.com/specialistvlad/magflow/internal/ctxlog"
	"github.com/specialistvlad/magflow/internal/sample"
)

// LocalSite is the site name local replicas are registered under.
const LocalSite = "local"

// Replica maps a logical file name to a physical location.
type Replica struct {
	LFN  string `yaml:"lfn"`
	PFN  string `yaml:"pfn"`
	Site string `yaml:"site"`
}

// ReplicaCatalog lists where the raw inputs of a run live.
type ReplicaCatalog struct {
	Replicas []Replica `yaml:"replicas"`
}

// RawLocations maps the logical raw read names of samples to the paths
// given by the user.
func RawLocations(samples []sample.Sample) map[string]string {
	locations := make(map[string]string, 2*len(samples))
	for _, s := range samples {
		locations[catalog.RawReadName(s.ID, 1)] = s.Forward
		if s.IsPaired() {
			locations[catalog.RawReadName(s.ID, 2)] = s.Reverse
		}
	}
	return locations
}

// NewReplicaCatalog resolves every raw input of g against locations. Inputs
// whose file does not exist locally are left out and logged; the execution
// engine reports them if they are still missing at run time.
func NewReplicaCatalog(ctx context.Context, g *Graph, locations map[string]string) (ReplicaCatalog, error) {
	logger := ctxlog.FromContext(ctx)

	var rc ReplicaCatalog
	for _, a := range g.Artifacts() {
		if !a.Raw() {
			continue
		}
		path, ok := locations[a.Name]
		if !ok || path == "" {
			logger.Warn("No location known for raw input, skipping replica.", "artifact", a.Name)
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return ReplicaCatalog{}, fmt.Errorf("resolving %s: %w", path, err)
		}
		if _, err := os.Stat(abs); err != nil {
			if os.IsNotExist(err) {
				logger.Warn("Raw input not found locally, skipping replica.", "artifact", a.Name, "path", abs)
				continue
			}
			return ReplicaCatalog{}, fmt.Errorf("checking %s: %w", abs, err)
		}

		rc.Replicas = append(rc.Replicas, Replica{LFN: a.Name, PFN: "file://" + abs, Site: LocalSite})
	}

	logger.Debug("Replica catalog built.", "replicas", len(rc.Replicas))
	return rc, nil
}
