package workflow

import "path/filepath"

// DefaultExecutionSite is the HTCondor pool jobs run on.
const DefaultExecutionSite = "condorpool"

// Directory types understood by the execution engine.
const (
	SharedScratch = "sharedScratch"
	LocalStorage  = "localStorage"
)

// FileServer exposes a directory.
type FileServer struct {
	URL       string `yaml:"url"`
	Operation string `yaml:"operation"`
}

// Directory is a storage location of a site.
type Directory struct {
	Type        string       `yaml:"type"`
	Path        string       `yaml:"path"`
	FileServers []FileServer `yaml:"fileServers"`
}

// Site is a place files live or jobs run.
type Site struct {
	Name        string                       `yaml:"name"`
	Directories []Directory                  `yaml:"directories"`
	Profiles    map[string]map[string]string `yaml:"profiles,omitempty"`
}

// SiteCatalog describes the submit host and the execution site.
type SiteCatalog struct {
	Sites []Site `yaml:"sites"`
}

// NewSiteCatalog describes the local site, staging under outputDir, and the
// condor execution site.
func NewSiteCatalog(executionSite, outputDir string) SiteCatalog {
	if executionSite == "" {
		executionSite = DefaultExecutionSite
	}
	dir := func(typ, path string) Directory {
		return Directory{
			Type:        typ,
			Path:        path,
			FileServers: []FileServer{{URL: "file://" + path, Operation: "all"}},
		}
	}

	return SiteCatalog{Sites: []Site{
		{
			Name: LocalSite,
			Directories: []Directory{
				dir(SharedScratch, filepath.Join(outputDir, "scratch")),
				dir(LocalStorage, filepath.Join(outputDir, "storage")),
			},
		},
		{
			Name:        executionSite,
			Directories: []Directory{dir(SharedScratch, filepath.Join("/tmp", executionSite))},
			Profiles: map[string]map[string]string{
				"pegasus": {"style": "condor"},
				"condor":  {"universe": "vanilla"},
				"env":     {"LANG": "en_US.UTF-8"},
			},
		},
	}}
}
