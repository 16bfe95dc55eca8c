package workflow

import (
	"fmt"

	"github.com/specialistvlad/magflow/internal/catalog"
)

// DefaultContainerImage runs every tool of the pipeline.
const DefaultContainerImage = "docker://kthare10/mag-workflow:latest"

const containerName = "mag_container"

// Container is the image executables run in.
type Container struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Image string `yaml:"image"`
}

// Transformation describes how to invoke one executable.
type Transformation struct {
	Name      string            `yaml:"name"`
	Site      string            `yaml:"site"`
	PFN       string            `yaml:"pfn"`
	Stageable bool              `yaml:"is_stageable"`
	Container string            `yaml:"container"`
	Profile   catalog.Resources `yaml:"profile"`
}

// TransformationCatalog lists every executable a workflow references.
type TransformationCatalog struct {
	Containers      []Container      `yaml:"containers"`
	Transformations []Transformation `yaml:"transformations"`
}

// NewTransformationCatalog describes the executables of c. Wrapper scripts
// live inside the container, so nothing is staged from the submit host.
func NewTransformationCatalog(c *catalog.Catalog, image string) TransformationCatalog {
	if image == "" {
		image = DefaultContainerImage
	}

	tc := TransformationCatalog{
		Containers: []Container{{Name: containerName, Type: "singularity", Image: image}},
	}
	for _, t := range c.Transformations() {
		tc.Transformations = append(tc.Transformations, Transformation{
			Name:      t.Name,
			Site:      LocalSite,
			PFN:       fmt.Sprintf("/usr/local/bin/%s.sh", t.Name),
			Container: containerName,
			Profile:   t.Resources,
		})
	}
	return tc
}
