package catalog

import (
	"fmt"
	"sync"
)

// Catalog is an immutable set of stage definitions.
type Catalog struct {
	stages map[string]*StageDefinition
	order  []string
}

// New builds a catalog from the given definitions. It panics on a duplicate
// name or an invalid definition; catalogs are built from static tables.
func New(defs ...StageDefinition) *Catalog {
	c := &Catalog{stages: make(map[string]*StageDefinition, len(defs))}
	for i := range defs {
		def := defs[i]
		if _, exists := c.stages[def.Name]; exists {
			panic(fmt.Sprintf("catalog: stage %q registered twice", def.Name))
		}
		c.stages[def.Name] = &def
		c.order = append(c.order, def.Name)
	}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog of the metagenomics pipeline.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(builtinStages()...)
	})
	return defaultCatalog
}

// Lookup returns the definition of a stage.
func (c *Catalog) Lookup(name string) (*StageDefinition, error) {
	def, ok := c.stages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}
	return def, nil
}

// Instance is shorthand for Lookup followed by StageDefinition.Instance.
func (c *Catalog) Instance(stage, variant string) (Instance, error) {
	def, err := c.Lookup(stage)
	if err != nil {
		return Instance{}, err
	}
	return def.Instance(variant)
}

// Names returns stage names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Transformation is an executable referenced by one or more stages.
type Transformation struct {
	Name      string
	Resources Resources
}

// Transformations lists every distinct executable in declaration order.
// Stages sharing an executable share the first profile declared for it.
func (c *Catalog) Transformations() []Transformation {
	var out []Transformation
	seen := make(map[string]bool)
	add := func(name string, res Resources) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, Transformation{Name: name, Resources: res})
	}

	for _, name := range c.order {
		def := c.stages[name]
		add(def.Transformation, def.Resources)
		for _, v := range def.Variants {
			add(v.Transformation, v.Resources)
		}
	}
	return out
}

// RawReadName is the logical name of a sample's raw read file; mate is 1
// for the forward read and 2 for the reverse read.
func RawReadName(sampleID string, mate int) string {
	return fmt.Sprintf("%s_R%d.fastq.gz", sampleID, mate)
}
