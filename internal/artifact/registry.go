package artifact

import (
	"fmt"
	"slices"
)

// Handle identifies an artifact within the Registry that created it.
type Handle int

// Artifact is a single named file.
type Artifact struct {
	Name string
	// Producer is the ID of the job that writes the file. Empty for raw inputs.
	Producer string
	// Consumers are the IDs of jobs reading the file, in the order they were added.
	Consumers []string
	// StageOut marks outputs that are copied to the final output location.
	StageOut bool
}

// Raw reports whether the artifact is a pre-existing input.
func (a Artifact) Raw() bool {
	return a.Producer == ""
}

// Registry owns the artifacts of one graph. It is not safe for concurrent
// use; each builder works on its own Registry.
type Registry struct {
	items  []Artifact
	byName map[string]Handle
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Handle)}
}

// Raw registers a raw input file.
func (r *Registry) Raw(name string) (Handle, error) {
	return r.add(Artifact{Name: name})
}

// Produce registers a file written by the job jobID.
func (r *Registry) Produce(name, jobID string, stageOut bool) (Handle, error) {
	if jobID == "" {
		panic("artifact: Produce called without a producer")
	}
	return r.add(Artifact{Name: name, Producer: jobID, StageOut: stageOut})
}

func (r *Registry) add(a Artifact) (Handle, error) {
	if a.Name == "" {
		panic("artifact: empty artifact name")
	}
	if _, ok := r.byName[a.Name]; ok {
		return -1, fmt.Errorf("%w: %q", ErrNameCollision, a.Name)
	}
	h := Handle(len(r.items))
	r.items = append(r.items, a)
	r.byName[a.Name] = h
	return h, nil
}

// Consume records jobID as a reader of h.
func (r *Registry) Consume(h Handle, jobID string) error {
	if !r.Valid(h) {
		return fmt.Errorf("%w: handle %d", ErrMissingInput, h)
	}
	r.items[h].Consumers = append(r.items[h].Consumers, jobID)
	return nil
}

// Valid reports whether h refers to a registered artifact.
func (r *Registry) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(r.items)
}

// Lookup finds an artifact by name.
func (r *Registry) Lookup(name string) (Handle, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// Get returns a copy of the artifact behind h. It panics on an invalid
// handle, which can only come from mixing handles of different registries.
func (r *Registry) Get(h Handle) Artifact {
	if !r.Valid(h) {
		panic(fmt.Sprintf("artifact: invalid handle %d", h))
	}
	a := r.items[h]
	a.Consumers = slices.Clone(a.Consumers)
	return a
}

// Name is shorthand for Get(h).Name.
func (r *Registry) Name(h Handle) string {
	return r.Get(h).Name
}

// Len returns the number of registered artifacts.
func (r *Registry) Len() int {
	return len(r.items)
}

// All returns copies of every artifact in registration order.
func (r *Registry) All() []Artifact {
	out := make([]Artifact, len(r.items))
	for i := range r.items {
		out[i] = r.Get(Handle(i))
	}
	return out
}
