package catalog

import "fmt"

// Resources is the hint handed to the scheduler for one job.
type Resources struct {
	Memory string `yaml:"memory"`
	Cores  int    `yaml:"cores"`
}

func (r Resources) String() string {
	return fmt.Sprintf("%s/%d cores", r.Memory, r.Cores)
}

// valid reports whether r names both a memory amount and a core count.
func (r Resources) valid() bool {
	return r.Memory != "" && r.Cores > 0
}
