package dag

import "sync"

// Graph is a collection of nodes and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order is the insertion order of node IDs.
	order []string
}

// node is a single vertex. Edge slices keep the order in which edges were
// added; the sets guard against duplicates.
type node struct {
	id    string
	index int

	deps       []string
	depSet     map[string]struct{}
	dependents []string
	dentSet    map[string]struct{}
}
