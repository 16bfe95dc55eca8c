// Package dag holds the adjacency of a job graph: which job depends on which.
// It knows nothing about jobs or files, only string IDs and directed edges,
// and it keeps insertion order so every traversal is deterministic.
package dag
