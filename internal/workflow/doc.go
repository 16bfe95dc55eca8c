// Package workflow holds the job graph produced by assembly: jobs in
// construction order, the artifact arena they read and write, and the
// job-to-job adjacency derived from producers and consumers.
//
// A Graph only grows. AddJob refuses a job whose inputs are not registered
// yet or whose outputs would reuse a name, so construction order is always a
// valid execution order. Once handed out by the assembler a Graph is
// treated as read-only.
package workflow
