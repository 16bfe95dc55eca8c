// Package builder expands one sample into its chain of pipeline jobs.
//
// A build works on a private workflow.Graph, so builds for different samples
// share no mutable state and can run concurrently. The result is a Fragment:
// the sample's jobs, its contributions to the cross-sample QC report, and its
// bins directory when binning ran. The assembler merges fragments into the
// run graph.
package builder
