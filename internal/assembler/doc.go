// Package assembler turns a sample set and a pipeline configuration into the
// complete workflow graph.
//
// Samples are expanded independently, possibly in parallel, each into its
// own fragment. After every build has finished the fragments are merged in
// input order by a single writer, the cross-sample multiqc job is attached,
// and the result is checked once more before it is returned. Assembly is all
// or nothing: any error yields no graph.
package assembler
