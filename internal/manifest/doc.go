// Package manifest reads and writes CSV samplesheets.
//
// A samplesheet has a header row. Columns are matched by name, with
// aliases: sample or id, fastq_1 or R1, fastq_2 or R2, plus the optional
// group and single_end columns. Rows without an id or a forward read are
// skipped and reported, not rejected.
package manifest
