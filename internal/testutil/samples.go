package testutil

import (
	"github.com/specialistvlad/magflow/internal/sample"
)

// Paired returns a paired-end sample with conventional read paths.
func Paired(id string) sample.Sample {
	return sample.Sample{
		ID:      id,
		Group:   sample.DefaultGroup,
		Layout:  sample.Paired,
		Forward: "reads/" + id + "_1.fastq.gz",
		Reverse: "reads/" + id + "_2.fastq.gz",
	}
}

// SingleEnd returns a single-end sample with a conventional read path.
func SingleEnd(id string) sample.Sample {
	return sample.Sample{
		ID:      id,
		Group:   sample.DefaultGroup,
		Layout:  sample.SingleEnd,
		Forward: "reads/" + id + ".fastq.gz",
	}
}

// PairedSamples returns one paired sample per id, in order.
func PairedSamples(ids ...string) []sample.Sample {
	out := make([]sample.Sample, len(ids))
	for i, id := range ids {
		out[i] = Paired(id)
	}
	return out
}
