package dag_shape

import (
	"testing"

	"github.com/specialistvlad/magflow/internal/integration_tests/harness"
	"github.com/stretchr/testify/require"
)

const samplesheet = "sample,fastq_1,fastq_2\n" +
	"a,$DIR/a_1.fq,$DIR/a_2.fq\n" +
	"b,$DIR/b_1.fq,$DIR/b_2.fq\n"

// TestDAGShape_PerSampleChain verifies the dependency chain of one sample as
// written to workflow.yml.
func TestDAGShape_PerSampleChain(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"samples.csv": samplesheet}

	// --- Act ---
	result := harness.Run(t, files, "--samplesheet", "$DIR/samples.csv")

	// --- Assert ---
	doc := result.Workflow(t)
	expected := map[string][]string{
		"fastqc_a":         nil,
		"fastp_a":          nil,
		"assembly_a":       {"fastp_a"},
		"quast_a":          {"assembly_a"},
		"prodigal_a":       {"assembly_a"},
		"metabat2-depth_a": {"assembly_a"},
		"metabat2-bin_a":   {"assembly_a", "metabat2-depth_a"},
		"checkm2_a":        {"metabat2-bin_a"},
		"gtdbtk_a":         {"checkm2_a", "metabat2-bin_a"},
		"prokka_a":         {"metabat2-bin_a"},
	}
	for job, parents := range expected {
		require.ElementsMatch(t, parents, harness.Parents(doc, job), "Parents of %s", job)
	}
}

// TestDAGShape_SamplesAreIndependent verifies that no edge connects two
// samples and that only multiqc joins them.
func TestDAGShape_SamplesAreIndependent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"samples.csv": samplesheet}

	// --- Act ---
	result := harness.Run(t, files, "--samplesheet", "$DIR/samples.csv")

	// --- Assert ---
	doc := result.Workflow(t)
	sampleOf := make(map[string]string, len(doc.Jobs))
	for _, j := range doc.Jobs {
		sampleOf[j.ID] = j.Sample
	}

	var multiqcParents []string
	for _, dep := range doc.Dependencies {
		if dep.Job == "multiqc" {
			multiqcParents = dep.Parents
			continue
		}
		for _, p := range dep.Parents {
			require.Equal(t, sampleOf[dep.Job], sampleOf[p], "Edge %s -> %s crosses samples", p, dep.Job)
		}
	}

	require.ElementsMatch(t, []string{
		"fastqc_a", "fastp_a", "quast_a", "checkm2_a",
		"fastqc_b", "fastp_b", "quast_b", "checkm2_b",
	}, multiqcParents)
}

// TestDAGShape_OutputsAreStagedOut verifies that every job output, including
// intermediates, is marked for transfer to the output site.
func TestDAGShape_OutputsAreStagedOut(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"samples.csv": samplesheet}

	// --- Act ---
	result := harness.Run(t, files, "--samplesheet", "$DIR/samples.csv")

	// --- Assert ---
	doc := result.Workflow(t)
	for _, j := range doc.Jobs {
		require.NotEmpty(t, j.Outputs, "%s writes nothing", j.ID)
		for _, o := range j.Outputs {
			require.True(t, o.StageOut, "%s of %s is not staged out", o.Name, j.ID)
		}
	}
	require.Contains(t, harness.Job(t, doc, "fastp_a").Arguments, "a_trimmed_R1.fastq.gz")
}
