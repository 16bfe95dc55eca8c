package hcl_adapter

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/magflow/internal/config"
	"github.com/specialistvlad/magflow/internal/sample"
	"github.com/specialistvlad/magflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PipelineAndSamples(t *testing.T) {
	t.Parallel()
	ctx, logs := testutil.Context(t)

	dir := testutil.WriteFiles(t, map[string]string{
		"main.hcl": `
pipeline {
  assembler       = "spades"
  skip_taxonomy   = true
  checkm2_db      = "${env.DB_ROOT}/checkm2"
}

sample "s1" {
  fastq_1 = "reads/s1_R1.fastq.gz"
  fastq_2 = "reads/s1_R2.fastq.gz"
  group   = "gut"
}

sample "s2" {
  fastq_1    = "reads/s2.fastq.gz"
  single_end = true
}
`,
	})

	model, err := NewLoaderWithEnv([]string{"DB_ROOT=/db", "IGNORED"}).Load(ctx, filepath.Join(dir, "main.hcl"))
	require.NoError(t, err)

	want := config.DefaultPipeline()
	want.Assembler = config.Spades
	want.SkipTaxonomy = true
	want.CheckM2DB = "/db/checkm2"
	assert.Equal(t, want, model.Pipeline)
	assert.True(t, model.PipelineSet)

	assert.Equal(t, []sample.RawRecord{
		{ID: "s1", Forward: "reads/s1_R1.fastq.gz", Reverse: "reads/s1_R2.fastq.gz", Group: "gut"},
		{ID: "s2", Forward: "reads/s2.fastq.gz", SingleEnd: true},
	}, model.Samples)
	assert.Contains(t, logs.String(), "HCL loading complete.")
}

func TestLoad_DirectoryOfFiles(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	dir := testutil.WriteFiles(t, map[string]string{
		"a_samples.hcl":  `sample "a" { fastq_1 = "a.fq" }`,
		"b_pipeline.hcl": `pipeline { skip_binning = true }`,
		"c_samples.hcl":  `sample "c" { fastq_1 = "c.fq" }`,
		"readme.md":      `not hcl`,
	})

	model, err := NewLoaderWithEnv(nil).Load(ctx, dir)
	require.NoError(t, err)

	assert.True(t, model.Pipeline.SkipBinning)
	assert.Equal(t, config.Megahit, model.Pipeline.Assembler)
	require.Len(t, model.Samples, 2)
	assert.Equal(t, "a", model.Samples[0].ID)
	assert.Equal(t, "c", model.Samples[1].ID)
}

func TestLoad_NoPipelineBlock(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	dir := testutil.WriteFiles(t, map[string]string{"s.hcl": `sample "a" { fastq_1 = "a.fq" }`})

	model, err := NewLoaderWithEnv(nil).Load(ctx, dir)
	require.NoError(t, err)
	assert.False(t, model.PipelineSet)
	assert.Equal(t, config.DefaultPipeline(), model.Pipeline)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"x.hcl": `pipeline {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown top-level block",
			files:   map[string]string{"x.hcl": `step "a" {}`},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "duplicate pipeline block in one file",
			files:   map[string]string{"x.hcl": "pipeline {}\npipeline {}\n"},
			wantErr: `Duplicate "pipeline" block`,
		},
		{
			name: "duplicate pipeline block across files",
			files: map[string]string{
				"a.hcl": "pipeline {}\n",
				"b.hcl": "pipeline {}\n",
			},
			wantErr: "duplicate pipeline block",
		},
		{
			name:    "unknown assembler",
			files:   map[string]string{"x.hcl": `pipeline { assembler = "velvet" }`},
			wantErr: `unknown assembler "velvet"`,
		},
		{
			name:    "assembler alias",
			files:   map[string]string{"x.hcl": `pipeline { assembler = "metaspades" }`},
			wantErr: `unknown assembler "metaspades"`,
		},
		{
			name:    "empty assembler",
			files:   map[string]string{"x.hcl": `pipeline { assembler = "" }`},
			wantErr: "Invalid assembler",
		},
		{
			name:    "wrong attribute type",
			files:   map[string]string{"x.hcl": `pipeline { skip_binning = "sometimes" }`},
			wantErr: "failed to decode pipeline block",
		},
		{
			name:    "unknown pipeline attribute",
			files:   map[string]string{"x.hcl": `pipeline { threads = 4 }`},
			wantErr: "failed to decode pipeline block",
		},
		{
			name:    "sample without forward read",
			files:   map[string]string{"x.hcl": `sample "a" { fastq_2 = "r2" }`},
			wantErr: `failed to decode sample "a"`,
		},
		{
			name:    "unset environment variable",
			files:   map[string]string{"x.hcl": `pipeline { gtdbtk_db = env.NOPE }`},
			wantErr: "failed to decode pipeline block",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testutil.Context(t)

			dir := testutil.WriteFiles(t, tc.files)
			_, err := NewLoaderWithEnv(nil).Load(ctx, dir)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "pipeline.hcl"))
	assert.Error(t, err)
}

func TestEvalContext(t *testing.T) {
	t.Parallel()

	vars := evalContext([]string{"A=1", "B=x=y", "=bad", "noequals"}).Variables["env"].AsValueMap()
	assert.Len(t, vars, 2)
	assert.Equal(t, "1", vars["A"].AsString())
	assert.Equal(t, "x=y", vars["B"].AsString())
}
