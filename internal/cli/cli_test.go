package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/magflow/internal/app"
	"github.com/specialistvlad/magflow/internal/config"
	"github.com/specialistvlad/magflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	inv, exit, err := Parse([]string{"--samplesheet", "samples.csv"}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, Generate, inv.Command)
	cfg := inv.Config
	assert.Equal(t, "samples.csv", cfg.Samplesheet)
	assert.Equal(t, app.DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, app.DefaultWorkflowFile, cfg.WorkflowFile)
	assert.Equal(t, "condorpool", cfg.ExecutionSite)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "none", cfg.TraceExporter)
	assert.Equal(t, app.Overrides{}, cfg.Overrides, "defaults must not override pipeline files")
	assert.Empty(t, out.String())
}

func TestParse_FlagsAndPositionalPaths(t *testing.T) {
	t.Parallel()

	inv, _, err := Parse([]string{
		"describe", "-p", "a.hcl",
		"--assembler", "SPAdes", "--skip-taxonomy", "--skip-fastqc=false",
		"--gtdbtk-db", "/db/gtdb", "--workers", "3", "--log-level", "DEBUG",
		"b.hcl", "dir/",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, Describe, inv.Command)
	assert.Equal(t, []string{"a.hcl", "b.hcl", "dir/"}, inv.Config.PipelinePaths)
	assert.Equal(t, 3, inv.Config.Workers)
	assert.Equal(t, "debug", inv.Config.LogLevel)

	o := inv.Config.Overrides
	require.NotNil(t, o.Assembler)
	p := config.DefaultPipeline()
	p.SkipFastQC = true
	require.NoError(t, o.Apply(&p))
	assert.Equal(t, config.Pipeline{Assembler: config.Spades, SkipTaxonomy: true, GTDBTkDB: "/db/gtdb"}, p)
	assert.Nil(t, o.SkipBinning)
	assert.Nil(t, o.CheckM2DB)
}

func TestParse_HelpAndVersion(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"-h"}, {"describe", "--help"}, {"--version"}} {
		var out bytes.Buffer
		inv, exit, err := Parse(args, &out)
		require.NoError(t, err, args)
		assert.True(t, exit, args)
		assert.Nil(t, inv)
		assert.NotEmpty(t, out.String())
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"--this-is-not-a-valid-flag"}, wantMsg: "unknown flag: --this-is-not-a-valid-flag"},
		{name: "no sample source", args: nil, wantMsg: "no samples given"},
		{name: "bad log format", args: []string{"-t", "--log-format", "xml"}, wantMsg: "LogFormat must be one of"},
		{name: "bad assembler", args: []string{"-t", "--assembler", "velvet"}, wantMsg: `unknown assembler "velvet"`},
		{name: "missing config file", args: []string{"-t", "--config", "/nonexistent/magflow.yaml"}, wantMsg: "reading config file"},
		{name: "missing env file", args: []string{"-t", "--env-file", "/nonexistent/.env"}, wantMsg: "reading env file"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			assert.False(t, exit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestParse_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"magflow.yaml": "samplesheet: from-file.csv\noutput-dir: /tmp/runs\nskip-binning: true\nname: yaml-name\n",
	})

	inv, _, err := Parse([]string{"--config", filepath.Join(dir, "magflow.yaml"), "--name", "flag-name"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg := inv.Config
	assert.Equal(t, "from-file.csv", cfg.Samplesheet)
	assert.Equal(t, "/tmp/runs", cfg.OutputDir)
	assert.Equal(t, "flag-name", cfg.WorkflowName, "flags beat the config file")
	require.NotNil(t, cfg.Overrides.SkipBinning)
	assert.True(t, *cfg.Overrides.SkipBinning)
}

func TestParse_EnvironmentAndEnvFile(t *testing.T) {
	t.Setenv("MAGFLOW_EXECUTION_SITE", "from-env")
	t.Setenv("MAGFLOW_TEST", "true")

	dir := testutil.WriteFiles(t, map[string]string{
		".env":   "MAGFLOW_EXECUTION_SITE=from-dotenv\nMAGFLOW_CHECKM2_DB=/dotenv/checkm2\nDB_ROOT=/dbs\n",
		"c.yaml": "checkm2-db: /yaml/checkm2\n",
	})

	inv, _, err := Parse([]string{"--env-file", filepath.Join(dir, ".env"), "-c", filepath.Join(dir, "c.yaml")}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg := inv.Config
	assert.True(t, cfg.Test)
	assert.Equal(t, "from-env", cfg.ExecutionSite, "the real environment beats the env file")
	require.NotNil(t, cfg.Overrides.CheckM2DB)
	assert.Equal(t, "/dotenv/checkm2", *cfg.Overrides.CheckM2DB, "the env file beats the config file")
	assert.Contains(t, inv.Environ, "DB_ROOT=/dbs")
	assert.NotContains(t, inv.Environ, "MAGFLOW_EXECUTION_SITE=from-dotenv")
}
