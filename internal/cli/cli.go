package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/magflow/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that set flags, e.g.
// MAGFLOW_OUTPUT_DIR for --output-dir.
const EnvPrefix = "MAGFLOW"

// Version is reported by --version.
var Version = "dev"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command is the action requested on the command line.
type Command int

const (
	// Generate writes the workflow and its catalogs.
	Generate Command = iota
	// Describe prints the job graph without writing files.
	Describe
)

// Invocation is a parsed command line.
type Invocation struct {
	Command Command
	Config  *app.Config
	// Environ is the process environment plus the entries of --env-file,
	// as KEY=VALUE pairs. Pipeline files see it as env.
	Environ []string
}

// Parse processes command-line arguments. It returns the invocation, a
// boolean indicating if the program should exit cleanly (help or version
// was printed), or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	var inv *Invocation
	v := viper.New()

	capture := func(cmd Command) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, positional []string) error {
			parsed, err := resolve(v, c, positional)
			if err != nil {
				return err
			}
			parsed.Command = cmd
			inv = parsed
			return nil
		}
	}

	root := &cobra.Command{
		Use:   "magflow [flags] [PIPELINE_PATH...]",
		Short: "Generate metagenome assembly and binning workflows",
		Long: `magflow expands a set of sequencing samples into a workflow of jobs
(QC, trimming, assembly, binning, quality, taxonomy, annotation, report)
and writes it, with its site, transformation and replica catalogs, as YAML.

Samples come from a CSV samplesheet (sample,fastq_1,fastq_2,group), from
sample blocks in HCL pipeline files, or from the nf-core/mag test data.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          capture(Generate),
	}
	root.SetOut(output)
	root.SetErr(output)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)

	describe := &cobra.Command{
		Use:   "describe [flags] [PIPELINE_PATH...]",
		Short: "Print the jobs and their parents without writing files",
		Args:  cobra.ArbitraryArgs,
		RunE:  capture(Describe),
	}
	root.AddCommand(describe)

	registerFlags(root.PersistentFlags())
	if err := v.BindPFlags(root.PersistentFlags()); err != nil {
		return nil, false, fmt.Errorf("binding flags: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if inv == nil {
		return nil, true, nil
	}
	return inv, false, nil
}

func registerFlags(fs *pflag.FlagSet) {
	defaults := app.DefaultConfig()

	fs.StringP("config", "c", "", "YAML file with flag values, keyed by flag name.")
	fs.String("env-file", "", "A .env file with "+EnvPrefix+"_* settings and variables for pipeline files.")

	fs.StringP("samplesheet", "s", "", "Input samplesheet CSV (sample,fastq_1,fastq_2,group[,single_end]).")
	fs.StringSliceP("pipeline", "p", nil, "HCL pipeline file or directory; repeatable.")
	fs.BoolP("test", "t", false, "Use the nf-core/mag test data (downloads about 10MB).")

	fs.StringP("output", "o", defaults.WorkflowFile, "Workflow file, relative to the output directory.")
	fs.String("output-dir", defaults.OutputDir, "Directory for the workflow, its catalogs and test data.")
	fs.String("name", defaults.WorkflowName, "Workflow name.")
	fs.StringP("execution-site", "e", defaults.ExecutionSite, "HTCondor execution site name.")
	fs.String("container-image", defaults.ContainerImage, "Container image running every tool.")

	fs.String("assembler", "megahit", "Assembler: 'megahit' or 'spades'.")
	fs.Bool("skip-fastqc", false, "Skip FastQC read reports.")
	fs.Bool("skip-binning", false, "Skip binning and everything after it.")
	fs.Bool("skip-taxonomy", false, "Skip GTDB-Tk classification.")
	fs.Bool("skip-annotation", false, "Skip Prokka annotation.")
	fs.String("checkm2-db", "", "Path to the CheckM2 database.")
	fs.String("gtdbtk-db", "", "Path to the GTDB-Tk database.")

	fs.Int("workers", 0, "Concurrent sample builds; 0 uses every CPU.")
	fs.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	fs.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.String("trace", "none", "Span exporter. Options: 'none' or 'stdout'.")
}

// resolve layers flags, environment, --env-file and --config into an
// app.Config. Precedence, highest first: flags, environment, env file,
// config file, defaults.
func resolve(v *viper.Viper, cmd *cobra.Command, positional []string) (*Invocation, error) {
	environ := os.Environ()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ExitError{Code: 2, Message: fmt.Sprintf("reading config file: %v", err)}
		}
	}
	if path := v.GetString("env-file"); path != "" {
		extra, err := loadEnvFile(v, path, environ)
		if err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		environ = append(environ, extra...)
	}

	cfg := app.Config{
		Samplesheet:    v.GetString("samplesheet"),
		PipelinePaths:  append(v.GetStringSlice("pipeline"), positional...),
		Test:           v.GetBool("test"),
		OutputDir:      v.GetString("output-dir"),
		WorkflowFile:   v.GetString("output"),
		WorkflowName:   v.GetString("name"),
		ExecutionSite:  v.GetString("execution-site"),
		ContainerImage: v.GetString("container-image"),
		Overrides: app.Overrides{
			Assembler:      optional(v, "assembler", v.GetString),
			SkipFastQC:     optional(v, "skip-fastqc", v.GetBool),
			SkipBinning:    optional(v, "skip-binning", v.GetBool),
			SkipTaxonomy:   optional(v, "skip-taxonomy", v.GetBool),
			SkipAnnotation: optional(v, "skip-annotation", v.GetBool),
			CheckM2DB:      optional(v, "checkm2-db", v.GetString),
			GTDBTkDB:       optional(v, "gtdbtk-db", v.GetString),
		},
		Workers:       v.GetInt("workers"),
		LogFormat:     strings.ToLower(v.GetString("log-format")),
		LogLevel:      strings.ToLower(v.GetString("log-level")),
		TraceExporter: strings.ToLower(v.GetString("trace")),
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return &Invocation{Config: config, Environ: environ}, nil
}

// optional returns the value of key only if some source set it, so that
// pipeline file values survive flag defaults.
func optional[T any](v *viper.Viper, key string, get func(string) T) *T {
	if !v.IsSet(key) {
		return nil
	}
	val := get(key)
	return &val
}

// loadEnvFile reads a .env file. Its MAGFLOW_* entries become settings below
// the real environment; entries not already in environ are returned for
// pipeline files.
func loadEnvFile(v *viper.Viper, path string, environ []string) ([]string, error) {
	entries, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	present := make(map[string]bool, len(environ))
	for _, kv := range environ {
		k, _, _ := strings.Cut(kv, "=")
		present[k] = true
	}

	settings := make(map[string]any)
	var extra []string
	for k, val := range entries {
		if present[k] {
			continue
		}
		extra = append(extra, k+"="+val)
		if key, ok := strings.CutPrefix(k, EnvPrefix+"_"); ok {
			settings[strings.ReplaceAll(strings.ToLower(key), "_", "-")] = val
		}
	}
	slices.Sort(extra)
	if err := v.MergeConfigMap(settings); err != nil {
		return nil, fmt.Errorf("applying env file: %w", err)
	}
	return extra, nil
}
