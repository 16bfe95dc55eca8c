package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/magflow/internal/config"
	"github.com/specialistvlad/magflow/internal/workflow"
)

// Defaults applied by the CLI.
const (
	DefaultOutputDir    = "output"
	DefaultWorkflowFile = "workflow.yml"
	DefaultWorkflowName = "mag-workflow"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Sample sources. At least one is required; records from the
	// samplesheet come before those of pipeline files.
	Samplesheet   string
	PipelinePaths []string
	Test          bool

	OutputDir      string `validate:"required"`
	WorkflowFile   string `validate:"required"`
	WorkflowName   string `validate:"required"`
	ExecutionSite  string `validate:"required"`
	ContainerImage string `validate:"required"`

	// Overrides are pipeline switches set explicitly on the command line.
	// They win over pipeline files.
	Overrides Overrides

	Workers       int    `validate:"gte=0"`
	LogFormat     string `validate:"oneof=text json"`
	LogLevel      string `validate:"oneof=debug info warn error"`
	TraceExporter string `validate:"omitempty,oneof=none stdout"`
}

// Overrides holds pipeline switches; nil means "not given".
type Overrides struct {
	Assembler      *string
	SkipFastQC     *bool
	SkipBinning    *bool
	SkipTaxonomy   *bool
	SkipAnnotation *bool
	CheckM2DB      *string
	GTDBTkDB       *string
}

// Apply writes every given override into p.
func (o Overrides) Apply(p *config.Pipeline) error {
	if o.Assembler != nil {
		kind, err := config.ParseAssemblerKind(*o.Assembler)
		if err != nil {
			return err
		}
		p.Assembler = kind
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&p.SkipFastQC, o.SkipFastQC)
	setBool(&p.SkipBinning, o.SkipBinning)
	setBool(&p.SkipTaxonomy, o.SkipTaxonomy)
	setBool(&p.SkipAnnotation, o.SkipAnnotation)
	if o.CheckM2DB != nil {
		p.CheckM2DB = *o.CheckM2DB
	}
	if o.GTDBTkDB != nil {
		p.GTDBTkDB = *o.GTDBTkDB
	}
	return nil
}

// DefaultConfig returns a Config with every optional field at its default.
func DefaultConfig() Config {
	return Config{
		OutputDir:      DefaultOutputDir,
		WorkflowFile:   DefaultWorkflowFile,
		WorkflowName:   DefaultWorkflowName,
		ExecutionSite:  workflow.DefaultExecutionSite,
		ContainerImage: workflow.DefaultContainerImage,
		LogFormat:      "text",
		LogLevel:       "info",
	}
}

// NewConfig validates cfg. All problems are reported together.
func NewConfig(cfg Config) (*Config, error) {
	var errs []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			errs = append(errs, describeField(fe))
		}
	}
	if !cfg.Test && cfg.Samplesheet == "" && len(cfg.PipelinePaths) == 0 {
		errs = append(errs, "no samples given: use a samplesheet, a pipeline file or test mode")
	}
	if cfg.Overrides.Assembler != nil {
		if _, err := config.ParseAssemblerKind(*cfg.Overrides.Assembler); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return &cfg, nil
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed the '%s' check", fe.Field(), fe.Tag())
	}
}
