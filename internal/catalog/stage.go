package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Condition guards an argument group.
type Condition int

const (
	Always Condition = iota
	WhenPaired
	WhenSingleEnd
	// WhenDatabase applies when a reference database path is configured.
	WhenDatabase
)

func (c Condition) holds(b Binding) bool {
	switch c {
	case WhenPaired:
		return b.Paired
	case WhenSingleEnd:
		return !b.Paired
	case WhenDatabase:
		return b.Database != ""
	default:
		return true
	}
}

// InputRole is a named input slot of a stage.
type InputRole struct {
	Name       string
	PairedOnly bool
}

// OutputRole is a named output of a stage.
type OutputRole struct {
	Name       string
	PairedOnly bool
	// QC outputs feed the cross-sample report.
	QC       bool
	StageOut bool

	nameTemplate template
}

// Template returns the unevaluated name template.
func (o OutputRole) Template() string {
	return o.nameTemplate.src
}

// ArgGroup is a run of argument tokens emitted together when When holds.
type ArgGroup struct {
	When   Condition
	tokens []template
}

// Variant is an alternative tool for a stage slot.
type Variant struct {
	Name           string
	Transformation string
	Resources      Resources
	Args           []ArgGroup
}

// StageDefinition is an immutable catalog entry.
type StageDefinition struct {
	Name           string
	Transformation string
	Resources      Resources
	Inputs         []InputRole
	Outputs        []OutputRole
	Args           []ArgGroup
	// Variants, when present, replace Transformation, Resources and Args.
	// One of them must be selected through Instance.
	Variants []Variant
	// Global stages produce run-wide outputs not scoped to a sample.
	Global bool
}

// Binding is everything a stage needs to render one job.
type Binding struct {
	SampleID string
	Paired   bool
	// Inputs maps input role names to artifact names.
	Inputs   map[string]string
	Database string
}

// RenderedOutput is one output of a rendered job.
type RenderedOutput struct {
	Role     string
	Name     string
	QC       bool
	StageOut bool
}

// Rendered is the resolved contract of one job.
type Rendered struct {
	Args    []string
	Outputs []RenderedOutput
}

// Instance is a stage definition with its variant resolved.
type Instance struct {
	// Stage is the job's stage label: the variant name if one was chosen.
	Stage          string
	Slot           string
	Transformation string
	Resources      Resources

	def  *StageDefinition
	args []ArgGroup
}

// Instance resolves a variant of the stage. Stages without variants accept
// only the empty variant.
func (d *StageDefinition) Instance(variant string) (Instance, error) {
	if len(d.Variants) == 0 {
		if variant != "" {
			return Instance{}, fmt.Errorf("%w: stage %q has no variant %q", ErrUnknownStage, d.Name, variant)
		}
		return Instance{
			Stage:          d.Name,
			Slot:           d.Name,
			Transformation: d.Transformation,
			Resources:      d.Resources,
			def:            d,
			args:           d.Args,
		}, nil
	}

	for i := range d.Variants {
		v := &d.Variants[i]
		if v.Name == variant {
			return Instance{
				Stage:          v.Name,
				Slot:           d.Name,
				Transformation: v.Transformation,
				Resources:      v.Resources,
				def:            d,
				args:           v.Args,
			}, nil
		}
	}
	return Instance{}, fmt.Errorf("%w: stage %q has no variant %q", ErrUnknownStage, d.Name, variant)
}

// InputRoles returns the input roles that apply to the given layout, in
// declaration order.
func (in Instance) InputRoles(paired bool) []InputRole {
	roles := make([]InputRole, 0, len(in.def.Inputs))
	for _, r := range in.def.Inputs {
		if r.PairedOnly && !paired {
			continue
		}
		roles = append(roles, r)
	}
	return roles
}

// Render resolves output names and arguments for one job.
func (in Instance) Render(b Binding) (Rendered, error) {
	for _, role := range in.InputRoles(b.Paired) {
		if _, ok := b.Inputs[role.Name]; !ok {
			return Rendered{}, fmt.Errorf("stage %q: input role %q is not bound", in.Stage, role.Name)
		}
	}

	nameCtx := &hcl.EvalContext{Variables: map[string]cty.Value{
		varSampleID: cty.StringVal(b.SampleID),
	}}

	var out Rendered
	outputs := make(map[string]string, len(in.def.Outputs))
	for _, role := range in.def.Outputs {
		if role.PairedOnly && !b.Paired {
			continue
		}
		name, err := role.nameTemplate.render(nameCtx)
		if err != nil {
			return Rendered{}, fmt.Errorf("stage %q output %q: %w", in.Stage, role.Name, err)
		}
		outputs[role.Name] = name
		out.Outputs = append(out.Outputs, RenderedOutput{
			Role:     role.Name,
			Name:     name,
			QC:       role.QC,
			StageOut: role.StageOut,
		})
	}

	argCtx := &hcl.EvalContext{Variables: map[string]cty.Value{
		varSampleID: cty.StringVal(b.SampleID),
		varDatabase: cty.StringVal(b.Database),
		varInput:    stringObject(b.Inputs),
		varOutput:   stringObject(outputs),
	}}

	for _, group := range in.args {
		if !group.When.holds(b) {
			continue
		}
		for _, tok := range group.tokens {
			arg, err := tok.render(argCtx)
			if err != nil {
				return Rendered{}, fmt.Errorf("stage %q arguments: %w", in.Stage, err)
			}
			out.Args = append(out.Args, arg)
		}
	}

	return out, nil
}
