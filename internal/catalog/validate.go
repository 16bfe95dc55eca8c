package catalog

import (
	"fmt"
	"strings"
)

// Validate checks that every template refers only to variables and roles its
// stage declares. Errors from all stages are reported together.
func (c *Catalog) Validate() error {
	var errs []string

	for _, name := range c.order {
		def := c.stages[name]
		errs = append(errs, validateStage(def)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func validateStage(def *StageDefinition) []string {
	var errs []string

	if def.Name == "" {
		return []string{"stage with empty name"}
	}
	if len(def.Variants) == 0 && def.Transformation == "" {
		errs = append(errs, fmt.Sprintf("stage '%s': no transformation", def.Name))
	}
	if len(def.Variants) > 0 && (def.Transformation != "" || len(def.Args) > 0) {
		errs = append(errs, fmt.Sprintf("stage '%s': variants replace transformation and arguments, declare them per variant", def.Name))
	}
	if len(def.Variants) == 0 && !def.Resources.valid() {
		errs = append(errs, fmt.Sprintf("stage '%s': no resource profile", def.Name))
	}
	for _, v := range def.Variants {
		if !v.Resources.valid() {
			errs = append(errs, fmt.Sprintf("stage '%s', variant '%s': no resource profile", def.Name, v.Name))
		}
	}

	inputs := make(map[string]InputRole)
	for _, r := range def.Inputs {
		if _, dup := inputs[r.Name]; dup {
			errs = append(errs, fmt.Sprintf("stage '%s': duplicate input role '%s'", def.Name, r.Name))
		}
		inputs[r.Name] = r
	}

	outputs := make(map[string]OutputRole)
	for _, r := range def.Outputs {
		if _, dup := outputs[r.Name]; dup {
			errs = append(errs, fmt.Sprintf("stage '%s': duplicate output role '%s'", def.Name, r.Name))
		}
		outputs[r.Name] = r

		for _, ref := range r.nameTemplate.references() {
			if ref[0] != varSampleID {
				errs = append(errs, fmt.Sprintf("stage '%s', output '%s': name template may only use %s, found '%s'", def.Name, r.Name, varSampleID, ref[0]))
			}
		}
		usesSample := len(r.nameTemplate.references()) > 0
		if usesSample == def.Global {
			errs = append(errs, fmt.Sprintf("stage '%s', output '%s': sample scoping of '%s' does not match the stage", def.Name, r.Name, r.nameTemplate.src))
		}
	}

	type labeled struct {
		label  string
		groups []ArgGroup
	}
	all := []labeled{{def.Name, def.Args}}
	for _, v := range def.Variants {
		if v.Name == "" || v.Transformation == "" {
			errs = append(errs, fmt.Sprintf("stage '%s': variant needs a name and a transformation", def.Name))
		}
		all = append(all, labeled{def.Name + "/" + v.Name, v.Args})
	}

	for _, l := range all {
		label := l.label
		for _, g := range l.groups {
			for _, tok := range g.tokens {
				for _, ref := range tok.references() {
					if msg := checkArgRef(g.When, ref, inputs, outputs); msg != "" {
						errs = append(errs, fmt.Sprintf("stage '%s', argument %q: %s", label, tok.src, msg))
					}
				}
			}
		}
	}

	return errs
}

func checkArgRef(when Condition, ref [2]string, inputs map[string]InputRole, outputs map[string]OutputRole) string {
	switch ref[0] {
	case varSampleID:
		return ""
	case varDatabase:
		if when != WhenDatabase {
			return "database is only available in database-guarded groups"
		}
		return ""
	case varInput:
		r, ok := inputs[ref[1]]
		if !ok {
			return fmt.Sprintf("undeclared input role '%s'", ref[1])
		}
		if r.PairedOnly && when != WhenPaired {
			return fmt.Sprintf("paired-only input role '%s' used outside a paired group", ref[1])
		}
		return ""
	case varOutput:
		r, ok := outputs[ref[1]]
		if !ok {
			return fmt.Sprintf("undeclared output role '%s'", ref[1])
		}
		if r.PairedOnly && when != WhenPaired {
			return fmt.Sprintf("paired-only output role '%s' used outside a paired group", ref[1])
		}
		return ""
	default:
		return fmt.Sprintf("unknown variable '%s'", ref[0])
	}
}
