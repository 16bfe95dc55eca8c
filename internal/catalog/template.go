package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Variables available to templates.
const (
	varSampleID = "sample_id"
	varInput    = "input"
	varOutput   = "output"
	varDatabase = "database"
)

// template is a parsed HCL string template such as "${sample_id}_contigs.fa".
type template struct {
	src  string
	expr hclsyntax.Expression
}

func parseTemplate(src string) (template, error) {
	expr, diags := hclsyntax.ParseTemplate([]byte(src), "catalog", hcl.InitialPos)
	if diags.HasErrors() {
		return template{}, fmt.Errorf("invalid template %q: %w", src, diags)
	}
	return template{src: src, expr: expr}, nil
}

// mustParseTemplate is used for the static tables, where a parse failure is
// a programming error.
func mustParseTemplate(src string) template {
	t, err := parseTemplate(src)
	if err != nil {
		panic(err)
	}
	return t
}

// references returns the root variable and, when present, the attribute of
// every variable the template reads, e.g. ("input", "reads_1").
func (t template) references() [][2]string {
	var refs [][2]string
	for _, traversal := range t.expr.Variables() {
		ref := [2]string{traversal.RootName(), ""}
		if len(traversal) > 1 {
			if attr, ok := traversal[1].(hcl.TraverseAttr); ok {
				ref[1] = attr.Name
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

func (t template) render(ctx *hcl.EvalContext) (string, error) {
	v, diags := t.expr.Value(ctx)
	if diags.HasErrors() {
		return "", fmt.Errorf("evaluating %q: %w", t.src, diags)
	}
	v, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("evaluating %q: %w", t.src, err)
	}
	if v.IsNull() || !v.IsKnown() {
		return "", fmt.Errorf("evaluating %q: result is not a known string", t.src)
	}
	return v.AsString(), nil
}

func stringObject(m map[string]string) cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(m))
	for k, v := range m {
		attrs[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(attrs)
}
