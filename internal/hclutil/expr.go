package hclutil

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// IsExprDefined reports whether an optional attribute was written in the
// source. gohcl fills omitted optional hcl.Expression fields with a
// zero-width placeholder, so a nil check is not enough.
func IsExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// DecodeOptional evaluates expr into target when the attribute was written.
// It reports whether target was assigned.
func DecodeOptional(expr hcl.Expression, evalCtx *hcl.EvalContext, target any) (bool, hcl.Diagnostics) {
	if !IsExprDefined(expr) {
		return false, nil
	}
	diags := gohcl.DecodeExpression(expr, evalCtx, target)
	return !diags.HasErrors(), diags
}
