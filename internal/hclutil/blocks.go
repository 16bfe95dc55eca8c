// Package hclutil holds small helpers on top of hashicorp/hcl shared by the
// configuration loaders.
package hclutil

import (
	"github.com/hashicorp/hcl/v2"
)

// FindUniqueBlock returns the block of the given type, or nil if there is
// none. Every repeat of the block yields an error diagnostic pointing at the
// repeat, with the first definition as context.
func FindUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "Only one \"" + blockType + "\" block is allowed. The first one is defined at " + found.DefRange.String() + ".",
				Subject:  block.DefRange.Ptr(),
				Context:  found.DefRange.Ptr(),
			})
			continue
		}
		found = block
	}

	return found, diags
}

// BlocksOfType filters blocks by type, keeping source order.
func BlocksOfType(blocks hcl.Blocks, blockType string) hcl.Blocks {
	var out hcl.Blocks
	for _, b := range blocks {
		if b.Type == blockType {
			out = append(out, b)
		}
	}
	return out
}
