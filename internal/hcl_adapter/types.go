package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// rootSchema lists the top-level blocks of a pipeline file.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pipeline"},
		{Type: "sample", LabelNames: []string{"id"}},
	},
}

// pipelineBlock is the HCL shape of the pipeline switches. Attributes are
// expressions so that omitted ones keep their defaults.
type pipelineBlock struct {
	Assembler      hcl.Expression `hcl:"assembler,optional"`
	SkipFastQC     hcl.Expression `hcl:"skip_fastqc,optional"`
	SkipBinning    hcl.Expression `hcl:"skip_binning,optional"`
	SkipTaxonomy   hcl.Expression `hcl:"skip_taxonomy,optional"`
	SkipAnnotation hcl.Expression `hcl:"skip_annotation,optional"`
	CheckM2DB      hcl.Expression `hcl:"checkm2_db,optional"`
	GTDBTkDB       hcl.Expression `hcl:"gtdbtk_db,optional"`
}

// sampleBlock is one `sample "<id>" { ... }` block.
type sampleBlock struct {
	Forward   string `hcl:"fastq_1"`
	Reverse   string `hcl:"fastq_2,optional"`
	Group     string `hcl:"group,optional"`
	SingleEnd bool   `hcl:"single_end,optional"`
}
