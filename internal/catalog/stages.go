package catalog

// Stage names.
const (
	StageFastQC   = "fastqc"
	StageFastp    = "fastp"
	StageAssembly = "assembly"
	StageQuast    = "quast"
	StageProdigal = "prodigal"
	StageDepth    = "metabat2-depth"
	StageBin      = "metabat2-bin"
	StageCheckM2  = "checkm2"
	StageGTDBTk   = "gtdbtk"
	StageProkka   = "prokka"
	StageMultiQC  = "multiqc"
)

// Assembly variants.
const (
	VariantMegahit = "megahit"
	VariantSpades  = "spades"
)

// Role names shared between stages.
const (
	RoleReads1   = "reads_1"
	RoleReads2   = "reads_2"
	RoleTrimmed1 = "trimmed_1"
	RoleTrimmed2 = "trimmed_2"
	RoleContigs  = "contigs"
	RoleDepth    = "depth"
	RoleBins     = "bins"
	RoleQuality  = "quality"
)

func input(name string) InputRole { return InputRole{Name: name} }

func pairedInput(name string) InputRole { return InputRole{Name: name, PairedOnly: true} }

func output(name, tmpl string) OutputRole {
	return OutputRole{Name: name, StageOut: true, nameTemplate: mustParseTemplate(tmpl)}
}

func qc(o OutputRole) OutputRole {
	o.QC = true
	return o
}

func pairedOnly(o OutputRole) OutputRole {
	o.PairedOnly = true
	return o
}

func args(when Condition, tokens ...string) ArgGroup {
	g := ArgGroup{When: when, tokens: make([]template, len(tokens))}
	for i, tok := range tokens {
		g.tokens[i] = mustParseTemplate(tok)
	}
	return g
}

// builtinStages returns the eleven stages of the metagenomics pipeline in
// pipeline order.
func builtinStages() []StageDefinition {
	return []StageDefinition{
		{
			Name:           StageFastQC,
			Transformation: "fastqc",
			Resources:      Resources{Memory: "2GB", Cores: 2},
			Inputs:         []InputRole{input(RoleReads1), pairedInput(RoleReads2)},
			Outputs: []OutputRole{
				output("html_1", "${sample_id}_R1_fastqc.html"),
				qc(output("zip_1", "${sample_id}_R1_fastqc.zip")),
				pairedOnly(output("html_2", "${sample_id}_R2_fastqc.html")),
				pairedOnly(qc(output("zip_2", "${sample_id}_R2_fastqc.zip"))),
			},
			Args: []ArgGroup{
				args(Always, "--outdir", ".", "--threads", "2"),
			},
		},
		{
			Name:           StageFastp,
			Transformation: "fastp",
			Resources:      Resources{Memory: "4GB", Cores: 4},
			Inputs:         []InputRole{input(RoleReads1), pairedInput(RoleReads2)},
			Outputs: []OutputRole{
				output(RoleTrimmed1, "${sample_id}_trimmed_R1.fastq.gz"),
				qc(output("json", "${sample_id}_fastp.json")),
				output("html", "${sample_id}_fastp.html"),
				pairedOnly(output(RoleTrimmed2, "${sample_id}_trimmed_R2.fastq.gz")),
			},
			Args: []ArgGroup{
				args(Always,
					"-i", "${input.reads_1}",
					"-o", "${output.trimmed_1}",
					"--json", "${output.json}",
					"--html", "${output.html}",
					"--thread", "4",
					"--qualified_quality_phred", "20",
					"--length_required", "50",
				),
				args(WhenPaired, "-I", "${input.reads_2}", "-O", "${output.trimmed_2}"),
			},
		},
		{
			Name:    StageAssembly,
			Inputs:  []InputRole{input(RoleTrimmed1), pairedInput(RoleTrimmed2)},
			Outputs: []OutputRole{output(RoleContigs, "${sample_id}_contigs.fa"), output("log", "${sample_id}_assembly.log")},
			Variants: []Variant{
				{
					Name:           VariantMegahit,
					Transformation: "megahit",
					Resources:      Resources{Memory: "16GB", Cores: 8},
					Args: []ArgGroup{
						args(WhenPaired, "-1", "${input.trimmed_1}", "-2", "${input.trimmed_2}"),
						args(WhenSingleEnd, "-r", "${input.trimmed_1}"),
						args(Always, "-o", "${sample_id}_megahit", "-t", "8", "--min-contig-len", "1000"),
					},
				},
				{
					Name:           VariantSpades,
					Transformation: "spades",
					Resources:      Resources{Memory: "32GB", Cores: 16},
					Args: []ArgGroup{
						args(WhenPaired, "-1", "${input.trimmed_1}", "-2", "${input.trimmed_2}"),
						args(WhenSingleEnd, "-s", "${input.trimmed_1}"),
						args(Always, "-o", "${sample_id}_spades", "-t", "16", "--meta"),
					},
				},
			},
		},
		{
			Name:           StageQuast,
			Transformation: "quast",
			Resources:      Resources{Memory: "4GB", Cores: 4},
			Inputs:         []InputRole{input(RoleContigs)},
			Outputs: []OutputRole{
				qc(output("report", "${sample_id}_quast_report.tsv")),
				output("html", "${sample_id}_quast_report.html"),
			},
			Args: []ArgGroup{
				args(Always, "${input.contigs}", "-o", "${sample_id}_quast", "--min-contig", "1000", "--threads", "4"),
			},
		},
		{
			Name:           StageProdigal,
			Transformation: "prodigal",
			Resources:      Resources{Memory: "4GB", Cores: 1},
			Inputs:         []InputRole{input(RoleContigs)},
			Outputs: []OutputRole{
				output("proteins", "${sample_id}_genes.faa"),
				output("coords", "${sample_id}_genes.gff"),
			},
			Args: []ArgGroup{
				args(Always, "-i", "${input.contigs}", "-a", "${output.proteins}", "-o", "${output.coords}", "-f", "gff", "-p", "meta"),
			},
		},
		{
			Name:           StageDepth,
			Transformation: "metabat2",
			Resources:      Resources{Memory: "8GB", Cores: 4},
			Inputs:         []InputRole{input(RoleContigs)},
			Outputs:        []OutputRole{output(RoleDepth, "${sample_id}_depth.txt")},
			Args: []ArgGroup{
				args(Always, "jgi_summarize_bam_contig_depths", "--outputDepth", "${output.depth}", "${input.contigs}"),
			},
		},
		{
			Name:           StageBin,
			Transformation: "metabat2",
			Resources:      Resources{Memory: "8GB", Cores: 4},
			Inputs:         []InputRole{input(RoleContigs), input(RoleDepth)},
			Outputs:        []OutputRole{output(RoleBins, "${sample_id}_bins")},
			Args: []ArgGroup{
				args(Always, "-i", "${input.contigs}", "-a", "${input.depth}", "-o", "${sample_id}_bins/bin", "-m", "1500", "-t", "4"),
			},
		},
		{
			Name:           StageCheckM2,
			Transformation: "checkm2",
			Resources:      Resources{Memory: "16GB", Cores: 8},
			Inputs:         []InputRole{input(RoleBins)},
			Outputs:        []OutputRole{qc(output(RoleQuality, "${sample_id}_checkm2_quality.tsv"))},
			Args: []ArgGroup{
				args(Always, "predict", "--input", "${input.bins}", "--output-directory", "${sample_id}_checkm2", "--threads", "8"),
				args(WhenDatabase, "--database_path", "${database}"),
			},
		},
		{
			Name:           StageGTDBTk,
			Transformation: "gtdbtk",
			Resources:      Resources{Memory: "64GB", Cores: 8},
			// quality is consumed only to order taxonomy after bin assessment.
			Inputs:  []InputRole{input(RoleBins), input(RoleQuality)},
			Outputs: []OutputRole{output("summary", "${sample_id}_gtdbtk.summary.tsv")},
			Args: []ArgGroup{
				args(Always, "classify_wf", "--genome_dir", "${input.bins}", "--out_dir", "${sample_id}_gtdbtk", "--extension", "fa", "--cpus", "8"),
				args(WhenDatabase, "--gtdbtk_data_path", "${database}"),
			},
		},
		{
			Name:           StageProkka,
			Transformation: "prokka",
			Resources:      Resources{Memory: "8GB", Cores: 4},
			Inputs:         []InputRole{input(RoleBins)},
			Outputs: []OutputRole{
				output("gff", "${sample_id}_prokka.gff"),
				output("gbk", "${sample_id}_prokka.gbk"),
				output("faa", "${sample_id}_prokka.faa"),
			},
			Args: []ArgGroup{
				args(Always, "--outdir", "${sample_id}_prokka", "--prefix", "${sample_id}", "--metagenome", "--cpus", "4", "${input.bins}"),
			},
		},
		{
			Name:           StageMultiQC,
			Transformation: "multiqc",
			Resources:      Resources{Memory: "4GB", Cores: 2},
			Global:         true,
			Outputs: []OutputRole{
				output("report", "multiqc_report.html"),
				output("data", "multiqc_data.json"),
			},
			Args: []ArgGroup{
				args(Always, ".", "-o", "multiqc_output", "--force"),
			},
		},
	}
}
