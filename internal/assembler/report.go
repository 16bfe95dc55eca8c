package assembler

// WarningCode classifies a recoverable condition met during assembly.
type WarningCode string

const (
	// WarnLayoutInferred: a sample had no reverse read and was not flagged
	// single-end; it was built as single-end.
	WarnLayoutInferred WarningCode = "layout_inferred"
	// WarnEmptyAggregation: no QC artifact exists, so no report job was added.
	WarnEmptyAggregation WarningCode = "empty_aggregation"
)

// Warning is one recoverable condition.
type Warning struct {
	Code     WarningCode
	SampleID string
	Message  string
}

// Report summarizes an assembly.
type Report struct {
	Warnings []Warning

	Samples          int
	PairedSamples    int
	SingleEndSamples int
	Jobs             int
	Artifacts        int
	Edges            int
	QCArtifacts      int
	// Aggregated is true when the multiqc join was attached.
	Aggregated bool
	// Bins lists each binned sample's bins directory, in sample order.
	Bins []string
}

// HasWarning reports whether a warning with the given code was recorded.
func (r *Report) HasWarning(code WarningCode) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func (r *Report) warn(code WarningCode, sampleID, msg string) {
	r.Warnings = append(r.Warnings, Warning{Code: code, SampleID: sampleID, Message: msg})
}
