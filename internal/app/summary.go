package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/magflow/internal/assembler"
	"github.com/specialistvlad/magflow/internal/workflow"
)

func printSummary(w io.Writer, in *inputs, report *assembler.Report, res *Result, site string) {
	fmt.Fprintf(w, "\nFound %d samples:\n", len(in.samples))
	for _, s := range in.samples {
		fmt.Fprintf(w, "  - %s (%s)\n", s.ID, s.Layout)
	}
	if in.skippedRow > 0 {
		fmt.Fprintf(w, "Skipped %d incomplete samplesheet rows.\n", in.skippedRow)
	}

	fmt.Fprintf(w, "\nCreated MAG workflow with %s assembler: %d jobs, %d dependencies.\n",
		in.pipeline.Assembler, report.Jobs, report.Edges)
	printWarnings(w, report)

	fmt.Fprintln(w, "\nWorkflow generated successfully!")
	fmt.Fprintf(w, "  Workflow: %s\n", res.Workflow)
	fmt.Fprintf(w, "  Site catalog: %s\n", res.Sites)
	fmt.Fprintf(w, "  Transformation catalog: %s\n", res.Transformations)
	fmt.Fprintf(w, "  Replica catalog: %s\n", res.Replicas)
	fmt.Fprintf(w, "\nTo submit the workflow:\n  pegasus-plan --submit -s %s -o local %s\n", site, res.Workflow)
}

func printWarnings(w io.Writer, report *assembler.Report) {
	if len(report.Warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "Warnings:")
	for _, warn := range report.Warnings {
		if warn.SampleID != "" {
			fmt.Fprintf(w, "  - %s: %s\n", warn.SampleID, warn.Message)
		} else {
			fmt.Fprintf(w, "  - %s\n", warn.Message)
		}
	}
}

// printJobs lists jobs in construction order with their parents.
func printJobs(w io.Writer, g *workflow.Graph, report *assembler.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tTRANSFORMATION\tRESOURCES\tPARENTS")
	for _, j := range g.Jobs() {
		parents := "-"
		if p := g.Parents(j.ID); len(p) > 0 {
			parents = strings.Join(p, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", j.ID, j.Transformation, j.Resources, parents)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d jobs, %d artifacts, %d dependencies.\n", report.Jobs, report.Artifacts, report.Edges)
	printWarnings(w, report)
	return nil
}
