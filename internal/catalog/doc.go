// Package catalog is the read-only registry of pipeline stage definitions.
//
// A StageDefinition declares what a stage consumes (input roles), what it
// writes (output roles, as HCL name templates over sample_id) and how its
// command line is built (argument groups of HCL templates, each guarded by a
// condition such as "paired reads only"). Stages that fill a slot with one of
// several tools, like assembly, list those tools as variants; a variant brings
// its own transformation, arguments and resource profile.
//
// The default catalog is built once per process and never mutated. Every
// template is parsed and checked when the catalog is built, so a bad
// definition fails at startup rather than while a graph is assembled.
package catalog
