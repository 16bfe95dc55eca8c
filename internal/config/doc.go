// Package config defines the format-agnostic pipeline configuration: which
// optional stages run, which assembler fills the assembly slot, and the raw
// sample records to build for. Concrete file formats live in their own
// packages and implement Loader.
package config
