// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package sample holds the normalized description of one sequencing sample.
//
// Records arrive from a samplesheet or a pipeline file as loosely typed rows
// (RawRecord). Normalize validates them and resolves the read layout, so that
// everything downstream can branch on a closed Layout value instead of
// re-inspecting optional fields.
//
//   - Paired: a forward and a reverse read file.
//   - SingleEnd: a forward read file only.
//
// A record that does not claim to be single-end but has no reverse read is
// still accepted. It is normalized to SingleEnd and marked LayoutInferred so
// the caller can surface a warning.
package sample
