// Package artifact is the arena of named files flowing through a workflow.
//
// Every file is registered exactly once, either as a raw input that nothing
// produces or as the output of exactly one job. Callers hold a Handle, an
// index into the arena, instead of a pointer, so that a Registry can be
// copied into another one by replaying it in order.
package artifact
