// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package sample

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultGroup is assigned to records without a group.
const DefaultGroup = "default"

// ErrInvalidSample is returned for records missing an id or a forward read.
var ErrInvalidSample = errors.New("invalid sample")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Layout is the read layout of a sample.
type Layout int

const (
	Paired Layout = iota
	SingleEnd
)

// String returns the human readable layout name.
func (l Layout) String() string {
	switch l {
	case Paired:
		return "paired-end"
	case SingleEnd:
		return "single-end"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// RawRecord is a sample as written by the user.
type RawRecord struct {
	ID        string `validate:"required"`
	Forward   string `validate:"required"`
	Reverse   string
	Group     string
	SingleEnd bool
}

// Sample is an immutable, validated sample.
type Sample struct {
	ID      string
	Group   string
	Layout  Layout
	Forward string
	// Reverse is empty unless Layout is Paired.
	Reverse string
	// LayoutInferred is set when the record did not flag itself single-end
	// but carried no reverse read.
	LayoutInferred bool
}

// IsPaired reports whether the sample has a reverse read.
func (s Sample) IsPaired() bool {
	return s.Layout == Paired
}

// Normalize validates a raw record and resolves its layout. It performs no I/O.
func Normalize(raw RawRecord) (Sample, error) {
	raw.ID = strings.TrimSpace(raw.ID)
	raw.Forward = strings.TrimSpace(raw.Forward)
	raw.Reverse = strings.TrimSpace(raw.Reverse)
	raw.Group = strings.TrimSpace(raw.Group)

	if err := validate.Struct(raw); err != nil {
		return Sample{}, fmt.Errorf("%w: %s", ErrInvalidSample, describe(raw.ID, err))
	}

	s := Sample{
		ID:      raw.ID,
		Group:   raw.Group,
		Forward: raw.Forward,
		Layout:  Paired,
		Reverse: raw.Reverse,
	}
	if s.Group == "" {
		s.Group = DefaultGroup
	}

	switch {
	case raw.SingleEnd:
		s.Layout = SingleEnd
		s.Reverse = ""
	case raw.Reverse == "":
		s.Layout = SingleEnd
		s.LayoutInferred = true
	}

	return s, nil
}

// Check validates a sample that may not have come from Normalize. A paired
// sample without a reverse read is returned as single-end with LayoutInferred
// set.
func Check(s Sample) (Sample, error) {
	if err := validate.Struct(RawRecord{ID: s.ID, Forward: s.Forward}); err != nil {
		return Sample{}, fmt.Errorf("%w: %s", ErrInvalidSample, describe(s.ID, err))
	}

	switch s.Layout {
	case Paired:
		if s.Reverse == "" {
			s.Layout = SingleEnd
			s.LayoutInferred = true
		}
	case SingleEnd:
		s.Reverse = ""
	default:
		return Sample{}, fmt.Errorf("%w: sample %q has unknown layout %v", ErrInvalidSample, s.ID, s.Layout)
	}
	if s.Group == "" {
		s.Group = DefaultGroup
	}
	return s, nil
}

// describe turns validator output into a short message naming the record.
func describe(id string, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldName(fe.Field()))
	}

	subject := "record"
	if id != "" {
		subject = fmt.Sprintf("record %q", id)
	}
	return fmt.Sprintf("%s is missing %s", subject, strings.Join(fields, ", "))
}

func fieldName(field string) string {
	switch field {
	case "ID":
		return "id"
	case "Forward":
		return "forward read (fastq_1)"
	default:
		return strings.ToLower(field)
	}
}
