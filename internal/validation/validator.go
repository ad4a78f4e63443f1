// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package validation provides struct validation using go-playground/validator
// v10 through a thread-safe singleton instance. Request and configuration
// structs declare constraints with `validate` tags and are checked before
// any side effect takes place.
//
//	type MatchRequest struct {
//	    Limit     int     `validate:"min=1,max=500"`
//	    Threshold float64 `validate:"min=0,max=1"`
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes a single failed constraint.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	message string
}

// Error returns a human-readable message.
func (e *FieldError) Error() string {
	return e.message
}

// Errors aggregates all failed constraints from one validation pass.
type Errors struct {
	fields []*FieldError
}

// Error joins all field messages.
func (e *Errors) Error() string {
	msgs := make([]string, len(e.fields))
	for i, f := range e.fields {
		msgs[i] = f.message
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the individual field errors.
func (e *Errors) Fields() []*FieldError {
	return e.fields
}

// instance returns the singleton validator, creating it on first use.
// The instance caches struct metadata, so reuse matters for performance.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates a struct's `validate` tags. Returns *Errors on failure.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError for non-struct input is a caller bug.
		return err
	}

	out := &Errors{fields: make([]*FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.fields = append(out.fields, &FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			message: describe(fe),
		})
	}
	return out
}

// describe renders one validator error as a readable message.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
