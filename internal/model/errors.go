package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownModel   = errors.New("unknown model")
	ErrSchemaMismatch = errors.New("feature schema mismatch")
	ErrMissingModel   = errors.New("model artifact unavailable")
)

// SchemaMismatchError is returned when a feature row does not carry exactly
// the columns, in order, that a classifier was trained on.
type SchemaMismatchError struct {
	Model    Name
	Expected []string
	Got      []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: %v: expected [%s], got [%s]",
		e.Model, ErrSchemaMismatch, strings.Join(e.Expected, ", "), strings.Join(e.Got, ", "))
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// MissingArtifactError is returned at load time when a model artifact is
// absent, unreadable or malformed.
type MissingArtifactError struct {
	Model Name
	Path  string
	Err   error
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Model, e.Path, e.Err)
}

func (e *MissingArtifactError) Unwrap() []error { return []error{ErrMissingModel, e.Err} }
