package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColumn is returned when a projection names a column the dataset does not have.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrThresholdOutOfDomain is returned when a select-box threshold is not an observed value.
	ErrThresholdOutOfDomain = errors.New("threshold not in observed values")
	// ErrFeaturesMissing is returned when a reporter receives a dataset that was never derived.
	ErrFeaturesMissing = errors.New("derived features missing")
)

// DataLoadError reports a source that could not be read or parsed.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// FeatureDerivationError reports the first record whose inputs cannot produce
// the derived columns. Row is 1-based over the data rows.
type FeatureDerivationError struct {
	Row    int
	Column string
	Err    error
}

func (e *FeatureDerivationError) Error() string {
	return fmt.Sprintf("derive features: record %d column %q: %v", e.Row, e.Column, e.Err)
}

func (e *FeatureDerivationError) Unwrap() error { return e.Err }
