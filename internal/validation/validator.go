// Package validation provides input validation utilities for dataset operations.
// This package implements small reusable validators for the checks the loader
// and the command line share: required header columns, positive counts and
// non-empty datasets.
package validation

import (
	"fmt"

	"github.com/paveg/statdex/internal/errors"
)

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ColumnResolver interface for types that map column names to positions
type ColumnResolver interface {
	ResolveColumn(column string) (int, bool)
}

// ColumnValidator validates that every required column can be resolved
type ColumnValidator struct {
	header  ColumnResolver
	columns []string
	op      string
}

// NewColumnValidator creates a validator for required columns
func NewColumnValidator(header ColumnResolver, op string, columns ...string) *ColumnValidator {
	return &ColumnValidator{
		header:  header,
		columns: columns,
		op:      op,
	}
}

// Validate checks if all columns exist in the header
func (v *ColumnValidator) Validate() error {
	for _, column := range v.columns {
		if _, ok := v.header.ResolveColumn(column); !ok {
			return errors.NewMissingColumnError(v.op, column)
		}
	}
	return nil
}

// PositiveValidator validates that a count is greater than zero
type PositiveValidator struct {
	value int
	name  string
	op    string
}

// NewPositiveValidator creates a validator for a positive count
func NewPositiveValidator(value int, op, name string) *PositiveValidator {
	return &PositiveValidator{
		value: value,
		name:  name,
		op:    op,
	}
}

// Validate checks if the value is positive
func (v *PositiveValidator) Validate() error {
	if v.value <= 0 {
		return errors.NewValidationError(v.op, v.name, fmt.Sprintf("must be positive, got %d", v.value))
	}
	return nil
}

// Sized interface for collections that report their length
type Sized interface {
	Len() int
}

// NotEmptyValidator validates operations that require loaded data
type NotEmptyValidator struct {
	data Sized
	op   string
}

// NewNotEmptyValidator creates a validator for empty dataset checks
func NewNotEmptyValidator(data Sized, op string) *NotEmptyValidator {
	return &NotEmptyValidator{
		data: data,
		op:   op,
	}
}

// Validate checks if the dataset is empty when an operation requires data
func (v *NotEmptyValidator) Validate() error {
	if v.data.Len() == 0 {
		return &errors.DatasetError{
			Op:      v.op,
			Message: errors.ErrNoData.Message,
		}
	}
	return nil
}

// CompoundValidator combines multiple validators
type CompoundValidator struct {
	validators []Validator
}

// NewCompoundValidator creates a validator that checks multiple conditions
func NewCompoundValidator(validators ...Validator) *CompoundValidator {
	return &CompoundValidator{
		validators: validators,
	}
}

// Validate runs all validators and returns the first error encountered
func (v *CompoundValidator) Validate() error {
	for _, validator := range v.validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Convenience validation functions

// ValidateColumns is a convenience function for required column validation
func ValidateColumns(header ColumnResolver, op string, columns ...string) error {
	return NewColumnValidator(header, op, columns...).Validate()
}

// ValidatePositive is a convenience function for positive count validation
func ValidatePositive(value int, op, name string) error {
	return NewPositiveValidator(value, op, name).Validate()
}

// ValidateNotEmpty is a convenience function for empty dataset validation
func ValidateNotEmpty(data Sized, op string) error {
	return NewNotEmptyValidator(data, op).Validate()
}
