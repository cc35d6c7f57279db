package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-scorer/internal/fetch"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBatchTooLarge indicates a batch above the configured maximum
type ErrBatchTooLarge struct {
	Size int
	Max  int
}

func (e *ErrBatchTooLarge) Error() string {
	return fmt.Sprintf("batch of %d requests exceeds the maximum of %d", e.Size, e.Max)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		usageErr      *types.UsageError
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		fieldErrs     validator.ValidationErrors
		batchErr      *ErrBatchTooLarge
		bodyErr       *http.MaxBytesError
		fetchErr      *fetch.Error
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &usageErr):
		return http.StatusBadRequest
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &fieldErrs):
		return http.StatusUnprocessableEntity
	case errors.As(err, &batchErr), errors.As(err, &bodyErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// fieldErrors flattens the validation error kinds into field/message pairs.
func fieldErrors(err error) []schemas.FieldError {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		fieldErrs     validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validationErr):
		return []schemas.FieldError{{Field: validationErr.Field, Message: validationErr.Message}}
	case errors.As(err, &schemaErr):
		return schemaErr.Errors
	case errors.As(err, &fieldErrs):
		out := make([]schemas.FieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, schemas.FieldError{
				Field:   fieldPath(fe),
				Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
			})
		}
		return out
	default:
		return nil
	}
}

// fieldPath drops the struct name from a validator namespace ("scoreRequest.job_url" is "job_url").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// prefixFields rewrites validation errors so their fields sit under prefix.
func prefixFields(err error, prefix string) error {
	fields := fieldErrors(err)
	if fields == nil {
		return err
	}
	out := make([]schemas.FieldError, len(fields))
	for i, f := range fields {
		out[i] = schemas.FieldError{Field: prefix + "." + f.Field, Message: f.Message}
	}
	return &schemas.ValidationError{Errors: out}
}
