package usecase

import (
	"errors"
	"fmt"

	"healthcare-booking/internal/data/repository"
	"healthcare-booking/pkg/utils"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrPolicy          = errors.New("policy violation")
	ErrRateLimited     = errors.New("too many requests")
)

// Error is a client-facing failure: Message is safe to return to the caller.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// validate runs struct tags on req and returns a field-level validation error.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &Error{Kind: ErrValidation, Message: "validation failed: " + utils.FormatValidationErrors(errs), Fields: errs}
	}
	return nil
}

// fromRepository translates storage sentinels into error kinds and wraps
// everything else as an internal failure.
func fromRepository(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrSlotTaken):
		return newError(ErrConflict, "the selected time slot is already booked")
	case errors.Is(err, repository.ErrEmailTaken):
		return newError(ErrConflict, "email already registered")
	case errors.Is(err, repository.ErrLicenseTaken):
		return newError(ErrConflict, "license number already registered")
	case errors.Is(err, repository.ErrRecordMissing):
		return newError(ErrNotFound, "record not found")
	}
	return fmt.Errorf("%s: %w", op, err)
}
