package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEmail rejects a submission whose email fails the strict
// address grammar or exceeds the length cap
var ErrInvalidEmail = errors.New("invalid email format")

// MissingFieldsError rejects a submission with absent required fields
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// FieldFormatError rejects a submission where a present field fails
// its format or allow-list check. Field names the offender.
type FieldFormatError struct {
	Field string
}

func (e *FieldFormatError) Error() string {
	return fmt.Sprintf("invalid format for field %s", e.Field)
}
