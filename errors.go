package cmdspec

import (
	"errors"
	"fmt"
)

// Definition errors. Every one of these surfaces from Compile; Build never
// re-validates and never fails.
var (
	ErrMissingExecutable     = errors.New("no executable declared")
	ErrConflictingExecutable = errors.New("conflicting executable declarations")
	ErrConflictingRoles      = errors.New("conflicting argument roles")
	ErrUnsupportedAttribute  = errors.New("unsupported attribute")
	ErrUnsupportedFieldShape = errors.New("unsupported field shape")
	ErrUnsupportedArgType    = errors.New("unsupported argument type")
)

// DefinitionError reports a declaration-time failure with the record type and
// field that caused it. It unwraps to one of the sentinel errors above.
type DefinitionError struct {
	Record string
	Field  string
	Err    error
}

func (e *DefinitionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cmdspec: record=%s: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("cmdspec: record=%s field=%s: %v", e.Record, e.Field, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
