package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument           = errors.New("invalid argument")            // 400
	ErrNotFound                  = errors.New("not found")                   // 404
	ErrInvalidTransition         = errors.New("invalid transition")          // 409
	ErrDuplicateName             = errors.New("duplicate name")              // 409
	ErrReferentialIntegrity      = errors.New("referential integrity")       // 409
	ErrVersionConflict           = errors.New("version conflict")            // 409
	ErrPropagationPartialFailure = errors.New("propagation partial failure") // 207
)

var (
	ErrUnitNotFound    = fmt.Errorf("unit %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrEntityNotFound  = fmt.Errorf("classification entity %w", ErrNotFound)
)
