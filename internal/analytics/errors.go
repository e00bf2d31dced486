package analytics

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every *ParamError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports an unsupported mode or granularity argument.
type ParamError struct {
	Name  string
	Value string
	Valid []string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s %q (supported: %v)", ErrInvalidParameter, e.Name, e.Value, e.Valid)
}

func (e *ParamError) Is(target error) bool { return target == ErrInvalidParameter }
