package schema

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	ErrInvalidPath = errors.New("invalid path")
	ErrInvalidType = errors.New("invalid field type")
)

// OpError is returned by every rejected tree operation. The tree is left as it
// was before the call.
type OpError struct {
	Op     string
	Path   Path
	Err    error
	Detail *field.Error
}

func (e *OpError) Error() string {
	if e.Detail == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Detail.Error())
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func invalidPath(op string, p Path, detail string) error {
	return &OpError{
		Op:     op,
		Path:   p,
		Err:    ErrInvalidPath,
		Detail: field.NotFound(p.FieldPath(), detail),
	}
}

func invalidContainer(op string, p Path, t FieldType) error {
	return &OpError{
		Op:     op,
		Path:   p,
		Err:    ErrInvalidPath,
		Detail: field.Invalid(p.FieldPath().Child("type"), string(t), "not a nested field"),
	}
}

func invalidType(op string, p Path, t FieldType) error {
	return &OpError{
		Op:     op,
		Path:   p,
		Err:    ErrInvalidType,
		Detail: field.NotSupported(p.FieldPath().Child("type"), string(t), fieldTypeValues()),
	}
}
