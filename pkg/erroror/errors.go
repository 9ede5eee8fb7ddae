package erroror

import (
	"errors"
	"fmt"

	"github.com/zeebo/errs"
)

// Error is the class of errors produced by payload hooks, such as a failing
// Cloner.
var Error = errs.Class("erroror")

var (
	// ErrBadAccess matches every *AccessError through errors.Is.
	ErrBadAccess = errors.New("value accessed on a container holding an error")

	// ErrNotCloneable is returned, wrapped in the Error class, when cloning a
	// Releaser payload that does not implement Cloner.
	ErrNotCloneable = errors.New("payload owns a resource and has no Clone method")

	// ErrInvalidCode is the panic value of Fail and FromError when they are
	// handed NoError or nil.
	ErrInvalidCode = errors.New("error container built without an error")
)

// AccessError reports a value read on a container that holds an error.
// It carries the stored code.
type AccessError struct {
	Code Code
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("bad value access: %s", e.Code)
}

func (e *AccessError) Cause() error {
	return e.Code
}

func (e *AccessError) Unwrap() error {
	return e.Code
}

func (e *AccessError) Is(target error) bool {
	return target == ErrBadAccess
}
