package erroror

import (
	"context"
	"errors"
	"fmt"
	"syscall"
)

// Code is an error classification: a numeric value inside a Category.
// The zero Code is NoError.
//
// Code is comparable, so == and errors.Is work on it directly.
type Code struct {
	value int
	cat   Category
}

// NoError is the code reported by containers that hold a value.
var NoError Code

// MakeCode returns the code for value in cat. A zero value always yields
// NoError. A nil category falls back to GenericCategory.
func MakeCode(value int, cat Category) Code {
	if value == 0 {
		return NoError
	}

	if cat == nil {
		cat = generic
	}

	return Code{
		value: value,
		cat:   cat,
	}
}

func (c Code) IsError() bool {
	return c.value != 0
}

func (c Code) Value() int {
	return c.value
}

// Category returns nil for NoError.
func (c Code) Category() Category {
	return c.cat
}

func (c Code) Message() string {
	if !c.IsError() {
		return "success"
	}

	return c.cat.Message(c.value)
}

func (c Code) Error() string {
	if !c.IsError() {
		return "success"
	}

	return fmt.Sprintf("%s:%d: %s", c.cat.Name(), c.value, c.Message())
}

func (c Code) String() string {
	return c.Error()
}

// CodeOf classifies err. A Code found anywhere in the chain is returned as
// is, a syscall.Errno maps into SystemCategory and context errors map to
// Canceled and TimedOut. Anything else is Unknown. A nil err is NoError.
func CodeOf(err error) Code {
	if err == nil {
		return NoError
	}

	var code Code
	if errors.As(err, &code) && code.IsError() {
		return code
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return MakeCode(int(errno), system)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return MakeCode(Canceled, generic)
	case errors.Is(err, context.DeadlineExceeded):
		return MakeCode(TimedOut, generic)
	}

	return MakeCode(Unknown, generic)
}
