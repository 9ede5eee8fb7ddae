// Package erroror provides ErrorOr, a container holding either an error Code
// or a value of any type.
//
// The container is a plain value with no synchronization. Callers check OK
// (or Err) before reading the value; reading the value of a container that
// holds an error returns an *AccessError carrying the stored code.
package erroror

import "fmt"

// Cloner lets a payload control how it is copied by Clone and CopyAssign.
// It is looked up on T, then on *T. Payloads implementing Releaser must also
// implement Cloner to be cloned.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Swapper lets a payload exchange its contents with another in place. It is
// looked up on *T.
type Swapper[T any] interface {
	SwapWith(other *T)
}

// Releaser is called when a container drops a live payload, either through
// Release or when an assignment replaces it.
type Releaser interface {
	Release()
}

// ErrorOr holds either an error Code or a value of type T, never both.
//
// value is only meaningful while code is NoError; otherwise it is kept at
// T's zero value. held is false once the value was moved out or released,
// and hooks never run on such a value. The zero ErrorOr holds a moved-from
// zero T.
type ErrorOr[T any] struct {
	code  Code
	value T
	held  bool
}

// Value returns a container holding v.
func Value[T any](v T) ErrorOr[T] {
	return ErrorOr[T]{value: v, held: true}
}

// Fail returns a container holding c. It panics with ErrInvalidCode if c is
// NoError.
func Fail[T any](c Code) ErrorOr[T] {
	if !c.IsError() {
		panic(ErrInvalidCode)
	}

	return ErrorOr[T]{code: c}
}

// FromError returns a container holding CodeOf(err). It panics with
// ErrInvalidCode if err is nil.
func FromError[T any](err error) ErrorOr[T] {
	return Fail[T](CodeOf(err))
}

// OK reports whether r holds a value.
func (r ErrorOr[T]) OK() bool {
	return !r.code.IsError()
}

// Code returns the stored code, NoError when r holds a value.
func (r ErrorOr[T]) Code() Code {
	return r.code
}

// Err returns nil when r holds a value and the stored Code otherwise.
func (r ErrorOr[T]) Err() error {
	if r.OK() {
		return nil
	}

	return r.code
}

// Value returns a copy of the held value.
func (r ErrorOr[T]) Value() (T, error) {
	if !r.OK() {
		var zero T
		return zero, &AccessError{Code: r.code}
	}

	return r.value, nil
}

// MustValue is like Value but panics with an *AccessError on misuse.
func (r ErrorOr[T]) MustValue() T {
	v, err := r.Value()
	if err != nil {
		panic(err)
	}

	return v
}

// Get returns a pointer to the held value without copying it. The pointer
// aliases r's storage and must be treated as read-only.
func (r *ErrorOr[T]) Get() (*T, error) {
	if !r.OK() {
		return nil, &AccessError{Code: r.code}
	}

	return &r.value, nil
}

// Take moves the held value out of r. r keeps reporting OK and is left with
// a moved-from (zero) value, so taking twice yields the zero T, not an error.
func (r *ErrorOr[T]) Take() (T, error) {
	if !r.OK() {
		var zero T
		return zero, &AccessError{Code: r.code}
	}

	v := r.value
	r.destroy()

	return v, nil
}

// MustTake is like Take but panics with an *AccessError on misuse.
func (r *ErrorOr[T]) MustTake() T {
	v, err := r.Take()
	if err != nil {
		panic(err)
	}

	return v
}

// Clone copies r. Payloads implementing Cloner are copied through it; a
// failing Cloner leaves r untouched and the error is returned wrapped in
// the Error class. A Releaser without a Cloner cannot be shared between two
// containers and fails with ErrNotCloneable. Cloning a moved-from container
// yields another moved-from container.
func (r *ErrorOr[T]) Clone() (ErrorOr[T], error) {
	if !r.OK() {
		return ErrorOr[T]{code: r.code}, nil
	}

	if !r.held {
		return ErrorOr[T]{}, nil
	}

	c, ok := any(r.value).(Cloner[T])
	if !ok {
		c, ok = any(&r.value).(Cloner[T])
	}

	if ok {
		v, err := c.Clone()
		if err != nil {
			return ErrorOr[T]{}, Error.Wrap(err)
		}
		return Value(v), nil
	}

	if r.releaser() != nil {
		return ErrorOr[T]{}, Error.Wrap(ErrNotCloneable)
	}

	return Value(r.value), nil
}

// Move transfers r into a new container. If r holds a value it stays OK with
// a moved-from value.
func (r *ErrorOr[T]) Move() ErrorOr[T] {
	out := ErrorOr[T]{code: r.code}
	if r.OK() {
		out.value, out.held = r.value, r.held
		r.destroy()
	}

	return out
}

// Assign replaces r's state with other and releases whatever r held before.
// r takes ownership of other's payload.
func (r *ErrorOr[T]) Assign(other ErrorOr[T]) {
	r.Swap(&other)
	other.Release()
}

// CopyAssign replaces r's state with a clone of src. If cloning fails r is
// left untouched.
func (r *ErrorOr[T]) CopyAssign(src *ErrorOr[T]) error {
	if r == src {
		return nil
	}

	tmp, err := src.Clone()
	if err != nil {
		return err
	}

	r.Assign(tmp)
	return nil
}

// MoveAssign replaces r's state with src, leaving src moved-from.
func (r *ErrorOr[T]) MoveAssign(src *ErrorOr[T]) {
	if r == src {
		return
	}

	r.Assign(src.Move())
}

// Release drops the held value, calling its Releaser if it has one. r stays
// OK with a moved-from zero value. Release does nothing when r holds an
// error or its value was already moved out or released.
func (r *ErrorOr[T]) Release() {
	if !r.OK() || !r.held {
		return
	}

	if rel := r.releaser(); rel != nil {
		rel.Release()
	}

	r.destroy()
}

func (r *ErrorOr[T]) releaser() Releaser {
	if rel, ok := any(r.value).(Releaser); ok {
		return rel
	}

	if rel, ok := any(&r.value).(Releaser); ok {
		return rel
	}

	return nil
}

// Swap exchanges the states of r and other.
func (r *ErrorOr[T]) Swap(other *ErrorOr[T]) {
	Swap(r, other)
}

// Swap exchanges the states of a and b. Swapping a container with itself
// does nothing.
func Swap[T any](a, b *ErrorOr[T]) {
	if a == b {
		return
	}

	switch aOK, bOK := a.OK(), b.OK(); {
	case !aOK && !bOK:
		a.code, b.code = b.code, a.code
	case aOK && bOK:
		a.code, b.code = b.code, a.code
		a.held, b.held = b.held, a.held
		swapValues(&a.value, &b.value)
	case aOK:
		a.code, b.code = b.code, a.code
		b.value, b.held = a.value, a.held
		a.destroy()
	default:
		a.code, b.code = b.code, a.code
		a.value, a.held = b.value, b.held
		b.destroy()
	}
}

func swapValues[T any](x, y *T) {
	if s, ok := any(x).(Swapper[T]); ok {
		s.SwapWith(y)
		return
	}

	*x, *y = *y, *x
}

// destroy clears the storage without running any hooks; the payload has
// either been moved elsewhere or released already.
func (r *ErrorOr[T]) destroy() {
	var zero T
	r.value = zero
	r.held = false
}

func (r ErrorOr[T]) String() string {
	if !r.OK() {
		return fmt.Sprintf("error(%s)", r.code)
	}

	return fmt.Sprintf("value(%v)", r.value)
}
