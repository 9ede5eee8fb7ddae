package erroror

import (
	"fmt"
	"syscall"
)

// Category is an error domain. Codes from different categories never compare
// equal, even when their numeric values match.
type Category interface {
	Name() string
	Message(value int) string
}

// Generic category values.
const (
	Unknown = iota + 1
	InvalidArgument
	NotSupported
	Canceled
	TimedOut
)

type systemCategory struct {
	name string
}

func (c *systemCategory) Name() string {
	return c.name
}

func (c *systemCategory) Message(value int) string {
	return syscall.Errno(value).Error()
}

// TableCategory is a Category backed by a fixed table of messages. Values
// missing from the table get a generic message.
type TableCategory struct {
	name     string
	messages map[int]string
}

// NewCategory builds a TableCategory. Each call returns a distinct category,
// so it is meant to be called once per domain and kept in a package variable.
func NewCategory(name string, messages map[int]string) *TableCategory {
	table := make(map[int]string, len(messages))
	for k, v := range messages {
		table[k] = v
	}

	return &TableCategory{
		name:     name,
		messages: table,
	}
}

func (c *TableCategory) Name() string {
	return c.name
}

func (c *TableCategory) Message(value int) string {
	if msg, ok := c.messages[value]; ok {
		return msg
	}

	return fmt.Sprintf("unknown %s error %d", c.name, value)
}

var (
	system  = &systemCategory{name: "system"}
	generic = NewCategory("generic", map[int]string{
		Unknown:         "unknown error",
		InvalidArgument: "invalid argument",
		NotSupported:    "operation not supported",
		Canceled:        "operation canceled",
		TimedOut:        "operation timed out",
	})
)

// SystemCategory classifies operating system errno values.
func SystemCategory() Category {
	return system
}

// GenericCategory holds the portable codes Unknown, InvalidArgument,
// NotSupported, Canceled and TimedOut.
func GenericCategory() Category {
	return generic
}
