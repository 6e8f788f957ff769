// Package miinfo decodes the tuple-shaped results of well-known GDB/MI
// commands (break-insert, stack-info-frame, the *stopped async record,
// ...) into typed structs. It sits on top of the gdbmi package's raw
// parse trees the same way the teacher's mapValueAsString/cutoff call
// sites did for its string-based intermediate representation, but reads
// directly from a borrowed *gdbmi.Result tuple instead of re-parsing text.
package miinfo

import (
	"strconv"

	"github.com/Lockdog88/gdbwire"
)

// stringField returns the CSTRING value of tuple's child named name, or
// def if the child is absent or not a CSTRING.
func stringField(tuple *gdbmi.Result, name, def string) string {
	c := tuple.Child(name)
	if c == nil || c.Kind != gdbmi.KindCString {
		return def
	}
	return c.Value
}

// intField parses the CSTRING value of tuple's child named name as a
// base-10 integer, returning def on any absence or parse failure.
func intField(tuple *gdbmi.Result, name string, def int) int {
	s := stringField(tuple, name, "")
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// boolField reports whether tuple's child named name holds the MI
// convention for boolean-true, "y".
func boolField(tuple *gdbmi.Result, name string) bool {
	return stringField(tuple, name, "n") == "y"
}

// tupleField returns tuple's child named name if it is itself a TUPLE,
// or nil otherwise.
func tupleField(tuple *gdbmi.Result, name string) *gdbmi.Result {
	c := tuple.Child(name)
	if c == nil || c.Kind != gdbmi.KindTuple {
		return nil
	}
	return c
}

// listField returns tuple's child named name if it is itself a LIST, or
// nil otherwise.
func listField(tuple *gdbmi.Result, name string) *gdbmi.Result {
	c := tuple.Child(name)
	if c == nil || c.Kind != gdbmi.KindList {
		return nil
	}
	return c
}
