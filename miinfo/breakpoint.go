package miinfo

import (
	"fmt"

	"github.com/Lockdog88/gdbwire"
)

// BreakpointType is the closed catalog of "type=" values GDB reports for a
// breakpoint, grounded on the teacher's (never-retrieved) BreakpointType
// lookup used by parseBreakpointInfo.
type BreakpointType int

const (
	BreakpointTypeUnsupported BreakpointType = iota
	BreakpointTypeBreakpoint
	BreakpointTypeHWBreakpoint
	BreakpointTypeDprintf
	BreakpointTypeWatchpoint
	BreakpointTypeHWWatchpoint
	BreakpointTypeReadWatchpoint
	BreakpointTypeAccessWatchpoint
	BreakpointTypeCatchpoint
	BreakpointTypeTracepoint
)

var breakpointTypeByName = map[string]BreakpointType{
	"breakpoint":        BreakpointTypeBreakpoint,
	"hw breakpoint":     BreakpointTypeHWBreakpoint,
	"dprintf":           BreakpointTypeDprintf,
	"watchpoint":        BreakpointTypeWatchpoint,
	"hw watchpoint":     BreakpointTypeHWWatchpoint,
	"read watchpoint":   BreakpointTypeReadWatchpoint,
	"acc watchpoint":    BreakpointTypeAccessWatchpoint,
	"catchpoint":        BreakpointTypeCatchpoint,
	"tracepoint":        BreakpointTypeTracepoint,
}

func lookupBreakpointType(name string) BreakpointType {
	if t, ok := breakpointTypeByName[name]; ok {
		return t
	}
	return BreakpointTypeUnsupported
}

// BreakpointDisposition is the closed catalog of "disp=" values.
type BreakpointDisposition int

const (
	BreakpointDispositionUnsupported BreakpointDisposition = iota
	BreakpointDispositionKeep
	BreakpointDispositionDelete
	BreakpointDispositionDisable
)

var breakpointDispositionByName = map[string]BreakpointDisposition{
	"keep": BreakpointDispositionKeep,
	"del":  BreakpointDispositionDelete,
	"dis":  BreakpointDispositionDisable,
}

func lookupBreakpointDisposition(name string) BreakpointDisposition {
	if d, ok := breakpointDispositionByName[name]; ok {
		return d
	}
	return BreakpointDispositionUnsupported
}

// Breakpoint is the decoded form of a "bkpt={...}" tuple, grounded on the
// teacher's Breakpoint struct in breakpoint.go.
type Breakpoint struct {
	Number           string
	Type             BreakpointType
	Disposition      BreakpointDisposition
	Enabled          bool
	Address          string
	Function         string
	Filename         string
	Fullname         string
	Line             int
	At               string
	Pending          string
	Thread           string
	Condition        string
	Ignore           int
	Enable           int
	Mask             string
	Pass             int
	OriginalLocation string
	Times            int
	Installed        bool
}

// DecodeBreakpoint decodes a borrowed "bkpt=" TUPLE result into a
// Breakpoint. The caller retains ownership of bkpt; DecodeBreakpoint never
// releases it. It returns an error if bkpt is not a tuple.
func DecodeBreakpoint(bkpt *gdbmi.Result) (*Breakpoint, error) {
	if bkpt == nil || bkpt.Kind != gdbmi.KindTuple {
		return nil, fmt.Errorf("miinfo: bkpt value is not a tuple")
	}
	var b Breakpoint
	b.Number = stringField(bkpt, "number", "")
	b.Type = lookupBreakpointType(stringField(bkpt, "type", ""))
	b.Disposition = lookupBreakpointDisposition(stringField(bkpt, "disp", ""))
	b.Enabled = boolField(bkpt, "enabled")
	b.Address = stringField(bkpt, "addr", "")
	b.Function = stringField(bkpt, "func", "")
	b.Filename = stringField(bkpt, "file", "")
	b.Fullname = stringField(bkpt, "fullname", "")
	b.Line = intField(bkpt, "line", 0)
	b.At = stringField(bkpt, "at", "")
	b.Pending = stringField(bkpt, "pending", "")
	b.Thread = stringField(bkpt, "thread", "")
	b.Condition = stringField(bkpt, "cond", "")
	b.Ignore = intField(bkpt, "ignore", 0)
	b.Enable = intField(bkpt, "enable", 0)
	b.Mask = stringField(bkpt, "mask", "")
	b.Pass = intField(bkpt, "pass", 0)
	b.OriginalLocation = stringField(bkpt, "original-location", "")
	b.Times = intField(bkpt, "times", 0)
	b.Installed = boolField(bkpt, "installed")
	return &b, nil
}
