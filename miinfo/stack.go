package miinfo

import (
	"fmt"

	"github.com/Lockdog88/gdbwire"
)

// StackFrame is the decoded form of a "frame={...}" tuple, grounded on the
// teacher's StackFrame struct and parseStackFrameInfo in stack.go.
type StackFrame struct {
	Level    int
	Function string
	Address  string
	File     string
	Line     int
	From     string
	Fullname string
}

// DecodeStackFrame decodes a borrowed "frame=" TUPLE result into a
// StackFrame.
func DecodeStackFrame(frame *gdbmi.Result) (*StackFrame, error) {
	if frame == nil || frame.Kind != gdbmi.KindTuple {
		return nil, fmt.Errorf("miinfo: frame value is not a tuple")
	}
	var sf StackFrame
	sf.Level = intField(frame, "level", 0)
	sf.Function = stringField(frame, "func", "")
	sf.Address = stringField(frame, "addr", "")
	sf.File = stringField(frame, "file", "")
	sf.Line = intField(frame, "line", 0)
	sf.From = stringField(frame, "from", "")
	sf.Fullname = stringField(frame, "fullname", "")
	return &sf, nil
}

// FrameArgument is one name/type/value triple of a stack-list-arguments
// reply.
type FrameArgument struct {
	Name  string
	Type  string
	Value string
}

// StackFrameArguments is one frame's worth of arguments, as returned by
// stack-list-arguments.
type StackFrameArguments struct {
	Level     int
	Arguments []FrameArgument
}

// DecodeStackArguments decodes the "stack-args=[...]" LIST result of a
// stack-list-arguments reply, grounded on the teacher's
// parseStackFrameArguments.
func DecodeStackArguments(stackArgs *gdbmi.Result) ([]StackFrameArguments, error) {
	if stackArgs == nil || stackArgs.Kind != gdbmi.KindList {
		return nil, fmt.Errorf("miinfo: stack-args value is not a list")
	}
	result := make([]StackFrameArguments, 0, len(stackArgs.Children))
	for _, frameEntry := range stackArgs.Children {
		frame := frameEntry
		if tf := tupleField(frame, "frame"); tf != nil {
			frame = tf
		}
		if frame.Kind != gdbmi.KindTuple {
			return nil, fmt.Errorf("miinfo: stack-args entry is not a tuple")
		}
		var sfa StackFrameArguments
		sfa.Level = intField(frame, "level", 0)
		if argsList := listField(frame, "args"); argsList != nil {
			sfa.Arguments = make([]FrameArgument, 0, len(argsList.Children))
			for _, a := range argsList.Children {
				sfa.Arguments = append(sfa.Arguments, FrameArgument{
					Name:  stringField(a, "name", ""),
					Type:  stringField(a, "type", ""),
					Value: stringField(a, "value", ""),
				})
			}
		}
		result = append(result, sfa)
	}
	return result, nil
}
