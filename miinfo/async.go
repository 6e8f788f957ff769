package miinfo

import (
	"fmt"

	"github.com/Lockdog88/gdbwire"
)

// StopReason is the closed catalog of "reason=" values on a *stopped
// async record, grounded on the teacher's GDBStopReason. Unlike the
// teacher, this enum has its own iota sequence: in gdbmi.go GDBStopReason
// accidentally shared GDBAsyncType's iota block (both const blocks were
// declared in a single `const ( ... )` group), aliasing every stop reason
// onto an unrelated async class value. That bug is not carried forward.
type StopReason int

const (
	StopReasonUnsupported StopReason = iota
	StopReasonBreakpointHit
	StopReasonWatchpointTrigger
	StopReasonReadWatchpointTrigger
	StopReasonAccessWatchpointTrigger
	StopReasonFunctionFinished
	StopReasonLocationReached
	StopReasonWatchpointScope
	StopReasonEndSteppingRange
	StopReasonExitedSignalled
	StopReasonExited
	StopReasonExitedNormally
	StopReasonSignalReceived
	StopReasonSolibEvent
	StopReasonFork
	StopReasonVfork
	StopReasonSyscallEntry
	StopReasonExec
)

var stopReasonByName = map[string]StopReason{
	"breakpoint-hit":            StopReasonBreakpointHit,
	"watchpoint-trigger":        StopReasonWatchpointTrigger,
	"read-watchpoint-trigger":   StopReasonReadWatchpointTrigger,
	"access-watchpoint-trigger": StopReasonAccessWatchpointTrigger,
	"function-finished":         StopReasonFunctionFinished,
	"location-reached":          StopReasonLocationReached,
	"watchpoint-scope":          StopReasonWatchpointScope,
	"end-stepping-range":        StopReasonEndSteppingRange,
	"exited-signalled":          StopReasonExitedSignalled,
	"exited":                    StopReasonExited,
	"exited-normally":           StopReasonExitedNormally,
	"signal-received":           StopReasonSignalReceived,
	"solib-event":               StopReasonSolibEvent,
	"fork":                      StopReasonFork,
	"vfork":                     StopReasonVfork,
	"syscall-entry":             StopReasonSyscallEntry,
	"exec":                      StopReasonExec,
}

func lookupStopReason(name string) StopReason {
	if r, ok := stopReasonByName[name]; ok {
		return r
	}
	return StopReasonUnsupported
}

// StopEvent is the decoded form of a "*stopped,..." async record,
// grounded on the teacher's GDBEvent.
type StopEvent struct {
	Reason         StopReason
	ThreadID       string
	StoppedThreads string
	Core           string
	ExitCode       int
}

// DecodeStopEvent decodes a *stopped async record. v is expected to have
// Class AsyncStopped; passing any other async record produces a StopEvent
// with a zero-valued Reason.
func DecodeStopEvent(v gdbmi.AsyncView) (*StopEvent, error) {
	fields := &gdbmi.Result{Kind: gdbmi.KindTuple, Children: v.Results}
	var ev StopEvent
	ev.Reason = lookupStopReason(stringField(fields, "reason", ""))
	ev.ThreadID = stringField(fields, "thread-id", "")
	ev.StoppedThreads = stringField(fields, "stopped-threads", "")
	ev.Core = stringField(fields, "core", "")
	if ec := stringField(fields, "exit-code", ""); ec != "" {
		var parsed int
		if _, err := fmt.Sscanf(ec, "%d", &parsed); err == nil {
			ev.ExitCode = parsed
		}
	}
	return &ev, nil
}
