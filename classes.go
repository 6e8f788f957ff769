package gdbmi

// ResultClass is the closed catalog of "^"-record classes the MI grammar
// recognizes by name. Names outside this catalog reduce to
// ResultClassUnsupported; the open question in spec §9 is resolved by
// never aliasing RUNNING or CONNECTED to DONE, now or on recognizing a
// future class: every lookup is an exact map hit or the sentinel.
type ResultClass int

const (
	ResultClassUnsupported ResultClass = iota
	ResultDone
	ResultRunning
	ResultConnected
	ResultError
	ResultExit
)

func (c ResultClass) String() string {
	if name, ok := resultClassNames[c]; ok {
		return name
	}
	return "unsupported"
}

var resultClassByName = map[string]ResultClass{
	"done":      ResultDone,
	"running":   ResultRunning,
	"connected": ResultConnected,
	"error":     ResultError,
	"exit":      ResultExit,
}

var resultClassNames = func() map[ResultClass]string {
	m := make(map[ResultClass]string, len(resultClassByName))
	for name, c := range resultClassByName {
		m[c] = name
	}
	return m
}()

func lookupResultClass(name string) ResultClass {
	if c, ok := resultClassByName[name]; ok {
		return c
	}
	return ResultClassUnsupported
}

// AsyncClass is the closed catalog of "*"/"+"/"="-record classes. This
// list is grounded on the teacher's asyncName2TypeId table in gdbmi.go.
type AsyncClass int

const (
	AsyncClassUnsupported AsyncClass = iota
	AsyncRunningClass
	AsyncStopped
	AsyncThreadGroupAdded
	AsyncThreadGroupRemoved
	AsyncThreadGroupStarted
	AsyncThreadGroupExited
	AsyncThreadCreated
	AsyncThreadExited
	AsyncThreadSelected
	AsyncLibraryLoaded
	AsyncLibraryUnloaded
	AsyncTraceframeChanged
	AsyncTsvCreated
	AsyncTsvDeleted
	AsyncTsvModified
	AsyncBreakpointCreated
	AsyncBreakpointModified
	AsyncBreakpointDeleted
	AsyncRecordStarted
	AsyncRecordStopped
	AsyncCmdParamChanged
	AsyncMemoryChanged
)

func (c AsyncClass) String() string {
	if name, ok := asyncClassNames[c]; ok {
		return name
	}
	return "unsupported"
}

var asyncClassByName = map[string]AsyncClass{
	"running":              AsyncRunningClass,
	"stopped":              AsyncStopped,
	"thread-group-added":   AsyncThreadGroupAdded,
	"thread-group-removed": AsyncThreadGroupRemoved,
	"thread-group-started": AsyncThreadGroupStarted,
	"thread-group-exited":  AsyncThreadGroupExited,
	"thread-created":       AsyncThreadCreated,
	"thread-exited":        AsyncThreadExited,
	"thread-selected":      AsyncThreadSelected,
	"library-loaded":       AsyncLibraryLoaded,
	"library-unloaded":     AsyncLibraryUnloaded,
	"traceframe-changed":   AsyncTraceframeChanged,
	"tsv-created":          AsyncTsvCreated,
	"tsv-deleted":          AsyncTsvDeleted,
	"tsv-modified":         AsyncTsvModified,
	"breakpoint-created":   AsyncBreakpointCreated,
	"breakpoint-modified":  AsyncBreakpointModified,
	"breakpoint-deleted":   AsyncBreakpointDeleted,
	"record-started":       AsyncRecordStarted,
	"record-stopped":       AsyncRecordStopped,
	"cmd-param-changed":    AsyncCmdParamChanged,
	"memory-changed":       AsyncMemoryChanged,
}

var asyncClassNames = func() map[AsyncClass]string {
	m := make(map[AsyncClass]string, len(asyncClassByName))
	for name, c := range asyncClassByName {
		m[c] = name
	}
	return m
}()

func lookupAsyncClass(name string) AsyncClass {
	if c, ok := asyncClassByName[name]; ok {
		return c
	}
	return AsyncClassUnsupported
}
