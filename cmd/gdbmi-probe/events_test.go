package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	gdbmi "github.com/Lockdog88/gdbwire"
)

func TestAsyncKindName(t *testing.T) {
	assert.Equal(t, "status", asyncKindName(gdbmi.AsyncStatus))
	assert.Equal(t, "exec", asyncKindName(gdbmi.AsyncExec))
	assert.Equal(t, "notify", asyncKindName(gdbmi.AsyncNotify))
}

func TestFirstChildTupleFindsNamedTuple(t *testing.T) {
	var results []*gdbmi.Result
	s := newSessionWithCapture(&results)
	require := assert.New(t)
	require.NoError(s.feed([]byte(`=breakpoint-created,bkpt={number="3"}` + "\n(gdb) \n")))

	bkpt := firstChildTuple(results, "bkpt")
	require.NotNil(bkpt)
	require.Equal(gdbmi.KindTuple, bkpt.Kind)
}

// TestInspectStackDecodesFrameAndArguments exercises the path that makes
// miinfo.DecodeStackFrame/DecodeStackArguments reachable from the CLI:
// a stop event drives inspectStack, which sends stack-info-frame and
// stack-list-arguments and decodes whatever comes back.
func TestInspectStackDecodesFrameAndArguments(t *testing.T) {
	proc := &gdbProcess{commands: make(chan *command)}
	go func() {
		for c := range proc.commands {
			switch c.name {
			case "stack-info-frame":
				c.reply <- gdbmi.ResultView{Token: gdbmi.Token(c.token), Results: []*gdbmi.Result{
					{Variable: "frame", Kind: gdbmi.KindTuple, Children: []*gdbmi.Result{
						{Variable: "level", Kind: gdbmi.KindCString, Value: "0"},
						{Variable: "func", Kind: gdbmi.KindCString, Value: "main"},
						{Variable: "line", Kind: gdbmi.KindCString, Value: "11"},
					}},
				}}
			case "stack-list-arguments":
				c.reply <- gdbmi.ResultView{Token: gdbmi.Token(c.token), Results: []*gdbmi.Result{
					{Variable: "stack-args", Kind: gdbmi.KindList, Children: []*gdbmi.Result{
						{Kind: gdbmi.KindTuple, Children: []*gdbmi.Result{
							{Variable: "level", Kind: gdbmi.KindCString, Value: "0"},
							{Variable: "args", Kind: gdbmi.KindList},
						}},
					}},
				}}
			}
		}
	}()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	s := &session{logger: logger, proc: proc, events: make(chan gdbmi.AsyncView)}

	require.NotPanics(t, s.inspectStack)
	frames := logs.FilterMessage("frame").All()
	require.Len(t, frames, 1)
	assert.Equal(t, "main", frames[0].ContextMap()["function"])
	assert.Equal(t, 1, logs.FilterMessage("frame-args").Len())
}

func newSessionWithCapture(out *[]*gdbmi.Result) *session {
	core, _ := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	s := newSession(logger, nil)
	s.disp.Close()
	s.disp = gdbmi.NewDispatcher(gdbmi.Callbacks{
		Async: func(v gdbmi.AsyncView) { *out = v.Results },
	})
	return s
}
