package gdbmi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func feedAll(t *testing.T, g *grammarEngine, lines ...string) ([]*Output, []*ParseError) {
	t.Helper()
	var outs []*Output
	var errs []*ParseError
	for _, l := range lines {
		out, perr := g.feedLine([]byte(l))
		if perr != nil {
			errs = append(errs, perr)
			continue
		}
		if out != nil {
			outs = append(outs, out)
		}
	}
	return outs, errs
}

var resultCmp = cmp.Options{cmpopts.EquateEmpty()}

func TestGrammarConsoleStream(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, "~\"Hello World console output\"\n", "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	require.Len(t, outs[0].OOB, 1)
	rec := outs[0].OOB[0]
	require.Equal(t, OOBStream, rec.Kind)
	require.Equal(t, StreamConsole, rec.Stream.Kind)
	require.Equal(t, "Hello World console output", rec.Stream.Payload)
	require.Nil(t, outs[0].Result)
}

func TestGrammarExecRunningAsync(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, `*running,thread-id="all"`+"\n", "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	require.Len(t, outs[0].OOB, 1)
	async := outs[0].OOB[0].Async
	require.Equal(t, AsyncExec, async.Kind)
	require.Equal(t, AsyncRunningClass, async.Class)
	want := []*Result{{Variable: "thread-id", Kind: KindCString, Value: "all"}}
	if diff := cmp.Diff(want, async.Results, resultCmp); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestGrammarDoneResult(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, "^done\n", "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	require.NotNil(t, outs[0].Result)
	require.Equal(t, ResultDone, outs[0].Result.Class)
	require.Empty(t, outs[0].Result.Results)
}

func TestGrammarErrorResultWithToken(t *testing.T) {
	g := newGrammarEngine()
	line := `512^error,msg="Undefined command: \"null\".  Try \"help\"."` + "\n"
	outs, errs := feedAll(t, g, line, "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	res := outs[0].Result
	require.Equal(t, ResultError, res.Class)
	require.Equal(t, Token(512), res.Token)
	require.Len(t, res.Results, 1)
	assert := res.Results[0]
	require.Equal(t, "msg", assert.Variable)
	require.Equal(t, `Undefined command: "null".  Try "help".`, assert.Value)
}

func TestGrammarBreakpointCreatedTuple(t *testing.T) {
	g := newGrammarEngine()
	line := `=breakpoint-created,bkpt={number="2",type="breakpoint",line="9"}` + "\n"
	outs, errs := feedAll(t, g, line, "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	async := outs[0].OOB[0].Async
	require.Equal(t, AsyncNotify, async.Kind)
	require.Equal(t, AsyncBreakpointCreated, async.Class)
	require.Len(t, async.Results, 1)
	bkpt := async.Results[0]
	require.Equal(t, "bkpt", bkpt.Variable)
	require.Equal(t, KindTuple, bkpt.Kind)
	require.Len(t, bkpt.Children, 3)
	for _, c := range bkpt.Children {
		require.NotEmpty(t, c.Variable)
		require.Equal(t, KindCString, c.Kind)
	}
}

func TestGrammarParseErrorThenRecovery(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, "$garbage\n", "(gdb) \n", "^done\n", "(gdb) \n")
	require.Len(t, errs, 1)
	require.Equal(t, "$garbage\n", errs[0].Line)
	require.Equal(t, "$", errs[0].Token)
	require.Equal(t, Position{Line: 1, Column: 1}, errs[0].Pos)

	require.Len(t, outs, 1)
	require.Equal(t, ResultDone, outs[0].Result.Class)
}

func TestGrammarEmptyPromptIsValidEmptyOutput(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	require.Empty(t, outs[0].OOB)
	require.Nil(t, outs[0].Result)
}

func TestGrammarAsyncWithNoResults(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, "=tsv-deleted\n", "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	async := outs[0].OOB[0].Async
	require.Equal(t, AsyncTsvDeleted, async.Class)
	require.Empty(t, async.Results)
}

func TestGrammarUnsupportedClassesStillDeliverRecord(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, "=some-future-class,x=\"1\"\n", "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	async := outs[0].OOB[0].Async
	require.Equal(t, AsyncClassUnsupported, async.Class)
	require.Equal(t, "some-future-class", async.ClassName)
	require.Len(t, async.Results, 1)
}

func TestGrammarNullTupleAndList(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, `^done,a={},b=[]`+"\n", "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	res := outs[0].Result.Results
	require.Len(t, res, 2)
	require.Equal(t, KindTuple, res[0].Kind)
	require.Empty(t, res[0].Children)
	require.Equal(t, KindList, res[1].Kind)
	require.Empty(t, res[1].Children)
}

func TestGrammarListOfNamelessTuples(t *testing.T) {
	g := newGrammarEngine()
	line := `^done,stack=[{level="0",addr="0x1"},{level="1",addr="0x2"}]` + "\n"
	outs, errs := feedAll(t, g, line, "(gdb) \n")
	require.Empty(t, errs)
	stack := outs[0].Result.Results[0]
	require.Equal(t, KindList, stack.Kind)
	require.Len(t, stack.Children, 2)
	for _, frame := range stack.Children {
		require.Empty(t, frame.Variable)
		require.Equal(t, KindTuple, frame.Kind)
	}
}

func TestGrammarRunningAndConnectedNeverAliasDone(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, "^running\n", "(gdb) \n", "^connected\n", "(gdb) \n")
	require.Empty(t, errs)
	require.Len(t, outs, 2)
	require.Equal(t, ResultRunning, outs[0].Result.Class)
	require.Equal(t, ResultConnected, outs[1].Result.Class)
}

func TestGrammarResultRecordFollowedByMoreOOBBeforePrompt(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g,
		"^done\n",
		"~\"trailing console text\\n\"\n",
		"(gdb) \n",
	)
	require.Empty(t, errs)
	require.Len(t, outs, 1)
	require.NotNil(t, outs[0].Result)
	require.Len(t, outs[0].OOB, 1)
}

func TestGrammarMissingCommaBetweenTupleFields(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, `^done,a={x="1" y="2"}`+"\n", "(gdb) \n")
	require.Empty(t, outs)
	require.Len(t, errs, 1)
	require.Equal(t, ErrMissingComma, errs[0].Kind)
}

func TestGrammarTrulyMismatchedBracketAtEndOfLine(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, `^done,a={x="1"`+"\n", "(gdb) \n")
	require.Empty(t, outs)
	require.Len(t, errs, 1)
	require.Equal(t, ErrMismatchedBracket, errs[0].Kind)
}

func TestGrammarBadSigilAtLineStart(t *testing.T) {
	g := newGrammarEngine()
	outs, errs := feedAll(t, g, ","+"\n", "(gdb) \n")
	require.Empty(t, outs)
	require.Len(t, errs, 1)
	require.Equal(t, ErrBadSigil, errs[0].Kind)
}

func TestGrammarPartitionInvariance(t *testing.T) {
	whole := []byte(`~"a"` + "\n" + `*running,thread-id="all"` + "\n" + "^done\n" + "(gdb) \n")

	collect := func(chunks [][]byte) []*Output {
		d := NewDriver(nil, nil)
		var outs []*Output
		d.onOutput = func(o *Output) { outs = append(outs, o) }
		for _, c := range chunks {
			require.NoError(t, d.Push(c))
		}
		return outs
	}

	full := collect([][]byte{whole})
	var byByte [][]byte
	for _, b := range whole {
		byByte = append(byByte, []byte{b})
	}
	fragmented := collect(byByte)

	require.Len(t, full, 1)
	require.Len(t, fragmented, 1)
	if diff := cmp.Diff(full[0], fragmented[0], resultCmp); diff != "" {
		t.Errorf("fragmented push diverged from single push (-whole +fragmented):\n%s", diff)
	}
}
