package main

import (
	"go.uber.org/zap"

	gdbmi "github.com/Lockdog88/gdbwire"
	"github.com/Lockdog88/gdbwire/miinfo"
)

// session wires a gdbmi.Dispatcher's callbacks to structured logging and
// to the miinfo decoders, the way the teacher's goroutine in NewGDB fanned
// parsed records out over channels. Result records are additionally
// forwarded to proc's correlation loop instead of just being logged,
// since a CLI host that never answers its own commands isn't the client
// the teacher's GDB.send/NewGDB pair describes. proc is nil in tests that
// exercise onStream/onAsync/onPrompt/onParseError in isolation.
type session struct {
	logger *zap.Logger
	disp   *gdbmi.Dispatcher
	proc   *gdbProcess

	// events relays every async record to watchStops, the same way the
	// teacher's NewGDB forwarded a GDBEvent with
	// "go func() { gdb.Event <- *ev }()" so the command loop never blocked
	// on a slow consumer.
	events chan gdbmi.AsyncView
}

func newSession(logger *zap.Logger, proc *gdbProcess) *session {
	s := &session{logger: logger, proc: proc, events: make(chan gdbmi.AsyncView)}
	s.disp = gdbmi.NewDispatcher(gdbmi.Callbacks{
		Stream:     s.onStream,
		Async:      s.onAsync,
		Result:     s.onResult,
		Prompt:     s.onPrompt,
		ParseError: s.onParseError,
	})
	return s
}

func (s *session) onStream(v gdbmi.StreamView) {
	switch v.Kind {
	case gdbmi.StreamConsole:
		s.logger.Debug("console", zap.String("text", v.Payload))
	case gdbmi.StreamTarget:
		s.logger.Debug("target", zap.String("text", v.Payload))
	case gdbmi.StreamLog:
		s.logger.Debug("log", zap.String("text", v.Payload))
	}
}

func (s *session) onAsync(v gdbmi.AsyncView) {
	s.logger.Info("async",
		zap.String("kind", asyncKindName(v.Kind)),
		zap.String("class", v.ClassName))

	switch v.Class {
	case gdbmi.AsyncStopped:
		ev, err := miinfo.DecodeStopEvent(v)
		if err != nil {
			s.logger.Warn("decode stop event", zap.Error(err))
		} else {
			s.logger.Info("stopped",
				zap.Int("reason", int(ev.Reason)),
				zap.String("thread_id", ev.ThreadID))
		}
	case gdbmi.AsyncBreakpointCreated, gdbmi.AsyncBreakpointModified:
		if bkpt := firstChildTuple(v.Results, "bkpt"); bkpt != nil {
			bp, err := miinfo.DecodeBreakpoint(bkpt)
			if err != nil {
				s.logger.Warn("decode breakpoint", zap.Error(err))
			} else {
				s.logger.Info("breakpoint", zap.String("number", bp.Number), zap.String("function", bp.Function))
			}
		}
	}

	if s.events != nil {
		go func() { s.events <- v }()
	}
}

func (s *session) onResult(v gdbmi.ResultView) {
	s.logger.Info("result", zap.String("class", v.ClassName), zap.Int64("token", int64(v.Token)))
	if s.proc != nil {
		s.proc.forwardResult(v)
	}
}

func (s *session) onPrompt() {
	s.logger.Debug("prompt")
}

func (s *session) onParseError(line, token string, pos gdbmi.Position) {
	s.logger.Warn("parse error",
		zap.String("line", line),
		zap.String("token", token),
		zap.Int("at_line", pos.Line),
		zap.Int("at_column", pos.Column))
}

func (s *session) feed(b []byte) error {
	return s.disp.PushData(b)
}

func (s *session) close() {
	s.disp.Close()
	close(s.events)
}

// watchStops ranges over every async record the dispatcher sees and, on a
// stop event, issues a follow-up stack inspection. It must run on its own
// goroutine: issuing proc.send from inside onAsync would deadlock, since
// onAsync runs on the same goroutine that is draining gdb's stdout and
// the reply to a follow-up command can only arrive via a later read on
// that same stdout.
func (s *session) watchStops() {
	for v := range s.events {
		if v.Class != gdbmi.AsyncStopped {
			continue
		}
		s.inspectStack()
	}
}

// inspectStack issues -stack-info-frame and -stack-list-arguments through
// proc's correlation loop and decodes their replies with miinfo, mirroring
// the teacher's Stack_info_frame/Stack_list_arguments convenience methods.
func (s *session) inspectStack() {
	frameResult, err := s.proc.send(newCommand("stack-info-frame"))
	if err != nil {
		s.logger.Warn("stack-info-frame", zap.Error(err))
		return
	}
	if frame := firstChildTuple(frameResult.Results, "frame"); frame != nil {
		sf, err := miinfo.DecodeStackFrame(frame)
		if err != nil {
			s.logger.Warn("decode stack frame", zap.Error(err))
		} else {
			s.logger.Info("frame",
				zap.Int("level", sf.Level),
				zap.String("function", sf.Function),
				zap.String("file", sf.File),
				zap.Int("line", sf.Line))
		}
	}

	argsResult, err := s.proc.send(newCommand("stack-list-arguments").addParam("1"))
	if err != nil {
		s.logger.Warn("stack-list-arguments", zap.Error(err))
		return
	}
	if stackArgs := firstChildList(argsResult.Results, "stack-args"); stackArgs != nil {
		frames, err := miinfo.DecodeStackArguments(stackArgs)
		if err != nil {
			s.logger.Warn("decode stack arguments", zap.Error(err))
			return
		}
		for _, f := range frames {
			s.logger.Info("frame-args", zap.Int("level", f.Level), zap.Int("argc", len(f.Arguments)))
		}
	}
}

func asyncKindName(k gdbmi.AsyncKind) string {
	switch k {
	case gdbmi.AsyncStatus:
		return "status"
	case gdbmi.AsyncExec:
		return "exec"
	case gdbmi.AsyncNotify:
		return "notify"
	default:
		return "unknown"
	}
}

func firstChildTuple(results []*gdbmi.Result, name string) *gdbmi.Result {
	for _, r := range results {
		if r.Variable == name && r.Kind == gdbmi.KindTuple {
			return r
		}
	}
	return nil
}

func firstChildList(results []*gdbmi.Result, name string) *gdbmi.Result {
	for _, r := range results {
		if r.Variable == name && r.Kind == gdbmi.KindList {
			return r
		}
	}
	return nil
}
