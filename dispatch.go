package gdbmi

// StreamView, AsyncView and ResultView are the borrowed, read-only views
// handed to host callbacks by Dispatcher. Per spec §5/§6 they are valid
// only for the duration of the callback: Dispatcher releases the
// underlying Result trees immediately after every callback for an Output
// has returned, so a host must copy anything it needs to keep.
type StreamView struct {
	Kind    StreamKind
	Payload string
}

type AsyncView struct {
	Token     Token
	Kind      AsyncKind
	Class     AsyncClass
	ClassName string
	Results   []*Result
}

type ResultView struct {
	Token     Token
	Class     ResultClass
	ClassName string
	Results   []*Result
}

// Callbacks is the host callback set of spec §4.E/§6. Every field is
// optional; a nil field is silently skipped.
type Callbacks struct {
	Stream     func(StreamView)
	Async      func(AsyncView)
	Result     func(ResultView)
	Prompt     func()
	ParseError func(line, token string, pos Position)
}

// Dispatcher is the convenience layer of spec §4.E: it drives a Driver and
// fans a completed Output out to typed callbacks, in order, releasing the
// parse tree once every callback for that Output has returned.
type Dispatcher struct {
	driver *Driver
	cb     Callbacks
}

// NewDispatcher creates a Dispatcher with the given callback set.
func NewDispatcher(cb Callbacks) *Dispatcher {
	d := &Dispatcher{cb: cb}
	d.driver = NewDriver(d.dispatchOutput, d.dispatchError)
	return d
}

// PushData feeds bytes to the underlying Driver. See Driver.Push.
func (d *Dispatcher) PushData(b []byte) error {
	if d == nil {
		return ErrNilReceiver
	}
	return d.driver.Push(b)
}

// Close releases the dispatcher's driver. It tolerates a nil receiver.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.driver.Close()
}

func (d *Dispatcher) dispatchOutput(out *Output) {
	for _, oob := range out.OOB {
		switch oob.Kind {
		case OOBStream:
			if d.cb.Stream != nil {
				d.cb.Stream(StreamView{Kind: oob.Stream.Kind, Payload: oob.Stream.Payload})
			}
		case OOBAsync:
			if d.cb.Async != nil {
				d.cb.Async(AsyncView{
					Token:     oob.Async.Token,
					Kind:      oob.Async.Kind,
					Class:     oob.Async.Class,
					ClassName: oob.Async.ClassName,
					Results:   oob.Async.Results,
				})
			}
		}
	}
	if out.Result != nil && d.cb.Result != nil {
		d.cb.Result(ResultView{
			Token:     out.Result.Token,
			Class:     out.Result.Class,
			ClassName: out.Result.ClassName,
			Results:   out.Result.Results,
		})
	}
	if d.cb.Prompt != nil {
		d.cb.Prompt()
	}
	releaseOutput(out)
}

func (d *Dispatcher) dispatchError(perr *ParseError) {
	if d.cb.ParseError != nil {
		d.cb.ParseError(perr.Line, perr.Token, perr.Pos)
	}
}
