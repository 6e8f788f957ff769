package gdbmi

import "bytes"

// Driver is the push-mode front end of spec §4.D: it turns arbitrary byte
// writes into whole lines and feeds them to the grammar engine, delivering
// completed Output commands and parse errors through the supplied
// callbacks. A Driver does no I/O of its own; it only ever sees the bytes
// its host passes to Push.
type Driver struct {
	buf      []byte
	engine   *grammarEngine
	onOutput func(*Output)
	onError  func(*ParseError)
}

// NewDriver creates a Driver. Either callback may be nil.
func NewDriver(onOutput func(*Output), onError func(*ParseError)) *Driver {
	return &Driver{engine: newGrammarEngine(), onOutput: onOutput, onError: onError}
}

// Push appends b to the internal buffer and extracts and reduces every
// complete line it now contains. Output ordering matches input ordering;
// no data is delivered to the host mid-line. Push returns only after
// every resulting callback invocation has returned. A nil Driver returns
// ErrNilReceiver.
func (d *Driver) Push(b []byte) error {
	if d == nil {
		return ErrNilReceiver
	}
	d.buf = append(d.buf, b...)
	for {
		idx := bytes.IndexByte(d.buf, '\n')
		if idx < 0 {
			break
		}
		line := stripTrailingCR(d.buf[:idx+1])
		d.buf = d.buf[idx+1:]

		out, perr := d.engine.feedLine(line)
		if perr != nil {
			if d.onError != nil {
				d.onError(perr)
			}
			continue
		}
		if out != nil && d.onOutput != nil {
			d.onOutput(out)
		}
	}
	return nil
}

// Close releases the driver's buffered state. It tolerates a nil
// receiver.
func (d *Driver) Close() {
	if d == nil {
		return
	}
	d.buf = nil
	d.engine = nil
	d.onOutput = nil
	d.onError = nil
}

func stripTrailingCR(line []byte) []byte {
	n := len(line)
	if n >= 2 && line[n-2] == '\r' {
		out := make([]byte, 0, n-1)
		out = append(out, line[:n-2]...)
		out = append(out, '\n')
		return out
	}
	return line
}
