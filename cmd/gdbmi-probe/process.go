package main

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"

	gdbmi "github.com/Lockdog88/gdbwire"
)

// command is a single MI front-end command under construction, grounded
// on the teacher's gdb_command/dump_mi in gdbmi.go. reply is the per-
// command result channel the teacher's gdb_command itself carried, so a
// blocked send() has somewhere to wake up.
type command struct {
	token     int64
	name      string
	parameter []string
	options   []string
	reply     chan gdbmi.ResultView
}

var tokenCounter int64

func newCommand(name string) *command {
	return &command{
		token: atomic.AddInt64(&tokenCounter, 1),
		name:  name,
		reply: make(chan gdbmi.ResultView, 1),
	}
}

func (c *command) addParam(p string) *command {
	c.parameter = append(c.parameter, p)
	return c
}

func (c *command) addOption(opt string) *command {
	c.options = append(c.options, fmt.Sprintf("-%s", opt))
	return c
}

func (c *command) addOptionValue(opt, value string) *command {
	c.options = append(c.options, fmt.Sprintf("-%s %s", opt, value))
	return c
}

func (c *command) addOptionWhen(when bool, opt string) *command {
	if when {
		c.addOption(opt)
	}
	return c
}

// dumpMI renders the command in the wire form GDB/MI expects, matching
// the teacher's dump_mi byte for byte (including its always-present
// option/parameter slots, which leave a trailing double space on a bare
// command with neither).
func (c *command) dumpMI() string {
	o := strings.Join(c.options, " ")
	p := strings.Join(c.parameter, " ")
	return fmt.Sprintf("%d-%s %s %s", c.token, c.name, o, p)
}

// gdbProcess wraps a running "gdb -q -i mi <executable>" child, grounded
// on the teacher's NewGDB/send_to_gdb/parse_gdb_output in gdbmi.go. It
// does no record parsing of its own: its stdout is handed byte-for-byte
// to a gdbmi.Dispatcher by the caller. What it does keep from the teacher
// is the command/response correlation loop: correlate is the direct
// counterpart of NewGDB's goroutine selecting over gdb.commands/
// gdb.result and maintaining open_commands, and send is the counterpart
// of GDB.send's "gdb.commands <- *cmd; return <-cmd.result".
type gdbProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser

	commands chan *command
	results  chan gdbmi.ResultView
}

// spawnGDB starts gdb against executable with additional program
// arguments, in machine-interface mode, and starts its correlation loop.
func spawnGDB(gdbPath, executable string, args []string) (*gdbProcess, error) {
	gdbArgs := append([]string{"-q", "-i", "mi", "--args", executable}, args...)
	cmd := exec.Command(gdbPath, gdbArgs...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "open gdb stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "open gdb stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start %s", gdbPath)
	}

	p := &gdbProcess{
		cmd:      cmd,
		stdin:    stdin,
		stdout:   stdout,
		commands: make(chan *command),
		results:  make(chan gdbmi.ResultView),
	}
	go p.correlate()
	return p, nil
}

// correlate is the one goroutine that ever touches the open-command
// table, the same way the teacher's NewGDB command loop was the sole
// reader/writer of open_commands: every submitted command is written to
// gdb's stdin and parked by token until a result record with that same
// token comes back over p.results.
func (p *gdbProcess) correlate() {
	open := make(map[int64]*command)
	for {
		select {
		case c, ok := <-p.commands:
			if !ok {
				return
			}
			if err := p.writeCommand(c); err != nil {
				c.reply <- gdbmi.ResultView{ClassName: "error"}
				continue
			}
			open[c.token] = c
		case r, ok := <-p.results:
			if !ok {
				return
			}
			if c, found := open[int64(r.Token)]; found {
				delete(open, int64(r.Token))
				c.reply <- r
			}
		}
	}
}

func (p *gdbProcess) writeCommand(c *command) error {
	if _, err := fmt.Fprintln(p.stdin, c.dumpMI()); err != nil {
		return errors.Wrapf(err, "send command %q", c.name)
	}
	return nil
}

// send submits c to the correlation loop and blocks until gdb's matching
// result record for c's token arrives, the way the teacher's GDB.send
// blocked on its command's own result channel.
func (p *gdbProcess) send(c *command) (gdbmi.ResultView, error) {
	p.commands <- c
	v, ok := <-c.reply
	if !ok {
		return gdbmi.ResultView{}, errors.New("gdb process closed before replying")
	}
	return v, nil
}

// forwardResult delivers a result record parsed off gdb's stdout to the
// correlation loop; it is the Dispatcher.Result callback's counterpart of
// the teacher's "gdb.result <- rsp" send in parse_gdb_output.
func (p *gdbProcess) forwardResult(v gdbmi.ResultView) {
	p.results <- v
}

// closeChannels shuts down the correlation loop. It must only be called
// once the reader goroutine feeding forwardResult has stopped.
func (p *gdbProcess) closeChannels() {
	close(p.commands)
	close(p.results)
}

func (p *gdbProcess) wait() error {
	if err := p.cmd.Wait(); err != nil {
		return errors.Wrap(err, "gdb process exited with error")
	}
	return nil
}
