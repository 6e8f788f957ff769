package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	flagGDBPath string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gdbmi-probe <executable> [gdb-args...]",
	Short: "Spawn gdb in machine-interface mode and log its parsed output",
	Long: `gdbmi-probe starts "gdb -i mi" against the given executable, feeds
its stdout through a streaming GDB/MI parser, and logs every decoded
stream, async and result record until the debugged process exits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProbe(args[0], args[1:])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagGDBPath, "gdb-path", "", "path to the gdb binary (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable development-mode logging")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gdbmi-probe:", err)
		os.Exit(1)
	}
}

func runProbe(executable string, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if flagGDBPath != "" {
		cfg.GDBPath = flagGDBPath
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer logger.Sync()

	proc, err := spawnGDB(cfg.GDBPath, executable, args)
	if err != nil {
		return errors.Wrap(err, "spawn gdb")
	}

	sess := newSession(logger, proc)
	defer sess.close()

	// watchStops is the consumer side of the channel session.events feeds
	// from onAsync; it is what actually exercises the stack decoders by
	// issuing follow-up commands through proc's correlation loop whenever
	// gdb reports a stop.
	go sess.watchStops()

	// The reader goroutine owns gdb's stdout end to end: it is the
	// counterpart of the teacher's parse_gdb_output goroutine, while
	// proc.correlate (started in spawnGDB) plays the role of NewGDB's
	// command-loop goroutine that answers proc.send from this, the main,
	// goroutine.
	readerDone := make(chan error, 1)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, readErr := proc.stdout.Read(buf)
			if n > 0 {
				if err := sess.feed(buf[:n]); err != nil {
					readerDone <- errors.Wrap(err, "feed dispatcher")
					return
				}
			}
			if readErr != nil {
				readerDone <- nil
				return
			}
		}
	}()

	if _, err := proc.send(newCommand("exec-run")); err != nil {
		return errors.Wrap(err, "send exec-run")
	}

	if err := <-readerDone; err != nil {
		return err
	}

	proc.closeChannels()
	return proc.wait()
}
