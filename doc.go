// Package gdbmi is a push-mode, zero-I/O streaming parser for the GDB/MI
// output protocol: feed it arbitrary byte fragments from a running gdb -i
// mi process and it delivers completed records through callbacks, in
// order, buffering only the current partial line and the records of the
// output command not yet closed by its "(gdb)" prompt.
package gdbmi
