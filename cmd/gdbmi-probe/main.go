// Command gdbmi-probe spawns gdb in machine-interface mode against a
// target executable and logs its parsed output, exercising the gdbmi and
// miinfo packages end to end.
package main

func main() {
	Execute()
}
