package cmd

import (
	"fmt"
	"io"
	"os"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Icon semantics:
//   ✓  success
//   ✗  error / failure          (written to stderr)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) {
	if name == "" {
		fmt.Fprintf(stdout, "  ✓  %s\n", msg)
	} else {
		fmt.Fprintf(stdout, "  ✓  [%s] %s\n", name, msg)
	}
}

// printErr prints an error line to stderr.
func printErr(name, msg string) {
	if name == "" {
		fmt.Fprintf(stderr, "  ✗  %s\n", msg)
	} else {
		fmt.Fprintf(stderr, "  ✗  [%s] %s\n", name, msg)
	}
}
