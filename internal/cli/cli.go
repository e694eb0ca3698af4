package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Run executes one invocation with explicit streams and returns an exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
	}
	return exitCode(err)
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code: 0 on success, 1 on engine or runtime errors,
// 2 on usage errors.
func MainWithArgs(args []string) int {
	return Run(context.Background(), args, os.Stdout, os.Stderr)
}

// Main returns an exit code for use by cmd/notifyd.
func Main() int { return MainWithArgs(os.Args[1:]) }
