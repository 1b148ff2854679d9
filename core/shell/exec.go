package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/emptyshell/mtsh/core/logger"
)

// runExternal launches tokens as a real child process and blocks until it
// terminates. All failure paths report to stderr and return so the loop
// continues with the next prompt; nothing here ever terminates the
// interpreter.
func (s *Shell) runExternal(tokens []string) {
	argv, target, err := ExtractRedirect(tokens)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		s.record(logger.DroppedInputEntry(logger.DropRedirectSyntax, tokens[0]))
		return
	}
	if len(argv) == 0 {
		// The line was only a redirection, e.g. "> out".
		fmt.Fprintln(s.stderr, "syntax error: missing command")
		s.record(logger.DroppedInputEntry(logger.DropRedirectSyntax, RedirectMarker))
		return
	}

	stdout := s.stdout
	if target != "" {
		fd, err := s.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Fprintf(s.stderr, "cannot open %s for writing: %v\n", target, err)
			s.record(logger.RunCommandEntry(argv, target, logger.RunOutcome{Error: err.Error()}))
			return
		}
		defer fd.Close()
		stdout = fd
	}

	// Resolve the program the way execvp would: only names without a
	// path separator are searched for on PATH.
	execPath, err := exec.LookPath(argv[0])
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			err = execErr.Err
		}
		fmt.Fprintf(s.stderr, "%s: %v\n", argv[0], err)
		s.record(logger.RunCommandEntry(argv, target, logger.RunOutcome{Error: err.Error()}))
		return
	}

	cmd := exec.Command(execPath, argv[1:]...)
	cmd.Args[0] = argv[0]
	cmd.Stdin = s.childStdin
	cmd.Stdout = stdout
	cmd.Stderr = s.stderr
	// Environment is inherited wholesale; there are no per-program
	// overrides.

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", argv[0], err)
		s.record(logger.RunCommandEntry(argv, target, logger.RunOutcome{Error: err.Error()}))
		return
	}

	s.reap(cmd, argv, target)
}

// reap waits for the started child and classifies its termination: clean
// exits are silent, non-zero exits and signal deaths are reported to
// stderr. The wait is unconditional: there is no job control, timeout,
// or cancellation.
func (s *Shell) reap(cmd *exec.Cmd, argv []string, target string) {
	err := cmd.Wait()
	if err == nil {
		s.record(logger.RunCommandEntry(argv, target, logger.RunOutcome{}))
		return
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// The wait itself failed.
		fmt.Fprintf(s.stderr, "%s: %v\n", argv[0], err)
		s.record(logger.RunCommandEntry(argv, target, logger.RunOutcome{Error: err.Error()}))
		return
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		sig := status.Signal()
		fmt.Fprintf(s.stderr, "%s: killed by signal %d (%s)\n", argv[0], int(sig), sig)
		s.record(logger.RunCommandEntry(argv, target, logger.RunOutcome{Signal: sig.String()}))
		return
	}

	fmt.Fprintf(s.stderr, "%s: exit code: %d\n", argv[0], exitErr.ExitCode())
	s.record(logger.RunCommandEntry(argv, target, logger.RunOutcome{ExitStatus: exitErr.ExitCode()}))
}
