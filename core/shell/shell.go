// Package shell implements the mtsh read-eval loop: read a line, split it
// into tokens, run builtins in-process and everything else as a real child
// process, then wait for the child and report how it ended.
package shell

import (
	"errors"
	"fmt"
	"io"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"

	"github.com/emptyshell/mtsh/core/config"
	"github.com/emptyshell/mtsh/core/logger"
)

// EnvHome is the only environment variable the interpreter itself reads,
// as the fallback target for `cd` with no argument.
const EnvHome = "HOME"

// LineReader yields one line of input per call with the trailing line
// terminator stripped. io.EOF signals end of input, distinct from an
// empty line.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Options wires a Shell to its session streams and host filesystem.
type Options struct {
	// Reader supplies input lines. Use NewTerminalReader for a real
	// terminal session.
	Reader LineReader
	// Stdout receives command output and the final newline on EOF.
	Stdout io.Writer
	// Stderr receives diagnostics and command-failure reports.
	Stderr io.Writer
	// ChildStdin is handed to launched programs. May be nil.
	ChildStdin io.Reader
	// Fs is used to open redirection targets. Defaults to the OS
	// filesystem.
	Fs afero.Fs
	// Recorder receives one event per dispatched command. May be nil.
	Recorder logger.Recorder
}

// Shell is a single-session interpreter. Execution is strictly
// sequential: at most one child process exists at a time and the loop
// blocks on it before reading the next line.
type Shell struct {
	config     *config.Configuration
	reader     LineReader
	stdout     io.Writer
	stderr     io.Writer
	childStdin io.Reader
	fs         afero.Fs
	recorder   logger.Recorder
	builtins   map[string]Builtin
}

// New creates a Shell from the given configuration and session wiring.
func New(cfg *config.Configuration, opts Options) *Shell {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = logger.Discard
	}

	return &Shell{
		config:     cfg,
		reader:     opts.Reader,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		childStdin: opts.ChildStdin,
		fs:         fs,
		recorder:   recorder,
		builtins:   AllBuiltins,
	}
}

// NewTerminalReader creates a LineReader over a terminal session. The
// prompt is written and flushed before every blocking read so it can't
// end up buffered behind the read.
func NewTerminalReader(prompt string, stdin io.ReadCloser, stdout, stderr io.Writer, isTerminal bool) (LineReader, error) {
	cfg := &readline.Config{
		Prompt: prompt,
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: stdout,
		Stderr: stderr,
		FuncIsTerminal: func() bool {
			return isTerminal
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

// Run executes the read-eval loop until end of input or the exit builtin.
// Both terminate it cleanly; the interpreter's own exit status is always
// zero regardless of what child processes did.
func (s *Shell) Run() error {
	for {
		line, err := s.reader.Readline()

		switch {
		case err == io.EOF:
			// Keep the next shell's prompt off our last line.
			fmt.Fprintln(s.stdout)
			return nil

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			return err

		case len(line) == 0:
			continue
		}

		tokens, truncated := Tokenize(line, s.config.MaxTokens)
		if truncated {
			s.record(logger.DroppedInputEntry(logger.DropTruncated,
				fmt.Sprintf("kept %d tokens", len(tokens))))
		}
		if len(tokens) == 0 {
			continue
		}

		handled, err := s.dispatchBuiltin(tokens)
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			return err
		}
		if handled {
			continue
		}

		s.runExternal(tokens)
	}
}

// Close releases the line reader.
func (s *Shell) Close() error {
	if s.reader == nil {
		return nil
	}
	return s.reader.Close()
}

func (s *Shell) record(entry *logger.LogEntry) {
	// Best effort: a broken event log never disturbs the session.
	_ = s.recorder.Record(entry)
}
