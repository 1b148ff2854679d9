package shell

import (
	"bytes"
	"io"

	"github.com/spf13/afero"

	"github.com/emptyshell/mtsh/core/config"
	"github.com/emptyshell/mtsh/core/logger"
)

// scriptReader feeds a fixed set of lines, then end-of-input.
type scriptReader struct {
	lines []string
	next  int
}

func (r *scriptReader) Readline() (string, error) {
	if r.next >= len(r.lines) {
		return "", io.EOF
	}

	line := r.lines[r.next]
	r.next++
	return line, nil
}

func (r *scriptReader) Close() error { return nil }

// captureRecorder keeps recorded entries in memory.
type captureRecorder struct {
	entries []*logger.LogEntry
}

func (c *captureRecorder) Record(le *logger.LogEntry) error {
	c.entries = append(c.entries, le)
	return nil
}

type testShell struct {
	shell    *Shell
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	recorder *captureRecorder
	fs       afero.Fs
}

func newTestShell(lines ...string) *testShell {
	ts := &testShell{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		recorder: &captureRecorder{},
		fs:       afero.NewMemMapFs(),
	}

	ts.shell = New(config.Default(), Options{
		Reader:   &scriptReader{lines: lines},
		Stdout:   ts.stdout,
		Stderr:   ts.stderr,
		Fs:       ts.fs,
		Recorder: ts.recorder,
	})

	return ts
}
