package shell

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emptyshell/mtsh/core/config"
)

func TestRunEndOfInput(t *testing.T) {
	ts := newTestShell()

	err := ts.shell.Run()

	require.NoError(t, err)
	// Terminal hygiene: the next shell's prompt starts on a fresh line.
	assert.Equal(t, "\n", ts.stdout.String())
	assert.Empty(t, ts.stderr.String())
}

func TestRunBlankLinesAreNoOps(t *testing.T) {
	ts := newTestShell("", "   ", " \t \t ")

	err := ts.shell.Run()

	require.NoError(t, err)
	assert.Equal(t, "\n", ts.stdout.String())
	assert.Empty(t, ts.stderr.String())
	assert.Empty(t, ts.recorder.entries)
}

func TestRunExitShortCircuits(t *testing.T) {
	ts := newTestShell("exit with trailing args", "mtsh-no-such-program")

	err := ts.shell.Run()

	require.NoError(t, err)
	// The line after exit is never processed.
	assert.Empty(t, ts.stderr.String())
	require.Len(t, ts.recorder.entries, 1)
	assert.NotNil(t, ts.recorder.entries[0].Builtin)
}

func TestRunExternalCommand(t *testing.T) {
	skipWithoutPOSIX(t)
	ts := newTestShell("echo hi")

	err := ts.shell.Run()

	require.NoError(t, err)
	assert.Equal(t, "hi\n\n", ts.stdout.String())
	assert.Empty(t, ts.stderr.String())
}

func TestRunContinuesAfterFailures(t *testing.T) {
	skipWithoutPOSIX(t)
	ts := newTestShell(
		"mtsh-no-such-program",
		"echo >",
		"false",
		"echo still alive",
	)

	err := ts.shell.Run()

	require.NoError(t, err)
	assert.Contains(t, ts.stderr.String(), "mtsh-no-such-program: ")
	assert.Contains(t, ts.stderr.String(), "syntax error: expected filename after '>'")
	assert.Contains(t, ts.stderr.String(), "false: exit code: 1")
	assert.Contains(t, ts.stdout.String(), "still alive\n")
}

func TestRunRedirect(t *testing.T) {
	skipWithoutPOSIX(t)
	ts := newTestShell("echo hi > out.txt")

	err := ts.shell.Run()

	require.NoError(t, err)
	content, readErr := afero.ReadFile(ts.fs, "out.txt")
	require.NoError(t, readErr)
	assert.Equal(t, "hi\n", string(content))
	// Command output went to the file, not the terminal.
	assert.Equal(t, "\n", ts.stdout.String())
}

func TestRunTokenTruncation(t *testing.T) {
	skipWithoutPOSIX(t)

	ts := newTestShell()
	cfg := &config.Configuration{Prompt: "> ", MaxTokens: 4}
	ts.shell = New(cfg, Options{
		Reader:   &scriptReader{lines: []string{"echo a b c d e"}},
		Stdout:   ts.stdout,
		Stderr:   ts.stderr,
		Fs:       ts.fs,
		Recorder: ts.recorder,
	})

	err := ts.shell.Run()

	require.NoError(t, err)
	// Capacity 4 keeps "echo a b"; everything past the limit is dropped.
	assert.Equal(t, "a b\n\n", ts.stdout.String())

	var sawTruncation bool
	for _, entry := range ts.recorder.entries {
		if entry.DroppedInput != nil {
			sawTruncation = true
			assert.Equal(t, "truncated", entry.DroppedInput.Reason)
		}
	}
	assert.True(t, sawTruncation)
}

func TestRunRecordsOneEntryPerCommand(t *testing.T) {
	skipWithoutPOSIX(t)
	ts := newTestShell("echo one", "true", "exit")

	err := ts.shell.Run()

	require.NoError(t, err)
	require.Len(t, ts.recorder.entries, 3)
	assert.NotNil(t, ts.recorder.entries[0].RunCommand)
	assert.NotNil(t, ts.recorder.entries[1].RunCommand)
	assert.NotNil(t, ts.recorder.entries[2].Builtin)
}

func TestNewDefaults(t *testing.T) {
	s := New(config.Default(), Options{})

	assert.NotNil(t, s.fs)
	assert.NotNil(t, s.recorder)
	assert.NoError(t, s.Close())
}

func TestRunReaderFailure(t *testing.T) {
	ts := newTestShell()
	ts.shell.reader = failingReader{}

	err := ts.shell.Run()

	assert.ErrorIs(t, err, errBrokenReader)
}

var errBrokenReader = errors.New("broken reader")

type failingReader struct{}

func (failingReader) Readline() (string, error) { return "", errBrokenReader }
func (failingReader) Close() error              { return nil }
