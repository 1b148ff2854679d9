package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Reasons for DroppedInput events.
const (
	// DropTruncated marks tokens discarded past the tokenizer capacity.
	DropTruncated = "truncated"
	// DropRedirectSyntax marks a line rejected by the redirection
	// rewriter before launch.
	DropRedirectSyntax = "redirect_syntax"
)

// LogEntry is one event in the command log. Exactly one of the payload
// fields is set.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`

	RunCommand   *RunCommand   `json:"run_command,omitempty"`
	Builtin      *Builtin      `json:"builtin,omitempty"`
	DroppedInput *DroppedInput `json:"dropped_input,omitempty"`
}

// RunCommand records an external program launch and how it ended.
type RunCommand struct {
	// Command is the argument vector after redirection rewriting.
	Command []string `json:"command"`
	// RedirectTarget is the output file, if any.
	RedirectTarget string `json:"redirect_target,omitempty"`

	ExitStatus int `json:"exit_status"`
	// Signal is set instead of ExitStatus when the child died to a
	// signal.
	Signal string `json:"signal,omitempty"`
	// Error is set when the command never ran or the wait failed.
	Error string `json:"error,omitempty"`
}

// Builtin records an in-process builtin invocation.
type Builtin struct {
	Command []string `json:"command"`
}

// DroppedInput records input the interpreter discarded by design.
type DroppedInput struct {
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// RunOutcome summarizes a child's termination for RunCommandEntry.
type RunOutcome struct {
	ExitStatus int
	Signal     string
	Error      string
}

// RunCommandEntry builds a log entry for an external program run.
func RunCommandEntry(argv []string, target string, outcome RunOutcome) *LogEntry {
	return &LogEntry{
		RunCommand: &RunCommand{
			Command:        argv,
			RedirectTarget: target,
			ExitStatus:     outcome.ExitStatus,
			Signal:         outcome.Signal,
			Error:          outcome.Error,
		},
	}
}

// BuiltinEntry builds a log entry for a builtin invocation.
func BuiltinEntry(argv []string) *LogEntry {
	return &LogEntry{Builtin: &Builtin{Command: argv}}
}

// DroppedInputEntry builds a log entry for discarded input.
func DroppedInputEntry(reason, detail string) *LogEntry {
	return &LogEntry{DroppedInput: &DroppedInput{Reason: reason, Detail: detail}}
}

// Recorder stores events in an external datastore.
type Recorder interface {
	Record(le *LogEntry) error
}

// Discard drops all events.
var Discard Recorder = discardRecorder{}

type discardRecorder struct{}

func (discardRecorder) Record(*LogEntry) error { return nil }

// JSONLinesRecorder exports log entries in newline delimited JSON object
// format, stamping entries that don't carry a timestamp yet.
type JSONLinesRecorder struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewJSONLinesRecorder creates a recorder writing to w.
func NewJSONLinesRecorder(w io.Writer) *JSONLinesRecorder {
	return &JSONLinesRecorder{w: w, now: time.Now}
}

// Record writes one entry as a single JSON line.
func (r *JSONLinesRecorder) Record(le *LogEntry) error {
	if le.Timestamp.IsZero() {
		le.Timestamp = r.now()
	}

	entry, err := json.Marshal(le)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = fmt.Fprintln(r.w, string(entry))
	return err
}

// ReadJSONLinesLog parses a newline delimited JSON log, invoking handler
// for each entry in order.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
