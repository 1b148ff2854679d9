package logger

import "strconv"

// Report aggregates a command log.
type Report struct {
	LogEntries int `json:"log_entries"`

	// Builtins counts builtin invocations by name.
	Builtins StrCounter `json:"builtins,omitempty"`
	// Programs counts external program runs by name.
	Programs StrCounter `json:"programs,omitempty"`
	// ExitCodes histograms external terminations: a numeric exit
	// status, "signal:<name>", or "error".
	ExitCodes StrCounter `json:"exit_codes,omitempty"`
	// DroppedInput counts discarded input by reason.
	DroppedInput StrCounter `json:"dropped_input,omitempty"`
}

// Update folds one entry into the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch {
	case le.Builtin != nil:
		if len(le.Builtin.Command) > 0 {
			r.Builtins.Increment(le.Builtin.Command[0])
		}

	case le.RunCommand != nil:
		run := le.RunCommand
		if len(run.Command) > 0 {
			r.Programs.Increment(run.Command[0])
		}
		switch {
		case run.Error != "":
			r.ExitCodes.Increment("error")
		case run.Signal != "":
			r.ExitCodes.Increment("signal:" + run.Signal)
		default:
			r.ExitCodes.Increment(strconv.Itoa(run.ExitStatus))
		}

	case le.DroppedInput != nil:
		r.DroppedInput.Increment(le.DroppedInput.Reason)
	}
}

// StrCounter counts occurrences of strings.
type StrCounter map[string]int

// Increment adds one to the counter for key, allocating on first use.
func (c *StrCounter) Increment(key string) {
	if *c == nil {
		*c = make(StrCounter)
	}
	(*c)[key]++
}
