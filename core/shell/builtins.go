package shell

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/emptyshell/mtsh/core/logger"
)

// ErrExit is returned by the exit builtin. It unwinds to Run, which
// terminates the loop cleanly; the builtin itself never kills the
// process.
var ErrExit = errors.New("exit")

// Builtin runs a command in the interpreter's own process. args includes
// the command name at position zero.
type Builtin func(s *Shell, args []string) error

// AllBuiltins holds the registered shell builtins. The set is small on
// purpose: only commands that are meaningless in a child process belong
// here.
var AllBuiltins = make(map[string]Builtin)

// BuiltinNames lists the registered builtins in sorted order.
func BuiltinNames() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dispatchBuiltin runs tokens as a builtin if the first names one.
// handled reports whether the line is done with; an empty token sequence
// counts as handled. It must run before any child is launched: exiting or changing
// directory in a child would have no effect on the session.
func (s *Shell) dispatchBuiltin(tokens []string) (handled bool, err error) {
	if len(tokens) == 0 {
		return true, nil
	}

	builtin, ok := s.builtins[tokens[0]]
	if !ok {
		return false, nil
	}

	s.record(logger.BuiltinEntry(tokens))
	return true, builtin(s, tokens)
}

// Exit terminates the interpreter with status 0, ignoring any arguments.
func Exit(s *Shell, args []string) error {
	return ErrExit
}

// Cd changes the interpreter's working directory. With no argument it
// targets $HOME; extra arguments beyond the first are ignored. Failures
// are reported and the command still counts as handled.
func Cd(s *Shell, args []string) error {
	var dest string
	if len(args) > 1 {
		dest = args[1]
	} else {
		dest = os.Getenv(EnvHome)
		if dest == "" {
			fmt.Fprintln(s.stderr, "cd: HOME not set")
			return nil
		}
	}

	if err := os.Chdir(dest); err != nil {
		fmt.Fprintf(s.stderr, "cd: %v\n", err)
	}
	return nil
}

func init() {
	AllBuiltins["exit"] = Exit
	AllBuiltins["cd"] = Cd
}
