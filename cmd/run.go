package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/emptyshell/mtsh/core/logger"
	"github.com/emptyshell/mtsh/core/shell"
)

// runCmd starts the interpreter over the local terminal.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive interpreter.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		recorder := logger.Discard
		if cfg.HistoryLog != "" {
			logFd, err := cfg.OpenHistoryLog()
			if err != nil {
				// Run without event logging rather than refusing to start.
				fmt.Fprintf(cmd.ErrOrStderr(), "mtsh: history log disabled: %v\n", err)
			} else {
				defer logFd.Close()
				recorder = logger.NewJSONLinesRecorder(logFd)
			}
		}

		if cfg.Motd != "" {
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Motd)
		}

		reader, err := shell.NewTerminalReader(
			cfg.Prompt,
			os.Stdin,
			cmd.OutOrStdout(),
			cmd.ErrOrStderr(),
			isatty.IsTerminal(os.Stdin.Fd()),
		)
		if err != nil {
			return err
		}

		s := shell.New(cfg, shell.Options{
			Reader:     reader,
			Stdout:     cmd.OutOrStdout(),
			Stderr:     cmd.ErrOrStderr(),
			ChildStdin: os.Stdin,
			Fs:         afero.NewOsFs(),
			Recorder:   recorder,
		})
		defer s.Close()

		return s.Run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
