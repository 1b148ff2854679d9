package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emptyshell/mtsh/core/shell"
)

// builtinsCmd lists the commands the interpreter runs in-process.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the interpreter's builtin commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range shell.BuiltinNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
