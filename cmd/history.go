package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/emptyshell/mtsh/core/logger"
)

var headingColor = color.New(color.FgCyan, color.Bold)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Explore the interpreter's command event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of logged commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		config, err := loadConfig()
		if err != nil {
			return err
		}

		fd, err := config.ReadHistoryLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		var report logger.Report
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		headingColor.Fprintln(cmd.OutOrStdout(), "Command report")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(reportCommand)
}
