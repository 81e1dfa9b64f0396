package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"mqsim/internal/logging"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger = slog.New(slog.DiscardHandler)
)

// NewRootCmd creates the root cobra command for the mqsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mqsim",
		Short: "mqsim simulates multi-queue CPU scheduling disciplines",
		Long: "mqsim runs a fixed set of synthetic tasks through a multi-queue scheduler\n" +
			"(FCFS, RR, SJF, STR, lottery, priority, MLFQ, SVR2) and prints the execution trace.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newValidateCmd(),
		newPresetsCmd(),
	)
	return root
}
