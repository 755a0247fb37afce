package commands

import (
	"context"
	"fmt"
	"os"

	"gridwatch-backend/lib/restyutil"
	"gridwatch-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool
var debugHTTP *string

var rootCmd = &cobra.Command{
	Use:   "gridwatch-cli",
	Short: "gridwatch-cli fetches grid telemetry from supported operators and prints canonical records.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	debugHTTP = rootCmd.PersistentFlags().String("debug-http", "", "Directory to dump full HTTP transcripts to.")
}

func debugOutput() restyutil.InstrumentOutput {
	if *debugHTTP == "" {
		return nil
	}
	return restyutil.NewFilesystemOutput(*debugHTTP)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
