package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shazoom/internal/capture"
	"shazoom/logging"
	"shazoom/wav"
)

var listenDuration time.Duration

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Record from the default microphone and identify it against the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		color.Cyan("listening for %s...", listenDuration)
		buf, err := capture.Listen(cmd.Context(), logging.Default(), capture.Options{Duration: listenDuration})
		if err != nil {
			return fmt.Errorf("shazoom: capture failed: %w", err)
		}
		return runQuery(cmd.Context(), wav.Encode(buf.SampleRate, buf.Samples))
	},
}

func init() {
	listenCmd.Flags().DurationVar(&listenDuration, "duration", 5*time.Second, "how long to record")
}
