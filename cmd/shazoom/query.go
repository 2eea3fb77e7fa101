package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shazoom/catalog"
	"shazoom/config"
	"shazoom/constellation"
	"shazoom/fingerprint"
	"shazoom/index"
	"shazoom/logging"
	"shazoom/match"
	"shazoom/spectrum"
	"shazoom/wav"
)

var queryCmd = &cobra.Command{
	Use:   "query <query.wav>",
	Short: "Identify a recording against the built catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("shazoom: reading query file %q: %w", args[0], err)
		}
		return runQuery(cmd.Context(), data)
	},
}

// runQuery fingerprints raw WAV bytes against the catalog at catalogPath
// and prints the result. Every invocation gets its own request id purely
// for log correlation across the ingest/query split, the one place this
// CLI reaches for google/uuid.
func runQuery(ctx context.Context, wavBytes []byte) error {
	requestID := uuid.New().String()
	logger := logging.Default()
	logger.InfoContext(ctx, "query received", "request_id", requestID, "bytes", len(wavBytes))

	cf, err := loadCatalogFile(catalogPath)
	if err != nil {
		return err
	}

	buf, err := wav.Decode(wavBytes)
	if err != nil {
		return fmt.Errorf("shazoom: decoding query: %w", err)
	}

	if _, err := config.New(cf.Config, buf.SampleRate); err != nil {
		return fmt.Errorf("shazoom: query sample rate incompatible with catalog config: %w", err)
	}

	frames := spectrum.Frames(buf, cf.Config)
	cmap := constellation.Build(frames, cf.Config)
	if len(cmap) < 2 {
		return index.ErrUnsupportedShape
	}
	triples := fingerprint.Fingerprints(cmap, cf.Config)

	matches := match.Matches(index.Index(cf.Index), triples)
	best, ok := match.Best(matches)
	if !ok {
		color.Red("no match found (request %s)", requestID)
		return nil
	}

	label := songLabel(cf.Songs, best.SongID)
	offsetSeconds := float64(best.BestOffset) * float64(cf.Config.SliceMillis) / 1000.0

	color.Green("match: %s", label)
	fmt.Printf("  score:      %.3f\n", best.Score)
	fmt.Printf("  offset:     %.2fs into the song\n", offsetSeconds)
	fmt.Printf("  freq/n:     %d/%d\n", best.Freq, best.N)
	fmt.Printf("  candidates: %d\n", len(matches))
	return nil
}

func songLabel(songs []catalog.Song, id uint32) string {
	for _, s := range songs {
		if s.ID == id {
			return s.Label
		}
	}
	return fmt.Sprintf("song#%d", id)
}
