package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shazoom/cache"
	"shazoom/catalog"
	"shazoom/config"
	"shazoom/logging"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <songs-dir>",
	Short: "Build a catalog from every .wav file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	songsDir := args[0]
	entries, err := os.ReadDir(songsDir)
	if err != nil {
		return fmt.Errorf("shazoom: reading songs directory %q: %w", songsDir, err)
	}

	cfg := config.Default()
	c := newCacheFromEnv()
	logger := logging.Default()

	builder := catalog.NewBuilder(cfg, c, logger)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".wav" {
			continue
		}
		builder.AddSong(catalog.FileSource{Path: filepath.Join(songsDir, entry.Name())})
	}

	ctx := cmd.Context()
	idx, songs, ingestErrs, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("shazoom: ingest failed: %w", err)
	}

	for _, e := range ingestErrs {
		color.Yellow("skipped: %v", e)
	}

	if err := saveCatalogFile(catalogPath, catalogFile{Config: cfg, Songs: songs, Index: idx}); err != nil {
		return err
	}

	color.Green("ingested %d song(s), %d failed, %d distinct fingerprints -> %s",
		len(songs)-len(ingestErrs), len(ingestErrs), len(idx), catalogPath)
	return nil
}

func newCacheFromEnv() cache.Cache {
	env := config.LoadEnvConfig()
	switch env.CacheKind {
	case "none":
		return cache.NullCache{}
	case "postgres":
		c, err := cache.NewPostgresCache(context.Background(), env.PostgresDSN)
		if err != nil {
			color.Yellow("falling back to file cache: %v", err)
			return cache.NewFileCache(env.CacheDir)
		}
		return c
	default:
		return cache.NewFileCache(env.CacheDir)
	}
}
