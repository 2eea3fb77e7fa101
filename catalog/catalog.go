// Package catalog turns a set of named audio sources into an index.Index,
// the same way original_source/src/database.rs's DatabaseBuilder turns a
// list of song names into a Database: add songs to a builder, checking a
// cache per song before paying for the full encode, then build. AddSong
// returns the builder itself so calls chain the way DatabaseBuilder's
// add_song does in Rust (there, consuming and returning self; here,
// returning the same pointer since Go methods don't need the ownership
// dance).
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"shazoom/cache"
	"shazoom/config"
	"shazoom/constellation"
	"shazoom/fingerprint"
	"shazoom/index"
	"shazoom/logging"
	"shazoom/spectrum"
	"shazoom/wav"
)

// Song is one catalog entry: its assigned song_id and display label.
type Song struct {
	ID    uint32
	Label string
}

// Source supplies one song's raw WAV bytes on demand.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Label() string
}

// FileSource reads a song from disk; its label is the file's base name
// with its extension stripped.
type FileSource struct {
	Path string
}

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) Label() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// InMemorySource wraps an already-loaded WAV payload, mainly useful for
// tests.
type InMemorySource struct {
	Name string
	Data []byte
}

func (s InMemorySource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

func (s InMemorySource) Label() string { return s.Name }

// Builder accumulates songs and, on Build, produces both the catalog's
// Song records and the resulting index.Index.
type Builder struct {
	cfg    config.Config
	cache  cache.Cache
	logger logging.Logger
	songs  []Song
	srcs   []Source
}

// NewBuilder starts an empty catalog build. cache and logger may not be
// nil; pass cache.NullCache{} and logging.Default() for the no-op
// defaults.
func NewBuilder(cfg config.Config, c cache.Cache, logger logging.Logger) *Builder {
	return &Builder{cfg: cfg, cache: c, logger: logger}
}

// AddSong registers src under the next song_id in insertion order and
// returns the builder, so calls chain: b.AddSong(a).AddSong(b).AddSong(c).
func (b *Builder) AddSong(src Source) *Builder {
	id := uint32(len(b.songs))
	b.songs = append(b.songs, Song{ID: id, Label: src.Label()})
	b.srcs = append(b.srcs, src)
	return b
}

type songOutcome struct {
	triples []fingerprint.Triple
	err     error
}

// Build decodes, fingerprints (or reuses a cached fingerprint stream
// for), and indexes every registered song. Per-song source/decode
// failures are collected and returned alongside a usable Index built
// from the songs that did succeed, mirroring index.Builder.Build's
// contract: a bad song never sinks the batch.
func (b *Builder) Build(ctx context.Context) (index.Index, []Song, []error, error) {
	outcomes := make([]songOutcome, len(b.srcs))
	configHash := b.cfg.Hash()

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range b.srcs {
		i, src := i, src
		g.Go(func() error {
			triples, err := b.ingestOne(gctx, configHash, src)
			outcomes[i] = songOutcome{triples: triples, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	idx := make(index.Index)
	var ingestErrs []error
	for i, song := range b.songs {
		out := outcomes[i]
		if out.err != nil {
			ingestErrs = append(ingestErrs, &index.SongIngestError{SongID: song.ID, Label: song.Label, Err: out.err})
			continue
		}
		for _, tr := range out.triples {
			idx[tr.Key] = append(idx[tr.Key], index.Posting{SongID: song.ID, AnchorSlice: tr.AnchorSlice})
		}
	}

	return idx, b.songs, ingestErrs, nil
}

func (b *Builder) ingestOne(ctx context.Context, configHash uint64, src Source) ([]fingerprint.Triple, error) {
	label := src.Label()
	key := cache.NewKey(configHash, label)

	if entries, hit, err := b.cache.Get(ctx, key); err == nil && hit {
		b.logger.InfoContext(ctx, "cache hit", "song", label)
		return cache.FromEntries(entries), nil
	}
	b.logger.WarnContext(ctx, "cache miss", "song", label)

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("shazoom: opening song %q: %w", label, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("shazoom: reading song %q: %w", label, err)
	}

	buf, err := wav.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("shazoom: decoding song %q: %w", label, err)
	}

	if _, err := config.New(b.cfg, buf.SampleRate); err != nil {
		return nil, fmt.Errorf("shazoom: song %q: %w", label, err)
	}

	frames := spectrum.Frames(buf, b.cfg)
	cmap := constellation.Build(frames, b.cfg)
	if len(cmap) < 2 {
		return nil, index.ErrUnsupportedShape
	}
	triples := fingerprint.Fingerprints(cmap, b.cfg)

	if err := b.cache.Put(ctx, key, cache.ToEntries(triples)); err != nil {
		logging.Error(ctx, b.logger, "failed to write fingerprint cache entry", err)
	}

	return triples, nil
}

// Labels returns a copy of the registered songs sorted by song_id.
func (b *Builder) Labels() []Song {
	out := append([]Song(nil), b.songs...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
