// Package index builds the inverted index (C6): song registration, the
// data-parallel per-song C2-C5 pipeline, and a strictly serial merge step
// that gives two runs over the same songs and config byte-identical
// indices. The split between a parallel compute phase and a serial
// single-writer merge is grounded on the teacher's ingestion driver in
// core/shazoom.go, which loops over songs sequentially; golang.org/x/sync
// is already a teacher dependency (declared indirect, used transitively
// through pgx), promoted here to do the data-parallel work directly via
// errgroup, the way Prayush09-MusicRecognition's sibling packages in the
// retrieval pack use it for fan-out ingestion.
package index

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"shazoom/config"
	"shazoom/constellation"
	"shazoom/fingerprint"
	"shazoom/spectrum"
	"shazoom/wav"
)

// ErrUnsupportedShape marks a song whose framed spectrum has fewer than
// two slices, so it cannot contribute a single anchor-target pair. It is
// reported per-song, not fatal to the batch: the song is registered with
// zero fingerprints.
var ErrUnsupportedShape = fmt.Errorf("shazoom: fewer than two spectrum slices, cannot form a pair")

// Posting is one occurrence of a fingerprint in the catalog: which song,
// and at which anchor slice.
type Posting struct {
	SongID      uint32
	AnchorSlice int
}

// Index maps a fingerprint key to every posting it occurred at, across
// the whole catalog. Postings for a given key are ordered by (song_id,
// anchor_slice); duplicates within a song are never collapsed.
type Index map[fingerprint.Key][]Posting

// SongIngestError reports a single song's ingest failure. The batch
// continues past it.
type SongIngestError struct {
	SongID uint32
	Label  string
	Err    error
}

func (e *SongIngestError) Error() string {
	return fmt.Sprintf("shazoom: song %d (%s): %v", e.SongID, e.Label, e.Err)
}

func (e *SongIngestError) Unwrap() error { return e.Err }

type registeredSong struct {
	id     uint32
	label  string
	buffer wav.Buffer
}

// Builder accumulates songs to index. It is single-use: once Build has
// run, the builder is spent and further registration is rejected. This
// is the Building -> Built state machine of spec.md §6; there is no
// back-transition.
type Builder struct {
	cfg   config.Config
	songs []registeredSong
	built bool
}

// NewBuilder starts a fresh, empty index build against cfg.
func NewBuilder(cfg config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// AddSong registers a song's decoded audio under label, assigning it the
// next song_id in stable insertion order. Calling AddSong after Build
// panics: the builder has already transitioned to Built.
func (b *Builder) AddSong(label string, buf wav.Buffer) uint32 {
	if b.built {
		panic("shazoom: index.Builder.AddSong called after Build")
	}
	id := uint32(len(b.songs))
	b.songs = append(b.songs, registeredSong{id: id, label: label, buffer: buf})
	return id
}

// songResult is the per-song output of the parallel compute phase: a
// plain value, written to its own slot by its own goroutine, so the
// merge phase that follows needs no locking.
type songResult struct {
	triples []fingerprint.Triple
	err     error
}

// Build runs the C2-C5 pipeline (spectrum framing, constellation
// extraction, pair fingerprinting, fuzzing) for every registered song
// concurrently via errgroup, then serially merges each song's ordered
// fingerprint stream into the index in song_id order. The merge is the
// only part that touches the shared map, so the result is independent of
// goroutine scheduling: the same songs and config always produce the
// same Index.
//
// Per-song failures (a decode-shaped buffer too short to frame, or a
// song whose framed spectrum has fewer than two slices) are collected as
// SongIngestErrors and returned alongside a usable Index built from the
// songs that did succeed; they are never fatal to the batch.
func (b *Builder) Build(ctx context.Context) (Index, []error, error) {
	if b.built {
		return nil, nil, fmt.Errorf("shazoom: index.Builder.Build called twice")
	}
	b.built = true

	results := make([]songResult, len(b.songs))

	g, gctx := errgroup.WithContext(ctx)
	for i, song := range b.songs {
		i, song := i, song
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			frames := spectrum.Frames(song.buffer, b.cfg)
			cmap := constellation.Build(frames, b.cfg)
			if len(cmap) < 2 {
				results[i] = songResult{err: ErrUnsupportedShape}
				return nil
			}
			results[i] = songResult{triples: fingerprint.Fingerprints(cmap, b.cfg)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	idx := make(Index)
	var ingestErrs []error
	for i, song := range b.songs {
		res := results[i]
		if res.err != nil {
			ingestErrs = append(ingestErrs, &SongIngestError{SongID: song.id, Label: song.label, Err: res.err})
			continue
		}
		for _, tr := range res.triples {
			idx[tr.Key] = append(idx[tr.Key], Posting{SongID: song.id, AnchorSlice: tr.AnchorSlice})
		}
	}

	return idx, ingestErrs, nil
}
