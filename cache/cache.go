// Package cache memoizes a song's fingerprint stream across ingest runs,
// keyed by the config that produced it and the song's label, so a
// catalog rebuild with an unchanged config and unchanged songs never
// re-runs the C2-C5 pipeline. Grounded on original_source/src/database.rs's
// DatabaseBuilder.build, which checks a cache file per song before
// falling back to re-encoding it from the raw WAV.
package cache

import (
	"context"
	"hash/fnv"

	"shazoom/fingerprint"
)

// Key identifies a cached fingerprint stream: the config that would
// produce it, and the song it belongs to. Two different configs (or two
// differently-labeled songs) never collide.
type Key struct {
	ConfigHash uint64
	SongHash   uint64
}

// NewKey derives a Key from a config hash (config.Config.Hash) and a
// song label.
func NewKey(configHash uint64, label string) Key {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	return Key{ConfigHash: configHash, SongHash: h.Sum64()}
}

// Entry is one cached fingerprint triple, the JSON-serializable shadow
// of a fingerprint.Triple.
type Entry struct {
	Key         fingerprint.Key `json:"key"`
	AnchorSlice int             `json:"anchor_slice"`
}

// Cache stores and retrieves a song's fingerprint stream by Key.
type Cache interface {
	Get(ctx context.Context, key Key) ([]Entry, bool, error)
	Put(ctx context.Context, key Key, entries []Entry) error
}

// ToEntries and FromEntries convert between the cache's JSON-friendly
// shape and the fingerprint package's working type.
func ToEntries(triples []fingerprint.Triple) []Entry {
	out := make([]Entry, len(triples))
	for i, tr := range triples {
		out[i] = Entry{Key: tr.Key, AnchorSlice: tr.AnchorSlice}
	}
	return out
}

func FromEntries(entries []Entry) []fingerprint.Triple {
	out := make([]fingerprint.Triple, len(entries))
	for i, e := range entries {
		out[i] = fingerprint.Triple{Key: e.Key, AnchorSlice: e.AnchorSlice}
	}
	return out
}
