package index

import (
	"encoding/json"
	"sort"

	"shazoom/fingerprint"
)

// jsonEntry is the wire shape of one Index bucket: encoding/json cannot
// use a non-string type as a map key, so Index round-trips through a
// sorted slice of (key, postings) pairs instead of its native map shape.
type jsonEntry struct {
	Key      fingerprint.Key `json:"key"`
	Postings []Posting       `json:"postings"`
}

// MarshalJSON renders the index as a slice of entries sorted by key, so
// two builds of the same catalog serialize identically byte-for-byte.
func (idx Index) MarshalJSON() ([]byte, error) {
	keys := make([]fingerprint.Key, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	entries := make([]jsonEntry, len(keys))
	for i, k := range keys {
		entries[i] = jsonEntry{Key: k, Postings: idx[k]}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON rebuilds an Index from the slice MarshalJSON produces.
func (idx *Index) UnmarshalJSON(data []byte) error {
	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	out := make(Index, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Postings
	}
	*idx = out
	return nil
}
