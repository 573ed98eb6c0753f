package store

import (
	"encoding/json"
	"log"

	"github.com/skycastlabs/skycast/internal/weather"
)

const (
	keyRecent = "recentCities"

	// MaxRecent bounds the recent-location list.
	MaxRecent = 5
)

// RecentLocations persists a bounded, deduplicated, most-recent-first list
// of previously viewed locations.
type RecentLocations struct {
	kv *KV
}

// NewRecentLocations creates a recent-location store.
func NewRecentLocations(kv *KV) *RecentLocations {
	return &RecentLocations{kv: kv}
}

// List returns the persisted list, most recent first. A missing or corrupt
// persisted value reads as empty, never an error.
func (r *RecentLocations) List() []weather.Location {
	value, ok, err := r.kv.Get(keyRecent)
	if err != nil {
		log.Printf("recent: failed to read list: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var locations []weather.Location
	if err := json.Unmarshal([]byte(value), &locations); err != nil {
		log.Printf("recent: discarding corrupt list: %v", err)
		return nil
	}
	return locations
}

// Record prepends loc, removing any prior entry with the same name and
// truncating to MaxRecent, then persists the result.
func (r *RecentLocations) Record(loc weather.Location) error {
	existing := r.List()

	updated := make([]weather.Location, 0, len(existing)+1)
	updated = append(updated, loc)
	for _, l := range existing {
		if l.Name == loc.Name {
			continue
		}
		updated = append(updated, l)
	}
	if len(updated) > MaxRecent {
		updated = updated[:MaxRecent]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	return r.kv.Set(keyRecent, string(data))
}

// Clear erases the persisted list.
func (r *RecentLocations) Clear() error {
	return r.kv.Delete(keyRecent)
}
