package itinerary

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

//go:embed fixtures/*.json
var embeddedFixtures embed.FS

// FixtureStore looks up canned itineraries by destination name. Layers are
// searched in order; the first one holding the file wins.
type FixtureStore struct {
	layers []fs.FS
}

// NewFixtureStore serves the embedded fixtures, overridden by dir when it is set.
func NewFixtureStore(dir string) *FixtureStore {
	var layers []fs.FS
	if dir != "" {
		layers = append(layers, os.DirFS(dir))
	}
	embedded, err := fs.Sub(embeddedFixtures, "fixtures")
	if err != nil {
		panic(fmt.Errorf("embedded fixtures: %w", err))
	}
	layers = append(layers, embedded)
	return &FixtureStore{layers: layers}
}

// NewFixtureStoreFS builds a store over the given filesystems only.
func NewFixtureStoreFS(layers ...fs.FS) *FixtureStore {
	return &FixtureStore{layers: layers}
}

// FixtureKey is the file a destination's fixture is stored under.
func FixtureKey(destination string) string {
	return strings.ToLower(strings.TrimSpace(destination)) + ".json"
}

// Load returns the decoded fixture for destination. found is false when no layer
// has one; a fixture that exists but cannot be decoded is reported as found with an error.
func (s *FixtureStore) Load(destination string) (payload any, found bool, err error) {
	key := FixtureKey(destination)
	if key == ".json" || strings.ContainsAny(key, `/\`) {
		return nil, false, nil
	}
	for _, layer := range s.layers {
		raw, err := fs.ReadFile(layer, key)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, true, fmt.Errorf("failed to read fixture %s: %w", key, err)
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, true, fmt.Errorf("malformed fixture %s: %w", key, err)
		}
		return decoded, true, nil
	}
	return nil, false, nil
}
