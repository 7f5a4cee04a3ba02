// Package metadata persists fetched profiles to disk as JSON or YAML.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"igprofile/pkg/instagram"
)

// Snapshot is a fetched profile and its image URLs at a point in time
type Snapshot struct {
	Username  string             `json:"username" yaml:"username"`
	FetchedAt time.Time          `json:"fetchedAt" yaml:"fetchedAt"`
	Profile   *instagram.Profile `json:"profile,omitempty" yaml:"profile,omitempty"`
	Images    []string           `json:"images" yaml:"images"`
}

// NewSnapshot creates a Snapshot stamped with the current time
func NewSnapshot(username string, profile *instagram.Profile, images []string) *Snapshot {
	if images == nil {
		images = []string{}
	}
	return &Snapshot{
		Username:  username,
		FetchedAt: time.Now().UTC().Truncate(time.Second),
		Profile:   profile,
		Images:    images,
	}
}

// isYAML reports whether path should be written as YAML rather than JSON
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes the snapshot to path. The format follows the extension; anything but .yaml/.yml is JSON.
func (s *Snapshot) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}

// Load reads a snapshot written by Save
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var s Snapshot
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &s, nil
}

// NewImages returns the URLs in current that the snapshot does not already hold, in order
func (s *Snapshot) NewImages(current []string) []string {
	seen := make(map[string]bool, len(s.Images))
	for _, url := range s.Images {
		seen[url] = true
	}

	fresh := []string{}
	for _, url := range current {
		if !seen[url] {
			fresh = append(fresh, url)
		}
	}
	return fresh
}
