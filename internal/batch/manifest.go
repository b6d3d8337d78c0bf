package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// ManifestName is the file written into every output directory.
const ManifestName = "manifest.json"

// ManifestEntry records one completed file.
type ManifestEntry struct {
	File      string `json:"file"`
	Generator string `json:"generator"`
	Frame     int    `json:"frame"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
	SHA256    string `json:"sha256"`
}

// Manifest lists the files of a directory that are known to be complete.
// A file only appears once it has been fully written.
type Manifest struct {
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Entries []ManifestEntry `json:"entries"`
}

// ReadManifest loads path. A missing file yields an error matching os.ErrNotExist.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("batch: parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Merge adds entries, replacing any with the same file name.
func (m *Manifest) Merge(entries []ManifestEntry) {
	idx := make(map[string]int, len(m.Entries))
	for i, e := range m.Entries {
		idx[e.File] = i
	}
	for _, e := range entries {
		if i, ok := idx[e.File]; ok {
			m.Entries[i] = e
			continue
		}
		idx[e.File] = len(m.Entries)
		m.Entries = append(m.Entries, e)
	}
}

// Lookup finds the entry for a file name.
func (m *Manifest) Lookup(file string) (ManifestEntry, bool) {
	for _, e := range m.Entries {
		if e.File == file {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

// WriteManifest writes m to path atomically, entries sorted by file name.
func WriteManifest(path string, m *Manifest) error {
	sort.Slice(m.Entries, func(i, j int) bool { return m.Entries[i].File < m.Entries[j].File })
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return WriteFile(path, data, true)
}
