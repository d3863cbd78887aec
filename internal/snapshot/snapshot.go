// Package snapshot freezes board reports into immutable JSON files and
// keeps an append-only audit trail of human decisions.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/okazmin/kompas/internal/board"
)

// Snapshot is a frozen board report with provenance hashes
type Snapshot struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	ConfigHash string        `json:"config_hash"`
	DataHash   string        `json:"data_hash"`
	Report     *board.Report `json:"report"`
}

// Manager writes and lists snapshots under a directory
type Manager struct {
	dir string
}

// NewManager creates the snapshot directory if needed
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Hash returns the hex sha256 of the given content, used for the config
// and data provenance fields.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Freeze writes the report as an immutable snapshot file and returns it.
// The id combines the customer name with a second-resolution timestamp.
func (m *Manager) Freeze(report *board.Report, configHash, dataHash string) (*Snapshot, error) {
	now := time.Now().UTC()
	snap := &Snapshot{
		ID:         fmt.Sprintf("%s_%s", slug(report.CustomerName), now.Format("20060102_150405")),
		CreatedAt:  now,
		ConfigHash: configHash,
		DataHash:   dataHash,
		Report:     report,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	path := filepath.Join(m.dir, snap.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return snap, nil
}

// Load reads a snapshot by id
func (m *Manager) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, id+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", id, err)
	}
	return &snap, nil
}

// List returns snapshot ids, newest first
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// slug lowercases a name and replaces separators so it is filename-safe
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "board"
	}
	return s
}
