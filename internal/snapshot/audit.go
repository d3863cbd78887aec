package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Audit actions recorded for human decisions on cards
const (
	ActionApprove  = "Approve"
	ActionEdit     = "Edit"
	ActionOverride = "Override"
)

// AuditEntry is one line of the append-only audit trail
type AuditEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	CardID     string    `json:"card_id"`
	SnapshotID string    `json:"snapshot_id"`
	Action     string    `json:"action"`
	Reason     string    `json:"reason"`
	User       string    `json:"user"`
}

// AuditLog appends human decisions to a JSONL file. Entries are never
// modified or removed.
type AuditLog struct {
	path string
}

// NewAuditLog opens (or creates) the audit trail at the given path
func NewAuditLog(path string) (*AuditLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	f.Close()
	return &AuditLog{path: path}, nil
}

// Record appends one entry to the trail
func (l *AuditLog) Record(entry AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.User == "" {
		entry.User = "Unknown"
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Entries reads the whole trail in recorded order
func (l *AuditLog) Entries() ([]AuditEntry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var entries []AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry AuditEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("corrupt audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}
