package logstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/entrenoapp/datasync/internal/datasync"

	"github.com/google/uuid"
)

// GlobalLogKey is the slot holding the whole workout log, one JSON array.
const GlobalLogKey = "GLOBAL_LOG"

// Log reads and writes the workout log through a KV slot. The slot holds
// the full entry array; every save rewrites it wholesale.
type Log struct {
	kv  KV
	key string
}

func NewLog(kv KV) *Log {
	return &Log{
		kv:  kv,
		key: GlobalLogKey,
	}
}

func (l *Log) Entries(ctx context.Context) ([]datasync.LogEntry, error) {
	raw, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("read log slot: %w", err)
	}
	if len(raw) == 0 {
		return []datasync.LogEntry{}, nil
	}

	var entries []datasync.LogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal log entries: %w", err)
	}
	return entries, nil
}

func (l *Log) Save(ctx context.Context, entries []datasync.LogEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal log entries: %w", err)
	}
	if err := l.kv.Set(ctx, l.key, raw); err != nil {
		return fmt.Errorf("write log slot: %w", err)
	}
	return nil
}

// Append adds one freshly logged set to the log. Entries without an id get
// one assigned; derived values are recomputed so the caller cannot store
// an inconsistent record.
func (l *Log) Append(ctx context.Context, entry datasync.LogEntry) (datasync.LogEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.RecalcDerived()

	entries, err := l.Entries(ctx)
	if err != nil {
		return datasync.LogEntry{}, err
	}

	entries = append(entries, entry)
	if err := l.Save(ctx, entries); err != nil {
		return datasync.LogEntry{}, err
	}
	return entry, nil
}

func (l *Log) Size(ctx context.Context) (int, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
