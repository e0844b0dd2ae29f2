package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/hfsm/pkg/events"
)

// Sink implements ports.EventSink and ports.EventReader using the local filesystem.
// Each machine appends JSON lines to <BasePath>/<machineID>.jsonl.
type Sink struct {
	BasePath string

	mu sync.Mutex
}

// NewSink creates a sink writing under basePath.
// If basePath is empty, it defaults to ".hfsm/events".
func NewSink(basePath string) *Sink {
	if basePath == "" {
		basePath = filepath.Join(".hfsm", "events")
	}
	return &Sink{BasePath: basePath}
}

func (s *Sink) path(machineID string) string {
	return filepath.Join(s.BasePath, machineID+".jsonl")
}

// Publish appends entries to the machine file.
func (s *Sink) Publish(ctx context.Context, machineID string, entries []events.Entry) error {
	if machineID == "" {
		return fmt.Errorf("machineID cannot be empty")
	}
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure event directory: %w", err)
	}

	f, err := os.OpenFile(s.path(machineID), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open event file: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write events: %w", err)
	}
	return f.Close()
}

// Read decodes every entry stored for the machine.
func (s *Sink) Read(ctx context.Context, machineID string) ([]events.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path(machineID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []events.Entry{}, nil
		}
		return nil, fmt.Errorf("failed to open event file: %w", err)
	}
	defer f.Close()

	out := []events.Entry{}
	dec := json.NewDecoder(f)
	for dec.More() {
		var e events.Entry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Machines lists the machine IDs with stored events, sorted.
func (s *Sink) Machines() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(s.BasePath, "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to list event files: %w", err)
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(filepath.Base(m), ".jsonl"))
	}
	sort.Strings(ids)
	return ids, nil
}
