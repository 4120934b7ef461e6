// Package pidrec owns the PID record: the single source of truth for which
// process the agent supervises. The record is written by start (or by
// status when it adopts an unmanaged instance) and removed only by stop.
package pidrec

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Record names the process the agent currently considers managed.
type Record struct {
	PID int
}

// Store abstracts record persistence so the reconciliation logic can be
// tested against an in-memory implementation.
type Store interface {
	// Load returns the record and whether one exists. An unreadable or
	// unparseable record is an error, not absence.
	Load() (Record, bool, error)
	Save(Record) error
	// Remove deletes the record; removing an absent record is not an error.
	Remove() error
}

// File stores the record as a file whose first line is the PID.
type File struct {
	Path string
}

func (f File) Load() (Record, bool, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	pidLine, _, _ := strings.Cut(string(b), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(pidLine))
	if err != nil {
		return Record{}, false, fmt.Errorf("invalid pid in %s: %w", f.Path, err)
	}
	return Record{PID: pid}, true, nil
}

func (f File) Save(r Record) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte(strconv.Itoa(r.PID)+"\n"), 0o600)
}

func (f File) Remove() error {
	err := os.Remove(f.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Memory is an in-memory Store for tests and embedding.
type Memory struct {
	rec Record
	set bool
}

func (m *Memory) Load() (Record, bool, error) {
	return m.rec, m.set, nil
}

func (m *Memory) Save(r Record) error {
	m.rec, m.set = r, true
	return nil
}

func (m *Memory) Remove() error {
	m.rec, m.set = Record{}, false
	return nil
}
