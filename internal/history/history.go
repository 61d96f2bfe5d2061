/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history keeps per-page undo/redo stacks of serialized element
// snapshots, fed by the store's checkpoint intents. Snapshots are opaque
// blobs with byte and depth caps so long sessions cannot grow unbounded.
package history

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pagecanvas/internal/canvas"
)

// Snapshot is one reversible page state.
type Snapshot struct {
	PageID string
	Label  string
	Blob   []byte
	TS     time.Time
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; the oldest entries across all pages are
	// pruned when exceeded.
	MaxBytes int
	// MaxPerPage limits snapshots kept per page (0 means unlimited).
	MaxPerPage int
	// MinInterval coalesces snapshots captured within the interval for the
	// same page, replacing the previous one instead of pushing a new entry.
	MinInterval time.Duration
}

// Manager holds the per-page stacks. Safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex

	undo map[string][]Snapshot
	redo map[string][]Snapshot

	totalBytes int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg, undo: map[string][]Snapshot{}, redo: map[string][]Snapshot{}}
}

// Push records a snapshot. Within MinInterval of the previous snapshot for
// the same page it replaces it, so one drag gesture collapses into a single
// undoable step. Any push clears the page's redo stack.
func (m *Manager) Push(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.PageID]
	if n := len(stack); n > 0 {
		last := stack[n-1]
		if s.TS.Sub(last.TS) < m.cfg.MinInterval {
			m.totalBytes += len(s.Blob) - len(last.Blob)
			stack[n-1] = s
			m.undo[s.PageID] = stack
			m.redo[s.PageID] = nil
			m.enforceCapsLocked(s.PageID)
			return
		}
	}
	m.undo[s.PageID] = append(stack, s)
	m.totalBytes += len(s.Blob)
	m.redo[s.PageID] = nil
	m.enforceCapsLocked(s.PageID)
}

// Undo pops the newest snapshot for the page, moving it to the redo stack.
func (m *Manager) Undo(pageID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[pageID]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[pageID] = stack[:len(stack)-1]
	m.totalBytes -= len(s.Blob)
	m.redo[pageID] = append(m.redo[pageID], s)
	return s, true
}

// Redo moves the newest redo snapshot back onto the undo stack.
func (m *Manager) Redo(pageID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[pageID]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[pageID] = r[:len(r)-1]
	m.undo[pageID] = append(m.undo[pageID], s)
	m.totalBytes += len(s.Blob)
	m.enforceCapsLocked(pageID)
	return s, true
}

// ClearPage drops both stacks for a page.
func (m *Manager) ClearPage(pageID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.undo[pageID] {
		m.totalBytes -= len(s.Blob)
	}
	delete(m.undo, pageID)
	delete(m.redo, pageID)
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// Stats reports current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes, pages, snapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages = len(m.undo)
	for _, v := range m.undo {
		snapshots += len(v)
	}
	return m.totalBytes, pages, snapshots
}

func (m *Manager) enforceCapsLocked(pageID string) {
	if m.cfg.MaxPerPage > 0 {
		stack := m.undo[pageID]
		if len(stack) > m.cfg.MaxPerPage {
			drop := len(stack) - m.cfg.MaxPerPage
			for i := 0; i < drop; i++ {
				m.totalBytes -= len(stack[i].Blob)
			}
			m.undo[pageID] = append([]Snapshot{}, stack[drop:]...)
		}
	}
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes {
		oldestPage := ""
		found := false
		var oldestTS time.Time
		for page, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if !found || stack[0].TS.Before(oldestTS) {
				oldestPage = page
				oldestTS = stack[0].TS
				found = true
			}
		}
		if !found {
			break
		}
		stack := m.undo[oldestPage]
		m.totalBytes -= len(stack[0].Blob)
		m.undo[oldestPage] = stack[1:]
		if len(m.undo[oldestPage]) == 0 {
			delete(m.undo, oldestPage)
		}
	}
}

// Recorder binds a manager to one page and implements the store's
// checkpoint sink: every checkpoint serializes the pre-gesture element
// array into a snapshot.
type Recorder struct {
	Pages  *Manager
	PageID string
	// Clock is overridable for tests; nil means time.Now.
	Clock func() time.Time
}

func (r *Recorder) OnCheckpoint(label string, els []canvas.Element) {
	blob, err := json.Marshal(els)
	if err != nil {
		return
	}
	now := time.Now()
	if r.Clock != nil {
		now = r.Clock()
	}
	r.Pages.Push(Snapshot{PageID: r.PageID, Label: label, Blob: blob, TS: now})
}

// Elements decodes a snapshot back into an element array.
func (s Snapshot) Elements() ([]canvas.Element, error) {
	var els []canvas.Element
	if err := json.Unmarshal(s.Blob, &els); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return els, nil
}
