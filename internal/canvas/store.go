/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

// Element store boundary. The interaction engine never mutates elements in
// place; it emits intents, and the store produces whole-array replacements
// so in-flight render snapshots stay consistent.

import (
	"log/slog"

	applog "pagecanvas/internal/log"
)

// Intent is one element-store mutation request.
type Intent interface{ isIntent() }

// Checkpoint asks the external history mechanism to record an undoable
// step before a gesture that will emit multiple incremental updates.
type Checkpoint struct{ Label string }

// AddElement appends an element at the top of the z-order.
type AddElement struct{ Element Element }

// DeleteElement removes the element with the given id.
type DeleteElement struct{ ID string }

// UpdateElement patches selected envelope fields and/or replaces the payload.
type UpdateElement struct {
	ID    string
	Patch Patch
}

// SetSelected replaces the current selection id set.
type SetSelected struct{ IDs []string }

// MoveDir is a z-order move direction.
type MoveDir int

const (
	MoveToFront MoveDir = iota
	MoveToBack
	MoveUp
	MoveDown
)

// MoveElement changes an element's position in the z-order.
type MoveElement struct {
	ID  string
	Dir MoveDir
}

func (Checkpoint) isIntent()    {}
func (AddElement) isIntent()    {}
func (DeleteElement) isIntent() {}
func (UpdateElement) isIntent() {}
func (SetSelected) isIntent()   {}
func (MoveElement) isIntent()   {}

// Patch carries partial envelope updates; nil fields are left untouched.
// Payload, when non-nil, replaces the whole payload variant.
type Patch struct {
	X, Y     *float64
	W, H     *float64
	Rotation *float64
	ScaleX   *float64
	ScaleY   *float64
	Payload  Payload
}

// F is a convenience for building Patch pointer fields.
func F(v float64) *float64 { return &v }

// Dispatcher receives intents from the engine. The engine assumes each
// intent is applied before the next gesture begins.
type Dispatcher interface {
	Dispatch(Intent)
}

// CheckpointSink observes checkpoint intents with a serialized snapshot of
// the element array taken before the gesture's updates.
type CheckpointSink interface {
	OnCheckpoint(label string, elements []Element)
}

// Store is the reference in-memory element store. Single-threaded by
// contract (§ concurrency): all dispatches happen on the UI event goroutine.
type Store struct {
	elements []Element
	selected []string
	sink     CheckpointSink
	log      *slog.Logger
}

func NewStore(initial []Element) *Store {
	return &Store{
		elements: CloneElements(initial),
		log:      applog.WithComponent("store"),
	}
}

// SetCheckpointSink wires the history mechanism.
func (s *Store) SetCheckpointSink(sink CheckpointSink) { s.sink = sink }

// Elements returns the current element array. Callers must treat it as
// immutable; every mutation installs a fresh slice.
func (s *Store) Elements() []Element { return s.elements }

// Selected returns the current selection id list.
func (s *Store) Selected() []string { return s.selected }

// Replace installs a whole new element array (undo restore, template apply).
func (s *Store) Replace(els []Element) {
	s.elements = CloneElements(els)
	s.selected = s.pruneSelection(s.selected)
}

// Dispatch applies one intent. Unknown ids are a silent no-op apart from a
// warning; the engine treats stale references as recoverable.
func (s *Store) Dispatch(in Intent) {
	switch iv := in.(type) {
	case Checkpoint:
		if s.sink != nil {
			s.sink.OnCheckpoint(iv.Label, CloneElements(s.elements))
		}
	case AddElement:
		next := make([]Element, 0, len(s.elements)+1)
		next = append(next, s.elements...)
		next = append(next, iv.Element.Clone())
		s.elements = next
	case DeleteElement:
		idx := s.indexOf(iv.ID)
		if idx < 0 {
			s.log.Warn("delete for unknown element", slog.String("id", iv.ID))
			return
		}
		next := make([]Element, 0, len(s.elements)-1)
		next = append(next, s.elements[:idx]...)
		next = append(next, s.elements[idx+1:]...)
		s.elements = next
		s.selected = s.pruneSelection(s.selected)
	case UpdateElement:
		idx := s.indexOf(iv.ID)
		if idx < 0 {
			s.log.Warn("update for unknown element", slog.String("id", iv.ID))
			return
		}
		next := CloneElements(s.elements)
		applyPatch(&next[idx], iv.Patch)
		s.elements = next
	case SetSelected:
		s.selected = s.pruneSelection(append([]string(nil), iv.IDs...))
	case MoveElement:
		idx := s.indexOf(iv.ID)
		if idx < 0 {
			s.log.Warn("z-order move for unknown element", slog.String("id", iv.ID))
			return
		}
		s.elements = moveInZOrder(s.elements, idx, iv.Dir)
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.elements {
		if s.elements[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) pruneSelection(ids []string) []string {
	out := ids[:0]
	for _, id := range ids {
		if s.indexOf(id) >= 0 {
			out = append(out, id)
		} else {
			s.log.Warn("selection referenced missing element", slog.String("id", id))
		}
	}
	return out
}

func applyPatch(e *Element, p Patch) {
	if p.X != nil {
		e.X = *p.X
	}
	if p.Y != nil {
		e.Y = *p.Y
	}
	if p.W != nil {
		e.W = *p.W
	}
	if p.H != nil {
		e.H = *p.H
	}
	if p.Rotation != nil {
		e.Rotation = *p.Rotation
	}
	if p.ScaleX != nil {
		e.ScaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		e.ScaleY = *p.ScaleY
	}
	if p.Payload != nil {
		e.Payload = p.Payload
	}
}

func moveInZOrder(els []Element, idx int, dir MoveDir) []Element {
	next := CloneElements(els)
	el := next[idx]
	switch dir {
	case MoveToFront:
		next = append(append(next[:idx:idx], next[idx+1:]...), el)
	case MoveToBack:
		rest := append(next[:idx:idx], next[idx+1:]...)
		next = append([]Element{el}, rest...)
	case MoveUp:
		if idx < len(next)-1 {
			next[idx], next[idx+1] = next[idx+1], next[idx]
		}
	case MoveDown:
		if idx > 0 {
			next[idx], next[idx-1] = next[idx-1], next[idx]
		}
	}
	return next
}
