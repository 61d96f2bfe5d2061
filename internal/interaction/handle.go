/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interaction

import (
	"pagecanvas/internal/canvas"
	"pagecanvas/internal/geom"
	"pagecanvas/internal/transform"
)

// BeginTransform enters a handle drag on one bound element. The shell owns
// handle hit-testing; it reports which sides the grabbed handle moves.
// Returns false when the element is not part of the bound selection.
func (e *Editor) BeginTransform(id string, h transform.Handles) bool {
	if !e.opts.Permissions.CanEdit() {
		return false
	}
	box, ok := e.ctrl.Bound(id)
	if !ok {
		return false
	}
	e.abortDraft()
	e.mode = &Transforming{ID: id, Handles: h, Orig: box}
	return true
}

// TransformTo proposes a new box for the active handle drag. The proposal
// is clamped by the controller (minimum size, sibling edge snap) and the
// result applied to the element. The first effective change emits the
// history checkpoint.
func (e *Editor) TransformTo(box geom.Rect) {
	m, ok := e.mode.(*Transforming)
	if !ok {
		return
	}
	cur, ok := e.ctrl.Bound(m.ID)
	if !ok {
		e.abortDraft()
		return
	}
	els := e.store.Elements()
	var sibs []geom.Rect
	for _, el := range els {
		if el.ID != m.ID {
			sibs = append(sibs, canvas.Bounds(el))
		}
	}
	next := e.ctrl.BoundBox(cur, box, m.Handles, sibs)
	if next == cur {
		return
	}
	if !m.Changed {
		e.dispatch(canvas.Checkpoint{Label: "transform"})
		m.Changed = true
	}
	e.dispatch(canvas.UpdateElement{
		ID: m.ID,
		Patch: canvas.Patch{
			X: canvas.F(next.X), Y: canvas.F(next.Y),
			W: canvas.F(next.W), H: canvas.F(next.H),
		},
	})
}

// RotateTo sets the rotation of the element under the active handle drag,
// snapping onto the cardinal angles within tolerance.
func (e *Editor) RotateTo(deg float64) {
	m, ok := e.mode.(*Transforming)
	if !ok {
		return
	}
	if !m.Changed {
		e.dispatch(canvas.Checkpoint{Label: "transform"})
		m.Changed = true
	}
	e.dispatch(canvas.UpdateElement{
		ID:    m.ID,
		Patch: canvas.Patch{Rotation: canvas.F(transform.SnapRotation(deg))},
	})
}

// EndTransform leaves the handle drag.
func (e *Editor) EndTransform() {
	if _, ok := e.mode.(*Transforming); ok {
		e.mode = Idle{}
	}
}
