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

// Mode is the single tagged union of transient gesture state. Exactly one
// mode is active at a time; illegal flag combinations cannot be expressed.
type Mode interface{ isMode() }

// Idle means no gesture is in flight.
type Idle struct{}

// Panning tracks a stage drag. Offset is pointer-minus-stage at gesture
// start; Panned distinguishes a real pan from a click so release can skip
// the selection clear.
type Panning struct {
	Offset geom.Pt
	Panned bool
}

// DrawingBrush accumulates raw content-space points for one stroke.
type DrawingBrush struct {
	Points []float64
}

// DrawingShape tracks a drag-to-create for a closed shape kind.
type DrawingShape struct {
	Kind    canvas.Kind
	Anchor  geom.Pt
	Preview geom.Rect
}

// DrawingLine tracks a drag-to-create line segment.
type DrawingLine struct {
	Anchor geom.Pt
	End    geom.Pt
}

// DrawingText tracks a drag-to-create text box.
type DrawingText struct {
	Anchor  geom.Pt
	Preview geom.Rect
}

// Selecting tracks a rubber-band rectangle.
type Selecting struct {
	Anchor geom.Pt
	Band   geom.Rect
}

// MovingSelection translates every selected element by the same delta.
// Start and the original positions are fixed at gesture begin so snapping
// never accumulates drift across ticks.
type MovingSelection struct {
	Start geom.Pt
	Orig  map[string]geom.Pt
	Group bool
	// Moved turns true on the first real drag tick; the history checkpoint
	// is only emitted then, so a bare click never records an undo step.
	Moved bool
}

// Transforming is an active handle drag on one element, routed through the
// transform controller's clamping. Changed turns true on the first
// effective geometry change; the history checkpoint is emitted then, so a
// grab-and-release without movement records nothing.
type Transforming struct {
	ID      string
	Handles transform.Handles
	Orig    geom.Rect
	Changed bool
}

func (Idle) isMode()             {}
func (*Panning) isMode()         {}
func (*DrawingBrush) isMode()    {}
func (*DrawingShape) isMode()    {}
func (*DrawingLine) isMode()     {}
func (*DrawingText) isMode()     {}
func (*Selecting) isMode()       {}
func (*MovingSelection) isMode() {}
func (*Transforming) isMode()    {}
