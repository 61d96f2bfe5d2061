/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package transform wraps the active selection's resize/rotate handles:
// boundary clamping against sibling edges, rotation snapping, and the
// commit semantics that bake accumulated scale into width/height for text
// and image elements.
package transform

import (
	"math"

	"pagecanvas/internal/canvas"
	"pagecanvas/internal/geom"
	"pagecanvas/internal/snap"
)

const (
	// MinBoxSize rejects degenerate resize results.
	MinBoxSize = 5.0
	// EdgeSnapThreshold clamps a moving edge onto a sibling edge.
	EdgeSnapThreshold = 15.0
	// RotationSnapTolerance in degrees around the cardinal angles.
	RotationSnapTolerance = 5.0
)

// Handles marks which sides the active resize handle moves. Corner handles
// set two of them so both axes can clamp simultaneously.
type Handles struct {
	Left, Right, Top, Bottom bool
}

// Controller keeps the selection-to-node binding for the transformer
// handles. Bindings must be recomputed whenever the selection or the
// element list changes, since handles are positioned relative to live
// element geometry.
type Controller struct {
	Threshold float64
	bound     map[string]geom.Rect
}

func NewController() *Controller {
	return &Controller{Threshold: EdgeSnapThreshold, bound: map[string]geom.Rect{}}
}

// BoundBox constrains a proposed handle-drag result. Degenerate boxes
// (either axis below MinBoxSize) return the old box unchanged. Otherwise
// each side touched by the active handle is tested against every sibling
// edge within the threshold and clamped to align exactly.
func (c *Controller) BoundBox(oldBox, newBox geom.Rect, h Handles, siblings []geom.Rect) geom.Rect {
	if newBox.W < MinBoxSize || newBox.H < MinBoxSize {
		return oldBox
	}
	th := c.Threshold
	if th <= 0 {
		th = EdgeSnapThreshold
	}
	out := newBox

	if h.Right {
		right := out.X + out.W
		if line, ok := nearestEdge(right, siblings, th, func(r geom.Rect) []float64 {
			return []float64{r.X, r.X + r.W}
		}); ok {
			out.W = line - out.X
		}
	}
	if h.Left {
		if line, ok := nearestEdge(out.X, siblings, th, func(r geom.Rect) []float64 {
			return []float64{r.X, r.X + r.W}
		}); ok {
			out.W += out.X - line
			out.X = line
		}
	}
	if h.Bottom {
		bottom := out.Y + out.H
		if line, ok := nearestEdge(bottom, siblings, th, func(r geom.Rect) []float64 {
			return []float64{r.Y, r.Y + r.H}
		}); ok {
			out.H = line - out.Y
		}
	}
	if h.Top {
		if line, ok := nearestEdge(out.Y, siblings, th, func(r geom.Rect) []float64 {
			return []float64{r.Y, r.Y + r.H}
		}); ok {
			out.H += out.Y - line
			out.Y = line
		}
	}
	if out.W < MinBoxSize || out.H < MinBoxSize {
		return oldBox
	}
	return out
}

func nearestEdge(moving float64, siblings []geom.Rect, th float64, edges func(geom.Rect) []float64) (float64, bool) {
	best, bestDist, ok := 0.0, th, false
	for _, s := range siblings {
		for _, line := range edges(s) {
			d := math.Abs(moving - line)
			if d <= bestDist {
				best, bestDist, ok = line, d, true
			}
		}
	}
	return best, ok
}

// SnapRotation snaps deg onto {0, 90, 180, 270} within the tolerance.
// Input is normalized into [0, 360).
func SnapRotation(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	for _, c := range []float64{0, 90, 180, 270, 360} {
		if math.Abs(n-c) <= RotationSnapTolerance {
			return math.Mod(c, 360)
		}
	}
	return n
}

// CommitScale applies the pointer-up semantics of a transform gesture:
// text and image elements bake accumulated scale into width/height (with
// per-type minimums) and reset scale to 1 so later edits do not compound;
// all other kinds keep scale as a first-class field.
func CommitScale(e canvas.Element) canvas.Element {
	sx, sy := e.ScaleX, e.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	switch e.Kind {
	case canvas.KindText:
		e.W = math.Max(e.W*sx, 50)
		e.H = math.Max(e.H*sy, 20)
		e.ScaleX, e.ScaleY = 1, 1
	case canvas.KindImage:
		e.W = math.Max(e.W*sx, 20)
		e.H = math.Max(e.H*sy, 20)
		e.ScaleX, e.ScaleY = 1, 1
	}
	return e
}

// MoveDelta computes the snapped translation for a selection drag. A
// single-element selection snaps the node directly with grid snap; a
// multi-selection snaps the aggregate bounding box against page center
// only, then every member receives the identical per-axis delta.
func MoveDelta(sel []canvas.Element, dx, dy float64, eng snap.Engine, siblings []geom.Rect) (float64, float64, []snap.Guideline) {
	if len(sel) == 0 {
		return dx, dy, nil
	}
	agg := canvas.BoundsOfAll(sel)
	proposed := agg.Translate(dx, dy)
	gridSnap := len(sel) == 1
	pos, guides := eng.Snap(proposed, siblings, gridSnap)
	return dx + (pos.X - proposed.X), dy + (pos.Y - proposed.Y), guides
}

// Rebind recomputes the selection-to-node binding from the live element
// list. Call it whenever the selected-id list changes or the element list
// mutates (width/height changes included).
func (c *Controller) Rebind(selected []string, els []canvas.Element) {
	next := make(map[string]geom.Rect, len(selected))
	byID := make(map[string]canvas.Element, len(els))
	for _, e := range els {
		byID[e.ID] = e
	}
	for _, id := range selected {
		if e, ok := byID[id]; ok {
			next[id] = canvas.Bounds(e)
		}
	}
	c.bound = next
}

// Bound returns the handle box for an id, if bound.
func (c *Controller) Bound(id string) (geom.Rect, bool) {
	r, ok := c.bound[id]
	return r, ok
}

// BoundIDs returns the currently bound ids.
func (c *Controller) BoundIDs() []string {
	out := make([]string, 0, len(c.bound))
	for id := range c.bound {
		out = append(out, id)
	}
	return out
}

// Invalidate drops bindings whose nodes are no longer present. It replaces
// the old periodic defensive sweep: callers fire it exactly when the
// element list or selection changes.
func (c *Controller) Invalidate(els []canvas.Element) {
	present := make(map[string]bool, len(els))
	for _, e := range els {
		present[e.ID] = true
	}
	for id := range c.bound {
		if !present[id] {
			delete(c.bound, id)
		}
	}
}
