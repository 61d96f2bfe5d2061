/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package snap aligns a moving element against page-center lines and
// sibling element edges during a drag. The engine is UI-agnostic and
// deterministic; guidelines are transient render artifacts that the caller
// clears when the drag ends.
package snap

import (
	"math"

	"pagecanvas/internal/geom"
)

// Threshold is the default snap distance in content-space pixels,
// independent of zoom.
const Threshold = 15.0

// Orientation of a guideline.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// GuideKind indicates which features aligned.
type GuideKind string

const (
	GuideEdge   GuideKind = "edge"
	GuideCenter GuideKind = "center"
)

// Guideline is a full-page-length alignment line to render during a
// snapped drag.
type Guideline struct {
	Orientation Orientation
	Kind        GuideKind
	Position    float64
	From        geom.Pt
	To          geom.Pt
}

// Engine holds page geometry and the snap distance.
type Engine struct {
	Threshold float64
	PageSize  geom.Size
}

// New returns an engine with the default threshold.
func New(page geom.Size) Engine {
	return Engine{Threshold: Threshold, PageSize: page}
}

// Snap corrects the moving box's position. Page-center lines are always
// candidates; sibling edges and centers only when gridSnap is set (single
// element drags — group moves pass false and align against page center
// only). Each axis picks the candidate with the minimal absolute delta
// below the threshold independently; with no candidate in range the
// proposed coordinate passes through unchanged.
func (e Engine) Snap(moving geom.Rect, siblings []geom.Rect, gridSnap bool) (geom.Pt, []Guideline) {
	th := e.Threshold
	if th <= 0 {
		th = Threshold
	}

	type axisBest struct {
		delta float64
		dist  float64
		line  float64
		kind  GuideKind
		ok    bool
	}
	var bestX, bestY axisBest

	considerX := func(movingEdge, line float64, kind GuideKind) {
		d := movingEdge - line
		dist := math.Abs(d)
		if dist > th {
			return
		}
		if !bestX.ok || dist < bestX.dist {
			bestX = axisBest{delta: d, dist: dist, line: line, kind: kind, ok: true}
		}
	}
	considerY := func(movingEdge, line float64, kind GuideKind) {
		d := movingEdge - line
		dist := math.Abs(d)
		if dist > th {
			return
		}
		if !bestY.ok || dist < bestY.dist {
			bestY = axisBest{delta: d, dist: dist, line: line, kind: kind, ok: true}
		}
	}

	mxL, mxR, mxC := moving.X, moving.X+moving.W, moving.X+moving.W/2
	myT, myB, myC := moving.Y, moving.Y+moving.H, moving.Y+moving.H/2

	// Page center lines.
	pcx, pcy := e.PageSize.W/2, e.PageSize.H/2
	considerX(mxC, pcx, GuideCenter)
	considerY(myC, pcy, GuideCenter)

	if gridSnap {
		for _, s := range siblings {
			sxL, sxR, sxC := s.X, s.X+s.W, s.X+s.W/2
			syT, syB, syC := s.Y, s.Y+s.H, s.Y+s.H/2
			for _, line := range []float64{sxL, sxR} {
				considerX(mxL, line, GuideEdge)
				considerX(mxR, line, GuideEdge)
			}
			considerX(mxC, sxC, GuideCenter)
			for _, line := range []float64{syT, syB} {
				considerY(myT, line, GuideEdge)
				considerY(myB, line, GuideEdge)
			}
			considerY(myC, syC, GuideCenter)
		}
	}

	pos := geom.Pt{X: moving.X, Y: moving.Y}
	var guides []Guideline
	if bestX.ok {
		pos.X = geom.Round(moving.X-bestX.delta, 3)
		guides = append(guides, e.verticalGuide(bestX.line, bestX.kind))
	}
	if bestY.ok {
		pos.Y = geom.Round(moving.Y-bestY.delta, 3)
		guides = append(guides, e.horizontalGuide(bestY.line, bestY.kind))
	}
	return pos, guides
}

func (e Engine) verticalGuide(x float64, kind GuideKind) Guideline {
	x = geom.Round(x, 3)
	return Guideline{
		Orientation: Vertical,
		Kind:        kind,
		Position:    x,
		From:        geom.Pt{X: x, Y: 0},
		To:          geom.Pt{X: x, Y: e.PageSize.H},
	}
}

func (e Engine) horizontalGuide(y float64, kind GuideKind) Guideline {
	y = geom.Round(y, 3)
	return Guideline{
		Orientation: Horizontal,
		Kind:        kind,
		Position:    y,
		From:        geom.Pt{X: 0, Y: y},
		To:          geom.Pt{X: e.PageSize.W, Y: y},
	}
}
