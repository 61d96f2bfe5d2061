/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Viewport maps between screen space and page-content space. Stage is the
// pan offset in screen pixels, Zoom the scale factor, PageOffset the
// position of the page origin inside stage space.
//
// Zoom is clamped to [MinZoom, MaxZoom]; pan is unconstrained.

const (
	MinZoom = 0.1
	MaxZoom = 3.0
)

type Viewport struct {
	Stage      Pt
	Zoom       float64
	PageOffset Pt
}

// NewViewport returns an identity viewport at zoom 1.
func NewViewport() Viewport { return Viewport{Zoom: 1} }

// ClampZoom bounds z to the supported zoom range.
func ClampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ToContent converts a screen point to page-content space:
// (p - stage)/zoom - pageOffset.
func (v Viewport) ToContent(p Pt) Pt {
	z := v.zoom()
	return Pt{
		X: (p.X-v.Stage.X)/z - v.PageOffset.X,
		Y: (p.Y-v.Stage.Y)/z - v.PageOffset.Y,
	}
}

// ToScreen is the exact inverse of ToContent.
func (v Viewport) ToScreen(p Pt) Pt {
	z := v.zoom()
	return Pt{
		X: (p.X+v.PageOffset.X)*z + v.Stage.X,
		Y: (p.Y+v.PageOffset.Y)*z + v.Stage.Y,
	}
}

// ToContentRect converts a screen-space rect to content space.
func (v Viewport) ToContentRect(r Rect) Rect {
	min := v.ToContent(Pt{r.X, r.Y})
	z := v.zoom()
	return Rect{X: min.X, Y: min.Y, W: r.W / z, H: r.H / z}
}

func (v Viewport) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return ClampZoom(v.Zoom)
}
