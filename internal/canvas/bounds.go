/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "pagecanvas/internal/geom"

// StrokePad is the padding applied around point-cloud bounds so thin strokes
// stay clickable.
const StrokePad = 10.0

// DefaultSize returns the fallback width/height for elements that carry no
// explicit size.
func DefaultSize(k Kind) geom.Size {
	switch k {
	case KindText:
		return geom.Size{W: 150, H: 50}
	case KindImage:
		return geom.Size{W: 150, H: 100}
	case KindLine:
		return geom.Size{W: 100, H: 10}
	case KindCircle:
		return geom.Size{W: 80, H: 80}
	default:
		return geom.Size{W: 100, H: 50}
	}
}

// Bounds computes the axis-aligned bounding box of an element in content
// space. Stroke and compound bounds are derived from points/children on
// every call; they are never cached on the element.
func Bounds(e Element) geom.Rect {
	switch {
	case e.Kind == KindBrush || e.Kind == KindLine:
		if s := e.Stroke(); s != nil && len(s.Points) >= 2 {
			return geom.BoundsOfPoints(s.Points, StrokePad).Translate(e.X, e.Y)
		}
	case e.Kind.IsCompound():
		if g := e.Group(); g != nil && len(g.Children) > 0 {
			var b geom.Rect
			for i, ch := range g.Children {
				cb := Bounds(ch)
				if i == 0 {
					b = cb
				} else {
					b = b.Union(cb)
				}
			}
			return b.Translate(e.X, e.Y)
		}
	}
	w, h := e.W, e.H
	if w == 0 || h == 0 {
		def := DefaultSize(e.Kind)
		if w == 0 {
			w = def.W
		}
		if h == 0 {
			h = def.H
		}
	}
	return geom.Rect{X: e.X, Y: e.Y, W: w, H: h}
}

// BoundsOfAll unions the bounds of every given element. Returns the zero
// rect for an empty slice.
func BoundsOfAll(els []Element) geom.Rect {
	var b geom.Rect
	for i, e := range els {
		eb := Bounds(e)
		if i == 0 {
			b = eb
		} else {
			b = b.Union(eb)
		}
	}
	return b
}

// HitTest returns the ids of elements whose bounds strictly intersect the
// band rectangle, preserving z-order.
func HitTest(els []Element, band geom.Rect) []string {
	var ids []string
	for _, e := range els {
		if Bounds(e).Intersects(band) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// TopElementAt returns the top-most element whose bounds contain p, or nil.
func TopElementAt(els []Element, p geom.Pt) *Element {
	for i := len(els) - 1; i >= 0; i-- {
		if Bounds(els[i]).Contains(p) {
			return &els[i]
		}
	}
	return nil
}
