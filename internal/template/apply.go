/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package template

import (
	"fmt"
	"sort"

	"pagecanvas/internal/canvas"
	"pagecanvas/internal/geom"
	"pagecanvas/internal/theme"
)

// roleOf classifies an existing element for slot matching. Elements outside
// both classes are unmappable and always kept verbatim.
func roleOf(e canvas.Element) (Role, bool) {
	if e.Kind == canvas.KindImage {
		return RoleImage, true
	}
	if t := (&e).Text(); t != nil && t.TextType.IsStructured() {
		return RoleQA, true
	}
	return "", false
}

// Apply maps existing onto the template at the target canvas size. It is a
// pure function of its inputs: the same call always yields the same
// geometry. Returned warnings are advisory; mismatched counts are a
// supported case, never an error.
func Apply(existing []canvas.Element, tpl Template, target geom.Size, themeName string) ([]canvas.Element, []string) {
	scaled := tpl.Scale(target)

	out := canvas.CloneElements(existing)
	byRole := map[Role][]int{} // indices into out, reading order
	for i := range out {
		if r, ok := roleOf(out[i]); ok {
			byRole[r] = append(byRole[r], i)
		}
	}
	slots := map[Role][]Slot{}
	for _, s := range scaled.Slots {
		slots[s.Role] = append(slots[s.Role], s)
	}

	var warnings []string
	for _, role := range []Role{RoleQA, RoleImage} {
		idxs := byRole[role]
		sort.SliceStable(idxs, func(a, b int) bool {
			ba, bb := canvas.Bounds(out[idxs[a]]), canvas.Bounds(out[idxs[b]])
			if ba.Y != bb.Y {
				return ba.Y < bb.Y
			}
			return ba.X < bb.X
		})
		sl := slots[role]
		sort.SliceStable(sl, func(a, b int) bool {
			if sl[a].Y != sl[b].Y {
				return sl[a].Y < sl[b].Y
			}
			return sl[a].X < sl[b].X
		})

		n := len(idxs)
		if len(sl) < n {
			n = len(sl)
		}
		for i := 0; i < n; i++ {
			adoptSlot(&out[idxs[i]], sl[i])
		}
		if extra := len(idxs) - n; extra > 0 {
			warnings = append(warnings,
				fmt.Sprintf("%d %s element(s) have no slot and keep their geometry", extra, role))
		}
		if extra := len(sl) - n; extra > 0 {
			warnings = append(warnings,
				fmt.Sprintf("%d empty %s slot(s) filled with new elements", extra, role))
			for _, s := range sl[n:] {
				out = append(out, newSlotElement(s, themeName))
			}
		}
	}
	return out, warnings
}

// adoptSlot overwrites only position, size and rotation; id, content and
// style stay with the element.
func adoptSlot(e *canvas.Element, s Slot) {
	e.X, e.Y = s.X, s.Y
	if s.Role != RoleImage {
		e.W, e.H = s.W, s.H
	}
	e.Rotation = s.Rotation
}

func newSlotElement(s Slot, themeName string) canvas.Element {
	el := canvas.Element{
		ID: canvas.NewID(),
		X:  s.X, Y: s.Y, W: s.W, H: s.H,
		Rotation: s.Rotation,
	}
	switch s.Role {
	case RoleImage:
		el.Kind = canvas.KindImage
		el.Payload = &canvas.ImagePayload{Placeholder: true}
	default:
		el.Kind = canvas.KindText
		tt := s.TextType
		if tt == "" {
			tt = canvas.TextQuestion
		}
		size := s.FontSize
		if size == 0 {
			size = 16
		}
		el.Payload = &canvas.TextPayload{
			TextType: tt,
			FontSize: size,
			Fill:     theme.PaletteColor(theme.RoleText, themeName),
		}
	}
	return el
}
