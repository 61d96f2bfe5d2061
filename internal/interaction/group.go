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
)

// GroupSelection replaces the current multi-selection with one compound
// element. Children are rebased onto the group origin so their page
// positions do not change; the group box is the aggregate bounds. The
// compound joins at the top of the stack.
func (e *Editor) GroupSelection() {
	if !e.opts.Permissions.CanEdit() {
		return
	}
	sel := e.store.Selected()
	if len(sel) < 2 {
		return
	}
	els := e.store.Elements()
	want := map[string]bool{}
	for _, id := range sel {
		want[id] = true
	}
	children := make([]canvas.Element, 0, len(sel))
	for _, el := range els {
		if want[el.ID] {
			children = append(children, el.Clone())
		}
	}
	if len(children) < 2 {
		return
	}
	box := canvas.BoundsOfAll(children)
	for i := range children {
		children[i].X -= box.X
		children[i].Y -= box.Y
	}
	g := canvas.Element{
		ID: canvas.NewID(), Kind: canvas.KindGroup,
		X: box.X, Y: box.Y, W: box.W, H: box.H,
		Payload: &canvas.GroupPayload{Children: children},
	}
	e.dispatch(canvas.Checkpoint{Label: "group"})
	for _, id := range sel {
		e.dispatch(canvas.DeleteElement{ID: id})
	}
	e.dispatch(canvas.AddElement{Element: g})
	e.setSelected([]string{g.ID})
}

// UngroupSelection dissolves every selected compound element back into its
// children. Each child gets the parent origin re-added, so nothing moves
// on the page; the freed children replace the compound in the selection.
func (e *Editor) UngroupSelection() {
	if !e.opts.Permissions.CanEdit() {
		return
	}
	sel := e.store.Selected()
	if len(sel) == 0 {
		return
	}
	els := e.store.Elements()
	var parents []canvas.Element
	for _, id := range sel {
		for i := range els {
			if els[i].ID == id && els[i].Kind.IsCompound() && els[i].Group() != nil {
				parents = append(parents, els[i])
			}
		}
	}
	if len(parents) == 0 {
		return
	}
	e.dispatch(canvas.Checkpoint{Label: "ungroup"})
	var freed []string
	for _, p := range parents {
		origin := geom.Pt{X: p.X, Y: p.Y}
		e.dispatch(canvas.DeleteElement{ID: p.ID})
		for _, child := range p.Group().Children {
			c := child.Clone()
			c.X += origin.X
			c.Y += origin.Y
			e.dispatch(canvas.AddElement{Element: c})
			freed = append(freed, c.ID)
		}
	}
	e.setSelected(freed)
}
