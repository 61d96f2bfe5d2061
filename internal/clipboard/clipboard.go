/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package clipboard implements structural copy, paste and duplication of
// canvas elements: fresh ids, cross-reference repair for question/answer
// pairs, and content clearing so duplicated structural boxes never inherit
// another box's assigned question.
package clipboard

import (
	"errors"

	"pagecanvas/internal/canvas"
	"pagecanvas/internal/geom"
)

// DuplicateOffset is the fixed position delta applied by Duplicate.
const DuplicateOffset = 20.0

var (
	// ErrSamePagePair blocks pasting a question/answer pair onto the page
	// it was copied from.
	ErrSamePagePair = errors.New("question/answer pair cannot be pasted onto its source page")
	// ErrQuestionAssigned blocks pasting a question already assigned to the
	// same responder elsewhere.
	ErrQuestionAssigned = errors.New("question is already assigned to this responder")
)

// AssignmentIndex is supplied by the surrounding application; it knows
// which questions are already assigned to the current responder.
type AssignmentIndex interface {
	IsAssigned(questionID string) (bool, error)
}

// Clipboard holds one copied element set with its source page.
type Clipboard struct {
	items      []canvas.Element
	sourcePage string
}

// Copy captures the selected elements plus, for every included question or
// answer, its paired partner. Order follows the element array (z-order).
func (c *Clipboard) Copy(selected []string, els []canvas.Element, pageID string) {
	closed := canvas.PairClosure(selected, els)
	want := make(map[string]bool, len(closed))
	for _, id := range closed {
		want[id] = true
	}
	c.items = c.items[:0]
	for _, e := range els {
		if want[e.ID] {
			c.items = append(c.items, e.Clone())
		}
	}
	c.sourcePage = pageID
}

// Empty reports whether there is anything to paste.
func (c *Clipboard) Empty() bool { return len(c.items) == 0 }

// Paste materializes the clipboard for the given page, positioning the
// group's top-left at the pointer location while preserving relative
// offsets among the pasted elements. Guards may refuse the whole paste.
func (c *Clipboard) Paste(pageID string, pointer geom.Pt, idx AssignmentIndex) ([]canvas.Element, error) {
	if c.Empty() {
		return nil, nil
	}
	if pageID == c.sourcePage && containsPair(c.items) {
		return nil, ErrSamePagePair
	}
	if idx != nil {
		for _, e := range c.items {
			t := textOf(e)
			if t == nil || t.QuestionID == "" {
				continue
			}
			assigned, err := idx.IsAssigned(t.QuestionID)
			if err != nil {
				return nil, err
			}
			if assigned {
				return nil, ErrQuestionAssigned
			}
		}
	}
	out := remap(c.items)
	top := canvas.BoundsOfAll(out)
	dx, dy := pointer.X-top.X, pointer.Y-top.Y
	for i := range out {
		out[i].X += dx
		out[i].Y += dy
	}
	return out, nil
}

// Duplicate copies the selection (with pair closure) in place with a fixed
// +20/+20 offset. It shares the remap and clearing rules with Paste.
func Duplicate(selected []string, els []canvas.Element) []canvas.Element {
	closed := canvas.PairClosure(selected, els)
	want := make(map[string]bool, len(closed))
	for _, id := range closed {
		want[id] = true
	}
	var picked []canvas.Element
	for _, e := range els {
		if want[e.ID] {
			picked = append(picked, e.Clone())
		}
	}
	out := remap(picked)
	for i := range out {
		out[i].X += DuplicateOffset
		out[i].Y += DuplicateOffset
	}
	return out
}

// remap assigns a fresh id to every element, rewrites QuestionElementID
// cross-references through the same id table, and clears content fields on
// structured question/answer boxes.
func remap(items []canvas.Element) []canvas.Element {
	table := make(map[string]string, len(items))
	out := make([]canvas.Element, len(items))
	for i, e := range items {
		c := e.Clone()
		table[e.ID] = canvas.NewID()
		c.ID = table[e.ID]
		out[i] = c
	}
	for i := range out {
		rewrite(&out[i], table)
	}
	return out
}

func rewrite(e *canvas.Element, table map[string]string) {
	if t := e.Text(); t != nil {
		if t.QuestionElementID != "" {
			if mapped, ok := table[t.QuestionElementID]; ok {
				t.QuestionElementID = mapped
			}
		}
		switch t.TextType {
		case canvas.TextQuestion, canvas.TextAnswer, canvas.TextQnAInline:
			t.Text = ""
			t.FormattedText = ""
			t.QuestionID = ""
		}
	}
	if g := e.Group(); g != nil {
		for i := range g.Children {
			old := g.Children[i].ID
			if mapped, ok := table[old]; ok {
				g.Children[i].ID = mapped
			} else {
				table[old] = canvas.NewID()
				g.Children[i].ID = table[old]
			}
			rewrite(&g.Children[i], table)
		}
	}
}

func containsPair(items []canvas.Element) bool {
	ids := make(map[string]bool, len(items))
	for _, e := range items {
		ids[e.ID] = true
	}
	for _, e := range items {
		if t := textOf(e); t != nil && t.QuestionElementID != "" && ids[t.QuestionElementID] {
			return true
		}
	}
	return false
}

func textOf(e canvas.Element) *canvas.TextPayload {
	return (&e).Text()
}
