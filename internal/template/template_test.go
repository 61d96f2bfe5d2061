/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package template

import (
	"math"
	"strings"
	"testing"

	"pagecanvas/internal/canvas"
	"pagecanvas/internal/geom"
)

func qaBox(id string, x, y float64, text string) canvas.Element {
	return canvas.Element{
		ID: id, Kind: canvas.KindText, X: x, Y: y, W: 150, H: 50,
		Payload: &canvas.TextPayload{TextType: canvas.TextQuestion, Text: text, FontSize: 14},
	}
}

func imgBox(id string, x, y, w, h float64) canvas.Element {
	return canvas.Element{
		ID: id, Kind: canvas.KindImage, X: x, Y: y, W: w, H: h,
		Payload: &canvas.ImagePayload{Src: "photo.jpg"},
	}
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	doc := []byte(`{"baseWidth": 1000, "baseHeight": 1400, "slots": [
		{"role": "qa", "x": 10, "y": 20, "width": 300, "height": 80}
	]}`)
	if err := Validate(doc); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}
	tpl, err := Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tpl.Slots) != 1 || tpl.Slots[0].Role != RoleQA {
		t.Fatalf("decoded: %+v", tpl)
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	doc := []byte(`{"baseWidth": 0, "slots": [{"role": "banner", "x": 1, "y": 2}]}`)
	err := Validate(doc)
	if err == nil {
		t.Fatalf("invalid template accepted")
	}
	msg := err.Error()
	for _, want := range []string{"baseHeight", "role"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestScaleLinearPositionsAndSqrtFont(t *testing.T) {
	tpl := Template{
		BaseWidth: 1000, BaseHeight: 1000,
		Slots: []Slot{
			{Role: RoleQA, X: 100, Y: 200, W: 300, H: 100, FontSize: 10},
			{Role: RoleImage, X: 500, Y: 500, W: 200, H: 150},
		},
	}
	s := tpl.Scale(geom.Size{W: 2000, H: 500}) // sx=2, sy=0.5, area ratio 1
	qa := s.Slots[0]
	if qa.X != 200 || qa.Y != 100 || qa.W != 600 || qa.H != 50 {
		t.Fatalf("qa slot: %+v", qa)
	}
	if math.Abs(qa.FontSize-10) > 1e-9 {
		t.Fatalf("font size should follow sqrt area ratio (=1): %v", qa.FontSize)
	}
	img := s.Slots[1]
	if img.X != 1000 || img.Y != 250 {
		t.Fatalf("image slot position: %+v", img)
	}
	if img.W != 200 || img.H != 150 {
		t.Fatalf("image slot size must not rescale: %+v", img)
	}
}

func TestApplyTwoSlotsThreeBoxes(t *testing.T) {
	// reading order by (y, x): a (top), b, c
	a := qaBox("a", 50, 100, "first")
	b := qaBox("b", 400, 100, "second")
	c := qaBox("c", 50, 900, "third")
	tpl := Template{
		BaseWidth: 1000, BaseHeight: 1000,
		Slots: []Slot{
			{Role: RoleQA, X: 600, Y: 600, W: 250, H: 90},
			{Role: RoleQA, X: 100, Y: 50, W: 200, H: 80},
		},
	}
	out, warnings := Apply([]canvas.Element{a, b, c}, tpl, geom.Size{W: 1000, H: 1000}, "")
	if len(out) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(out))
	}
	find := func(id string) canvas.Element {
		for _, e := range out {
			if e.ID == id {
				return e
			}
		}
		t.Fatalf("element %s lost", id)
		return canvas.Element{}
	}
	ga := find("a")
	if ga.X != 100 || ga.Y != 50 || ga.W != 200 || ga.H != 80 {
		t.Fatalf("first box should take the top slot: %+v", ga)
	}
	gb := find("b")
	if gb.X != 600 || gb.Y != 600 || gb.W != 250 || gb.H != 90 {
		t.Fatalf("second box should take the second slot: %+v", gb)
	}
	gc := find("c")
	if gc.X != 50 || gc.Y != 900 || gc.W != 150 || gc.H != 50 {
		t.Fatalf("surplus box must keep its geometry: %+v", gc)
	}
	for _, id := range []string{"a", "b", "c"} {
		el := find(id)
		if tp := el.Text(); tp == nil || tp.Text == "" {
			t.Fatalf("content of %s lost", id)
		}
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "no slot") {
		t.Fatalf("warnings: %v", warnings)
	}
}

func TestApplySurplusSlotsCreateThemedEmpties(t *testing.T) {
	tpl := Template{
		BaseWidth: 1000, BaseHeight: 1000,
		Slots: []Slot{
			{Role: RoleQA, X: 100, Y: 100, W: 200, H: 80, FontSize: 12},
			{Role: RoleImage, X: 400, Y: 400, W: 300, H: 200},
		},
	}
	out, warnings := Apply(nil, tpl, geom.Size{W: 1000, H: 1000}, "mono")
	if len(out) != 2 {
		t.Fatalf("expected 2 new elements, got %d", len(out))
	}
	var text, img *canvas.Element
	for i := range out {
		switch out[i].Kind {
		case canvas.KindText:
			text = &out[i]
		case canvas.KindImage:
			img = &out[i]
		}
	}
	if text == nil || img == nil {
		t.Fatalf("missing kinds: %+v", out)
	}
	if tp := text.Text(); tp == nil || tp.Text != "" || tp.FontSize != 12 || tp.Fill == "" {
		t.Fatalf("empty text slot: %+v", text.Payload)
	}
	if ip := img.Image(); ip == nil || !ip.Placeholder {
		t.Fatalf("image slot should be a placeholder: %+v", img.Payload)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings: %v", warnings)
	}
}

func TestApplyKeepsUnmappableVerbatim(t *testing.T) {
	deco := canvas.Element{ID: "d", Kind: canvas.KindStar, X: 7, Y: 9, W: 40, H: 40,
		Payload: &canvas.ShapePayload{Fill: "#gold"}}
	free := canvas.Element{ID: "f", Kind: canvas.KindText, X: 1, Y: 2, W: 100, H: 30,
		Payload: &canvas.TextPayload{TextType: canvas.TextFree, Text: "hello"}}
	tpl := Template{BaseWidth: 100, BaseHeight: 100,
		Slots: []Slot{{Role: RoleQA, X: 10, Y: 10, W: 50, H: 20}}}
	out, _ := Apply([]canvas.Element{deco, free}, tpl, geom.Size{W: 100, H: 100}, "")
	for _, e := range out {
		switch e.ID {
		case "d":
			if e.X != 7 || e.Y != 9 || e.W != 40 || e.H != 40 {
				t.Fatalf("decorative shape moved: %+v", e)
			}
		case "f":
			if e.X != 1 || e.Y != 2 {
				t.Fatalf("free text moved: %+v", e)
			}
		}
	}
}

func TestApplyImageKeepsOwnSize(t *testing.T) {
	img := imgBox("i", 0, 0, 123, 77)
	tpl := Template{BaseWidth: 1000, BaseHeight: 1000,
		Slots: []Slot{{Role: RoleImage, X: 500, Y: 600, W: 300, H: 200}}}
	out, _ := Apply([]canvas.Element{img, qaBox("q", 0, 0, "x")}, tpl, geom.Size{W: 1000, H: 1000}, "")
	for _, e := range out {
		if e.ID == "i" {
			if e.X != 500 || e.Y != 600 {
				t.Fatalf("image not moved to slot: %+v", e)
			}
			if e.W != 123 || e.H != 77 {
				t.Fatalf("image size must never change: %+v", e)
			}
		}
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	els := []canvas.Element{
		qaBox("a", 50, 100, "one"), qaBox("b", 50, 100, "two"), // identical position, stable order
		imgBox("i", 300, 300, 100, 100),
	}
	tpl := Template{BaseWidth: 1000, BaseHeight: 1000, Slots: []Slot{
		{Role: RoleQA, X: 10, Y: 10, W: 100, H: 40},
		{Role: RoleQA, X: 10, Y: 200, W: 100, H: 40},
		{Role: RoleImage, X: 500, Y: 500, W: 50, H: 50},
	}}
	first, _ := Apply(els, tpl, geom.Size{W: 1000, H: 1000}, "")
	second, _ := Apply(els, tpl, geom.Size{W: 1000, H: 1000}, "")
	if len(first) != len(second) {
		t.Fatalf("output length differs")
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.ID != b.ID && (a.ID == "a" || a.ID == "b" || a.ID == "i") {
			t.Fatalf("order changed between runs")
		}
		if a.X != b.X || a.Y != b.Y || a.W != b.W || a.H != b.H {
			t.Fatalf("geometry differs at %d: %+v vs %+v", i, a, b)
		}
	}
}

func TestApplyZeroSlotRoleDegrades(t *testing.T) {
	els := []canvas.Element{imgBox("i", 10, 10, 50, 50)}
	tpl := Template{BaseWidth: 100, BaseHeight: 100,
		Slots: []Slot{{Role: RoleQA, X: 0, Y: 0, W: 50, H: 20}}}
	out, warnings := Apply(els, tpl, geom.Size{W: 100, H: 100}, "")
	for _, e := range out {
		if e.ID == "i" && (e.X != 10 || e.Y != 10) {
			t.Fatalf("image moved without an image slot: %+v", e)
		}
	}
	if len(warnings) == 0 {
		t.Fatalf("expected advisory warnings")
	}
}
