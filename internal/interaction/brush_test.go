/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interaction

import (
	"math"
	"testing"

	"pagecanvas/internal/canvas"
)

func TestSmoothShortPathsUnchanged(t *testing.T) {
	for _, pts := range [][]float64{nil, {1, 2}, {1, 2, 3, 4}} {
		got := Smooth(pts, 5)
		if len(got) != len(pts) {
			t.Fatalf("length changed for %v", pts)
		}
		for i := range pts {
			if got[i] != pts[i] {
				t.Fatalf("point %d changed: %v -> %v", i, pts, got)
			}
		}
	}
}

func TestSmoothPreservesEndpoints(t *testing.T) {
	pts := []float64{0, 0, 10, 40, 20, -5, 30, 30, 40, 0}
	got := Smooth(pts, 5)
	if got[0] != 0 || got[1] != 0 {
		t.Fatalf("first point moved: (%v,%v)", got[0], got[1])
	}
	n := len(got)
	if got[n-2] != 40 || got[n-1] != 0 {
		t.Fatalf("last point moved: (%v,%v)", got[n-2], got[n-1])
	}
}

func TestSmoothPullsOutlierIn(t *testing.T) {
	// spike at the middle point gets averaged toward its neighbors
	pts := []float64{0, 0, 10, 100, 20, 0}
	got := Smooth(pts, 1)
	if got[3] >= 100 {
		t.Fatalf("spike not reduced: %v", got[3])
	}
	want := (0 + 6*100 + 0) / 8.0
	if math.Abs(got[3]-want) > 1e-9 {
		t.Fatalf("middle y = %v, want %v", got[3], want)
	}
}

func TestSmoothDoesNotMutateInput(t *testing.T) {
	pts := []float64{0, 0, 10, 100, 20, 0}
	Smooth(pts, 3)
	if pts[3] != 100 {
		t.Fatalf("input mutated: %v", pts)
	}
}

func TestBrushSessionSingleStroke(t *testing.T) {
	s := NewBrushSession(5)
	s.Add([]float64{100, 100, 120, 130, 160, 110}, "#123456")
	el, ok := s.Element()
	if !ok {
		t.Fatalf("expected element")
	}
	if el.Kind != canvas.KindBrush {
		t.Fatalf("kind = %q", el.Kind)
	}
	if el.X != 100 || el.Y != 100 {
		t.Fatalf("origin at (%v,%v), want stroke minimum (100,100)", el.X, el.Y)
	}
	sp := el.Stroke()
	if sp == nil || sp.Points[0] != 0 || sp.Points[1] != 0 {
		t.Fatalf("points not re-based: %+v", sp)
	}
	// bounds contain every original point
	b := canvas.Bounds(el)
	for i := 0; i+1 < 6; i += 2 {
		x, y := 100.0+sp.Points[i], 100.0+sp.Points[i+1]
		if x < b.X || x > b.X+b.W || y < b.Y || y > b.Y+b.H {
			t.Fatalf("point (%v,%v) outside bounds %+v", x, y, b)
		}
	}
}

func TestBrushSessionMultiStrokeCompound(t *testing.T) {
	s := NewBrushSession(3)
	s.Add([]float64{50, 50, 80, 80}, "#ff0000")
	s.Add([]float64{200, 20, 240, 60}, "#00ff00")
	el, ok := s.Element()
	if !ok || el.Kind != canvas.KindBrushMulticolor {
		t.Fatalf("expected compound, got %q", el.Kind)
	}
	if el.X != 50 || el.Y != 20 {
		t.Fatalf("compound origin (%v,%v), want (50,20)", el.X, el.Y)
	}
	g := el.Group()
	if g == nil || len(g.Children) != 2 {
		t.Fatalf("children missing: %+v", g)
	}
	if g.Children[1].X != 150 || g.Children[1].Y != 0 {
		t.Fatalf("second stroke child at (%v,%v), want (150,0)", g.Children[1].X, g.Children[1].Y)
	}
	if g.Children[0].Stroke().Color != "#ff0000" || g.Children[1].Stroke().Color != "#00ff00" {
		t.Fatalf("stroke colors lost")
	}
}

func TestBrushSessionUndoLast(t *testing.T) {
	s := NewBrushSession(3)
	s.Add([]float64{0, 0, 10, 10}, "#000")
	s.Add([]float64{20, 20, 30, 30}, "#111")
	s.UndoLast()
	if s.StrokeCount() != 1 {
		t.Fatalf("stroke count = %d", s.StrokeCount())
	}
	s.UndoLast()
	s.UndoLast() // extra undo on empty session is a no-op
	if _, ok := s.Element(); ok {
		t.Fatalf("empty session produced an element")
	}
}
