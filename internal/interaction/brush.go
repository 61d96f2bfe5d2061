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

	"pagecanvas/internal/canvas"
)

// DefaultSmoothingPasses applied to a raw stroke on pointer-up.
const DefaultSmoothingPasses = 5

// Smooth runs a weighted tri-point average (1-6-1) over a flat x,y point
// list for the given number of passes. The first and last point are kept
// exactly; paths of fewer than 3 points come back unchanged.
func Smooth(points []float64, passes int) []float64 {
	out := append([]float64(nil), points...)
	if len(out) < 6 || passes <= 0 {
		return out
	}
	cur := out
	for p := 0; p < passes; p++ {
		next := append([]float64(nil), cur...)
		for i := 2; i+3 < len(cur); i += 2 {
			next[i] = (cur[i-2] + 6*cur[i] + cur[i+2]) / 8
			next[i+1] = (cur[i-1] + 6*cur[i+1] + cur[i+3]) / 8
		}
		cur = next
	}
	return cur
}

// BrushSession collects smoothed strokes between the first brush
// pointer-down and the toolbar's explicit done/cancel signal. Nothing is
// committed to the element store until Element is taken.
type BrushSession struct {
	strokes [][]float64
	colors  []string
	width   float64
}

func NewBrushSession(width float64) *BrushSession {
	if width <= 0 {
		width = 5
	}
	return &BrushSession{width: width}
}

// Add appends one finished stroke.
func (s *BrushSession) Add(points []float64, color string) {
	if len(points) < 2 {
		return
	}
	s.strokes = append(s.strokes, points)
	s.colors = append(s.colors, color)
}

// UndoLast drops the most recent stroke.
func (s *BrushSession) UndoLast() {
	if n := len(s.strokes); n > 0 {
		s.strokes = s.strokes[:n-1]
		s.colors = s.colors[:n-1]
	}
}

func (s *BrushSession) Empty() bool     { return len(s.strokes) == 0 }
func (s *BrushSession) StrokeCount() int { return len(s.strokes) }

// Element materializes the session as one canvas element: a single stroke
// becomes a brush, several strokes a brush-multicolor compound with one
// brush child per stroke. Points are re-based so the element origin sits at
// the session's minimum point. Returns false for an empty session.
func (s *BrushSession) Element() (canvas.Element, bool) {
	switch len(s.strokes) {
	case 0:
		return canvas.Element{}, false
	case 1:
		minX, minY := pointsMin(s.strokes[0])
		return canvas.Element{
			ID:   canvas.NewID(),
			Kind: canvas.KindBrush,
			X:    minX,
			Y:    minY,
			Payload: &canvas.StrokePayload{
				Points: rebase(s.strokes[0], minX, minY),
				Color:  s.colors[0],
				Width:  s.width,
			},
		}, true
	}
	minX, minY := math.Inf(1), math.Inf(1)
	for _, st := range s.strokes {
		x, y := pointsMin(st)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
	}
	children := make([]canvas.Element, 0, len(s.strokes))
	for i, st := range s.strokes {
		sx, sy := pointsMin(st)
		children = append(children, canvas.Element{
			ID:   canvas.NewID(),
			Kind: canvas.KindBrush,
			X:    sx - minX,
			Y:    sy - minY,
			Payload: &canvas.StrokePayload{
				Points: rebase(st, sx, sy),
				Color:  s.colors[i],
				Width:  s.width,
			},
		})
	}
	return canvas.Element{
		ID:      canvas.NewID(),
		Kind:    canvas.KindBrushMulticolor,
		X:       minX,
		Y:       minY,
		Payload: &canvas.GroupPayload{Children: children},
	}, true
}

func pointsMin(points []float64) (float64, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	for i := 0; i+1 < len(points); i += 2 {
		minX = math.Min(minX, points[i])
		minY = math.Min(minY, points[i+1])
	}
	return minX, minY
}

func rebase(points []float64, dx, dy float64) []float64 {
	out := make([]float64, len(points))
	for i := 0; i+1 < len(points); i += 2 {
		out[i] = points[i] - dx
		out[i+1] = points[i+1] - dy
	}
	return out
}
