/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

// Question/answer pairing. A pair is linked by a one-directional
// QuestionElementID back-reference: exactly one member carries it, pointing
// at the other. Deleting one member breaks the pair, it never cascades.

import (
	"fmt"
	"math"
)

// PartnerID returns the id of the element paired with id, or "" when the
// element is not part of a pair (or no longer present).
func PartnerID(id string, els []Element) string {
	var self *Element
	for i := range els {
		if els[i].ID == id {
			self = &els[i]
			break
		}
	}
	if self == nil {
		return ""
	}
	if t := self.Text(); t != nil && t.QuestionElementID != "" {
		return t.QuestionElementID
	}
	for i := range els {
		if t := els[i].Text(); t != nil && t.QuestionElementID == id {
			return els[i].ID
		}
	}
	return ""
}

// PairClosure returns ids closed under question/answer pairing: whenever one
// member of a pair is present, its partner is added. Input order is kept;
// added partners follow their trigger.
func PairClosure(ids []string, els []Element) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range ids {
		add(id)
		add(PartnerID(id, els))
	}
	return out
}

// PairKey derives the selection-cycling key for a pair from the rounded
// minimum x/y of its two boxes. Two coincident pairs can collide on this
// key and will then share cycle state; that keying is kept as-is.
func PairKey(a, b Element) string {
	ab, bb := Bounds(a), Bounds(b)
	minX := math.Round(math.Min(ab.X, bb.X))
	minY := math.Round(math.Min(ab.Y, bb.Y))
	return fmt.Sprintf("%.0f:%.0f", minX, minY)
}

// PairOverlapsWithin reports whether the two boxes of a pair overlap or sit
// within dist px of each other on both axes. Selection cycling only offers
// the "second-only" step for such stacked pairs.
func PairOverlapsWithin(a, b Element, dist float64) bool {
	ab := Bounds(a).Inset(-dist, -dist)
	return ab.Intersects(Bounds(b))
}
