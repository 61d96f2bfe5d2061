/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interaction

import "pagecanvas/internal/canvas"

// PairOverlapDist is the proximity within which a stacked pair offers the
// second-only cycle step.
const PairOverlapDist = 50.0

// pairCycler advances the modal selection counter for question/answer
// pairs. Clicking either member walks both → first-only → second-only
// (the last step only when the two boxes overlap within PairOverlapDist)
// and wraps back to both. State is keyed by the pair's rounded min x/y,
// so pairs at the same spot share a counter.
type pairCycler struct {
	counts map[string]int
}

func newPairCycler() pairCycler {
	return pairCycler{counts: map[string]int{}}
}

// Next returns the id set to select for one more click on the pair (a, b).
// The "first" member is the one earlier in z-order, which is how the two
// are passed in.
func (c *pairCycler) Next(a, b canvas.Element) []string {
	steps := 2
	if canvas.PairOverlapsWithin(a, b, PairOverlapDist) {
		steps = 3
	}
	key := canvas.PairKey(a, b)
	step := c.counts[key] % steps
	c.counts[key]++
	switch step {
	case 0:
		return []string{a.ID, b.ID}
	case 1:
		return []string{a.ID}
	default:
		return []string{b.ID}
	}
}

// Reset clears all cycle counters; called when the selection is replaced
// by anything other than a pair click.
func (c *pairCycler) Reset() {
	if len(c.counts) > 0 {
		c.counts = map[string]int{}
	}
}
