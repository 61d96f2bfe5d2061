/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "testing"

func pairFixture() []Element {
	return []Element{
		{ID: "q1", Kind: KindText, X: 10, Y: 10, W: 200, H: 60,
			Payload: &TextPayload{TextType: TextQuestion}},
		{ID: "a1", Kind: KindText, X: 10, Y: 80, W: 200, H: 60,
			Payload: &TextPayload{TextType: TextAnswer, QuestionElementID: "q1"}},
		{ID: "free", Kind: KindText, X: 400, Y: 400,
			Payload: &TextPayload{TextType: TextFree}},
	}
}

func TestPartnerIDBothDirections(t *testing.T) {
	els := pairFixture()
	if got := PartnerID("a1", els); got != "q1" {
		t.Fatalf("answer partner: %q", got)
	}
	if got := PartnerID("q1", els); got != "a1" {
		t.Fatalf("question partner: %q", got)
	}
	if got := PartnerID("free", els); got != "" {
		t.Fatalf("free text has no partner: %q", got)
	}
	if got := PartnerID("missing", els); got != "" {
		t.Fatalf("missing element has no partner: %q", got)
	}
}

func TestPairClosureAddsPartnerOnce(t *testing.T) {
	els := pairFixture()
	got := PairClosure([]string{"q1", "free"}, els)
	if len(got) != 3 || got[0] != "q1" || got[1] != "a1" || got[2] != "free" {
		t.Fatalf("closure: %v", got)
	}
	// both members given: no duplicates
	got = PairClosure([]string{"a1", "q1"}, els)
	if len(got) != 2 {
		t.Fatalf("closure with both members: %v", got)
	}
}

func TestPairKeyUsesRoundedMin(t *testing.T) {
	els := pairFixture()
	key := PairKey(els[0], els[1])
	// bounds min is (10,10); key rounds to integers
	if key != "10:10" {
		t.Fatalf("pair key: %q", key)
	}
}

func TestPairOverlapsWithin(t *testing.T) {
	a := Element{ID: "a", Kind: KindText, X: 0, Y: 0, W: 100, H: 40, Payload: &TextPayload{}}
	b := Element{ID: "b", Kind: KindText, X: 0, Y: 80, W: 100, H: 40, Payload: &TextPayload{}}
	if !PairOverlapsWithin(a, b, 50) {
		t.Fatalf("40px gap should count within 50")
	}
	far := Element{ID: "c", Kind: KindText, X: 0, Y: 300, W: 100, H: 40, Payload: &TextPayload{}}
	if PairOverlapsWithin(a, far, 50) {
		t.Fatalf("160px gap should not count within 50")
	}
}
