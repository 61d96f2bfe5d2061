/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interaction

import (
	"testing"
	"time"

	"pagecanvas/internal/canvas"
	"pagecanvas/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.EditorConfig{
		SnapThreshold:   7,
		SmoothingPasses: 2,
		DoubleClickMs:   450,
		ArrowStep:       3,
	})
	if opts.SnapThreshold != 7 || opts.SmoothingPasses != 2 || opts.ArrowStep != 3 {
		t.Fatalf("mapping wrong: %+v", opts)
	}
	if opts.DoubleClick != 450*time.Millisecond {
		t.Fatalf("double click = %v", opts.DoubleClick)
	}

	// zero config falls back to engine defaults in NewEditor
	ed := NewEditor(canvas.NewStore(nil), "page-1", OptionsFromConfig(config.EditorConfig{}))
	if ed.opts.SmoothingPasses != DefaultSmoothingPasses || ed.opts.DoubleClick != DefaultDoubleClick {
		t.Fatalf("defaults not applied: %+v", ed.opts)
	}
}

func TestSnapThresholdOptionReachesEngine(t *testing.T) {
	ed := NewEditor(canvas.NewStore(nil), "page-1", Options{SnapThreshold: 7})
	if ed.eng.Threshold != 7 {
		t.Fatalf("engine threshold = %v, want 7", ed.eng.Threshold)
	}

	// a sibling edge 10px off is inside the default threshold but outside
	// the configured one, so the drag must not snap
	store := canvas.NewStore([]canvas.Element{
		rectEl("m", 500, 500, 100, 100),
		rectEl("s", 520, 800, 100, 100),
	})
	ed = NewEditor(store, "page-1", Options{SnapThreshold: 7})
	ed.PointerDown(down(550, 550))
	ed.PointerMove(move(560, 551))
	ed.PointerUp(up(560, 551))
	got := store.Elements()[0]
	if got.X != 510 || got.Y != 501 {
		t.Fatalf("moved to (%v,%v), want unsnapped (510,501)", got.X, got.Y)
	}
}

func TestFitTextToContentGrowsBox(t *testing.T) {
	el := canvas.Element{
		ID: "t1", Kind: canvas.KindText, X: 10, Y: 10, W: 60, H: 10,
		Payload: &canvas.TextPayload{Text: "0123456789", FontSize: 20, TextType: canvas.TextFree},
	}
	ed, store := newEditor(t, []canvas.Element{el})
	cps := &checkpoints{}
	store.SetCheckpointSink(cps)

	// no registered family: the estimate metrics drive the fit
	ed.FitTextToContent("t1")
	got := store.Elements()[0]
	if got.W != 120 || got.H != 24 {
		t.Fatalf("fit to (%v,%v), want (120,24)", got.W, got.H)
	}
	if len(cps.labels) != 1 || cps.labels[0] != "resize" {
		t.Fatalf("checkpoints = %v", cps.labels)
	}

	// already large enough: no dispatch, no checkpoint
	ed.FitTextToContent("t1")
	if len(cps.labels) != 1 {
		t.Fatalf("idempotent fit recorded again: %v", cps.labels)
	}

	// unknown ids and non-text elements are no-ops
	ed.FitTextToContent("ghost")
	store.Dispatch(canvas.AddElement{Element: rectEl("r", 0, 0, 10, 10)})
	ed.FitTextToContent("r")
	if len(cps.labels) != 1 {
		t.Fatalf("no-op fits recorded checkpoints: %v", cps.labels)
	}
}
