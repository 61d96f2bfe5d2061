/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"testing"
)

func TestDefaultsAreSane(t *testing.T) {
	cfg := Defaults()
	if cfg.Editor.SnapThreshold != 15 {
		t.Fatalf("snap threshold default: %v", cfg.Editor.SnapThreshold)
	}
	if cfg.Editor.SmoothingPasses != 5 {
		t.Fatalf("smoothing passes default: %v", cfg.Editor.SmoothingPasses)
	}
	if !cfg.Editor.GridSnap {
		t.Fatalf("grid snap should default on")
	}
	if cfg.Page.Preset != "a4-portrait" || cfg.Page.DPI != 300 {
		t.Fatalf("page defaults: %+v", cfg.Page)
	}
}

func TestMergeIntoKeepsDefaultsForZeroValues(t *testing.T) {
	dst := Defaults()
	src := AppConfig{}
	src.Editor.SnapThreshold = 0 // absent in file
	src.Editor.DoubleClickMs = 250
	mergeInto(&dst, &src)
	if dst.Editor.SnapThreshold != 15 {
		t.Fatalf("zero value must not override default, got %v", dst.Editor.SnapThreshold)
	}
	if dst.Editor.DoubleClickMs != 250 {
		t.Fatalf("file value not merged: %v", dst.Editor.DoubleClickMs)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvSnapThreshold, "20")
	t.Setenv(EnvGridSnap, "off")
	t.Setenv(EnvLogLevel, "DEBUG")
	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Editor.SnapThreshold != 20 {
		t.Fatalf("env snap threshold: %v", cfg.Editor.SnapThreshold)
	}
	if cfg.Editor.GridSnap {
		t.Fatalf("env grid snap should be off")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env log level: %v", cfg.Logging.Level)
	}
	_ = os.Unsetenv(EnvSnapThreshold)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "ON", "yes"} {
		if !parseBool(v) {
			t.Fatalf("expected true for %q", v)
		}
	}
	if parseBool("0") || parseBool("nope") {
		t.Fatalf("expected false")
	}
}
