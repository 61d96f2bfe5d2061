/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pagecanvas/internal/canvas"
)

func samplePage() canvas.Page {
	return canvas.Page{
		ID:     "page-1",
		Width:  canvas.A4Width,
		Height: canvas.A4Height,
		Elements: []canvas.Element{
			{
				ID: "el-a", Kind: canvas.KindRect,
				X: 100, Y: 200, W: 300, H: 150,
				ScaleX: 1, ScaleY: 1,
				Payload: &canvas.ShapePayload{Stroke: "#000000", StrokeWidth: 2, Fill: "#ffffff"},
			},
		},
	}
}

func TestInitPageCreatesLayout(t *testing.T) {
	root := t.TempDir()
	ph, err := InitPage(root, samplePage())
	if err != nil {
		t.Fatalf("InitPage: %v", err)
	}
	if ph.ManifestPath != filepath.Join(root, ManifestFileName) {
		t.Fatalf("manifest path = %s", ph.ManifestPath)
	}
	for _, sub := range standardSubDirs {
		fi, err := os.Stat(filepath.Join(root, sub))
		if err != nil || !fi.IsDir() {
			t.Fatalf("missing subdir %s: %v", sub, err)
		}
	}
	if _, err := os.Stat(ph.ManifestPath); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	root := t.TempDir()
	if _, err := InitPage(root, samplePage()); err != nil {
		t.Fatalf("InitPage: %v", err)
	}
	ph, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ph.Page.ID != "page-1" || ph.Page.Width != canvas.A4Width {
		t.Fatalf("unexpected page: %+v", ph.Page)
	}
	if len(ph.Page.Elements) != 1 || ph.Page.Elements[0].ID != "el-a" {
		t.Fatalf("elements not restored: %+v", ph.Page.Elements)
	}
	sp := ph.Page.Elements[0].Shape()
	if sp == nil || sp.Fill != "#ffffff" {
		t.Fatalf("shape payload not restored: %+v", ph.Page.Elements[0].Payload)
	}
}

func TestSaveKeepsTimestampedBackup(t *testing.T) {
	root := t.TempDir()
	ph, err := InitPage(root, samplePage())
	if err != nil {
		t.Fatalf("InitPage: %v", err)
	}
	ph.Page.Elements = append(ph.Page.Elements, canvas.Element{
		ID: "el-b", Kind: canvas.KindCircle,
		X: 500, Y: 500, W: 80, H: 80, ScaleX: 1, ScaleY: 1,
		Payload: &canvas.ShapePayload{Stroke: "#ff0000", StrokeWidth: 1},
	})
	if err := Save(ph); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups: %v", err)
	}
	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ManifestFileName+".") && strings.HasSuffix(e.Name(), ".bak") {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) != 1 {
		t.Fatalf("backups = %v, want one", backups)
	}

	reopened, err := Open(root)
	if err != nil {
		t.Fatalf("Open after save: %v", err)
	}
	if len(reopened.Page.Elements) != 2 {
		t.Fatalf("saved elements = %d, want 2", len(reopened.Page.Elements))
	}
}

func TestOpenFallsBackToLatestBackup(t *testing.T) {
	root := t.TempDir()
	ph, err := InitPage(root, samplePage())
	if err != nil {
		t.Fatalf("InitPage: %v", err)
	}
	ph.Page.Elements[0].X = 999
	if err := Save(ph); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Clobber the manifest; the pre-save backup must carry the page.
	if err := os.WriteFile(ph.ManifestPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}

	recovered, err := Open(root)
	if err != nil {
		t.Fatalf("Open after corruption: %v", err)
	}
	if recovered.Page.ID != "page-1" {
		t.Fatalf("recovered page = %+v", recovered.Page)
	}
	if recovered.Page.Elements[0].X != 100 {
		t.Fatalf("recovered X = %v, want the backed-up 100", recovered.Page.Elements[0].X)
	}
}

func TestOpenMissingManifest(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
