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
	"testing"

	"pagecanvas/internal/clipboard"
)

func TestInitOrOpenIndexCreatesDatabase(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(IndexPath(root)); err != nil {
		t.Fatalf("index file not created: %v", err)
	}
	var schema int
	if err := db.QueryRow(`SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read version row: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
}

func TestInitOrOpenIndexRequiresRoot(t *testing.T) {
	if _, err := InitOrOpenIndex("  "); err == nil {
		t.Fatal("expected error for blank root")
	}
}

func TestAssignmentsLifecycle(t *testing.T) {
	db, err := InitOrOpenIndex(t.TempDir())
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer db.Close()
	idx := NewAssignments(db)

	ok, err := idx.IsAssigned("q-1")
	if err != nil {
		t.Fatalf("IsAssigned: %v", err)
	}
	if ok {
		t.Fatal("fresh index should not report q-1 assigned")
	}

	if err := idx.Assign("q-1", "page-1", "el-1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	ok, err = idx.IsAssigned("q-1")
	if err != nil || !ok {
		t.Fatalf("after Assign: ok=%v err=%v", ok, err)
	}
	page, err := idx.AssignedTo("q-1")
	if err != nil || page != "page-1" {
		t.Fatalf("AssignedTo = %q err=%v", page, err)
	}

	// Re-assigning moves the question to the new page.
	if err := idx.Assign("q-1", "page-2", "el-9"); err != nil {
		t.Fatalf("re-Assign: %v", err)
	}
	page, err = idx.AssignedTo("q-1")
	if err != nil || page != "page-2" {
		t.Fatalf("AssignedTo after move = %q err=%v", page, err)
	}

	if err := idx.Unassign("q-1"); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	ok, err = idx.IsAssigned("q-1")
	if err != nil || ok {
		t.Fatalf("after Unassign: ok=%v err=%v", ok, err)
	}
	// Unknown questions unassign quietly.
	if err := idx.Unassign("q-never"); err != nil {
		t.Fatalf("Unassign unknown: %v", err)
	}
}

func TestAssignRequiresQuestionID(t *testing.T) {
	db, err := InitOrOpenIndex(t.TempDir())
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer db.Close()
	if err := NewAssignments(db).Assign("", "page-1", "el-1"); err == nil {
		t.Fatal("expected error for empty question id")
	}
}

func TestIndexPersistsAcrossReopen(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := NewAssignments(db).Assign("q-7", "page-3", "el-3"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db2, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()
	ok, err := NewAssignments(db2).IsAssigned("q-7")
	if err != nil || !ok {
		t.Fatalf("assignment lost on reopen: ok=%v err=%v", ok, err)
	}
}

// The clipboard paste guard consumes this index through its interface.
var _ clipboard.AssignmentIndex = (*Assignments)(nil)
