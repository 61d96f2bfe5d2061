/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	applog "pagecanvas/internal/log"
	"pagecanvas/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName stores per-project index data under the project root.
	IndexDirName  = ".pgc"
	IndexFileName = "index.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump on breaking
	// changes and add a migration step.
	schemaVersion = 1
)

// IndexPath returns the full path of the project's index database.
func IndexPath(projectRoot string) string {
	return filepath.Join(projectRoot, IndexDirName, IndexFileName)
}

// InitOrOpenIndex opens (creating if needed) the per-project SQLite index,
// enables WAL mode and ensures the meta/version/assignment schema exists.
func InitOrOpenIndex(projectRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_init").With(
		slog.String("root", projectRoot),
	)
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	if err := os.MkdirAll(filepath.Join(projectRoot, IndexDirName), 0o755); err != nil {
		l.Error("create index dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	path := IndexPath(projectRoot)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("index ready", slog.String("path", path))
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS assignments (
			question_id TEXT PRIMARY KEY,
			page_id     TEXT NOT NULL,
			element_id  TEXT NOT NULL,
			assigned_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_page ON assignments(page_id);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx,
			`INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`,
			schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx,
			`UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// Assignments is the SQLite-backed question-assignment index. It satisfies
// the clipboard paste guard's AssignmentIndex interface.
type Assignments struct {
	db *sql.DB
}

func NewAssignments(db *sql.DB) *Assignments { return &Assignments{db: db} }

// Assign records that a question is placed on a page by a concrete element.
// Re-assigning the same question replaces the previous record.
func (a *Assignments) Assign(questionID, pageID, elementID string) error {
	if questionID == "" {
		return errors.New("question id is required")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := a.db.Exec(
		`INSERT INTO assignments (question_id, page_id, element_id, assigned_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(question_id) DO UPDATE SET
		   page_id=excluded.page_id,
		   element_id=excluded.element_id,
		   assigned_at=excluded.assigned_at`,
		questionID, pageID, elementID, now)
	if err != nil {
		return fmt.Errorf("assign question %s: %w", questionID, err)
	}
	return nil
}

// Unassign removes a question's record; unknown questions are a no-op.
func (a *Assignments) Unassign(questionID string) error {
	if _, err := a.db.Exec(`DELETE FROM assignments WHERE question_id=?`, questionID); err != nil {
		return fmt.Errorf("unassign question %s: %w", questionID, err)
	}
	return nil
}

// IsAssigned reports whether the question is already placed anywhere.
func (a *Assignments) IsAssigned(questionID string) (bool, error) {
	var one int
	err := a.db.QueryRow(`SELECT 1 FROM assignments WHERE question_id=?`, questionID).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("query assignment %s: %w", questionID, err)
	}
	return true, nil
}

// AssignedTo returns the page holding the question, or "" when unassigned.
func (a *Assignments) AssignedTo(questionID string) (string, error) {
	var page string
	err := a.db.QueryRow(`SELECT page_id FROM assignments WHERE question_id=?`, questionID).Scan(&page)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("query assignment %s: %w", questionID, err)
	}
	return page, nil
}
