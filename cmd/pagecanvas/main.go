/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"pagecanvas/internal/canvas"
	"pagecanvas/internal/config"
	"pagecanvas/internal/crash"
	"pagecanvas/internal/geom"
	applog "pagecanvas/internal/log"
	"pagecanvas/internal/storage"
	"pagecanvas/internal/telemetry"
	"pagecanvas/internal/template"
	"pagecanvas/internal/theme"
	"pagecanvas/internal/version"
)

func usage() {
	fmt.Println("Page Canvas — layout engine CLI")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pagecanvas version|-v|--version                 Show version")
	fmt.Println("  pagecanvas init <dir> [<page-id>]               Create a new page workspace at <dir>")
	fmt.Println("  pagecanvas open <dir>                           Open page at <dir> and print summary")
	fmt.Println("  pagecanvas save <dir>                           Re-save page at <dir> (creates backup)")
	fmt.Println("  pagecanvas validate-template <file>             Check a layout template against the schema")
	fmt.Println("  pagecanvas apply-template <dir> <file> [theme]  Map page content onto a template and save")
}

func main() {
	// user config first; env overrides are already merged by Load
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}
	if cfg.General.TelemetryOptIn {
		tcfg := telemetry.FromEnv()
		tcfg.OptIn = true
		telemetry.NewDefault(tcfg)
	}
	var ph *storage.PageHandle
	defer func() { crash.Recover(ph) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Page Canvas — layout engine CLI")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 3 {
				fmt.Println("init requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			pageID := uuid.NewString()
			if len(args) >= 4 {
				pageID = args[3]
			}
			l.Info("init page", slog.String("root", abs), slog.String("page", pageID))
			p := canvas.Page{ID: pageID, Width: canvas.A4Width, Height: canvas.A4Height}
			h, err := storage.InitPage(abs, p)
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			fmt.Println("Created page workspace at", abs)
			return
		case "open":
			ph = openOrDie(l, args)
			fmt.Printf("Opened page: %s\n", ph.Page.ID)
			fmt.Printf("Size: %.0fx%.0f\n", ph.Page.Width, ph.Page.Height)
			fmt.Printf("Elements: %d\n", len(ph.Page.Elements))
			fmt.Println("Root:", ph.Root)
			return
		case "save":
			ph = openOrDie(l, args)
			if err := storage.Save(ph); err != nil {
				l.Error("save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			telemetry.Event(telemetry.EventPageSaved, map[string]any{"elements": len(ph.Page.Elements)})
			fmt.Println("Saved page and created a backup of previous manifest (if any).")
			return
		case "validate-template":
			if len(args) < 3 {
				fmt.Println("validate-template requires <file>")
				usage()
				os.Exit(2)
			}
			data, err := os.ReadFile(args[2])
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := template.Validate(data); err != nil {
				telemetry.Event(telemetry.EventTemplateInvalid, nil)
				fmt.Println("Invalid template:", err)
				os.Exit(1)
			}
			fmt.Println("Template is valid.")
			return
		case "apply-template":
			if len(args) < 4 {
				fmt.Println("apply-template requires <dir> and <file>")
				usage()
				os.Exit(2)
			}
			h := openOrDie(l, args)
			ph = h
			data, err := os.ReadFile(args[3])
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			tpl, err := template.Parse(data)
			if err != nil {
				telemetry.Event(telemetry.EventTemplateInvalid, nil)
				fmt.Println("Invalid template:", err)
				os.Exit(1)
			}
			themeName := theme.DefaultTheme
			if len(args) >= 5 {
				themeName = args[4]
			}
			target := geom.Size{W: h.Page.Width, H: h.Page.Height}
			mapped, warnings := template.Apply(h.Page.Elements, tpl, target, themeName)
			h.Page.Elements = mapped
			if err := storage.Save(h); err != nil {
				l.Error("save after apply failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			telemetry.Event(telemetry.EventTemplateApplied, map[string]any{
				"slots":    len(tpl.Slots),
				"warnings": len(warnings),
			})
			fmt.Printf("Applied template %q (%d slots).\n", tpl.Name, len(tpl.Slots))
			for _, w := range warnings {
				fmt.Println("Warning:", w)
			}
			return
		}
	}

	usage()
}

func openOrDie(l *slog.Logger, args []string) *storage.PageHandle {
	if len(args) < 3 {
		fmt.Println(args[1], "requires <dir>")
		usage()
		os.Exit(2)
	}
	abs, _ := filepath.Abs(args[2])
	l.Info("open page", slog.String("root", abs))
	h, err := storage.Open(abs)
	if err != nil {
		l.Error("open failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return h
}
