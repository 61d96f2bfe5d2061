/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textmetrics measures strings against loaded OpenType fonts so
// freshly created text boxes can be sized to their content. Families that
// were never registered fall back to a per-character estimate, keeping the
// engine usable without any font files on disk.
package textmetrics

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"pagecanvas/internal/geom"
)

// FontLibrary stores parsed OpenType fonts by family name.
type FontLibrary struct {
	fonts map[string]*opentype.Font
	dpi   float64
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{fonts: map[string]*opentype.Font{}, dpi: 72}
}

// SetDPI overrides the measurement DPI (default 72).
func (fl *FontLibrary) SetDPI(dpi float64) {
	if dpi > 0 {
		fl.dpi = dpi
	}
}

// LoadTTF reads and registers a font file under the given family.
func (fl *FontLibrary) LoadTTF(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return fl.Register(family, data)
}

// Register parses raw font bytes and stores them under the family name.
func (fl *FontLibrary) Register(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	if fl.fonts == nil {
		fl.fonts = map[string]*opentype.Font{}
	}
	fl.fonts[family] = f
	return nil
}

// Measure returns the rendered size of a single-line string. An unknown
// family or a face construction failure degrades to Estimate.
func (fl *FontLibrary) Measure(text, family string, size float64) geom.Size {
	if size <= 0 {
		size = 12
	}
	if fl == nil || fl.fonts[family] == nil {
		return Estimate(text, size)
	}
	face, err := opentype.NewFace(fl.fonts[family], &opentype.FaceOptions{
		Size:    size,
		DPI:     fl.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Estimate(text, size)
	}
	defer face.Close()
	w := font.MeasureString(face, text)
	m := face.Metrics()
	return geom.Size{
		W: float64(w.Round()),
		H: float64(m.Ascent.Round() + m.Descent.Round()),
	}
}

// Estimate is the metrics fallback used when no real font is available:
// a fixed advance of 0.6em per rune and a 1.2em line height.
func Estimate(text string, size float64) geom.Size {
	if size <= 0 {
		size = 12
	}
	n := 0
	for range text {
		n++
	}
	return geom.Size{W: float64(n) * size * 0.6, H: size * 1.2}
}
