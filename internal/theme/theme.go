/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package theme resolves tool style defaults and semantic palette colors.
// Both resolvers are pure: the same inputs always produce the same style,
// and unknown themes fall back to the default palette rather than failing.
package theme

import "pagecanvas/internal/canvas"

// Style carries the visual defaults applied to a freshly created element.
type Style struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
	FontFamily  string
	FontSize    float64
	TextFill    string
}

// Semantic color roles used by template slots and shape payloads.
const (
	RolePrimary   = "primary"
	RoleSecondary = "secondary"
	RoleAccent    = "accent"
	RoleSurface   = "surface"
	RoleText      = "text"
)

// DefaultTheme is used whenever neither page nor book names a known theme.
const DefaultTheme = "classic"

var palettes = map[string]map[string]string{
	"classic": {
		RolePrimary:   "#1f4e79",
		RoleSecondary: "#6b8cae",
		RoleAccent:    "#d9822b",
		RoleSurface:   "#ffffff",
		RoleText:      "#1a1a1a",
	},
	"pastel": {
		RolePrimary:   "#a7c7e7",
		RoleSecondary: "#f2c6de",
		RoleAccent:    "#c9e4ca",
		RoleSurface:   "#fdf6f0",
		RoleText:      "#4a4a4a",
	},
	"mono": {
		RolePrimary:   "#222222",
		RoleSecondary: "#666666",
		RoleAccent:    "#999999",
		RoleSurface:   "#f5f5f5",
		RoleText:      "#111111",
	},
}

// PaletteColor maps a semantic role to a concrete color for the given theme.
// Unknown themes resolve against the default palette; unknown roles resolve
// to the text color so elements are never invisible.
func PaletteColor(role, themeName string) string {
	p, ok := palettes[themeName]
	if !ok {
		p = palettes[DefaultTheme]
	}
	if c, ok := p[role]; ok {
		return c
	}
	return p[RoleText]
}

// StyleDefaults resolves creation-time styling for a tool. The page theme
// wins over the book theme; an empty or unknown pair falls back to the
// default palette.
func StyleDefaults(tool canvas.Kind, pageTheme, bookTheme string) Style {
	name := pageTheme
	if _, ok := palettes[name]; !ok {
		name = bookTheme
	}
	if _, ok := palettes[name]; !ok {
		name = DefaultTheme
	}
	s := Style{
		Stroke:      PaletteColor(RolePrimary, name),
		StrokeWidth: 2,
		Fill:        PaletteColor(RoleSurface, name),
		FontFamily:  "Inter",
		FontSize:    16,
		TextFill:    PaletteColor(RoleText, name),
	}
	switch tool {
	case canvas.KindText:
		s.Fill = "transparent"
	case canvas.KindBrush, canvas.KindBrushMulticolor:
		s.StrokeWidth = 5
	case canvas.KindLine:
		s.Fill = "transparent"
	case canvas.KindImage, canvas.KindSticker:
		s.Stroke = "transparent"
		s.StrokeWidth = 0
	}
	return s
}
