/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package template maps an existing element set onto a structural layout
// template: slot geometry is scaled to the target canvas, existing content
// is matched to slots per role in reading order, and content is never
// destroyed — surplus elements keep their geometry, surplus slots become
// fresh empty elements.
package template

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"pagecanvas/internal/canvas"
	"pagecanvas/internal/geom"
)

// Role classifies a slot. QA slots take question/answer-structured text
// boxes, image slots take image/placeholder boxes.
type Role string

const (
	RoleQA    Role = "qa"
	RoleImage Role = "image"
)

// Slot is one template-defined placeholder in the template's base
// coordinate system.
type Slot struct {
	Role     Role            `json:"role"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	W        float64         `json:"width"`
	H        float64         `json:"height"`
	Rotation float64         `json:"rotation,omitempty"`
	FontSize float64         `json:"fontSize,omitempty"`
	TextType canvas.TextType `json:"textType,omitempty"`
}

// Template is a structural page layout authored at a base canvas size.
type Template struct {
	Name       string  `json:"name,omitempty"`
	BaseWidth  float64 `json:"baseWidth"`
	BaseHeight float64 `json:"baseHeight"`
	Slots      []Slot  `json:"slots"`
}

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["baseWidth", "baseHeight", "slots"],
  "properties": {
    "name": {"type": "string"},
    "baseWidth": {"type": "number", "exclusiveMinimum": 0},
    "baseHeight": {"type": "number", "exclusiveMinimum": 0},
    "slots": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["role", "x", "y", "width", "height"],
        "properties": {
          "role": {"enum": ["qa", "image"]},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "width": {"type": "number", "minimum": 0},
          "height": {"type": "number", "minimum": 0},
          "rotation": {"type": "number"},
          "fontSize": {"type": "number", "minimum": 0},
          "textType": {"type": "string"}
        }
      }
    }
  }
}`

// Validate checks a raw template document against the embedded schema.
// All violations are reported in one error.
func Validate(data []byte) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate template: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("template schema: %s", strings.Join(msgs, "; "))
}

// Parse validates and decodes a template document.
func Parse(data []byte) (Template, error) {
	if err := Validate(data); err != nil {
		return Template{}, err
	}
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("parse template: %w", err)
	}
	return t, nil
}

// Scale converts the template's slot geometry from its base canvas to the
// target canvas: positions and sizes scale linearly per axis, font sizes by
// the square root of the area ratio, and image slot sizes keep their
// authored dimensions so pictures are never distorted by a layout change.
func (t Template) Scale(target geom.Size) Template {
	if t.BaseWidth <= 0 || t.BaseHeight <= 0 {
		return t
	}
	sx := target.W / t.BaseWidth
	sy := target.H / t.BaseHeight
	sf := math.Sqrt(sx * sy)
	out := t
	out.BaseWidth, out.BaseHeight = target.W, target.H
	out.Slots = make([]Slot, len(t.Slots))
	for i, s := range t.Slots {
		s.X *= sx
		s.Y *= sy
		if s.Role != RoleImage {
			s.W *= sx
			s.H *= sy
		}
		s.FontSize *= sf
		out.Slots[i] = s
	}
	return out
}
