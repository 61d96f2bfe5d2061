/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

// JSON encoding of the element union: the envelope carries a kind tag and a
// raw payload object decoded into the concrete variant on read.

import (
	"encoding/json"
	"fmt"
)

type elementJSON struct {
	ID       string          `json:"id"`
	Kind     Kind            `json:"kind"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	W        float64         `json:"width,omitempty"`
	H        float64         `json:"height,omitempty"`
	Rotation float64         `json:"rotation,omitempty"`
	ScaleX   float64         `json:"scaleX,omitempty"`
	ScaleY   float64         `json:"scaleY,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type textJSON struct {
	Text              string   `json:"text,omitempty"`
	FormattedText     string   `json:"formattedText,omitempty"`
	TextType          TextType `json:"textType,omitempty"`
	FontSize          float64  `json:"fontSize,omitempty"`
	FontFamily        string   `json:"fontFamily,omitempty"`
	Fill              string   `json:"fill,omitempty"`
	QuestionID        string   `json:"questionId,omitempty"`
	AnswerID          string   `json:"answerId,omitempty"`
	QuestionElementID string   `json:"questionElementId,omitempty"`
}

type shapeJSON struct {
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	ThemeRole   string  `json:"themeRole,omitempty"`
}

type strokeJSON struct {
	Points []float64 `json:"points"`
	Color  string    `json:"color,omitempty"`
	Width  float64   `json:"width,omitempty"`
}

type imageJSON struct {
	Src         string `json:"src,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type groupJSON struct {
	Children []Element `json:"groupedElements"`
}

type stickerJSON struct {
	Ref string `json:"ref,omitempty"`
}

// MarshalJSON encodes the envelope plus the kind-specific payload.
func (e Element) MarshalJSON() ([]byte, error) {
	var payload any
	switch p := e.Payload.(type) {
	case *TextPayload:
		payload = textJSON(*p)
	case *ShapePayload:
		payload = shapeJSON(*p)
	case *StrokePayload:
		payload = strokeJSON(*p)
	case *ImagePayload:
		payload = imageJSON(*p)
	case *GroupPayload:
		payload = groupJSON(*p)
	case *StickerPayload:
		payload = stickerJSON(*p)
	case nil:
		payload = nil
	default:
		return nil, fmt.Errorf("marshal element %s: unknown payload %T", e.ID, e.Payload)
	}
	env := elementJSON{
		ID: e.ID, Kind: e.Kind,
		X: e.X, Y: e.Y, W: e.W, H: e.H,
		Rotation: e.Rotation, ScaleX: e.ScaleX, ScaleY: e.ScaleY,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload of %s: %w", e.ID, err)
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes the envelope and dispatches the payload by kind.
func (e *Element) UnmarshalJSON(data []byte) error {
	var env elementJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	e.ID = env.ID
	e.Kind = env.Kind
	e.X, e.Y, e.W, e.H = env.X, env.Y, env.W, env.H
	e.Rotation, e.ScaleX, e.ScaleY = env.Rotation, env.ScaleX, env.ScaleY
	e.Payload = nil
	if len(env.Payload) == 0 {
		return nil
	}
	switch {
	case env.Kind == KindText:
		var p textJSON
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode text payload of %s: %w", env.ID, err)
		}
		tp := TextPayload(p)
		e.Payload = &tp
	case env.Kind.IsShape():
		var p shapeJSON
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode shape payload of %s: %w", env.ID, err)
		}
		sp := ShapePayload(p)
		e.Payload = &sp
	case env.Kind == KindBrush || env.Kind == KindLine:
		var p strokeJSON
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode stroke payload of %s: %w", env.ID, err)
		}
		sp := StrokePayload(p)
		e.Payload = &sp
	case env.Kind == KindImage:
		var p imageJSON
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode image payload of %s: %w", env.ID, err)
		}
		ip := ImagePayload(p)
		e.Payload = &ip
	case env.Kind.IsCompound():
		var p groupJSON
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode group payload of %s: %w", env.ID, err)
		}
		gp := GroupPayload(p)
		e.Payload = &gp
	case env.Kind == KindSticker:
		var p stickerJSON
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("decode sticker payload of %s: %w", env.ID, err)
		}
		sp := StickerPayload(p)
		e.Payload = &sp
	default:
		return fmt.Errorf("decode element %s: unknown kind %q", env.ID, env.Kind)
	}
	return nil
}
