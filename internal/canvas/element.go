/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas defines the page element model: a tagged union with a shared
// position/size/rotation/id envelope and one payload variant per element
// kind. Geometry is stored in page-content pixel space; bounding boxes of
// stroke and compound elements are derived, never stored.
package canvas

import (
	"github.com/google/uuid"
)

// Kind discriminates the element union.
type Kind string

const (
	KindText            Kind = "text"
	KindImage           Kind = "image"
	KindLine            Kind = "line"
	KindRect            Kind = "rect"
	KindCircle          Kind = "circle"
	KindTriangle        Kind = "triangle"
	KindPolygon         Kind = "polygon"
	KindHeart           Kind = "heart"
	KindStar            Kind = "star"
	KindSpeechBubble    Kind = "speech-bubble"
	KindDog             Kind = "dog"
	KindCat             Kind = "cat"
	KindSmiley          Kind = "smiley"
	KindBrush           Kind = "brush"
	KindBrushMulticolor Kind = "brush-multicolor"
	KindGroup           Kind = "group"
	KindSticker         Kind = "sticker"
)

// IsShape reports whether the kind is a solid vector shape sharing the
// ShapePayload variant.
func (k Kind) IsShape() bool {
	switch k {
	case KindRect, KindCircle, KindTriangle, KindPolygon, KindHeart, KindStar,
		KindSpeechBubble, KindDog, KindCat, KindSmiley:
		return true
	}
	return false
}

// IsCompound reports whether the kind carries child elements.
func (k Kind) IsCompound() bool {
	return k == KindGroup || k == KindBrushMulticolor
}

// TextType classifies textual elements.
type TextType string

const (
	TextFree      TextType = "free-text"
	TextQuestion  TextType = "question"
	TextAnswer    TextType = "answer"
	TextQnA       TextType = "qna"
	TextQnA2      TextType = "qna2"
	TextQnAInline TextType = "qna_inline"
)

// IsStructured reports whether the text type participates in the
// question/answer structure (and therefore has its content cleared on
// duplication and is mappable by templates).
func (t TextType) IsStructured() bool {
	switch t {
	case TextQuestion, TextAnswer, TextQnA, TextQnA2, TextQnAInline:
		return true
	}
	return false
}

// Element is the envelope shared by every kind. W/H of zero mean "use the
// per-kind default" (see DefaultSize). ScaleX/ScaleY of zero mean 1.
type Element struct {
	ID       string
	Kind     Kind
	X, Y     float64
	W, H     float64
	Rotation float64 // degrees
	ScaleX   float64
	ScaleY   float64
	Payload  Payload
}

// Payload is the per-kind variant. Exactly one concrete type corresponds to
// each Kind (shape kinds share ShapePayload).
type Payload interface{ isPayload() }

// TextPayload backs text elements, including structured question/answer
// boxes. QuestionElementID is a one-directional back-reference: exactly one
// member of a pair carries it, pointing at the other.
type TextPayload struct {
	Text              string
	FormattedText     string
	TextType          TextType
	FontSize          float64
	FontFamily        string
	Fill              string
	QuestionID        string
	AnswerID          string
	QuestionElementID string
}

// ShapePayload backs all solid vector shapes.
type ShapePayload struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
	ThemeRole   string
}

// StrokePayload backs brush strokes and lines. Points is a flat x,y pair
// sequence relative to the element origin.
type StrokePayload struct {
	Points []float64
	Color  string
	Width  float64
}

// ImagePayload backs images and image placeholders.
type ImagePayload struct {
	Src         string
	Placeholder bool
}

// GroupPayload backs compound elements (group, brush-multicolor). Child
// coordinates are relative to the parent's origin.
type GroupPayload struct {
	Children []Element
}

// StickerPayload references a catalog sticker.
type StickerPayload struct {
	Ref string
}

func (TextPayload) isPayload()    {}
func (ShapePayload) isPayload()   {}
func (StrokePayload) isPayload()  {}
func (ImagePayload) isPayload()   {}
func (GroupPayload) isPayload()   {}
func (StickerPayload) isPayload() {}

// NewID returns a fresh element id. Ids are never reused within a session;
// clipboard and duplication always mint new ones.
func NewID() string { return uuid.NewString() }

// Text returns the text payload, or nil for non-text elements.
func (e *Element) Text() *TextPayload {
	if p, ok := e.Payload.(*TextPayload); ok {
		return p
	}
	return nil
}

// Stroke returns the stroke payload, or nil.
func (e *Element) Stroke() *StrokePayload {
	if p, ok := e.Payload.(*StrokePayload); ok {
		return p
	}
	return nil
}

// Group returns the group payload, or nil.
func (e *Element) Group() *GroupPayload {
	if p, ok := e.Payload.(*GroupPayload); ok {
		return p
	}
	return nil
}

// Image returns the image payload, or nil.
func (e *Element) Image() *ImagePayload {
	if p, ok := e.Payload.(*ImagePayload); ok {
		return p
	}
	return nil
}

// Shape returns the shape payload, or nil.
func (e *Element) Shape() *ShapePayload {
	if p, ok := e.Payload.(*ShapePayload); ok {
		return p
	}
	return nil
}

// Clone returns a deep copy of the element (fresh payload, copied slices,
// same id). Callers minting duplicates must replace the id themselves.
func (e Element) Clone() Element {
	c := e
	switch p := e.Payload.(type) {
	case *TextPayload:
		cp := *p
		c.Payload = &cp
	case *ShapePayload:
		cp := *p
		c.Payload = &cp
	case *StrokePayload:
		cp := *p
		cp.Points = append([]float64(nil), p.Points...)
		c.Payload = &cp
	case *ImagePayload:
		cp := *p
		c.Payload = &cp
	case *GroupPayload:
		cp := GroupPayload{Children: make([]Element, len(p.Children))}
		for i, ch := range p.Children {
			cp.Children[i] = ch.Clone()
		}
		c.Payload = &cp
	case *StickerPayload:
		cp := *p
		c.Payload = &cp
	}
	return c
}

// CloneElements deep-copies a whole element slice.
func CloneElements(els []Element) []Element {
	out := make([]Element, len(els))
	for i, e := range els {
		out[i] = e.Clone()
	}
	return out
}

// Page is one fixed-size canvas and its ordered element list (implicit
// z-order, back to front).
type Page struct {
	ID       string    `json:"id"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Elements []Element `json:"elements"`
}

// A4 page-content pixel size at 300 DPI.
const (
	A4Width  = 2480.0
	A4Height = 3508.0
)
