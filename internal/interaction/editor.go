/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package interaction is the pointer/keyboard state machine of the canvas:
// tool-dependent dispatch for pan, brush, drag-to-create, selection,
// rubber band, group move and transform hand-off. All handlers run
// synchronously on the event goroutine and are total over the current
// state; bad input degrades to a no-op, never a panic.
package interaction

import (
	"log/slog"
	"math"
	"time"

	"pagecanvas/internal/canvas"
	"pagecanvas/internal/clipboard"
	"pagecanvas/internal/config"
	"pagecanvas/internal/geom"
	applog "pagecanvas/internal/log"
	"pagecanvas/internal/snap"
	"pagecanvas/internal/textmetrics"
	"pagecanvas/internal/theme"
	"pagecanvas/internal/transform"
)

// Creation thresholds and defaults.
const (
	MinShapeDrag       = 5.0
	MinTextWidth       = 50.0
	MinTextHeight      = 20.0
	DefaultArrowStep   = 1.0
	DefaultDoubleClick = 300 * time.Millisecond
)

// Level is the interaction permission level granted by the surrounding
// application.
type Level string

const (
	LevelNoAccess   Level = "no_access"
	LevelAnswerOnly Level = "answer_only"
	LevelFull       Level = "full"
)

// Permissions gates which interaction states are reachable.
type Permissions struct{ Level Level }

func (p Permissions) CanAccess() bool { return p.Level != LevelNoAccess }
func (p Permissions) CanEdit() bool   { return p.Level == LevelFull }

// Tool names the active toolbar tool. Shape tools reuse the element kind
// string, so Tool("rect") draws rectangles.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolPan    Tool = "pan"
	ToolBrush  Tool = "brush"
	ToolLine   Tool = "line"
	ToolText   Tool = "text"
)

func (t Tool) shapeKind() (canvas.Kind, bool) {
	k := canvas.Kind(t)
	if k.IsShape() {
		return k, true
	}
	return "", false
}

// Button identifies the pressed pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// PointerEvent is one raw pointer sample in screen space. Pos is nil while
// the stage is not yet measured; handlers then no-op.
type PointerEvent struct {
	Pos    *geom.Pt
	Button Button
	Ctrl   bool
	Time   time.Time
}

// KeyEvent is one keyboard transition.
type KeyEvent struct {
	Key  string
	Ctrl bool
}

// Options configures an Editor for one page.
type Options struct {
	Page            geom.Size
	Permissions     Permissions
	PageTheme       string
	BookTheme       string
	SnapThreshold   float64
	SmoothingPasses int
	ArrowStep       float64
	DoubleClick     time.Duration
	Fonts           *textmetrics.FontLibrary
	Assignments     clipboard.AssignmentIndex
}

// OptionsFromConfig maps the user config's editor section onto engine
// options. Zero values stay zero and pick up the engine defaults in
// NewEditor.
func OptionsFromConfig(ec config.EditorConfig) Options {
	return Options{
		SnapThreshold:   ec.SnapThreshold,
		SmoothingPasses: ec.SmoothingPasses,
		ArrowStep:       ec.ArrowStep,
		DoubleClick:     time.Duration(ec.DoubleClickMs) * time.Millisecond,
	}
}

// Editor is the interaction state machine for one page. Not safe for
// concurrent use; all events arrive on the UI event goroutine.
type Editor struct {
	store  *canvas.Store
	pageID string
	opts   Options

	view geom.Viewport
	eng  snap.Engine
	ctrl *transform.Controller
	clip clipboard.Clipboard

	tool   Tool
	mode   Mode
	brush  *BrushSession
	cycler pairCycler

	lastPointer geom.Pt
	lastClickAt time.Time
	guides      []snap.Guideline
	held        map[string]bool
	nudging     bool

	log *slog.Logger

	// Narrow hooks toward the application shell.
	OnEditText func(id string)
	OnUndo     func()
	OnRedo     func()
}

// NewEditor wires an editor over the given store.
func NewEditor(store *canvas.Store, pageID string, opts Options) *Editor {
	if opts.Page.W == 0 || opts.Page.H == 0 {
		opts.Page = geom.Size{W: canvas.A4Width, H: canvas.A4Height}
	}
	if opts.Permissions.Level == "" {
		opts.Permissions.Level = LevelFull
	}
	if opts.SmoothingPasses == 0 {
		opts.SmoothingPasses = DefaultSmoothingPasses
	}
	if opts.ArrowStep == 0 {
		opts.ArrowStep = DefaultArrowStep
	}
	if opts.DoubleClick == 0 {
		opts.DoubleClick = DefaultDoubleClick
	}
	if opts.Fonts == nil {
		opts.Fonts = textmetrics.NewFontLibrary()
	}
	eng := snap.New(opts.Page)
	if opts.SnapThreshold > 0 {
		eng.Threshold = opts.SnapThreshold
	}
	return &Editor{
		store:  store,
		pageID: pageID,
		opts:   opts,
		view:   geom.NewViewport(),
		eng:    eng,
		ctrl:   transform.NewController(),
		tool:   ToolSelect,
		mode:   Idle{},
		cycler: newPairCycler(),
		held:   map[string]bool{},
		log:    applog.WithComponent("interaction"),
	}
}

func (e *Editor) Mode() Mode                   { return e.mode }
func (e *Editor) Tool() Tool                   { return e.tool }
func (e *Editor) Viewport() geom.Viewport      { return e.view }
func (e *Editor) Guidelines() []snap.Guideline { return e.guides }
func (e *Editor) Transformer() *transform.Controller { return e.ctrl }

// SetZoom clamps and applies the zoom factor. Pan is unconstrained.
func (e *Editor) SetZoom(z float64) { e.view.Zoom = geom.ClampZoom(z) }

// SetTool switches the active tool. A pending brush session is committed
// first so strokes are never silently lost; any other draft is discarded.
func (e *Editor) SetTool(t Tool) {
	if e.tool == ToolBrush && t != ToolBrush {
		e.FinishBrush()
	}
	e.abortDraft()
	e.tool = t
}

// PointerDown starts a gesture. A competing down while another gesture is
// in flight is treated as a below-threshold mouse-up: the draft is
// discarded first.
func (e *Editor) PointerDown(ev PointerEvent) {
	if !e.opts.Permissions.CanAccess() || ev.Pos == nil {
		return
	}
	if _, idle := e.mode.(Idle); !idle {
		e.abortDraft()
	}
	content := e.view.ToContent(*ev.Pos)
	e.lastPointer = content
	dbl := !e.lastClickAt.IsZero() && ev.Time.Sub(e.lastClickAt) <= e.opts.DoubleClick
	e.lastClickAt = ev.Time

	if e.tool == ToolPan || ev.Button == ButtonRight {
		e.mode = &Panning{Offset: ev.Pos.Sub(e.view.Stage)}
		return
	}
	if e.opts.Permissions.Level == LevelAnswerOnly {
		e.answerOnlyDown(content, dbl)
		return
	}
	if !e.opts.Permissions.CanEdit() {
		return
	}

	switch {
	case e.tool == ToolBrush:
		e.mode = &DrawingBrush{Points: []float64{content.X, content.Y}}
	case e.tool == ToolLine:
		e.mode = &DrawingLine{Anchor: content, End: content}
	case e.tool == ToolText:
		e.mode = &DrawingText{Anchor: content}
	default:
		if k, ok := e.tool.shapeKind(); ok {
			e.mode = &DrawingShape{Kind: k, Anchor: content}
			return
		}
		e.selectDown(content, ev.Ctrl, dbl)
	}
}

// answerOnlyDown handles the reduced interaction surface of answer_only:
// panning (handled above) plus double-click to edit an answer box.
func (e *Editor) answerOnlyDown(content geom.Pt, dbl bool) {
	if !dbl {
		return
	}
	hit := canvas.TopElementAt(e.store.Elements(), content)
	if hit == nil {
		return
	}
	if t := hit.Text(); t != nil && t.TextType == canvas.TextAnswer && e.OnEditText != nil {
		e.OnEditText(hit.ID)
	}
}

func (e *Editor) selectDown(content geom.Pt, ctrl, dbl bool) {
	els := e.store.Elements()
	selected := e.store.Selected()
	hit := canvas.TopElementAt(els, content)

	if dbl {
		pairedText := hit != nil && hit.Text() != nil && canvas.PartnerID(hit.ID, els) != ""
		if len(selected) > 1 && !pairedText && e.selectionBounds(els, selected).Contains(content) {
			e.startMove(content, true)
			return
		}
		if hit != nil && hit.Text() != nil {
			if e.OnEditText != nil {
				e.OnEditText(hit.ID)
			}
			return
		}
	}

	if hit == nil {
		e.mode = &Selecting{Anchor: content}
		return
	}
	if ctrl {
		e.cycler.Reset()
		e.setSelected(toggleID(selected, hit.ID))
		return
	}
	if partner := canvas.PartnerID(hit.ID, els); partner != "" {
		if a, b, ok := pairInZOrder(els, hit.ID, partner); ok {
			e.setSelected(e.cycler.Next(a, b))
			e.startMove(content, false)
			return
		}
	}
	e.cycler.Reset()
	e.setSelected([]string{hit.ID})
	e.startMove(content, false)
}

func (e *Editor) startMove(content geom.Pt, group bool) {
	orig := map[string]geom.Pt{}
	els := e.store.Elements()
	for _, id := range e.store.Selected() {
		for i := range els {
			if els[i].ID == id {
				orig[id] = geom.Pt{X: els[i].X, Y: els[i].Y}
			}
		}
	}
	if len(orig) == 0 {
		e.mode = Idle{}
		return
	}
	e.mode = &MovingSelection{Start: content, Orig: orig, Group: group}
}

// PointerMove advances the active gesture.
func (e *Editor) PointerMove(ev PointerEvent) {
	if !e.opts.Permissions.CanAccess() || ev.Pos == nil {
		return
	}
	if m, ok := e.mode.(*Panning); ok {
		e.view.Stage = ev.Pos.Sub(m.Offset)
		m.Panned = true
		return
	}
	content := e.view.ToContent(*ev.Pos)
	e.lastPointer = content

	switch m := e.mode.(type) {
	case *DrawingBrush:
		m.Points = append(m.Points, content.X, content.Y)
	case *DrawingShape:
		m.Preview = geom.Normalize(m.Anchor, content)
	case *DrawingLine:
		m.End = content
	case *DrawingText:
		m.Preview = geom.Normalize(m.Anchor, content)
	case *Selecting:
		m.Band = geom.Normalize(m.Anchor, content)
	case *MovingSelection:
		e.moveTick(m, content)
	}
}

func (e *Editor) moveTick(m *MovingSelection, content geom.Pt) {
	els := e.store.Elements()
	sel := make([]canvas.Element, 0, len(m.Orig))
	inSel := map[string]bool{}
	for _, el := range els {
		if p, ok := m.Orig[el.ID]; ok {
			el.X, el.Y = p.X, p.Y
			sel = append(sel, el)
			inSel[el.ID] = true
		}
	}
	if len(sel) == 0 {
		// whole selection vanished underneath the gesture
		e.log.Warn("move gesture lost its selection")
		e.mode = Idle{}
		return
	}
	if !m.Moved {
		e.dispatch(canvas.Checkpoint{Label: "move"})
		m.Moved = true
	}
	var sibs []geom.Rect
	for _, el := range els {
		if !inSel[el.ID] {
			sibs = append(sibs, canvas.Bounds(el))
		}
	}
	dx, dy := content.X-m.Start.X, content.Y-m.Start.Y
	adx, ady, guides := transform.MoveDelta(sel, dx, dy, e.eng, sibs)
	for _, el := range sel {
		e.dispatch(canvas.UpdateElement{
			ID:    el.ID,
			Patch: canvas.Patch{X: canvas.F(el.X + adx), Y: canvas.F(el.Y + ady)},
		})
	}
	e.guides = guides
}

// PointerUp finishes the active gesture. A nil position is treated as lost
// capture: the draft is discarded.
func (e *Editor) PointerUp(ev PointerEvent) {
	if !e.opts.Permissions.CanAccess() {
		return
	}
	if ev.Pos == nil {
		e.abortDraft()
		return
	}
	content := e.view.ToContent(*ev.Pos)
	e.lastPointer = content

	switch m := e.mode.(type) {
	case *Panning:
		if !m.Panned && e.tool == ToolPan {
			e.setSelected(nil)
		}
	case *DrawingBrush:
		e.finishStroke(m.Points)
	case *DrawingShape:
		e.commitBox(m.Kind, geom.Normalize(m.Anchor, content))
	case *DrawingLine:
		e.commitLine(m.Anchor, content)
	case *DrawingText:
		e.commitBox(canvas.KindText, geom.Normalize(m.Anchor, content))
	case *Selecting:
		els := e.store.Elements()
		band := geom.Normalize(m.Anchor, content)
		if band.W < 1 && band.H < 1 {
			// a click, not a drag: inside the selection bounds it keeps the
			// selection so a follow-up double click can start a group move
			sel := e.store.Selected()
			if len(sel) > 0 && e.selectionBounds(els, sel).Contains(content) {
				break
			}
		}
		ids := canvas.PairClosure(canvas.HitTest(els, band), els)
		e.cycler.Reset()
		e.setSelected(ids)
	}
	e.mode = Idle{}
	e.guides = nil
}

func (e *Editor) finishStroke(points []float64) {
	if len(points) < 4 {
		return
	}
	style := e.styleFor(canvas.KindBrush)
	if e.brush == nil {
		e.brush = NewBrushSession(style.StrokeWidth)
	}
	e.brush.Add(Smooth(points, e.opts.SmoothingPasses), style.Stroke)
}

// UndoLastStroke removes the newest stroke of the in-progress brush session.
func (e *Editor) UndoLastStroke() {
	if e.brush != nil {
		e.brush.UndoLast()
	}
}

// CancelBrush discards the whole brush session.
func (e *Editor) CancelBrush() { e.brush = nil }

// FinishBrush commits the brush session as one element and reverts to the
// select tool.
func (e *Editor) FinishBrush() {
	if e.brush == nil {
		return
	}
	el, ok := e.brush.Element()
	e.brush = nil
	if !ok {
		return
	}
	e.dispatch(canvas.Checkpoint{Label: "brush"})
	e.dispatch(canvas.AddElement{Element: el})
	e.setSelected([]string{el.ID})
	e.tool = ToolSelect
}

// BrushSession exposes the in-progress session, nil when none.
func (e *Editor) BrushSession() *BrushSession { return e.brush }

// commitBox commits a drag-to-create rectangle for shapes and text boxes,
// discarding below-threshold drafts.
func (e *Editor) commitBox(k canvas.Kind, r geom.Rect) {
	if k == canvas.KindText {
		if r.W <= MinTextWidth || r.H <= MinTextHeight {
			return
		}
	} else if math.Max(r.W, r.H) <= MinShapeDrag {
		return
	}
	style := e.styleFor(k)
	if k == canvas.KindText {
		// never shorter than one line of the configured font
		if line := e.opts.Fonts.Measure("Ag", style.FontFamily, style.FontSize); r.H < line.H {
			r.H = line.H
		}
	}
	el := canvas.Element{
		ID: canvas.NewID(), Kind: k,
		X: r.X, Y: r.Y, W: r.W, H: r.H,
	}
	if k == canvas.KindText {
		el.Payload = &canvas.TextPayload{
			TextType:   canvas.TextFree,
			FontSize:   style.FontSize,
			FontFamily: style.FontFamily,
			Fill:       style.TextFill,
		}
	} else {
		el.Payload = &canvas.ShapePayload{
			Stroke:      style.Stroke,
			StrokeWidth: style.StrokeWidth,
			Fill:        style.Fill,
		}
	}
	e.addAndSelect(el)
}

func (e *Editor) commitLine(a, b geom.Pt) {
	r := geom.Normalize(a, b)
	if math.Max(r.W, r.H) <= MinShapeDrag {
		return
	}
	style := e.styleFor(canvas.KindLine)
	el := canvas.Element{
		ID: canvas.NewID(), Kind: canvas.KindLine,
		X: r.X, Y: r.Y,
		Payload: &canvas.StrokePayload{
			Points: []float64{a.X - r.X, a.Y - r.Y, b.X - r.X, b.Y - r.Y},
			Color:  style.Stroke,
			Width:  style.StrokeWidth,
		},
	}
	e.addAndSelect(el)
}

func (e *Editor) addAndSelect(el canvas.Element) {
	e.dispatch(canvas.Checkpoint{Label: "create"})
	e.dispatch(canvas.AddElement{Element: el})
	e.setSelected([]string{el.ID})
	e.tool = ToolSelect
}

// FitTextToContent grows a text box to the measured size of its content.
// The box only ever grows; callers typically invoke this after an edit
// hands new text back to the element.
func (e *Editor) FitTextToContent(id string) {
	if !e.opts.Permissions.CanEdit() {
		return
	}
	els := e.store.Elements()
	for i := range els {
		if els[i].ID != id {
			continue
		}
		tp := els[i].Text()
		if tp == nil {
			return
		}
		need := e.opts.Fonts.Measure(tp.Text, tp.FontFamily, tp.FontSize)
		w := math.Max(els[i].W, need.W)
		h := math.Max(els[i].H, need.H)
		if w == els[i].W && h == els[i].H {
			return
		}
		e.dispatch(canvas.Checkpoint{Label: "resize"})
		e.dispatch(canvas.UpdateElement{ID: id, Patch: canvas.Patch{W: canvas.F(w), H: canvas.F(h)}})
		return
	}
}

// KeyDown handles the keyboard channel of the machine.
func (e *Editor) KeyDown(ev KeyEvent) {
	if !e.opts.Permissions.CanAccess() {
		return
	}
	if ev.Key == "Escape" {
		e.abortDraft()
		return
	}
	if ev.Ctrl {
		switch ev.Key {
		case "z":
			if e.OnUndo != nil {
				e.OnUndo()
			}
		case "y":
			if e.OnRedo != nil {
				e.OnRedo()
			}
		case "c":
			if e.opts.Permissions.CanEdit() {
				e.clip.Copy(e.store.Selected(), e.store.Elements(), e.pageID)
			}
		case "x":
			if e.opts.Permissions.CanEdit() {
				e.clip.Copy(e.store.Selected(), e.store.Elements(), e.pageID)
				e.deleteSelection()
			}
		case "v":
			if e.opts.Permissions.CanEdit() {
				e.paste()
			}
		case "d":
			if e.opts.Permissions.CanEdit() {
				e.duplicate()
			}
		case "g":
			if e.opts.Permissions.CanEdit() {
				e.GroupSelection()
			}
		case "u":
			if e.opts.Permissions.CanEdit() {
				e.UngroupSelection()
			}
		}
		return
	}
	if !e.opts.Permissions.CanEdit() {
		return
	}
	switch ev.Key {
	case "Delete", "Backspace":
		e.deleteSelection()
	case "ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown":
		if !e.nudging && len(e.store.Selected()) > 0 {
			e.dispatch(canvas.Checkpoint{Label: "nudge"})
			e.nudging = true
		}
		e.held[ev.Key] = true
	}
}

// KeyUp releases a held arrow key.
func (e *Editor) KeyUp(ev KeyEvent) {
	delete(e.held, ev.Key)
	if len(e.held) == 0 {
		e.nudging = false
	}
}

// Tick runs one animation frame: held arrow keys move the selection by the
// configured step, giving smooth continuous motion independent of OS key
// repeat.
func (e *Editor) Tick() {
	if !e.opts.Permissions.CanEdit() || len(e.held) == 0 {
		return
	}
	var dx, dy float64
	if e.held["ArrowLeft"] {
		dx -= e.opts.ArrowStep
	}
	if e.held["ArrowRight"] {
		dx += e.opts.ArrowStep
	}
	if e.held["ArrowUp"] {
		dy -= e.opts.ArrowStep
	}
	if e.held["ArrowDown"] {
		dy += e.opts.ArrowStep
	}
	if dx == 0 && dy == 0 {
		return
	}
	els := e.store.Elements()
	for _, id := range e.store.Selected() {
		for i := range els {
			if els[i].ID == id {
				e.dispatch(canvas.UpdateElement{
					ID:    id,
					Patch: canvas.Patch{X: canvas.F(els[i].X + dx), Y: canvas.F(els[i].Y + dy)},
				})
			}
		}
	}
}

func (e *Editor) deleteSelection() {
	sel := e.store.Selected()
	if len(sel) == 0 {
		return
	}
	e.dispatch(canvas.Checkpoint{Label: "delete"})
	for _, id := range sel {
		e.dispatch(canvas.DeleteElement{ID: id})
	}
	e.setSelected(nil)
}

func (e *Editor) paste() {
	out, err := e.clip.Paste(e.pageID, e.lastPointer, e.opts.Assignments)
	if err != nil {
		e.log.Warn("paste refused", slog.Any("err", err))
		return
	}
	if len(out) == 0 {
		return
	}
	e.dispatch(canvas.Checkpoint{Label: "paste"})
	ids := make([]string, 0, len(out))
	for _, el := range out {
		e.dispatch(canvas.AddElement{Element: el})
		ids = append(ids, el.ID)
	}
	e.setSelected(ids)
}

func (e *Editor) duplicate() {
	sel := e.store.Selected()
	if len(sel) == 0 {
		return
	}
	out := clipboard.Duplicate(sel, e.store.Elements())
	if len(out) == 0 {
		return
	}
	e.dispatch(canvas.Checkpoint{Label: "duplicate"})
	ids := make([]string, 0, len(out))
	for _, el := range out {
		e.dispatch(canvas.AddElement{Element: el})
		ids = append(ids, el.ID)
	}
	e.setSelected(ids)
}

// abortDraft cancels any transient gesture without committing it.
func (e *Editor) abortDraft() {
	e.mode = Idle{}
	e.guides = nil
}

func (e *Editor) styleFor(k canvas.Kind) theme.Style {
	return theme.StyleDefaults(k, e.opts.PageTheme, e.opts.BookTheme)
}

// dispatch forwards an intent to the store and refreshes the transform
// handle binding whenever elements or selection change.
func (e *Editor) dispatch(in canvas.Intent) {
	e.store.Dispatch(in)
	switch in.(type) {
	case canvas.AddElement, canvas.UpdateElement, canvas.SetSelected:
		e.ctrl.Rebind(e.store.Selected(), e.store.Elements())
	case canvas.DeleteElement:
		e.ctrl.Invalidate(e.store.Elements())
	}
}

func (e *Editor) setSelected(ids []string) {
	e.dispatch(canvas.SetSelected{IDs: ids})
}

func (e *Editor) selectionBounds(els []canvas.Element, ids []string) geom.Rect {
	sel := make([]canvas.Element, 0, len(ids))
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	for _, el := range els {
		if want[el.ID] {
			sel = append(sel, el)
		}
	}
	return canvas.BoundsOfAll(sel)
}

func toggleID(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// pairInZOrder returns the two pair members ordered by their position in
// the element array.
func pairInZOrder(els []canvas.Element, id, partner string) (canvas.Element, canvas.Element, bool) {
	var first, second *canvas.Element
	for i := range els {
		switch els[i].ID {
		case id, partner:
			if first == nil {
				first = &els[i]
			} else {
				second = &els[i]
			}
		}
	}
	if first == nil || second == nil {
		return canvas.Element{}, canvas.Element{}, false
	}
	return *first, *second, true
}
