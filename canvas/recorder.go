// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"

	"github.com/gogpu/ggui"
)

// CommandType identifies a recorded canvas call.
type CommandType uint8

const (
	// State commands
	CmdSave      CommandType = iota // Save current state
	CmdRestore                      // Restore previous state
	CmdTranslate                    // Move the origin
	CmdClipRect                     // Intersect the clip
	CmdSetAlpha                     // Multiply opacity

	// Drawing commands
	CmdClear      // Clear the whole canvas
	CmdFillPath   // Fill a path
	CmdStrokePath // Stroke a path
	CmdFillRect   // Fill a rectangle
	CmdDrawImage  // Draw an image

	// Flush is recorded when the recorder is used as a graphics context.
	CmdFlush
)

var commandTypeNames = [...]string{
	CmdSave:       "Save",
	CmdRestore:    "Restore",
	CmdTranslate:  "Translate",
	CmdClipRect:   "ClipRect",
	CmdSetAlpha:   "SetAlpha",
	CmdClear:      "Clear",
	CmdFillPath:   "FillPath",
	CmdStrokePath: "StrokePath",
	CmdFillRect:   "FillRect",
	CmdDrawImage:  "DrawImage",
	CmdFlush:      "Flush",
}

// String returns the command name.
func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "Unknown"
}

// Command is one recorded canvas call. Only the fields relevant to Type
// are set.
type Command struct {
	Type  CommandType
	Color ggui.Color // Clear
	Rect  ggui.Rect  // ClipRect, FillRect
	Point ggui.Point // Translate (dx, dy), DrawImage
	Paint Paint      // FillPath, StrokePath, FillRect
	Path  *Path      // FillPath, StrokePath
	Width float32    // StrokePath
	Alpha float32    // SetAlpha
	Image image.Image

	// Origin is the accumulated translation when the command was issued.
	Origin ggui.Point
}

// Recorder is a Canvas that records every call instead of drawing.
//
// It tracks translation and clip like a real canvas so ClipBounds
// answers correctly during a recorded frame.
type Recorder struct {
	width, height int
	commands      []Command
	state         recorderState
	stack         []recorderState
}

type recorderState struct {
	origin ggui.Point
	clip   ggui.Rect // device space
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder creates a recorder reporting the given dimensions.
func NewRecorder(width, height int) *Recorder {
	r := &Recorder{width: width, height: height}
	r.Reset()
	return r
}

// Reset discards all recorded commands and state.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.stack = r.stack[:0]
	r.state = recorderState{clip: ggui.Rect{Width: float32(r.width), Height: float32(r.height)}}
}

// Resize changes the reported dimensions and resets the recorder.
func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
	r.Reset()
}

// Commands returns the recorded commands in issue order.
func (r *Recorder) Commands() []Command { return r.commands }

// Count returns the number of recorded commands of type t.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type == t {
			n++
		}
	}
	return n
}

// Index returns the position of the first command of type t at or after
// from, or -1.
func (r *Recorder) Index(t CommandType, from int) int {
	for i := max(from, 0); i < len(r.commands); i++ {
		if r.commands[i].Type == t {
			return i
		}
	}
	return -1
}

func (r *Recorder) record(c Command) {
	c.Origin = r.state.origin
	r.commands = append(r.commands, c)
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) Clear(c ggui.Color) {
	r.record(Command{Type: CmdClear, Color: c})
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
	r.record(Command{Type: CmdSave})
}

func (r *Recorder) Restore() {
	if len(r.stack) > 0 {
		r.state = r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
	}
	r.record(Command{Type: CmdRestore})
}

func (r *Recorder) Translate(dx, dy float32) {
	r.state.origin = r.state.origin.Add(ggui.Point{X: dx, Y: dy})
	r.record(Command{Type: CmdTranslate, Point: ggui.Point{X: dx, Y: dy}})
}

func (r *Recorder) ClipRect(rect ggui.Rect) {
	r.state.clip = r.state.clip.Intersect(rect.Translate(r.state.origin.X, r.state.origin.Y))
	r.record(Command{Type: CmdClipRect, Rect: rect})
}

func (r *Recorder) ClipBounds() ggui.Rect {
	return r.state.clip.Translate(-r.state.origin.X, -r.state.origin.Y)
}

func (r *Recorder) SetAlpha(a float32) {
	r.record(Command{Type: CmdSetAlpha, Alpha: a})
}

func (r *Recorder) FillPath(p *Path, paint Paint) {
	r.record(Command{Type: CmdFillPath, Path: p, Paint: paint})
}

func (r *Recorder) StrokePath(p *Path, paint Paint, width float32) {
	r.record(Command{Type: CmdStrokePath, Path: p, Paint: paint, Width: width})
}

func (r *Recorder) FillRect(rect ggui.Rect, paint Paint) {
	r.record(Command{Type: CmdFillRect, Rect: rect, Paint: paint})
}

func (r *Recorder) DrawImage(img image.Image, p ggui.Point) {
	r.record(Command{Type: CmdDrawImage, Image: img, Point: p})
}

// Flush records a flush. It lets a Recorder stand in for a surface's
// graphics context in tests.
func (r *Recorder) Flush() error {
	r.record(Command{Type: CmdFlush})
	return nil
}

// Playback replays the recorded commands onto dst. Flush commands are
// skipped.
func (r *Recorder) Playback(dst Canvas) {
	for _, c := range r.commands {
		switch c.Type {
		case CmdSave:
			dst.Save()
		case CmdRestore:
			dst.Restore()
		case CmdTranslate:
			dst.Translate(c.Point.X, c.Point.Y)
		case CmdClipRect:
			dst.ClipRect(c.Rect)
		case CmdSetAlpha:
			dst.SetAlpha(c.Alpha)
		case CmdClear:
			dst.Clear(c.Color)
		case CmdFillPath:
			dst.FillPath(c.Path, c.Paint)
		case CmdStrokePath:
			dst.StrokePath(c.Path, c.Paint, c.Width)
		case CmdFillRect:
			dst.FillRect(c.Rect, c.Paint)
		case CmdDrawImage:
			dst.DrawImage(c.Image, c.Point)
		}
	}
}
