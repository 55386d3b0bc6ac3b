// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package platform

import (
	"errors"
	"sync"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/window"
)

// ErrEventLoopTerminated is returned when posting to, or running, an event
// loop that has exited.
var ErrEventLoopTerminated = errors.New("platform: event loop terminated")

// ErrEventLoopRunning is returned by Run when the loop is already running.
var ErrEventLoopRunning = errors.New("platform: event loop already running")

// Pump is the native event source.
type Pump interface {
	// WaitEvents blocks until native events arrive or PostEmptyEvent is
	// called, and dispatches the native events.
	WaitEvents()

	// PollEvents dispatches pending native events without blocking.
	PollEvents()

	// PostEmptyEvent wakes a blocked WaitEvents. It is safe to call from
	// any goroutine.
	PostEmptyEvent()

	// Terminate releases the native event source.
	Terminate()
}

type eventKind uint8

const (
	eventWake eventKind = iota
	eventQuit
	eventInvoke
)

type loopEvent struct {
	kind eventKind
	fn   func()
}

// Proxy posts work to an EventLoop from any goroutine.
type Proxy struct {
	mu         sync.Mutex
	queue      []loopEvent
	terminated bool
	pump       Pump
}

// QuitEventLoop asks the loop to exit after the current iteration.
func (p *Proxy) QuitEventLoop() error {
	return p.post(loopEvent{kind: eventQuit})
}

// InvokeFromEventLoop runs fn on the event loop goroutine. Calls made from
// the loop itself run on the next iteration, never on the caller's stack.
func (p *Proxy) InvokeFromEventLoop(fn func()) error {
	if fn == nil {
		return nil
	}
	return p.post(loopEvent{kind: eventInvoke, fn: fn})
}

func (p *Proxy) post(ev loopEvent) error {
	p.mu.Lock()
	if p.terminated {
		p.mu.Unlock()
		return ErrEventLoopTerminated
	}
	// Some native loops dispatch a posted event synchronously inside the
	// post call. The wake sentinel absorbs that dispatch so the real event
	// is handled from the top of the next iteration.
	p.queue = append(p.queue, loopEvent{kind: eventWake}, ev)
	p.mu.Unlock()
	p.pump.PostEmptyEvent()
	return nil
}

func (p *Proxy) take() []loopEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	q := p.queue
	p.queue = nil
	return q
}

func (p *Proxy) terminate() {
	p.mu.Lock()
	p.terminated = true
	p.queue = nil
	p.mu.Unlock()
}

// EventLoop drives native events, proxy events and redraws.
type EventLoop struct {
	pump    Pump
	proxy   *Proxy
	windows *window.Registry

	quitOnLastWindowClosed bool
	sawVisibleWindow       bool

	running    bool
	quit       bool
	terminated bool
}

// NewEventLoop creates a loop over pump with an empty window registry.
func NewEventLoop(pump Pump) *EventLoop {
	return &EventLoop{
		pump:                   pump,
		proxy:                  &Proxy{pump: pump},
		windows:                window.NewRegistry(),
		quitOnLastWindowClosed: true,
	}
}

// Proxy returns the loop's thread-safe proxy.
func (l *EventLoop) Proxy() *Proxy { return l.proxy }

// Windows returns the registry owning the loop's window adapters.
func (l *EventLoop) Windows() *window.Registry { return l.windows }

// SetQuitOnLastWindowClosed controls whether Run returns once no window is
// visible any more. The default is true.
func (l *EventLoop) SetQuitOnLastWindowClosed(v bool) { l.quitOnLastWindowClosed = v }

// Wake interrupts a blocked wait so pending redraws are handled.
func (l *EventLoop) Wake() { l.pump.PostEmptyEvent() }

// Run processes events until QuitEventLoop is called or, with
// quit-on-last-window-closed, the last visible window is hidden.
func (l *EventLoop) Run() error {
	if l.terminated {
		return ErrEventLoopTerminated
	}
	if l.running {
		return ErrEventLoopRunning
	}
	l.running = true
	defer l.shutdown()

	log := ggui.Logger()
	log.Debug("platform: event loop started")
	for {
		l.processQueue()
		if l.quit {
			break
		}
		pending := l.redraw()
		if l.lastWindowClosed() {
			log.Debug("platform: last window closed")
			break
		}
		if pending {
			l.pump.PollEvents()
		} else {
			l.pump.WaitEvents()
		}
	}
	log.Debug("platform: event loop finished")
	return nil
}

// processQueue handles the events posted before this iteration started.
func (l *EventLoop) processQueue() {
	for _, ev := range l.proxy.take() {
		switch ev.kind {
		case eventQuit:
			l.quit = true
		case eventInvoke:
			ev.fn()
		}
	}
}

// redraw renders every visible window that requested it and reports
// whether a window asked for another frame while rendering.
func (l *EventLoop) redraw() (pending bool) {
	for _, a := range l.windows.Adapters() {
		w := a.Window()
		if !w.Visible() {
			continue
		}
		l.sawVisibleWindow = true
		if !w.TakeRedrawRequest() {
			continue
		}
		if r := a.Renderer(); r != nil {
			if err := r.Render(); err != nil {
				ggui.Logger().Warn("platform: render failed", "err", err)
			}
		}
		pending = pending || w.RedrawRequested()
	}
	return pending
}

func (l *EventLoop) lastWindowClosed() bool {
	if !l.quitOnLastWindowClosed || !l.sawVisibleWindow {
		return false
	}
	for _, a := range l.windows.Adapters() {
		if a.Window().Visible() {
			return false
		}
	}
	return true
}

func (l *EventLoop) shutdown() {
	l.running = false
	l.terminated = true
	l.proxy.terminate()
	for _, a := range l.windows.Adapters() {
		if r := a.Renderer(); r != nil {
			if err := r.Close(); err != nil {
				ggui.Logger().Debug("platform: closing renderer", "err", err)
			}
		}
	}
	l.pump.Terminate()
}

// CloseWindow delivers a close request to the adapter's window and hides
// it unless the window keeps itself shown.
func (l *EventLoop) CloseWindow(ref window.Ref) error {
	a, err := ref.Resolve()
	if err != nil {
		return err
	}
	if a.Window().Dispatch(window.CloseRequested{}) {
		return a.Hide()
	}
	return nil
}
