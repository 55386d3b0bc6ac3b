// Command gguidemo opens a window and renders a small item tree with the
// selected renderer.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xlab/closer"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/platform"
	"github.com/gogpu/ggui/platform/glfwbackend"
	"github.com/gogpu/ggui/window"
)

func main() {
	var (
		configPath = flag.String("config", "gguidemo.toml", "configuration file")
		renderer   = flag.String("renderer", "", "renderer: opengl, webgpu or software")
	)
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *renderer != "" {
		cfg.Renderer = *renderer
	}
	ggui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))

	pump, err := glfwbackend.NewPump()
	if err != nil {
		log.Fatalf("Failed to initialize glfw: %v", err)
	}
	loop := platform.NewEventLoop(pump)
	loop.SetQuitOnLastWindowClosed(cfg.QuitOnLastWindowClosed)

	backend := platform.NewBackend(loop)
	glfwbackend.Register(backend, glfwbackend.Options{})
	if cfg.Renderer != "" {
		backend.Select(cfg.Renderer)
	}

	ref, err := backend.CreateWindowAdapter(cfg.Title, cfg.Size())
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	adapter, err := ref.Resolve()
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	w := adapter.Window()
	w.SetBackground(ggui.Solid(cfg.BackgroundColor()))
	s := newScene(w.LogicalSize())
	w.AddComponent(s.tree, ggui.Point{})
	w.OnEvent(func(ev window.Event) {
		if k, ok := ev.(window.KeyInput); ok && k.Pressed && k.Code == keyEscape {
			_ = loop.Proxy().InvokeFromEventLoop(func() { _ = loop.CloseWindow(ref) })
			return
		}
		if s.handle(ev) {
			adapter.RequestRedraw()
		}
	})

	// Caret blinking runs off the loop goroutine and posts back to it.
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			err := loop.Proxy().InvokeFromEventLoop(func() {
				s.blink()
				adapter.RequestRedraw()
			})
			if err != nil {
				return
			}
		}
	}()

	done := make(chan struct{})
	closer.Bind(func() {
		if err := loop.Proxy().QuitEventLoop(); err != nil {
			return
		}
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	})

	if err := adapter.Show(); err != nil {
		log.Fatalf("Failed to show window: %v", err)
	}
	err = loop.Run()
	close(done)
	if err != nil {
		log.Fatalf("Event loop failed: %v", err)
	}
}

// glfw key code of escape.
const keyEscape = 256

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
