package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/ggui"
)

// Config is the demo configuration read from a TOML file.
type Config struct {
	Title    string `toml:"title"`
	Width    uint32 `toml:"width"`
	Height   uint32 `toml:"height"`
	Renderer string `toml:"renderer"`
	// Background is a hex color such as "#f0f0f0".
	Background             string `toml:"background"`
	QuitOnLastWindowClosed bool   `toml:"quit_on_last_window_closed"`
	LogLevel               string `toml:"log_level"`
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() Config {
	return Config{
		Title:                  "ggui demo",
		Width:                  800,
		Height:                 600,
		Background:             "#f5f5f5",
		QuitOnLastWindowClosed: true,
		LogLevel:               "info",
	}
}

// LoadConfig reads path on top of DefaultConfig. A missing file is not an
// error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	return decodeConfig(f, cfg)
}

func decodeConfig(r io.Reader, cfg Config) (Config, error) {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("gguidemo: config: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return cfg, fmt.Errorf("gguidemo: config: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if _, err := ggui.Hex(cfg.Background); err != nil {
		return cfg, fmt.Errorf("gguidemo: config: background: %w", err)
	}
	return cfg, nil
}

// Size returns the configured window size.
func (c Config) Size() ggui.PhysicalSize {
	return ggui.PhysicalSize{Width: c.Width, Height: c.Height}
}

// BackgroundColor returns the parsed background, white when invalid.
func (c Config) BackgroundColor() ggui.Color {
	col, err := ggui.Hex(c.Background)
	if err != nil {
		return ggui.White
	}
	return col
}
