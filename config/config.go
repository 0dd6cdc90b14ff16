// Copyright (c) 2026, The egui-demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads and validates the presentation shell's TOML
// configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the shell configuration. The zero value is not valid; use
// Default or Load.
type Config struct {
	// Title is the window title.
	Title string `toml:"title"`

	// Width and Height are the initial window size in screen
	// coordinates.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// PresentMode is one of fifo (vsync), immediate, mailbox.
	// Applied on live reload.
	PresentMode string `toml:"present_mode"`

	// PowerPreference is high-performance or low-power. Requires
	// restart.
	PowerPreference string `toml:"power_preference"`

	// ClearColor is the frame background as #rrggbb or #rrggbbaa.
	// Applied on live reload.
	ClearColor string `toml:"clear_color"`

	// Scale overrides the window content scale when positive.
	// Applied on live reload.
	Scale float64 `toml:"scale"`

	// Debug enables debug logging.
	Debug bool `toml:"debug"`
}

// Default returns the built-in configuration: an 800x600 vsync-locked
// window cleared to blue.
func Default() *Config {
	return &Config{
		Title:           "egui-demo",
		Width:           800,
		Height:          600,
		PresentMode:     "fifo",
		PowerPreference: "high-performance",
		ClearColor:      "#0000ff",
	}
}

// Load reads path over the defaults. A missing file is not an error:
// the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the fields that later stages cannot recover from.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Width, c.Height)
	}
	switch c.PresentMode {
	case "", "fifo", "vsync", "immediate", "uncapped", "mailbox":
	default:
		return fmt.Errorf("config: unknown present_mode %q", c.PresentMode)
	}
	switch c.PowerPreference {
	case "", "high-performance", "low-power":
	default:
		return fmt.Errorf("config: unknown power_preference %q", c.PowerPreference)
	}
	if _, err := c.RGBA(); err != nil {
		return err
	}
	return nil
}

// RGBA parses ClearColor.
func (c *Config) RGBA() (color.RGBA, error) {
	return ParseHexColor(c.ClearColor)
}

// ParseHexColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("config: color %q must start with '#'", s)
	}
	hex := s[1:]
	var r, g, b, a uint8 = 0, 0, 0, 255
	var err error
	switch len(hex) {
	case 3:
		r, err = nib(hex[0], err)
		g, err = nib(hex[1], err)
		b, err = nib(hex[2], err)
		r, g, b = r*17, g*17, b*17
	case 6:
		r, err = hexByte(hex[0:2], err)
		g, err = hexByte(hex[2:4], err)
		b, err = hexByte(hex[4:6], err)
	case 8:
		r, err = hexByte(hex[0:2], err)
		g, err = hexByte(hex[2:4], err)
		b, err = hexByte(hex[4:6], err)
		a, err = hexByte(hex[6:8], err)
	default:
		return color.RGBA{}, fmt.Errorf("config: color %q has invalid length", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

func nib(c byte, prev error) (uint8, error) {
	if prev != nil {
		return 0, prev
	}
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit %q", c)
}

func hexByte(s string, prev error) (uint8, error) {
	hi, err := nib(s[0], prev)
	lo, err := nib(s[1], err)
	return hi<<4 | lo, err
}
