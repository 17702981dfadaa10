package main

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted navigation session.
type Scenario struct {
	Viewport   Size          `yaml:"viewport"`
	Background string        `yaml:"background"`
	Debounce   time.Duration `yaml:"debounce"`
	MaxWait    time.Duration `yaml:"max_wait"`
	Hysteresis float64       `yaml:"hysteresis"`
	Shapes     []ShapeSpec   `yaml:"shapes"`
	Frames     []Frame       `yaml:"frames"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ShapeSpec declares one shape on the canvas.
type ShapeSpec struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"` // painter or document
	Pattern string    `yaml:"pattern"`
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	Left    float64   `yaml:"left"`
	Top     float64   `yaml:"top"`
	Angle   float64   `yaml:"angle"`
	Scale   float64   `yaml:"scale"`
	Stroke  string    `yaml:"stroke"`
	Dash    []float64 `yaml:"dash"`
}

// Frame moves one shape and renders. Unset fields keep their value.
type Frame struct {
	Shape string        `yaml:"shape"`
	Left  *float64      `yaml:"left"`
	Top   *float64      `yaml:"top"`
	Angle *float64      `yaml:"angle"`
	Scale *float64      `yaml:"scale"`
	Wait  time.Duration `yaml:"wait"`
	Save  *bool         `yaml:"save"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeScenario(f)
}

// DecodeScenario parses and validates a scenario.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	sc := &Scenario{Debounce: -1, MaxWait: -1}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Viewport.Width <= 0 || sc.Viewport.Height <= 0 {
		return fmt.Errorf("viewport %dx%d is invalid", sc.Viewport.Width, sc.Viewport.Height)
	}
	if _, err := parseColor(sc.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}

	names := make(map[string]bool, len(sc.Shapes))
	for i := range sc.Shapes {
		s := &sc.Shapes[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("shape%d", i)
		}
		if names[s.Name] {
			return fmt.Errorf("shape %q declared twice", s.Name)
		}
		names[s.Name] = true

		switch s.Kind {
		case "", "painter":
			s.Kind = "painter"
		case "document":
		default:
			return fmt.Errorf("shape %q: unknown kind %q", s.Name, s.Kind)
		}
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("shape %q: size %gx%g is invalid", s.Name, s.Width, s.Height)
		}
		if s.Scale == 0 {
			s.Scale = 1
		}
		if _, err := parseColor(s.Stroke); err != nil {
			return fmt.Errorf("shape %q stroke: %w", s.Name, err)
		}
	}

	for i, f := range sc.Frames {
		if f.Shape != "" && !names[f.Shape] {
			return fmt.Errorf("frame %d: unknown shape %q", i, f.Shape)
		}
	}
	return nil
}

// parseColor accepts #rgb, #rrggbb and #rrggbbaa. The empty string is nil.
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("color %q must start with #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("color %q has the wrong length", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
