// Command stagedemo drives staged shapes through a navigation scenario and
// writes one PNG per rendered frame.
//
// Usage:
//
//	stagedemo -scenario scenarios/pan.yaml -out frames
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/stage"
	"github.com/gogpu/stage/document"
)

func main() {
	var (
		scenario = flag.String("scenario", "scenarios/pan.yaml", "scenario file")
		out      = flag.String("out", "frames", "output directory")
		verbose  = flag.Bool("v", false, "log cache activity")
		workers  = flag.Int("workers", 0, "concurrent page rasterizations (0 = GOMAXPROCS)")
	)
	flag.Parse()

	if *verbose {
		stage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sc, err := LoadScenario(*scenario)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}
	if err := os.MkdirAll(*out, 0o750); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	n, err := run(sc, *out, document.NewEngine(document.WithParallelism(*workers)))
	if err != nil {
		log.Fatalf("Scenario failed: %v", err)
	}
	log.Printf("Wrote %d frames to %s\n", n, *out)
}

// run plays sc on a fresh canvas and returns the number of frames saved.
func run(sc *Scenario, out string, engine *document.Engine) (int, error) {
	cv, err := stage.NewCanvas(sc.Viewport.Width, sc.Viewport.Height)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = cv.Close()
	}()

	bg, _ := parseColor(sc.Background)
	cv.SetBackground(bg)

	shapes := make(map[string]*stage.Shape, len(sc.Shapes))
	doc := document.New()
	for _, spec := range sc.Shapes {
		s := newShape(sc, spec, doc, engine)
		shapes[spec.Name] = s
		cv.Add(s)
	}

	saved := 0
	for i, f := range sc.Frames {
		if s := shapes[f.Shape]; s != nil {
			f.apply(s)
			cv.MarkDirty()
		}
		if _, err := cv.Render(); err != nil {
			return saved, err
		}
		if f.Save == nil || *f.Save {
			path := filepath.Join(out, fmt.Sprintf("frame-%03d.png", i))
			if err := cv.Context().SavePNG(path); err != nil {
				return saved, err
			}
			saved++
		}
		if f.Wait > 0 {
			time.Sleep(f.Wait)
		}
	}

	for _, spec := range sc.Shapes {
		st := shapes[spec.Name].Cache().Stats()
		log.Printf("%s: %s, %d jobs (%d cancelled), composite hit rate %.0f%%",
			spec.Name, shapes[spec.Name].Cache().State(), st.Started, st.Cancelled, st.HitRate()*100)
	}
	return saved, nil
}

func newShape(sc *Scenario, spec ShapeSpec, doc *document.Document, engine *document.Engine) *stage.Shape {
	var opts []stage.Option
	if sc.Debounce >= 0 {
		opts = append(opts, stage.WithDebounce(sc.Debounce))
	}
	if sc.MaxWait >= 0 {
		opts = append(opts, stage.WithMaxWait(sc.MaxWait))
	}
	opts = append(opts, stage.WithHysteresis(sc.Hysteresis))

	var s *stage.Shape
	switch spec.Kind {
	case "document":
		page := doc.NewPage(spec.Width, spec.Height, drawPage(spec.Width, spec.Height))
		s = stage.NewDocumentShape(engine, page, opts...)
	default:
		s = stage.NewPainterShape(spec.Width, spec.Height, painterFor(spec), opts...)
	}

	s.Src = spec.Name
	s.Left, s.Top = spec.Left, spec.Top
	s.Angle = spec.Angle
	s.ScaleX, s.ScaleY = spec.Scale, spec.Scale
	if c, _ := parseColor(spec.Stroke); c != nil {
		s.Stroke = c
		s.StrokeWidth = 2
		s.StrokeDash = spec.Dash
	}
	return s
}

func (f Frame) apply(s *stage.Shape) {
	if f.Left != nil {
		s.Left = *f.Left
	}
	if f.Top != nil {
		s.Top = *f.Top
	}
	if f.Angle != nil {
		s.Angle = *f.Angle
	}
	if f.Scale != nil {
		s.ScaleX, s.ScaleY = *f.Scale, *f.Scale
	}
}
