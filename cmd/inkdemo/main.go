// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command inkdemo draws synthetic pen strokes with the ink library and
// saves the result as PNG or PDF.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/export"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "ink.png", "output file (.png or .pdf)")
		mode    = flag.String("mode", "ephemeral", "tool mode: ephemeral or persistent")
		config  = flag.String("config", "", "settings file (.toml or .yaml)")
		strokes = flag.Int("strokes", 6, "number of strokes")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		ink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	settings := ink.DefaultSettings()
	if *config != "" {
		s, err := ink.LoadSettings(*config)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
		settings = s
	}

	scene := ink.NewScene()
	surface := ink.NewSurface(ink.WithSeedCapacity(settings.SeedSegments))
	tool, err := newTool(*mode, settings, scene, surface)
	if err != nil {
		log.Fatal(err)
	}

	for i := range *strokes {
		drawWave(tool, i, *strokes, *width, *height)
	}

	if strings.EqualFold(filepath.Ext(*output), ".pdf") {
		bg := ink.RGB{R: 1, G: 1, B: 1}
		opts := export.Options{Width: float64(*width), Height: float64(*height), Background: &bg}
		if err := export.WritePDFFile(*output, scene, surface, opts); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	} else if err := savePNG(*output, *width, *height, scene, surface, settings, *mode == "persistent"); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d, %d objects, %d surface segments)\n",
		*output, *width, *height, scene.Len(), surface.UsedSegments())
}

func newTool(mode string, s ink.Settings, scene *ink.Scene, surface *ink.Surface) (ink.Tool, error) {
	switch mode {
	case "ephemeral":
		return ink.NewEphemeralTool(s, ink.WithScene(scene))
	case "persistent":
		return ink.NewPersistentTool(surface, s)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// drawWave feeds one sine-shaped stroke through the tool, two samples per
// move event like a coalescing pointer API.
func drawWave(tool ink.Tool, i, n, w, h int) {
	y0 := float64(h) * (float64(i) + 0.5) / float64(n)
	amp := float64(h) / float64(n) * 0.3
	t0 := float64(i) * 10000

	var samples []ink.Sample
	for k := 0; k <= 120; k++ {
		u := float64(k) / 120
		samples = append(samples, ink.Sample{
			X:        40 + u*float64(w-80),
			Y:        y0 + amp*math.Sin(u*4*math.Pi+float64(i)),
			Pressure: 0.3 + 0.7*math.Sin(u*math.Pi),
			Time:     t0 + float64(k)*8,
		})
	}

	tool.PointerDown(ink.PointerEvent{PointerID: 1, Samples: samples[:1]})
	for k := 1; k < len(samples); k += 2 {
		tool.PointerMove(ink.PointerEvent{PointerID: 1, Samples: samples[k:min(k+2, len(samples))]})
	}
	tool.PointerUp(ink.PointerEvent{PointerID: 1})
}

// savePNG renders on white, or on black when additive ink would saturate
// a light background.
func savePNG(path string, w, h int, scene *ink.Scene, surface *ink.Surface, s ink.Settings, dark bool) error {
	bg := color.Color(color.White)
	if dark {
		bg = color.Black
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	ink.NewImageRenderer().DrawScene(img, scene, surface, s.FeatherThreshold)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
