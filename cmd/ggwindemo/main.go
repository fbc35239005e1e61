// Command ggwindemo opens a window and demonstrates accumulated drawing
// with a preserved drawing buffer.
//
// The first frame clears to white and draws a red square, the second
// adds a blue square. With -preserve both squares stay on screen;
// without it only the blue one does. Clicks leave dots, every event is
// logged, and Escape or closing the window quits.
//
// Run headless and save the last frame:
//
//	GGWIN_PLATFORM=headless ggwindemo -frames 5 -output demo.png
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggwin"
	"github.com/gogpu/ggwin/event"
	"github.com/gogpu/ggwin/platform/headless"
	_ "github.com/gogpu/ggwin/platform/sdl"
	_ "github.com/gogpu/ggwin/platform/term"
)

func main() {
	var (
		width    = flag.Int("width", 400, "window width in points")
		height   = flag.Int("height", 300, "window height in points")
		name     = flag.String("platform", "", "platform backend (sdl, term, headless)")
		preserve = flag.Bool("preserve", true, "preserve the drawing buffer between frames")
		frames   = flag.Int("frames", 0, "quit after this many frames (0 runs until closed)")
		output   = flag.String("output", "", "save the last frame as PNG (headless only)")
		verbose  = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		ggwin.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	app, err := ggwin.New(ggwin.WithPlatformName(*name))
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("Close: %v", err)
		}
	}()

	win := app.MustNewWindow(*width, *height, "ggwin demo", ggwin.WithPreserveDrawingBuffer(*preserve))
	win.Show()

	d := &demo{app: app, win: win, limit: *frames}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, d.tick); err != nil && ctx.Err() == nil {
		log.Printf("Run: %v", err)
	}

	if *output != "" {
		save(app, win, *output)
	}
	if !win.Destroyed() {
		win.Destroy()
	}
}

type demo struct {
	app   *ggwin.App
	win   *ggwin.Window
	limit int

	frame   int
	dots    [][2]float64
	fillErr bool
}

func (d *demo) tick() error {
	for {
		e, ok := d.win.PollEvent()
		if !ok {
			return nil
		}
		if e.Kind != event.FrameReady && e.Kind != event.PointerMove {
			log.Printf("event: %v", e)
		}

		switch e.Kind {
		case event.PointerDown:
			d.dots = append(d.dots, [2]float64{e.X, e.Y})
		case event.KeyDown:
			if e.Key == "Escape" {
				d.win.Close()
			}
		case event.FrameReady:
			d.draw()
			if d.limit > 0 && d.frame >= d.limit {
				d.app.Quit()
			}
		case event.Close:
			d.app.Quit()
			return nil
		}
	}
}

func (d *demo) draw() {
	scale := d.win.ScaleFactor()
	drawn := d.win.Frame(func(dc *gg.Context) {
		dc.Scale(scale, scale)
		switch d.frame {
		case 0:
			dc.ClearWithColor(gg.White)
			dc.SetRGB(1, 0, 0)
			dc.DrawRectangle(20, 50, 150, 150)
			d.fill(dc)
		case 1:
			dc.SetRGB(0, 0, 1)
			dc.DrawRectangle(230, 50, 150, 150)
			d.fill(dc)
		}
		dc.SetRGB(0, 0.6, 0)
		for _, p := range d.dots {
			dc.DrawCircle(p[0], p[1], 4)
			d.fill(dc)
		}
		d.dots = d.dots[:0]
	})
	if drawn {
		d.frame++
	}
}

// fill fills the current path.
func (d *demo) fill(dc *gg.Context) {
	d.reportFill(dc.Fill())
}

// reportFill logs the first fill failure only; a broken renderer fails
// every fill of every frame.
func (d *demo) reportFill(err error) {
	if err == nil || d.fillErr {
		return
	}
	d.fillErr = true
	log.Printf("Fill: %v", err)
}

func save(app *ggwin.App, win *ggwin.Window, path string) {
	hp, ok := app.Platform().(*headless.Platform)
	if !ok {
		log.Printf("-output needs the headless platform, got %s", app.Platform().Name())
		return
	}
	hw := hp.Window(win.ID())
	if hw == nil {
		log.Printf("Window gone, %s not written", path)
		return
	}
	front := hw.Front()
	if front == nil {
		log.Printf("Nothing presented, %s not written", path)
		return
	}
	if err := gg.FromImage(front).SavePNG(path); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d)", path, front.Bounds().Dx(), front.Bounds().Dy())
}
