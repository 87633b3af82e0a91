// Command tilehost runs the sliding-tile engine on an in-memory surface.
//
// It attaches the configured surface kind, plays a few scripted taps and a
// shuffle while the frame loop runs, then tears everything down in order and
// writes the last posted frame as a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/surfacehost"
	"github.com/gogpu/surfacehost/config"
	_ "github.com/gogpu/surfacehost/engine/soft"
	"github.com/gogpu/surfacehost/frameloop"
	"github.com/gogpu/surfacehost/host"
	"github.com/gogpu/surfacehost/internal/looper"
	"github.com/gogpu/surfacehost/native"
	"github.com/gogpu/surfacehost/platform/headless"
)

var errLooperStopped = errors.New("tilehost: looper stopped")

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		engineName = flag.String("engine", "", "engine name (overrides config)")
		kind       = flag.String("kind", "", "surface kind: direct, texture or holder (overrides config)")
		frames     = flag.Int("frames", -1, "frames to run, 0 until interrupted (overrides config)")
		assets     = flag.String("assets", ".", "asset directory")
		output     = flag.String("output", "tilehost.png", "output file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *engineName != "" {
		cfg.Engine = *engineName
	}
	if *kind != "" {
		cfg.Surface.Kind = *kind
	}
	if *frames >= 0 {
		cfg.Frame.Count = *frames
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	surfacehost.SetLogger(logger)

	if err := run(cfg, *assets, *output); err != nil {
		logger.Error("tilehost failed", slog.Any("err", err))
		os.Exit(1)
	}
}

// surfaceSource is the headless stand-in for the window system.
type surfaceSource struct {
	target   surfacehost.Target
	show     func(width, height int)
	hide     func()
	snapshot func() *image.RGBA
}

func newSurfaceSource(kind string) surfaceSource {
	switch kind {
	case config.KindTexture:
		view := headless.NewTextureView(0, 0)
		return surfaceSource{
			target: surfacehost.Texture(view),
			show: func(w, h int) {
				view.Resize(w, h)
				view.Show()
			},
			hide: view.Hide,
			snapshot: func() *image.RGBA {
				st := view.HeadlessTexture()
				if st == nil || len(st.Surfaces()) == 0 {
					return nil
				}
				surfaces := st.Surfaces()
				return surfaces[len(surfaces)-1].Snapshot()
			},
		}
	case config.KindHolder:
		holder := headless.NewHolder()
		return surfaceSource{
			target:   surfacehost.Holder(holder),
			show:     holder.Create,
			hide:     holder.Destroy,
			snapshot: holderSnapshot(holder),
		}
	default:
		view := headless.NewSurfaceView()
		return surfaceSource{
			target:   surfacehost.Direct(view),
			show:     view.HeadlessHolder().Create,
			hide:     view.HeadlessHolder().Destroy,
			snapshot: holderSnapshot(view.HeadlessHolder()),
		}
	}
}

func holderSnapshot(h *headless.Holder) func() *image.RGBA {
	return func() *image.RGBA {
		if s := h.HeadlessSurface(); s != nil {
			return s.Snapshot()
		}
		return nil
	}
}

// frameCounter stops the run after limit frames.
type frameCounter struct {
	native.Engine
	limit   int
	frames  int
	reached chan struct{}
}

func (c *frameCounter) GameLoop(frameTimeNanos int64) error {
	if err := c.Engine.GameLoop(frameTimeNanos); err != nil {
		return err
	}
	c.frames++
	if c.frames == c.limit {
		close(c.reached)
	}
	return nil
}

func run(cfg *config.Config, assets, output string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := native.New(cfg.Engine)
	if err != nil {
		return fmt.Errorf("available engines %v: %w", native.Available(), err)
	}
	counter := &frameCounter{Engine: engine, limit: cfg.Frame.Count, reached: make(chan struct{})}

	loop := looper.New(0)
	sched := frameloop.NewTickerScheduler(loop, cfg.Frame.Interval)

	window := &headless.Window{
		W:            cfg.Window.Width,
		H:            cfg.Window.Height,
		ChromeHeight: cfg.Window.ChromeHeight,
	}
	policy, _ := cfg.Policy()
	screen := host.New(counter, sched,
		host.WithErrorPolicy(policy),
		host.WithWindow(window),
		host.WithSurfaceOptions(cfg.SurfaceOptions()...),
	)
	source := newSurfaceSource(cfg.Surface.Kind)
	content := window.ContentBounds()

	g, gctx := errgroup.WithContext(ctx)
	// The looper ignores the signal so teardown can still run on it after
	// an interrupt. The script goroutine quits it.
	g.Go(func() error {
		return loop.Run(context.WithoutCancel(gctx))
	})
	g.Go(func() error {
		defer loop.Quit()
		defer sched.Stop()

		errc := make(chan error, 1)
		posted := loop.Post(func() {
			if err := screen.Create(os.DirFS(assets), source.target); err != nil {
				errc <- err
				return
			}
			source.show(content.Dx(), content.Dy())
			screen.Resume()
			errc <- nil
		})
		if !posted {
			return errLooperStopped
		}
		if err := <-errc; err != nil {
			return err
		}
		sched.Start()

		// Slide the tile left of the blank, then the one above the new
		// blank, then shuffle.
		start := time.Now()
		for _, p := range []image.Point{
			{X: content.Dx() * 5 / 8, Y: content.Min.Y + content.Dy()*3/4},
			{X: content.Dx() * 5 / 8, Y: content.Min.Y + content.Dy()*5/8},
		} {
			for _, typ := range []gpucontext.PointerEventType{gpucontext.PointerDown, gpucontext.PointerUp} {
				ev := gpucontext.PointerEvent{
					Type:      typ,
					PointerID: 1,
					X:         float64(p.X),
					Y:         float64(p.Y),
					Pressure:  0.5,
					IsPrimary: true,
					Timestamp: time.Since(start),
				}
				loop.Post(func() { screen.HandlePointer(ev) })
			}
		}
		loop.Post(func() {
			if err := screen.Shuffle(); err != nil {
				surfacehost.Logger().Warn("tilehost: shuffle", slog.Any("err", err))
			}
		})

		var reached <-chan struct{}
		if cfg.Frame.Count > 0 {
			reached = counter.reached
		}
		select {
		case <-reached:
		case <-screen.Done():
		case <-gctx.Done():
		}

		type result struct {
			img *image.RGBA
			err error
		}
		resc := make(chan result, 1)
		posted = loop.Post(func() {
			screen.Pause()
			img := source.snapshot()
			source.hide()
			err := errors.Join(screen.Err(), screen.Destroy())
			resc <- result{img: img, err: err}
		})
		if !posted {
			return errLooperStopped
		}
		res := <-resc
		if res.err != nil {
			return res.err
		}
		if res.img != nil {
			if err := writePNG(output, res.img); err != nil {
				return err
			}
			surfacehost.Logger().Info("tilehost: snapshot saved",
				"path", output, "frames", counter.frames, "size", res.img.Bounds().Size())
		}
		return nil
	})
	return g.Wait()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is provided by the user
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
