// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/message"

	"github.com/gogpu/surfacehost"
	"github.com/gogpu/surfacehost/native"
	"github.com/gogpu/surfacehost/platform"
)

//go:embed shaders/tile.wgsl
var tileShader string

// FontPath is where Init looks for the tile label font in the assets.
const FontPath = "fonts/tile.ttf"

func init() {
	native.Register("software", func() native.Engine { return New() })
}

// Engine renders the puzzle on the CPU.
//
// Engine is NOT safe for concurrent use.
type Engine struct {
	opts options

	board   *Board
	rng     *rand.Rand
	printer *message.Printer

	pipeline *Pipeline
	source   *text.FontSource
	face     text.Face

	ctx     *gg.Context
	surface platform.Lockable
	config  gputypes.SurfaceConfiguration

	// width and height are the render size, winW and winH the window size
	// pointer coordinates arrive in.
	width  int
	height int
	winW   int
	winH   int

	pressed   int
	frames    int
	lastFrame int64
}

var _ native.Engine = (*Engine)(nil)

// New creates an engine. Init must be called before use.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		opts:    o,
		board:   NewBoard(o.size),
		rng:     rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)), //nolint:gosec // G404: puzzle shuffle needs no crypto
		printer: message.NewPrinter(o.lang),
		pressed: -1,
	}
}

// Init compiles the tile program and loads the label font from assets,
// falling back to Go Regular when assets has no FontPath.
func (e *Engine) Init(assets fs.FS) error {
	pipeline, err := compilePipeline(tileShader)
	if err != nil {
		return err
	}
	e.pipeline = pipeline

	data := goregular.TTF
	if assets != nil {
		b, err := fs.ReadFile(assets, FontPath)
		switch {
		case err == nil:
			data = b
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("soft: read font: %w", err)
		}
	}
	source, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("soft: load font: %w", err)
	}
	e.source = source

	surfacehost.Logger().Info("soft: initialized",
		"board", e.board.Size(),
		"program_bytes", len(pipeline.SPIRV),
		"uniform", fmt.Sprintf("@group(%d) @binding(%d)", pipeline.Uniform.Group, pipeline.Uniform.Binding),
		"font", source.Name())
	return nil
}

// Destroy releases the drawing context and the font.
func (e *Engine) Destroy() error {
	var errs []error
	if e.ctx != nil {
		errs = append(errs, e.ctx.Close())
		e.ctx = nil
	}
	if e.source != nil {
		errs = append(errs, e.source.Close())
		e.source = nil
	}
	e.face = nil
	e.surface = nil
	return errors.Join(errs...)
}

// CreateSwapChain binds the engine to surface, which must be lockable.
//
// A premultiplied AlphaMode clears frames to transparent. A non-zero
// Width and Height fix the render size; frames are scaled to the surface
// buffer either way.
func (e *Engine) CreateSwapChain(surface platform.Surface, config gputypes.SurfaceConfiguration) error {
	l, ok := surface.(platform.Lockable)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedSurface, surface)
	}
	e.surface = l
	e.config = config
	surfacehost.Logger().Debug("soft: swap chain created",
		"alpha", config.AlphaMode, "width", config.Width, "height", config.Height)
	return nil
}

// DestroySwapChain forgets the surface.
func (e *Engine) DestroySwapChain() error {
	e.surface = nil
	return nil
}

// ResizeWindow resizes the drawing context and rescales the label font.
// A zero dimension is accepted; nothing is drawn until the window has an
// area again.
func (e *Engine) ResizeWindow(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if e.source == nil {
		return ErrNotInitialized
	}
	e.winW, e.winH = width, height
	if width == 0 || height == 0 {
		e.width, e.height = 0, 0
		return nil
	}

	rw, rh := width, height
	if e.config.Width > 0 && e.config.Height > 0 {
		rw, rh = int(e.config.Width), int(e.config.Height)
	}
	if e.ctx == nil {
		e.ctx = gg.NewContext(rw, rh)
	} else if err := e.ctx.Resize(rw, rh); err != nil {
		return fmt.Errorf("soft: resize: %w", err)
	}
	e.width, e.height = rw, rh
	e.face = e.source.Face(e.layout().cell * 0.4)
	return nil
}

// GameLoop draws one frame and posts it to the surface. Frames without a
// surface or a size are skipped.
func (e *Engine) GameLoop(frameTimeNanos int64) error {
	if e.surface == nil || e.ctx == nil || !e.surface.IsValid() || e.width == 0 || e.height == 0 {
		return nil
	}
	e.lastFrame = frameTimeNanos
	if err := e.draw(); err != nil {
		return err
	}
	if err := e.present(); err != nil {
		return err
	}
	e.frames++
	return nil
}

// TouchAction taps the tile that was both pressed and released.
func (e *Engine) TouchAction(action native.Action, x, y float32) error {
	cell := e.layout().cellAt(e.toRender(x, y))
	switch action {
	case native.ActionDown:
		e.pressed = cell
	case native.ActionUp:
		if cell >= 0 && cell == e.pressed {
			n := e.board.Size()
			if e.board.Tap(cell/n, cell%n) {
				surfacehost.Logger().Debug("soft: tile moved", "moves", e.board.Moves())
			}
		}
		e.pressed = -1
	}
	return nil
}

// Shuffle scrambles the board.
func (e *Engine) Shuffle() error {
	e.board.Shuffle(e.rng, e.opts.shuffleSteps)
	surfacehost.Logger().Info("soft: shuffled", "steps", e.opts.shuffleSteps)
	return nil
}

// Board returns the puzzle state.
func (e *Engine) Board() *Board {
	return e.board
}

// Frames returns the number of frames presented.
func (e *Engine) Frames() int {
	return e.frames
}

// Program returns the compiled SPIR-V tile program.
func (e *Engine) Program() []byte {
	if e.pipeline == nil {
		return nil
	}
	return e.pipeline.SPIRV
}

// Pipeline returns the compiled tile program and its layout, or nil before
// Init.
func (e *Engine) Pipeline() *Pipeline {
	return e.pipeline
}

// Image returns the last rendered frame at window size, or nil.
func (e *Engine) Image() image.Image {
	if e.ctx == nil {
		return nil
	}
	return e.ctx.Image()
}

// HUD returns the status line drawn above the board.
func (e *Engine) HUD() string {
	if e.board.Solved() && e.board.Moves() > 0 {
		return e.printer.Sprintf("Solved in %d moves", e.board.Moves())
	}
	return e.printer.Sprintf("Moves: %d", e.board.Moves())
}

func (e *Engine) draw() error {
	dc := e.ctx
	lay := e.layout()
	n := e.board.Size()

	if e.config.AlphaMode == gputypes.CompositeAlphaModePremultiplied {
		dc.ClearWithColor(gg.Transparent)
	} else {
		dc.ClearWithColor(e.opts.background)
	}

	dc.SetRGB(0.15, 0.17, 0.22)
	dc.DrawRoundedRectangle(lay.x-lay.gap, lay.y-lay.gap, lay.side+2*lay.gap, lay.side+2*lay.gap, lay.gap*2)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("soft: fill board: %w", err)
	}

	for row := range n {
		for col := range n {
			t := e.board.At(row, col)
			if t == 0 {
				continue
			}
			x := lay.x + float64(col)*lay.cell + lay.gap/2
			y := lay.y + float64(row)*lay.cell + lay.gap/2
			size := lay.cell - lay.gap

			dc.SetColor(e.opts.tile)
			if t == row*n+col+1 {
				dc.SetColor(e.opts.placed)
			}
			dc.DrawRoundedRectangle(x, y, size, size, size*0.12)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("soft: fill tile %d: %w", t, err)
			}

			if e.face != nil {
				dc.SetRGB(1, 1, 1)
				dc.SetFont(e.face)
				dc.DrawStringAnchored(e.printer.Sprint(t), x+size/2, y+size/2, 0.5, 0.5)
			}
		}
	}

	if e.face != nil {
		dc.SetRGB(0.9, 0.9, 0.9)
		dc.SetFont(e.face)
		dc.DrawStringAnchored(e.HUD(), float64(e.width)/2, lay.y/2, 0.5, 0.5)
	}
	return nil
}

// toRender maps window coordinates to render coordinates.
func (e *Engine) toRender(x, y float32) (float64, float64) {
	fx, fy := float64(x), float64(y)
	if e.winW > 0 && e.winH > 0 {
		fx *= float64(e.width) / float64(e.winW)
		fy *= float64(e.height) / float64(e.winH)
	}
	return fx, fy
}

// present scales the frame onto the surface buffer, which may be sized
// differently from the window.
func (e *Engine) present() error {
	canvas, err := e.surface.LockCanvas()
	if err != nil {
		return fmt.Errorf("soft: lock canvas: %w", err)
	}
	src := e.ctx.Image()
	xdraw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	if err := e.surface.UnlockCanvasAndPost(); err != nil {
		return fmt.Errorf("soft: post canvas: %w", err)
	}
	surfacehost.Logger().Debug("soft: frame", "t", e.lastFrame, slog.Int("frame", e.frames))
	return nil
}

// layout is the board geometry for the current window size.
type layout struct {
	x, y float64 // board origin
	side float64
	cell float64
	gap  float64
	n    int
}

func (e *Engine) layout() layout {
	n := e.board.Size()
	w, h := float64(e.width), float64(e.height)
	hud := h / 10
	side := min(w, h-hud) * 0.9
	side = max(side, 0)
	cell := side / float64(n)
	return layout{
		x:    (w - side) / 2,
		y:    hud + (h-hud-side)/2,
		side: side,
		cell: cell,
		gap:  cell * 0.06,
		n:    n,
	}
}

// cellAt returns the board index under x, y, or -1.
func (l layout) cellAt(x, y float64) int {
	if l.cell <= 0 || x < l.x || y < l.y || x >= l.x+l.side || y >= l.y+l.side {
		return -1
	}
	col := int((x - l.x) / l.cell)
	row := int((y - l.y) / l.cell)
	if col >= l.n || row >= l.n {
		return -1
	}
	return row*l.n + col
}
