// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"encoding/binary"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"

	"github.com/gogpu/surfacehost/native"
	"github.com/gogpu/surfacehost/platform/headless"
)

const spirvMagic = 0x07230203

var opaqueConfig = gputypes.SurfaceConfiguration{AlphaMode: gputypes.CompositeAlphaModeOpaque}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := New(opts...)
	if err := e.Init(nil); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	t.Cleanup(func() { _ = e.Destroy() })
	return e
}

// TestInitCompilesProgram tests the WGSL compile at Init.
func TestInitCompilesProgram(t *testing.T) {
	e := newEngine(t)
	p := e.Program()
	if len(p) < 20 || len(p)%4 != 0 {
		t.Fatalf("Program() length = %d, want a SPIR-V module", len(p))
	}
	if magic := binary.LittleEndian.Uint32(p); magic != spirvMagic {
		t.Errorf("SPIR-V magic = %#x, want %#x", magic, spirvMagic)
	}
}

// TestInitFontFromAssets tests loading the label font from assets.
func TestInitFontFromAssets(t *testing.T) {
	e := New()
	assets := fstest.MapFS{FontPath: {Data: goregular.TTF}}
	if err := e.Init(assets); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	if e.source == nil {
		t.Error("font source not loaded")
	}
	_ = e.Destroy()

	bad := fstest.MapFS{FontPath: {Data: []byte("not a font")}}
	if err := New().Init(bad); err == nil {
		t.Error("Init() with a corrupt font = nil, want error")
	}
}

// TestCreateSwapChainUnsupported tests that a non-lockable surface is rejected.
func TestCreateSwapChainUnsupported(t *testing.T) {
	e := newEngine(t)
	err := e.CreateSwapChain(plainSurface{}, opaqueConfig)
	if !errors.Is(err, ErrUnsupportedSurface) {
		t.Errorf("CreateSwapChain() = %v, want ErrUnsupportedSurface", err)
	}
}

type plainSurface struct{}

func (plainSurface) IsValid() bool { return true }
func (plainSurface) Release()      {}

// TestResizeWindowInvalid tests dimension validation.
func TestResizeWindowInvalid(t *testing.T) {
	e := newEngine(t)
	if err := e.ResizeWindow(-1, 100); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("ResizeWindow(-1, 100) = %v, want ErrInvalidDimensions", err)
	}
	if err := New().ResizeWindow(10, 10); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ResizeWindow before Init = %v, want ErrNotInitialized", err)
	}
}

// TestGameLoopPresents tests that a frame reaches the surface.
func TestGameLoopPresents(t *testing.T) {
	e := newEngine(t)
	s := headless.NewSurface(200, 300)

	// No surface yet: skipped.
	if err := e.GameLoop(0); err != nil {
		t.Fatalf("GameLoop() without surface = %v", err)
	}

	if err := e.CreateSwapChain(s, opaqueConfig); err != nil {
		t.Fatal(err)
	}
	// No size yet: skipped.
	if err := e.GameLoop(1); err != nil {
		t.Fatal(err)
	}
	if s.Posts() != 0 {
		t.Fatalf("Posts() = %d before resize, want 0", s.Posts())
	}

	if err := e.ResizeWindow(400, 600); err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		if err := e.GameLoop(int64(i) * 16_000_000); err != nil {
			t.Fatalf("GameLoop() = %v", err)
		}
	}
	if s.Posts() != 3 || e.Frames() != 3 {
		t.Errorf("Posts() = %d, Frames() = %d, want 3", s.Posts(), e.Frames())
	}

	snap := s.Snapshot()
	if snap.Bounds().Dx() != 200 || snap.Bounds().Dy() != 300 {
		t.Errorf("snapshot bounds = %v, want 200x300", snap.Bounds())
	}
	bg := e.opts.background
	r, g, b, _ := snap.At(0, 0).RGBA()
	if !near(r, bg.R) || !near(g, bg.G) || !near(b, bg.B) {
		t.Errorf("corner pixel = (%d, %d, %d), want background %v", r>>8, g>>8, b>>8, bg)
	}

	if img := e.Image(); img == nil || img.Bounds().Dx() != 400 {
		t.Error("Image() should be window sized")
	}
}

func near(v uint32, f float64) bool {
	d := int(v>>8) - int(f*255+0.5)
	return d >= -3 && d <= 3
}

// TestGameLoopReleasedSurface tests that frames are skipped once the
// surface is gone.
func TestGameLoopReleasedSurface(t *testing.T) {
	e := newEngine(t)
	s := headless.NewSurface(10, 10)
	_ = e.CreateSwapChain(s, opaqueConfig)
	_ = e.ResizeWindow(10, 10)
	s.Release()
	if err := e.GameLoop(0); err != nil {
		t.Errorf("GameLoop() on released surface = %v, want nil", err)
	}
	if err := e.DestroySwapChain(); err != nil {
		t.Fatal(err)
	}
}

// TestTouchActionTapsTile tests that a press and release on the tile left
// of the blank slides it.
func TestTouchActionTapsTile(t *testing.T) {
	e := newEngine(t)
	if err := e.ResizeWindow(400, 600); err != nil {
		t.Fatal(err)
	}
	lay := e.layout()
	x := float32(lay.x + 2.5*lay.cell)
	y := float32(lay.y + 3.5*lay.cell)

	_ = e.TouchAction(native.ActionDown, x, y)
	_ = e.TouchAction(native.ActionMove, x, y)
	_ = e.TouchAction(native.ActionUp, x, y)

	if e.Board().At(3, 2) != 0 || e.Board().At(3, 3) != 15 {
		t.Errorf("tile did not slide: %v", e.Board().tiles)
	}
	if e.Board().Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", e.Board().Moves())
	}

	// Press on one tile and release on another: no move.
	_ = e.TouchAction(native.ActionDown, x, y)
	_ = e.TouchAction(native.ActionUp, float32(lay.x+0.5*lay.cell), y)
	if e.Board().Moves() != 1 {
		t.Errorf("drag between tiles moved: Moves() = %d", e.Board().Moves())
	}

	// Outside the board.
	_ = e.TouchAction(native.ActionDown, 1, 1)
	_ = e.TouchAction(native.ActionUp, 1, 1)
	if e.Board().Moves() != 1 {
		t.Errorf("tap outside the board moved: Moves() = %d", e.Board().Moves())
	}
}

// TestShuffleAndHUD tests the shuffle command and the status line.
func TestShuffleAndHUD(t *testing.T) {
	e := newEngine(t, WithSeed(42), WithShuffleSteps(64), WithLanguage(language.English))
	if got := e.HUD(); got != "Moves: 0" {
		t.Errorf("HUD() = %q, want %q", got, "Moves: 0")
	}
	if err := e.Shuffle(); err != nil {
		t.Fatal(err)
	}
	if e.Board().Solved() {
		t.Error("board solved after Shuffle")
	}

	e.board.Reset()
	e.board.moves = 1234
	if got := e.HUD(); got != "Solved in 1,234 moves" {
		t.Errorf("HUD() = %q, want %q", got, "Solved in 1,234 moves")
	}
}

// TestRegisteredAsSoftware tests the registry entry.
func TestRegisteredAsSoftware(t *testing.T) {
	eng, err := native.New("software")
	if err != nil {
		t.Fatalf("native.New() = %v", err)
	}
	if _, ok := eng.(*Engine); !ok {
		t.Errorf("native.New() returned %T, want *Engine", eng)
	}
}

// TestDestroyIdempotent tests releasing twice.
func TestDestroyIdempotent(t *testing.T) {
	e := New()
	if err := e.Init(nil); err != nil {
		t.Fatal(err)
	}
	_ = e.ResizeWindow(8, 8)
	if err := e.Destroy(); err != nil {
		t.Errorf("Destroy() = %v", err)
	}
	if err := e.Destroy(); err != nil {
		t.Errorf("second Destroy() = %v", err)
	}
}

// TestResizeWindowZero tests that an empty window is accepted and draws
// nothing until it has an area again.
func TestResizeWindowZero(t *testing.T) {
	e := newEngine(t)
	s := headless.NewSurface(40, 40)
	if err := e.CreateSwapChain(s, opaqueConfig); err != nil {
		t.Fatal(err)
	}
	if err := e.ResizeWindow(0, 0); err != nil {
		t.Fatalf("ResizeWindow(0, 0) = %v, want nil", err)
	}
	if err := e.GameLoop(0); err != nil || s.Posts() != 0 {
		t.Fatalf("GameLoop() at 0x0 = %v, Posts() = %d, want nil, 0", err, s.Posts())
	}

	if err := e.ResizeWindow(40, 40); err != nil {
		t.Fatal(err)
	}
	if err := e.ResizeWindow(40, 0); err != nil {
		t.Fatalf("ResizeWindow(40, 0) = %v, want nil", err)
	}
	_ = e.GameLoop(1)
	if s.Posts() != 0 {
		t.Errorf("Posts() = %d after collapsing the window, want 0", s.Posts())
	}

	_ = e.ResizeWindow(40, 40)
	_ = e.GameLoop(2)
	if s.Posts() != 1 {
		t.Errorf("Posts() = %d after restoring the window, want 1", s.Posts())
	}
}

// TestSwapChainConfigAlpha tests that premultiplied alpha clears to
// transparent and opaque alpha to the background.
func TestSwapChainConfigAlpha(t *testing.T) {
	tests := []struct {
		name  string
		alpha gputypes.CompositeAlphaMode
		want  uint32
	}{
		{"opaque", gputypes.CompositeAlphaModeOpaque, 0xffff},
		{"premultiplied", gputypes.CompositeAlphaModePremultiplied, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			s := headless.NewSurface(50, 50)
			if err := e.CreateSwapChain(s, gputypes.SurfaceConfiguration{AlphaMode: tt.alpha}); err != nil {
				t.Fatal(err)
			}
			_ = e.ResizeWindow(50, 50)
			if err := e.GameLoop(0); err != nil {
				t.Fatal(err)
			}
			if _, _, _, a := s.Snapshot().At(0, 0).RGBA(); a != tt.want {
				t.Errorf("corner alpha = %#x, want %#x", a, tt.want)
			}
		})
	}
}

// TestSwapChainConfigSize tests that a configured size fixes the render
// size and that pointer coordinates are scaled into it.
func TestSwapChainConfigSize(t *testing.T) {
	e := newEngine(t)
	s := headless.NewSurface(400, 600)
	cfg := gputypes.SurfaceConfiguration{AlphaMode: gputypes.CompositeAlphaModeOpaque, Width: 200, Height: 300}
	if err := e.CreateSwapChain(s, cfg); err != nil {
		t.Fatal(err)
	}
	if err := e.ResizeWindow(400, 600); err != nil {
		t.Fatal(err)
	}
	if img := e.Image(); img == nil || img.Bounds().Dx() != 200 || img.Bounds().Dy() != 300 {
		t.Fatalf("Image() bounds = %v, want 200x300", img.Bounds())
	}

	// The tile left of the blank, in window coordinates.
	lay := e.layout()
	x := float32(2 * (lay.x + 2.5*lay.cell))
	y := float32(2 * (lay.y + 3.5*lay.cell))
	_ = e.TouchAction(native.ActionDown, x, y)
	_ = e.TouchAction(native.ActionUp, x, y)
	if e.Board().Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", e.Board().Moves())
	}

	if err := e.GameLoop(0); err != nil {
		t.Fatal(err)
	}
	if b := s.Snapshot().Bounds(); b.Dx() != 400 {
		t.Errorf("surface bounds = %v, want 400 wide", b)
	}
}

// TestPipelineLayout tests the entry points and uniform reflected from the
// tile program.
func TestPipelineLayout(t *testing.T) {
	e := newEngine(t)
	p := e.Pipeline()
	if p == nil {
		t.Fatal("Pipeline() = nil after Init")
	}
	if p.Vertex != "vs_main" || p.Fragment != "fs_main" {
		t.Errorf("entry points = %q, %q, want vs_main, fs_main", p.Vertex, p.Fragment)
	}
	if p.Uniform.Group != 0 || p.Uniform.Binding != 0 {
		t.Errorf("Uniform = %+v, want group 0 binding 0", p.Uniform)
	}
	if New().Pipeline() != nil || New().Program() != nil {
		t.Error("Pipeline() before Init should be nil")
	}
}

// TestCompilePipelineRejects tests programs missing a stage or the tile
// uniform.
func TestCompilePipelineRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "fn vs_main( {"},
		{"no fragment", `
struct U { color: vec4<f32>, }
@group(0) @binding(0) var<uniform> tile: U;
@vertex
fn vs_main() -> @builtin(position) vec4<f32> {
    return tile.color;
}
`},
		{"no uniform", `
@vertex
fn vs_main() -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := compilePipeline(tt.src); !errors.Is(err, ErrInvalidProgram) {
				t.Errorf("compilePipeline() = %v, want ErrInvalidProgram", err)
			}
		})
	}
}

// TestGameLoopLockFailure tests that GameLoop reports presentation failures.
func TestGameLoopLockFailure(t *testing.T) {
	e := newEngine(t)
	s := headless.NewSurface(10, 10)
	_ = e.CreateSwapChain(s, opaqueConfig)
	_ = e.ResizeWindow(10, 10)
	if _, err := s.LockCanvas(); err != nil {
		t.Fatal(err)
	}
	if err := e.GameLoop(0); !errors.Is(err, headless.ErrAlreadyLocked) {
		t.Errorf("GameLoop() on a locked surface = %v, want ErrAlreadyLocked", err)
	}
}
