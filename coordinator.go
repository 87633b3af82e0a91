// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surfacehost

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/surfacehost/platform"
)

// binding is the coordinator's exclusive link to one surface source.
type binding struct {
	target   Target
	provider provider

	// unbind unregisters the listener installed on the source.
	unbind func()
}

// Coordinator manages the native surface of a SurfaceView, TextureView or
// SurfaceHolder and reports its lifecycle to a RenderCallback.
//
// A Coordinator is bound to at most one surface source at a time and owns
// the swap-chain state: IsReadyToRender reports true between the callback's
// OnNativeWindowChanged and OnDetachedFromSurface.
//
// Coordinator is NOT safe for concurrent use. All methods and all platform
// notifications must be delivered on the UI goroutine.
//
// Example:
//
//	c := surfacehost.New()
//	c.SetRenderCallback(screen)
//	if err := c.AttachTo(surfacehost.Direct(view)); err != nil {
//	    return err
//	}
//	defer c.Detach() // always detach before destroying the engine
type Coordinator struct {
	policy       ErrorPolicy
	onError      func(error)
	callback     RenderCallback
	binding      *binding
	hasSwapChain bool
	width        int
	height       int
	opaque       bool
	mediaOverlay bool
}

// New creates a Coordinator with nothing attached.
func New(opts ...Option) *Coordinator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Coordinator{
		policy:       o.policy,
		onError:      o.onError,
		callback:     o.callback,
		opaque:       o.opaque,
		mediaOverlay: o.mediaOverlay,
	}
	if o.width > 0 && o.height > 0 {
		c.width, c.height = o.width, o.height
	}
	return c
}

// ErrorPolicy returns the ordering check policy.
func (c *Coordinator) ErrorPolicy() ErrorPolicy {
	return c.policy
}

// SetRenderCallback sets the callback notified of surface changes.
// Passing nil clears it.
func (c *Coordinator) SetRenderCallback(cb RenderCallback) {
	c.callback = cb
}

// RenderCallback returns the registered callback, or nil.
func (c *Coordinator) RenderCallback() RenderCallback {
	return c.callback
}

// IsReadyToRender reports whether a swap chain currently exists.
func (c *Coordinator) IsReadyToRender() bool {
	return c.hasSwapChain
}

// BoundKind returns the kind of the attached source, or KindNone.
func (c *Coordinator) BoundKind() Kind {
	if c.binding == nil {
		return KindNone
	}
	return c.binding.provider.kind()
}

// SetDesiredSize sets the size of the render target buffers. If a source
// is attached its buffer is resized immediately. The coordinator itself
// does not raise OnResized; a texture source does, because its platform
// never reports programmatic buffer changes.
func (c *Coordinator) SetDesiredSize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	c.width, c.height = width, height
	if c.binding == nil {
		return nil
	}
	return c.binding.provider.resize(width, height)
}

// DesiredWidth returns the requested buffer width.
func (c *Coordinator) DesiredWidth() int {
	return c.width
}

// DesiredHeight returns the requested buffer height.
func (c *Coordinator) DesiredHeight() int {
	return c.height
}

func (c *Coordinator) hasDesiredSize() bool {
	return c.width > 0 && c.height > 0
}

// IsOpaque reports whether the render target is opaque.
func (c *Coordinator) IsOpaque() bool {
	return c.opaque
}

// SetOpaque controls whether the render target is opaque. It must be
// called before AttachTo to take effect.
func (c *Coordinator) SetOpaque(opaque bool) {
	c.opaque = opaque
}

// IsMediaOverlay reports whether a direct surface is placed as a media overlay.
func (c *Coordinator) IsMediaOverlay() bool {
	return c.mediaOverlay
}

// SetMediaOverlay controls whether a translucent direct surface is placed
// above other surfaces but below the window. It must be called before
// AttachTo and has no effect on texture targets.
func (c *Coordinator) SetMediaOverlay(overlay bool) {
	c.mediaOverlay = overlay
}

// SwapChainConfig returns the surface configuration that honors the
// coordinator's options: opaque or premultiplied alpha, vsync presentation,
// and the desired buffer size (zero when unset).
func (c *Coordinator) SwapChainConfig() gputypes.SurfaceConfiguration {
	alpha := gputypes.CompositeAlphaModeOpaque
	if !c.opaque {
		alpha = gputypes.CompositeAlphaModePremultiplied
	}
	return gputypes.SurfaceConfiguration{
		Usage:       gputypes.TextureUsageRenderAttachment,
		Format:      gputypes.TextureFormatRGBA8Unorm,
		Width:       uint32(c.width),  //nolint:gosec // G115: width is never negative
		Height:      uint32(c.height), //nolint:gosec // G115: height is never negative
		PresentMode: gputypes.PresentModeFifo,
		AlphaMode:   alpha,
	}
}

// AttachTo binds the coordinator to t.
//
// Attaching the source that is already bound does nothing. Attaching a
// different source first tears down the current swap chain and unbinds the
// old source. If t already has a live surface, the create and resize
// notifications are delivered before AttachTo returns; if either fails, t
// is left unbound and may be attached again.
//
// The platform object behind t is compared with == to detect
// re-attachment, so it must be of a comparable type; pointers are.
func (c *Coordinator) AttachTo(t Target) error {
	obj := t.object()
	if obj == nil {
		return ErrInvalidTarget
	}
	if !reflect.TypeOf(obj).Comparable() {
		return fmt.Errorf("%w: %T is not comparable", ErrInvalidTarget, obj)
	}
	if c.binding != nil {
		if c.binding.target.object() == obj {
			return nil
		}
		if err := c.destroySwapChain(); err != nil {
			return err
		}
		c.unbind()
	}

	Logger().Info("surfacehost: attached", "kind", t.kind)

	var err error
	switch t.kind {
	case KindDirect:
		err = c.attachDirect(t)
	case KindTexture:
		err = c.attachTexture(t)
	default:
		err = c.attachHolder(t, t.holder, &holderProvider{holder: t.holder})
	}
	if err != nil {
		if aerr := c.abandon(); aerr != nil {
			err = errors.Join(err, aerr)
		}
		return err
	}
	return nil
}

// abandon drops a binding whose already-live bootstrap failed, so the same
// target can be attached again.
func (c *Coordinator) abandon() error {
	var err error
	if c.hasSwapChain {
		err = c.destroySwapChain()
	} else if c.binding != nil {
		c.binding.provider.detach()
	}
	Logger().Warn("surfacehost: attach failed, binding dropped", "kind", c.BoundKind())
	c.unbind()
	return err
}

// Detach tears down the swap chain and releases the attached source.
// It is safe to call with nothing attached: the callback still receives
// OnDetachedFromSurface.
func (c *Coordinator) Detach() error {
	if err := c.destroySwapChain(); err != nil {
		return err
	}
	if c.binding != nil {
		Logger().Info("surfacehost: detached", "kind", c.binding.provider.kind())
	}
	c.unbind()
	return nil
}

func (c *Coordinator) unbind() {
	if c.binding == nil {
		return
	}
	c.binding.unbind()
	c.binding = nil
}

func (c *Coordinator) pixelFormat() platform.PixelFormat {
	if c.opaque {
		return platform.PixelFormatOpaque
	}
	return platform.PixelFormatTranslucent
}

func (c *Coordinator) attachDirect(t Target) error {
	translucent := !c.opaque
	// The two z-order calls override each other; only one may be made.
	if c.mediaOverlay {
		t.view.SetZOrderMediaOverlay(translucent)
	} else {
		t.view.SetZOrderOnTop(translucent)
	}
	holder := t.view.Holder()
	return c.attachHolder(t, holder, &directProvider{holder: holder})
}

func (c *Coordinator) attachHolder(t Target, holder platform.SurfaceHolder, p provider) error {
	holder.SetFormat(c.pixelFormat())

	b := &binding{target: t, provider: p}
	l := &holderListener{c: c, b: b}
	b.unbind = func() { holder.RemoveCallback(l) }
	c.binding = b

	holder.AddCallback(l)
	if c.hasDesiredSize() {
		holder.SetFixedSize(c.width, c.height)
	}

	// The surface may already exist.
	if s := holder.Surface(); s != nil && s.IsValid() {
		if err := c.createSwapChain(s); err != nil {
			return err
		}
		frame := holder.SurfaceFrame()
		return c.resized(frame.Dx(), frame.Dy())
	}
	return nil
}

func (c *Coordinator) attachTexture(t Target) error {
	view := t.texture
	view.SetOpaque(c.opaque)

	p := &textureProvider{c: c, view: view}
	b := &binding{target: t, provider: p}
	l := &textureListener{c: c, b: b, p: p}
	b.unbind = func() { view.SetSurfaceTextureListener(nil) }
	c.binding = b

	view.SetSurfaceTextureListener(l)

	// The texture may already exist.
	if view.IsAvailable() {
		if st := view.SurfaceTexture(); st != nil {
			w, h := c.width, c.height
			if !c.hasDesiredSize() {
				w, h = view.Size()
			}
			return l.available(st, w, h)
		}
	}
	return nil
}

// createSwapChain notifies the callback first, then flips the ready flag.
func (c *Coordinator) createSwapChain(s platform.Surface) error {
	if c.callback == nil {
		return fmt.Errorf("%w: create swap chain", ErrMissingCallback)
	}
	Logger().Debug("surfacehost: native window changed")
	if err := c.callback.OnNativeWindowChanged(s); err != nil {
		return err
	}
	c.hasSwapChain = true
	return nil
}

// destroySwapChain lets the provider release its resources, then always
// notifies the callback, then clears the ready flag.
func (c *Coordinator) destroySwapChain() error {
	if c.callback == nil {
		return fmt.Errorf("%w: destroy swap chain", ErrMissingCallback)
	}
	if c.binding != nil {
		c.binding.provider.detach()
	}
	Logger().Debug("surfacehost: detached from surface")
	err := c.callback.OnDetachedFromSurface()
	c.hasSwapChain = false
	return err
}

func (c *Coordinator) resized(width, height int) error {
	if c.callback == nil {
		return fmt.Errorf("%w: resize", ErrMissingCallback)
	}
	Logger().Debug("surfacehost: resized", "width", width, "height", height)
	return c.callback.OnResized(width, height)
}

// current reports whether b is still the bound source. Notifications from
// an unbound source are stale and must not revive a torn-down swap chain.
func (c *Coordinator) current(b *binding, event string) bool {
	if c.binding == b {
		return true
	}
	Logger().Warn("surfacehost: ignoring stale surface event", "event", event, "kind", b.provider.kind())
	return false
}

// report hands an error raised by a platform notification to the error
// handler.
func (c *Coordinator) report(err error) {
	if err == nil {
		return
	}
	Logger().Error("surfacehost: surface event failed", slog.Any("err", err))
	if c.onError != nil {
		c.onError(err)
		return
	}
	panic(err)
}

// holderListener maps SurfaceHolder notifications for direct and holder
// sources.
type holderListener struct {
	c *Coordinator
	b *binding
}

func (l *holderListener) SurfaceCreated(h platform.SurfaceHolder) {
	if !l.c.current(l.b, "created") {
		return
	}
	l.c.report(l.c.createSwapChain(h.Surface()))
}

// SurfaceChanged is always called at least once after SurfaceCreated.
func (l *holderListener) SurfaceChanged(_ platform.SurfaceHolder, _ platform.PixelFormat, width, height int) {
	if !l.c.current(l.b, "changed") {
		return
	}
	l.c.report(l.c.resized(width, height))
}

func (l *holderListener) SurfaceDestroyed(platform.SurfaceHolder) {
	if !l.c.current(l.b, "destroyed") {
		return
	}
	l.c.report(l.c.destroySwapChain())
}

// textureListener maps TextureView notifications.
type textureListener struct {
	c *Coordinator
	b *binding
	p *textureProvider
}

func (l *textureListener) available(st platform.SurfaceTexture, width, height int) error {
	c := l.c
	if c.hasDesiredSize() {
		st.SetDefaultBufferSize(c.width, c.height)
	}
	s := st.NewSurface()
	l.p.setSurface(s)
	if err := c.createSwapChain(s); err != nil {
		return err
	}
	// The texture reports no size change at creation time.
	return c.resized(width, height)
}

func (l *textureListener) SurfaceTextureAvailable(st platform.SurfaceTexture, width, height int) {
	if !l.c.current(l.b, "available") {
		return
	}
	l.c.report(l.available(st, width, height))
}

func (l *textureListener) SurfaceTextureSizeChanged(st platform.SurfaceTexture, width, height int) {
	c := l.c
	if !c.current(l.b, "size changed") {
		return
	}
	if c.hasDesiredSize() {
		st.SetDefaultBufferSize(c.width, c.height)
		c.report(c.resized(c.width, c.height))
		return
	}
	c.report(c.resized(width, height))
}

func (l *textureListener) SurfaceTextureDestroyed(platform.SurfaceTexture) bool {
	if !l.c.current(l.b, "destroyed") {
		return true
	}
	l.c.report(l.c.destroySwapChain())
	return true
}

func (l *textureListener) SurfaceTextureUpdated(platform.SurfaceTexture) {}
