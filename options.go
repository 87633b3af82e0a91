package surfacehost

// ErrorPolicy decides how strictly lifecycle ordering is checked.
type ErrorPolicy uint8

const (
	// PolicyCheck makes ordering violations fail loudly (panic).
	// This is the default.
	PolicyCheck ErrorPolicy = iota

	// PolicyDontCheck logs ordering violations and returns them as errors.
	PolicyDontCheck
)

// String returns the policy name.
func (p ErrorPolicy) String() string {
	switch p {
	case PolicyCheck:
		return "Check"
	case PolicyDontCheck:
		return "DontCheck"
	default:
		return "Unknown"
	}
}

// Option configures a Coordinator during creation.
//
// Example:
//
//	c := surfacehost.New(
//	    surfacehost.WithOpaque(false),
//	    surfacehost.WithDesiredSize(1280, 720),
//	)
type Option func(*options)

// options holds optional configuration for Coordinator creation.
type options struct {
	policy       ErrorPolicy
	opaque       bool
	mediaOverlay bool
	width        int
	height       int
	callback     RenderCallback
	onError      func(error)
}

// defaultOptions returns the default coordinator options.
func defaultOptions() options {
	return options{
		policy: PolicyCheck,
		opaque: true,
	}
}

// WithErrorPolicy sets the ordering check policy.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithOpaque sets whether the render target is opaque. True by default.
func WithOpaque(opaque bool) Option {
	return func(o *options) {
		o.opaque = opaque
	}
}

// WithMediaOverlay places a direct surface above other surfaces but below
// the window when it is translucent. Ignored for texture targets.
func WithMediaOverlay(overlay bool) Option {
	return func(o *options) {
		o.mediaOverlay = overlay
	}
}

// WithDesiredSize sets the initial buffer size. Non-positive dimensions
// leave the buffer sized by the platform.
func WithDesiredSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithRenderCallback registers the render callback at creation.
func WithRenderCallback(cb RenderCallback) Option {
	return func(o *options) {
		o.callback = cb
	}
}

// WithErrorHandler receives errors raised while handling platform
// notifications, which have no caller to return them to. Without a
// handler such errors panic.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
