// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"sort"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/surfacehost"
)

// Engine names in the order New("") prefers them. Only "software" ships
// with this module. A hardware engine package registering under "vulkan"
// or "gles" is picked over it without further configuration.
var priority = []string{"vulkan", "gles", "software"}

// engines holds every registered engine factory.
var engines = gpucontext.NewRegistry[Engine](
	gpucontext.WithPriority(priority...),
)

// Register makes an engine factory available under name. Registering a
// name twice replaces the previous factory. It is meant to be called from
// an engine package's init function:
//
//	func init() {
//	    native.Register("software", func() native.Engine { return New() })
//	}
func Register(name string, factory func() Engine) {
	engines.Register(name, factory)
}

// Unregister removes the factory registered under name.
func Unregister(name string) {
	engines.Unregister(name)
}

// New creates the engine registered under name. An empty name selects the
// best available engine.
func New(name string) (Engine, error) {
	if name == "" {
		if engines.Count() == 0 {
			return nil, fmt.Errorf("%w: none registered", ErrUnknownEngine)
		}
		surfacehost.Logger().Debug("native: selected engine", "name", engines.BestName())
		return engines.Best(), nil
	}
	if !engines.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return engines.Get(name), nil
}

// Available returns the registered engine names in sorted order.
func Available() []string {
	names := engines.Available()
	sort.Strings(names)
	return names
}
