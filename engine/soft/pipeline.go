// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// tileUniform is the uniform block the tile program reads.
const tileUniform = "tile"

// Pipeline is the tile program compiled to SPIR-V together with the
// layout reflected from it.
type Pipeline struct {
	SPIRV []byte

	// Vertex and Fragment are the entry point names.
	Vertex   string
	Fragment string

	// Uniform is where the tile uniform block is bound.
	Uniform ir.ResourceBinding
}

// compilePipeline compiles src and checks that it has a vertex and a
// fragment entry point and binds the tile uniform.
func compilePipeline(src string) (*Pipeline, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}

	p := &Pipeline{}
	for _, ep := range module.EntryPoints {
		switch ep.Stage {
		case ir.StageVertex:
			p.Vertex = ep.Name
		case ir.StageFragment:
			p.Fragment = ep.Name
		}
	}
	if p.Vertex == "" || p.Fragment == "" {
		return nil, fmt.Errorf("%w: vertex=%q, fragment=%q", ErrInvalidProgram, p.Vertex, p.Fragment)
	}

	bound := false
	for _, g := range module.GlobalVariables {
		if g.Name == tileUniform && g.Space == ir.SpaceUniform && g.Binding != nil {
			p.Uniform = *g.Binding
			bound = true
			break
		}
	}
	if !bound {
		return nil, fmt.Errorf("%w: no uniform %q", ErrInvalidProgram, tileUniform)
	}

	p.SPIRV, err = naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}
	return p, nil
}
