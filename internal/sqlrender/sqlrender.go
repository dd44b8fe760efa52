/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package sqlrender is the compiler's rendering seam: the full per-kind
// SQL dialect generator lives outside this module, but the compiler
// still needs something to turn a Change's resolved attributes into DDL
// text. This package defines that interface and registers literal,
// mechanical renderers for the kinds the role-switching protocol is
// exercised against.
package sqlrender

import (
	"fmt"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/restype"
)

// RenderContext carries the identity a renderer needs beyond the raw
// attribute maps: the fully-qualified name to emit in DDL.
type RenderContext struct {
	URN identifier.URN
}

// QualifiedName is the db/schema-qualified, case-preserving name to use
// in generated DDL.
func (c RenderContext) QualifiedName() string {
	return c.URN.FQN.String()
}

// Renderer turns one resource kind's resolved attributes into DDL.
type Renderer interface {
	Create(ctx RenderContext, after map[string]any) (string, error)
	Update(ctx RenderContext, before, after, delta map[string]any) (string, error)
	Drop(ctx RenderContext, before map[string]any) (string, error)
}

var registry = map[restype.ResourceType]Renderer{}

// Register adds a renderer for kind. Called from each renderer's own
// init(), mirroring restype's own self-registering kind registry.
func Register(kind restype.ResourceType, r Renderer) {
	registry[kind] = r
}

// Lookup returns the renderer for kind, or an UnsupportedFeatureError if
// none is registered.
func Lookup(kind restype.ResourceType) (Renderer, error) {
	r, ok := registry[kind]
	if !ok {
		return nil, &errs.UnsupportedFeatureError{Kind: string(kind)}
	}
	return r, nil
}

// quoteString renders a SQL single-quoted string literal.
func quoteString(s string) string {
	return "'" + s + "'"
}

func formatValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return quoteString(val), true
	case bool:
		if val {
			return "TRUE", true
		}
		return "FALSE", true
	case int:
		return fmt.Sprintf("%d", val), true
	case int64:
		return fmt.Sprintf("%d", val), true
	case float64:
		return fmt.Sprintf("%v", val), true
	case *bool:
		if val == nil {
			return "", false
		}
		return formatValue(*val)
	case *int:
		if val == nil {
			return "", false
		}
		return formatValue(*val)
	default:
		return fmt.Sprintf("%v", val), true
	}
}
