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

package resources

import (
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/restype"
)

func init() {
	restype.Register(restype.Metadata{
		Type:     restype.View,
		Scope:    restype.ScopeSchema,
		Editions: restype.AllEditions(),
	})
}

var viewDefaults = map[string]any{
	"change_tracking": false,
	"columns":         nil,
	"comment":         nil,
	"copy_grants":     false,
	"recursive":       nil,
	"secure":          false,
	"volatile":        nil,
}

// View declares a schema-scoped view. as_ carries the SELECT body; the
// trailing underscore mirrors the Python source's as_ kwarg, dodging the
// "as" keyword collision — kept as the wire attribute name since SQL
// rendering and dump_plan both key off it.
func View(name any, asSelect string, opts ...Option) *res.Resource {
	defaults := withDefaults(map[string]any{"as_": asSelect}, viewDefaults)
	r := newResource(restype.View, nameValue(name), defaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, defaults), nil
	}
	return r
}

// WithSecure marks the view as SECURE.
func WithSecure(v bool) Option {
	return func(r *res.Resource) { r.Attrs["secure"] = v }
}
