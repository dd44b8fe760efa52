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
		Type:     restype.ComputePool,
		Scope:    restype.ScopeAccount,
		Editions: restype.AllEditions(),
	})
	restype.Register(restype.Metadata{
		Type:     restype.ImageRepository,
		Scope:    restype.ScopeSchema,
		Editions: restype.AllEditions(),
	})
}

var computePoolDefaults = map[string]any{
	"min_nodes":         1,
	"max_nodes":         1,
	"auto_suspend_secs": 600,
	"auto_resume":       true,
	"comment":           nil,
}

// ComputePool declares an account-scoped Snowpark Container Services
// compute pool.
func ComputePool(name any, instanceFamily string, opts ...Option) *res.Resource {
	defaults := withDefaults(map[string]any{"instance_family": instanceFamily}, computePoolDefaults)
	r := newResource(restype.ComputePool, nameValue(name), defaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, defaults), nil
	}
	return r
}

// WithMinNodes sets the compute pool's minimum node count.
func WithMinNodes(n any) Option {
	return func(r *res.Resource) { r.Attrs["min_nodes"] = n }
}

// WithMaxNodes sets the compute pool's maximum node count.
func WithMaxNodes(n any) Option {
	return func(r *res.Resource) { r.Attrs["max_nodes"] = n }
}

var imageRepositoryDefaults = map[string]any{
	"comment": nil,
}

// ImageRepository declares a schema-scoped container image repository.
func ImageRepository(name any, opts ...Option) *res.Resource {
	r := newResource(restype.ImageRepository, nameValue(name), imageRepositoryDefaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, imageRepositoryDefaults), nil
	}
	return r
}
