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

// Package resources supplies the concrete resource kinds:
// one constructor per kind, each registering its restype.Metadata at
// package init and closing over its own normalization (defaults plus
// edition gating) so package res stays kind-agnostic.
package resources

import (
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/resourcename"
	"github.com/getbigbytes/snowbytes/restype"
)

// Option mutates a resource under construction. Every concrete
// constructor accepts a name plus a list of Options, mirroring the
// Python source's kwargs-style constructors.
type Option func(*res.Resource)

// WithOwner sets the resource's owner role, accepting a plain string, a
// *res.Resource (typically a Role or DatabaseRole declared earlier in the
// same blueprint), or a vars.VarString.
func WithOwner(owner res.OwnerRef) Option {
	return func(r *res.Resource) { r.Owner = owner }
}

// WithComment sets the resource's comment attribute, accepted by every
// kind in this package.
func WithComment(comment any) Option {
	return func(r *res.Resource) { r.Attrs["comment"] = comment }
}

func newResource(kind restype.ResourceType, name res.NameValue, defaults map[string]any, opts []Option) *res.Resource {
	attrs := make(map[string]any, len(defaults))
	for k, v := range defaults {
		attrs[k] = v
	}
	r := &res.Resource{Kind: kind, Name: name, Attrs: attrs}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// nameValue normalizes the common "accept a bare string or an explicit
// NameValue" constructor argument.
func nameValue(name any) res.NameValue {
	switch v := name.(type) {
	case string:
		return resourcename.New(v)
	default:
		return v
	}
}

// databaseQualifier pulls a database qualifier out of either a plain
// name/VarString or an already-constructed Database resource (whose name
// becomes the qualifier and whose container relationship is recorded via
// res.Resource.Add at the call site, not here).
func databaseQualifier(v any) res.NameValue {
	if r, ok := v.(*res.Resource); ok {
		return r.Name
	}
	return nameValue(v)
}
