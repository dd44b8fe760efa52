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
	"github.com/getbigbytes/snowbytes/resourcename"
	"github.com/getbigbytes/snowbytes/restype"
)

func init() {
	restype.Register(restype.Metadata{
		Type:        restype.Grant,
		Scope:       restype.ScopeAccount,
		Editions:    restype.AllEditions(),
		Polymorphic: true,
	})
	restype.Register(restype.Metadata{
		Type:        restype.FutureGrant,
		Scope:       restype.ScopeAccount,
		Editions:    restype.AllEditions(),
		Polymorphic: true,
	})
}

// GrantOption configures a Grant or FutureGrant beyond the required priv
// and target resource.
type GrantOption func(*res.Resource)

// Grant declares "GRANT <priv> ON <on> TO ROLE <to>". on is normalized
// at construction into a discriminated "on_<kind>" attribute rather
// than kept as a generic reference, so the
// manifest and SQL compiler never need to re-discover the target's kind.
// Identity (the URN) is the on-target's name plus the priv and to query
// discriminators; the target's kind is not part of it. Granting
// the same priv to two different roles on the same object are distinct
// resources, not an update of one another.
func Grant(priv string, on *res.Resource, to any, opts ...GrantOption) *res.Resource {
	r := &res.Resource{
		Kind: restype.Grant,
		Name: on.Name,
		Attrs: map[string]any{
			"priv":             priv,
			"on":               on,
			onAttrKey(on.Kind): on.Name,
			"grant_type":       string(on.Kind),
			"to":               nameValue(to),
		},
	}
	r.Query = map[string]res.NameValue{
		"priv": resourcename.New(priv),
		"to":   nameValue(to),
	}
	r.Requires(on)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return attrs, nil
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FutureGrant declares "GRANT <priv> ON FUTURE <kind>S IN <container> TO
// ROLE <to>", e.g. on_future_schemas_in=database.
func FutureGrant(priv string, futureKind restype.ResourceType, in *res.Resource, to any, opts ...GrantOption) *res.Resource {
	r := &res.Resource{
		Kind: restype.FutureGrant,
		Name: in.Name,
		Attrs: map[string]any{
			"priv":        priv,
			"future_kind": string(futureKind),
			"in":          in,
			"to":          nameValue(to),
		},
	}
	r.Query = map[string]res.NameValue{
		"priv":   resourcename.New(priv),
		"future": resourcename.New(string(futureKind)),
		"to":     nameValue(to),
	}
	r.Requires(in)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return attrs, nil
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func onAttrKey(kind restype.ResourceType) string {
	return "on_" + string(kind)
}
