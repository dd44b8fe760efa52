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

// Package res implements the resource model: the
// base Resource every concrete kind embeds, the Container relationship
// (database holds schemas, schema holds tables/views/…), and explicit
// Requires edges. It stays deliberately untyped about attribute values
// (map[string]any, where a value is either a plain Go scalar or a
// vars.VarString) because the set of attributes is per-kind and the
// planner only ever needs to diff and render them generically — package
// resources supplies the per-kind constructors and defaults.
package res

import (
	"fmt"
	"strings"

	"github.com/getbigbytes/snowbytes/resourcename"
	"github.com/getbigbytes/snowbytes/restype"
	"github.com/getbigbytes/snowbytes/vars"
)

// NameValue is the name a resource is declared with, before manifest
// sealing resolves any VarString down to a resourcename.Name. Concrete
// kinds accept either a resourcename.Name (e.g. resourcename.New("DB"))
// or a vars.VarString (e.g. vars.Ref("db_name")) for their Name field.
type NameValue any

// ResolveName resolves a NameValue against an environment, producing the
// resourcename.Name the manifest and planner operate on from then on.
func ResolveName(n NameValue, env vars.Environment) (resourcename.Name, error) {
	switch v := n.(type) {
	case resourcename.Name:
		return v, nil
	case vars.VarString:
		text, err := v.Resolve(env)
		if err != nil {
			return resourcename.Name{}, err
		}
		return resourcename.New(text), nil
	case string:
		return resourcename.New(v), nil
	default:
		return resourcename.Name{}, fmt.Errorf("res: unsupported name value %T", n)
	}
}

// OwnerRef is the `owner` attribute every ownable resource carries: a
// plain role name, a reference to a Role/DatabaseRole resource declared
// in the same blueprint, or a VarString. nil means "inherit session
// default".
type OwnerRef any

// ResolveOwner resolves an OwnerRef to a plain role name.
func ResolveOwner(o OwnerRef, env vars.Environment) (string, error) {
	switch v := o.(type) {
	case nil:
		return "", nil
	case *Resource:
		if v.ResolvedName != "" {
			return v.ResolvedName, nil
		}
		name, err := ResolveName(v.Name, env)
		if err != nil {
			return "", err
		}
		return name.String(), nil
	case resourcename.Name:
		return v.String(), nil
	case vars.VarString:
		return v.Resolve(env)
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("res: unsupported owner value %T", o)
	}
}

// Resource is the descriptor every concrete kind (package resources)
// builds. Concrete constructors populate Kind, Name, the type-specific
// Attrs, and Normalize; the manifest builder fills ResolvedName during
// sealing.
type Resource struct {
	Kind     restype.ResourceType
	Name     NameValue
	Database NameValue // qualifier for a database-scoped kind
	Schema   NameValue // qualifier for a schema-scoped kind
	ArgTypes []string  // non-nil only for overloadable callables
	Owner    OwnerRef

	// Attrs holds type-specific attribute values, keyed by the wire
	// attribute name (snake_case, matching the Python source's kwargs).
	// A value is a plain Go scalar/slice/map, or a vars.VarString.
	Attrs map[string]any

	// Query carries the URN query-string discriminators a kind needs
	// beyond its FQN — e.g. a RoleGrant's "?role=SYSADMIN" target role,
	// which is part of its identity but not part of its name.
	Query map[string]NameValue

	// Normalize fills in type-specific defaults and drops attributes the
	// account's edition does not support, returning the fully resolved
	// attribute set used for diffing and rendering. Set by the concrete
	// constructor; res.Resource never hard-codes per-kind defaults.
	Normalize func(attrs map[string]any, edition restype.Edition) (map[string]any, error)

	// parent is the explicit container this resource was added to via
	// Container.Add (e.g. a Schema added to a Database). nil for
	// account-scoped resources.
	parent *Resource

	// children holds resources added to this one via Add, in add order.
	children []*Resource

	// explicitRequires holds resources added via Requires: dependency
	// edges that exist for ordering purposes only, with no container or
	// ownership relationship (e.g. a Grant naming the role it grants on).
	explicitRequires []*Resource

	// ResolvedName is populated once the manifest builder
	// resolves this resource's Name against the active Environment. Zero
	// value until then.
	ResolvedName string
}

// Container is implemented by every resource kind that can hold scoped
// children: Database holds Schema, Schema holds Table/View/Function/…
type Container interface {
	Add(children ...*Resource)
	Children() []*Resource
}

// Add appends children to r's child list, setting each child's parent to
// r. Idempotent: re-adding a child already present by identity (same
// Kind and same declared Name) is a no-op.
func (r *Resource) Add(children ...*Resource) {
	for _, c := range children {
		if r.hasChild(c) {
			continue
		}
		c.parent = r
		r.children = append(r.children, c)
	}
}

// Children returns the resources directly contained in r, in add order.
func (r *Resource) Children() []*Resource { return r.children }

// Parent returns the container this resource was added to, or nil for an
// account-scoped resource that belongs to no container.
func (r *Resource) Parent() *Resource { return r.parent }

func (r *Resource) hasChild(candidate *Resource) bool {
	for _, existing := range r.children {
		if existing.Kind == candidate.Kind && sameNameValue(existing.Name, candidate.Name) {
			return true
		}
	}
	return false
}

// Requires records an explicit dependency edge used only for plan
// ordering: "this resource must come after that one," with no
// container or ownership relationship implied. Idempotent by identity,
// same rule as Add.
func (r *Resource) Requires(other *Resource) {
	for _, existing := range r.explicitRequires {
		if existing == other {
			return
		}
	}
	r.explicitRequires = append(r.explicitRequires, other)
}

// ExplicitRequires returns the resources added via Requires, in add order.
func (r *Resource) ExplicitRequires() []*Resource { return r.explicitRequires }

// sameNameValue compares two possibly-unresolved NameValues for identity
// purposes (container membership checks happen before manifest sealing,
// so names may still be VarStrings or plain strings).
func sameNameValue(a, b NameValue) bool {
	return nameValueKey(a) == nameValueKey(b)
}

func nameValueKey(n NameValue) string {
	switch v := n.(type) {
	case resourcename.Name:
		return "n:" + v.Key()
	case vars.VarString:
		return "v:" + v.Template()
	case string:
		return "s:" + strings.ToUpper(v)
	default:
		return fmt.Sprintf("?:%v", v)
	}
}
