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

// Package restype is the build-time-constant registry of resource kinds:
// the one legitimate global in the core. Every concrete resource kind
// registers its static metadata here at package init and never mutates
// it afterward.
package restype

// Scope is the container level a resource type is declared at.
type Scope int

const (
	ScopeAccount Scope = iota
	ScopeDatabase
	ScopeSchema
)

// Order is the scope's position in the plan tie-break ordering:
// Account < Database < Schema.
func (s Scope) Order() int { return int(s) }

func (s Scope) String() string {
	switch s {
	case ScopeAccount:
		return "ACCOUNT"
	case ScopeDatabase:
		return "DATABASE"
	case ScopeSchema:
		return "SCHEMA"
	default:
		return "UNKNOWN"
	}
}

// ParseScope validates a string spelling of a Scope.
func ParseScope(s string) (Scope, bool) {
	switch s {
	case "ACCOUNT":
		return ScopeAccount, true
	case "DATABASE":
		return ScopeDatabase, true
	case "SCHEMA":
		return ScopeSchema, true
	default:
		return 0, false
	}
}

// Edition is an account tier that gates feature availability.
type Edition int

const (
	EditionStandard Edition = iota
	EditionEnterprise
	EditionBusinessCritical
	EditionVPS
)

func (e Edition) String() string {
	switch e {
	case EditionStandard:
		return "STANDARD"
	case EditionEnterprise:
		return "ENTERPRISE"
	case EditionBusinessCritical:
		return "BUSINESS_CRITICAL"
	case EditionVPS:
		return "VPS"
	default:
		return "UNKNOWN"
	}
}

// EditionSet is a fixed set of editions a resource type (or one of its
// attributes) is available in.
type EditionSet map[Edition]struct{}

// AllEditions is the default edition set for types with no gating.
func AllEditions() EditionSet {
	return EditionSet{
		EditionStandard:         {},
		EditionEnterprise:       {},
		EditionBusinessCritical: {},
		EditionVPS:              {},
	}
}

// Editions builds an edition set from a list.
func Editions(editions ...Edition) EditionSet {
	s := make(EditionSet, len(editions))
	for _, e := range editions {
		s[e] = struct{}{}
	}
	return s
}

// EditionsFrom returns the set of all editions at or above min (editions
// form a strictly increasing feature tier in this platform).
func EditionsFrom(min Edition) EditionSet {
	s := EditionSet{}
	for e := min; e <= EditionVPS; e++ {
		s[e] = struct{}{}
	}
	return s
}

func (s EditionSet) Has(e Edition) bool {
	_, ok := s[e]
	return ok
}

// ResourceType is the closed enumeration of warehouse object kinds the
// core understands.
type ResourceType string

const (
	Account         ResourceType = "account"
	Database        ResourceType = "database"
	Schema          ResourceType = "schema"
	Warehouse       ResourceType = "warehouse"
	Role            ResourceType = "role"
	DatabaseRole    ResourceType = "database_role"
	RoleGrant       ResourceType = "role_grant"
	Grant           ResourceType = "grant"
	FutureGrant     ResourceType = "future_grant"
	Table           ResourceType = "table"
	View            ResourceType = "view"
	Function        ResourceType = "function"
	Task            ResourceType = "task"
	ComputePool     ResourceType = "compute_pool"
	ImageRepository ResourceType = "image_repository"
	Tag             ResourceType = "tag"
	Integration     ResourceType = "integration"
)

// Metadata is the static, per-type information the core keys off: scope, the
// editions the type may be created in, whether it is a union of concrete
// variants, and whether it may own child resources.
type Metadata struct {
	Type        ResourceType
	Scope       Scope
	Editions    EditionSet
	Polymorphic bool
	IsContainer bool
	// DeclOrder is the type's position in the ResourceType enumeration,
	// used as the second tie-break key in plan ordering after scope.
	DeclOrder int
}

// typeDeclOrder fixes each type's position in the enumeration above, so
// the plan tie-break does not depend on which package file's init()
// happened to register a kind first.
var typeDeclOrder = map[ResourceType]int{}

func init() {
	for i, t := range []ResourceType{
		Account, Database, Schema, Warehouse, Role, DatabaseRole,
		RoleGrant, Grant, FutureGrant, Table, View, Function, Task,
		ComputePool, ImageRepository, Tag, Integration,
	} {
		typeDeclOrder[t] = i
	}
}

var registry = map[ResourceType]Metadata{}

func init() {
	// The account sentinel: always present in remote state, never
	// created/updated/dropped by the planner.
	Register(Metadata{Type: Account, Scope: ScopeAccount, Editions: AllEditions()})
}

// Register records a resource type's static metadata. Called from each
// concrete resource kind's package init(); registering the same type twice
// is a programming error and panics, since the registry is meant to be
// build-time constant.
func Register(m Metadata) {
	if _, exists := registry[m.Type]; exists {
		panic("restype: duplicate registration for " + string(m.Type))
	}
	order, known := typeDeclOrder[m.Type]
	if !known {
		panic("restype: type missing from declaration order: " + string(m.Type))
	}
	m.DeclOrder = order
	registry[m.Type] = m
}

// Lookup returns the registered metadata for a type, or false if the type
// was never registered (a programming error at this level; the manifest
// builder surfaces unregistered types as InvalidResource).
func Lookup(t ResourceType) (Metadata, bool) {
	m, ok := registry[t]
	return m, ok
}

// MustLookup panics if t is unregistered; used from code paths that only
// ever see types produced by this package's own constructors.
func MustLookup(t ResourceType) Metadata {
	m, ok := Lookup(t)
	if !ok {
		panic("restype: unregistered resource type " + string(t))
	}
	return m
}

// Parse validates a string spelling of a ResourceType. Both hyphenated
// upper-case tokens ("COMPUTE-POOL") and underscore lower-case names
// are accepted.
func Parse(s string) (ResourceType, bool) {
	t := ResourceType(normalizeSpelling(s))
	_, ok := typeDeclOrder[t]
	return t, ok
}

func normalizeSpelling(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c-'A'+'a')
		case c == '-':
			out = append(out, '_')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
