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

// Package manifest implements the sealing pipeline:
// scope validation, allowlist enforcement, variable resolution, pointer
// merging, container stubbing, edition checks, normalization, and
// emission, turning a caller's loose resource graph into the ordered,
// fully-resolved Manifest the planner consumes.
package manifest

import (
	"fmt"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/resourcename"
	"github.com/getbigbytes/snowbytes/restype"
	"github.com/getbigbytes/snowbytes/vars"
)

// Entry is one sealed resource: its identity, its fully normalized
// attributes (including name and owner), and the edges the planner needs
// to order it relative to the rest of the manifest.
type Entry struct {
	URN          identifier.URN
	ResourceType restype.ResourceType
	Data         map[string]any
	OwnerURN     *identifier.URN
	ContainerURN *identifier.URN
	References   []identifier.URN
}

// Manifest is the sealed, ordered resource set Build emits. Entries keeps
// declaration order (post pointer-merge) for stability; the planner
// re-orders independently when it builds a Plan.
type Manifest struct {
	Entries []*Entry
	index   map[string]*Entry
}

// Lookup returns the entry for urn, if present.
func (m *Manifest) Lookup(urn identifier.URN) (*Entry, bool) {
	e, ok := m.index[urn.Key()]
	return e, ok
}

// Scope is the blueprint's declared operating scope.
type Scope struct {
	Level    restype.Scope
	Database string
	Schema   string
}

// Config is everything the Builder needs besides the resource set
// itself.
type Config struct {
	AccountLocator string
	AccountEdition restype.Edition
	SessionRole    string
	Allowlist      []restype.ResourceType // nil/empty means unrestricted
	VarsSpec       []vars.Spec
	Vars           vars.Environment
	Scope          Scope
}

func (c Config) allowlistSet() map[restype.ResourceType]bool {
	if len(c.Allowlist) == 0 {
		return nil
	}
	set := make(map[restype.ResourceType]bool, len(c.Allowlist))
	for _, t := range c.Allowlist {
		set[t] = true
	}
	return set
}

// Build runs the full sealing pipeline over a caller-declared resource
// set.
func Build(resources []*res.Resource, cfg Config) (*Manifest, error) {
	if err := validateScope(cfg.Scope); err != nil {
		return nil, err
	}

	allowlist := cfg.allowlistSet()
	if allowlist != nil {
		for _, r := range resources {
			if !allowlist[r.Kind] {
				return nil, &errs.InvalidResourceError{Reason: fmt.Sprintf("resource type %q is not in the active allowlist", r.Kind)}
			}
		}
	}

	env, err := vars.ResolveEnvironment(cfg.VarsSpec, cfg.Vars)
	if err != nil {
		return nil, err
	}

	merged, err := MergePointers(resources)
	if err != nil {
		return nil, err
	}

	m := &Manifest{index: map[string]*Entry{}}
	for _, r := range merged {
		if r.IsPointer() {
			continue // pure pointers never reach the sealed manifest on their own
		}

		entry, err := sealResource(r, env, cfg)
		if err != nil {
			return nil, err
		}
		if existing, ok := m.index[entry.URN.Key()]; ok {
			if !dataEqual(existing.Data, entry.Data) {
				return nil, &errs.DuplicateResourceError{URN: entry.URN.String()}
			}
			continue
		}
		m.index[entry.URN.Key()] = entry
		m.Entries = append(m.Entries, entry)
	}

	return m, nil
}

func validateScope(s Scope) error {
	switch s.Level {
	case restype.ScopeAccount:
		if s.Database != "" || s.Schema != "" {
			return &errs.ConfigError{Reason: "account-scoped blueprint may not declare database or schema"}
		}
	case restype.ScopeDatabase:
		if s.Database == "" {
			return &errs.ConfigError{Reason: "database-scoped blueprint requires database"}
		}
		if s.Schema != "" {
			return &errs.ConfigError{Reason: "database-scoped blueprint may not declare schema"}
		}
	case restype.ScopeSchema:
		if s.Database == "" || s.Schema == "" {
			return &errs.ConfigError{Reason: "schema-scoped blueprint requires both database and schema"}
		}
	}
	return nil
}

func sealResource(r *res.Resource, env vars.Environment, cfg Config) (*Entry, error) {
	meta, registered := restype.Lookup(r.Kind)
	if !registered {
		return nil, &errs.InvalidResourceError{Reason: fmt.Sprintf("resource type %q is not registered", r.Kind)}
	}
	if !meta.Editions.Has(cfg.AccountEdition) {
		return nil, &errs.WrongEditionError{Reason: fmt.Sprintf("%s is not available on %s edition", r.Kind, cfg.AccountEdition)}
	}

	name, err := res.ResolveName(r.Name, env)
	if err != nil {
		return nil, err
	}
	r.ResolvedName = name.String()

	fqn := identifier.FQN{Name: name, ArgTypes: r.ArgTypes}
	if r.Database != nil {
		dbName, err := res.ResolveName(r.Database, env)
		if err != nil {
			return nil, err
		}
		fqn.Database = dbName
	} else if parent := containerOfKind(r, restype.Database); parent != nil {
		dbName, err := res.ResolveName(parent.Name, env)
		if err != nil {
			return nil, err
		}
		fqn.Database = dbName
	}
	if r.Schema != nil {
		schemaName, err := res.ResolveName(r.Schema, env)
		if err != nil {
			return nil, err
		}
		fqn.Schema = schemaName
	} else if parent := containerOfKind(r, restype.Schema); parent != nil {
		schemaName, err := res.ResolveName(parent.Name, env)
		if err != nil {
			return nil, err
		}
		fqn.Schema = schemaName
	}
	stubScope(&fqn, meta, cfg)

	query, err := resolveQuery(r.Query, env)
	if err != nil {
		return nil, err
	}
	urn := identifier.URN{ResourceType: r.Kind, FQN: fqn, AccountLocator: cfg.AccountLocator, Query: query}

	ownerName, err := res.ResolveOwner(r.Owner, env)
	if err != nil {
		return nil, err
	}
	resolvedAttrs, err := resolveAttrValues(r.Attrs, env)
	if err != nil {
		return nil, err
	}

	normalized, err := r.Normalize(resolvedAttrs, cfg.AccountEdition)
	if err != nil {
		return nil, err
	}
	data := make(map[string]any, len(normalized)+2)
	for k, v := range normalized {
		if k == "on" || k == "in" {
			continue // these carried the *res.Resource reference only; a Grant's on_<kind> attribute has the target's name, and a FutureGrant's container name is its own name
		}
		data[k] = v
	}
	data["name"] = name.String()
	if ownerName == "" {
		if existing, ok := data["owner"].(string); !ok || existing == "" {
			ownerName = defaultOwnerRole(r.Kind, cfg.SessionRole)
		}
	}
	if ownerName != "" {
		data["owner"] = ownerName
	}

	entry := &Entry{URN: urn, ResourceType: r.Kind, Data: data}

	if parent := r.Parent(); parent != nil {
		parentURN, err := resourceURN(parent, env, cfg)
		if err != nil {
			return nil, err
		}
		entry.ContainerURN = &parentURN
		entry.References = append(entry.References, parentURN)
	}
	if ownerRes, ok := r.Owner.(*res.Resource); ok {
		ownerURN, err := resourceURN(ownerRes, env, cfg)
		if err != nil {
			return nil, err
		}
		entry.OwnerURN = &ownerURN
		entry.References = append(entry.References, ownerURN)
	}
	for _, dep := range r.ExplicitRequires() {
		depURN, err := resourceURN(dep, env, cfg)
		if err != nil {
			return nil, err
		}
		entry.References = append(entry.References, depURN)
	}
	if onRes, ok := r.Attrs["on"].(*res.Resource); ok {
		onURN, err := resourceURN(onRes, env, cfg)
		if err != nil {
			return nil, err
		}
		entry.References = append(entry.References, onURN)
	}
	if inRes, ok := r.Attrs["in"].(*res.Resource); ok {
		inURN, err := resourceURN(inRes, env, cfg)
		if err != nil {
			return nil, err
		}
		entry.References = append(entry.References, inURN)
	}

	return entry, nil
}

// resourceURN recomputes another resource's URN without re-sealing it —
// used to express a reference edge (owner, container, explicit requires)
// in terms of the identity the referenced resource will seal to.
func resourceURN(r *res.Resource, env vars.Environment, cfg Config) (identifier.URN, error) {
	name, err := res.ResolveName(r.Name, env)
	if err != nil {
		return identifier.URN{}, err
	}
	fqn := identifier.FQN{Name: name, ArgTypes: r.ArgTypes}
	if r.Database != nil {
		dbName, err := res.ResolveName(r.Database, env)
		if err != nil {
			return identifier.URN{}, err
		}
		fqn.Database = dbName
	}
	if r.Schema != nil {
		schemaName, err := res.ResolveName(r.Schema, env)
		if err != nil {
			return identifier.URN{}, err
		}
		fqn.Schema = schemaName
	}
	stubScope(&fqn, restype.MustLookup(r.Kind), cfg)

	query, err := resolveQuery(r.Query, env)
	if err != nil {
		return identifier.URN{}, err
	}
	return identifier.URN{ResourceType: r.Kind, FQN: fqn, AccountLocator: cfg.AccountLocator, Query: query}, nil
}

// stubScope inserts implied containers: a resource declared with no explicit database/schema
// qualifier and no matching container ancestor inherits the blueprint's
// own declared scope instead — the database/schema a Database- or
// Schema-scoped blueprint operates within is never itself re-declared,
// only assumed present.
func stubScope(fqn *identifier.FQN, meta restype.Metadata, cfg Config) {
	if fqn.Database.IsEmpty() && cfg.Scope.Database != "" &&
		(meta.Scope == restype.ScopeDatabase || meta.Scope == restype.ScopeSchema) {
		fqn.Database = resourcename.New(cfg.Scope.Database)
	}
	if meta.Scope == restype.ScopeSchema && fqn.Schema.IsEmpty() {
		if cfg.Scope.Schema != "" {
			fqn.Schema = resourcename.New(cfg.Scope.Schema)
		} else if !fqn.Database.IsEmpty() {
			// A schema-scoped resource with no explicit schema and no
			// schema-level blueprint scope resolves against the
			// database's own default schema, same as an unqualified
			// reference would in a running session.
			fqn.Schema = resourcename.New("PUBLIC")
		}
	}
}

func resolveQuery(q map[string]res.NameValue, env vars.Environment) (map[string]string, error) {
	if len(q) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(q))
	for k, v := range q {
		name, err := res.ResolveName(v, env)
		if err != nil {
			return nil, err
		}
		out[k] = name.String()
	}
	return out, nil
}

func resolveAttrValues(attrs map[string]any, env vars.Environment) (map[string]any, error) {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		resolved, err := resolveAttrValue(v, env)
		if err != nil {
			return nil, err
		}
		out[k] = resolved
	}
	return out, nil
}

func resolveAttrValue(v any, env vars.Environment) (any, error) {
	switch val := v.(type) {
	case vars.VarString:
		return val.Resolve(env)
	case resourcename.Name:
		return val.String(), nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			resolved, err := resolveAttrValue(item, env)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

func containerOfKind(r *res.Resource, kind restype.ResourceType) *res.Resource {
	for p := r.Parent(); p != nil; p = p.Parent() {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// defaultOwnerRole is the session-derived owner a resource gets when its
// declaration carries none. Role/DatabaseRole default to USERADMIN (it
// owns role objects in a default-configured account); grant kinds have
// no ownership at all; everything else defaults to the session's active
// role.
func defaultOwnerRole(kind restype.ResourceType, sessionRole string) string {
	switch kind {
	case restype.Role, restype.DatabaseRole:
		return "USERADMIN"
	case restype.RoleGrant, restype.Grant, restype.FutureGrant:
		return ""
	default:
		return sessionRole
	}
}

func dataEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || fmt.Sprint(av) != fmt.Sprint(bv) {
			return false
		}
	}
	return true
}
