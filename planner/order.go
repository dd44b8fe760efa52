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

package planner

import (
	"fmt"
	"sort"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/internal/manifest"
	"github.com/getbigbytes/snowbytes/restype"
)

// order performs dependency ordering: a stable
// topological sort over the changed entries, with edges for
// container→child, references()→referenced, owner-role→owned, and
// role-grant(owner→session_role)→owned, tie-broken by (scope order, type
// declaration order, URN lex order, action). Drop changes are appended
// in reverse topological order, since tearing an object down must happen
// after its dependents are gone.
func order(changes Plan, m *manifest.Manifest) (Plan, error) {
	var creates, updates, transfers, drops []*Change
	for _, c := range changes {
		switch c.Action {
		case Drop:
			drops = append(drops, c)
		case Update:
			updates = append(updates, c)
		case Transfer:
			transfers = append(transfers, c)
		default:
			creates = append(creates, c)
		}
	}

	forward := append(append([]*Change{}, creates...), updates...)
	forward = append(forward, transfers...)

	sortedForward, err := topoSort(forward, m)
	if err != nil {
		return nil, err
	}

	sortedDrops, err := topoSort(drops, m)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(sortedDrops)-1; i < j; i, j = i+1, j-1 {
		sortedDrops[i], sortedDrops[j] = sortedDrops[j], sortedDrops[i]
	}

	return append(sortedForward, sortedDrops...), nil
}

// topoSort runs a stable depth-first topological sort over changes,
// using the manifest to discover dependency edges among the URNs that
// appear in this batch. Nodes are keyed by (URN, action), not URN alone:
// an Update and a Transfer may legitimately coexist for one URN, and
// both must survive ordering, with the Transfer sequenced after any
// Create/Update of the same URN. Nodes with no edge between them are
// ordered by (scope order, type decl order, URN lex order, action).
func topoSort(changes []*Change, m *manifest.Manifest) ([]*Change, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	byKey := make(map[string]*Change, len(changes))
	nodesByURN := make(map[string][]string, len(changes))
	for _, c := range changes {
		k := nodeKey(c)
		byKey[k] = c
		nodesByURN[c.URN.Key()] = append(nodesByURN[c.URN.Key()], k)
	}

	// deps[k] = set of node keys that k depends on (must come after).
	deps := make(map[string]map[string]bool, len(changes))
	for _, c := range changes {
		deps[nodeKey(c)] = map[string]bool{}
	}

	// An edge against a URN depends on every change of that URN in the
	// batch: whatever is done to a dependency happens before dependents.
	addEdge := func(dependent string, dependsOn identifier.URN) {
		for _, key := range nodesByURN[dependsOn.Key()] {
			if key != dependent {
				deps[dependent][key] = true
			}
		}
	}

	for _, c := range changes {
		k := nodeKey(c)

		// A Transfer follows any Create/Update of its own URN.
		if c.Action == Transfer {
			for _, other := range nodesByURN[c.URN.Key()] {
				if other != k {
					deps[k][other] = true
				}
			}
		}

		entry, ok := m.Lookup(c.URN)
		if !ok {
			continue // e.g. Drop entries have no manifest entry
		}
		if entry.ContainerURN != nil {
			addEdge(k, *entry.ContainerURN)
		}
		if entry.OwnerURN != nil {
			addEdge(k, *entry.OwnerURN)
		}
		for _, ref := range entry.References {
			addEdge(k, ref)
		}
		// A RoleGrant conferring a role must itself come after the role
		// it grants.
		if entry.ResourceType == restype.RoleGrant {
			if roleURN, ok := roleGrantRoleURN(entry, changes, m); ok {
				addEdge(k, roleURN)
			}
		}
		// And anything owned by a role must come after the RoleGrant that
		// hands that role to the session, since the session has to
		// inherit ownership before it can issue the object's DDL.
		if entry.OwnerURN != nil {
			if owner, ok := m.Lookup(*entry.OwnerURN); ok {
				ownerName, _ := owner.Data["name"].(string)
				for _, other := range changes {
					grantEntry, ok := m.Lookup(other.URN)
					if !ok || grantEntry.ResourceType != restype.RoleGrant {
						continue
					}
					if granted, _ := grantEntry.Data["role"].(string); granted == ownerName {
						addEdge(k, other.URN)
					}
				}
			}
		}
	}

	order := make([]string, 0, len(changes))
	for key := range deps {
		order = append(order, key)
	}
	sort.Slice(order, func(i, j int) bool {
		return tieBreakLess(byKey[order[i]], byKey[order[j]])
	})

	var result []*Change
	visited := map[string]bool{}
	inStack := map[string]bool{}

	var visit func(key string) error
	visit = func(key string) error {
		if visited[key] {
			return nil
		}
		if inStack[key] {
			return &errs.NonConformingPlanError{Reason: fmt.Sprintf("dependency cycle detected at %s", key)}
		}
		inStack[key] = true

		depKeys := make([]string, 0, len(deps[key]))
		for dep := range deps[key] {
			depKeys = append(depKeys, dep)
		}
		sort.Slice(depKeys, func(i, j int) bool {
			return tieBreakLess(byKey[depKeys[i]], byKey[depKeys[j]])
		})
		for _, dep := range depKeys {
			if err := visit(dep); err != nil {
				return err
			}
		}

		inStack[key] = false
		visited[key] = true
		result = append(result, byKey[key])
		return nil
	}

	for _, key := range order {
		if err := visit(key); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// nodeKey identifies one change in the dependency graph. The action is
// part of the key so an Update and a Transfer of the same URN are
// distinct nodes.
func nodeKey(c *Change) string {
	return c.URN.Key() + "#" + c.Action.String()
}

// roleGrantRoleURN resolves the URN of the role a RoleGrant's "role"
// attribute names, within the current change batch, so the grant can be
// ordered after the role it grants exists.
func roleGrantRoleURN(entry *manifest.Entry, changes []*Change, m *manifest.Manifest) (identifier.URN, bool) {
	roleName, ok := entry.Data["role"].(string)
	if !ok || roleName == "" {
		return identifier.URN{}, false
	}
	for _, c := range changes {
		other, ok := m.Lookup(c.URN)
		if !ok {
			continue
		}
		if other.ResourceType != restype.Role && other.ResourceType != restype.DatabaseRole {
			continue
		}
		if name, _ := other.Data["name"].(string); name == roleName {
			return other.URN, true
		}
	}
	return identifier.URN{}, false
}

func tieBreakLess(a, b *Change) bool {
	as := restype.MustLookup(a.ResourceType).Scope.Order()
	bs := restype.MustLookup(b.ResourceType).Scope.Order()
	if as != bs {
		return as < bs
	}
	ad := restype.MustLookup(a.ResourceType).DeclOrder
	bd := restype.MustLookup(b.ResourceType).DeclOrder
	if ad != bd {
		return ad < bd
	}
	if a.URN.Key() != b.URN.Key() {
		return a.URN.Key() < b.URN.Key()
	}
	return a.Action < b.Action
}
