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

// Package planner diffs a sealed manifest against observed remote state
// into Create/Update/Transfer/Drop changes, then orders them into a
// deterministic, dependency-respecting Plan.
package planner

import (
	"fmt"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/internal/manifest"
	"github.com/getbigbytes/snowbytes/remotestate"
	"github.com/getbigbytes/snowbytes/restype"
)

// Action is the kind of change a plan entry represents.
type Action int

const (
	Create Action = iota
	Update
	Transfer
	Drop
)

func (a Action) String() string {
	switch a {
	case Create:
		return "CREATE"
	case Update:
		return "UPDATE"
	case Transfer:
		return "TRANSFER"
	case Drop:
		return "DROP"
	default:
		return "UNKNOWN"
	}
}

// Change is one plan entry.
type Change struct {
	Action       Action
	URN          identifier.URN
	ResourceType restype.ResourceType
	Before       map[string]any
	After        map[string]any
	Delta        map[string]any
	FromOwner    string
	ToOwner      string
}

// Plan is an ordered list of changes.
type Plan []*Change

// RunMode selects whether the planner may emit Drop changes.
type RunMode int

const (
	// CreateOrUpdate never drops: it only creates, updates, and transfers.
	CreateOrUpdate RunMode = iota
	// Sync additionally drops remote objects absent from the manifest,
	// restricted to types in the allowlist.
	Sync
)

// Config carries the run mode, allowlist, and declared scope the
// diffing and conformance steps need.
type Config struct {
	RunMode   RunMode
	Allowlist []restype.ResourceType
	Scope     manifest.Scope
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

// Build diffs m against remote and returns an ordered Plan.
func Build(remote remotestate.State, m *manifest.Manifest, cfg Config) (Plan, error) {
	changes := diff(remote, m, cfg)
	ordered, err := order(changes, m)
	if err != nil {
		return nil, err
	}
	if err := raiseForNonConformingPlan(ordered, cfg); err != nil {
		return nil, err
	}
	return ordered, nil
}

func diff(remote remotestate.State, m *manifest.Manifest, cfg Config) Plan {
	var plan Plan

	for _, entry := range m.Entries {
		if entry.ResourceType == restype.Account {
			continue
		}
		before, exists := remote.Get(entry.URN)
		if !exists {
			plan = append(plan, &Change{Action: Create, URN: entry.URN, ResourceType: entry.ResourceType, After: entry.Data})
			continue
		}

		delta := map[string]any{}
		for k, after := range entry.Data {
			if k == "owner" {
				continue
			}
			// A key the remote snapshot never reported is unknown, not
			// different; only observed values participate in the diff.
			beforeVal, observed := before[k]
			if !observed {
				continue
			}
			if fmt.Sprint(beforeVal) != fmt.Sprint(after) {
				delta[k] = after
			}
		}
		if len(delta) > 0 {
			plan = append(plan, &Change{Action: Update, URN: entry.URN, ResourceType: entry.ResourceType, Before: before, After: entry.Data, Delta: delta})
		}
		fromOwner, _ := before["owner"].(string)
		toOwner, _ := entry.Data["owner"].(string)
		if toOwner != "" && fromOwner != toOwner {
			plan = append(plan, &Change{Action: Transfer, URN: entry.URN, ResourceType: entry.ResourceType, FromOwner: fromOwner, ToOwner: toOwner})
		}
	}

	if cfg.RunMode == Sync {
		allowlist := cfg.allowlistSet()
		for _, urn := range remote.URNs() {
			if urn.ResourceType == restype.Account {
				continue
			}
			if _, ok := m.Lookup(urn); ok {
				continue
			}
			if allowlist != nil && !allowlist[urn.ResourceType] {
				continue
			}
			before, _ := remote.Get(urn)
			plan = append(plan, &Change{Action: Drop, URN: urn, ResourceType: urn.ResourceType, Before: before})
		}
	}

	return plan
}

func raiseForNonConformingPlan(plan Plan, cfg Config) error {
	allowlist := cfg.allowlistSet()
	for _, c := range plan {
		if !inScope(c.URN, cfg.Scope) {
			return &errs.NonConformingPlanError{Reason: fmt.Sprintf("change to %s falls outside the blueprint's declared scope", c.URN)}
		}
		if c.Action == Drop && allowlist != nil && !allowlist[c.ResourceType] {
			return &errs.NonConformingPlanError{Reason: fmt.Sprintf("drop of %s is outside the active allowlist", c.URN)}
		}
	}
	return nil
}

func inScope(urn identifier.URN, scope manifest.Scope) bool {
	switch scope.Level {
	case restype.ScopeDatabase:
		return urn.FQN.HasDatabase() && equalFold(urn.FQN.Database.String(), scope.Database)
	case restype.ScopeSchema:
		if urn.ResourceType == restype.Schema && !urn.FQN.HasSchema() {
			// The scope's own schema seals as db.name, with no schema qualifier.
			return urn.FQN.HasDatabase() &&
				equalFold(urn.FQN.Database.String(), scope.Database) &&
				equalFold(urn.FQN.Name.String(), scope.Schema)
		}
		return urn.FQN.HasDatabase() && urn.FQN.HasSchema() &&
			equalFold(urn.FQN.Database.String(), scope.Database) &&
			equalFold(urn.FQN.Schema.String(), scope.Schema)
	default:
		return true
	}
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if ca >= 'a' && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if cb >= 'a' && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
