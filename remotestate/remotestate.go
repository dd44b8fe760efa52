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

// Package remotestate is the read-only adapter over whatever snapshot of
// live Snowflake objects the caller already collected; this core never
// queries a warehouse itself, the caller hands it a map.
package remotestate

import "github.com/getbigbytes/snowbytes/identifier"

// State is a URN-keyed snapshot of remote object attributes, as the
// caller observed them. A URN absent from State means "does not exist
// remotely" to the planner; State never holds partial/invalid entries.
//
// identifier.URN embeds a slice (FQN.ArgTypes) and so is not itself a
// valid Go map key; State indexes by URN.Key() instead and keeps the
// original URN alongside each entry for callers that need to recover it.
type State struct {
	entries map[string]entry
}

type entry struct {
	urn   identifier.URN
	attrs map[string]any
}

// New builds a State from a URN-to-attributes mapping.
func New(m map[identifier.URN]map[string]any) State {
	s := State{entries: make(map[string]entry, len(m))}
	for urn, attrs := range m {
		s.entries[urn.Key()] = entry{urn: urn, attrs: attrs}
	}
	return s
}

// Set records (or replaces) the remote attributes observed for urn.
func (s *State) Set(urn identifier.URN, attrs map[string]any) {
	if s.entries == nil {
		s.entries = make(map[string]entry)
	}
	s.entries[urn.Key()] = entry{urn: urn, attrs: attrs}
}

// Get returns the remote attributes for urn and whether it was present.
func (s State) Get(urn identifier.URN) (map[string]any, bool) {
	e, ok := s.entries[urn.Key()]
	if !ok {
		return nil, false
	}
	return e.attrs, true
}

// Has reports whether urn exists in remote state.
func (s State) Has(urn identifier.URN) bool {
	_, ok := s.Get(urn)
	return ok
}

// URNs returns every URN present in remote state, in no particular order.
func (s State) URNs() []identifier.URN {
	urns := make([]identifier.URN, 0, len(s.entries))
	for _, e := range s.entries {
		urns = append(urns, e.urn)
	}
	return urns
}

// Len reports the number of entries in remote state.
func (s State) Len() int { return len(s.entries) }
