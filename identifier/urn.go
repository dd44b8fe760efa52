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

package identifier

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/getbigbytes/snowbytes/restype"
)

// URN is the sole identity used across manifest, remote state, and plan:
// (resource_type, fqn, account_locator). Query parameters carry
// discriminators that do not belong in the FQN proper (e.g. a RoleGrant's
// "?role=SYSADMIN" target).
type URN struct {
	ResourceType   restype.ResourceType
	FQN            FQN
	AccountLocator string
	Query          map[string]string
}

// URNEquals reports whether two URNs identify the same object: same type,
// same account locator, FQN-equal, and identical query discriminators.
func URNEquals(a, b URN) bool {
	if a.ResourceType != b.ResourceType {
		return false
	}
	if a.AccountLocator != b.AccountLocator {
		return false
	}
	if !FQNEquals(a.FQN, b.FQN) {
		return false
	}
	if len(a.Query) != len(b.Query) {
		return false
	}
	for k, v := range a.Query {
		if b.Query[k] != v {
			return false
		}
	}
	return true
}

// Key returns a string usable as a map key, consistent with URNEquals.
func (u URN) Key() string {
	var b strings.Builder
	b.WriteString(string(u.ResourceType))
	b.WriteByte(':')
	b.WriteString(u.AccountLocator)
	b.WriteByte(':')
	b.WriteString(u.FQN.Key())
	if len(u.Query) > 0 {
		keys := sortedKeys(u.Query)
		b.WriteByte('?')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(u.Query[k])
		}
	}
	return b.String()
}

// String renders the URN wire form: urn::<locator>:<type>/<fqn>[?k=v&…].
// The doubled colon is not a typo: the wire form reserves a leading
// namespace slot ahead of the account locator (always empty for a
// single-account core) — see DESIGN.md for why this literal form was
// picked over a single-colon rendering.
func (u URN) String() string {
	var b strings.Builder
	b.WriteString("urn::")
	b.WriteString(u.AccountLocator)
	b.WriteByte(':')
	b.WriteString(string(u.ResourceType))
	b.WriteByte('/')
	b.WriteString(u.FQN.String())
	if len(u.Query) > 0 {
		keys := sortedKeys(u.Query)
		b.WriteByte('?')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(u.Query[k]))
		}
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseURN is the inverse of URN.String for every well-formed URN this
// package produces: urn::<locator>:<type>/<fqn>[?k=v&…].
func ParseURN(s string) (URN, error) {
	if !strings.HasPrefix(s, "urn:") {
		return URN{}, fmt.Errorf("identifier: not a urn: %q", s)
	}
	rest := s[len("urn:"):]

	nsColon := strings.IndexByte(rest, ':')
	if nsColon < 0 {
		return URN{}, fmt.Errorf("identifier: malformed urn, missing namespace separator: %q", s)
	}
	rest = rest[nsColon+1:] // skip the always-empty namespace slot

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return URN{}, fmt.Errorf("identifier: malformed urn, missing locator separator: %q", s)
	}
	locator := rest[:colon]
	rest = rest[colon+1:]

	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return URN{}, fmt.Errorf("identifier: malformed urn, missing type separator: %q", s)
	}
	typeStr := rest[:slash]
	rest = rest[slash+1:]

	fqnStr := rest
	query := map[string]string{}
	if q := strings.IndexByte(rest, '?'); q >= 0 {
		fqnStr = rest[:q]
		values, err := url.ParseQuery(rest[q+1:])
		if err != nil {
			return URN{}, fmt.Errorf("identifier: malformed urn query: %w", err)
		}
		for k := range values {
			query[k] = values.Get(k)
		}
	}

	rt, ok := restype.Parse(typeStr)
	if !ok {
		return URN{}, fmt.Errorf("identifier: unknown resource type %q in urn %q", typeStr, s)
	}

	fqn, err := ParseFQN(fqnStr)
	if err != nil {
		return URN{}, fmt.Errorf("identifier: malformed urn fqn: %w", err)
	}
	// A database-scoped type renders its two-part FQN as db.name, not
	// schema.name.
	if meta, known := restype.Lookup(rt); known && meta.Scope == restype.ScopeDatabase &&
		!fqn.HasDatabase() && fqn.HasSchema() {
		fqn.Database, fqn.Schema = fqn.Schema, fqn.Database
	}

	return URN{
		ResourceType:   rt,
		FQN:            fqn,
		AccountLocator: locator,
		Query:          query,
	}, nil
}
