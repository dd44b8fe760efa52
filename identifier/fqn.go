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

// Package identifier implements the fully-qualified name and URN
// algebra: FQN rendering (db.schema.name, quoting preserved,
// overloaded callables append argtypes) and URN parse/render, which must
// be inverses for every well-formed URN the core produces.
package identifier

import (
	"fmt"
	"strings"

	"github.com/getbigbytes/snowbytes/resourcename"
)

// FQN is a tuple (database?, schema?, name, arg_types?). ArgTypes exists
// only for overloadable callables and participates in identity alongside
// the name.
type FQN struct {
	Database resourcename.Name
	Schema   resourcename.Name
	Name     resourcename.Name
	// ArgTypes is nil for non-callable resource kinds, and a (possibly
	// empty) slice for callables — nil vs empty-slice is significant: a
	// zero-arg function still has ArgTypes = []string{}, never nil.
	ArgTypes []string
}

// HasDatabase reports whether the FQN carries a database qualifier.
func (f FQN) HasDatabase() bool { return !f.Database.IsEmpty() }

// HasSchema reports whether the FQN carries a schema qualifier.
func (f FQN) HasSchema() bool { return !f.Schema.IsEmpty() }

// IsCallable reports whether this FQN identifies an overloadable callable.
func (f FQN) IsCallable() bool { return f.ArgTypes != nil }

// FQNEquals implements FQN identity: database/schema/name compare with
// the platform's case rule, and for callables arg_types must match
// exactly.
func FQNEquals(a, b FQN) bool {
	if !resourcename.Equals(a.Database, b.Database) {
		return false
	}
	if !resourcename.Equals(a.Schema, b.Schema) {
		return false
	}
	if !resourcename.Equals(a.Name, b.Name) {
		return false
	}
	if a.IsCallable() != b.IsCallable() {
		return false
	}
	if !a.IsCallable() {
		return true
	}
	if len(a.ArgTypes) != len(b.ArgTypes) {
		return false
	}
	for i := range a.ArgTypes {
		if !strings.EqualFold(a.ArgTypes[i], b.ArgTypes[i]) {
			return false
		}
	}
	return true
}

// Key returns a string suitable for use as a map key, consistent with
// FQNEquals.
func (f FQN) Key() string {
	var b strings.Builder
	b.WriteString(f.Database.Key())
	b.WriteByte('.')
	b.WriteString(f.Schema.Key())
	b.WriteByte('.')
	b.WriteString(f.Name.Key())
	if f.IsCallable() {
		b.WriteByte('(')
		for i, a := range f.ArgTypes {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strings.ToUpper(a))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// String renders db.schema.name with quoting preserved; overloaded
// callables append "(argtype,…)". Canonical form always includes the
// parens for callables; they are never stripped.
func (f FQN) String() string {
	parts := make([]string, 0, 3)
	if f.HasDatabase() {
		parts = append(parts, f.Database.String())
	}
	if f.HasSchema() {
		parts = append(parts, f.Schema.String())
	}
	parts = append(parts, f.Name.String())
	s := strings.Join(parts, ".")
	if f.IsCallable() {
		s += "(" + strings.Join(f.ArgTypes, ", ") + ")"
	}
	return s
}

// ParseFQN parses "db.schema.name" or "db.schema.name(argtype,…)" into an
// FQN. Leading components are optional: "name", "schema.name", and
// "db.schema.name" are all accepted, with the missing leading components
// left empty.
func ParseFQN(s string) (FQN, error) {
	var argTypes []string
	if i := strings.IndexByte(s, '('); i >= 0 {
		if !strings.HasSuffix(s, ")") {
			return FQN{}, fmt.Errorf("identifier: malformed callable fqn %q", s)
		}
		inner := s[i+1 : len(s)-1]
		s = s[:i]
		if strings.TrimSpace(inner) == "" {
			argTypes = []string{}
		} else {
			for _, a := range strings.Split(inner, ",") {
				argTypes = append(argTypes, strings.TrimSpace(a))
			}
		}
	}

	parts, err := splitDotted(s)
	if err != nil {
		return FQN{}, err
	}

	fqn := FQN{ArgTypes: argTypes}
	switch len(parts) {
	case 1:
		fqn.Name = resourcename.New(parts[0])
	case 2:
		fqn.Schema = resourcename.New(parts[0])
		fqn.Name = resourcename.New(parts[1])
	case 3:
		fqn.Database = resourcename.New(parts[0])
		fqn.Schema = resourcename.New(parts[1])
		fqn.Name = resourcename.New(parts[2])
	default:
		return FQN{}, fmt.Errorf("identifier: too many components in fqn %q", s)
	}
	return fqn, nil
}

// splitDotted splits on '.' outside of double-quoted segments, so a
// quoted name containing a literal '.' is not mistaken for a separator.
func splitDotted(s string) ([]string, error) {
	var parts []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == '.' && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("identifier: unterminated quote in %q", s)
	}
	parts = append(parts, cur.String())
	return parts, nil
}
