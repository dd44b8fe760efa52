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

// Package vars implements the deferred-interpolation string engine:
// a Variable is a named, typed value; a VarString is a
// template holding zero or more "{{ var.NAME }}" placeholders that stays
// lazy until resolved against an Environment. No part of the planner ever
// sees an unresolved VarString; resolution happens during manifest
// sealing.
package vars

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is a variable's declared type.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ParseKind validates a declared variable type spelling.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "string":
		return KindString, true
	case "int":
		return KindInt, true
	case "bool":
		return KindBool, true
	case "float":
		return KindFloat, true
	default:
		return 0, false
	}
}

// Value is a variable's value of declared type. It stores the
// stringified form directly, since every consumer in the core (attribute
// records, owner references, SQL text) wants a string in the end:
// non-string var.NAME usages resolve to the variable's stringified
// value.
type Value struct {
	Kind Kind
	Text string
}

// String builds a string-kind Value.
func String(s string) Value { return Value{Kind: KindString, Text: s} }

// Int builds an int-kind Value.
func Int(i int) Value { return Value{Kind: KindInt, Text: strconv.Itoa(i)} }

// Bool builds a bool-kind Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Text: strconv.FormatBool(b)} }

// Float builds a float-kind Value.
func Float(f float64) Value { return Value{Kind: KindFloat, Text: strconv.FormatFloat(f, 'g', -1, 64)} }

// Environment is a mapping from variable name to value, supplied by the
// caller (the `vars` field of the configuration contract).
type Environment map[string]Value

// MissingVarError is returned when a VarString references a variable
// name absent from the environment (and, for declared vars, with no
// default).
type MissingVarError struct {
	Name string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("vars: variable %q is referenced but has no value and no default", e.Name)
}

var placeholderRe = regexp.MustCompile(`\{\{\s*var\.([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// VarString is a template holding zero or more "{{ var.NAME }}"
// placeholders. It is lazy: it holds its template text until Resolve is
// called, so the planner never sees an unresolved template. A bare
// variable reference with no surrounding text (the Python source's
// `var.role_name` handle) is represented the same way, as a VarString
// whose entire text is one placeholder — Resolve of such a VarString
// returns the referenced variable's stringified value unchanged.
type VarString struct {
	template string
}

// Literal wraps template text as written. Any "{{ var.NAME }}"
// placeholders in it are still substituted by Resolve; text without
// placeholders resolves to itself.
func Literal(s string) VarString { return VarString{template: s} }

// Ref builds a VarString that is a bare reference to a single named
// variable (no surrounding literal text).
func Ref(name string) VarString {
	return VarString{template: "{{ var." + name + " }}"}
}

// HasPlaceholder reports whether the template contains at least one
// "{{ var.NAME }}" placeholder.
func (v VarString) HasPlaceholder() bool {
	return placeholderRe.MatchString(v.template)
}

// Template returns the raw, unresolved template text.
func (v VarString) Template() string { return v.template }

// Resolve substitutes every "{{ var.NAME }}" placeholder with the named
// variable's stringified value, failing with MissingVarError on the
// first name the environment does not carry.
func (v VarString) Resolve(env Environment) (string, error) {
	if !v.HasPlaceholder() {
		return v.template, nil
	}
	var resolveErr error
	result := placeholderRe.ReplaceAllStringFunc(v.template, func(match string) string {
		if resolveErr != nil {
			return match
		}
		name := placeholderRe.FindStringSubmatch(match)[1]
		val, ok := env[name]
		if !ok {
			resolveErr = &MissingVarError{Name: name}
			return match
		}
		return val.Text
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return result, nil
}

// Spec is a declared variable (the optional `vars_spec` list):
// a name, a type, and an optional default.
type Spec struct {
	Name    string
	Type    Kind
	Default *Value
}

// ResolveEnvironment merges a declaration spec's defaults with explicitly
// supplied values (explicit values win), failing with MissingVarError for
// any declared variable with neither a default nor a supplied value.
// Independent of declaration order.
func ResolveEnvironment(specs []Spec, supplied Environment) (Environment, error) {
	env := make(Environment, len(specs)+len(supplied))
	for _, s := range specs {
		if s.Default != nil {
			env[s.Name] = *s.Default
		}
	}
	for name, val := range supplied {
		env[name] = val
	}
	for _, s := range specs {
		if _, ok := env[s.Name]; !ok {
			return nil, &MissingVarError{Name: s.Name}
		}
	}
	return env, nil
}

// HasUnresolvedPlaceholder reports whether a plain string still contains
// a "{{ var.NAME }}" placeholder. Nothing in the module calls it; the
// compiler's pre-render check uses internal/projection instead.
func HasUnresolvedPlaceholder(s string) bool {
	return placeholderRe.MatchString(s)
}

// SplitKey splits a dotted var reference used in non-string contexts
// (owner references written as "role_{{ var.role_name }}") so callers can
// tell a bare reference from a templated one without re-parsing.
func SplitKey(s string) (name string, isBareRef bool) {
	m := placeholderRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], strings.TrimSpace(s) == m[0]
}
