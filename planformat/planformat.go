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

// Package planformat serializes a Plan to JSON or a human-readable text
// diff, and parses a previously dumped JSON plan
// back into the in-memory form (e.g. for `blueprint apply <saved-plan>`
// workflows that plan and apply as separate steps).
package planformat

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/planner"
	"github.com/getbigbytes/snowbytes/restype"
)

// FormatVersion is the plan format's own semver, independent of the
// module's version — bumped only when the JSON shape changes in a way a
// consumer must account for.
const FormatVersion = "1.0.0"

// formatConstraint is what PlanFromDict accepts from a versioned
// envelope: any 1.x is compatible, a 2.x producer is not.
var formatConstraint = semver.MustParse(FormatVersion)

// Format selects dump_plan's output shape.
type Format string

const (
	JSON Format = "json"
	Text Format = "text"
)

// DumpPlan renders plan in the requested format. JSON output is a bare
// array of per-change objects — matching a caller that expects
// `json.loads(dump_plan(plan, format="json"))` to be a list, not an
// envelope.
func DumpPlan(plan planner.Plan, format Format) (string, error) {
	switch format {
	case JSON:
		return dumpJSON(plan)
	case Text:
		return dumpText(plan), nil
	default:
		return "", &errs.ConfigError{Reason: fmt.Sprintf("unknown plan format %q", format)}
	}
}

// DumpVersioned wraps DumpPlan's JSON form in a {"format_version", "changes"}
// envelope, for callers that persist a plan and later reload it with
// PlanFromDict — the ambient "what wrote this and is it safe to read"
// guard that a bare array can't carry.
func DumpVersioned(plan planner.Plan) (string, error) {
	body, err := changeDicts(plan)
	if err != nil {
		return "", err
	}
	envelope := map[string]any{
		"format_version": FormatVersion,
		"changes":        body,
	}
	out, err := json.Marshal(envelope)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func dumpJSON(plan planner.Plan) (string, error) {
	body, err := changeDicts(plan)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func changeDicts(plan planner.Plan) ([]map[string]any, error) {
	dicts := make([]map[string]any, 0, len(plan))
	for _, c := range plan {
		d := map[string]any{
			"action": c.Action.String(),
			"urn":    c.URN.String(),
		}
		if c.Action != planner.Drop {
			d["resource_cls"] = className(c.ResourceType)
		}
		switch c.Action {
		case planner.Create:
			d["after"] = c.After
		case planner.Update:
			d["before"] = c.Before
			d["after"] = c.After
			d["delta"] = c.Delta
		case planner.Transfer:
			d["from_owner"] = c.FromOwner
			d["to_owner"] = c.ToOwner
		case planner.Drop:
			d["before"] = c.Before
		}
		dicts = append(dicts, d)
	}
	return dicts, nil
}

// className maps a restype.ResourceType (snake_case) to the display name
// a Python caller would recognize as the resource's class
// (e.g. "role_grant" -> "RoleGrant").
func className(kind restype.ResourceType) string {
	parts := strings.Split(string(kind), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

func dumpText(plan planner.Plan) string {
	var creates, updates, transfers, drops int
	for _, c := range plan {
		switch c.Action {
		case planner.Create:
			creates++
		case planner.Update:
			updates++
		case planner.Transfer:
			transfers++
		case planner.Drop:
			drops++
		}
	}

	var b strings.Builder
	b.WriteString("\n» snowbytes\n")
	fmt.Fprintf(&b, "» Plan: %d to create, %d to update, %d to transfer, %d to drop.\n\n", creates, updates, transfers, drops)

	for _, c := range plan {
		writeChangeBlock(&b, c)
	}

	return b.String()
}

func writeChangeBlock(b *strings.Builder, c *planner.Change) {
	switch c.Action {
	case planner.Create:
		writePropertyBlock(b, "+", c.URN.String(), orderedPairs(c.After, nil))
	case planner.Update:
		writePropertyBlock(b, "~", c.URN.String(), orderedPairs(c.Delta, c.Before))
	case planner.Transfer:
		writePropertyBlock(b, "~", c.URN.String(), []pair{{key: "owner", before: pyRepr(c.FromOwner), after: pyRepr(c.ToOwner), isTransfer: true}})
	case planner.Drop:
		fmt.Fprintf(b, "- %s\n\n", c.URN.String())
	}
}

type pair struct {
	key        string
	value      string // create form: "key = value"
	before     string // update/transfer form
	after      string
	isTransfer bool
}

// orderedPairs lists a change's attribute keys for the text diff. A full
// attribute dump (create) leads with "name" then "owner" — matching every
// resource kind's own declaration order — with the rest sorted
// alphabetically; a delta (update) has no such convention to honor, so
// its keys are sorted alphabetically outright.
func orderedPairs(values map[string]any, before map[string]any) []pair {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if before == nil {
		keys = leadWithNameAndOwner(keys)
	}

	pairs := make([]pair, 0, len(keys))
	for _, k := range keys {
		if before != nil {
			pairs = append(pairs, pair{key: k, before: pyRepr(before[k]), after: pyRepr(values[k])})
		} else {
			pairs = append(pairs, pair{key: k, value: pyRepr(values[k])})
		}
	}
	return pairs
}

func leadWithNameAndOwner(keys []string) []string {
	rest := make([]string, 0, len(keys))
	var name, owner bool
	for _, k := range keys {
		switch k {
		case "name":
			name = true
		case "owner":
			owner = true
		default:
			rest = append(rest, k)
		}
	}
	ordered := make([]string, 0, len(keys))
	if name {
		ordered = append(ordered, "name")
	}
	if owner {
		ordered = append(ordered, "owner")
	}
	return append(ordered, rest...)
}

func writePropertyBlock(b *strings.Builder, sigil, urn string, pairs []pair) {
	fmt.Fprintf(b, "%s %s {\n", sigil, urn)
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	for _, p := range pairs {
		if p.before != "" || p.after != "" {
			fmt.Fprintf(b, "  %s %-*s = %s -> %s\n", sigil, width, p.key, p.before, p.after)
		} else {
			fmt.Fprintf(b, "  %s %-*s = %s\n", sigil, width, p.key, p.value)
		}
	}
	b.WriteString("}\n\n")
}

// pyRepr renders a value the way the original Python implementation's
// diff printer does: None/True/False and double-quoted strings, not Go's
// own nil/true/false/%q spellings.
func pyRepr(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case string:
		return `"` + val + `"`
	default:
		return fmt.Sprintf("%v", val)
	}
}

// PlanFromDict parses a JSON-encoded plan — either the bare array
// DumpPlan(format=JSON) produces or the versioned envelope
// DumpVersioned produces — back into a Plan.
func PlanFromDict(raw []byte) (planner.Plan, error) {
	var envelope struct {
		FormatVersion string           `json:"format_version"`
		Changes       []map[string]any `json:"changes"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Changes != nil {
		if envelope.FormatVersion != "" {
			v, err := semver.NewVersion(envelope.FormatVersion)
			if err != nil {
				return nil, &errs.ConfigError{Reason: fmt.Sprintf("invalid plan format_version %q: %s", envelope.FormatVersion, err)}
			}
			if v.Major() != formatConstraint.Major() {
				return nil, &errs.ConfigError{Reason: fmt.Sprintf("plan format_version %s is incompatible with reader version %s", envelope.FormatVersion, FormatVersion)}
			}
		}
		return changesFromDicts(envelope.Changes)
	}

	var bare []map[string]any
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("planformat: malformed plan JSON: %w", err)
	}
	return changesFromDicts(bare)
}

func changesFromDicts(dicts []map[string]any) (planner.Plan, error) {
	plan := make(planner.Plan, 0, len(dicts))
	for _, d := range dicts {
		action, ok := d["action"].(string)
		if !ok {
			return nil, &errs.ConfigError{Reason: "plan entry missing action"}
		}
		urnStr, ok := d["urn"].(string)
		if !ok {
			return nil, &errs.ConfigError{Reason: "plan entry missing urn"}
		}
		urn, err := identifier.ParseURN(urnStr)
		if err != nil {
			return nil, err
		}

		c := &planner.Change{URN: urn, ResourceType: urn.ResourceType}
		switch action {
		case "CREATE":
			c.Action = planner.Create
			c.After, _ = d["after"].(map[string]any)
		case "UPDATE":
			c.Action = planner.Update
			c.Before, _ = d["before"].(map[string]any)
			c.After, _ = d["after"].(map[string]any)
			c.Delta, _ = d["delta"].(map[string]any)
		case "TRANSFER":
			c.Action = planner.Transfer
			c.FromOwner, _ = d["from_owner"].(string)
			c.ToOwner, _ = d["to_owner"].(string)
		case "DROP":
			c.Action = planner.Drop
			c.Before, _ = d["before"].(map[string]any)
		default:
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("unknown plan action %q", action)}
		}
		plan = append(plan, c)
	}
	return plan, nil
}
