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

package manifest

import (
	"fmt"
	"sort"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/resourcename"
	"github.com/getbigbytes/snowbytes/restype"
	"github.com/getbigbytes/snowbytes/vars"
)

// MergePointers deduplicates the resource set: group resources by
// declared identity (kind + database/schema qualifiers + name), merge a
// bare ResourcePointer into the concrete declaration of the same
// identity if one exists, fail on two concrete declarations of the same
// identity with conflicting attributes, and silently drop a PUBLIC
// schema pointer whose database declares no other PUBLIC schema (the
// platform auto-creates PUBLIC, so asserting it exists is a no-op).
func MergePointers(resources []*res.Resource) ([]*res.Resource, error) {
	groups := map[string][]*res.Resource{}
	order := []string{}
	for _, r := range resources {
		key := identityKey(r)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	merged := make([]*res.Resource, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if elideImpliedPublicSchema(group) {
			continue
		}

		var concrete *res.Resource
		for _, r := range group {
			if r.IsPointer() {
				continue
			}
			if concrete == nil {
				concrete = r
				continue
			}
			if !attrsConflictFree(concrete.Attrs, r.Attrs) {
				return nil, &errs.DuplicateResourceError{URN: key}
			}
		}
		if concrete != nil {
			merged = append(merged, concrete)
		} else {
			merged = append(merged, group[0])
		}
	}
	return merged, nil
}

// elideImpliedPublicSchema drops a bare PUBLIC-schema pointer when it is
// the only declaration for that identity — the platform auto-creates
// PUBLIC, so a pointer asserting its existence carries no information.
func elideImpliedPublicSchema(group []*res.Resource) bool {
	if len(group) != 1 {
		return false
	}
	r := group[0]
	if r.Kind != restype.Schema || !r.IsPointer() {
		return false
	}
	name, ok := r.Name.(resourcename.Name)
	if !ok {
		return false
	}
	return resourcename.Equals(name, resourcename.New("PUBLIC"))
}

func attrsConflictFree(a, b map[string]any) bool {
	for k, av := range a {
		if k == pointerSentinelKeyMirror {
			continue
		}
		if bv, ok := b[k]; ok && fmt.Sprint(av) != fmt.Sprint(bv) {
			return false
		}
	}
	return true
}

// pointerSentinelKeyMirror mirrors res's private pointer marker key so
// attrsConflictFree does not fail two concrete resources over it; it is
// never set on a concrete (non-pointer) resource in practice.
const pointerSentinelKeyMirror = "__pointer__"

func identityKey(r *res.Resource) string {
	key := fmt.Sprintf("%s|%s|%s|%s", r.Kind, nameValueText(r.Database), nameValueText(r.Schema), nameValueText(r.Name))
	if len(r.Query) > 0 {
		qk := make([]string, 0, len(r.Query))
		for k := range r.Query {
			qk = append(qk, k)
		}
		sort.Strings(qk)
		for _, k := range qk {
			key += "|" + k + "=" + nameValueText(r.Query[k])
		}
	}
	return key
}

func nameValueText(n res.NameValue) string {
	switch v := n.(type) {
	case nil:
		return ""
	case resourcename.Name:
		return v.Key()
	case vars.VarString:
		return "var:" + v.Template()
	case string:
		return resourcename.New(v).Key()
	default:
		return fmt.Sprintf("%v", v)
	}
}
