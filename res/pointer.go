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

package res

import "github.com/getbigbytes/snowbytes/restype"

// pointerSentinelKey marks a Resource as a ResourcePointer rather than a
// fully declared resource: a bare reference to
// an object the caller asserts already exists, carrying no attributes of
// its own and merging away into a concrete declaration of the same
// identity if one is present.
const pointerSentinelKey = "__pointer__"

// Pointer builds a ResourcePointer: an identity with no attributes,
// used to reference an existing object (for container stubbing, or to
// satisfy a dependency the blueprint does not itself declare).
func Pointer(kind restype.ResourceType, name NameValue) *Resource {
	return &Resource{Kind: kind, Name: name, Attrs: map[string]any{pointerSentinelKey: true}, Normalize: func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return attrs, nil
	}}
}

// IsPointer reports whether r is a bare ResourcePointer rather than a
// concretely declared resource.
func (r *Resource) IsPointer() bool {
	v, _ := r.Attrs[pointerSentinelKey].(bool)
	return v
}
