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

package resources

import (
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/restype"
)

func init() {
	restype.Register(restype.Metadata{
		Type:     restype.Role,
		Scope:    restype.ScopeAccount,
		Editions: restype.AllEditions(),
	})
	restype.Register(restype.Metadata{
		Type:     restype.DatabaseRole,
		Scope:    restype.ScopeDatabase,
		Editions: restype.AllEditions(),
	})
}

var roleDefaults = map[string]any{
	"comment": nil,
}

// Role declares an account-level role. Its default owner, absent an
// explicit WithOwner, is USERADMIN — the manifest builder fills that in
// at sealing time since it is a session-derived default, not a constant.
func Role(name any, opts ...Option) *res.Resource {
	r := newResource(restype.Role, nameValue(name), roleDefaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, roleDefaults), nil
	}
	return r
}

// DatabaseRole declares a database-scoped role.
func DatabaseRole(name any, opts ...Option) *res.Resource {
	r := newResource(restype.DatabaseRole, nameValue(name), roleDefaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, roleDefaults), nil
	}
	return r
}
