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
		Type:     restype.RoleGrant,
		Scope:    restype.ScopeAccount,
		Editions: restype.AllEditions(),
	})
}

// RoleGrant declares "GRANT ROLE <role> TO ROLE <toRole>". Its name for
// FQN purposes is the granted role's name; the grantee role is carried as
// the "role" query discriminator, giving the URN
// "role_grant/<ROLE>?role=<TO_ROLE>" — a RoleGrant's identity is the pair,
// not the granted role alone.
func RoleGrant(role *res.Resource, toRole any, opts ...Option) *res.Resource {
	r := newResource(restype.RoleGrant, role.Name, map[string]any{}, opts)
	r.Attrs["role"] = role.Name
	r.Attrs["to_role"] = nameValue(toRole)
	r.Query = map[string]res.NameValue{"role": nameValue(toRole)}
	r.Requires(role)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return attrs, nil
	}
	return r
}
