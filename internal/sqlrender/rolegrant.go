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

package sqlrender

import (
	"fmt"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/restype"
)

// roleGrantRenderer emits "GRANT ROLE <role> TO ROLE <to_role>". A role
// grant has no meaningful update: the pair is its whole identity, so a
// changed grantee is a different grant, not a delta of this one.
type roleGrantRenderer struct{}

func (roleGrantRenderer) Create(ctx RenderContext, after map[string]any) (string, error) {
	role, _ := after["role"].(string)
	toRole, _ := after["to_role"].(string)
	return fmt.Sprintf("GRANT ROLE %s TO ROLE %s", role, toRole), nil
}

func (roleGrantRenderer) Update(ctx RenderContext, before, after, delta map[string]any) (string, error) {
	return "", &errs.UnsupportedFeatureError{Kind: "role_grant update"}
}

func (roleGrantRenderer) Drop(ctx RenderContext, before map[string]any) (string, error) {
	role, _ := before["role"].(string)
	toRole, _ := before["to_role"].(string)
	return fmt.Sprintf("REVOKE ROLE %s FROM ROLE %s", role, toRole), nil
}

func init() {
	Register(restype.RoleGrant, roleGrantRenderer{})
}
