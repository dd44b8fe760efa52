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

	"github.com/getbigbytes/snowbytes/restype"
)

type roleRenderer struct{ ddlKind string }

func (r roleRenderer) Create(ctx RenderContext, after map[string]any) (string, error) {
	sql := fmt.Sprintf("CREATE %s %s", r.ddlKind, ctx.QualifiedName())
	if comment, ok := formatValue(after["comment"]); ok {
		sql += " COMMENT = " + comment
	}
	return sql, nil
}

func (r roleRenderer) Update(ctx RenderContext, before, after, delta map[string]any) (string, error) {
	return renderGenericAlter(r.ddlKind, ctx, delta), nil
}

func (r roleRenderer) Drop(ctx RenderContext, before map[string]any) (string, error) {
	return fmt.Sprintf("DROP %s %s", r.ddlKind, ctx.QualifiedName()), nil
}

func init() {
	Register(restype.Role, roleRenderer{ddlKind: "ROLE"})
	Register(restype.DatabaseRole, roleRenderer{ddlKind: "DATABASE ROLE"})
}
