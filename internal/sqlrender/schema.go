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
	"strings"

	"github.com/getbigbytes/snowbytes/restype"
)

type schemaRenderer struct{}

var schemaProps = []struct{ attr, prop string }{
	{"data_retention_time_in_days", "DATA_RETENTION_TIME_IN_DAYS"},
	{"max_data_extension_time_in_days", "MAX_DATA_EXTENSION_TIME_IN_DAYS"},
	{"default_ddl_collation", "DEFAULT_DDL_COLLATION"},
	{"managed_access", "MANAGED ACCESS"},
	{"comment", "COMMENT"},
}

func (schemaRenderer) Create(ctx RenderContext, after map[string]any) (string, error) {
	var b strings.Builder
	transient := ""
	if v, _ := after["transient"].(bool); v {
		transient = "TRANSIENT "
	}
	fmt.Fprintf(&b, "CREATE %sSCHEMA %s", transient, ctx.QualifiedName())
	for _, p := range schemaProps {
		if p.attr == "managed_access" {
			if v, _ := after[p.attr].(bool); v {
				b.WriteString(" WITH MANAGED ACCESS")
			}
			continue
		}
		if v, ok := formatValue(after[p.attr]); ok {
			fmt.Fprintf(&b, " %s = %s", p.prop, v)
		}
	}
	return b.String(), nil
}

func (schemaRenderer) Update(ctx RenderContext, before, after, delta map[string]any) (string, error) {
	return renderGenericAlter("SCHEMA", ctx, delta), nil
}

func (schemaRenderer) Drop(ctx RenderContext, before map[string]any) (string, error) {
	return fmt.Sprintf("DROP SCHEMA %s", ctx.QualifiedName()), nil
}

func init() {
	Register(restype.Schema, schemaRenderer{})
}
