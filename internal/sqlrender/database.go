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

type databaseRenderer struct{}

var databaseProps = []struct{ attr, prop string }{
	{"data_retention_time_in_days", "DATA_RETENTION_TIME_IN_DAYS"},
	{"max_data_extension_time_in_days", "MAX_DATA_EXTENSION_TIME_IN_DAYS"},
	{"default_ddl_collation", "DEFAULT_DDL_COLLATION"},
	{"external_volume", "EXTERNAL_VOLUME"},
	{"catalog", "CATALOG"},
	{"comment", "COMMENT"},
}

func (databaseRenderer) Create(ctx RenderContext, after map[string]any) (string, error) {
	var b strings.Builder
	transient := ""
	if v, _ := after["transient"].(bool); v {
		transient = "TRANSIENT "
	}
	fmt.Fprintf(&b, "CREATE %sDATABASE %s", transient, ctx.QualifiedName())
	for _, p := range databaseProps {
		if v, ok := formatValue(after[p.attr]); ok {
			fmt.Fprintf(&b, " %s = %s", p.prop, v)
		}
	}
	return b.String(), nil
}

func (databaseRenderer) Update(ctx RenderContext, before, after, delta map[string]any) (string, error) {
	return renderGenericAlter("DATABASE", ctx, delta), nil
}

func (databaseRenderer) Drop(ctx RenderContext, before map[string]any) (string, error) {
	return fmt.Sprintf("DROP DATABASE %s", ctx.QualifiedName()), nil
}

func init() {
	Register(restype.Database, databaseRenderer{})
}
