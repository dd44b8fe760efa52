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
	"sort"
	"strings"

	"github.com/getbigbytes/snowbytes/restype"
)

type warehouseRenderer struct{}

// warehouseProps maps attribute keys to their SQL property name, in the
// fixed order Snowflake's own docs list them — keeping generated DDL
// stable across runs instead of depending on Go's randomized map order.
var warehouseProps = []struct{ attr, prop string }{
	{"warehouse_size", "WAREHOUSE_SIZE"},
	{"auto_suspend", "AUTO_SUSPEND"},
	{"auto_resume", "AUTO_RESUME"},
	{"initially_suspended", "INITIALLY_SUSPENDED"},
	{"min_cluster_count", "MIN_CLUSTER_COUNT"},
	{"max_cluster_count", "MAX_CLUSTER_COUNT"},
	{"scaling_policy", "SCALING_POLICY"},
	{"resource_monitor", "RESOURCE_MONITOR"},
	{"comment", "COMMENT"},
}

func (warehouseRenderer) Create(ctx RenderContext, after map[string]any) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE WAREHOUSE %s", ctx.QualifiedName())
	for _, p := range warehouseProps {
		if v, ok := formatValue(after[p.attr]); ok {
			fmt.Fprintf(&b, " %s = %s", p.prop, v)
		}
	}
	return b.String(), nil
}

func (warehouseRenderer) Update(ctx RenderContext, before, after, delta map[string]any) (string, error) {
	return renderGenericAlter("WAREHOUSE", ctx, delta), nil
}

func (warehouseRenderer) Drop(ctx RenderContext, before map[string]any) (string, error) {
	return fmt.Sprintf("DROP WAREHOUSE %s", ctx.QualifiedName()), nil
}

// renderGenericAlter renders "ALTER <kind> <name> SET k = v, ..." over a
// delta map, in sorted key order for determinism.
func renderGenericAlter(kind string, ctx RenderContext, delta map[string]any) string {
	keys := make([]string, 0, len(delta))
	for k := range delta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := formatValue(delta[k]); ok {
			sets = append(sets, fmt.Sprintf("%s = %s", strings.ToUpper(k), v))
		}
	}
	return fmt.Sprintf("ALTER %s %s SET %s", kind, ctx.QualifiedName(), strings.Join(sets, ", "))
}

func init() {
	Register(restype.Warehouse, warehouseRenderer{})
}
