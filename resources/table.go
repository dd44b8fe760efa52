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
		Type:     restype.Table,
		Scope:    restype.ScopeSchema,
		Editions: restype.AllEditions(),
	})
}

// Column is a table column declaration. DataType defaults to
// "NUMBER(38,0)" when left empty, matching the platform's bare-INT
// column default.
type Column struct {
	Name       string
	DataType   string
	Collate    *string
	Comment    *string
	Constraint *string
	NotNull    bool
	Default    any
	Tags       map[string]string
}

func (c Column) normalized() map[string]any {
	dataType := c.DataType
	if dataType == "" || dataType == "INT" {
		dataType = "NUMBER(38,0)"
	}
	return map[string]any{
		"name":       c.Name,
		"data_type":  dataType,
		"collate":    c.Collate,
		"comment":    c.Comment,
		"constraint": c.Constraint,
		"not_null":   c.NotNull,
		"default":    c.Default,
		"tags":       c.Tags,
	}
}

var tableDefaults = map[string]any{
	"constraints":                     nil,
	"transient":                       false,
	"cluster_by":                      nil,
	"enable_schema_evolution":         false,
	"data_retention_time_in_days":     nil,
	"max_data_extension_time_in_days": nil,
	"change_tracking":                 false,
	"default_ddl_collation":           nil,
	"copy_grants":                     nil,
	"row_access_policy":               nil,
	"comment":                         nil,
}

// Table declares a schema-scoped table.
func Table(name any, columns []Column, opts ...Option) *res.Resource {
	normalizedColumns := make([]map[string]any, len(columns))
	for i, c := range columns {
		normalizedColumns[i] = c.normalized()
	}
	defaults := withDefaults(map[string]any{"columns": normalizedColumns}, tableDefaults)
	r := newResource(restype.Table, nameValue(name), defaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, defaults), nil
	}
	return r
}

// WithClusterBy sets the table's clustering key expression(s).
func WithClusterBy(exprs []string) Option {
	return func(r *res.Resource) { r.Attrs["cluster_by"] = exprs }
}
