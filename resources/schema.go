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
		Type:        restype.Schema,
		Scope:       restype.ScopeDatabase,
		Editions:    restype.AllEditions(),
		IsContainer: true,
	})
}

var schemaDefaults = map[string]any{
	"comment":                         nil,
	"data_retention_time_in_days":     1,
	"default_ddl_collation":           nil,
	"managed_access":                  false,
	"max_data_extension_time_in_days": 14,
	"transient":                       false,
}

// Schema declares a database-scoped schema. Set its database with the
// WithDatabase option, which takes a bare name, a vars.VarString, or the
// *res.Resource returned by Database — passing
// the resource also links the two via Add so the schema is contained by
// its database in the manifest tree.
func Schema(name any, opts ...Option) *res.Resource {
	r := newResource(restype.Schema, nameValue(name), schemaDefaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, schemaDefaults), nil
	}
	return r
}

// WithDatabase sets the schema's (or any database-scoped resource's)
// database qualifier, linking container membership when db is itself a
// *res.Resource.
func WithDatabase(db any) Option {
	return func(r *res.Resource) {
		r.Database = databaseQualifier(db)
		if parent, ok := db.(*res.Resource); ok {
			parent.Add(r)
		}
	}
}

// WithManagedAccess toggles managed-access mode on a schema.
func WithManagedAccess(v bool) Option {
	return func(r *res.Resource) { r.Attrs["managed_access"] = v }
}
