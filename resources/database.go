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
		Type:        restype.Database,
		Scope:       restype.ScopeAccount,
		Editions:    restype.AllEditions(),
		IsContainer: true,
	})
}

var databaseDefaults = map[string]any{
	"comment":                         nil,
	"catalog":                         nil,
	"external_volume":                 nil,
	"data_retention_time_in_days":     1,
	"default_ddl_collation":           nil,
	"max_data_extension_time_in_days": 14,
	"transient":                       false,
}

// Database declares an account-scoped Snowflake database, the Schema
// container's parent.
func Database(name any, opts ...Option) *res.Resource {
	r := newResource(restype.Database, nameValue(name), databaseDefaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, databaseDefaults), nil
	}
	return r
}

// WithTransient marks the database or schema as transient (no fail-safe).
func WithTransient(v bool) Option {
	return func(r *res.Resource) { r.Attrs["transient"] = v }
}

// WithDataRetentionTimeInDays sets Time Travel retention, in days.
func WithDataRetentionTimeInDays(days any) Option {
	return func(r *res.Resource) { r.Attrs["data_retention_time_in_days"] = days }
}

// withDefaults returns a copy of defaults overlaid with whatever is
// already present in attrs, so every normalize function reports the full
// attribute set even when the caller supplied only a subset.
func withDefaults(attrs map[string]any, defaults map[string]any) map[string]any {
	out := make(map[string]any, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
