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
		Type:     restype.Task,
		Scope:    restype.ScopeSchema,
		Editions: restype.AllEditions(),
	})
}

var taskDefaults = map[string]any{
	"schedule":                    nil,
	"warehouse":                   nil,
	"as_":                         nil,
	"after":                       nil,
	"when":                        nil,
	"allow_overlapping_execution": false,
	"comment":                     nil,
}

// Task declares a schema-scoped scheduled task.
func Task(name any, asSQL string, opts ...Option) *res.Resource {
	defaults := withDefaults(map[string]any{"as_": asSQL}, taskDefaults)
	r := newResource(restype.Task, nameValue(name), defaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, defaults), nil
	}
	return r
}

// WithSchedule sets the task's CRON or interval schedule.
func WithSchedule(schedule any) Option {
	return func(r *res.Resource) { r.Attrs["schedule"] = schedule }
}

// WithWarehouse sets the warehouse a task runs on.
func WithWarehouse(warehouse any) Option {
	return func(r *res.Resource) { r.Attrs["warehouse"] = warehouse }
}

// WithAfter sets the predecessor task(s) this task runs after.
func WithAfter(after ...string) Option {
	return func(r *res.Resource) { r.Attrs["after"] = after }
}
