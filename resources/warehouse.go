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
	"fmt"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/restype"
)

func init() {
	restype.Register(restype.Metadata{
		Type:     restype.Warehouse,
		Scope:    restype.ScopeAccount,
		Editions: restype.AllEditions(),
	})
}

var warehouseDefaults = map[string]any{
	"comment":             nil,
	"warehouse_size":      "XSMALL",
	"auto_suspend":        600,
	"auto_resume":         true,
	"initially_suspended": (*bool)(nil),
	"min_cluster_count":   1,
	"max_cluster_count":   1,
	"scaling_policy":      "STANDARD",
	"resource_monitor":    nil,
}

// Warehouse declares an account-scoped virtual warehouse. A
// min_cluster_count other than 1 requires Enterprise edition or above;
// on Standard edition scaling_policy is dropped from the attributes.
func Warehouse(name any, opts ...Option) *res.Resource {
	r := newResource(restype.Warehouse, nameValue(name), warehouseDefaults, opts)
	r.Normalize = func(attrs map[string]any, edition restype.Edition) (map[string]any, error) {
		out := withDefaults(attrs, warehouseDefaults)
		if minClusters, ok := out["min_cluster_count"].(int); ok && minClusters != 1 {
			if !restype.Editions(restype.EditionEnterprise, restype.EditionBusinessCritical, restype.EditionVPS).Has(edition) {
				return nil, &errs.WrongEditionError{Reason: fmt.Sprintf("warehouse multi-cluster settings require Enterprise edition or above, account is %s", edition)}
			}
		}
		if edition == restype.EditionStandard {
			delete(out, "scaling_policy")
		}
		return out, nil
	}
	return r
}

// WithWarehouseSize sets the warehouse's compute size (e.g. "XSMALL").
func WithWarehouseSize(size any) Option {
	return func(r *res.Resource) { r.Attrs["warehouse_size"] = size }
}

// WithAutoSuspend sets the auto-suspend interval, in seconds.
func WithAutoSuspend(seconds any) Option {
	return func(r *res.Resource) { r.Attrs["auto_suspend"] = seconds }
}

// WithMinClusterCount sets the warehouse's minimum cluster count
// (Enterprise edition and above for values other than 1).
func WithMinClusterCount(n any) Option {
	return func(r *res.Resource) { r.Attrs["min_cluster_count"] = n }
}

// WithMaxClusterCount sets the warehouse's maximum cluster count.
func WithMaxClusterCount(n any) Option {
	return func(r *res.Resource) { r.Attrs["max_cluster_count"] = n }
}
