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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/restype"
)

func mustURN(t *testing.T, s string) identifier.URN {
	t.Helper()
	urn, err := identifier.ParseURN(s)
	require.NoError(t, err)
	return urn
}

func TestRoleRenderer_Create(t *testing.T) {
	r, err := Lookup(restype.Role)
	require.NoError(t, err)
	sql, err := r.Create(RenderContext{URN: mustURN(t, "urn::ABCD123:role/SOME_ROLE")}, map[string]any{"name": "SOME_ROLE"})
	require.NoError(t, err)
	assert.Equal(t, "CREATE ROLE SOME_ROLE", sql)
}

func TestRoleGrantRenderer_Create(t *testing.T) {
	r, err := Lookup(restype.RoleGrant)
	require.NoError(t, err)
	sql, err := r.Create(RenderContext{}, map[string]any{"role": "SOME_ROLE", "to_role": "SYSADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "GRANT ROLE SOME_ROLE TO ROLE SYSADMIN", sql)
}

func TestWarehouseRenderer_CreateOmitsNilAttrs(t *testing.T) {
	r, err := Lookup(restype.Warehouse)
	require.NoError(t, err)
	sql, err := r.Create(RenderContext{URN: mustURN(t, "urn::ABCD123:warehouse/WH")}, map[string]any{
		"warehouse_size": "XSMALL",
		"auto_suspend":   600,
		"auto_resume":    true,
		"comment":        nil,
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "CREATE WAREHOUSE WH")
	assert.Contains(t, sql, "WAREHOUSE_SIZE = 'XSMALL'")
	assert.NotContains(t, sql, "COMMENT")
}

func TestLookup_UnsupportedKind(t *testing.T) {
	_, err := Lookup(restype.Tag)
	var unsupported *errs.UnsupportedFeatureError
	require.ErrorAs(t, err, &unsupported)
}
