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

package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/internal/manifest"
	"github.com/getbigbytes/snowbytes/planner"
	"github.com/getbigbytes/snowbytes/remotestate"
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/resources"
	"github.com/getbigbytes/snowbytes/restype"
)

func TestCompile_RoleGrantThenWarehouseOwnershipTransfer(t *testing.T) {
	role := resources.Role("SOME_ROLE")
	grant := resources.RoleGrant(role, "SYSADMIN")
	wh := resources.Warehouse("WH", resources.WithOwner(role))

	m, err := manifest.Build([]*res.Resource{role, grant, wh}, manifest.Config{
		AccountLocator: "ABCD123",
		AccountEdition: restype.EditionEnterprise,
		SessionRole:    "SYSADMIN",
	})
	require.NoError(t, err)

	plan, err := planner.Build(remotestate.State{}, m, planner.Config{})
	require.NoError(t, err)

	sql, err := Compile(Session{Role: "SYSADMIN"}, plan)
	require.NoError(t, err)
	require.Len(t, sql, 8)

	assert.Equal(t, "USE SECONDARY ROLES ALL", sql[0])
	assert.Equal(t, "USE ROLE USERADMIN", sql[1])
	assert.Equal(t, "CREATE ROLE SOME_ROLE", sql[2])
	assert.Equal(t, "USE ROLE SECURITYADMIN", sql[3])
	assert.Equal(t, "GRANT ROLE SOME_ROLE TO ROLE SYSADMIN", sql[4])
	assert.Equal(t, "USE ROLE SYSADMIN", sql[5])
	assert.Contains(t, sql[6], "CREATE WAREHOUSE WH")
	assert.Equal(t, "GRANT OWNERSHIP ON WAREHOUSE WH TO ROLE SOME_ROLE COPY CURRENT GRANTS", sql[7])
}

func TestCompile_WarehouseOnlyUsesSessionRole(t *testing.T) {
	wh := resources.Warehouse("WH", resources.WithWarehouseSize("XSMALL"))
	m, err := manifest.Build([]*res.Resource{wh}, manifest.Config{
		AccountLocator: "ABCD123",
		AccountEdition: restype.EditionStandard,
		SessionRole:    "SYSADMIN",
	})
	require.NoError(t, err)

	plan, err := planner.Build(remotestate.State{}, m, planner.Config{})
	require.NoError(t, err)

	sql, err := Compile(Session{Role: "SYSADMIN"}, plan)
	require.NoError(t, err)
	require.Len(t, sql, 3)
	assert.Equal(t, "USE SECONDARY ROLES ALL", sql[0])
	assert.Equal(t, "USE ROLE SYSADMIN", sql[1])
	assert.Contains(t, sql[2], "CREATE WAREHOUSE WH")
	assert.NotContains(t, sql[2], "SCALING_POLICY")
}

func TestCompile_RejectsUnresolvedVarTemplate(t *testing.T) {
	urn, err := identifier.ParseURN("urn::ABCD123:warehouse/WH")
	require.NoError(t, err)
	plan := planner.Plan{{
		Action:       planner.Create,
		URN:          urn,
		ResourceType: restype.Warehouse,
		After:        map[string]any{"name": "WH", "comment": "{{ var.team }}"},
	}}

	_, err = Compile(Session{Role: "SYSADMIN"}, plan)
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestCompile_RejectsActingRoleSessionCannotAssume(t *testing.T) {
	role := resources.Role("SOME_ROLE")
	m, err := manifest.Build([]*res.Resource{role}, manifest.Config{
		AccountLocator: "ABCD123",
		AccountEdition: restype.EditionEnterprise,
		SessionRole:    "SYSADMIN",
	})
	require.NoError(t, err)

	plan, err := planner.Build(remotestate.State{}, m, planner.Config{})
	require.NoError(t, err)

	_, err = Compile(Session{Role: "SYSADMIN", AvailableRoles: []string{"SYSADMIN"}}, plan)
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
