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

package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/planformat"
	"github.com/getbigbytes/snowbytes/planner"
	"github.com/getbigbytes/snowbytes/remotestate"
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/resources"
	"github.com/getbigbytes/snowbytes/restype"
)

func testSession() Session {
	return Session{AccountLocator: "ABCD123", AccountEdition: restype.EditionEnterprise, Role: "SYSADMIN"}
}

func TestNew_RunModeRejectsLowercase(t *testing.T) {
	_, err := New(nil, Config{RunMode: "sync"})
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_RunModeDefaultsToCreateOrUpdate(t *testing.T) {
	bp, err := New(nil, Config{})
	require.NoError(t, err)
	assert.Equal(t, planner.CreateOrUpdate, bp.runMode)
}

func TestNew_RunModeSync(t *testing.T) {
	bp, err := New(nil, Config{RunMode: RunModeSync})
	require.NoError(t, err)
	assert.Equal(t, planner.Sync, bp.runMode)
}

func TestNew_EmptyAllowlistRejected(t *testing.T) {
	_, err := New(nil, Config{Allowlist: []string{}})
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_UnknownAllowlistTokenRejected(t *testing.T) {
	_, err := New(nil, Config{Allowlist: []string{"NOT_A_REAL_TYPE"}})
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_ScopeConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"account scope with database is invalid", Config{Scope: restype.ScopeAccount, Database: "DB1"}, true},
		{"database scope without database is invalid", Config{Scope: restype.ScopeDatabase}, true},
		{"database scope with schema is invalid", Config{Scope: restype.ScopeDatabase, Database: "DB1", Schema: "PUBLIC"}, true},
		{"schema scope without schema is invalid", Config{Scope: restype.ScopeSchema, Database: "DB1"}, true},
		{"schema scope fully specified is valid", Config{Scope: restype.ScopeSchema, Database: "DB1", Schema: "PUBLIC"}, false},
		{"unscoped is valid", Config{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(nil, tc.cfg)
			if tc.wantErr {
				var cfgErr *errs.ConfigError
				require.ErrorAs(t, err, &cfgErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAdd_RejectsResourceOutsideAllowlist(t *testing.T) {
	role := resources.Role("SOME_ROLE")
	_, err := New([]*res.Resource{role}, Config{Allowlist: []string{"WAREHOUSE"}})
	var invalid *errs.InvalidResourceError
	require.ErrorAs(t, err, &invalid)
}

func TestAdd_AllowsResourceInAllowlist(t *testing.T) {
	role := resources.Role("SOME_ROLE")
	bp, err := New([]*res.Resource{role}, Config{Allowlist: []string{"ROLE"}})
	require.NoError(t, err)
	assert.Len(t, bp.resources, 1)
}

func TestBlueprint_EndToEnd_RoleOwnedWarehouse(t *testing.T) {
	role := resources.Role("SOME_ROLE")
	grant := resources.RoleGrant(role, "SYSADMIN")
	wh := resources.Warehouse("WH", resources.WithOwner(role))

	bp, err := New([]*res.Resource{role, grant, wh}, Config{})
	require.NoError(t, err)

	session := testSession()
	m, err := bp.GenerateManifest(session)
	require.NoError(t, err)

	plan, err := bp.Plan(remotestate.State{}, m)
	require.NoError(t, err)
	require.Len(t, plan, 3)

	sql, err := bp.CompileToSQL(session, plan)
	require.NoError(t, err)
	require.Len(t, sql, 8)
	assert.Equal(t, "USE ROLE USERADMIN", sql[1])
	assert.Equal(t, "GRANT OWNERSHIP ON WAREHOUSE WH TO ROLE SOME_ROLE COPY CURRENT GRANTS", sql[7])

	text, err := bp.DumpPlan(plan, planformat.Text)
	require.NoError(t, err)
	assert.Contains(t, text, "» snowbytes")
	assert.Contains(t, text, "3 to create")
}

func TestBlueprint_EndToEnd_DatabaseScopeStubbing(t *testing.T) {
	schema := resources.Schema("SCHEMA1")
	task := resources.Task("TASK1", "SELECT 1")

	bp, err := New([]*res.Resource{schema, task}, Config{
		Scope:    restype.ScopeDatabase,
		Database: "DB1",
	})
	require.NoError(t, err)

	session := testSession()
	m, err := bp.GenerateManifest(session)
	require.NoError(t, err)

	dbURN, err := identifier.ParseURN("urn::ABCD123:database/DB1")
	require.NoError(t, err)
	publicURN, err := identifier.ParseURN("urn::ABCD123:schema/DB1.PUBLIC")
	require.NoError(t, err)
	remote := remotestate.New(map[identifier.URN]map[string]any{
		dbURN:     {"name": "DB1", "owner": "SYSADMIN"},
		publicURN: {"name": "PUBLIC", "owner": "SYSADMIN"},
	})

	plan, err := bp.Plan(remote, m)
	require.NoError(t, err)
	assert.Len(t, plan, 2)
}

func TestBlueprint_EndToEnd_ScopeViolationRejected(t *testing.T) {
	db := resources.Database("DB2")
	bp, err := New([]*res.Resource{db}, Config{Scope: restype.ScopeSchema, Database: "DB1", Schema: "PUBLIC"})
	require.NoError(t, err)

	session := testSession()
	m, err := bp.GenerateManifest(session)
	require.NoError(t, err)

	_, err = bp.Plan(remotestate.State{}, m)
	var nonConforming *errs.NonConformingPlanError
	require.ErrorAs(t, err, &nonConforming)
}
