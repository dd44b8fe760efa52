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

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/identifier"
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/resources"
	"github.com/getbigbytes/snowbytes/restype"
)

func testConfig() Config {
	return Config{
		AccountLocator: "ABCD123",
		AccountEdition: restype.EditionEnterprise,
		SessionRole:    "SYSADMIN",
	}
}

func TestBuild_DatabaseDefaults(t *testing.T) {
	db := resources.Database("DB")
	m, err := Build([]*res.Resource{db}, testConfig())
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)

	urn, err := identifier.ParseURN("urn::ABCD123:database/DB")
	require.NoError(t, err)
	entry, ok := m.Lookup(urn)
	require.True(t, ok)
	assert.Equal(t, "DB", entry.Data["name"])
	assert.Equal(t, "SYSADMIN", entry.Data["owner"])
	assert.Equal(t, 1, entry.Data["data_retention_time_in_days"])
	assert.Equal(t, 14, entry.Data["max_data_extension_time_in_days"])
	assert.Equal(t, false, entry.Data["transient"])
}

func TestBuild_SchemaContainedByDatabase(t *testing.T) {
	db := resources.Database("DB")
	schema := resources.Schema("SCHEMA", resources.WithDatabase(db))
	m, err := Build([]*res.Resource{db, schema}, testConfig())
	require.NoError(t, err)

	schemaURN, err := identifier.ParseURN("urn::ABCD123:schema/DB.SCHEMA")
	require.NoError(t, err)
	entry, ok := m.Lookup(schemaURN)
	require.True(t, ok)
	require.NotNil(t, entry.ContainerURN)

	dbURN, err := identifier.ParseURN("urn::ABCD123:database/DB")
	require.NoError(t, err)
	assert.True(t, identifier.URNEquals(*entry.ContainerURN, dbURN))
}

func TestBuild_DuplicateResourceConflict(t *testing.T) {
	_, err := Build([]*res.Resource{
		resources.Database("DB"),
		resources.Database("DB", resources.WithComment("This is a comment")),
	}, testConfig())
	var dup *errs.DuplicateResourceError
	require.ErrorAs(t, err, &dup)
}

func TestBuild_PointerMergedIntoConcrete(t *testing.T) {
	m, err := Build([]*res.Resource{
		resources.Database("DB"),
		resources.Pointer("DB", restype.Database),
	}, testConfig())
	require.NoError(t, err)
	assert.Len(t, m.Entries, 1)
}

func TestBuild_PublicSchemaPointerElided(t *testing.T) {
	m, err := Build([]*res.Resource{
		resources.Database("DB"),
		resources.Pointer("PUBLIC", restype.Schema),
	}, testConfig())
	require.NoError(t, err)
	assert.Len(t, m.Entries, 1)
}

func TestBuild_ScopeValidation(t *testing.T) {
	cfg := testConfig()
	cfg.Scope = Scope{Level: restype.ScopeAccount, Database: "DB1"}
	_, err := Build(nil, cfg)
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestBuild_AllowlistRejectsOutOfListKind(t *testing.T) {
	cfg := testConfig()
	cfg.Allowlist = []restype.ResourceType{restype.Role}
	_, err := Build([]*res.Resource{resources.Database("DB1")}, cfg)
	var invalid *errs.InvalidResourceError
	require.ErrorAs(t, err, &invalid)
}

func TestBuild_WrongEditionOnWarehouse(t *testing.T) {
	cfg := testConfig()
	cfg.AccountEdition = restype.EditionStandard
	_, err := Build([]*res.Resource{resources.Warehouse("WH", resources.WithMinClusterCount(2))}, cfg)
	var wrongEdition *errs.WrongEditionError
	require.ErrorAs(t, err, &wrongEdition)
}
