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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/resourcename"
	"github.com/getbigbytes/snowbytes/restype"
)

func TestDatabase_Defaults(t *testing.T) {
	db := Database("DB")
	attrs, err := db.Normalize(db.Attrs, restype.EditionEnterprise)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"comment":                         nil,
		"catalog":                         nil,
		"external_volume":                 nil,
		"data_retention_time_in_days":     1,
		"default_ddl_collation":           nil,
		"max_data_extension_time_in_days": 14,
		"transient":                       false,
	}, attrs)
}

func TestSchema_LinksToDatabaseContainer(t *testing.T) {
	db := Database("DB")
	schema := Schema("SCHEMA", WithDatabase(db))
	assert.Len(t, db.Children(), 1)
	assert.Same(t, db, schema.Parent())
}

func TestWarehouse_MultiClusterRequiresEnterprise(t *testing.T) {
	wh := Warehouse("WH", WithMinClusterCount(2))
	_, err := wh.Normalize(wh.Attrs, restype.EditionStandard)
	var wrongEdition *errs.WrongEditionError
	require.ErrorAs(t, err, &wrongEdition)

	_, err = wh.Normalize(wh.Attrs, restype.EditionEnterprise)
	require.NoError(t, err)
}

func TestWarehouse_ScalingPolicyDroppedOnStandard(t *testing.T) {
	wh := Warehouse("WH", WithWarehouseSize("XSMALL"))
	attrs, err := wh.Normalize(wh.Attrs, restype.EditionStandard)
	require.NoError(t, err)
	_, present := attrs["scaling_policy"]
	assert.False(t, present)

	attrs, err = wh.Normalize(wh.Attrs, restype.EditionEnterprise)
	require.NoError(t, err)
	assert.Equal(t, "STANDARD", attrs["scaling_policy"])
}

func TestRoleGrant_QueryDiscriminator(t *testing.T) {
	role := Role("SOME_ROLE")
	grant := RoleGrant(role, "SYSADMIN")
	assert.True(t, resourcename.Equals(grant.Query["role"].(resourcename.Name), resourcename.New("SYSADMIN")))
	assert.Contains(t, grant.ExplicitRequires(), role)
}

func TestTable_ColumnNormalization(t *testing.T) {
	tbl := Table("EVENTS", []Column{
		{Name: "ID"},
		{Name: "PAYLOAD", DataType: "VARIANT", Comment: ptr.To("raw event"), NotNull: true},
		{Name: "REGION", DataType: "VARCHAR", Collate: ptr.To("en-ci")},
	})

	columns := tbl.Attrs["columns"].([]map[string]any)
	require.Len(t, columns, 3)
	assert.Equal(t, "NUMBER(38,0)", columns[0]["data_type"])
	assert.Equal(t, ptr.To("raw event"), columns[1]["comment"])
	assert.Equal(t, true, columns[1]["not_null"])
	assert.Equal(t, ptr.To("en-ci"), columns[2]["collate"])
}

func TestGrant_PolymorphicOnNormalization(t *testing.T) {
	wh := Warehouse("WH")
	role := Role("DEMO_ROLE")
	grant := Grant("usage", wh, role.Name)
	assert.Equal(t, wh.Name, grant.Attrs["on_warehouse"])
	assert.Contains(t, grant.ExplicitRequires(), wh)
}
