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

package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getbigbytes/snowbytes/resourcename"
	"github.com/getbigbytes/snowbytes/restype"
)

func TestURNRoundTrip(t *testing.T) {
	cases := []string{
		"urn::ABCD123:account/ACCOUNT",
		"urn::ABCD123:database/DB",
		"urn::ABCD123:schema/DB.SCHEMA",
		"urn::ABCD123:role_grant/SOME_ROLE?role=SYSADMIN",
	}
	for _, s := range cases {
		u, err := ParseURN(s)
		require.NoError(t, err)
		assert.Equal(t, s, u.String())
	}
}

func TestURNCallableKeepsParens(t *testing.T) {
	u := URN{
		ResourceType: restype.Function,
		FQN: FQN{
			Database: resourcename.New("DB"),
			Schema:   resourcename.New("SCHEMA"),
			Name:     resourcename.New("SOMEUDF"),
			ArgTypes: []string{},
		},
		AccountLocator: "ABCD123",
	}
	assert.Equal(t, "urn::ABCD123:function/DB.SCHEMA.SOMEUDF()", u.String())
}

func TestFQNEquals(t *testing.T) {
	a, err := ParseFQN("db.schema.name")
	require.NoError(t, err)
	b, err := ParseFQN("DB.SCHEMA.NAME")
	require.NoError(t, err)
	assert.True(t, FQNEquals(a, b))
}
