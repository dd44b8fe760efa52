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

package remotestate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getbigbytes/snowbytes/identifier"
)

func TestGetAndHas(t *testing.T) {
	urn, err := identifier.ParseURN("urn::ABCD123:database/DB")
	require.NoError(t, err)

	s := New(map[identifier.URN]map[string]any{urn: {"owner": "SYSADMIN"}})
	assert.True(t, s.Has(urn))

	attrs, ok := s.Get(urn)
	require.True(t, ok)
	assert.Equal(t, "SYSADMIN", attrs["owner"])

	missing, err := identifier.ParseURN("urn::ABCD123:database/OTHER")
	require.NoError(t, err)
	assert.False(t, s.Has(missing))
}
