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
	"github.com/getbigbytes/snowbytes/restype"
	"github.com/getbigbytes/snowbytes/vars"
)

func TestParseConfigFile_FullDocument(t *testing.T) {
	doc := []byte(`
name: staging
run_mode: SYNC
allowlist:
  - ROLE
  - WAREHOUSE
scope: DATABASE
database: ANALYTICS
vars:
  role_comment: managed
  retention_days: 7
  transient: true
vars_spec:
  - name: role_comment
    type: string
  - name: retention_days
    type: int
    default: "1"
`)
	cfg, err := ParseConfigFile(doc)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Name)
	assert.Equal(t, RunModeSync, cfg.RunMode)
	assert.Equal(t, []string{"ROLE", "WAREHOUSE"}, cfg.Allowlist)
	assert.Equal(t, restype.ScopeDatabase, cfg.Scope)
	assert.Equal(t, "ANALYTICS", cfg.Database)

	assert.Equal(t, vars.String("managed"), cfg.Vars["role_comment"])
	assert.Equal(t, vars.Int(7), cfg.Vars["retention_days"])
	assert.Equal(t, vars.Bool(true), cfg.Vars["transient"])

	require.Len(t, cfg.VarsSpec, 2)
	assert.Equal(t, vars.KindInt, cfg.VarsSpec[1].Type)
	require.NotNil(t, cfg.VarsSpec[1].Default)
	assert.Equal(t, "1", cfg.VarsSpec[1].Default.Text)
}

func TestParseConfigFile_RejectsUnknownField(t *testing.T) {
	_, err := ParseConfigFile([]byte("run_mod: SYNC\n"))
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseConfigFile_RejectsUnknownScope(t *testing.T) {
	_, err := ParseConfigFile([]byte("scope: REGION\n"))
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseConfigFile_RejectsUnknownVarType(t *testing.T) {
	doc := []byte(`
vars_spec:
  - name: x
    type: decimal
`)
	_, err := ParseConfigFile(doc)
	var cfgErr *errs.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseConfigFile_FeedsNew(t *testing.T) {
	doc := []byte(`
run_mode: CREATE-OR-UPDATE
scope: ACCOUNT
`)
	cfg, err := ParseConfigFile(doc)
	require.NoError(t, err)
	_, err = New(nil, cfg)
	require.NoError(t, err)
}
