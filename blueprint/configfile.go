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
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/restype"
	"github.com/getbigbytes/snowbytes/vars"
)

// ConfigFile is the serialized form of Config a YAML (or JSON) front-end
// hands in. Resources are not part of this document; they arrive through
// their own loader and are passed to New separately.
type ConfigFile struct {
	Name      string            `json:"name,omitempty"`
	RunMode   string            `json:"run_mode,omitempty"`
	Allowlist []string          `json:"allowlist,omitempty"`
	Scope     string            `json:"scope,omitempty"`
	Database  string            `json:"database,omitempty"`
	Schema    string            `json:"schema,omitempty"`
	Vars      map[string]any `json:"vars,omitempty"`
	VarsSpec  []VarSpecFile  `json:"vars_spec,omitempty"`
}

// VarSpecFile is one declared variable in the `vars_spec` list.
type VarSpecFile struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Default *string `json:"default,omitempty"`
}

// ParseConfigFile unmarshals a YAML or JSON configuration document and
// lowers it to the typed Config New accepts. Unknown fields are rejected
// so a typo in a config file fails loudly instead of silently applying
// defaults.
func ParseConfigFile(data []byte) (Config, error) {
	var cf ConfigFile
	if err := yaml.UnmarshalStrict(data, &cf); err != nil {
		return Config{}, &errs.ConfigError{Reason: fmt.Sprintf("unparseable configuration: %v", err)}
	}
	return cf.toConfig()
}

func (cf ConfigFile) toConfig() (Config, error) {
	cfg := Config{
		Name:      cf.Name,
		RunMode:   RunMode(cf.RunMode),
		Allowlist: cf.Allowlist,
		Database:  cf.Database,
		Schema:    cf.Schema,
	}

	if cf.Scope != "" {
		scope, ok := restype.ParseScope(cf.Scope)
		if !ok {
			return Config{}, &errs.ConfigError{Reason: fmt.Sprintf("unknown scope %q", cf.Scope)}
		}
		cfg.Scope = scope
	}

	if len(cf.Vars) > 0 {
		cfg.Vars = make(vars.Environment, len(cf.Vars))
		for name, raw := range cf.Vars {
			val, err := varValue(name, raw)
			if err != nil {
				return Config{}, err
			}
			cfg.Vars[name] = val
		}
	}

	for _, vs := range cf.VarsSpec {
		kind, ok := vars.ParseKind(vs.Type)
		if !ok {
			return Config{}, &errs.ConfigError{Reason: fmt.Sprintf("unknown variable type %q for %q", vs.Type, vs.Name)}
		}
		spec := vars.Spec{Name: vs.Name, Type: kind}
		if vs.Default != nil {
			v := vars.Value{Kind: kind, Text: *vs.Default}
			spec.Default = &v
		}
		cfg.VarsSpec = append(cfg.VarsSpec, spec)
	}

	return cfg, nil
}

// varValue lowers a YAML scalar to a typed vars.Value. JSON-compatible
// unmarshalling hands numbers over as float64, so whole floats become
// int-kind values.
func varValue(name string, raw any) (vars.Value, error) {
	switch v := raw.(type) {
	case string:
		return vars.String(v), nil
	case bool:
		return vars.Bool(v), nil
	case float64:
		if v == float64(int(v)) {
			return vars.Int(int(v)), nil
		}
		return vars.Float(v), nil
	default:
		return vars.Value{}, &errs.ConfigError{Reason: fmt.Sprintf("variable %q has non-scalar value %v", name, raw)}
	}
}
