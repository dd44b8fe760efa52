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
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/restype"
)

func init() {
	restype.Register(restype.Metadata{
		Type:     restype.Tag,
		Scope:    restype.ScopeAccount,
		Editions: restype.AllEditions(),
	})
	restype.Register(restype.Metadata{
		Type:     restype.Integration,
		Scope:    restype.ScopeAccount,
		Editions: restype.AllEditions(),
	})
}

var tagDefaults = map[string]any{
	"comment":        nil,
	"allowed_values": nil,
}

// Tag declares an account-scoped object tag. Tag itself is supported on
// every edition. An allowlist without tag rejects it with an
// InvalidResourceError when it is added or the manifest is built; a tag
// outside the blueprint's scope fails planning with a
// NonConformingPlanError. Neither is an edition error.
func Tag(name any, opts ...Option) *res.Resource {
	r := newResource(restype.Tag, nameValue(name), tagDefaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, tagDefaults), nil
	}
	return r
}

// WithAllowedValues restricts a Tag to an enumerated set of values.
func WithAllowedValues(values []string) Option {
	return func(r *res.Resource) { r.Attrs["allowed_values"] = values }
}

var integrationDefaults = map[string]any{
	"enabled": true,
	"comment": nil,
}

// Integration declares a generic account-scoped security/API/storage
// integration, discriminated by its integration_type attribute.
func Integration(name any, integrationType string, opts ...Option) *res.Resource {
	defaults := withDefaults(map[string]any{"integration_type": integrationType}, integrationDefaults)
	r := newResource(restype.Integration, nameValue(name), defaults, opts)
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, defaults), nil
	}
	return r
}

var partnerOAuthDefaults = map[string]any{
	"enabled":                      true,
	"oauth_client":                 "LOOKER",
	"oauth_redirect_uri":           nil,
	"oauth_issue_refresh_tokens":   (*bool)(nil),
	"oauth_refresh_token_validity": (*int)(nil),
	"comment":                      nil,
}

// SnowflakePartnerOAuthSecurityIntegration declares the partner-OAuth
// flavor of SECURITY INTEGRATION used by first-party tool integrations.
func SnowflakePartnerOAuthSecurityIntegration(name any, opts ...Option) *res.Resource {
	r := newResource(restype.Integration, nameValue(name), partnerOAuthDefaults, opts)
	r.Attrs["integration_type"] = "OAUTH - SNOWFLAKE_PARTNER"
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, partnerOAuthDefaults), nil
	}
	return r
}

// WithOAuthClient sets the partner OAuth client identifier.
func WithOAuthClient(client any) Option {
	return func(r *res.Resource) { r.Attrs["oauth_client"] = client }
}
