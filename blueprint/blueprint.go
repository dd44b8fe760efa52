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

// Package blueprint is the public façade: a single entry point (New)
// accepting a resource set and a Config, exposing the
// manifest/plan/compile/dump pipeline as one coherent object instead of
// four packages a caller has to wire up themselves.
package blueprint

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/internal/compiler"
	"github.com/getbigbytes/snowbytes/internal/manifest"
	"github.com/getbigbytes/snowbytes/internal/obslog"
	"github.com/getbigbytes/snowbytes/planformat"
	"github.com/getbigbytes/snowbytes/planner"
	"github.com/getbigbytes/snowbytes/remotestate"
	"github.com/getbigbytes/snowbytes/res"
	"github.com/getbigbytes/snowbytes/restype"
	"github.com/getbigbytes/snowbytes/session"
	"github.com/getbigbytes/snowbytes/vars"
)

// RunMode is the config-contract spelling of a planner.RunMode, parsed
// strictly (exact case, only the two named spellings) before it is
// allowed to reach the planner.
type RunMode string

const (
	RunModeCreateOrUpdate RunMode = "CREATE-OR-UPDATE"
	RunModeSync           RunMode = "SYNC"
)

func (m RunMode) parse() (planner.RunMode, error) {
	switch m {
	case "", RunModeCreateOrUpdate:
		return planner.CreateOrUpdate, nil
	case RunModeSync:
		return planner.Sync, nil
	default:
		return 0, &errs.ConfigError{Reason: fmt.Sprintf("unknown run_mode %q", m)}
	}
}

// Session is what the caller's connected session contributes to sealing
// and compiling a blueprint: the account's identity, its edition, the
// role doing the work, and (optionally) the roles that role may switch
// to. It is session.Context itself — the same value flows unchanged
// from GenerateManifest through CompileToSQL.
type Session = session.Context

// Config is the full boundary a front-end (CLI, CI job, whatever)
// passes in: the full configuration contract.
type Config struct {
	Name      string
	RunMode   RunMode
	Allowlist []string // resource type tokens, e.g. "ROLE"; nil means unrestricted
	Scope     restype.Scope
	Database  string
	Schema    string
	Vars      vars.Environment
	VarsSpec  []vars.Spec
	Logger    logr.Logger // zero value logs nothing; see obslog.New
}

// Blueprint owns a declared resource set plus the Config it was built
// with, and carries the manifest/plan/compile/dump pipeline over both.
type Blueprint struct {
	name      string
	resources []*res.Resource
	runMode   planner.RunMode
	allowlist []restype.ResourceType
	scope     manifest.Scope
	vars      vars.Environment
	varsSpec  []vars.Spec
	log       logr.Logger
}

// New validates cfg and constructs a Blueprint over resources. All
// Config validation happens here, before a single resource is sealed.
func New(resources []*res.Resource, cfg Config) (*Blueprint, error) {
	runMode, err := cfg.RunMode.parse()
	if err != nil {
		return nil, err
	}

	if cfg.Allowlist != nil && len(cfg.Allowlist) == 0 {
		return nil, &errs.ConfigError{Reason: "allowlist must not be empty when provided"}
	}
	var allowlist []restype.ResourceType
	for _, token := range cfg.Allowlist {
		kind, ok := restype.Parse(token)
		if !ok {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("unknown resource type %q in allowlist", token)}
		}
		allowlist = append(allowlist, kind)
	}

	scope := manifest.Scope{Level: cfg.Scope, Database: cfg.Database, Schema: cfg.Schema}
	if err := validateBlueprintScope(scope); err != nil {
		return nil, err
	}

	b := &Blueprint{
		name:      cfg.Name,
		runMode:   runMode,
		allowlist: allowlist,
		scope:     scope,
		vars:      cfg.Vars,
		varsSpec:  cfg.VarsSpec,
		log:       obslog.OrDiscard(cfg.Logger).WithValues("blueprint", cfg.Name),
	}
	for _, r := range resources {
		if err := b.Add(r); err != nil {
			return nil, err
		}
	}
	b.log.V(1).Info("blueprint constructed", "resources", len(b.resources), "runMode", string(cfg.RunMode))
	return b, nil
}

func validateBlueprintScope(s manifest.Scope) error {
	switch s.Level {
	case restype.ScopeAccount:
		if s.Database != "" || s.Schema != "" {
			return &errs.ConfigError{Reason: "account-scoped blueprint may not declare database or schema"}
		}
	case restype.ScopeDatabase:
		if s.Database == "" {
			return &errs.ConfigError{Reason: "database-scoped blueprint requires database"}
		}
		if s.Schema != "" {
			return &errs.ConfigError{Reason: "database-scoped blueprint may not declare schema"}
		}
	case restype.ScopeSchema:
		if s.Database == "" || s.Schema == "" {
			return &errs.ConfigError{Reason: "schema-scoped blueprint requires both database and schema"}
		}
	}
	return nil
}

// Add appends r to the blueprint's declared resource set, rejecting it
// immediately if an active allowlist excludes its kind.
func (b *Blueprint) Add(r *res.Resource) error {
	if b.allowlist != nil {
		allowed := false
		for _, kind := range b.allowlist {
			if kind == r.Kind {
				allowed = true
				break
			}
		}
		if !allowed {
			return &errs.InvalidResourceError{Reason: fmt.Sprintf("resource type %q is not in the active allowlist", r.Kind)}
		}
	}
	b.resources = append(b.resources, r)
	return nil
}

// Allowlist returns the blueprint's parsed allowlist, or nil if
// unrestricted.
func (b *Blueprint) Allowlist() []restype.ResourceType { return b.allowlist }

// GenerateManifest seals the blueprint's resource set into a Manifest
// against session.
func (b *Blueprint) GenerateManifest(session Session) (*manifest.Manifest, error) {
	cfg := manifest.Config{
		AccountLocator: session.AccountLocator,
		AccountEdition: session.AccountEdition,
		SessionRole:    session.Role,
		Allowlist:      b.allowlist,
		VarsSpec:       b.varsSpec,
		Vars:           b.vars,
		Scope:          b.scope,
	}
	return manifest.Build(b.resources, cfg)
}

// Plan diffs m against remote and returns an ordered,
// conformance-checked Plan.
func (b *Blueprint) Plan(remote remotestate.State, m *manifest.Manifest) (planner.Plan, error) {
	return planner.Build(remote, m, planner.Config{
		RunMode:   b.runMode,
		Allowlist: b.allowlist,
		Scope:     b.scope,
	})
}

// CompileToSQL lowers plan to its SQL statement sequence.
func (b *Blueprint) CompileToSQL(sess Session, plan planner.Plan) ([]string, error) {
	return compiler.Compile(sess, plan)
}

// DumpPlan renders plan in the requested format.
func (b *Blueprint) DumpPlan(plan planner.Plan, format planformat.Format) (string, error) {
	return planformat.DumpPlan(plan, format)
}
