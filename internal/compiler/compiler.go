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

// Package compiler turns an ordered Plan into the literal SQL statement
// sequence a session would execute, switching to the minimum-privilege
// role each change actually needs and restoring the session's own role
// afterward. It never reorders the plan; ordering is the planner's job.
// It only interleaves role switches and DDL.
package compiler

import (
	"fmt"

	"github.com/getbigbytes/snowbytes/errs"
	"github.com/getbigbytes/snowbytes/internal/projection"
	"github.com/getbigbytes/snowbytes/internal/sqlrender"
	"github.com/getbigbytes/snowbytes/planner"
	"github.com/getbigbytes/snowbytes/restype"
	"github.com/getbigbytes/snowbytes/session"
)

// Session is the session context the compiler switches roles under. It
// is session.Context itself, not a copy of it.
type Session = session.Context

// Compile renders plan into the SQL statements a session should run, in
// order. The result always starts with "USE SECONDARY ROLES ALL" so that
// ownership-transfer grants computed against a role's effective
// privileges (not just its primary role) succeed.
func Compile(sess Session, plan planner.Plan) ([]string, error) {
	var stmts []string
	stmts = append(stmts, "USE SECONDARY ROLES ALL")

	currentRole := "" // unset: forces an explicit USE ROLE before the first change
	switchTo := func(role string) error {
		if role == currentRole {
			return nil
		}
		if len(sess.AvailableRoles) > 0 && !sess.CanAssume(role) {
			return &errs.ConfigError{Reason: fmt.Sprintf("session role %s cannot assume %s", sess.Role, role)}
		}
		stmts = append(stmts, "USE ROLE "+role)
		currentRole = role
		return nil
	}

	for _, change := range plan {
		acting := actingRole(change, sess)
		if err := switchTo(acting); err != nil {
			return nil, err
		}

		renderer, err := sqlrender.Lookup(change.ResourceType)
		if err != nil {
			return nil, err
		}
		if projection.HasUnresolvedTemplate(change.After) || projection.HasUnresolvedTemplate(change.Delta) {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("%s carries an unresolved var template into compilation", change.URN)}
		}
		ctx := sqlrender.RenderContext{URN: change.URN}

		switch change.Action {
		case planner.Create:
			sql, err := renderer.Create(ctx, change.After)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, sql)

			declaredOwner, _ := change.After["owner"].(string)
			if declaredOwner != "" && declaredOwner != acting {
				stmts = append(stmts, fmt.Sprintf(
					"GRANT OWNERSHIP ON %s %s TO ROLE %s COPY CURRENT GRANTS",
					ddlKindFor(change.ResourceType), ctx.QualifiedName(), declaredOwner,
				))
			}
		case planner.Update:
			sql, err := renderer.Update(ctx, change.Before, change.After, change.Delta)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, sql)
		case planner.Transfer:
			stmts = append(stmts, fmt.Sprintf(
				"GRANT OWNERSHIP ON %s %s TO ROLE %s COPY CURRENT GRANTS",
				ddlKindFor(change.ResourceType), ctx.QualifiedName(), change.ToOwner,
			))
		case planner.Drop:
			sql, err := renderer.Drop(ctx, change.Before)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, sql)
		}
	}

	if currentRole != "" && currentRole != sess.Role {
		stmts = append(stmts, "USE ROLE "+sess.Role)
	}

	return stmts, nil
}

// actingRole picks the minimum-privilege role that can perform change:
// role and role-grant lifecycle operations require the
// platform's dedicated admin roles; everything else runs as the
// session's own role (ownership transfer, where needed, follows as a
// separate GRANT OWNERSHIP rather than a role switch).
func actingRole(change *planner.Change, sess Session) string {
	switch change.ResourceType {
	case restype.Role, restype.DatabaseRole:
		return "USERADMIN"
	case restype.RoleGrant:
		return "SECURITYADMIN"
	default:
		return sess.Role
	}
}

func ddlKindFor(kind restype.ResourceType) string {
	switch kind {
	case restype.Database:
		return "DATABASE"
	case restype.Schema:
		return "SCHEMA"
	case restype.Warehouse:
		return "WAREHOUSE"
	case restype.Table:
		return "TABLE"
	case restype.View:
		return "VIEW"
	case restype.Task:
		return "TASK"
	case restype.ComputePool:
		return "COMPUTE POOL"
	case restype.ImageRepository:
		return "IMAGE REPOSITORY"
	case restype.Tag:
		return "TAG"
	case restype.Integration:
		return "INTEGRATION"
	default:
		return string(kind)
	}
}
