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

// Package session carries the caller-supplied execution context
// required for every operation: which account, which role is active,
// which roles that role may switch to, and which Snowflake edition the
// account runs — everything the manifest builder and compiler need but
// neither may discover on its own, since this core never
// opens a network connection.
package session

import "github.com/getbigbytes/snowbytes/restype"

// Context is the immutable session the caller supplies to every
// session-dependent operation (GenerateManifest, CompileToSQL). It is a
// value type: nothing in the core mutates it.
type Context struct {
	Account        string
	AccountLocator string
	Role           string
	AvailableRoles []string
	AccountEdition restype.Edition
}

// CanAssume reports whether role is in the session's available-roles
// list — the compiler refuses to emit USE ROLE for a role the session
// cannot actually switch to.
func (c Context) CanAssume(role string) bool {
	for _, r := range c.AvailableRoles {
		if r == role {
			return true
		}
	}
	return false
}
