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
	"github.com/getbigbytes/snowbytes/resourcename"
	"github.com/getbigbytes/snowbytes/restype"
)

// AccountSentinelName is the account object's fixed, singleton name —
// every session has exactly one, and it is never created, updated, or
// dropped by the planner: it exists only as a fixed point
// remote state and the manifest both anchor to.
const AccountSentinelName = "ACCOUNT"

// Account returns the account sentinel resource. The planner special-
// cases restype.Account: it is excluded from both manifest diffing and
// drop candidacy.
func Account() *res.Resource {
	return &res.Resource{Kind: restype.Account, Name: resourcename.New(AccountSentinelName), Attrs: map[string]any{}}
}
