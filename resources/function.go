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
		Type:        restype.Function,
		Scope:       restype.ScopeSchema,
		Editions:    restype.AllEditions(),
		Polymorphic: true,
	})
}

// FunctionArg is one positional argument of a UDF declaration.
type FunctionArg struct {
	Name     string
	DataType string
}

var functionDefaults = map[string]any{
	"as_":                          nil,
	"copy_grants":                  false,
	"external_access_integrations": nil,
	"imports":                      nil,
	"null_handling":                nil,
	"packages":                     nil,
	"secrets":                      nil,
	"secure":                       nil,
	"volatility":                   nil,
}

func function(language string, name any, args []FunctionArg, returns string, opts ...Option) *res.Resource {
	argTypes := make([]string, len(args))
	argDicts := make([]map[string]any, len(args))
	for i, a := range args {
		argTypes[i] = a.DataType
		argDicts[i] = map[string]any{"name": a.Name, "data_type": a.DataType}
	}
	defaults := withDefaults(map[string]any{
		"returns":  returns,
		"args":     argDicts,
		"language": language,
		"comment":  nil,
	}, functionDefaults)
	r := newResource(restype.Function, nameValue(name), defaults, opts)
	r.ArgTypes = argTypes
	r.Normalize = func(attrs map[string]any, _ restype.Edition) (map[string]any, error) {
		return withDefaults(attrs, defaults), nil
	}
	return r
}

// PythonUDF declares a Python-language UDF. Call WithHandler and
// WithRuntimeVersion for the attributes Snowflake requires to execute it.
func PythonUDF(name any, args []FunctionArg, returns string, opts ...Option) *res.Resource {
	return function("PYTHON", name, args, returns, opts...)
}

// JavascriptUDF declares a JavaScript-language UDF, its body supplied via
// WithAsBody.
func JavascriptUDF(name any, args []FunctionArg, returns string, opts ...Option) *res.Resource {
	return function("JAVASCRIPT", name, args, returns, opts...)
}

// SQLUDF declares a SQL-language UDF.
func SQLUDF(name any, args []FunctionArg, returns string, opts ...Option) *res.Resource {
	return function("SQL", name, args, returns, opts...)
}

// JavaUDF declares a Java-language UDF.
func JavaUDF(name any, args []FunctionArg, returns string, opts ...Option) *res.Resource {
	return function("JAVA", name, args, returns, opts...)
}

// WithHandler sets the UDF's entry-point handler (Python/Java) or leaves
// it nil for inline-bodied languages.
func WithHandler(handler any) Option {
	return func(r *res.Resource) { r.Attrs["handler"] = handler }
}

// WithRuntimeVersion sets the UDF's language runtime version.
func WithRuntimeVersion(version any) Option {
	return func(r *res.Resource) { r.Attrs["runtime_version"] = version }
}

// WithAsBody sets the UDF's inline body (JavaScript/SQL UDFs).
func WithAsBody(body any) Option {
	return func(r *res.Resource) { r.Attrs["as_"] = body }
}
