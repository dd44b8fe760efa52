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

// Package obslog builds the zap-backed logr.Logger the rest of the
// module logs through. The core runs synchronously and has no manager
// or request context to pull a logger from, so construction lives here.
package obslog

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// New builds a zap-backed logr.Logger. development selects zap's
// human-readable console encoder and debug level instead of the
// production JSON encoder.
func New(development bool) (logr.Logger, error) {
	var zl *zap.Logger
	var err error
	if development {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}

// OrDiscard returns l unchanged if the caller configured a sink, and a
// no-op logger otherwise — every call site in this module takes a
// logr.Logger by value, and a caller who didn't ask for logging
// shouldn't have to know logr.Discard() exists.
func OrDiscard(l logr.Logger) logr.Logger {
	if l.GetSink() == nil {
		return logr.Discard()
	}
	return l
}
