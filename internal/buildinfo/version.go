// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package buildinfo carries the program version string stamped into error
// output. It mirrors the teacher's pktconfig/version package, trimmed to the
// one thing the rest of this module actually consumes.
package buildinfo

import "fmt"

// appBuild is set at link time with -ldflags "-X ...appBuild=...". When
// empty the build is considered a development build.
var appBuild string

var userAgentName = "libbitcoin-go"

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// SetUserAgentName sets the name reported by Version for command-line
// front-ends (cmd/scriptdump and friends).
func SetUserAgentName(name string) {
	userAgentName = name
}

// Version returns a short human-readable build identifier, used as a
// prefix on error messages the same way the teacher's er package prefixes
// every error string with version.Version().
func Version() string {
	if appBuild != "" {
		return fmt.Sprintf("%s %s", userAgentName, appBuild)
	}
	return fmt.Sprintf("%s %d.%d.%d-dev", userAgentName, appMajor, appMinor, appPatch)
}
