// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package constants

// Build-time variables set via ldflags
var (
	Version   = "v0.0.1-dev" // Set via -X flag during build
	CommitSHA = "unknown"    // Set via -X flag during build
	BuildTime = "unknown"    // Set via -X flag during build
)

const (
	MmaclVersion     = "v0.0.1"
	MmaclPIDFilePath = "/var/run/mmacl.pid"

	// config
	ConfigFileName = "mmacl.yml"

	// Default location of the Spectrum Scale administration binaries
	DefaultMmfsBinDir = "/usr/lpp/mmfs/bin"

	// routes
	APIVersion = "v1"
	APIBase    = "/api/" + APIVersion + "/mmacl"

	// APIACL is the base path for ACL management API endpoints
	APIACL = APIBase + "/acl"
)
