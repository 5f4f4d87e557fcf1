/*
 * Copyright 2024-2025 Raamsri Kumar <raam@tinkershack.in>
 * Copyright 2024-2025 The StrataSTOR Authors and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package errors

import "net/http"

const (
	DomainConfig    Domain = "CONFIG"
	DomainServer    Domain = "SERVER"
	DomainCommand   Domain = "CMD"
	DomainACL       Domain = "ACL"
	DomainHealth    Domain = "HEALTH"
	DomainLifecycle Domain = "LIFECYCLE"
	DomainMisc      Domain = "MISC"
)

// ErrorCode represents unique error identifiers
type ErrorCode int

// Domain represents the subsystem where the error originated
type Domain string

type MmaclError struct {
	Code       ErrorCode `json:"code"`
	Domain     Domain    `json:"domain"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`

	// Metadata carries contextual information that doesn't fit the
	// standard error fields: command strings, exit codes, paths. It is
	// serialized into API responses and structured log lines.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error code ranges:
// 1000-1099: Configuration errors
// 1100-1199: Server errors
// 1300-1399: Command execution
// 1400-1499: Health check
// 1500-1599: Lifecycle management
// 1700-1799: ACL errors
const (
	// Configuration Errors (1000-1099)
	ConfigNotFound        ErrorCode = 1000 + iota // Config file not found
	ConfigInvalid                       // Invalid config format
	ConfigLoadFailed                    // Failed to load config
	ConfigWriteFailed                   // Failed to write config
	ConfigMarshalFailed                 // Config serialization failed
	ConfigUnmarshalFailed               // Config deserialization failed
)

const (
	// Server Errors (1100-1199)
	ServerStart             ErrorCode = 1100 + iota // Failed to start server
	ServerShutdown                        // Error during shutdown
	ServerRequestValidation               // Request validation failed
	ServerInternalError                   // Internal server error
)

const (
	// Command Execution (1300-1399)
	CommandNotFound     ErrorCode = 1300 + iota // Command not found
	CommandExecution                  // Execution failed
	CommandTimeout                    // Command timed out
	CommandInvalidInput               // Invalid command input
	CommandOutputParse                // Output parsing failed
)

const (
	// Health Check (1400-1499)
	HealthCheckFailed  ErrorCode = 1400 + iota // Health check failed
	HealthCheckTimeout               // Health check timed out
)

const (
	// Lifecycle Management (1500-1599)
	LifecyclePID      ErrorCode = 1500 + iota // PID file operation failed
	LifecycleShutdown               // Shutdown process error
	LifecycleDaemon                 // Daemon operation failed
)

const (
	// ACL Errors (1700-1799)
	ACLInvalidInput  ErrorCode = 1700 + iota // Invalid ACL input
	ACLPathNotFound                // Path cannot be resolved or stat'd
	ACLCommandFailed               // Vendor ACL tool failed
	ACLParseError                  // Failed to parse ACL text
	ACLEncodeError                 // Failed to render ACL text
	ACLWriteError                  // Failed to apply ACLs
	ACLNotManaged                  // Path is not in a Spectrum Scale filesystem
)

var errorDefinitions = map[ErrorCode]struct {
	message    string
	domain     Domain
	httpStatus int
}{
	// Configuration errors
	ConfigNotFound: {"Configuration file not found", DomainConfig, http.StatusNotFound},
	ConfigInvalid:  {"Invalid configuration format", DomainConfig, http.StatusBadRequest},
	ConfigLoadFailed: {
		"Failed to load configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigWriteFailed: {
		"Failed to write configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigMarshalFailed: {
		"Failed to serialize configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigUnmarshalFailed: {
		"Failed to deserialize configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},

	// Server errors
	ServerStart: {
		"Failed to start server",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerShutdown: {
		"Error during server shutdown",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerRequestValidation: {"Request validation failed", DomainServer, http.StatusBadRequest},
	ServerInternalError: {
		"Internal server error",
		DomainServer,
		http.StatusInternalServerError,
	},

	// Command execution errors
	CommandNotFound:  {"Command not found", DomainCommand, http.StatusNotFound},
	CommandExecution: {"Command execution failed", DomainCommand, http.StatusBadRequest},
	CommandTimeout:   {"Command execution timed out", DomainCommand, http.StatusGatewayTimeout},
	CommandInvalidInput: {
		"Invalid command input",
		DomainCommand,
		http.StatusBadRequest,
	},
	CommandOutputParse: {
		"Failed to parse command output",
		DomainCommand,
		http.StatusInternalServerError,
	},

	// Health check errors
	HealthCheckFailed:  {"Health check failed", DomainHealth, http.StatusServiceUnavailable},
	HealthCheckTimeout: {"Health check timed out", DomainHealth, http.StatusGatewayTimeout},

	// Lifecycle errors
	LifecyclePID: {
		"PID file operation failed",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleShutdown: {
		"Error during shutdown process",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleDaemon: {"Daemon operation failed", DomainLifecycle, http.StatusInternalServerError},

	// ACL errors
	ACLInvalidInput: {
		"Invalid ACL input",
		DomainACL,
		http.StatusBadRequest,
	},
	ACLPathNotFound: {
		"Path not found",
		DomainACL,
		http.StatusNotFound,
	},
	ACLCommandFailed: {
		"ACL command execution failed",
		DomainACL,
		http.StatusInternalServerError,
	},
	ACLParseError: {
		"Failed to parse ACL data",
		DomainACL,
		http.StatusInternalServerError,
	},
	ACLEncodeError: {
		"Failed to render ACL data",
		DomainACL,
		http.StatusInternalServerError,
	},
	ACLWriteError: {
		"Failed to modify filesystem ACLs",
		DomainACL,
		http.StatusInternalServerError,
	},
	ACLNotManaged: {
		"Path is not managed by a Spectrum Scale filesystem",
		DomainACL,
		http.StatusBadRequest,
	},
}
