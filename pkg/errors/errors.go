// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"fmt"
	"net/http"
)

// New creates a MmaclError for the given code. Unknown codes fall back
// to the MISC domain so a missing table entry never panics.
func New(code ErrorCode, details string) *MmaclError {
	def, ok := errorDefinitions[code]
	if !ok {
		def = struct {
			message    string
			domain     Domain
			httpStatus int
		}{"Unknown error", DomainMisc, http.StatusInternalServerError}
	}

	return &MmaclError{
		Code:       code,
		Domain:     def.domain,
		Message:    def.message,
		Details:    details,
		HTTPStatus: def.httpStatus,
	}
}

// Wrap converts an arbitrary error into a MmaclError with the given
// code, preserving the original error text as details. Wrapping a
// MmaclError keeps its metadata.
func Wrap(err error, code ErrorCode) *MmaclError {
	if err == nil {
		return New(code, "")
	}

	we := New(code, err.Error())
	if me, ok := err.(*MmaclError); ok && len(me.Metadata) > 0 {
		we.Metadata = make(map[string]string, len(me.Metadata))
		for k, v := range me.Metadata {
			we.Metadata[k] = v
		}
	}
	return we
}

// WithMetadata attaches a key-value pair and returns the error for
// chaining.
func (e *MmaclError) WithMetadata(key, value string) *MmaclError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

func (e *MmaclError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s-%d] %s: %s", e.Domain, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s-%d] %s", e.Domain, e.Code, e.Message)
}

// GetCode extracts the error code from an error, if it is a MmaclError.
func GetCode(err error) (ErrorCode, bool) {
	if me, ok := err.(*MmaclError); ok {
		return me.Code, true
	}
	return 0, false
}

// HasCode reports whether err is a MmaclError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	c, ok := GetCode(err)
	return ok && c == code
}
