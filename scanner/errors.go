// Copyright (c) 2025 ODBC Scan Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//         http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scanner

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-adbc/go/adbc"

	"github.com/siara-in/odbcscan-go/cursor"
)

// ErrorInfo carries metadata extracted from a source driver error.
type ErrorInfo struct {
	Status     adbc.Status
	SqlState   string
	VendorCode int32
	Details    []adbc.ErrorDetail
}

// ErrorInspector maps source-specific errors onto ADBC status codes and
// extracts SQLSTATE and vendor codes where the driver exposes them.
type ErrorInspector interface {
	InspectError(err error, defaultStatus adbc.Status) ErrorInfo
}

// diagnosticInspector extracts diagnostics from driver errors that
// implement cursor.DiagnosticError, as the bundled connectors produce.
type diagnosticInspector struct{}

func (diagnosticInspector) InspectError(err error, defaultStatus adbc.Status) ErrorInfo {
	var de cursor.DiagnosticError
	if !errors.As(err, &de) {
		return ErrorInfo{Status: defaultStatus}
	}
	return ErrorInfo{
		Status:     defaultStatus,
		SqlState:   de.SQLState(),
		VendorCode: de.VendorCode(),
	}
}

var errs = &errorHelper{Name: "odbcscan", Inspector: diagnosticInspector{}}

// errorHelper formats engine errors as adbc.Error with a stable prefix.
type errorHelper struct {
	Name      string
	Inspector ErrorInspector
}

func (h *errorHelper) errorf(code adbc.Status, format string, args ...any) error {
	return adbc.Error{
		Code: code,
		Msg:  fmt.Sprintf("[%s] %s", h.Name, fmt.Sprintf(format, args...)),
	}
}

// InvalidArgument reports a caller mistake such as an unknown table,
// a malformed query, or a result set with no columns.
func (h *errorHelper) InvalidArgument(format string, args ...any) error {
	return h.errorf(adbc.StatusInvalidArgument, format, args...)
}

// InvalidState reports an operation issued against a handle in the wrong
// lifecycle state.
func (h *errorHelper) InvalidState(format string, args ...any) error {
	return h.errorf(adbc.StatusInvalidState, format, args...)
}

// Internal reports a condition the engine cannot recover from, such as a
// source type it has no materialization path for.
func (h *errorHelper) Internal(format string, args ...any) error {
	return h.errorf(adbc.StatusInternal, format, args...)
}

// wrap attaches context to a driver error, inspecting it for status and
// SQLSTATE. Errors already carrying an adbc.Error pass through untouched.
func (h *errorHelper) wrap(err error, defaultStatus adbc.Status, format string, args ...any) error {
	if err == nil {
		return nil
	}

	var adbcErr adbc.Error
	if errors.As(err, &adbcErr) {
		return err
	}

	var info ErrorInfo
	if h.Inspector != nil {
		info = h.Inspector.InspectError(err, defaultStatus)
	}
	status := info.Status
	if status == 0 {
		status = defaultStatus
	}

	wrapped := adbc.Error{
		Code:       status,
		Msg:        fmt.Sprintf("[%s] %s: %v", h.Name, fmt.Sprintf(format, args...), err),
		VendorCode: info.VendorCode,
		Details:    info.Details,
	}
	if len(info.SqlState) >= 5 {
		copy(wrapped.SqlState[:], info.SqlState[:5])
	}

	return errors.Join(wrapped, err)
}

// WrapIO classifies err as a source failure during statement execution or
// row retrieval.
func (h *errorHelper) WrapIO(err error, format string, args ...any) error {
	return h.wrap(err, adbc.StatusIO, format, args...)
}

// WrapInvalidArgument classifies err as a preparation or binding failure.
func (h *errorHelper) WrapInvalidArgument(err error, format string, args ...any) error {
	return h.wrap(err, adbc.StatusInvalidArgument, format, args...)
}

// IsStatus reports whether err carries the given ADBC status code.
func IsStatus(err error, status adbc.Status) bool {
	var adbcErr adbc.Error
	return errors.As(err, &adbcErr) && adbcErr.Code == status
}
