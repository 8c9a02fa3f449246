// Licensed to GizmoData LLC under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  GizmoData LLC licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package gizmosql

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/apache/arrow-adbc/go/adbc"
)

// errorHelper builds adbc.Error values with a consistent driver-name prefix.
type errorHelper struct {
	driverName string
}

func (eh errorHelper) errorf(code adbc.Status, format string, args ...any) error {
	return adbc.Error{
		Msg:  fmt.Sprintf("[%s] %s", eh.driverName, fmt.Sprintf(format, args...)),
		Code: code,
	}
}

func nilLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// serverErrorMessage extracts the server-originated message from a driver
// error. The Flight SQL driver frontloads the server message after a
// bracketed driver tag ("[FlightSQL] <msg> (<code>; <rpc>)"), so stripping
// the tag leaves the server text at the start for prefix matching.
func serverErrorMessage(err error) string {
	var adbcErr adbc.Error
	msg := err.Error()
	if errors.As(err, &adbcErr) {
		msg = adbcErr.Msg
	}
	if strings.HasPrefix(msg, "[") {
		if end := strings.Index(msg, "] "); end >= 0 {
			msg = msg[end+2:]
		}
	}
	return msg
}

// isNotImplemented reports whether the server rejected the operation as
// unimplemented, either via its message prefix or the driver status code.
func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var adbcErr adbc.Error
	if errors.As(err, &adbcErr) && adbcErr.Code == adbc.StatusNotImplemented {
		return true
	}
	return strings.HasPrefix(serverErrorMessage(err), "Not implemented Error")
}

// isBenignNoTransaction reports whether err is the backend complaining that
// there is no transaction to end. Ending a transaction that was never begun
// is a no-op for this dialect, not a failure.
func isBenignNoTransaction(err error, verb string) bool {
	if err == nil {
		return false
	}
	msg := serverErrorMessage(err)
	if strings.Contains(msg, "cannot "+verb+" - no transaction is active") {
		return true
	}
	// The driver itself rejects commit/rollback while autocommit is on,
	// before anything reaches the server.
	return strings.Contains(msg, "Cannot "+verb+" when autocommit is enabled")
}

// normalizeError rewrites unimplemented-operation failures onto the
// canonical status code so callers can test with errors.As instead of
// string matching. Other errors pass through untouched.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	if isNotImplemented(err) {
		var adbcErr adbc.Error
		if errors.As(err, &adbcErr) && adbcErr.Code == adbc.StatusNotImplemented {
			return err
		}
		return adbc.Error{
			Msg:        serverErrorMessage(err),
			Code:       adbc.StatusNotImplemented,
			VendorCode: vendorCode(err),
		}
	}
	return err
}

func vendorCode(err error) int32 {
	var adbcErr adbc.Error
	if errors.As(err, &adbcErr) {
		return adbcErr.VendorCode
	}
	return 0
}

// IsNotImplemented reports whether err represents an operation the server
// does not support.
func IsNotImplemented(err error) bool {
	return isNotImplemented(err)
}
