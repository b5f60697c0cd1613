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

// Package mysql provides a cursor connector preconfigured for MySQL.
package mysql

import (
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"

	"github.com/siara-in/odbcscan-go/cursor"
	"github.com/siara-in/odbcscan-go/cursor/sqlcursor"
)

// Catalog queries scoped to the session's current database.
const (
	tableQuery = "SELECT table_name FROM information_schema.tables WHERE table_type = 'BASE TABLE' AND table_schema = DATABASE()"
	viewQuery  = "SELECT table_name FROM information_schema.tables WHERE table_type = 'VIEW' AND table_schema = DATABASE()"
)

// Open creates a connector for a MySQL source. A TargetConnectionString
// is passed to the driver verbatim; a TargetDSN is combined with the
// credentials from params.
func Open(params cursor.ConnectionParams, cfg cursor.Config) (*sqlcursor.Connector, error) {
	dsn, err := buildDSN(params)
	if err != nil {
		return nil, err
	}
	return sqlcursor.Open("mysql", dsn, sqlcursor.Options{
		TableQuery:     tableQuery,
		ViewQuery:      viewQuery,
		TranslateError: translateError,
		Config:         cfg,
	})
}

// serverError adapts *mysqldrv.MySQLError to cursor.DiagnosticError.
type serverError struct {
	err *mysqldrv.MySQLError
}

func (e *serverError) Error() string     { return e.err.Error() }
func (e *serverError) Unwrap() error     { return e.err }
func (e *serverError) SQLState() string  { return string(e.err.SQLState[:]) }
func (e *serverError) VendorCode() int32 { return int32(e.err.Number) }

// translateError exposes the SQLSTATE and error number of MySQL server
// errors. Other errors pass through unchanged.
func translateError(err error) error {
	var me *mysqldrv.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	return &serverError{err: me}
}

func buildDSN(params cursor.ConnectionParams) (string, error) {
	if params.Target == "" {
		return "", fmt.Errorf("mysql: empty connection target")
	}
	switch params.Kind {
	case cursor.TargetConnectionString:
		return params.Target, nil
	case cursor.TargetDSN:
		cred := params.Username
		if params.Password != "" {
			cred += ":" + params.Password
		}
		if cred == "" {
			return params.Target, nil
		}
		return cred + "@" + params.Target, nil
	default:
		return "", fmt.Errorf("mysql: unknown target kind %d", params.Kind)
	}
}
