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

// Package cursor defines the row-oriented, handle-based interface the
// materialization engine consumes. Implementations wrap a call-level SQL
// interface (ODBC-style drivers, database/sql, in-memory fakes for tests)
// behind Connection and Statement handles with chunked data retrieval.
package cursor

import (
	"context"
	"time"
)

// Length indicator sentinels returned by Statement.GetData. Values follow
// the ODBC convention so driver-level indicators pass through unchanged.
const (
	// NullData indicates the cell is NULL. No bytes were written.
	NullData int64 = -1
	// NoTotal indicates more data remains but the driver cannot report
	// how much. The buffer was filled to capacity.
	NoTotal int64 = -4
)

// DataKind selects the transfer representation for GetData.
type DataKind int

const (
	// DataChar transfers narrow character data. The driver writes a
	// one-byte NUL terminator into the final byte of each chunk.
	DataChar DataKind = iota
	// DataWChar transfers wide (UTF-16LE) character data. The driver
	// writes a two-byte NUL terminator into the final bytes of each chunk.
	DataWChar
	// DataBinary transfers raw bytes with no terminator.
	DataBinary
)

// TerminatorSize returns the number of trailing buffer bytes the driver
// consumes for the chunk terminator.
func (k DataKind) TerminatorSize() int {
	switch k {
	case DataWChar:
		return 2
	case DataChar:
		return 1
	}
	return 0
}

// ColumnDescriptor describes one result-set column as reported by the
// source driver.
type ColumnDescriptor struct {
	Name string
	Type TypeCode
	// Size is the column size (character length for text, precision for
	// decimals). Zero when the driver does not report one.
	Size uint32
	// Scale is the number of fractional digits for decimal columns.
	Scale    int16
	Nullable bool
}

// Statement is a prepared statement handle positioned over at most one
// result set. It is not safe for concurrent use.
//
// DescribeColumn may require the statement to have been executed first;
// implementations that cannot describe a prepared-but-unexecuted statement
// execute it lazily on the first metadata call.
type Statement interface {
	// NumColumns reports the number of columns in the result set, or 0
	// when the statement produces no result set.
	NumColumns() (int, error)

	// DescribeColumn describes the column at index col (0-based).
	DescribeColumn(col int) (ColumnDescriptor, error)

	// Execute runs the statement. It must be called before Fetch.
	Execute(ctx context.Context) error

	// Fetch advances to the next row, reporting false when the result
	// set is exhausted.
	Fetch(ctx context.Context) (bool, error)

	// IsNull reports whether the cell at col in the current row is NULL.
	IsNull(col int) (bool, error)

	GetInt32(col int) (int32, error)
	GetInt64(col int) (int64, error)
	GetDouble(col int) (float64, error)
	GetString(col int) (string, error)
	GetTimestamp(col int) (time.Time, error)

	// GetData reads the next chunk of a variable-length cell into buf.
	// n is the count of useful bytes written (terminator excluded).
	// The indicator is NullData for NULL cells, NoTotal when more data
	// remains in unknown quantity, or the total byte count remaining
	// before this call (which exceeds the useful capacity of buf when
	// another chunk is needed). Successive calls on the same column
	// continue where the previous chunk ended.
	GetData(col int, kind DataKind, buf []byte) (n int, indicator int64, err error)

	// Close releases the statement handle. Close is idempotent.
	Close() error
}

// Connection is an open session against a data source. Statements created
// from one connection must not be driven concurrently.
type Connection interface {
	// Prepare compiles sql into a Statement without executing it.
	Prepare(ctx context.Context, sql string) (Statement, error)

	// Execute runs sql for its side effects, discarding any result set.
	Execute(ctx context.Context, sql string) error

	// ListTables enumerates base table names visible to the session.
	ListTables(ctx context.Context) ([]string, error)

	// ListViews enumerates view names visible to the session.
	ListViews(ctx context.Context) ([]string, error)

	// Close releases the connection. Close is idempotent.
	Close() error
}

// Connector opens connections from fixed parameters. It is the seam
// between the engine and a concrete driver.
type Connector interface {
	Connect(ctx context.Context) (Connection, error)
}

// DiagnosticError is implemented by driver errors that expose call-level
// interface diagnostics. Connectors translate their driver's native error
// type into one implementing this so the engine can surface the SQLSTATE
// and vendor code alongside its own classification.
type DiagnosticError interface {
	error

	// SQLState returns the five-character SQLSTATE for the failure.
	SQLState() string

	// VendorCode returns the driver-specific error number.
	VendorCode() int32
}
