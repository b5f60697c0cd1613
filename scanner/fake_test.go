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
	"context"
	"fmt"
	"strconv"
	"time"
	"unicode/utf16"

	"github.com/siara-in/odbcscan-go/cursor"
)

// fakeStmt is an in-memory cursor.Statement. Row cells may be nil (NULL),
// string, []byte, int64, float64, bool or time.Time.
type fakeStmt struct {
	descs []cursor.ColumnDescriptor
	rows  [][]any

	execErr  error
	fetchErr error
	// noTotal makes GetData report cursor.NoTotal instead of the
	// remaining byte count.
	noTotal bool

	executed bool
	rowIdx   int
	offsets  []int
	closes   int
}

func (f *fakeStmt) NumColumns() (int, error) { return len(f.descs), nil }

func (f *fakeStmt) DescribeColumn(col int) (cursor.ColumnDescriptor, error) {
	return f.descs[col], nil
}

func (f *fakeStmt) Execute(ctx context.Context) error {
	if f.execErr != nil {
		return f.execErr
	}
	f.executed = true
	f.rowIdx = -1
	return nil
}

func (f *fakeStmt) Fetch(ctx context.Context) (bool, error) {
	if f.fetchErr != nil {
		return false, f.fetchErr
	}
	if !f.executed {
		return false, fmt.Errorf("fetch before execute")
	}
	if f.rowIdx+1 >= len(f.rows) {
		return false, nil
	}
	f.rowIdx++
	f.offsets = make([]int, len(f.descs))
	return true, nil
}

func (f *fakeStmt) cell(col int) any { return f.rows[f.rowIdx][col] }

func (f *fakeStmt) IsNull(col int) (bool, error) { return f.cell(col) == nil, nil }

func (f *fakeStmt) GetInt32(col int) (int32, error) {
	switch v := f.cell(col).(type) {
	case int64:
		return int32(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("cell %d is %T", col, v)
	}
}

func (f *fakeStmt) GetInt64(col int) (int64, error) {
	if v, ok := f.cell(col).(int64); ok {
		return v, nil
	}
	return 0, fmt.Errorf("cell %d is not int64", col)
}

func (f *fakeStmt) GetDouble(col int) (float64, error) {
	switch v := f.cell(col).(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("cell %d is %T", col, v)
	}
}

func (f *fakeStmt) GetString(col int) (string, error) {
	switch v := f.cell(col).(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("cell %d is %T", col, v)
	}
}

func (f *fakeStmt) GetTimestamp(col int) (time.Time, error) {
	if v, ok := f.cell(col).(time.Time); ok {
		return v, nil
	}
	return time.Time{}, fmt.Errorf("cell %d is not a time", col)
}

func (f *fakeStmt) GetData(col int, kind cursor.DataKind, buf []byte) (int, int64, error) {
	v := f.cell(col)
	if v == nil {
		return 0, cursor.NullData, nil
	}

	var data []byte
	switch val := v.(type) {
	case []byte:
		data = val
	case string:
		if kind == cursor.DataWChar {
			for _, u := range utf16.Encode([]rune(val)) {
				data = append(data, byte(u), byte(u>>8))
			}
		} else {
			data = []byte(val)
		}
	default:
		return 0, 0, fmt.Errorf("cell %d is %T", col, v)
	}

	term := kind.TerminatorSize()
	useful := len(buf) - term
	off := f.offsets[col]
	remaining := len(data) - off
	n := remaining
	if n > useful {
		n = useful
	}
	copy(buf, data[off:off+n])
	for i := 0; i < term; i++ {
		buf[n+i] = 0
	}
	f.offsets[col] = off + n

	if f.noTotal && remaining > n {
		return n, cursor.NoTotal, nil
	}
	return n, int64(remaining), nil
}

func (f *fakeStmt) Close() error {
	f.closes++
	return nil
}

// fakeConn hands out fakeStmt copies by query text.
type fakeConn struct {
	stmts   map[string]*fakeStmt
	tables  []string
	views   []string
	viewErr error

	execed []string
	closes int
}

func (c *fakeConn) Prepare(ctx context.Context, sql string) (cursor.Statement, error) {
	stmt, ok := c.stmts[sql]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", sql)
	}
	// Fresh state per prepared statement so cursors stay independent.
	cp := *stmt
	return &cp, nil
}

func (c *fakeConn) Execute(ctx context.Context, sql string) error {
	c.execed = append(c.execed, sql)
	return nil
}

func (c *fakeConn) ListTables(ctx context.Context) ([]string, error) { return c.tables, nil }

func (c *fakeConn) ListViews(ctx context.Context) ([]string, error) {
	if c.viewErr != nil {
		return nil, c.viewErr
	}
	return c.views, nil
}

func (c *fakeConn) Close() error {
	c.closes++
	return nil
}

type fakeConnector struct {
	conn *fakeConn
}

func (f *fakeConnector) Connect(ctx context.Context) (cursor.Connection, error) {
	return f.conn, nil
}
