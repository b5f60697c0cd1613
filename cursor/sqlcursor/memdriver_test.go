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

package sqlcursor

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sync"
)

// memdriver is a minimal database/sql driver backed by canned result
// sets, registered once as "odbcscan-mem". The data source name selects
// a dataset from the registry.

type memCol struct {
	name     string
	typeName string
	nullable bool
	prec     int64
	scale    int64
	length   int64
}

type memResult struct {
	cols []memCol
	rows [][]driver.Value
}

type memDataset struct {
	queries map[string]*memResult
	mu      sync.Mutex
	execed  []string
}

var (
	memRegistry   = map[string]*memDataset{}
	memRegisterDB sync.Once
)

func registerDataset(name string, ds *memDataset) {
	memRegisterDB.Do(func() {
		sql.Register("odbcscan-mem", &memDriver{})
	})
	memRegistry[name] = ds
}

type memDriver struct{}

func (d *memDriver) Open(name string) (driver.Conn, error) {
	ds, ok := memRegistry[name]
	if !ok {
		return nil, fmt.Errorf("no dataset %q", name)
	}
	return &memConn{data: ds}, nil
}

type memConn struct {
	data *memDataset
}

func (c *memConn) Prepare(query string) (driver.Stmt, error) {
	res, ok := c.data.queries[query]
	if !ok {
		return nil, fmt.Errorf("unknown query: %s", query)
	}
	return &memStmt{conn: c, query: query, res: res}, nil
}

func (c *memConn) Close() error { return nil }

func (c *memConn) Begin() (driver.Tx, error) {
	return nil, fmt.Errorf("transactions not supported")
}

type memStmt struct {
	conn  *memConn
	query string
	res   *memResult
}

func (s *memStmt) Close() error  { return nil }
func (s *memStmt) NumInput() int { return 0 }

func (s *memStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.conn.data.mu.Lock()
	s.conn.data.execed = append(s.conn.data.execed, s.query)
	s.conn.data.mu.Unlock()
	return driver.RowsAffected(0), nil
}

func (s *memStmt) Query(args []driver.Value) (driver.Rows, error) {
	return &memRows{res: s.res, idx: -1}, nil
}

type memRows struct {
	res *memResult
	idx int
}

func (r *memRows) Columns() []string {
	names := make([]string, len(r.res.cols))
	for i, c := range r.res.cols {
		names[i] = c.name
	}
	return names
}

func (r *memRows) Close() error { return nil }

func (r *memRows) Next(dest []driver.Value) error {
	r.idx++
	if r.idx >= len(r.res.rows) {
		return io.EOF
	}
	copy(dest, r.res.rows[r.idx])
	return nil
}

func (r *memRows) ColumnTypeDatabaseTypeName(index int) string {
	return r.res.cols[index].typeName
}

func (r *memRows) ColumnTypeNullable(index int) (nullable, ok bool) {
	return r.res.cols[index].nullable, true
}

func (r *memRows) ColumnTypePrecisionScale(index int) (precision, scale int64, ok bool) {
	c := r.res.cols[index]
	if c.prec == 0 {
		return 0, 0, false
	}
	return c.prec, c.scale, true
}

func (r *memRows) ColumnTypeLength(index int) (length int64, ok bool) {
	c := r.res.cols[index]
	if c.length == 0 {
		return 0, false
	}
	return c.length, true
}
