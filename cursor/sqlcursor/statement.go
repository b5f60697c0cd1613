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
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/siara-in/odbcscan-go/cursor"
)

// statement implements cursor.Statement over *sql.Rows. Execution is
// lazy: the first call needing the result set (metadata included) runs
// the query. prepCtx backs metadata calls, which carry no context of
// their own.
type statement struct {
	conn    *sql.Conn
	query   string
	prepCtx context.Context
	xlat    func(error) error

	rows     *sql.Rows
	descs    []cursor.ColumnDescriptor
	values   []any
	scanDest []any
	// offsets tracks per-column chunk positions for GetData, reset on
	// every Fetch.
	offsets []int
	closed  bool
}

func (s *statement) translate(err error) error {
	if err == nil || s.xlat == nil {
		return err
	}
	return s.xlat(err)
}

func (s *statement) ensureExecuted(ctx context.Context) error {
	if s.rows != nil {
		return nil
	}
	rows, err := s.conn.QueryContext(ctx, s.query)
	if err != nil {
		return s.translate(err)
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		rows.Close()
		return s.translate(err)
	}

	s.rows = rows
	s.descs = make([]cursor.ColumnDescriptor, len(colTypes))
	for i, ct := range colTypes {
		s.descs[i] = describeColumnType(ct)
	}
	s.values = make([]any, len(colTypes))
	s.scanDest = make([]any, len(colTypes))
	for i := range s.values {
		s.scanDest[i] = &s.values[i]
	}
	s.offsets = make([]int, len(colTypes))
	return nil
}

func (s *statement) NumColumns() (int, error) {
	if err := s.ensureExecuted(s.prepCtx); err != nil {
		return 0, err
	}
	return len(s.descs), nil
}

func (s *statement) DescribeColumn(col int) (cursor.ColumnDescriptor, error) {
	if err := s.ensureExecuted(s.prepCtx); err != nil {
		return cursor.ColumnDescriptor{}, err
	}
	if col < 0 || col >= len(s.descs) {
		return cursor.ColumnDescriptor{}, fmt.Errorf("column %d out of range", col)
	}
	return s.descs[col], nil
}

func (s *statement) Execute(ctx context.Context) error {
	return s.ensureExecuted(ctx)
}

func (s *statement) Fetch(ctx context.Context) (bool, error) {
	if s.rows == nil {
		return false, fmt.Errorf("fetch before execute")
	}
	if !s.rows.Next() {
		return false, s.translate(s.rows.Err())
	}
	if err := s.rows.Scan(s.scanDest...); err != nil {
		return false, s.translate(err)
	}
	for i := range s.offsets {
		s.offsets[i] = 0
	}
	return true, nil
}

func (s *statement) cell(col int) (any, error) {
	if s.values == nil || col < 0 || col >= len(s.values) {
		return nil, fmt.Errorf("column %d out of range", col)
	}
	return s.values[col], nil
}

func (s *statement) IsNull(col int) (bool, error) {
	v, err := s.cell(col)
	return v == nil, err
}

func (s *statement) GetInt32(col int) (int32, error) {
	v, err := s.cell(col)
	if err != nil {
		return 0, err
	}
	return convertNumeric[int32](v)
}

func (s *statement) GetInt64(col int) (int64, error) {
	v, err := s.cell(col)
	if err != nil {
		return 0, err
	}
	return convertNumeric[int64](v)
}

func (s *statement) GetDouble(col int) (float64, error) {
	v, err := s.cell(col)
	if err != nil {
		return 0, err
	}
	return convertNumeric[float64](v)
}

func (s *statement) GetString(col int) (string, error) {
	v, err := s.cell(col)
	if err != nil {
		return "", err
	}
	return convertString(v), nil
}

func (s *statement) GetTimestamp(col int) (time.Time, error) {
	v, err := s.cell(col)
	if err != nil {
		return time.Time{}, err
	}
	return convertTime(v)
}

// GetData serves the cell in chunks with ODBC-style indicators: the
// indicator reports the bytes remaining before the call, and character
// kinds consume trailing terminator bytes of buf.
func (s *statement) GetData(col int, kind cursor.DataKind, buf []byte) (int, int64, error) {
	v, err := s.cell(col)
	if err != nil {
		return 0, 0, err
	}
	if v == nil {
		return 0, cursor.NullData, nil
	}

	data := cellBytes(v, kind)
	term := kind.TerminatorSize()
	useful := len(buf) - term
	if useful < 0 {
		return 0, 0, fmt.Errorf("buffer smaller than terminator")
	}

	off := s.offsets[col]
	remaining := len(data) - off
	n := remaining
	if n > useful {
		n = useful
	}
	copy(buf, data[off:off+n])
	for i := 0; i < term; i++ {
		buf[n+i] = 0
	}
	s.offsets[col] = off + n
	return n, int64(remaining), nil
}

func (s *statement) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.rows != nil {
		return s.rows.Close()
	}
	return nil
}

// cellBytes renders a cell as transfer bytes for the requested kind.
func cellBytes(v any, kind cursor.DataKind) []byte {
	var raw []byte
	switch val := v.(type) {
	case []byte:
		raw = val
	case string:
		raw = []byte(val)
	default:
		raw = []byte(convertString(v))
	}
	if kind == cursor.DataWChar {
		return encodeWide(raw)
	}
	return raw
}
