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
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/siara-in/odbcscan-go/cursor"
)

type cursorState int

const (
	stateUnprepared cursorState = iota
	statePrepared
	stateFetching
	stateExhausted
	stateClosed
)

func (s cursorState) String() string {
	switch s {
	case stateUnprepared:
		return "unprepared"
	case statePrepared:
		return "prepared"
	case stateFetching:
		return "fetching"
	case stateExhausted:
		return "exhausted"
	default:
		return "closed"
	}
}

// RowCursor drives one statement through its lifecycle. The first Step
// executes the statement and fetches the first row, so callers see a
// uniform "advance and report" surface regardless of whether the source
// separates execution from fetching.
//
// Cell accessors are valid only while the cursor is positioned on a row.
// A RowCursor is not safe for concurrent use.
type RowCursor struct {
	conn  cursor.Connection
	stmt  cursor.Statement
	state cursorState
}

// NewRowCursor returns an unprepared cursor over conn.
func NewRowCursor(conn cursor.Connection) *RowCursor {
	return &RowCursor{conn: conn, state: stateUnprepared}
}

// Prepare compiles sql. Valid only once, on an unprepared cursor.
func (c *RowCursor) Prepare(ctx context.Context, sql string) error {
	if c.state != stateUnprepared {
		return errs.InvalidState("prepare on %s cursor", c.state)
	}
	stmt, err := c.conn.Prepare(ctx, sql)
	if err != nil {
		return errs.WrapInvalidArgument(err, "prepare query %q", sql)
	}
	c.stmt = stmt
	c.state = statePrepared
	return nil
}

// Describe binds the prepared statement's result schema. Valid only
// between Prepare and the first Step.
func (c *RowCursor) Describe(cfg cursor.Config) (*arrow.Schema, error) {
	if c.state != statePrepared {
		return nil, errs.InvalidState("describe on %s cursor", c.state)
	}
	return describeStatement(c.stmt, cfg)
}

// Step advances to the next row, reporting false on exhaustion. The
// first Step on a prepared cursor executes the statement before
// fetching. Step on an exhausted cursor stays exhausted and reports
// false.
func (c *RowCursor) Step(ctx context.Context) (bool, error) {
	switch c.state {
	case statePrepared:
		if err := c.stmt.Execute(ctx); err != nil {
			return false, errs.WrapIO(err, "execute statement")
		}
	case stateFetching:
	case stateExhausted:
		return false, nil
	default:
		return false, errs.InvalidState("step on %s cursor", c.state)
	}

	ok, err := c.stmt.Fetch(ctx)
	if err != nil {
		c.state = stateExhausted
		return false, errs.WrapIO(err, "fetch row")
	}
	if !ok {
		c.state = stateExhausted
		return false, nil
	}
	c.state = stateFetching
	return true, nil
}

func (c *RowCursor) onRow() error {
	if c.state != stateFetching {
		return errs.InvalidState("read cell on %s cursor", c.state)
	}
	return nil
}

func (c *RowCursor) IsNull(col int) (bool, error) {
	if err := c.onRow(); err != nil {
		return false, err
	}
	return c.stmt.IsNull(col)
}

func (c *RowCursor) GetInt32(col int) (int32, error) {
	if err := c.onRow(); err != nil {
		return 0, err
	}
	return c.stmt.GetInt32(col)
}

func (c *RowCursor) GetInt64(col int) (int64, error) {
	if err := c.onRow(); err != nil {
		return 0, err
	}
	return c.stmt.GetInt64(col)
}

func (c *RowCursor) GetDouble(col int) (float64, error) {
	if err := c.onRow(); err != nil {
		return 0, err
	}
	return c.stmt.GetDouble(col)
}

func (c *RowCursor) GetString(col int) (string, error) {
	if err := c.onRow(); err != nil {
		return "", err
	}
	return c.stmt.GetString(col)
}

func (c *RowCursor) GetTimestamp(col int) (time.Time, error) {
	if err := c.onRow(); err != nil {
		return time.Time{}, err
	}
	return c.stmt.GetTimestamp(col)
}

// GetVar retrieves a complete variable-length cell, growing the transfer
// buffer as needed.
func (c *RowCursor) GetVar(col int, kind cursor.DataKind) ([]byte, bool, error) {
	if err := c.onRow(); err != nil {
		return nil, false, err
	}
	return readVar(c.stmt, col, kind)
}

// Close releases the underlying statement. Close is idempotent and safe
// in any state.
func (c *RowCursor) Close() error {
	if c.state == stateClosed {
		return nil
	}
	c.state = stateClosed
	if c.stmt == nil {
		return nil
	}
	return c.stmt.Close()
}
