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

// Package sqlcursor adapts a database/sql driver to the cursor interfaces.
// Each cursor.Connection is a dedicated *sql.Conn session; statements
// execute lazily so that result metadata can be described on demand.
package sqlcursor

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/siara-in/odbcscan-go/cursor"
)

// Catalog queries used when the driver package does not override them.
const (
	defaultTableQuery = "SELECT table_name FROM information_schema.tables WHERE table_type = 'BASE TABLE'"
	defaultViewQuery  = "SELECT table_name FROM information_schema.tables WHERE table_type = 'VIEW'"
)

// Options configures a Connector beyond the driver name and DSN.
type Options struct {
	// TableQuery and ViewQuery are single-column catalog queries
	// yielding object names. Empty selects information_schema defaults.
	TableQuery string
	ViewQuery  string

	// TranslateError converts driver-native errors into ones implementing
	// cursor.DiagnosticError. A nil translator passes errors through.
	TranslateError func(error) error

	Config cursor.Config
}

func (o Options) translate(err error) error {
	if err == nil || o.TranslateError == nil {
		return err
	}
	return o.TranslateError(err)
}

// Connector opens cursor connections from a database/sql pool.
type Connector struct {
	db     *sql.DB
	opts   Options
	logger *slog.Logger
}

// Open creates a Connector for the registered driver and source name.
func Open(driverName, dataSourceName string, opts Options) (*Connector, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if opts.TableQuery == "" {
		opts.TableQuery = defaultTableQuery
	}
	if opts.ViewQuery == "" {
		opts.ViewQuery = defaultViewQuery
	}
	return &Connector{db: db, opts: opts, logger: opts.Config.LoggerOrDiscard()}, nil
}

// Connect acquires a dedicated session from the pool.
func (c *Connector) Connect(ctx context.Context) (cursor.Connection, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &connection{conn: conn, opts: c.opts, logger: c.logger}, nil
}

// Close releases the pool. Open connections stay usable until closed.
func (c *Connector) Close() error {
	return c.db.Close()
}

type connection struct {
	conn   *sql.Conn
	opts   Options
	logger *slog.Logger
	closed bool
}

func (c *connection) Prepare(ctx context.Context, query string) (cursor.Statement, error) {
	c.logger.DebugContext(ctx, "prepare", "query", query)
	// database/sql cannot describe results before execution, so the
	// statement runs lazily on the first metadata or Execute call.
	return &statement{conn: c.conn, query: query, prepCtx: ctx, xlat: c.opts.translate}, nil
}

func (c *connection) Execute(ctx context.Context, query string) error {
	c.logger.DebugContext(ctx, "execute", "query", query)
	_, err := c.conn.ExecContext(ctx, query)
	return c.opts.translate(err)
}

func (c *connection) ListTables(ctx context.Context) ([]string, error) {
	return c.listNames(ctx, c.opts.TableQuery)
}

func (c *connection) ListViews(ctx context.Context) ([]string, error) {
	return c.listNames(ctx, c.opts.ViewQuery)
}

func (c *connection) listNames(ctx context.Context, query string) ([]string, error) {
	rows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, c.opts.translate(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, c.opts.translate(rows.Err())
}

func (c *connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
