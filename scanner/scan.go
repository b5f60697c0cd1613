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

// Package scanner materializes row-oriented results from a cursor.Connection
// into fixed-capacity Arrow record batches.
package scanner

import (
	"context"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/siara-in/odbcscan-go/cursor"
)

var tracer = otel.Tracer("github.com/siara-in/odbcscan-go/scanner")

// MaxScanThreads is the parallelism a scan supports. Cursor handles are
// not shareable, so every scan runs on a single stream.
const MaxScanThreads = 1

// ScanOptions selects what to scan and how.
type ScanOptions struct {
	// Table names a base table to scan. Ignored when Query is set.
	Table string
	// Query is an arbitrary statement to scan the results of.
	Query string
	// Exec runs Query for its side effects. The scan reports the
	// synthetic success schema and yields exactly one row.
	Exec bool
	// Requested lists schema column indexes to populate; nil means all.
	// Unrequested columns are NULL-filled.
	Requested []int

	Config cursor.Config
}

// DiscoverSchema binds the output schema for the given options without
// fetching any rows.
func DiscoverSchema(ctx context.Context, conn cursor.Connection, opts ScanOptions) (*arrow.Schema, error) {
	ctx, span := tracer.Start(ctx, "DiscoverSchema",
		trace.WithAttributes(attribute.String("db.target", opts.Table+opts.Query)))
	defer span.End()

	if opts.Exec {
		return DDLSchema(), nil
	}
	if opts.Query != "" {
		return DescribeQuery(ctx, conn, opts.Query, opts.Config)
	}
	return DescribeTable(ctx, conn, opts.Table, opts.Config)
}

// Scan is an open scan over one statement. Fill it repeatedly until it
// reports zero rows. Not safe for concurrent use.
type Scan struct {
	cur    *RowCursor
	mat    *Materializer
	schema *arrow.Schema

	conn     cursor.Connection
	execSQL  string
	execDone bool

	rows int64
	span trace.Span
}

// OpenScan prepares a scan producing batches of the given schema, which
// must have been bound by DiscoverSchema with the same options.
func OpenScan(ctx context.Context, conn cursor.Connection, schema *arrow.Schema, opts ScanOptions) (*Scan, error) {
	ctx, span := tracer.Start(ctx, "Scan")

	if opts.Exec {
		return &Scan{schema: schema, conn: conn, execSQL: opts.Query, span: span}, nil
	}

	sql := opts.Query
	if sql == "" {
		sql = buildSelect(opts.Table, schema, opts.Requested)
	}
	opts.Config.LoggerOrDiscard().DebugContext(ctx, "opening scan", "query", sql)

	cur := NewRowCursor(conn)
	if err := cur.Prepare(ctx, sql); err != nil {
		span.End()
		return nil, err
	}

	mat := NewMaterializer(schema, opts.Requested, NewNormalizer(opts.Config.Encoding))
	return &Scan{cur: cur, mat: mat, schema: schema, span: span}, nil
}

// buildSelect generates the column-pruned probe query: requested columns
// by name, NULL literals holding the positions of the rest.
func buildSelect(table string, schema *arrow.Schema, requested []int) string {
	want := make(map[int]bool, len(requested))
	for _, i := range requested {
		want[i] = true
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	for i := 0; i < schema.NumFields(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if requested == nil || want[i] {
			sb.WriteString(quoteIdentifier(schema.Field(i).Name))
		} else {
			sb.WriteString("NULL")
		}
	}
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdentifier(table))
	return sb.String()
}

func (s *Scan) Schema() *arrow.Schema { return s.schema }

// Fill appends rows to batch, returning the count appended. A zero
// return means the scan is exhausted.
func (s *Scan) Fill(ctx context.Context, batch *OutputBatch) (int, error) {
	if s.conn != nil {
		return s.fillExec(ctx, batch)
	}
	n, err := s.mat.Fill(ctx, s.cur, batch)
	s.rows += int64(n)
	return n, err
}

// fillExec runs the side-effect statement on the first call and yields
// the single success row. Later calls yield nothing.
func (s *Scan) fillExec(ctx context.Context, batch *OutputBatch) (int, error) {
	if s.execDone {
		return 0, nil
	}
	if err := s.conn.Execute(ctx, s.execSQL); err != nil {
		return 0, errs.WrapIO(err, "execute statement")
	}
	s.execDone = true
	batch.Column(0).(*array.BooleanBuilder).Append(true)
	batch.advance()
	s.rows++
	return 1, nil
}

// Close releases the scan's cursor. Close is idempotent.
func (s *Scan) Close() error {
	if s.span != nil {
		s.span.SetAttributes(attribute.Int64("db.rows_read", s.rows))
		s.span.End()
		s.span = nil
	}
	if s.cur == nil {
		return nil
	}
	return s.cur.Close()
}
