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
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/siara-in/odbcscan-go/cursor"
)

// quoteIdentifier quotes name for interpolation into generated SQL,
// doubling any embedded quote characters.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DescribeTable binds the schema of a base table by preparing a probe
// query against it. Column order follows the source's declaration order.
func DescribeTable(ctx context.Context, conn cursor.Connection, table string, cfg cursor.Config) (*arrow.Schema, error) {
	return DescribeQuery(ctx, conn, "SELECT * FROM "+quoteIdentifier(table), cfg)
}

// DescribeQuery binds the result schema of an arbitrary query without
// fetching rows. A result set with zero columns is rejected; statements
// that produce no result set go through the exec path instead.
func DescribeQuery(ctx context.Context, conn cursor.Connection, sql string, cfg cursor.Config) (*arrow.Schema, error) {
	stmt, err := conn.Prepare(ctx, sql)
	if err != nil {
		return nil, errs.WrapInvalidArgument(err, "prepare query %q", sql)
	}
	defer stmt.Close()

	return describeStatement(stmt, cfg)
}

// describeStatement builds the Arrow schema from the statement's column
// descriptors, applying the all-varchar override and decimal fallbacks
// from cfg.
func describeStatement(stmt cursor.Statement, cfg cursor.Config) (*arrow.Schema, error) {
	ncols, err := stmt.NumColumns()
	if err != nil {
		return nil, errs.WrapIO(err, "describe result set")
	}
	if ncols == 0 {
		return nil, errs.InvalidArgument("result set has no columns")
	}

	fields := make([]arrow.Field, ncols)
	for i := range fields {
		desc, err := stmt.DescribeColumn(i)
		if err != nil {
			return nil, errs.WrapIO(err, "describe column %d", i)
		}
		fields[i] = bindField(desc, cfg)
	}
	return arrow.NewSchema(fields, nil), nil
}

func bindField(desc cursor.ColumnDescriptor, cfg cursor.Config) arrow.Field {
	size, scale := desc.Size, desc.Scale
	if desc.Type == cursor.TypeDecimal || desc.Type == cursor.TypeNumeric {
		if size == 0 {
			size = uint32(cfg.DecimalWidth)
		}
		if scale == 0 {
			scale = int16(cfg.DecimalScale)
		}
	}

	dt := ToArrowType(desc.Type, size, scale)
	if cfg.AllVarchar {
		dt = arrow.BinaryTypes.String
	}

	md := arrow.NewMetadata(
		[]string{FieldKeyTypeCode, FieldKeyTypeName, FieldKeyColumnSize, FieldKeyDecimalDigits},
		[]string{
			strconv.Itoa(int(desc.Type)),
			desc.Type.String(),
			strconv.FormatUint(uint64(size), 10),
			strconv.Itoa(int(scale)),
		},
	)
	return arrow.Field{Name: desc.Name, Type: dt, Nullable: desc.Nullable, Metadata: md}
}

// DDLSchema is the synthetic single-column schema reported for
// statements executed for their side effects.
func DDLSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "Success", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)
}
