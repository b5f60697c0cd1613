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

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/extensions"
	"github.com/google/uuid"

	"github.com/siara-in/odbcscan-go/cursor"
)

// colPlan is the precomputed per-column materialization plan.
type colPlan struct {
	name      string
	src       cursor.TypeCode
	requested bool
}

// Materializer fills output batches from a row cursor. Conversion
// failures in individual cells (overflow, unparsable values) become
// NULLs; only source types with no materialization path at all abort
// the scan.
type Materializer struct {
	plans []colPlan
	norm  Normalizer
}

// NewMaterializer plans materialization of schema. requested lists the
// column indexes to populate; nil means all. Unrequested columns are
// NULL-filled without touching the source. norm converts narrow text
// from the source's declared encoding.
func NewMaterializer(schema *arrow.Schema, requested []int, norm Normalizer) *Materializer {
	plans := make([]colPlan, schema.NumFields())
	for i := range plans {
		field := schema.Field(i)
		plans[i] = colPlan{
			name:      field.Name,
			src:       fieldTypeCode(field),
			requested: requested == nil,
		}
	}
	for _, i := range requested {
		plans[i].requested = true
	}
	return &Materializer{plans: plans, norm: norm}
}

// fieldTypeCode recovers the source type code recorded on the field by
// the schema binder, falling back to the reverse type mapping for
// schemas bound elsewhere.
func fieldTypeCode(field arrow.Field) cursor.TypeCode {
	if v, ok := field.Metadata.GetValue(FieldKeyTypeCode); ok {
		if code, err := strconv.Atoi(v); err == nil {
			return cursor.TypeCode(code)
		}
	}
	return ToTypeCode(field.Type)
}

// Fill appends rows from cur to batch until the batch is full or the
// cursor is exhausted, returning the number of rows appended. Filling an
// exhausted cursor appends nothing.
func (m *Materializer) Fill(ctx context.Context, cur *RowCursor, batch *OutputBatch) (int, error) {
	start := batch.Len()
	for !batch.Full() {
		ok, err := cur.Step(ctx)
		if err != nil {
			return batch.Len() - start, err
		}
		if !ok {
			break
		}
		for i, plan := range m.plans {
			if !plan.requested {
				batch.Column(i).AppendNull()
				continue
			}
			if err := m.appendCell(cur, i, plan, batch.Column(i)); err != nil {
				return batch.Len() - start, err
			}
		}
		batch.advance()
	}
	return batch.Len() - start, nil
}

// appendCell reads column col of the current row and appends it to bld.
func (m *Materializer) appendCell(cur *RowCursor, col int, plan colPlan, bld array.Builder) error {
	switch b := bld.(type) {
	case *array.StringBuilder:
		kind := cursor.DataChar
		if plan.src.IsWide() {
			kind = cursor.DataWChar
		}
		data, isNull, err := cur.GetVar(col, kind)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		if isNull {
			b.AppendNull()
			return nil
		}
		if kind == cursor.DataWChar {
			b.Append(decodeWide(data))
		} else {
			b.Append(string(m.norm.Normalize(data)))
		}
		return nil

	case *array.BinaryBuilder:
		data, isNull, err := cur.GetVar(col, cursor.DataBinary)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		if isNull {
			b.AppendNull()
			return nil
		}
		b.Append(data)
		return nil
	}

	isNull, err := cur.IsNull(col)
	if err != nil {
		return errs.WrapIO(err, "read column %q", plan.name)
	}
	if isNull {
		bld.AppendNull()
		return nil
	}

	switch b := bld.(type) {
	case *array.BooleanBuilder:
		v, err := cur.GetInt32(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		b.Append(v != 0)
	case *array.Int8Builder:
		v, err := cur.GetInt32(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		b.Append(int8(v))
	case *array.Int16Builder:
		v, err := cur.GetInt32(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		b.Append(int16(v))
	case *array.Int32Builder:
		v, err := cur.GetInt32(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		b.Append(v)
	case *array.Int64Builder:
		v, err := cur.GetInt64(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		b.Append(v)
	case *array.Float32Builder:
		v, err := cur.GetDouble(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		b.Append(float32(v))
	case *array.Float64Builder:
		v, err := cur.GetDouble(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		b.Append(v)
	case *array.Date32Builder:
		t, err := cur.GetTimestamp(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		b.Append(arrow.Date32FromTime(t))
	case *array.Time64Builder:
		t, err := cur.GetTimestamp(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		micros := int64(t.Hour())*3600_000_000 +
			int64(t.Minute())*60_000_000 +
			int64(t.Second())*1_000_000 +
			int64(t.Nanosecond())/1000
		b.Append(arrow.Time64(micros))
	case *array.TimestampBuilder:
		t, err := cur.GetTimestamp(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		ts, err := arrow.TimestampFromTime(t, arrow.Microsecond)
		if err != nil {
			b.AppendNull()
			return nil
		}
		b.Append(ts)
	case *extensions.UUIDBuilder:
		s, err := cur.GetString(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		u, perr := uuid.Parse(s)
		if perr != nil {
			b.AppendNull()
			return nil
		}
		b.Append(u)
	case *array.Decimal128Builder:
		s, err := cur.GetString(col)
		if err != nil {
			return errs.WrapIO(err, "read column %q", plan.name)
		}
		dt := b.Type().(*arrow.Decimal128Type)
		m.appendDecimal(b, s, dt.Precision, dt.Scale)
	default:
		return errs.Internal("no materialization path for %s column %q (source type %s)",
			bld.Type(), plan.name, plan.src)
	}
	return nil
}

// appendDecimal parses s through the storage class selected by the
// column precision, widening the result to the 128-bit physical layout.
// Values that do not fit append NULL.
func (m *Materializer) appendDecimal(b *array.Decimal128Builder, s string, precision, scale int32) {
	switch decimalStorageBits(precision) {
	case 16:
		if v, ok := ParseDecimal[int16](s, precision, scale); ok {
			b.Append(decimal128.FromI64(int64(v)))
			return
		}
	case 32:
		if v, ok := ParseDecimal[int32](s, precision, scale); ok {
			b.Append(decimal128.FromI64(int64(v)))
			return
		}
	case 64:
		if v, ok := ParseDecimal[int64](s, precision, scale); ok {
			b.Append(decimal128.FromI64(v))
			return
		}
	default:
		if v, ok := ParseDecimal128(s, precision, scale); ok {
			b.Append(v)
			return
		}
	}
	b.AppendNull()
}
