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
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/extensions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siara-in/odbcscan-go/cursor"
)

func TestToArrowType(t *testing.T) {
	tests := []struct {
		code cursor.TypeCode
		want arrow.DataType
	}{
		{cursor.TypeBit, arrow.FixedWidthTypes.Boolean},
		{cursor.TypeTinyInt, arrow.PrimitiveTypes.Int8},
		{cursor.TypeSmallInt, arrow.PrimitiveTypes.Int16},
		{cursor.TypeInteger, arrow.PrimitiveTypes.Int32},
		{cursor.TypeBigInt, arrow.PrimitiveTypes.Int64},
		{cursor.TypeReal, arrow.PrimitiveTypes.Float32},
		{cursor.TypeFloat, arrow.PrimitiveTypes.Float32},
		{cursor.TypeDouble, arrow.PrimitiveTypes.Float64},
		{cursor.TypeChar, arrow.BinaryTypes.String},
		{cursor.TypeVarChar, arrow.BinaryTypes.String},
		{cursor.TypeLongVarChar, arrow.BinaryTypes.String},
		{cursor.TypeWChar, arrow.BinaryTypes.String},
		{cursor.TypeWVarChar, arrow.BinaryTypes.String},
		{cursor.TypeWLongVarChar, arrow.BinaryTypes.String},
		{cursor.TypeBinary, arrow.BinaryTypes.Binary},
		{cursor.TypeVarBinary, arrow.BinaryTypes.Binary},
		{cursor.TypeLongVarBinary, arrow.BinaryTypes.Binary},
		{cursor.TypeDate, arrow.FixedWidthTypes.Date32},
		{cursor.TypeLegacyDate, arrow.FixedWidthTypes.Date32},
		{cursor.TypeTime, arrow.FixedWidthTypes.Time64us},
		{cursor.TypeLegacyTime, arrow.FixedWidthTypes.Time64us},
		{cursor.TypeTimestamp, &arrow.TimestampType{Unit: arrow.Microsecond}},
		{cursor.TypeLegacyTimestamp, &arrow.TimestampType{Unit: arrow.Microsecond}},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			got := ToArrowType(tt.code, 0, 0)
			assert.True(t, arrow.TypeEqual(tt.want, got), "got %s", got)
		})
	}
}

func TestToArrowTypeDecimal(t *testing.T) {
	dt := ToArrowType(cursor.TypeDecimal, 5, 2)
	dec, ok := dt.(*arrow.Decimal128Type)
	require.True(t, ok)
	assert.EqualValues(t, 5, dec.Precision)
	assert.EqualValues(t, 2, dec.Scale)

	// Declarations wider than the engine supports clamp.
	dt = ToArrowType(cursor.TypeNumeric, 64, 4)
	dec = dt.(*arrow.Decimal128Type)
	assert.EqualValues(t, 38, dec.Precision)
}

func TestToArrowTypeGuid(t *testing.T) {
	dt := ToArrowType(cursor.TypeGuid, 0, 0)
	assert.True(t, arrow.TypeEqual(extensions.NewUUIDType(), dt))
}

func TestToArrowTypeUnknownCode(t *testing.T) {
	// Codes without a mapping scan as text rather than failing.
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, ToArrowType(cursor.TypeCode(999), 0, 0)))
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, ToArrowType(cursor.TypeCode(-77), 0, 0)))
}

func TestToTypeCode(t *testing.T) {
	tests := []struct {
		dt   arrow.DataType
		want cursor.TypeCode
	}{
		{arrow.FixedWidthTypes.Boolean, cursor.TypeBit},
		{arrow.PrimitiveTypes.Int8, cursor.TypeTinyInt},
		{arrow.PrimitiveTypes.Int16, cursor.TypeSmallInt},
		{arrow.PrimitiveTypes.Int32, cursor.TypeInteger},
		{arrow.PrimitiveTypes.Int64, cursor.TypeBigInt},
		{arrow.PrimitiveTypes.Float32, cursor.TypeFloat},
		{arrow.PrimitiveTypes.Float64, cursor.TypeDouble},
		{&arrow.Decimal128Type{Precision: 10, Scale: 2}, cursor.TypeDecimal},
		{arrow.BinaryTypes.Binary, cursor.TypeBinary},
		{arrow.FixedWidthTypes.Date32, cursor.TypeDate},
		{arrow.FixedWidthTypes.Time64us, cursor.TypeTime},
		{&arrow.TimestampType{Unit: arrow.Microsecond}, cursor.TypeTimestamp},
		{arrow.BinaryTypes.String, cursor.TypeVarChar},
		// Types with no counterpart fall back to VARCHAR.
		{arrow.ListOf(arrow.PrimitiveTypes.Int32), cursor.TypeVarChar},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToTypeCode(tt.dt), "for %s", tt.dt)
	}
}

func TestDecimalStorageBits(t *testing.T) {
	tests := []struct {
		precision int32
		want      int
	}{
		{1, 16}, {4, 16},
		{5, 32}, {9, 32},
		{10, 64}, {18, 64},
		{19, 128}, {38, 128},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, decimalStorageBits(tt.precision), "precision %d", tt.precision)
	}
}

func TestTypeCodeString(t *testing.T) {
	assert.Equal(t, "VARCHAR", cursor.TypeVarChar.String())
	assert.Equal(t, "DECIMAL", cursor.TypeDecimal.String())
	assert.Equal(t, "UNKNOWN", cursor.TypeCode(999).String())
}
