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
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/extensions"

	"github.com/siara-in/odbcscan-go/cursor"
)

// Field metadata keys recording what the source driver reported for a
// column. Stored on every bound schema field.
const (
	FieldKeyTypeCode      = "odbc.type_code"
	FieldKeyTypeName      = "odbc.type_name"
	FieldKeyColumnSize    = "odbc.column_size"
	FieldKeyDecimalDigits = "odbc.decimal_digits"
)

// maxDecimalPrecision is the widest decimal the engine materializes.
// Wider declarations are clamped.
const maxDecimalPrecision = 38

// ToArrowType maps a source type code to the Arrow type the engine
// materializes it as. The mapping is total: codes with no dedicated
// representation are scanned as text.
func ToArrowType(code cursor.TypeCode, size uint32, scale int16) arrow.DataType {
	switch code {
	case cursor.TypeBit:
		return arrow.FixedWidthTypes.Boolean
	case cursor.TypeTinyInt:
		return arrow.PrimitiveTypes.Int8
	case cursor.TypeSmallInt:
		return arrow.PrimitiveTypes.Int16
	case cursor.TypeInteger:
		return arrow.PrimitiveTypes.Int32
	case cursor.TypeBigInt:
		return arrow.PrimitiveTypes.Int64
	case cursor.TypeReal, cursor.TypeFloat:
		return arrow.PrimitiveTypes.Float32
	case cursor.TypeDouble:
		return arrow.PrimitiveTypes.Float64
	case cursor.TypeDecimal, cursor.TypeNumeric:
		prec := int32(size)
		if prec > maxDecimalPrecision {
			prec = maxDecimalPrecision
		}
		return &arrow.Decimal128Type{Precision: prec, Scale: int32(scale)}
	case cursor.TypeBinary, cursor.TypeVarBinary, cursor.TypeLongVarBinary:
		return arrow.BinaryTypes.Binary
	case cursor.TypeDate, cursor.TypeLegacyDate:
		return arrow.FixedWidthTypes.Date32
	case cursor.TypeTime, cursor.TypeLegacyTime:
		return arrow.FixedWidthTypes.Time64us
	case cursor.TypeTimestamp, cursor.TypeLegacyTimestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond}
	case cursor.TypeGuid:
		return extensions.NewUUIDType()
	default:
		// Char, VarChar, the wide variants, and every unrecognized
		// code scan as text.
		return arrow.BinaryTypes.String
	}
}

// ToTypeCode maps an Arrow type back to the source type code used when
// generating SQL against the source. Total; unknown types map to VARCHAR.
func ToTypeCode(dt arrow.DataType) cursor.TypeCode {
	switch dt.ID() {
	case arrow.BOOL:
		return cursor.TypeBit
	case arrow.INT8:
		return cursor.TypeTinyInt
	case arrow.INT16:
		return cursor.TypeSmallInt
	case arrow.INT32:
		return cursor.TypeInteger
	case arrow.INT64:
		return cursor.TypeBigInt
	case arrow.FLOAT32:
		return cursor.TypeFloat
	case arrow.FLOAT64:
		return cursor.TypeDouble
	case arrow.DECIMAL128, arrow.DECIMAL256:
		return cursor.TypeDecimal
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.FIXED_SIZE_BINARY:
		return cursor.TypeBinary
	case arrow.DATE32, arrow.DATE64:
		return cursor.TypeDate
	case arrow.TIME32, arrow.TIME64:
		return cursor.TypeTime
	case arrow.TIMESTAMP:
		return cursor.TypeTimestamp
	default:
		return cursor.TypeVarChar
	}
}

// decimalStorageBits returns the width of the integer class decimal
// values of the given precision are converted through.
func decimalStorageBits(precision int32) int {
	switch {
	case precision <= 4:
		return 16
	case precision <= 9:
		return 32
	case precision <= 18:
		return 64
	default:
		return 128
	}
}
