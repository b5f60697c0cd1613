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
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/encoding/unicode"

	"github.com/siara-in/odbcscan-go/cursor"
)

// typeNameCodes maps upper-cased driver type names to cursor type codes.
// Names absent from the map describe as VARCHAR, which scans as text.
var typeNameCodes = map[string]cursor.TypeCode{
	"BOOL":      cursor.TypeBit,
	"BOOLEAN":   cursor.TypeBit,
	"BIT":       cursor.TypeBit,
	"TINYINT":   cursor.TypeTinyInt,
	"SMALLINT":  cursor.TypeSmallInt,
	"MEDIUMINT": cursor.TypeInteger,
	"INT":       cursor.TypeInteger,
	"INTEGER":   cursor.TypeInteger,
	"BIGINT":    cursor.TypeBigInt,
	"FLOAT":     cursor.TypeReal,
	"REAL":      cursor.TypeReal,
	"DOUBLE":    cursor.TypeDouble,
	"DECIMAL":   cursor.TypeDecimal,
	"NUMERIC":   cursor.TypeNumeric,
	"CHAR":      cursor.TypeChar,
	"VARCHAR":   cursor.TypeVarChar,
	"TEXT":      cursor.TypeLongVarChar,
	"BINARY":    cursor.TypeBinary,
	"VARBINARY": cursor.TypeVarBinary,
	"BLOB":      cursor.TypeLongVarBinary,
	"DATE":      cursor.TypeDate,
	"TIME":      cursor.TypeTime,
	"DATETIME":  cursor.TypeTimestamp,
	"TIMESTAMP": cursor.TypeTimestamp,
	"UUID":      cursor.TypeGuid,
}

// describeColumnType converts driver column metadata to a descriptor.
// NCHAR-family names describe as their narrow counterparts because
// database/sql drivers deliver text as UTF-8 already.
func describeColumnType(ct *sql.ColumnType) cursor.ColumnDescriptor {
	name := strings.ToUpper(ct.DatabaseTypeName())
	name = strings.TrimPrefix(name, "N")

	code, ok := typeNameCodes[name]
	if !ok {
		code = cursor.TypeVarChar
	}

	desc := cursor.ColumnDescriptor{Name: ct.Name(), Type: code}
	if nullable, ok := ct.Nullable(); ok {
		desc.Nullable = nullable
	} else {
		desc.Nullable = true
	}
	if code == cursor.TypeDecimal || code == cursor.TypeNumeric {
		if prec, scale, ok := ct.DecimalSize(); ok {
			desc.Size = uint32(prec)
			desc.Scale = int16(scale)
		}
	} else if length, ok := ct.Length(); ok {
		desc.Size = uint32(length)
	}
	return desc
}

// convertNumeric converts a scanned cell to the requested numeric type,
// parsing textual cells on the way.
func convertNumeric[T constraints.Integer | constraints.Float](v any) (T, error) {
	switch val := v.(type) {
	case int64:
		return T(val), nil
	case int32:
		return T(val), nil
	case int:
		return T(val), nil
	case uint64:
		return T(val), nil
	case float64:
		return T(val), nil
	case float32:
		return T(val), nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return parseNumeric[T](string(val))
	case string:
		return parseNumeric[T](val)
	default:
		return 0, fmt.Errorf("cannot convert %T to numeric", v)
	}
}

func parseNumeric[T constraints.Integer | constraints.Float](s string) (T, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return T(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return T(f), nil
}

func convertString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05.999999")
	default:
		return fmt.Sprint(val)
	}
}

// timeLayouts are the textual forms drivers deliver temporal cells in,
// most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05.999999",
	"15:04:05",
}

func convertTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case []byte:
		return parseTime(string(val))
	case string:
		return parseTime(val)
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to time", v)
	}
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", s)
}

var wideEncoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encodeWide renders UTF-8 bytes as the UTF-16LE transfer form used for
// wide character retrieval.
func encodeWide(b []byte) []byte {
	out, err := wideEncoder.NewEncoder().Bytes(b)
	if err != nil {
		return b
	}
	return out
}
