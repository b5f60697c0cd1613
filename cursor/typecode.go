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

package cursor

// TypeCode is a source type descriptor code as reported by the call-level
// interface when describing a column. The numeric values follow the ODBC/XDBC
// convention so that drivers can pass their native codes through unchanged.
type TypeCode int16

const (
	TypeGuid          TypeCode = -11
	TypeWLongVarChar  TypeCode = -10
	TypeWVarChar      TypeCode = -9
	TypeWChar         TypeCode = -8
	TypeBit           TypeCode = -7
	TypeTinyInt       TypeCode = -6
	TypeBigInt        TypeCode = -5
	TypeLongVarBinary TypeCode = -4
	TypeVarBinary     TypeCode = -3
	TypeBinary        TypeCode = -2
	TypeLongVarChar   TypeCode = -1
	TypeChar          TypeCode = 1
	TypeNumeric       TypeCode = 2
	TypeDecimal       TypeCode = 3
	TypeInteger       TypeCode = 4
	TypeSmallInt      TypeCode = 5
	TypeFloat         TypeCode = 6
	TypeReal          TypeCode = 7
	TypeDouble        TypeCode = 8
	// Legacy date/time codes used by ODBC 2.x drivers.
	TypeLegacyDate      TypeCode = 9
	TypeLegacyTime      TypeCode = 10
	TypeLegacyTimestamp TypeCode = 11
	TypeVarChar         TypeCode = 12
	TypeDate            TypeCode = 91
	TypeTime            TypeCode = 92
	TypeTimestamp       TypeCode = 93
)

var typeCodeNames = map[TypeCode]string{
	TypeGuid:            "GUID",
	TypeWLongVarChar:    "WLONGVARCHAR",
	TypeWVarChar:        "WVARCHAR",
	TypeWChar:           "WCHAR",
	TypeBit:             "BIT",
	TypeTinyInt:         "TINYINT",
	TypeBigInt:          "BIGINT",
	TypeLongVarBinary:   "LONGVARBINARY",
	TypeVarBinary:       "VARBINARY",
	TypeBinary:          "BINARY",
	TypeLongVarChar:     "LONGVARCHAR",
	TypeChar:            "CHAR",
	TypeNumeric:         "NUMERIC",
	TypeDecimal:         "DECIMAL",
	TypeInteger:         "INTEGER",
	TypeSmallInt:        "SMALLINT",
	TypeFloat:           "FLOAT",
	TypeReal:            "REAL",
	TypeDouble:          "DOUBLE",
	TypeLegacyDate:      "DATE",
	TypeLegacyTime:      "TIME",
	TypeLegacyTimestamp: "TIMESTAMP",
	TypeVarChar:         "VARCHAR",
	TypeDate:            "DATE",
	TypeTime:            "TIME",
	TypeTimestamp:       "TIMESTAMP",
}

// String returns the diagnostic name of the type code, or "UNKNOWN" for
// codes the engine has no mapping for.
func (t TypeCode) String() string {
	if name, ok := typeCodeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsBinary reports whether the code describes raw binary data (no
// terminator slot is reserved when reading it in chunks).
func (t TypeCode) IsBinary() bool {
	switch t {
	case TypeBinary, TypeVarBinary, TypeLongVarBinary:
		return true
	}
	return false
}

// IsWide reports whether the code describes wide (UTF-16) character data.
func (t TypeCode) IsWide() bool {
	switch t {
	case TypeWChar, TypeWVarChar, TypeWLongVarChar:
		return true
	}
	return false
}
