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
	"github.com/siara-in/odbcscan-go/cursor"
)

// varBufferSize is the initial chunk buffer for variable-length cells.
// Most values complete in one read at this size.
const varBufferSize = 4096

// readVar retrieves a complete variable-length cell through chunked
// GetData calls. For character kinds each chunk sacrifices the trailing
// terminator bytes, so the buffer grows until the value fits:
//   - known remainder: grow to exactly total + remaining + terminator
//   - unknown remainder (NoTotal): double
//
// isNull reports the NULL sentinel; data is nil in that case.
func readVar(stmt cursor.Statement, col int, kind cursor.DataKind) (data []byte, isNull bool, err error) {
	termSize := kind.TerminatorSize()
	buf := make([]byte, varBufferSize)
	total := 0

	for {
		n, indicator, err := stmt.GetData(col, kind, buf[total:])
		if err != nil {
			return nil, false, err
		}
		if indicator == cursor.NullData {
			return nil, true, nil
		}
		total += n

		switch {
		case indicator == cursor.NoTotal:
			next := make([]byte, len(buf)*2)
			copy(next, buf[:total])
			buf = next
		case int(indicator) > n:
			remaining := int(indicator) - n
			next := make([]byte, total+remaining+termSize)
			copy(next, buf[:total])
			buf = next
		default:
			return buf[:total], false, nil
		}
	}
}
