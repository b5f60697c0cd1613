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
	"github.com/apache/arrow-go/v18/arrow/decimal128"
)

// decimalInt is the set of integer classes decimal values are stored in,
// chosen by decimalStorageBits from the column precision.
type decimalInt interface {
	~int16 | ~int32 | ~int64
}

// ParseDecimal converts the textual form of a decimal value into its
// scaled integer representation (value multiplied by 10^scale). Extra
// fractional digits round half away from zero. It reports ok=false when
// the value does not fit the declared precision or the storage class;
// such values materialize as NULL rather than failing the scan.
func ParseDecimal[T decimalInt](s string, precision, scale int32) (T, bool) {
	v, ok := parseScaled(s, precision, scale)
	if !ok {
		return 0, false
	}
	narrowed := T(v)
	if int64(narrowed) != v {
		return 0, false
	}
	return narrowed, true
}

// ParseDecimal128 is the 128-bit analogue of ParseDecimal for precisions
// beyond 18 digits.
func ParseDecimal128(s string, precision, scale int32) (decimal128.Num, bool) {
	n, err := decimal128.FromString(s, precision, scale)
	if err != nil {
		return decimal128.Num{}, false
	}
	if !n.FitsInPrecision(precision) {
		return decimal128.Num{}, false
	}
	return n, true
}

// parseScaled hand-parses sign, integer and fraction digits, accumulating
// the scaled value in 64 bits with overflow detection.
func parseScaled(s string, precision, scale int32) (int64, bool) {
	if len(s) == 0 {
		return 0, false
	}

	i := 0
	neg := false
	switch s[0] {
	case '+':
		i++
	case '-':
		neg = true
		i++
	}
	if i == len(s) {
		return 0, false
	}

	var (
		value    int64
		digits   int32
		fracSeen int32
		inFrac   bool
		roundUp  bool
		sawDigit bool
	)
	for ; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if inFrac {
				return 0, false
			}
			inFrac = true
			continue
		}
		if c < '0' || c > '9' {
			return 0, false
		}
		sawDigit = true
		if inFrac {
			if fracSeen == scale {
				// First digit past the declared scale decides
				// the rounding; the rest are dropped.
				if !roundUp {
					roundUp = c >= '5'
				}
				continue
			}
			fracSeen++
		}
		d := int64(c - '0')
		if value > (1<<63-1-d)/10 {
			return 0, false
		}
		value = value*10 + d
		if value != 0 {
			digits++
		}
	}
	if !sawDigit {
		return 0, false
	}

	// Pad missing fraction digits up to the declared scale.
	for ; fracSeen < scale; fracSeen++ {
		if value > (1<<63-1)/10 {
			return 0, false
		}
		value *= 10
		if value != 0 {
			digits++
		}
	}
	if roundUp {
		value++
		digits = countDigits(value)
	}
	if digits > precision {
		return 0, false
	}
	if neg {
		value = -value
	}
	return value, true
}

func countDigits(v int64) int32 {
	var n int32
	for v != 0 {
		v /= 10
		n++
	}
	return n
}
