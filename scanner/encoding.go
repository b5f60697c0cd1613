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
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// encodingAliases maps driver-reported code page spellings that the IANA
// index does not resolve directly.
var encodingAliases = map[string]encoding.Encoding{
	"cp1250":  charmap.Windows1250,
	"cp1251":  charmap.Windows1251,
	"cp1252":  charmap.Windows1252,
	"cp1253":  charmap.Windows1253,
	"cp1254":  charmap.Windows1254,
	"cp1255":  charmap.Windows1255,
	"cp1256":  charmap.Windows1256,
	"cp1257":  charmap.Windows1257,
	"cp1258":  charmap.Windows1258,
	"latin1":  charmap.ISO8859_1,
	"latin-1": charmap.ISO8859_1,
	"cp850":   charmap.CodePage850,
	"cp437":   charmap.CodePage437,
}

// Normalizer converts text from a declared source encoding to UTF-8.
// The conversion is best effort: when the encoding is unknown or a value
// fails to decode, the input passes through unchanged.
type Normalizer struct {
	enc encoding.Encoding
}

// NewNormalizer resolves the declared encoding name. Empty names and
// UTF-8 spellings yield a pass-through normalizer.
func NewNormalizer(name string) Normalizer {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf8", "utf-8":
		return Normalizer{}
	}
	if enc, ok := encodingAliases[key]; ok {
		return Normalizer{enc: enc}
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return Normalizer{}
	}
	return Normalizer{enc: enc}
}

// Normalize decodes b to UTF-8. The input is returned unchanged when the
// normalizer is pass-through or decoding fails.
func (n Normalizer) Normalize(b []byte) []byte {
	if n.enc == nil || len(b) == 0 {
		return b
	}
	out, err := n.enc.NewDecoder().Bytes(b)
	if err != nil {
		return b
	}
	return out
}

var wideDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeWide converts UTF-16LE bytes, as retrieved for wide character
// columns, to a UTF-8 string. Malformed input falls back to the raw bytes.
func decodeWide(b []byte) string {
	out, err := wideDecoder.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
