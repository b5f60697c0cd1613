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

import "log/slog"

// TargetKind states how ConnectionParams.Target is to be interpreted.
// Callers declare the kind explicitly; the engine never guesses from the
// shape of the string.
type TargetKind int

const (
	// TargetConnectionString treats Target as a full driver connection
	// string.
	TargetConnectionString TargetKind = iota
	// TargetDSN treats Target as a data source name to be resolved by
	// the driver manager.
	TargetDSN
)

func (k TargetKind) String() string {
	if k == TargetDSN {
		return "dsn"
	}
	return "connection_string"
}

// ConnectionParams identifies a data source.
type ConnectionParams struct {
	Target string
	Kind   TargetKind
	// Username and Password are used only when Kind is TargetDSN.
	Username string
	Password string
}

// Config carries per-session engine settings.
type Config struct {
	// Logger receives engine diagnostics, query text included at Debug
	// level. A nil Logger disables logging.
	Logger *slog.Logger

	// AllVarchar forces every result column to be described as text.
	AllVarchar bool

	// Encoding names the character encoding of narrow text from the
	// source, when it is not UTF-8. Empty means UTF-8.
	Encoding string

	// DecimalWidth and DecimalScale substitute for decimal columns whose
	// driver-reported width or scale is zero.
	DecimalWidth uint8
	DecimalScale uint8
}

// DefaultConfig returns the engine defaults: no logging, native column
// types, and the widest decimal fallback.
func DefaultConfig() Config {
	return Config{DecimalWidth: 38, DecimalScale: 2}
}

// LoggerOrDiscard returns the configured logger, or a logger that
// discards everything when none is set.
func (c Config) LoggerOrDiscard() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
