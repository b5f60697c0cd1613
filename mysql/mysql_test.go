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

package mysql

import (
	"errors"
	"fmt"
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siara-in/odbcscan-go/cursor"
)

func TestBuildDSN(t *testing.T) {
	dsn, err := buildDSN(cursor.ConnectionParams{
		Target: "root:secret@tcp(localhost:3306)/shop",
		Kind:   cursor.TargetConnectionString,
	})
	require.NoError(t, err)
	assert.Equal(t, "root:secret@tcp(localhost:3306)/shop", dsn)

	dsn, err = buildDSN(cursor.ConnectionParams{
		Target:   "tcp(localhost:3306)/shop",
		Kind:     cursor.TargetDSN,
		Username: "root",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "root:secret@tcp(localhost:3306)/shop", dsn)

	dsn, err = buildDSN(cursor.ConnectionParams{
		Target:   "tcp(localhost:3306)/shop",
		Kind:     cursor.TargetDSN,
		Username: "root",
	})
	require.NoError(t, err)
	assert.Equal(t, "root@tcp(localhost:3306)/shop", dsn)

	dsn, err = buildDSN(cursor.ConnectionParams{
		Target: "tcp(localhost:3306)/shop",
		Kind:   cursor.TargetDSN,
	})
	require.NoError(t, err)
	assert.Equal(t, "tcp(localhost:3306)/shop", dsn)

	_, err = buildDSN(cursor.ConnectionParams{})
	assert.Error(t, err)
}

func TestTranslateError(t *testing.T) {
	src := &mysqldrv.MySQLError{
		Number:   1146,
		SQLState: [5]byte{'4', '2', 'S', '0', '2'},
		Message:  "Table 'shop.orders' doesn't exist",
	}

	var de cursor.DiagnosticError
	require.ErrorAs(t, translateError(src), &de)
	assert.Equal(t, "42S02", de.SQLState())
	assert.EqualValues(t, 1146, de.VendorCode())
	assert.True(t, errors.Is(de, src))

	// Server errors are recognized anywhere in the chain.
	wrapped := fmt.Errorf("query users: %w", src)
	require.ErrorAs(t, translateError(wrapped), &de)
	assert.EqualValues(t, 1146, de.VendorCode())

	plain := errors.New("dial tcp: connection refused")
	assert.Equal(t, plain, translateError(plain))
	assert.Nil(t, translateError(nil))
}
