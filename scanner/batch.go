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
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// BatchCapacity is the fixed row capacity of an output batch.
const BatchCapacity = 2048

// OutputBatch accumulates up to BatchCapacity rows of columnar output.
// Cells are appended column by column within a row; NULLs land in the
// validity bitmap, never as placeholder values.
type OutputBatch struct {
	builder *array.RecordBuilder
	rows    int
}

// NewOutputBatch allocates builders for schema from mem.
func NewOutputBatch(mem memory.Allocator, schema *arrow.Schema) *OutputBatch {
	b := array.NewRecordBuilder(mem, schema)
	b.Reserve(BatchCapacity)
	return &OutputBatch{builder: b}
}

func (b *OutputBatch) Schema() *arrow.Schema { return b.builder.Schema() }

// Len is the number of complete rows appended since the last Record call.
func (b *OutputBatch) Len() int { return b.rows }

// Full reports whether the batch has reached its capacity.
func (b *OutputBatch) Full() bool { return b.rows >= BatchCapacity }

// Column returns the builder for column i of the current row.
func (b *OutputBatch) Column(i int) array.Builder { return b.builder.Field(i) }

// advance marks the current row complete.
func (b *OutputBatch) advance() { b.rows++ }

// Record finalizes the accumulated rows into a record batch and resets
// the batch for reuse. The caller owns the returned record.
func (b *OutputBatch) Record() arrow.RecordBatch {
	rec := b.builder.NewRecordBatch()
	b.rows = 0
	b.builder.Reserve(BatchCapacity)
	return rec
}

// Release frees the underlying builders. The batch must not be used
// afterwards.
func (b *OutputBatch) Release() { b.builder.Release() }
