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
	"context"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"golang.org/x/sync/errgroup"

	"github.com/siara-in/odbcscan-go/cursor"
)

// AttachedObject is one table or view discovered by Attach, with its
// bound schema.
type AttachedObject struct {
	Name   string
	View   bool
	Schema *arrow.Schema
}

// DefinitionSQL renders the source-side view definition for the object.
func (o AttachedObject) DefinitionSQL(overwrite bool) string {
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if overwrite {
		sb.WriteString("OR REPLACE ")
	}
	sb.WriteString("VIEW ")
	sb.WriteString(quoteIdentifier(o.Name))
	sb.WriteString(" AS ")
	sb.WriteString(buildSelect(o.Name, o.Schema, nil))
	return sb.String()
}

// AttachOptions controls bulk attachment.
type AttachOptions struct {
	// Workers is the number of concurrent connections used to describe
	// the discovered objects. Defaults to 4. Cursor handles cannot be
	// shared, so each worker opens its own connection.
	Workers int

	Config cursor.Config
}

// Attach enumerates every table and view visible through connector and
// binds a schema for each. Tables come first, in enumeration order, then
// views. Sources that cannot enumerate views degrade to tables only.
func Attach(ctx context.Context, connector cursor.Connector, opts AttachOptions) ([]AttachedObject, error) {
	conn, err := connector.Connect(ctx)
	if err != nil {
		return nil, errs.WrapIO(err, "connect for catalog enumeration")
	}
	defer conn.Close()

	tables, err := conn.ListTables(ctx)
	if err != nil {
		return nil, errs.WrapIO(err, "enumerate tables")
	}
	views, err := conn.ListViews(ctx)
	if err != nil {
		opts.Config.LoggerOrDiscard().WarnContext(ctx,
			"view enumeration failed, attaching tables only", "error", err)
		views = nil
	}

	objects := make([]AttachedObject, 0, len(tables)+len(views))
	for _, name := range tables {
		objects = append(objects, AttachedObject{Name: name})
	}
	for _, name := range views {
		objects = append(objects, AttachedObject{Name: name, View: true})
	}
	if len(objects) == 0 {
		return objects, nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 4
	}
	if workers > len(objects) {
		workers = len(objects)
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	g.Go(func() error {
		defer close(jobs)
		for i := range objects {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			wconn, err := connector.Connect(gctx)
			if err != nil {
				return errs.WrapIO(err, "connect describe worker")
			}
			defer wconn.Close()
			for i := range jobs {
				schema, err := DescribeTable(gctx, wconn, objects[i].Name, opts.Config)
				if err != nil {
					return err
				}
				objects[i].Schema = schema
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return objects, nil
}
