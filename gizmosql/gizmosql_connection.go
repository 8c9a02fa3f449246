// Licensed to GizmoData LLC under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  GizmoData LLC licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package gizmosql

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/apache/arrow-adbc/go/adbc"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/gizmodata/gizmosql-go/dialect"
)

// Connection wraps an ADBC connection with the execution semantics the
// mapping layer expects: pseudo-statement dispatch, benign-error
// normalization, and drain-on-execute.
type Connection struct {
	db     adbc.Database
	cnxn   adbc.Connection
	alloc  memory.Allocator
	logger *slog.Logger
	hlp    errorHelper

	// Notices mirrors the server-notice attribute some mapping layers
	// probe for. This backend produces none.
	Notices []string
}

var _ dialect.Conn = (*Connection)(nil)

// Execute runs a single statement and discards any result rows.
//
// Two statement texts dispatch to connection-level operations instead of the
// server, compared case-insensitively: "commit" commits the connection, and
// "register" registers a record stream as a table named by the first
// parameter. Everything else executes on a fresh cursor and is drained.
func (c *Connection) Execute(ctx context.Context, statement string, parameters ...any) error {
	switch strings.ToLower(statement) {
	case "commit":
		err := c.cnxn.Commit(ctx)
		if isBenignNoTransaction(err, "commit") {
			return nil
		}
		return normalizeError(err)
	case "register":
		if len(parameters) != 2 {
			return c.hlp.errorf(adbc.StatusInvalidArgument,
				"register expects (name, record reader) parameters, got %d", len(parameters))
		}
		name, ok := parameters[0].(string)
		if !ok {
			return c.hlp.errorf(adbc.StatusInvalidArgument, "register name must be a string, got %T", parameters[0])
		}
		reader, ok := parameters[1].(array.RecordReader)
		if !ok {
			return c.hlp.errorf(adbc.StatusInvalidArgument,
				"register data must be an array.RecordReader, got %T", parameters[1])
		}
		_, err := c.Register(ctx, name, reader)
		return err
	}

	err := c.drainStatement(ctx, statement, parameters...)
	if isBenignNoTransaction(err, "commit") {
		return nil
	}
	return normalizeError(err)
}

// ExecuteMany runs a statement once per parameter set on a single cursor.
func (c *Connection) ExecuteMany(ctx context.Context, statement string, parameterSets [][]any) error {
	cur, err := c.Cursor()
	if err != nil {
		return err
	}
	defer cur.Close()

	for _, parameters := range parameterSets {
		if err := cur.Execute(ctx, statement, parameters...); err != nil {
			return normalizeError(err)
		}
		if _, err := cur.FetchAll(); err != nil {
			return normalizeError(err)
		}
	}
	return nil
}

// Register ingests a record stream into a temporary table of the given name,
// making the data addressable by subsequent queries on this connection. It
// returns the number of rows ingested, or -1 when the backend does not
// report a count.
func (c *Connection) Register(ctx context.Context, name string, reader array.RecordReader) (int64, error) {
	c.logger.DebugContext(ctx, "registering record stream", "table", name)
	count, err := adbc.IngestStream(ctx, c.cnxn, reader, name, adbc.OptionValueIngestModeCreate,
		adbc.IngestStreamOptions{Temporary: true})
	if err != nil {
		return count, normalizeError(err)
	}
	return count, nil
}

// Cursor returns a new cursor over this connection.
func (c *Connection) Cursor() (dialect.Cursor, error) {
	stmt, err := c.cnxn.NewStatement()
	if err != nil {
		return nil, err
	}
	return &Cursor{stmt: stmt, alloc: c.alloc, hlp: c.hlp}, nil
}

// Close releases the wrapped connection and its owning database handle.
func (c *Connection) Close() error {
	return errors.Join(c.cnxn.Close(), c.db.Close())
}

// Underlying exposes the wrapped ADBC connection for callers that need
// driver capabilities outside the dialect contract.
func (c *Connection) Underlying() adbc.Connection {
	return c.cnxn
}

func (c *Connection) drainStatement(ctx context.Context, statement string, parameters ...any) error {
	cur, err := c.Cursor()
	if err != nil {
		return err
	}
	defer cur.Close()

	if err := cur.Execute(ctx, statement, parameters...); err != nil {
		return err
	}
	_, err = cur.FetchAll()
	return err
}
