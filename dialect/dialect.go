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

// Package dialect declares the pluggable dialect contract a relational-mapping
// layer programs against: connection construction from a URL, transaction
// verbs, statement execution, and schema reflection. Implementations adapt a
// concrete database driver to this surface; see the gizmosql package for the
// Arrow Flight SQL implementation.
package dialect

import (
	"context"
	"net/url"
)

// PoolClass selects the connection pooling strategy a dialect asks its host
// to use for connections it creates.
type PoolClass int

const (
	// PoolQueue is a bounded blocking pool (the database/sql default).
	PoolQueue PoolClass = iota
	// PoolStatic holds exactly one connection.
	PoolStatic
	// PoolNull opens and closes a connection per use.
	PoolNull
)

func (p PoolClass) String() string {
	switch p {
	case PoolQueue:
		return "queue"
	case PoolStatic:
		return "static"
	case PoolNull:
		return "null"
	default:
		return "unknown"
	}
}

// ServerVersion is the (major, minor) version a dialect reports for the
// server behind a connection.
type ServerVersion struct {
	Major int
	Minor int
}

// IsolationLevel names a transaction isolation level requested by the host
// framework.
type IsolationLevel string

// Conn is the dialect-facing connection surface. Implementations wrap a
// vendor driver connection and normalize its execution and error semantics.
type Conn interface {
	// Execute runs a single statement, discarding any result rows.
	// Positional parameters bind in order.
	Execute(ctx context.Context, statement string, parameters ...any) error
	// ExecuteMany runs a statement once per parameter set.
	ExecuteMany(ctx context.Context, statement string, parameterSets [][]any) error
	// Cursor returns a new scoped cursor over this connection.
	Cursor() (Cursor, error)
	Close() error
}

// Cursor is a scoped execution and fetch surface. A cursor holds at most one
// open result stream; executing again releases the previous one.
type Cursor interface {
	Execute(ctx context.Context, statement string, parameters ...any) error
	// FetchOne returns the next row, or (nil, nil) once the stream is
	// exhausted.
	FetchOne() ([]any, error)
	// FetchMany returns up to size rows; a short or empty slice signals
	// exhaustion.
	FetchMany(size int) ([][]any, error)
	FetchAll() ([][]any, error)
	Close() error
}

// Dialect adapts a vendor driver to the relational-mapping layer. All
// reflection methods take the dialect's own Conn.
type Dialect interface {
	// Name reports the dialect's registry name.
	Name() string

	// ConnectArgs translates a connection URL into vendor driver options.
	ConnectArgs(u *url.URL) (map[string]string, error)
	// Connect opens a vendor connection from options produced by ConnectArgs.
	Connect(ctx context.Context, opts map[string]string) (Conn, error)
	// OnConnect is invoked once per newly pooled connection.
	OnConnect(ctx context.Context, conn Conn) error

	DoBegin(ctx context.Context, conn Conn) error
	DoCommit(ctx context.Context, conn Conn) error
	DoRollback(ctx context.Context, conn Conn) error
	// DoExecute runs a compiled statement; drainResults consumes and discards
	// the result stream (DDL and DML paths).
	DoExecute(ctx context.Context, conn Conn, statement string, drainResults bool, parameters ...any) error

	SchemaNames(ctx context.Context, conn Conn) ([]string, error)
	TableNames(ctx context.Context, conn Conn, schema string) ([]string, error)
	ViewNames(ctx context.Context, conn Conn, schema string) ([]string, error)
	Columns(ctx context.Context, conn Conn, table, schema string) ([]ReflectedColumn, error)
	PrimaryKey(ctx context.Context, conn Conn, table, schema string) (ReflectedPrimaryKey, error)
	ForeignKeys(ctx context.Context, conn Conn, table, schema string) ([]ReflectedForeignKey, error)
	CheckConstraints(ctx context.Context, conn Conn, table, schema string) ([]ReflectedCheck, error)
	Indexes(ctx context.Context, conn Conn, table, schema string) ([]ReflectedIndex, error)
	HasTable(ctx context.Context, conn Conn, table, schema string) (bool, error)

	PoolClass() PoolClass
	ServerVersionInfo(ctx context.Context, conn Conn) (ServerVersion, error)
	// DefaultIsolationLevel reports the server's default isolation level, or
	// a not-implemented error when the dialect cannot determine one.
	DefaultIsolationLevel(ctx context.Context, conn Conn) (IsolationLevel, error)
}
