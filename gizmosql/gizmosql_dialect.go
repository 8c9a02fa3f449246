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

// Package gizmosql adapts the ADBC Arrow Flight SQL driver to the dialect
// contract so a relational-mapping layer can speak to a GizmoSQL server.
//
// The adapter is a thin translation shim: connection URLs become driver
// options, dialect verbs become statements on pooled driver connections, and
// reflection queries run against the server's information_schema. It holds no
// caches and no state beyond the wrapped driver handles.
package gizmosql

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/apache/arrow-adbc/go/adbc"
	"github.com/apache/arrow-adbc/go/adbc/driver/flightsql"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/maps"

	"github.com/gizmodata/gizmosql-go/dialect"
)

const (
	// DriverName is the dialect's registry name.
	DriverName = "gizmosql"
	// Version of this adapter.
	Version = "0.0.24"

	tracerName = "github.com/gizmodata/gizmosql-go/gizmosql"

	// Connect-arg keys produced by ConnectArgs and consumed by Connect.
	keyHost        = "host"
	keyPort        = "port"
	keyDatabase    = "database"
	keyUsername    = "username"
	keyPassword    = "password"
	keyEncryption  = "use_encryption"
	keySkipVerify  = "disable_certificate_verification"
	urlEncryption  = "useEncryption"
	urlSkipVerify  = "disableCertificateVerification"
	defaultSchema  = "main"
	headerDatabase = flightsql.OptionRPCCallHeaderPrefix + "database"
)

// Dialect implements dialect.Dialect on top of the ADBC Flight SQL driver.
type Dialect struct {
	drv    adbc.Driver
	alloc  memory.Allocator
	logger *slog.Logger
	tracer trace.Tracer
	hlp    errorHelper
}

var _ dialect.Dialect = (*Dialect)(nil)

// NewDialect constructs a Dialect backed by the Flight SQL driver. A nil
// allocator selects the default.
func NewDialect(alloc memory.Allocator) *Dialect {
	if alloc == nil {
		alloc = memory.DefaultAllocator
	}
	return &Dialect{
		drv:    flightsql.NewDriver(alloc),
		alloc:  alloc,
		logger: nilLogger(),
		tracer: otel.Tracer(tracerName),
		hlp:    errorHelper{driverName: DriverName},
	}
}

func (d *Dialect) Name() string { return DriverName }

// SetLogger replaces the dialect's logger. A nil logger restores the
// default no-op logger.
func (d *Dialect) SetLogger(logger *slog.Logger) {
	if logger != nil {
		d.logger = logger
	} else {
		d.logger = nilLogger()
	}
}

// ConnectArgs translates a gizmosql:// connection URL into the flat option
// map Connect consumes. The useEncryption and disableCertificateVerification
// query parameters are extracted; every other query parameter passes through
// untouched and later becomes an RPC call header. A query parameter named
// like one of the reserved connection options is rejected rather than
// silently overriding it.
func (d *Dialect) ConnectArgs(u *url.URL) (map[string]string, error) {
	if u == nil {
		return nil, d.hlp.errorf(adbc.StatusInvalidArgument, "connection URL is required")
	}
	if u.Scheme != "" && u.Scheme != DriverName {
		return nil, d.hlp.errorf(adbc.StatusInvalidArgument, "unsupported connection URL scheme %q", u.Scheme)
	}

	opts := make(map[string]string)
	if host := u.Hostname(); host != "" {
		opts[keyHost] = host
	}
	if port := u.Port(); port != "" {
		opts[keyPort] = port
	}
	if u.User != nil {
		if name := u.User.Username(); name != "" {
			opts[keyUsername] = name
		}
		if password, ok := u.User.Password(); ok {
			opts[keyPassword] = password
		}
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		opts[keyDatabase] = db
	}

	query := u.Query()
	if v := query.Get(urlEncryption); v != "" {
		opts[keyEncryption] = v
	}
	query.Del(urlEncryption)
	if v := query.Get(urlSkipVerify); v != "" {
		opts[keySkipVerify] = v
	}
	query.Del(urlSkipVerify)
	for key := range query {
		switch key {
		case keyHost, keyPort, keyDatabase, keyUsername, keyPassword, keyEncryption, keySkipVerify:
			return nil, d.hlp.errorf(adbc.StatusInvalidArgument,
				"query parameter %q collides with a reserved connection option", key)
		}
		opts[key] = query.Get(key)
	}
	return opts, nil
}

// driverOptions lowers the ConnectArgs option map onto concrete ADBC
// database options for the Flight SQL driver.
func (d *Dialect) driverOptions(opts map[string]string) (map[string]string, error) {
	remaining := maps.Clone(opts)
	if remaining == nil {
		remaining = make(map[string]string)
	}

	useEncryption := strings.EqualFold(popOpt(remaining, keyEncryption), "true")
	skipVerify := strings.EqualFold(popOpt(remaining, keySkipVerify), "true")

	host := popOpt(remaining, keyHost)
	port := popOpt(remaining, keyPort)
	if host == "" || port == "" {
		return nil, d.hlp.errorf(adbc.StatusInvalidArgument, "connection options must include a host and port")
	}

	protocol := "grpc"
	if useEncryption {
		protocol += "+tls"
	}

	dbOpts := map[string]string{
		adbc.OptionKeyURI:             protocol + "://" + net.JoinHostPort(host, port),
		flightsql.OptionSSLSkipVerify: strconv.FormatBool(skipVerify),
	}
	if username := popOpt(remaining, keyUsername); username != "" {
		dbOpts[adbc.OptionKeyUsername] = username
	}
	if password := popOpt(remaining, keyPassword); password != "" {
		dbOpts[adbc.OptionKeyPassword] = password
	}
	// The wire protocol carries the database name as a call header, there
	// is no dedicated driver option for it.
	if database := popOpt(remaining, keyDatabase); database != "" {
		dbOpts[headerDatabase] = database
	}
	for key, value := range remaining {
		dbOpts[flightsql.OptionRPCCallHeaderPrefix+key] = value
	}
	return dbOpts, nil
}

func popOpt(opts map[string]string, key string) string {
	v := opts[key]
	delete(opts, key)
	return v
}

// Connect opens a driver connection from options produced by ConnectArgs and
// wraps it for the mapping layer.
func (d *Dialect) Connect(ctx context.Context, opts map[string]string) (dialect.Conn, error) {
	ctx, span := d.tracer.Start(ctx, "gizmosql.Connect")
	defer span.End()

	dbOpts, err := d.driverOptions(opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	db, err := d.drv.NewDatabase(dbOpts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if dbLog, ok := db.(adbc.DatabaseLogging); ok {
		dbLog.SetLogger(d.logger)
	}

	cnxn, err := db.Open(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	d.logger.DebugContext(ctx, "opened connection", "uri", dbOpts[adbc.OptionKeyURI])
	return &Connection{
		db:      db,
		cnxn:    cnxn,
		alloc:   d.alloc,
		logger:  d.logger,
		hlp:     d.hlp,
		Notices: []string{"n/a"},
	}, nil
}

// OnConnect is a per-pooled-connection hook; this dialect needs none.
func (d *Dialect) OnConnect(ctx context.Context, conn dialect.Conn) error {
	return nil
}

func (d *Dialect) DoBegin(ctx context.Context, conn dialect.Conn) error {
	return d.runStatement(ctx, conn, "begin")
}

func (d *Dialect) DoCommit(ctx context.Context, conn dialect.Conn) error {
	return d.runStatement(ctx, conn, "commit")
}

// DoRollback ends the current transaction. Rolling back when no transaction
// is active is a no-op.
func (d *Dialect) DoRollback(ctx context.Context, conn dialect.Conn) error {
	err := d.runStatement(ctx, conn, "rollback")
	if isBenignNoTransaction(err, "rollback") {
		return nil
	}
	return err
}

// DoExecute runs a compiled statement. drainResults consumes and discards
// the result stream, which DDL and DML statements require before the
// statement handle can be reused.
func (d *Dialect) DoExecute(ctx context.Context, conn dialect.Conn, statement string, drainResults bool, parameters ...any) error {
	cur, err := conn.Cursor()
	if err != nil {
		return err
	}
	defer cur.Close()

	if err := cur.Execute(ctx, statement, parameters...); err != nil {
		return err
	}
	if drainResults {
		if _, err := cur.FetchAll(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dialect) runStatement(ctx context.Context, conn dialect.Conn, statement string) error {
	cur, err := conn.Cursor()
	if err != nil {
		return err
	}
	defer cur.Close()

	if err := cur.Execute(ctx, statement); err != nil {
		return err
	}
	_, err = cur.FetchAll()
	return err
}

func (d *Dialect) PoolClass() dialect.PoolClass {
	return dialect.PoolQueue
}

// ServerVersionInfo reports a fixed version; the server does not expose a
// queryable one through this interface.
func (d *Dialect) ServerVersionInfo(ctx context.Context, conn dialect.Conn) (dialect.ServerVersion, error) {
	return dialect.ServerVersion{Major: 8, Minor: 0}, nil
}

func (d *Dialect) DefaultIsolationLevel(ctx context.Context, conn dialect.Conn) (dialect.IsolationLevel, error) {
	return "", d.hlp.errorf(adbc.StatusNotImplemented, "default isolation level is not implemented")
}
