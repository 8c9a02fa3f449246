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

// Tests against an in-process Flight SQL server with a canned catalog.

package gizmosql_test

import (
	"context"
	"net"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/apache/arrow-adbc/go/adbc"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/flight/flightsql"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gizmodata/gizmosql-go/dialect"
	"github.com/gizmodata/gizmosql-go/gizmosql"
)

var (
	nameFieldSchema = func(name string) *arrow.Schema {
		return arrow.NewSchema([]arrow.Field{
			{Name: name, Type: arrow.BinaryTypes.String, Nullable: true},
		}, nil)
	}

	columnsSchema = arrow.NewSchema([]arrow.Field{
		{Name: "column_name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "data_type", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "is_nullable", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "column_default", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	hasTableSchema = arrow.NewSchema([]arrow.Field{
		{Name: "1", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)

	pkSchema = arrow.NewSchema([]arrow.Field{
		{Name: "constraint_name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "constraint_column_names", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: true},
	}, nil)

	fkSchema = arrow.NewSchema([]arrow.Field{
		{Name: "pk_table_name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "fk_table_name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "constraint_name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "constrained_columns", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: true},
		{Name: "referred_schema", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "referred_table", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "referred_columns", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: true},
	}, nil)

	checkSchema = arrow.NewSchema([]arrow.Field{
		{Name: "constraint_name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "sqltext", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	statementResultSchema = arrow.NewSchema([]arrow.Field{
		{Name: "Count", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)
)

// catalogServer serves a fixed catalog: schema "main" holding table
// "account" (with a composite primary key and a check constraint), table
// "orders" (with foreign keys to account and warehouse), and view
// "account_v".
type catalogServer struct {
	flightsql.BaseServer

	mu        sync.Mutex
	params    map[string][]string
	txnActive bool
	ingested  map[string]int64
}

func newCatalogServer() *catalogServer {
	srv := &catalogServer{
		params:   make(map[string][]string),
		ingested: make(map[string]int64),
	}
	srv.Alloc = memory.DefaultAllocator
	return srv
}

func (s *catalogServer) storedParams(handle string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params[handle]
}

// resultForQuery routes a catalog query to its canned result. Parameterized
// queries filter on the bound (schema, table) values.
func (s *catalogServer) resultForQuery(query string, params []string) (*arrow.Schema, string, error) {
	norm := strings.Join(strings.Fields(query), " ")
	param := func(i int) string {
		if i < len(params) {
			return params[i]
		}
		return ""
	}

	switch {
	case strings.Contains(norm, "DISTINCT table_schema"):
		return nameFieldSchema("schema_name"),
			`[{"schema_name": "analytics"}, {"schema_name": "information_schema"}, {"schema_name": "main"}]`, nil

	case strings.Contains(norm, "table_type = 'BASE TABLE'"):
		if param(0) != "main" {
			return nameFieldSchema("table_name"), `[]`, nil
		}
		return nameFieldSchema("table_name"),
			`[{"table_name": "account"}, {"table_name": "orders"}]`, nil

	case strings.Contains(norm, "table_type = 'VIEW'"):
		if param(0) != "main" {
			return nameFieldSchema("table_name"), `[]`, nil
		}
		return nameFieldSchema("table_name"), `[{"table_name": "account_v"}]`, nil

	case strings.Contains(norm, "information_schema.columns"):
		if param(0) != "main" || param(1) != "account" {
			return columnsSchema, `[]`, nil
		}
		return columnsSchema, `[
			{"column_name": "id", "data_type": "INTEGER", "is_nullable": "NO", "column_default": "nextval('account_id_seq')"},
			{"column_name": "tenant_id", "data_type": "BIGINT", "is_nullable": "NO", "column_default": null},
			{"column_name": "name", "data_type": "VARCHAR", "is_nullable": "YES", "column_default": null},
			{"column_name": "balance", "data_type": "DECIMAL(18,3)", "is_nullable": "YES", "column_default": null},
			{"column_name": "created_at", "data_type": "TIMESTAMP", "is_nullable": "YES", "column_default": null},
			{"column_name": "profile", "data_type": "STRUCT(a VARCHAR)", "is_nullable": "YES", "column_default": null},
			{"column_name": "active", "data_type": "BOOLEAN", "is_nullable": "YES", "column_default": null}
		]`, nil

	case strings.Contains(norm, "SELECT 1 FROM information_schema.tables"):
		if param(0) == "main" && param(1) == "account" {
			return hasTableSchema, `[{"1": 1}]`, nil
		}
		return hasTableSchema, `[]`, nil

	case strings.Contains(norm, "constraint_type = 'PRIMARY KEY'"):
		if param(1) != "account" {
			return pkSchema, `[]`, nil
		}
		return pkSchema,
			`[{"constraint_name": "account_pkey", "constraint_column_names": ["tenant_id", "id"]}]`, nil

	case strings.Contains(norm, "constraint_type = 'FOREIGN KEY'"):
		if param(1) != "orders" {
			return fkSchema, `[]`, nil
		}
		return fkSchema, `[{
			"pk_table_name": "account",
			"fk_table_name": "orders",
			"constraint_name": "orders_account_fkey",
			"constrained_columns": ["account_tenant_id", "account_id"],
			"referred_schema": "main",
			"referred_table": "account",
			"referred_columns": ["tenant_id", "id"]
		}, {
			"pk_table_name": "warehouse",
			"fk_table_name": "orders",
			"constraint_name": "orders_warehouse_fkey",
			"constrained_columns": ["warehouse_id"],
			"referred_schema": "main",
			"referred_table": "warehouse",
			"referred_columns": ["id"]
		}]`, nil

	case strings.Contains(norm, "constraint_type = 'CHECK'"):
		if param(1) != "account" {
			return checkSchema, `[]`, nil
		}
		return checkSchema,
			`[{"constraint_name": "account_balance_check", "sqltext": "(balance >= 0)"}]`, nil

	case norm == "begin" || norm == "commit" || norm == "rollback":
		return statementResultSchema, `[]`, nil

	case strings.Contains(norm, "not_implemented"):
		return nil, "", status.Error(codes.Unknown,
			"Not implemented Error: this server feature is not available")
	}
	return nil, "", status.Errorf(codes.InvalidArgument, "unexpected query: %s", norm)
}

func (s *catalogServer) emit(schema *arrow.Schema, rowsJSON string) (*arrow.Schema, <-chan flight.StreamChunk, error) {
	rec, _, err := array.RecordFromJSON(s.Alloc, schema, strings.NewReader(rowsJSON))
	if err != nil {
		return nil, nil, status.Errorf(codes.Internal, "bad fixture: %s", err)
	}
	ch := make(chan flight.StreamChunk, 1)
	ch <- flight.StreamChunk{Data: rec}
	close(ch)
	return schema, ch, nil
}

// applyTxnVerb tracks transaction state. Ending a transaction that was
// never begun reproduces the backend's complaint verbatim.
func (s *catalogServer) applyTxnVerb(verb string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch verb {
	case "begin":
		s.txnActive = true
	case "commit", "rollback":
		if !s.txnActive {
			return status.Errorf(codes.Internal,
				"TransactionContext Error: cannot %s - no transaction is active", verb)
		}
		s.txnActive = false
	}
	return nil
}

func (s *catalogServer) GetFlightInfoStatement(ctx context.Context, cmd flightsql.StatementQuery, desc *flight.FlightDescriptor) (*flight.FlightInfo, error) {
	norm := strings.Join(strings.Fields(cmd.GetQuery()), " ")
	if norm == "begin" || norm == "commit" || norm == "rollback" {
		if err := s.applyTxnVerb(norm); err != nil {
			return nil, err
		}
	}
	schema, _, err := s.resultForQuery(cmd.GetQuery(), nil)
	if err != nil {
		return nil, err
	}
	ticket, err := flightsql.CreateStatementQueryTicket([]byte(cmd.GetQuery()))
	if err != nil {
		return nil, err
	}
	return &flight.FlightInfo{
		Schema:           flight.SerializeSchema(schema, s.Alloc),
		FlightDescriptor: desc,
		Endpoint: []*flight.FlightEndpoint{{
			Ticket: &flight.Ticket{Ticket: ticket},
		}},
		TotalRecords: -1,
		TotalBytes:   -1,
	}, nil
}

func (s *catalogServer) DoGetStatement(ctx context.Context, tkt flightsql.StatementQueryTicket) (*arrow.Schema, <-chan flight.StreamChunk, error) {
	query := string(tkt.GetStatementHandle())
	schema, rowsJSON, err := s.resultForQuery(query, nil)
	if err != nil {
		return nil, nil, err
	}
	return s.emit(schema, rowsJSON)
}

func (s *catalogServer) CreatePreparedStatement(ctx context.Context, req flightsql.ActionCreatePreparedStatementRequest) (flightsql.ActionCreatePreparedStatementResult, error) {
	// The query text itself is the handle; the server is stateless apart
	// from the bound parameters captured at DoPut time.
	return flightsql.ActionCreatePreparedStatementResult{
		Handle: []byte(req.GetQuery()),
	}, nil
}

func (s *catalogServer) ClosePreparedStatement(ctx context.Context, req flightsql.ActionClosePreparedStatementRequest) error {
	s.mu.Lock()
	delete(s.params, string(req.GetPreparedStatementHandle()))
	s.mu.Unlock()
	return nil
}

func (s *catalogServer) DoPutPreparedStatementQuery(ctx context.Context, cmd flightsql.PreparedStatementQuery, rdr flight.MessageReader, _ flight.MetadataWriter) ([]byte, error) {
	var params []string
	for rdr.Next() {
		rec := rdr.RecordBatch()
		for i := 0; i < int(rec.NumCols()); i++ {
			col, ok := rec.Column(i).(*array.String)
			if !ok {
				return nil, status.Errorf(codes.InvalidArgument,
					"expected string parameters, got %s", rec.Column(i).DataType())
			}
			for row := 0; row < col.Len(); row++ {
				params = append(params, col.Value(row))
			}
		}
	}
	handle := string(cmd.GetPreparedStatementHandle())
	s.mu.Lock()
	s.params[handle] = params
	s.mu.Unlock()
	return cmd.GetPreparedStatementHandle(), nil
}

func (s *catalogServer) GetFlightInfoPreparedStatement(ctx context.Context, cmd flightsql.PreparedStatementQuery, desc *flight.FlightDescriptor) (*flight.FlightInfo, error) {
	handle := string(cmd.GetPreparedStatementHandle())
	schema, _, err := s.resultForQuery(handle, s.storedParams(handle))
	if err != nil {
		return nil, err
	}
	return &flight.FlightInfo{
		Schema:           flight.SerializeSchema(schema, s.Alloc),
		FlightDescriptor: desc,
		Endpoint: []*flight.FlightEndpoint{{
			Ticket: &flight.Ticket{Ticket: desc.Cmd},
		}},
		TotalRecords: -1,
		TotalBytes:   -1,
	}, nil
}

func (s *catalogServer) DoGetPreparedStatement(ctx context.Context, cmd flightsql.PreparedStatementQuery) (*arrow.Schema, <-chan flight.StreamChunk, error) {
	handle := string(cmd.GetPreparedStatementHandle())
	schema, rowsJSON, err := s.resultForQuery(handle, s.storedParams(handle))
	if err != nil {
		return nil, nil, err
	}
	return s.emit(schema, rowsJSON)
}

func (s *catalogServer) DoPutCommandStatementIngest(ctx context.Context, cmd flightsql.StatementIngest, rdr flight.MessageReader) (int64, error) {
	var rows int64
	for rdr.Next() {
		rows += rdr.RecordBatch().NumRows()
	}
	s.mu.Lock()
	s.ingested[cmd.GetTable()] = rows
	s.mu.Unlock()
	return rows, nil
}

// ---- Suite --------------------

type DialectServerTests struct {
	suite.Suite

	srv *catalogServer
	s   flight.Server
	d   *gizmosql.Dialect

	connOpts map[string]string
	conn     dialect.Conn
}

func TestDialectServer(t *testing.T) {
	suite.Run(t, &DialectServerTests{})
}

func (suite *DialectServerTests) SetupSuite() {
	suite.srv = newCatalogServer()
	suite.s = flight.NewServerWithMiddleware(nil)
	suite.s.RegisterFlightService(flightsql.NewFlightServer(suite.srv))
	suite.Require().NoError(suite.s.Init("localhost:0"))
	go func() {
		_ = suite.s.Serve()
	}()

	host, port, err := net.SplitHostPort(suite.s.Addr().String())
	suite.Require().NoError(err)
	suite.connOpts = map[string]string{"host": host, "port": port}
	suite.d = gizmosql.NewDialect(memory.DefaultAllocator)
}

func (suite *DialectServerTests) SetupTest() {
	var err error
	suite.conn, err = suite.d.Connect(context.Background(), suite.connOpts)
	suite.Require().NoError(err)

	suite.srv.mu.Lock()
	suite.srv.txnActive = false
	suite.srv.mu.Unlock()
}

func (suite *DialectServerTests) TearDownTest() {
	suite.Require().NoError(suite.conn.Close())
}

func (suite *DialectServerTests) TearDownSuite() {
	suite.s.Shutdown()
}

func (suite *DialectServerTests) TestSchemaNames() {
	names, err := suite.d.SchemaNames(context.Background(), suite.conn)
	suite.Require().NoError(err)
	suite.Equal([]string{"analytics", "information_schema", "main"}, names)
}

func (suite *DialectServerTests) TestTableNames() {
	names, err := suite.d.TableNames(context.Background(), suite.conn, "")
	suite.Require().NoError(err)
	suite.Equal([]string{"account", "orders"}, names)

	names, err = suite.d.TableNames(context.Background(), suite.conn, "nosuch")
	suite.Require().NoError(err)
	suite.Empty(names)
}

func (suite *DialectServerTests) TestViewNames() {
	names, err := suite.d.ViewNames(context.Background(), suite.conn, "main")
	suite.Require().NoError(err)
	suite.Equal([]string{"account_v"}, names)
}

func (suite *DialectServerTests) TestColumns() {
	cols, err := suite.d.Columns(context.Background(), suite.conn, "account", "")
	suite.Require().NoError(err)
	suite.Require().Len(cols, 7)

	suite.Equal("id", cols[0].Name)
	suite.Equal(dialect.TypeInteger, cols[0].Type)
	suite.False(cols[0].Nullable)
	suite.Require().NotNil(cols[0].Default)
	suite.Equal("nextval('account_id_seq')", *cols[0].Default)

	suite.Equal(dialect.TypeBigInteger, cols[1].Type)
	suite.Equal(dialect.TypeString, cols[2].Type)
	suite.True(cols[2].Nullable)
	suite.Nil(cols[2].Default)
	suite.Equal(dialect.TypeNumeric, cols[3].Type)
	suite.Equal(dialect.TypeTimestamp, cols[4].Type)
	suite.Equal(dialect.TypeJSON, cols[5].Type)
	suite.Equal(dialect.TypeBoolean, cols[6].Type)
}

func (suite *DialectServerTests) TestPrimaryKey() {
	pk, err := suite.d.PrimaryKey(context.Background(), suite.conn, "account", "main")
	suite.Require().NoError(err)
	suite.Equal("account_pkey", pk.Name)
	suite.Equal([]string{"tenant_id", "id"}, pk.ConstrainedColumns)

	pk, err = suite.d.PrimaryKey(context.Background(), suite.conn, "orders", "main")
	suite.Require().NoError(err)
	suite.Zero(pk)
}

func (suite *DialectServerTests) TestForeignKeys() {
	fks, err := suite.d.ForeignKeys(context.Background(), suite.conn, "orders", "main")
	suite.Require().NoError(err)
	suite.Require().Len(fks, 2)

	// Ordered by constraint name ascending.
	suite.Equal("orders_account_fkey", fks[0].Name)
	suite.Equal([]string{"account_tenant_id", "account_id"}, fks[0].ConstrainedColumns)
	suite.Equal("main", fks[0].ReferredSchema)
	suite.Equal("account", fks[0].ReferredTable)
	suite.Equal([]string{"tenant_id", "id"}, fks[0].ReferredColumns)

	suite.Equal("orders_warehouse_fkey", fks[1].Name)
	suite.Equal([]string{"warehouse_id"}, fks[1].ConstrainedColumns)
	suite.Equal("warehouse", fks[1].ReferredTable)
	suite.Equal([]string{"id"}, fks[1].ReferredColumns)

	fks, err = suite.d.ForeignKeys(context.Background(), suite.conn, "account", "main")
	suite.Require().NoError(err)
	suite.Empty(fks)
}

func (suite *DialectServerTests) TestCheckConstraints() {
	checks, err := suite.d.CheckConstraints(context.Background(), suite.conn, "account", "main")
	suite.Require().NoError(err)
	suite.Require().Len(checks, 1)
	suite.Equal("account_balance_check", checks[0].Name)
	suite.Equal("(balance >= 0)", checks[0].SQLText)
}

func (suite *DialectServerTests) TestIndexes() {
	indexes, err := suite.d.Indexes(context.Background(), suite.conn, "account", "main")
	suite.Require().NoError(err)
	suite.Empty(indexes)
}

func (suite *DialectServerTests) TestHasTable() {
	ok, err := suite.d.HasTable(context.Background(), suite.conn, "account", "")
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.d.HasTable(context.Background(), suite.conn, "nosuch", "")
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *DialectServerTests) TestRollbackWithoutTransaction() {
	suite.Require().NoError(suite.d.DoRollback(context.Background(), suite.conn))
}

func (suite *DialectServerTests) TestBeginCommitRollback() {
	suite.Require().NoError(suite.d.DoBegin(context.Background(), suite.conn))
	suite.Require().NoError(suite.d.DoCommit(context.Background(), suite.conn))

	suite.Require().NoError(suite.d.DoBegin(context.Background(), suite.conn))
	suite.Require().NoError(suite.d.DoRollback(context.Background(), suite.conn))
}

func (suite *DialectServerTests) TestExecutePseudoCommit() {
	// Committing a fresh autocommit connection is a no-op, not an error.
	suite.Require().NoError(suite.conn.Execute(context.Background(), "commit"))
	suite.Require().NoError(suite.conn.Execute(context.Background(), "COMMIT"))
}

func (suite *DialectServerTests) TestExecuteCommitNoTransactionSwallowed() {
	// The server's benign no-transaction complaint is swallowed on the
	// generic execute path too.
	// Trailing whitespace defeats the pseudo-statement match, so this goes
	// to the server, which rejects it; the rejection is swallowed.
	suite.Require().NoError(suite.conn.Execute(context.Background(), "commit "))
}

func (suite *DialectServerTests) TestNotImplemented() {
	err := suite.conn.Execute(context.Background(), "select not_implemented")
	suite.Require().Error(err)
	suite.True(gizmosql.IsNotImplemented(err))

	var adbcErr adbc.Error
	suite.Require().ErrorAs(err, &adbcErr)
	suite.Equal(adbc.StatusNotImplemented, adbcErr.Code)
}

func (suite *DialectServerTests) TestRegister() {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "ints", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)
	rec, _, err := array.RecordFromJSON(memory.DefaultAllocator, schema,
		strings.NewReader(`[{"ints": 1}, {"ints": 2}, {"ints": 3}]`))
	suite.Require().NoError(err)
	defer rec.Release()

	rdr, err := array.NewRecordReader(schema, []arrow.RecordBatch{rec})
	suite.Require().NoError(err)
	defer rdr.Release()

	name := "view_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	suite.Require().NoError(suite.conn.Execute(context.Background(), "register", name, rdr))

	suite.srv.mu.Lock()
	defer suite.srv.mu.Unlock()
	suite.Equal(int64(3), suite.srv.ingested[name])
}

func (suite *DialectServerTests) TestRegisterBadArguments() {
	requireInvalidArgument := func(err error) {
		suite.Require().Error(err)
		var adbcErr adbc.Error
		suite.Require().ErrorAs(err, &adbcErr)
		suite.Equal(adbc.StatusInvalidArgument, adbcErr.Code)
	}

	// Anything but exactly (name, reader) is rejected.
	requireInvalidArgument(suite.conn.Execute(context.Background(), "register"))
	requireInvalidArgument(suite.conn.Execute(context.Background(), "register", "only_name"))
	requireInvalidArgument(suite.conn.Execute(context.Background(), "register", "name", nil, "extra"))

	requireInvalidArgument(suite.conn.Execute(context.Background(), "register", 42, nil))
	requireInvalidArgument(suite.conn.Execute(context.Background(), "register", "name", "not a reader"))
}

func (suite *DialectServerTests) TestCursorFetch() {
	cur, err := suite.conn.Cursor()
	suite.Require().NoError(err)
	defer cur.Close()

	_, err = cur.FetchOne()
	suite.Require().Error(err)
	var adbcErr adbc.Error
	suite.Require().ErrorAs(err, &adbcErr)
	suite.Equal(adbc.StatusInvalidState, adbcErr.Code)

	suite.Require().NoError(cur.Execute(context.Background(),
		"SELECT DISTINCT table_schema AS schema_name FROM information_schema.tables"))

	row, err := cur.FetchOne()
	suite.Require().NoError(err)
	suite.Equal([]any{"analytics"}, row)

	rows, err := cur.FetchMany(5)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal([]any{"information_schema"}, rows[0])
	suite.Equal([]any{"main"}, rows[1])

	row, err = cur.FetchOne()
	suite.Require().NoError(err)
	suite.Nil(row)

	suite.Require().NoError(cur.Close())
	suite.Require().NoError(cur.Close())
}

func (suite *DialectServerTests) TestOpenDB() {
	u, err := url.Parse("gizmosql://" + suite.s.Addr().String())
	suite.Require().NoError(err)

	db, err := gizmosql.OpenDB(u)
	suite.Require().NoError(err)
	defer db.Close()

	rows, err := db.QueryContext(context.Background(),
		"SELECT DISTINCT table_schema AS schema_name FROM information_schema.tables")
	suite.Require().NoError(err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		suite.Require().NoError(rows.Scan(&name))
		names = append(names, name)
	}
	suite.Require().NoError(rows.Err())
	suite.Equal([]string{"analytics", "information_schema", "main"}, names)
}

func (suite *DialectServerTests) TestNotices() {
	conn := suite.conn.(*gizmosql.Connection)
	suite.Equal([]string{"n/a"}, conn.Notices)
	suite.NotNil(conn.Underlying())
}
