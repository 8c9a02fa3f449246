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
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/gizmodata/gizmosql-go/dialect"
)

// Catalog queries. The catalog is always scoped to the connection's current
// database; schemas default to "main" when the caller passes none.
const (
	querySchemaNames = `
            SELECT DISTINCT table_schema AS schema_name
              FROM information_schema.tables
             WHERE table_catalog = current_database()
             ORDER BY 1 ASC
            `

	queryTableNames = `
            SELECT table_name
              FROM information_schema.tables
             WHERE table_catalog = current_database()
               AND table_type = 'BASE TABLE'
               AND table_schema = ?
             ORDER BY 1 ASC
            `

	queryViewNames = `
            SELECT table_name
              FROM information_schema.tables
             WHERE table_catalog = current_database()
               AND table_type = 'VIEW'
               AND table_schema = ?
             ORDER BY 1
            `

	queryColumns = `
            SELECT column_name
                 , data_type
                 , is_nullable
                 , column_default
              FROM information_schema.columns
             WHERE table_catalog = current_database()
               AND table_schema = ?
               AND table_name = ?
             ORDER BY ordinal_position ASC
            `

	queryHasTable = `
            SELECT 1
              FROM information_schema.tables
             WHERE table_catalog = current_database()
               AND table_schema = ?
               AND table_name = ?
            `

	queryPrimaryKey = `
            SELECT constraint_name
                 , constraint_column_names
              FROM duckdb_constraints()
             WHERE constraint_type = 'PRIMARY KEY'
               AND database_name = current_database()
               AND schema_name = ?
               AND table_name = ?
            `

	queryForeignKeys = `
            SELECT referenced_table          AS pk_table_name
                 , table_name                AS fk_table_name
                 , constraint_name
                 , constraint_column_names   AS constrained_columns
                 , schema_name               AS referred_schema
                 , referenced_table          AS referred_table
                 , referenced_column_names   AS referred_columns
              FROM duckdb_constraints()
             WHERE constraint_type = 'FOREIGN KEY'
               AND database_name = current_database()
               AND schema_name = ?
               AND table_name = ?
             ORDER BY constraint_name ASC
            `

	queryCheckConstraints = `
            SELECT constraint_name
                 , expression AS sqltext
              FROM duckdb_constraints()
             WHERE constraint_type = 'CHECK'
               AND database_name = current_database()
               AND schema_name = ?
               AND table_name = ?
            `
)

func schemaOrDefault(schema string) string {
	if schema == "" {
		return defaultSchema
	}
	return schema
}

// SchemaNames lists the schemas of the current database.
func (d *Dialect) SchemaNames(ctx context.Context, conn dialect.Conn) ([]string, error) {
	ctx, span := d.startSpan(ctx, "SchemaNames")
	defer span.End()
	return d.queryNames(ctx, conn, querySchemaNames)
}

// TableNames lists the base tables of a schema.
func (d *Dialect) TableNames(ctx context.Context, conn dialect.Conn, schema string) ([]string, error) {
	ctx, span := d.startSpan(ctx, "TableNames")
	defer span.End()
	return d.queryNames(ctx, conn, queryTableNames, schemaOrDefault(schema))
}

// ViewNames lists the views of a schema.
func (d *Dialect) ViewNames(ctx context.Context, conn dialect.Conn, schema string) ([]string, error) {
	ctx, span := d.startSpan(ctx, "ViewNames")
	defer span.End()
	return d.queryNames(ctx, conn, queryViewNames, schemaOrDefault(schema))
}

// Columns reflects the columns of a table or view in ordinal order.
func (d *Dialect) Columns(ctx context.Context, conn dialect.Conn, table, schema string) ([]dialect.ReflectedColumn, error) {
	ctx, span := d.startSpan(ctx, "Columns")
	defer span.End()

	rows, err := d.queryAll(ctx, conn, queryColumns, schemaOrDefault(schema), table)
	if err != nil {
		return nil, err
	}

	columns := make([]dialect.ReflectedColumn, 0, len(rows))
	for _, row := range rows {
		kind, err := d.mapColumnType(asString(row[1]))
		if err != nil {
			return nil, err
		}
		columns = append(columns, dialect.ReflectedColumn{
			Name:     asString(row[0]),
			Type:     kind,
			Nullable: asString(row[2]) == "YES",
			Default:  optionalString(row[3]),
		})
	}
	return columns, nil
}

// PrimaryKey reflects a table's primary key constraint. A table without one
// returns the zero value. The backend reports one row per constraint with
// the full ordered column list; should it ever report several, the last row
// wins.
func (d *Dialect) PrimaryKey(ctx context.Context, conn dialect.Conn, table, schema string) (dialect.ReflectedPrimaryKey, error) {
	ctx, span := d.startSpan(ctx, "PrimaryKey")
	defer span.End()

	rows, err := d.queryAll(ctx, conn, queryPrimaryKey, schemaOrDefault(schema), table)
	if err != nil {
		return dialect.ReflectedPrimaryKey{}, err
	}

	var pk dialect.ReflectedPrimaryKey
	for _, row := range rows {
		pk = dialect.ReflectedPrimaryKey{
			Name:               asString(row[0]),
			ConstrainedColumns: asStringSlice(row[1]),
		}
	}
	return pk, nil
}

// ForeignKeys reflects a table's foreign key constraints, ordered by
// constraint name.
func (d *Dialect) ForeignKeys(ctx context.Context, conn dialect.Conn, table, schema string) ([]dialect.ReflectedForeignKey, error) {
	ctx, span := d.startSpan(ctx, "ForeignKeys")
	defer span.End()

	rows, err := d.queryAll(ctx, conn, queryForeignKeys, schemaOrDefault(schema), table)
	if err != nil {
		return nil, err
	}

	fks := make([]dialect.ReflectedForeignKey, 0, len(rows))
	for _, row := range rows {
		fks = append(fks, dialect.ReflectedForeignKey{
			Name:               asString(row[2]),
			ConstrainedColumns: asStringSlice(row[3]),
			ReferredSchema:     asString(row[4]),
			ReferredTable:      asString(row[5]),
			ReferredColumns:    asStringSlice(row[6]),
		})
	}
	return fks, nil
}

// CheckConstraints reflects a table's check constraints.
func (d *Dialect) CheckConstraints(ctx context.Context, conn dialect.Conn, table, schema string) ([]dialect.ReflectedCheck, error) {
	ctx, span := d.startSpan(ctx, "CheckConstraints")
	defer span.End()

	rows, err := d.queryAll(ctx, conn, queryCheckConstraints, schemaOrDefault(schema), table)
	if err != nil {
		return nil, err
	}

	checks := make([]dialect.ReflectedCheck, 0, len(rows))
	for _, row := range rows {
		checks = append(checks, dialect.ReflectedCheck{
			Name:    asString(row[0]),
			SQLText: asString(row[1]),
		})
	}
	return checks, nil
}

// Indexes is not supported by the backend; it warns and reports none rather
// than failing table reflection as a whole.
func (d *Dialect) Indexes(ctx context.Context, conn dialect.Conn, table, schema string) ([]dialect.ReflectedIndex, error) {
	d.logger.WarnContext(ctx, "index reflection is not supported", "table", table, "schema", schemaOrDefault(schema))
	return []dialect.ReflectedIndex{}, nil
}

// HasTable reports whether a table or view exists in the schema.
func (d *Dialect) HasTable(ctx context.Context, conn dialect.Conn, table, schema string) (bool, error) {
	ctx, span := d.startSpan(ctx, "HasTable")
	defer span.End()

	cur, err := conn.Cursor()
	if err != nil {
		return false, err
	}
	defer cur.Close()

	if err := cur.Execute(ctx, queryHasTable, schemaOrDefault(schema), table); err != nil {
		return false, err
	}
	row, err := cur.FetchOne()
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

func (d *Dialect) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, "gizmosql."+name)
}

func (d *Dialect) queryAll(ctx context.Context, conn dialect.Conn, statement string, parameters ...any) ([][]any, error) {
	cur, err := conn.Cursor()
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	if err := cur.Execute(ctx, statement, parameters...); err != nil {
		return nil, err
	}
	return cur.FetchAll()
}

func (d *Dialect) queryNames(ctx context.Context, conn dialect.Conn, statement string, parameters ...any) ([]string, error) {
	rows, err := d.queryAll(ctx, conn, statement, parameters...)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, asString(row[0]))
	}
	return names, nil
}

func asString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func asStringSlice(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, asString(e))
		}
		return out
	default:
		return []string{asString(v)}
	}
}

func optionalString(v any) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	return &s
}
