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
	"time"

	"github.com/apache/arrow-adbc/go/adbc"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/gizmodata/gizmosql-go/dialect"
)

// Cursor executes statements on one ADBC statement handle and exposes the
// resulting record stream row by row. A cursor holds at most one open
// stream; executing again releases the previous one. Cursors are not safe
// for concurrent use.
type Cursor struct {
	stmt  adbc.Statement
	alloc memory.Allocator
	hlp   errorHelper

	reader array.RecordReader
	rec    arrow.RecordBatch
	rowIdx int
	closed bool
}

var _ dialect.Cursor = (*Cursor)(nil)

// Execute runs a statement, replacing any prior result stream. Positional
// parameters bind in order as a single-row record; parameterized statements
// are prepared first because the wire protocol only carries bound data on
// prepared statements.
func (c *Cursor) Execute(ctx context.Context, statement string, parameters ...any) error {
	if c.closed {
		return c.hlp.errorf(adbc.StatusInvalidState, "cursor is closed")
	}
	c.discardResults()

	if err := c.stmt.SetSqlQuery(statement); err != nil {
		return err
	}

	if len(parameters) > 0 {
		if err := c.stmt.Prepare(ctx); err != nil {
			return err
		}
		rec, err := c.bindRecord(parameters)
		if err != nil {
			return err
		}
		defer rec.Release()
		if err := c.stmt.Bind(ctx, rec); err != nil {
			return err
		}
	}

	reader, _, err := c.stmt.ExecuteQuery(ctx)
	if err != nil {
		return err
	}
	c.reader = reader
	return nil
}

// FetchOne returns the next row, or (nil, nil) once the stream is exhausted.
func (c *Cursor) FetchOne() ([]any, error) {
	if c.reader == nil {
		return nil, c.hlp.errorf(adbc.StatusInvalidState, "no result set; execute a statement first")
	}

	for c.rec == nil || c.rowIdx >= int(c.rec.NumRows()) {
		if !c.reader.Next() {
			if err := c.reader.Err(); err != nil {
				return nil, err
			}
			return nil, nil
		}
		c.rec = c.reader.RecordBatch()
		c.rowIdx = 0
	}

	row := make([]any, c.rec.NumCols())
	for i, col := range c.rec.Columns() {
		v, err := c.columnValue(col, c.rowIdx)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	c.rowIdx++
	return row, nil
}

// FetchMany returns up to size rows. A short result signals exhaustion.
func (c *Cursor) FetchMany(size int) ([][]any, error) {
	rows := make([][]any, 0, size)
	for len(rows) < size {
		row, err := c.FetchOne()
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchAll drains the remaining rows of the stream.
func (c *Cursor) FetchAll() ([][]any, error) {
	var rows [][]any
	for {
		row, err := c.FetchOne()
		if err != nil {
			return nil, err
		}
		if row == nil {
			return rows, nil
		}
		rows = append(rows, row)
	}
}

// Close releases the result stream and the statement handle. Close is
// idempotent.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.discardResults()
	return c.stmt.Close()
}

func (c *Cursor) discardResults() {
	if c.reader != nil {
		c.reader.Release()
		c.reader = nil
	}
	c.rec = nil
	c.rowIdx = 0
}

// bindRecord packs positional parameters into a single-row record.
func (c *Cursor) bindRecord(parameters []any) (arrow.RecordBatch, error) {
	fields := make([]arrow.Field, len(parameters))
	for i, p := range parameters {
		dt, err := paramType(p)
		if err != nil {
			return nil, c.hlp.errorf(adbc.StatusInvalidArgument, "parameter %d: %s", i, err)
		}
		fields[i] = arrow.Field{Name: fmt.Sprintf("param_%d", i), Type: dt, Nullable: true}
	}

	bldr := array.NewRecordBuilder(c.alloc, arrow.NewSchema(fields, nil))
	defer bldr.Release()

	for i, p := range parameters {
		if err := appendParam(bldr.Field(i), p); err != nil {
			return nil, c.hlp.errorf(adbc.StatusInvalidArgument, "parameter %d: %s", i, err)
		}
	}
	return bldr.NewRecord(), nil
}

func paramType(p any) (arrow.DataType, error) {
	switch p.(type) {
	case nil:
		return arrow.Null, nil
	case bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case int, int64, int32, int16, int8:
		return arrow.PrimitiveTypes.Int64, nil
	case uint, uint64, uint32, uint16, uint8:
		return arrow.PrimitiveTypes.Uint64, nil
	case float32, float64:
		return arrow.PrimitiveTypes.Float64, nil
	case string:
		return arrow.BinaryTypes.String, nil
	case []byte:
		return arrow.BinaryTypes.Binary, nil
	case time.Time:
		return arrow.FixedWidthTypes.Timestamp_us, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type %T", p)
	}
}

func appendParam(fb array.Builder, p any) error {
	switch v := p.(type) {
	case nil:
		fb.AppendNull()
	case bool:
		fb.(*array.BooleanBuilder).Append(v)
	case int:
		fb.(*array.Int64Builder).Append(int64(v))
	case int64:
		fb.(*array.Int64Builder).Append(v)
	case int32:
		fb.(*array.Int64Builder).Append(int64(v))
	case int16:
		fb.(*array.Int64Builder).Append(int64(v))
	case int8:
		fb.(*array.Int64Builder).Append(int64(v))
	case uint:
		fb.(*array.Uint64Builder).Append(uint64(v))
	case uint64:
		fb.(*array.Uint64Builder).Append(v)
	case uint32:
		fb.(*array.Uint64Builder).Append(uint64(v))
	case uint16:
		fb.(*array.Uint64Builder).Append(uint64(v))
	case uint8:
		fb.(*array.Uint64Builder).Append(uint64(v))
	case float32:
		fb.(*array.Float64Builder).Append(float64(v))
	case float64:
		fb.(*array.Float64Builder).Append(v)
	case string:
		fb.(*array.StringBuilder).Append(v)
	case []byte:
		fb.(*array.BinaryBuilder).Append(v)
	case time.Time:
		fb.(*array.TimestampBuilder).Append(arrow.Timestamp(v.UnixMicro()))
	default:
		return fmt.Errorf("unsupported parameter type %T", p)
	}
	return nil
}

// columnValue converts one cell to a Go value. The scalar cases mirror what
// the backend's catalog and query results produce; list columns surface as
// []any so callers can recover e.g. constraint column-name lists.
func (c *Cursor) columnValue(col arrow.Array, row int) (any, error) {
	if col.IsNull(row) {
		return nil, nil
	}
	switch col := col.(type) {
	case *array.Boolean:
		return col.Value(row), nil
	case *array.Int8:
		return int64(col.Value(row)), nil
	case *array.Int16:
		return int64(col.Value(row)), nil
	case *array.Int32:
		return int64(col.Value(row)), nil
	case *array.Int64:
		return col.Value(row), nil
	case *array.Uint8:
		return uint64(col.Value(row)), nil
	case *array.Uint16:
		return uint64(col.Value(row)), nil
	case *array.Uint32:
		return uint64(col.Value(row)), nil
	case *array.Uint64:
		return col.Value(row), nil
	case *array.Float32:
		return float64(col.Value(row)), nil
	case *array.Float64:
		return col.Value(row), nil
	case *array.String:
		return col.Value(row), nil
	case *array.LargeString:
		return col.Value(row), nil
	case *array.Binary:
		return col.Value(row), nil
	case *array.LargeBinary:
		return col.Value(row), nil
	case *array.Date32:
		return col.Value(row).ToTime(), nil
	case *array.Date64:
		return col.Value(row).ToTime(), nil
	case *array.Time32:
		return col.Value(row).ToTime(col.DataType().(*arrow.Time32Type).Unit), nil
	case *array.Time64:
		return col.Value(row).ToTime(col.DataType().(*arrow.Time64Type).Unit), nil
	case *array.Timestamp:
		return col.Value(row).ToTime(col.DataType().(*arrow.TimestampType).Unit), nil
	case *array.Decimal128:
		return col.ValueStr(row), nil
	case *array.Decimal256:
		return col.ValueStr(row), nil
	case *array.List:
		start, end := col.ValueOffsets(row)
		return c.listValues(col.ListValues(), start, end)
	case *array.LargeList:
		start, end := col.ValueOffsets(row)
		return c.listValues(col.ListValues(), start, end)
	default:
		return nil, c.hlp.errorf(adbc.StatusNotImplemented,
			"fetching from columns of type %s is not supported", col.DataType())
	}
}

func (c *Cursor) listValues(values arrow.Array, start, end int64) ([]any, error) {
	out := make([]any, 0, end-start)
	for i := start; i < end; i++ {
		v, err := c.columnValue(values, int(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
