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
	"strings"

	"github.com/apache/arrow-adbc/go/adbc"

	"github.com/gizmodata/gizmosql-go/dialect"
)

// mapColumnType translates a raw backend type name into a semantic type
// kind. Parameterized decimals (DECIMAL(10,2)) and structs map by prefix;
// anything the fixed table misses falls back to the static registry. An
// unknown type is a hard error naming the raw type, never a silent default.
func (d *Dialect) mapColumnType(dataType string) (dialect.TypeKind, error) {
	switch dataType {
	case "VARCHAR":
		return dialect.TypeString, nil
	case "INTEGER":
		return dialect.TypeInteger, nil
	case "DATE":
		return dialect.TypeDate, nil
	case "DATETIME":
		return dialect.TypeDateTime, nil
	case "TIMESTAMP":
		return dialect.TypeTimestamp, nil
	case "TIME":
		return dialect.TypeTime, nil
	case "BIGINT":
		return dialect.TypeBigInteger, nil
	case "TINYINT":
		return dialect.TypeSmallInteger, nil
	case "DOUBLE":
		return dialect.TypeFloat, nil
	case "BOOLEAN":
		return dialect.TypeBoolean, nil
	}

	switch {
	case strings.HasPrefix(dataType, "DECIMAL"):
		return dialect.TypeNumeric, nil
	case strings.HasPrefix(dataType, "STRUCT"):
		return dialect.TypeJSON, nil
	}

	if kind, ok := dialect.Lookup(dataType); ok {
		return kind, nil
	}
	return dialect.TypeUnknown, d.hlp.errorf(adbc.StatusInvalidArgument, "unsupported column type: %s", dataType)
}
