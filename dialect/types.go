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

package dialect

import "strings"

// TypeKind is the closed set of semantic column types the mapping layer
// understands. Dialects translate vendor type names into these kinds; there
// is no dynamic extension point, unknown vendor types must error.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeString
	TypeText
	TypeChar
	TypeUnicode
	TypeInteger
	TypeSmallInteger
	TypeBigInteger
	TypeNumeric
	TypeFloat
	TypeDouble
	TypeBoolean
	TypeDate
	TypeDateTime
	TypeTime
	TypeTimestamp
	TypeInterval
	TypeBinary
	TypeJSON
	TypeUUID
)

var typeKindNames = map[TypeKind]string{
	TypeUnknown:      "UNKNOWN",
	TypeString:       "VARCHAR",
	TypeText:         "TEXT",
	TypeChar:         "CHAR",
	TypeUnicode:      "NVARCHAR",
	TypeInteger:      "INTEGER",
	TypeSmallInteger: "SMALLINT",
	TypeBigInteger:   "BIGINT",
	TypeNumeric:      "NUMERIC",
	TypeFloat:        "FLOAT",
	TypeDouble:       "DOUBLE",
	TypeBoolean:      "BOOLEAN",
	TypeDate:         "DATE",
	TypeDateTime:     "DATETIME",
	TypeTime:         "TIME",
	TypeTimestamp:    "TIMESTAMP",
	TypeInterval:     "INTERVAL",
	TypeBinary:       "BLOB",
	TypeJSON:         "JSON",
	TypeUUID:         "UUID",
}

func (t TypeKind) String() string {
	if s, ok := typeKindNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// typeRegistry is the static name registry backing Lookup. Keys are the
// upper-case type names the mapping layer exports.
var typeRegistry = map[string]TypeKind{
	"VARCHAR":          TypeString,
	"STRING":           TypeString,
	"TEXT":             TypeText,
	"CLOB":             TypeText,
	"CHAR":             TypeChar,
	"NCHAR":            TypeUnicode,
	"NVARCHAR":         TypeUnicode,
	"INT":              TypeInteger,
	"INTEGER":          TypeInteger,
	"SMALLINT":         TypeSmallInteger,
	"TINYINT":          TypeSmallInteger,
	"BIGINT":           TypeBigInteger,
	"HUGEINT":          TypeBigInteger,
	"NUMERIC":          TypeNumeric,
	"DECIMAL":          TypeNumeric,
	"FLOAT":            TypeFloat,
	"REAL":             TypeFloat,
	"DOUBLE":           TypeDouble,
	"DOUBLE PRECISION": TypeDouble,
	"BOOLEAN":          TypeBoolean,
	"BOOL":             TypeBoolean,
	"DATE":             TypeDate,
	"DATETIME":         TypeDateTime,
	"TIME":             TypeTime,
	"TIMESTAMP":        TypeTimestamp,
	"INTERVAL":         TypeInterval,
	"BLOB":             TypeBinary,
	"BINARY":           TypeBinary,
	"VARBINARY":        TypeBinary,
	"BYTEA":            TypeBinary,
	"JSON":             TypeJSON,
	"UUID":             TypeUUID,
}

// Lookup resolves an upper-cased vendor type name against the static
// registry. It is the fallback stage of a dialect's type mapping; a miss
// means the type is unsupported.
func Lookup(name string) (TypeKind, bool) {
	kind, ok := typeRegistry[strings.ToUpper(strings.TrimSpace(name))]
	return kind, ok
}
