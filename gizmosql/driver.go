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
	"database/sql"
	"net/url"
	"sort"
	"strings"

	"github.com/apache/arrow-adbc/go/adbc/driver/flightsql"
	"github.com/apache/arrow-adbc/go/adbc/sqldriver"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

func init() {
	sql.Register(DriverName, sqldriver.Driver{Driver: flightsql.NewDriver(memory.DefaultAllocator)})
}

// OpenDB opens a database/sql pool for a gizmosql:// connection URL. Pooling
// is delegated to database/sql's own bounded queue; the dialect adds no pool
// of its own.
func OpenDB(u *url.URL) (*sql.DB, error) {
	d := NewDialect(nil)
	opts, err := d.ConnectArgs(u)
	if err != nil {
		return nil, err
	}
	dbOpts, err := d.driverOptions(opts)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(dbOpts))
	for k := range dbOpts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+dbOpts[k])
	}
	return sql.Open(DriverName, strings.Join(pairs, ";"))
}
