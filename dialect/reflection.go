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

// ReflectedColumn describes one column of a reflected table or view.
type ReflectedColumn struct {
	Name     string
	Type     TypeKind
	Nullable bool
	// Default is the column default expression, nil when none is declared.
	Default *string
}

// ReflectedPrimaryKey describes a table's primary key constraint. A table
// without one reflects as the zero value.
type ReflectedPrimaryKey struct {
	Name               string
	ConstrainedColumns []string
}

// ReflectedForeignKey describes one foreign key constraint.
type ReflectedForeignKey struct {
	Name               string
	ConstrainedColumns []string
	ReferredSchema     string
	ReferredTable      string
	ReferredColumns    []string
}

// ReflectedCheck describes one check constraint.
type ReflectedCheck struct {
	Name    string
	SQLText string
}

// ReflectedIndex describes one secondary index.
type ReflectedIndex struct {
	Name    string
	Columns []string
	Unique  bool
}
