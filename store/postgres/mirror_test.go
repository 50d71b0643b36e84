// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package postgres

import "testing"

func TestSchemaDDLDeclaresExpectedTables(t *testing.T) {
	for _, table := range []string{"stations", "schedules", "lines", "departures"} {
		if !containsTable(schemaDDL, table) {
			t.Errorf("expected schemaDDL to declare table %q", table)
		}
	}
}

func containsTable(ddl, table string) bool {
	needle := "CREATE TABLE IF NOT EXISTS " + table
	for i := 0; i+len(needle) <= len(ddl); i++ {
		if ddl[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
