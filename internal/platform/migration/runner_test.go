// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/revenuegear/internal/platform/migration"
)

func TestPgxDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres://u:p@db:5432/rg", "pgx5://u:p@db:5432/rg"},
		{"postgresql://u:p@db/rg?sslmode=disable", "pgx5://u:p@db/rg?sslmode=disable"},
		{"pgx5://db/rg", "pgx5://db/rg"},
		{"host=db dbname=rg", "host=db dbname=rg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, migration.PgxDSN(tt.in))
	}
}
