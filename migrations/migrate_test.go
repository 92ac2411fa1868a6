package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_SortedAndEmbedded(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.Equal(t, "0001_init.sql", names[0])
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestInitMigration_DeclaresConstraints(t *testing.T) {
	raw, err := migrationFiles.ReadFile("0001_init.sql")
	require.NoError(t, err)
	sql := string(raw)

	assert.Contains(t, sql, "appointments_reference_number_key UNIQUE (reference_number)")
	assert.Contains(t, sql, "CHECK (inventory <= warehouse_capacity)")
	assert.Contains(t, sql, "CHECK (volume > 0)")
	assert.Contains(t, sql, "WHERE date IS NULL")
}
