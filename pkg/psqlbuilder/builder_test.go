package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("branches").
		Where(squirrel.Eq{"region_id": 7}).
		Where(squirrel.Eq{"name": "Tarlac"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM branches WHERE region_id = $1 AND name = $2", query)
	assert.Equal(t, []interface{}{7, "Tarlac"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("volume_capacity").
		Set("warehouse_capacity", 1000).
		Where(squirrel.Eq{"branch_id": 3}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE volume_capacity SET warehouse_capacity = $1 WHERE branch_id = $2", query)
	assert.Equal(t, []interface{}{1000, 3}, args)
}
