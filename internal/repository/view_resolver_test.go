package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bizops-api/internal/models"
)

func TestTableNameByFilter(t *testing.T) {
	cases := []struct {
		base   models.BaseTable
		filter models.FilterMode
		want   string
	}{
		{models.TableOrders, models.FilterActives, "v_active_orders"},
		{models.TableOrders, models.FilterArchived, "v_archived_orders"},
		{models.TableOrders, models.FilterAll, "orders"},
		{models.TableSubmissions, models.FilterActives, "v_active_submissions"},
		{models.TableSubmissions, models.FilterArchived, "v_archived_submissions"},
		{models.TableProofs, models.FilterAll, "proofs"},
		{models.TableProofs, models.FilterArchived, "v_archived_proofs"},
	}
	for _, tc := range cases {
		got, err := TableNameByFilter(tc.base, tc.filter)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestTableNameByFilterRejectsUnknownValues(t *testing.T) {
	_, err := TableNameByFilter(models.BaseTable("clients"), models.FilterAll)
	assert.ErrorIs(t, err, models.ErrUnknownBaseTable)

	_, err = TableNameByFilter(models.TableOrders, models.FilterMode("deleted"))
	assert.ErrorIs(t, err, models.ErrUnknownFilterMode)
}
