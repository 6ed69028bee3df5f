package repository

import (
	"fmt"

	"github.com/noah-isme/bizops-api/internal/models"
)

// TableNameByFilter resolves the relation a listing reads: the active or archived view
// of the table, or the table itself for the unfiltered listing.
func TableNameByFilter(base models.BaseTable, filter models.FilterMode) (string, error) {
	switch base {
	case models.TableSubmissions, models.TableOrders, models.TableProofs:
	default:
		return "", fmt.Errorf("%w: %q", models.ErrUnknownBaseTable, string(base))
	}
	switch filter {
	case models.FilterActives:
		return "v_active_" + string(base), nil
	case models.FilterArchived:
		return "v_archived_" + string(base), nil
	case models.FilterAll:
		return string(base), nil
	default:
		return "", fmt.Errorf("%w: %q", models.ErrUnknownFilterMode, string(filter))
	}
}
