package lark

import (
	"context"

	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

// HolidayRepository reads the holiday table of the Bitable app
type HolidayRepository struct {
	api     tableAPI
	tableID string
	logger  *zap.Logger
}

// NewHolidayRepository creates a holiday repository for one Bitable table
func NewHolidayRepository(api *BitableAPI, tableID string, logger *zap.Logger) *HolidayRepository {
	return &HolidayRepository{api: api, tableID: tableID, logger: logger}
}

// List returns every holiday with an identifier
func (r *HolidayRepository) List(ctx context.Context) ([]entity.HolidayOption, error) {
	items, err := r.api.ListRecords(ctx, r.tableID, []string{entity.FieldID, entity.FieldTitle}, "")
	if err != nil {
		return nil, err
	}

	holidays := make([]entity.HolidayOption, 0, len(items))
	for _, item := range items {
		id, err := idValue(item.Fields[entity.FieldID])
		if err != nil {
			r.logger.Warn("Skipping holiday without identifier",
				zap.String("record_id", derefString(item.RecordId)))
			continue
		}
		holidays = append(holidays, entity.HolidayOption{
			ID:    id,
			Title: textValue(item.Fields[entity.FieldTitle]),
		})
	}
	return holidays, nil
}

var _ port.HolidayRepository = (*HolidayRepository)(nil)
