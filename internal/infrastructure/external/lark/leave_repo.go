package lark

import (
	"context"
	"fmt"

	larkbitable "github.com/larksuite/oapi-sdk-go/v3/service/bitable/v1"
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

// LeaveRepository implements port.LeaveRepository on a Bitable table.
// Identifiers come from the table's auto-number field.
type LeaveRepository struct {
	api     tableAPI
	tableID string
	logger  *zap.Logger
}

// NewLeaveRepository creates a leave repository for one Bitable table
func NewLeaveRepository(api *BitableAPI, tableID string, logger *zap.Logger) *LeaveRepository {
	return newLeaveRepository(api, tableID, logger)
}

func newLeaveRepository(api tableAPI, tableID string, logger *zap.Logger) *LeaveRepository {
	return &LeaveRepository{api: api, tableID: tableID, logger: logger}
}

// List returns all records matching filter
func (r *LeaveRepository) List(ctx context.Context, filter entity.LeaveFilter) ([]entity.LeaveRecord, error) {
	items, err := r.api.ListRecords(ctx, r.tableID, entity.ListFields, leaveFilterFormula(filter))
	if err != nil {
		return nil, err
	}

	records := make([]entity.LeaveRecord, 0, len(items))
	for _, item := range items {
		rec, err := toLeaveRecord(item)
		if err != nil {
			r.logger.Warn("Skipping record without identifier",
				zap.String("record_id", derefString(item.RecordId)),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get returns the record with the given identifier
func (r *LeaveRepository) Get(ctx context.Context, id int64) (*entity.LeaveRecord, error) {
	item, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	rec, err := toLeaveRecord(item)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create inserts the record. The stored record is read back to learn the
// auto-number the table assigned.
func (r *LeaveRepository) Create(ctx context.Context, record *entity.LeaveRecord) (int64, error) {
	created, err := r.api.CreateRecord(ctx, r.tableID, cellFields(record.Fields()))
	if err != nil {
		return 0, err
	}

	if v, ok := created.Fields[entity.FieldID]; ok {
		if id, err := idValue(v); err == nil {
			return id, nil
		}
	}

	stored, err := r.api.GetRecord(ctx, r.tableID, derefString(created.RecordId))
	if err != nil {
		return 0, fmt.Errorf("failed to read back created record: %w", err)
	}
	return idValue(stored.Fields[entity.FieldID])
}

// Update overwrites the patched fields of the record with the given identifier
func (r *LeaveRepository) Update(ctx context.Context, id int64, patch entity.LeavePatch) error {
	item, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	return r.api.UpdateRecord(ctx, r.tableID, derefString(item.RecordId), cellFields(patch.Fields()))
}

// find resolves an identifier to the Bitable record
func (r *LeaveRepository) find(ctx context.Context, id int64) (*larkbitable.AppTableRecord, error) {
	items, err := r.api.ListRecords(ctx, r.tableID, nil, idFormula(id))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if got, err := idValue(item.Fields[entity.FieldID]); err == nil && got == id {
			return item, nil
		}
	}
	return nil, port.ErrNotFound
}

func toLeaveRecord(item *larkbitable.AppTableRecord) (entity.LeaveRecord, error) {
	id, err := idValue(item.Fields[entity.FieldID])
	if err != nil {
		return entity.LeaveRecord{}, err
	}
	return entity.LeaveRecord{
		ID:             id,
		Title:          textValue(item.Fields[entity.FieldTitle]),
		LeaveType:      textValue(item.Fields[entity.FieldLeaveType]),
		LeaveDate:      dateValue(item.Fields[entity.FieldLeaveDate]),
		ApprovalStatus: textValue(item.Fields[entity.FieldApprovalStatus]),
		Holiday:        textValue(item.Fields[entity.FieldHoliday]),
	}, nil
}

var _ port.LeaveRepository = (*LeaveRepository)(nil)
