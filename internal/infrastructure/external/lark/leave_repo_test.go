package lark

import (
	"context"
	"errors"
	"strings"
	"testing"

	larkbitable "github.com/larksuite/oapi-sdk-go/v3/service/bitable/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

type fakeTableAPI struct {
	records []*larkbitable.AppTableRecord
	fields  []*larkbitable.AppTableField

	lastFilter     string
	lastFieldNames []string
	created        map[string]interface{}
	updatedID      string
	updated        map[string]interface{}
	err            error
}

func (f *fakeTableAPI) ListRecords(ctx context.Context, tableID string, fieldNames []string, filter string) ([]*larkbitable.AppTableRecord, error) {
	f.lastFilter = filter
	f.lastFieldNames = fieldNames
	if f.err != nil {
		return nil, f.err
	}
	if !strings.HasPrefix(filter, "CurrentValue.[Id]=") {
		return f.records, nil
	}
	// Emulate the id formula for lookups
	var out []*larkbitable.AppTableRecord
	for _, rec := range f.records {
		if id, err := idValue(rec.Fields[entity.FieldID]); err == nil && idFormula(id) == filter {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeTableAPI) GetRecord(ctx context.Context, tableID, recordID string) (*larkbitable.AppTableRecord, error) {
	for _, rec := range f.records {
		if derefString(rec.RecordId) == recordID {
			return rec, nil
		}
	}
	return nil, errors.New("missing")
}

func (f *fakeTableAPI) CreateRecord(ctx context.Context, tableID string, fields map[string]interface{}) (*larkbitable.AppTableRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = fields
	stored := map[string]interface{}{entity.FieldID: "42"}
	for k, v := range fields {
		stored[k] = v
	}
	rec := record("recNew", stored)
	f.records = append(f.records, rec)
	// The create response omits the auto-number
	return record("recNew", fields), nil
}

func (f *fakeTableAPI) UpdateRecord(ctx context.Context, tableID, recordID string, fields map[string]interface{}) error {
	f.updatedID = recordID
	f.updated = fields
	return f.err
}

func (f *fakeTableAPI) ListFields(ctx context.Context, tableID string) ([]*larkbitable.AppTableField, error) {
	return f.fields, f.err
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func record(id string, fields map[string]interface{}) *larkbitable.AppTableRecord {
	return &larkbitable.AppTableRecord{RecordId: strPtr(id), Fields: fields}
}

func TestLeaveRepository_List(t *testing.T) {
	api := &fakeTableAPI{records: []*larkbitable.AppTableRecord{
		record("rec1", map[string]interface{}{
			entity.FieldID:             "7",
			entity.FieldTitle:          []interface{}{map[string]interface{}{"text": "B", "type": "text"}},
			entity.FieldLeaveType:      "Annual",
			entity.FieldLeaveDate:      float64(1706745600000), // 2024-02-01T00:00:00Z
			entity.FieldApprovalStatus: "Approved",
		}),
		record("rec2", map[string]interface{}{entity.FieldTitle: "no id"}),
	}}
	repo := newLeaveRepository(api, "tblLeave", zap.NewNop())

	records, err := repo.List(context.Background(), entity.LeaveFilter{})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.LeaveRecord{
		ID: 7, Title: "B", LeaveType: "Annual", LeaveDate: "2024-02-01", ApprovalStatus: "Approved",
	}, records[0])
	assert.Equal(t, entity.ListFields, api.lastFieldNames)
	assert.Empty(t, api.lastFilter)
}

func TestLeaveRepository_ListPassesFilter(t *testing.T) {
	api := &fakeTableAPI{}
	repo := newLeaveRepository(api, "tblLeave", zap.NewNop())

	_, err := repo.List(context.Background(), entity.LeaveFilter{LeaveType: "Sick", ApprovalStatus: "Pending"})

	require.NoError(t, err)
	assert.Equal(t, `AND(CurrentValue.[leave_type]="Sick",CurrentValue.[aproval]="Pending")`, api.lastFilter)
}

func TestLeaveRepository_GetAndNotFound(t *testing.T) {
	api := &fakeTableAPI{records: []*larkbitable.AppTableRecord{
		record("rec1", map[string]interface{}{
			entity.FieldID:             "3",
			entity.FieldTitle:          "C",
			entity.FieldLeaveDate:      "2024-03-01",
			entity.FieldApprovalStatus: "Pending",
			entity.FieldHoliday:        "2",
		}),
	}}
	repo := newLeaveRepository(api, "tblLeave", zap.NewNop())

	got, err := repo.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "C", got.Title)
	assert.Equal(t, "2024-03-01", got.LeaveDate)
	assert.Equal(t, "2", got.Holiday)

	_, err = repo.Get(context.Background(), 99)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestLeaveRepository_CreateReadsBackAutoNumber(t *testing.T) {
	api := &fakeTableAPI{}
	repo := newLeaveRepository(api, "tblLeave", zap.NewNop())

	id, err := repo.Create(context.Background(), &entity.LeaveRecord{
		Title: "A", LeaveType: "Sick", LeaveDate: "2024-01-10", ApprovalStatus: "Pending",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "A", api.created[entity.FieldTitle])
	assert.Contains(t, api.created, entity.FieldHoliday)
	assert.Equal(t, int64(1704844800000), api.created[entity.FieldLeaveDate])

	stored, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", stored.LeaveDate)
}

func TestLeaveRepository_UpdateWritesDateAsMillis(t *testing.T) {
	api := &fakeTableAPI{records: []*larkbitable.AppTableRecord{
		record("recSeven", map[string]interface{}{entity.FieldID: "7"}),
	}}
	repo := newLeaveRepository(api, "tblLeave", zap.NewNop())
	rec := entity.LeaveRecord{ID: 7, Title: "A", LeaveType: "Sick", LeaveDate: "2024-02-01", ApprovalStatus: "Approved"}

	require.NoError(t, repo.Update(context.Background(), 7, entity.FullPatch(rec)))
	assert.Equal(t, int64(1706745600000), api.updated[entity.FieldLeaveDate])
	assert.Equal(t, "Sick", api.updated[entity.FieldLeaveType])
}

func TestLeaveRepository_UpdateResolvesRecordID(t *testing.T) {
	api := &fakeTableAPI{records: []*larkbitable.AppTableRecord{
		record("recSeven", map[string]interface{}{entity.FieldID: "7"}),
	}}
	repo := newLeaveRepository(api, "tblLeave", zap.NewNop())
	status := "Approved"

	require.NoError(t, repo.Update(context.Background(), 7, entity.LeavePatch{ApprovalStatus: &status}))
	assert.Equal(t, "recSeven", api.updatedID)
	assert.Equal(t, map[string]interface{}{entity.FieldApprovalStatus: "Approved"}, api.updated)

	err := repo.Update(context.Background(), 8, entity.LeavePatch{ApprovalStatus: &status})
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestLeaveRepository_PropagatesAPIError(t *testing.T) {
	api := &fakeTableAPI{err: errors.New("code=99991663")}
	repo := newLeaveRepository(api, "tblLeave", zap.NewNop())

	_, err := repo.List(context.Background(), entity.LeaveFilter{})
	assert.Error(t, err)
}

func TestSchemaReader_Field(t *testing.T) {
	api := &fakeTableAPI{fields: []*larkbitable.AppTableField{
		{FieldName: strPtr(entity.FieldTitle), Type: intPtr(fieldTypeText)},
		{
			FieldName: strPtr(entity.FieldLeaveType),
			Type:      intPtr(fieldTypeSingleSelect),
			Property: &larkbitable.AppTableFieldProperty{Options: []*larkbitable.AppTableFieldPropertyOption{
				{Name: strPtr("Sick")},
				{Name: strPtr("Annual")},
			}},
		},
	}}
	reader := &SchemaReader{api: api, tableID: "tblLeave"}

	field, err := reader.Field(context.Background(), entity.FieldLeaveType)
	require.NoError(t, err)
	assert.Equal(t, entity.FieldTypeChoice, field.Type)
	assert.Equal(t, []string{"Sick", "Annual"}, field.Choices)

	text, err := reader.Field(context.Background(), entity.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, entity.FieldTypeText, text.Type)
	assert.Nil(t, text.Choices)

	_, err = reader.Field(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestHolidayRepository_List(t *testing.T) {
	api := &fakeTableAPI{records: []*larkbitable.AppTableRecord{
		record("recA", map[string]interface{}{entity.FieldID: "1", entity.FieldTitle: "New Year"}),
		record("recB", map[string]interface{}{entity.FieldTitle: "Broken"}),
	}}
	repo := &HolidayRepository{api: api, tableID: "tblHoliday", logger: zap.NewNop()}

	holidays, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []entity.HolidayOption{{ID: 1, Title: "New Year"}}, holidays)
}
