package service

import (
	"context"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

// Mock repositories
type mockLeaveRepo struct {
	listFunc   func(ctx context.Context, filter entity.LeaveFilter) ([]entity.LeaveRecord, error)
	getFunc    func(ctx context.Context, id int64) (*entity.LeaveRecord, error)
	createFunc func(ctx context.Context, record *entity.LeaveRecord) (int64, error)
	updateFunc func(ctx context.Context, id int64, patch entity.LeavePatch) error

	createCalls int
	updateCalls int
}

func (m *mockLeaveRepo) List(ctx context.Context, filter entity.LeaveFilter) ([]entity.LeaveRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []entity.LeaveRecord{}, nil
}

func (m *mockLeaveRepo) Get(ctx context.Context, id int64) (*entity.LeaveRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, port.ErrNotFound
}

func (m *mockLeaveRepo) Create(ctx context.Context, record *entity.LeaveRecord) (int64, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	return 1, nil
}

func (m *mockLeaveRepo) Update(ctx context.Context, id int64, patch entity.LeavePatch) error {
	m.updateCalls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil
}

type mockHolidayRepo struct {
	listFunc func(ctx context.Context) ([]entity.HolidayOption, error)
}

func (m *mockHolidayRepo) List(ctx context.Context) ([]entity.HolidayOption, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []entity.HolidayOption{}, nil
}

// fixedSchema serves fixed option sets; fields in errs fail
type fixedSchema struct {
	options map[string][]string
	errs    map[string]error
}

func (s *fixedSchema) OptionsFor(ctx context.Context, field string) ([]string, error) {
	if err := s.errs[field]; err != nil {
		return nil, err
	}
	return s.options[field], nil
}

type mockSchemaReader struct {
	fieldFunc func(ctx context.Context, name string) (*entity.FieldSchema, error)
}

func (m *mockSchemaReader) Field(ctx context.Context, name string) (*entity.FieldSchema, error) {
	return m.fieldFunc(ctx, name)
}

func defaultSchema() *fixedSchema {
	return &fixedSchema{
		options: map[string][]string{
			entity.FieldLeaveType:      {"Sick", "Annual", "Casual"},
			entity.FieldApprovalStatus: {"Pending", "Approved", "Rejected"},
		},
	}
}

func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
