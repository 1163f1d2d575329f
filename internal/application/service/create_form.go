package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
)

// CreateFormModel is what the create form renders
type CreateFormModel struct {
	LeaveTypes       []string               `json:"leave_types"`
	ApprovalStatuses []string               `json:"approval_statuses"`
	Holidays         []entity.HolidayOption `json:"holidays"`
	Draft            entity.LeaveRecord     `json:"draft"`
	Loading          bool                   `json:"loading"`
	Alert            *Alert                 `json:"alert,omitempty"`
}

// SubmitResult is the outcome of a submit. Draft is empty after a
// successful create and unchanged otherwise.
type SubmitResult struct {
	ID    int64              `json:"id,omitempty"`
	Draft entity.LeaveRecord `json:"draft"`
	Alert *Alert             `json:"alert"`
}

// CreateForm loads the option lists and submits new leave records
type CreateForm struct {
	leaves   port.LeaveRepository
	holidays port.HolidayRepository
	schema   port.SchemaProvider
	logger   *zap.Logger
}

// NewCreateForm creates a new CreateForm
func NewCreateForm(
	leaves port.LeaveRepository,
	holidays port.HolidayRepository,
	schema port.SchemaProvider,
	logger *zap.Logger,
) *CreateForm {
	return &CreateForm{
		leaves:   leaves,
		holidays: holidays,
		schema:   schema,
		logger:   logger.Named("create_form"),
	}
}

// Mount fetches the leave type, approval status and holiday options.
// Each failed fetch leaves its list empty. The only error returned is ErrStale.
func (f *CreateForm) Mount(ctx context.Context) (CreateFormModel, error) {
	model := CreateFormModel{
		LeaveTypes:       loadChoices(ctx, f.schema, entity.FieldLeaveType, f.logger),
		ApprovalStatuses: loadChoices(ctx, f.schema, entity.FieldApprovalStatus, f.logger),
		Holidays:         f.loadHolidays(ctx),
	}
	if stale(ctx) {
		f.logger.Debug("Discarding stale form options")
		return CreateFormModel{}, ErrStale
	}
	return model, nil
}

// Submit validates the required fields and creates one record.
// The returned error is ErrRequiredField, a *WriteError or ErrStale;
// the result always carries the alert to show.
func (f *CreateForm) Submit(ctx context.Context, draft entity.LeaveRecord) (SubmitResult, error) {
	if missing := draft.MissingRequired(); len(missing) > 0 {
		err := fmt.Errorf("%w: %s", ErrRequiredField, strings.Join(missing, ", "))
		return SubmitResult{Draft: draft, Alert: errorAlert(MsgRequiredFields, err)}, err
	}

	record := draft
	record.ID = 0
	id, err := f.leaves.Create(ctx, &record)
	if stale(ctx) {
		f.logger.Debug("Discarding stale create response", zap.Int64("id", id))
		return SubmitResult{}, ErrStale
	}
	if err != nil {
		f.logger.Error("Failed to create leave record", zap.String("title", draft.Title), zap.Error(err))
		werr := &WriteError{Op: "create leave", Err: err}
		return SubmitResult{Draft: draft, Alert: errorAlert(MsgCreateFailed, err)}, werr
	}

	f.logger.Info("Leave record created", zap.Int64("id", id), zap.String("title", draft.Title))
	return SubmitResult{ID: id, Alert: successAlert(MsgCreateSuccess)}, nil
}

// Holidays returns all holiday options
func (f *CreateForm) Holidays(ctx context.Context) ([]entity.HolidayOption, error) {
	holidays, err := f.holidays.List(ctx)
	if stale(ctx) {
		return nil, ErrStale
	}
	if err != nil {
		return nil, &FetchError{Op: "list holidays", Err: err}
	}
	if holidays == nil {
		holidays = []entity.HolidayOption{}
	}
	return holidays, nil
}

func (f *CreateForm) loadHolidays(ctx context.Context) []entity.HolidayOption {
	holidays, err := f.Holidays(ctx)
	if err != nil {
		if err != ErrStale {
			f.logger.Error("Failed to fetch holidays", zap.Error(err))
		}
		return []entity.HolidayOption{}
	}
	return holidays
}
