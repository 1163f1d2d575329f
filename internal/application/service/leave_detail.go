package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"github.com/garyjia/leave-master/internal/domain/workflow"
)

// LeaveDetail loads single records for viewing and editing
type LeaveDetail struct {
	leaves port.LeaveRepository
	schema port.SchemaProvider
	logger *zap.Logger
}

// NewLeaveDetail creates a new LeaveDetail
func NewLeaveDetail(leaves port.LeaveRepository, schema port.SchemaProvider, logger *zap.Logger) *LeaveDetail {
	return &LeaveDetail{
		leaves: leaves,
		schema: schema,
		logger: logger.Named("leave_detail"),
	}
}

// Get returns one record. A missing record yields a *FetchError wrapping
// port.ErrNotFound.
func (s *LeaveDetail) Get(ctx context.Context, id int64) (*entity.LeaveRecord, error) {
	record, err := s.leaves.Get(ctx, id)
	if stale(ctx) {
		s.logger.Debug("Discarding stale record response", zap.Int64("id", id))
		return nil, ErrStale
	}
	if err != nil {
		return nil, &FetchError{Op: fmt.Sprintf("get leave %d", id), Err: err}
	}
	return record, nil
}

// Load fetches the record and, independently, the option sets, and returns
// an editor in the given state. Option failures leave the lists empty.
func (s *LeaveDetail) Load(ctx context.Context, id int64, initial workflow.State) (*Editor, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		if err != ErrStale {
			s.logger.Warn("Failed to load leave record", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	leaveTypes := loadChoices(ctx, s.schema, entity.FieldLeaveType, s.logger)
	statuses := loadChoices(ctx, s.schema, entity.FieldApprovalStatus, s.logger)
	if stale(ctx) {
		return nil, ErrStale
	}

	return newEditor(*record, leaveTypes, statuses, initial, s.leaves, s.logger), nil
}

// Patch applies a partial update and returns the stored record
func (s *LeaveDetail) Patch(ctx context.Context, id int64, patch entity.LeavePatch) (*entity.LeaveRecord, error) {
	if !patch.IsEmpty() {
		err := s.leaves.Update(ctx, id, patch)
		if stale(ctx) {
			return nil, ErrStale
		}
		if err != nil {
			s.logger.Error("Failed to update leave record", zap.Int64("id", id), zap.Error(err))
			return nil, &WriteError{Op: fmt.Sprintf("update leave %d", id), Err: err}
		}
	}
	return s.Get(ctx, id)
}

// Editor is the per-request detail view: a canonical record, a draft and
// the VIEWING/EDITING machine.
type Editor struct {
	canonical        entity.LeaveRecord
	draft            entity.LeaveRecord
	leaveTypes       []string
	approvalStatuses []string
	alert            *Alert

	machine workflow.StateMachine
	leaves  port.LeaveRepository
	logger  *zap.Logger
}

func newEditor(
	record entity.LeaveRecord,
	leaveTypes, statuses []string,
	initial workflow.State,
	leaves port.LeaveRepository,
	logger *zap.Logger,
) *Editor {
	if !initial.IsValid() {
		initial = workflow.StateViewing
	}
	e := &Editor{
		canonical:        record,
		draft:            record,
		leaveTypes:       leaveTypes,
		approvalStatuses: statuses,
		leaves:           leaves,
		logger:           logger,
	}
	e.machine = workflow.NewEditorMachine(initial, func(_ context.Context, from, to workflow.State, trigger workflow.Trigger) {
		logger.Debug("Editor transition",
			zap.Int64("id", record.ID),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.String("trigger", trigger.String()))
	})
	return e
}

// ID returns the record identifier
func (e *Editor) ID() int64 { return e.canonical.ID }

// Record returns the last saved version of the record
func (e *Editor) Record() entity.LeaveRecord { return e.canonical }

// Draft returns the working copy edited in EDITING
func (e *Editor) Draft() entity.LeaveRecord { return e.draft }

// State returns the display mode
func (e *Editor) State() workflow.State { return e.machine.State() }

// Editing reports whether the editor is in EDITING
func (e *Editor) Editing() bool { return e.machine.State() == workflow.StateEditing }

// LeaveTypes returns the leave type options
func (e *Editor) LeaveTypes() []string { return e.leaveTypes }

// ApprovalStatuses returns the approval status options
func (e *Editor) ApprovalStatuses() []string { return e.approvalStatuses }

// Alert returns the alert raised by the last save, if any
func (e *Editor) Alert() *Alert { return e.alert }

// Edit switches to EDITING
func (e *Editor) Edit(ctx context.Context) error {
	return e.machine.Fire(ctx, workflow.TriggerEdit)
}

// Cancel discards the draft and returns to VIEWING
func (e *Editor) Cancel(ctx context.Context) error {
	if err := e.machine.Fire(ctx, workflow.TriggerCancel); err != nil {
		return err
	}
	e.draft = e.canonical
	e.alert = nil
	return nil
}

// SetDraft applies user input to the draft. Only valid in EDITING.
func (e *Editor) SetDraft(patch entity.LeavePatch) error {
	if !e.Editing() {
		return fmt.Errorf("%w: draft is read-only in state %s", workflow.ErrInvalidTransition, e.State())
	}
	e.draft = patch.Apply(e.draft)
	e.draft.ID = e.canonical.ID
	return nil
}

// Save writes the five updatable fields of the draft. On success the draft
// becomes canonical and the editor returns to VIEWING; on failure it stays
// in EDITING with the draft untouched.
func (e *Editor) Save(ctx context.Context) error {
	if !e.machine.CanFire(workflow.TriggerSave) {
		return fmt.Errorf("%w: cannot save from state %s", workflow.ErrInvalidTransition, e.State())
	}

	id := e.canonical.ID
	err := e.leaves.Update(ctx, id, entity.FullPatch(e.draft))
	if stale(ctx) {
		e.logger.Debug("Discarding stale save response", zap.Int64("id", id))
		return ErrStale
	}
	if err != nil {
		e.logger.Error("Failed to save leave record", zap.Int64("id", id), zap.Error(err))
		e.alert = errorAlert(MsgSaveFailed, err)
		return &WriteError{Op: fmt.Sprintf("update leave %d", id), Err: err}
	}

	e.canonical = e.draft
	e.alert = successAlert(MsgSaveSuccess)
	return e.machine.Fire(ctx, workflow.TriggerSave)
}
