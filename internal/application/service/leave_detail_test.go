package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"github.com/garyjia/leave-master/internal/domain/workflow"
)

func storedRecord() entity.LeaveRecord {
	return entity.LeaveRecord{
		ID: 7, Title: "B", LeaveType: "Annual", LeaveDate: "2024-02-01", ApprovalStatus: "Pending", Holiday: "1",
	}
}

func newTestDetail(repo *mockLeaveRepo) *LeaveDetail {
	if repo.getFunc == nil {
		repo.getFunc = func(ctx context.Context, id int64) (*entity.LeaveRecord, error) {
			if id != 7 {
				return nil, port.ErrNotFound
			}
			rec := storedRecord()
			return &rec, nil
		}
	}
	return NewLeaveDetail(repo, defaultSchema(), zap.NewNop())
}

func TestLeaveDetail_Load(t *testing.T) {
	t.Run("viewing", func(t *testing.T) {
		editor, err := newTestDetail(&mockLeaveRepo{}).Load(context.Background(), 7, workflow.StateViewing)
		require.NoError(t, err)
		assert.Equal(t, workflow.StateViewing, editor.State())
		assert.Equal(t, storedRecord(), editor.Record())
		assert.Equal(t, storedRecord(), editor.Draft())
		assert.Equal(t, []string{"Sick", "Annual", "Casual"}, editor.LeaveTypes())
		assert.Nil(t, editor.Alert())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := newTestDetail(&mockLeaveRepo{}).Load(context.Background(), 99, workflow.StateViewing)
		assert.ErrorIs(t, err, port.ErrNotFound)
		assert.True(t, IsFetchError(err))
	})

	t.Run("option failure leaves the record usable", func(t *testing.T) {
		schema := defaultSchema()
		schema.errs = map[string]error{entity.FieldLeaveType: errors.New("boom")}
		detail := NewLeaveDetail(newTestDetail(&mockLeaveRepo{}).leaves, schema, zap.NewNop())

		editor, err := detail.Load(context.Background(), 7, workflow.StateEditing)
		require.NoError(t, err)
		assert.Empty(t, editor.LeaveTypes())
		assert.Equal(t, []string{"Pending", "Approved", "Rejected"}, editor.ApprovalStatuses())
		assert.True(t, editor.Editing())
	})
}

func TestEditor_EditSave(t *testing.T) {
	var gotID int64
	var gotFields map[string]interface{}
	repo := &mockLeaveRepo{updateFunc: func(ctx context.Context, id int64, patch entity.LeavePatch) error {
		gotID = id
		gotFields = patch.Fields()
		return nil
	}}
	ctx := context.Background()

	editor, err := newTestDetail(repo).Load(ctx, 7, workflow.StateViewing)
	require.NoError(t, err)

	require.NoError(t, editor.Edit(ctx))
	assert.Equal(t, workflow.StateEditing, editor.State())

	approved := "Approved"
	require.NoError(t, editor.SetDraft(entity.LeavePatch{ApprovalStatus: &approved}))
	require.NoError(t, editor.Save(ctx))

	assert.Equal(t, workflow.StateViewing, editor.State())
	assert.Equal(t, "Approved", editor.Record().ApprovalStatus)
	assert.Equal(t, int64(7), gotID)
	assert.Len(t, gotFields, 5)
	for _, key := range []string{entity.FieldTitle, entity.FieldLeaveType, entity.FieldLeaveDate, entity.FieldApprovalStatus, entity.FieldHoliday} {
		assert.Contains(t, gotFields, key)
	}
	assert.Equal(t, "1", gotFields[entity.FieldHoliday])
	require.NotNil(t, editor.Alert())
	assert.Equal(t, AlertSuccess, editor.Alert().Kind)
}

func TestEditor_CancelRestoresCanonical(t *testing.T) {
	ctx := context.Background()
	repo := &mockLeaveRepo{}
	editor, err := newTestDetail(repo).Load(ctx, 7, workflow.StateViewing)
	require.NoError(t, err)

	require.NoError(t, editor.Edit(ctx))
	date := "2024-03-03"
	require.NoError(t, editor.SetDraft(entity.LeavePatch{LeaveDate: &date}))
	assert.Equal(t, "2024-03-03", editor.Draft().LeaveDate)

	require.NoError(t, editor.Cancel(ctx))
	assert.Equal(t, workflow.StateViewing, editor.State())
	assert.Equal(t, storedRecord(), editor.Record())
	assert.Equal(t, storedRecord(), editor.Draft())
	assert.Equal(t, 0, repo.updateCalls)
}

func TestEditor_SaveFailureStaysEditing(t *testing.T) {
	ctx := context.Background()
	repo := &mockLeaveRepo{updateFunc: func(ctx context.Context, id int64, patch entity.LeavePatch) error {
		return errors.New("item was deleted")
	}}
	editor, err := newTestDetail(repo).Load(ctx, 7, workflow.StateEditing)
	require.NoError(t, err)

	leaveType := "Sick"
	require.NoError(t, editor.SetDraft(entity.LeavePatch{LeaveType: &leaveType}))

	err = editor.Save(ctx)
	assert.True(t, IsWriteError(err))
	assert.Equal(t, workflow.StateEditing, editor.State())
	assert.Equal(t, "Sick", editor.Draft().LeaveType)
	assert.Equal(t, "Annual", editor.Record().LeaveType)
	require.NotNil(t, editor.Alert())
	assert.Equal(t, AlertError, editor.Alert().Kind)
	assert.Equal(t, "item was deleted", editor.Alert().Detail)
}

func TestEditor_InvalidTransitions(t *testing.T) {
	ctx := context.Background()
	repo := &mockLeaveRepo{}
	editor, err := newTestDetail(repo).Load(ctx, 7, workflow.StateViewing)
	require.NoError(t, err)

	assert.ErrorIs(t, editor.Save(ctx), workflow.ErrInvalidTransition)
	assert.ErrorIs(t, editor.Cancel(ctx), workflow.ErrInvalidTransition)
	title := "X"
	assert.ErrorIs(t, editor.SetDraft(entity.LeavePatch{Title: &title}), workflow.ErrInvalidTransition)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestEditor_SaveDiscardsStaleResponse(t *testing.T) {
	repo := &mockLeaveRepo{}
	editor, err := newTestDetail(repo).Load(context.Background(), 7, workflow.StateEditing)
	require.NoError(t, err)

	err = editor.Save(cancelledContext())
	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, workflow.StateEditing, editor.State())
	assert.Nil(t, editor.Alert())
}

func TestLeaveDetail_Patch(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		var gotFields map[string]interface{}
		repo := &mockLeaveRepo{updateFunc: func(ctx context.Context, id int64, patch entity.LeavePatch) error {
			gotFields = patch.Fields()
			return nil
		}}
		status := "Rejected"
		_, err := newTestDetail(repo).Patch(context.Background(), 7, entity.LeavePatch{ApprovalStatus: &status})
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{entity.FieldApprovalStatus: "Rejected"}, gotFields)
	})

	t.Run("missing record", func(t *testing.T) {
		repo := &mockLeaveRepo{updateFunc: func(ctx context.Context, id int64, patch entity.LeavePatch) error {
			return port.ErrNotFound
		}}
		status := "Rejected"
		_, err := newTestDetail(repo).Patch(context.Background(), 99, entity.LeavePatch{ApprovalStatus: &status})
		assert.ErrorIs(t, err, port.ErrNotFound)
		assert.True(t, IsWriteError(err))
	})

	t.Run("empty patch reads only", func(t *testing.T) {
		repo := &mockLeaveRepo{}
		rec, err := newTestDetail(repo).Patch(context.Background(), 7, entity.LeavePatch{})
		require.NoError(t, err)
		assert.Equal(t, storedRecord(), *rec)
		assert.Equal(t, 0, repo.updateCalls)
	})
}
