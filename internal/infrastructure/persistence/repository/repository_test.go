package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"github.com/garyjia/leave-master/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "leave.db"),
		MaxOpenConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).RunMigrations(context.Background()))
	return db
}

func setupLeaveRepo(t *testing.T) *LeaveRepository {
	t.Helper()
	repo, err := NewLeaveRepository(setupDB(t).DB, entity.DefaultLeaveTable, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func TestNewLeaveRepository_RejectsBadTableName(t *testing.T) {
	_, err := NewLeaveRepository(nil, `leaves"; DROP TABLE x; --`, zap.NewNop())
	assert.Error(t, err)
}

func TestLeaveRepository_CreateThenGetRoundTrip(t *testing.T) {
	repo := setupLeaveRepo(t)
	ctx := context.Background()

	draft := &entity.LeaveRecord{
		Title:          "A",
		LeaveType:      "Sick",
		LeaveDate:      "2024-01-10",
		ApprovalStatus: "Pending",
		Holiday:        "",
	}

	id, err := repo.Create(ctx, draft)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.LeaveRecord{
		ID:             id,
		Title:          "A",
		LeaveType:      "Sick",
		LeaveDate:      "2024-01-10",
		ApprovalStatus: "Pending",
	}, *got)
}

func TestLeaveRepository_GetNotFound(t *testing.T) {
	repo := setupLeaveRepo(t)

	_, err := repo.Get(context.Background(), 404)

	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestLeaveRepository_List(t *testing.T) {
	repo := setupLeaveRepo(t)
	ctx := context.Background()

	for _, rec := range []entity.LeaveRecord{
		{Title: "Alice", LeaveType: "Sick", LeaveDate: "2024-01-10", ApprovalStatus: "Pending"},
		{Title: "Bob", LeaveType: "Annual", LeaveDate: "2024-02-01", ApprovalStatus: "Approved", Holiday: "2"},
		{Title: "Alina", LeaveType: "Annual", LeaveDate: "2024-03-01", ApprovalStatus: "Pending"},
	} {
		rec := rec
		_, err := repo.Create(ctx, &rec)
		require.NoError(t, err)
	}

	t.Run("empty filter returns all in id order", func(t *testing.T) {
		records, err := repo.List(ctx, entity.LeaveFilter{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Alice", records[0].Title)
		assert.Equal(t, "Alina", records[2].Title)
		assert.Empty(t, records[1].Holiday, "holiday is not a list field")
	})

	t.Run("filters are combined", func(t *testing.T) {
		records, err := repo.List(ctx, entity.LeaveFilter{LeaveType: "Annual", ApprovalStatus: "Pending"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Alina", records[0].Title)
	})

	t.Run("title matches substring", func(t *testing.T) {
		records, err := repo.List(ctx, entity.LeaveFilter{Title: "Ali"})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		records, err := repo.List(ctx, entity.LeaveFilter{LeaveType: "Casual"})
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestLeaveRepository_Update(t *testing.T) {
	repo := setupLeaveRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &entity.LeaveRecord{
		Title: "B", LeaveType: "Annual", LeaveDate: "2024-02-01", ApprovalStatus: "Pending",
	})
	require.NoError(t, err)

	t.Run("partial patch only touches set fields", func(t *testing.T) {
		status := "Approved"
		require.NoError(t, repo.Update(ctx, id, entity.LeavePatch{ApprovalStatus: &status}))

		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Approved", got.ApprovalStatus)
		assert.Equal(t, "2024-02-01", got.LeaveDate)
	})

	t.Run("same update twice yields same state", func(t *testing.T) {
		patch := entity.FullPatch(entity.LeaveRecord{
			Title: "B", LeaveType: "Sick", LeaveDate: "2024-02-03", ApprovalStatus: "Rejected",
		})

		require.NoError(t, repo.Update(ctx, id, patch))
		once, err := repo.Get(ctx, id)
		require.NoError(t, err)

		require.NoError(t, repo.Update(ctx, id, patch))
		twice, err := repo.Get(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	})

	t.Run("missing row", func(t *testing.T) {
		status := "Approved"
		err := repo.Update(ctx, id+100, entity.LeavePatch{ApprovalStatus: &status})
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestHolidayRepository_List(t *testing.T) {
	db := setupDB(t)
	repo, err := NewHolidayRepository(db.DB, entity.DefaultHolidayTable, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repo.Add(ctx, "New Year")
	require.NoError(t, err)
	_, err = repo.Add(ctx, "Labour Day")
	require.NoError(t, err)

	holidays, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "New Year", holidays[0].Title)
	assert.Equal(t, "Labour Day", holidays[1].Title)
}

func TestSchemaRepository_Field(t *testing.T) {
	db := setupDB(t)
	repo := NewSchemaRepository(db.DB, entity.DefaultLeaveTable, zap.NewNop())
	ctx := context.Background()

	t.Run("choice field returns ordered values", func(t *testing.T) {
		field, err := repo.Field(ctx, entity.FieldApprovalStatus)
		require.NoError(t, err)
		assert.Equal(t, entity.FieldTypeChoice, field.Type)
		assert.Equal(t, []string{"Pending", "Approved", "Rejected"}, field.Choices)
	})

	t.Run("non choice field has no values", func(t *testing.T) {
		field, err := repo.Field(ctx, entity.FieldLeaveDate)
		require.NoError(t, err)
		assert.Equal(t, entity.FieldTypeDate, field.Type)
		assert.Nil(t, field.Choices)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := repo.Field(ctx, "nope")
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}
