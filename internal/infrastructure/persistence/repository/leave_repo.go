package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"go.uber.org/zap"
)

// columns maps store field names to sqlite columns
var columns = map[string]string{
	entity.FieldTitle:          "title",
	entity.FieldLeaveType:      "leave_type",
	entity.FieldLeaveDate:      "leave_date",
	entity.FieldApprovalStatus: "aproval",
	entity.FieldHoliday:        "holidays",
}

// LeaveRepository implements port.LeaveRepository on a sqlite table
type LeaveRepository struct {
	db     executor
	table  string
	logger *zap.Logger
}

// NewLeaveRepository creates a leave repository over the given table
func NewLeaveRepository(db *sql.DB, table string, logger *zap.Logger) (*LeaveRepository, error) {
	quoted, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}
	return &LeaveRepository{
		db:     db,
		table:  quoted,
		logger: logger,
	}, nil
}

// List returns all rows matching filter ordered by id
func (r *LeaveRepository) List(ctx context.Context, filter entity.LeaveFilter) ([]entity.LeaveRecord, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Title != "" {
		where = append(where, "title LIKE ?")
		args = append(args, "%"+filter.Title+"%")
	}
	if filter.LeaveType != "" {
		where = append(where, "leave_type = ?")
		args = append(args, filter.LeaveType)
	}
	if filter.ApprovalStatus != "" {
		where = append(where, "aproval = ?")
		args = append(args, filter.ApprovalStatus)
	}

	query := fmt.Sprintf("SELECT id, title, leave_type, leave_date, aproval FROM %s", r.table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list leave records", zap.Error(err))
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	records := []entity.LeaveRecord{}
	for rows.Next() {
		var rec entity.LeaveRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.LeaveType, &rec.LeaveDate, &rec.ApprovalStatus); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave records: %w", err)
	}
	return records, nil
}

// Get retrieves a leave record by ID
func (r *LeaveRepository) Get(ctx context.Context, id int64) (*entity.LeaveRecord, error) {
	query := fmt.Sprintf(
		"SELECT id, title, leave_type, leave_date, aproval, holidays FROM %s WHERE id = ?", r.table)

	var rec entity.LeaveRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.Title,
		&rec.LeaveType,
		&rec.LeaveDate,
		&rec.ApprovalStatus,
		&rec.Holiday,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get leave record", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get leave record: %w", err)
	}
	return &rec, nil
}

// Create inserts a leave record and returns its new ID
func (r *LeaveRepository) Create(ctx context.Context, record *entity.LeaveRecord) (int64, error) {
	query := fmt.Sprintf(
		"INSERT INTO %s (title, aproval, leave_date, leave_type, holidays) VALUES (?, ?, ?, ?, ?)", r.table)

	result, err := r.db.ExecContext(ctx, query,
		record.Title,
		record.ApprovalStatus,
		record.LeaveDate,
		record.LeaveType,
		record.Holiday,
	)
	if err != nil {
		r.logger.Error("Failed to create leave record", zap.Error(err))
		return 0, fmt.Errorf("failed to create leave record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// Update overwrites the patched columns of one row
func (r *LeaveRepository) Update(ctx context.Context, id int64, patch entity.LeavePatch) error {
	fields := patch.Fields()

	var (
		sets []string
		args []interface{}
	)
	// Fixed order keeps the statement stable for identical patches
	for _, name := range []string{
		entity.FieldTitle,
		entity.FieldApprovalStatus,
		entity.FieldLeaveDate,
		entity.FieldLeaveType,
		entity.FieldHoliday,
	} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		sets = append(sets, columns[name]+" = ?")
		args = append(args, value)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", r.table, strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update leave record", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update leave record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return port.ErrNotFound
	}
	return nil
}

// Verify interface compliance
var _ port.LeaveRepository = (*LeaveRepository)(nil)
