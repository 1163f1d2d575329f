package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"go.uber.org/zap"
)

// HolidayRepository implements port.HolidayRepository
type HolidayRepository struct {
	db     executor
	table  string
	logger *zap.Logger
}

// NewHolidayRepository creates a holiday repository over the given table
func NewHolidayRepository(db *sql.DB, table string, logger *zap.Logger) (*HolidayRepository, error) {
	quoted, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}
	return &HolidayRepository{db: db, table: quoted, logger: logger}, nil
}

// List returns every holiday ordered by id
func (r *HolidayRepository) List(ctx context.Context) ([]entity.HolidayOption, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT id, title FROM %s ORDER BY id", r.table))
	if err != nil {
		r.logger.Error("Failed to list holidays", zap.Error(err))
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := []entity.HolidayOption{}
	for rows.Next() {
		var h entity.HolidayOption
		if err := rows.Scan(&h.ID, &h.Title); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// Add inserts a holiday. Only used for seeding; the UI never writes holidays.
func (r *HolidayRepository) Add(ctx context.Context, title string) (int64, error) {
	result, err := r.db.ExecContext(ctx, fmt.Sprintf("INSERT INTO %s (title) VALUES (?)", r.table), title)
	if err != nil {
		return 0, fmt.Errorf("failed to add holiday: %w", err)
	}
	return result.LastInsertId()
}

var _ port.HolidayRepository = (*HolidayRepository)(nil)
