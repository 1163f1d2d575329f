package port

import (
	"context"
	"errors"

	"github.com/garyjia/leave-master/internal/domain/entity"
)

// ErrNotFound is returned when no row matches the requested identifier
var ErrNotFound = errors.New("record not found")

// LeaveRepository defines list store operations for LeaveRecord
type LeaveRepository interface {
	// List returns all records matching filter with the list fields populated
	List(ctx context.Context, filter entity.LeaveFilter) ([]entity.LeaveRecord, error)

	// Get returns the record with the given identifier or ErrNotFound
	Get(ctx context.Context, id int64) (*entity.LeaveRecord, error)

	// Create inserts the record and returns the identifier assigned by the store
	Create(ctx context.Context, record *entity.LeaveRecord) (int64, error)

	// Update overwrites the fields set on patch. Returns ErrNotFound if no row matches.
	Update(ctx context.Context, id int64, patch entity.LeavePatch) error
}

// HolidayRepository reads the holiday reference table
type HolidayRepository interface {
	List(ctx context.Context) ([]entity.HolidayOption, error)
}

// SchemaReader reads field definitions of the leave table
type SchemaReader interface {
	// Field returns the declared type and, for choice fields, the ordered legal values.
	// Returns ErrNotFound for unknown fields.
	Field(ctx context.Context, name string) (*entity.FieldSchema, error)
}

// SchemaProvider supplies dropdown options for a field
type SchemaProvider interface {
	OptionsFor(ctx context.Context, field string) ([]string, error)
}

// Store bundles the ports one backend provides
type Store struct {
	Leaves   LeaveRepository
	Holidays HolidayRepository
	Schema   SchemaReader
	Close    func() error
}
