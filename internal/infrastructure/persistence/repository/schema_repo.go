package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/domain/entity"
	"go.uber.org/zap"
)

// SchemaRepository reads field definitions from list_fields/list_field_choices
type SchemaRepository struct {
	db     executor
	table  string
	logger *zap.Logger
}

// NewSchemaRepository creates a schema reader for one list table
func NewSchemaRepository(db *sql.DB, table string, logger *zap.Logger) *SchemaRepository {
	return &SchemaRepository{db: db, table: table, logger: logger}
}

// Field returns the definition of one field with ordered choices
func (r *SchemaRepository) Field(ctx context.Context, name string) (*entity.FieldSchema, error) {
	schema := entity.FieldSchema{Name: name}

	err := r.db.QueryRowContext(ctx,
		"SELECT field_type FROM list_fields WHERE table_name = ? AND field_name = ?",
		r.table, name,
	).Scan(&schema.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to read field schema", zap.String("field", name), zap.Error(err))
		return nil, fmt.Errorf("failed to read field schema: %w", err)
	}

	if !schema.IsChoice() {
		return &schema, nil
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT value FROM list_field_choices WHERE table_name = ? AND field_name = ? ORDER BY position",
		r.table, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read field choices: %w", err)
	}
	defer rows.Close()

	schema.Choices = []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan field choice: %w", err)
		}
		schema.Choices = append(schema.Choices, value)
	}
	return &schema, rows.Err()
}

var _ port.SchemaReader = (*SchemaRepository)(nil)
